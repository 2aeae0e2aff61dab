package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fundflow/fundflow/internal/auth"
)

func jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

type key string

const UserIDKey key = "user_id"
const RoleKey key = "role"

// JWTMiddleware guards protected routes. The token is the raw value of the
// Authorization header; a "Bearer " prefix is tolerated and stripped. A
// missing header rejects with 401, a failed verification with 400, matching
// the API's published error bodies. On success the authenticated user id and
// role are attached to the request context.
func JWTMiddleware(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				jsonError(w, "Access Denied", http.StatusUnauthorized)
				return
			}

			tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

			claims, err := tokens.Verify(tokenStr)
			if err != nil {
				jsonError(w, "Invalid Token", http.StatusBadRequest)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, RoleKey, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
