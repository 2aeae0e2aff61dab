package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fundflow/fundflow/internal/auth"
)

func protectedEcho(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := r.Context().Value(UserIDKey).(int)
		if !ok {
			t.Error("user id missing from context")
		}
		role, _ := r.Context().Value(RoleKey).(string)
		json.NewEncoder(w).Encode(map[string]interface{}{"id": id, "role": role})
	})
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	tokens := auth.NewTokenService([]byte("secret"), time.Hour)
	h := JWTMiddleware(tokens)(protectedEcho(t))

	req := httptest.NewRequest("POST", "/projects", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
	var out map[string]string
	json.NewDecoder(rr.Body).Decode(&out)
	if out["error"] != "Access Denied" {
		t.Errorf("unexpected error body: %v", out)
	}
}

func TestJWTMiddleware_InvalidToken(t *testing.T) {
	tokens := auth.NewTokenService([]byte("secret"), time.Hour)
	h := JWTMiddleware(tokens)(protectedEcho(t))

	req := httptest.NewRequest("POST", "/projects", nil)
	req.Header.Set("Authorization", "not-a-token")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rr.Code)
	}
	var out map[string]string
	json.NewDecoder(rr.Body).Decode(&out)
	if out["error"] != "Invalid Token" {
		t.Errorf("unexpected error body: %v", out)
	}
}

func TestJWTMiddleware_Expired(t *testing.T) {
	issuer := auth.NewTokenService([]byte("secret"), -time.Minute)
	tok, err := issuer.Issue(1, "user")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	verifier := auth.NewTokenService([]byte("secret"), time.Hour)
	h := JWTMiddleware(verifier)(protectedEcho(t))

	req := httptest.NewRequest("POST", "/projects", nil)
	req.Header.Set("Authorization", tok)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rr.Code)
	}
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	tokens := auth.NewTokenService([]byte("secret"), time.Hour)
	tok, err := tokens.Issue(42, "admin")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	for _, header := range []string{tok, "Bearer " + tok} {
		h := JWTMiddleware(tokens)(protectedEcho(t))
		req := httptest.NewRequest("POST", "/projects", nil)
		req.Header.Set("Authorization", header)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("header %q: status %d, want 200", header, rr.Code)
			continue
		}
		var out struct {
			ID   int    `json:"id"`
			Role string `json:"role"`
		}
		if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if out.ID != 42 || out.Role != "admin" {
			t.Errorf("identity not attached: %+v", out)
		}
	}
}
