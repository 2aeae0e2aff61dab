package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fundflow/fundflow/internal/auth"
	"github.com/fundflow/fundflow/internal/repo"
	"github.com/go-playground/validator/v10"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	UserRepo *repo.UserRepo
	Tokens   *auth.TokenService
}

// ==========================
// Register
// ==========================
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string `json:"name" validate:"required,max=255"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
		Role     string `json:"role" validate:"omitempty,oneof=user admin"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	// ===== Validate input =====
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	user, err := h.UserRepo.Create(r.Context(), input.Name, input.Email, hash, input.Role)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			JSONError(w, "Email already exists", http.StatusBadRequest)
			return
		}
		slog.Error("register: create user failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User created",
		"user":    user,
	})
}

// ==========================
// Login
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	user, err := h.UserRepo.GetByEmail(r.Context(), input.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			JSONError(w, "User not found", http.StatusBadRequest)
			return
		}
		slog.Error("login: lookup failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if !auth.CheckPassword(input.Password, user.PasswordHash) {
		JSONError(w, "Invalid credentials", http.StatusBadRequest)
		return
	}

	token, err := h.Tokens.Issue(user.ID, user.Role)
	if err != nil {
		slog.Error("login: issue token failed", "error", err)
		JSONError(w, "failed to issue token", http.StatusInternalServerError)
		return
	}

	JSON(w, http.StatusOK, map[string]string{"token": token})
}
