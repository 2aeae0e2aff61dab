package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fundflow/fundflow/internal/metrics"
	"github.com/fundflow/fundflow/internal/middleware"
	"github.com/fundflow/fundflow/internal/models"
	"github.com/fundflow/fundflow/internal/repo"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// ==========================
// Project Handler
// ==========================
type ProjectHandler struct {
	Repo *repo.ProjectRepo
}

// ==========================
// Create Project (authenticated)
// ==========================
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int)
	if !ok {
		JSONError(w, "Access Denied", http.StatusUnauthorized)
		return
	}

	var input struct {
		Title       string             `json:"title" validate:"required,max=255"`
		Description string             `json:"description" validate:"max=5000"`
		Goal        float64            `json:"goal" validate:"required,gt=0"`
		Category    string             `json:"category" validate:"max=255"`
		Milestones  models.Milestones  `json:"milestones" validate:"dive"`
		SocialLinks models.SocialLinks `json:"socialLinks"`
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

	project, err := h.Repo.Create(r.Context(), &models.Project{
		Title:       input.Title,
		Description: input.Description,
		Goal:        input.Goal,
		Category:    input.Category,
		Milestones:  input.Milestones,
		SocialLinks: input.SocialLinks,
		Owner:       userID,
	})
	if err != nil {
		slog.Error("create project failed", "error", err)
		JSONError(w, "failed to create project", http.StatusInternalServerError)
		return
	}

	JSON(w, http.StatusCreated, project)
}

// ==========================
// List Projects (public)
// ==========================
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Repo.List(r.Context())
	if err != nil {
		slog.Error("list projects failed", "error", err)
		JSONError(w, "failed to fetch projects", http.StatusInternalServerError)
		return
	}

	if projects == nil {
		projects = []models.Project{}
	}

	JSON(w, http.StatusOK, projects)
}

// ==========================
// Donate (public)
// ==========================
func (h *ProjectHandler) Donate(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		JSONError(w, "invalid project id", http.StatusBadRequest)
		return
	}

	var input struct {
		Amount float64 `json:"amount" validate:"required,gt=0"`
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

	project, err := h.Repo.Donate(r.Context(), id, input.Amount)
	if err != nil {
		if errors.Is(err, repo.ErrProjectNotFound) {
			JSONError(w, "Project not found", http.StatusNotFound)
			return
		}
		slog.Error("donate failed", "project_id", id, "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	metrics.RecordDonation(input.Amount)

	JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Donation successful",
		"project": project,
	})
}
