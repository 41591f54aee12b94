package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/markdave123-py/reflectcoach/internal/models"
	"github.com/markdave123-py/reflectcoach/internal/pkg/logger"
)

type GoalManager interface {
	List(ctx context.Context, userID string) ([]models.GoalWithChildren, error)
	Create(ctx context.Context, userID, text string, childTexts []string) (string, error)
	Update(ctx context.Context, id string, upd models.GoalUpdate) (*models.Goal, error)
	Delete(ctx context.Context, id string) error
}

type GoalHandler struct {
	goals GoalManager
	log   *logger.Logger
}

func NewGoalHandler(goals GoalManager, log *logger.Logger) *GoalHandler {
	return &GoalHandler{goals: goals, log: log.With("handler", "GoalHandler")}
}

type createGoalRequest struct {
	Goal   string   `json:"goal"`
	UserID string   `json:"user_id"`
	Goals  []string `json:"goals"`
}

// ListGoals serves GET /goals/{id} where id is the owner's user id.
func (h *GoalHandler) ListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := h.goals.List(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.goals.Create(r.Context(), req.UserID, req.Goal, req.Goals)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *GoalHandler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	var upd models.GoalUpdate
	if err := decodeJSON(w, r, &upd); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	goal, err := h.goals.Update(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := h.goals.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "Success"})
}
