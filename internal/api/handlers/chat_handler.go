package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/markdave123-py/reflectcoach/internal/models"
	"github.com/markdave123-py/reflectcoach/internal/pkg/logger"
	"github.com/markdave123-py/reflectcoach/internal/services"
)

// ConversationService is the session manager as seen by the HTTP layer.
type ConversationService interface {
	AdvanceTurn(ctx context.Context, req services.TurnRequest) (string, error)
	ResetConversation(ctx context.Context, userID string) error
	History(ctx context.Context, userID string) ([]models.Turn, error)
}

type ChatHandler struct {
	sessions ConversationService
	log      *logger.Logger
}

func NewChatHandler(sessions ConversationService, log *logger.Logger) *ChatHandler {
	return &ChatHandler{sessions: sessions, log: log.With("handler", "ChatHandler")}
}

type sendMessageRequest struct {
	Message  string                    `json:"message"`
	Feelings *models.EmotionalSnapshot `json:"feelings,omitempty"`
	Comment  string                    `json:"comment,omitempty"`
	UserID   string                    `json:"user_id"`
}

type sendMessageResponse struct {
	Response string `json:"response"`
	UserID   string `json:"user_id"`
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := h.sessions.AdvanceTurn(r.Context(), services.TurnRequest{
		UserID:   req.UserID,
		Message:  req.Message,
		Feelings: req.Feelings,
		Comment:  req.Comment,
	})
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	// Turns are stored under the trimmed id; answer with the same one.
	respondJSON(w, http.StatusOK, sendMessageResponse{Response: reply, UserID: strings.TrimSpace(req.UserID)})
}

func (h *ChatHandler) ResetConversation(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	if err := h.sessions.ResetConversation(r.Context(), userID); err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "Conversation reset"})
}

func (h *ChatHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	turns, err := h.sessions.History(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, turns)
}
