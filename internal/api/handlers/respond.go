package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/markdave123-py/reflectcoach/internal/core"
	"github.com/markdave123-py/reflectcoach/internal/pkg/logger"
)

const maxBodyBytes = 1 << 20

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
}

// respondServiceError maps the core error taxonomy onto HTTP statuses.
func respondServiceError(w http.ResponseWriter, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, core.ErrNotFound):
		respondError(w, http.StatusNotFound, "goal not found")
	case errors.Is(err, core.ErrMissingCredential):
		log.Error("request failed on configuration", "error", err)
		respondError(w, http.StatusInternalServerError, "reasoning engine is not configured")
	default:
		log.Error("request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
