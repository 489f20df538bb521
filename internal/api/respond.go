// Package api exposes the HTTP handlers for the GymCrowd backend.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/AdeebK1129/GymCrowd-backend/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// writeError emits the uniform error body: {"error": "<message>"}.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// respondError maps domain errors onto the HTTP surface. Unexpected errors get
// a generic body; the detail stays in the server log.
func respondError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var validation *domain.ValidationError
	switch {
	case errors.As(err, &validation):
		writeError(w, http.StatusBadRequest, validation.Message)
	case errors.Is(err, domain.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, "An account with this email already exists.")
	case errors.Is(err, domain.ErrUsernameTaken):
		writeError(w, http.StatusBadRequest, "An account with this username already exists.")
	case errors.Is(err, domain.ErrPreferenceExists):
		writeError(w, http.StatusBadRequest, "A preference for this gym already exists.")
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid username or password.")
	case errors.Is(err, domain.ErrNotOwner):
		writeError(w, http.StatusForbidden, "You do not have permission to access this resource.")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found.")
	default:
		logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Unexpected server error.")
	}
}
