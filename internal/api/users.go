package api

import (
	"encoding/json"
	"net/http"

	"github.com/AdeebK1129/GymCrowd-backend/internal/auth"
	"github.com/AdeebK1129/GymCrowd-backend/internal/domain"
)

// SignupRequest is the payload for POST /api/users/signup/.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// CredentialsRequest is the payload for login and token issuance.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// PreferenceRequest is the payload for creating or updating a preference.
type PreferenceRequest struct {
	Gym           *int64   `json:"gym"`
	MaxCrowdLevel *float64 `json:"max_crowd_level"`
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Unable to parse request body.")
		return
	}

	detail, err := h.users.Signup(r.Context(), domain.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"user":    toUserView(*detail),
		"message": "Account created successfully.",
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Unable to parse request body.")
		return
	}

	detail, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":    toUserView(*detail),
		"message": "Login successful.",
	})
}

func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Unable to parse request body.")
		return
	}

	token, detail, err := h.users.IssueToken(r.Context(), req.Username, req.Password)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token":   token,
		"user":    toUserView(*detail),
		"message": "Login successful.",
	})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	if err := h.users.Logout(r.Context(), user.ID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logout successful."})
}

func (h *Handler) listPreferences(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	preferences, err := h.users.ListPreferences(r.Context(), user.ID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	views := make([]PreferenceView, 0, len(preferences))
	for _, pref := range preferences {
		views = append(views, toPreferenceView(pref))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) createPreference(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	var req PreferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Unable to parse request body.")
		return
	}
	if req.Gym == nil || req.MaxCrowdLevel == nil {
		writeError(w, http.StatusBadRequest, "Gym and max_crowd_level are required.")
		return
	}

	pref, err := h.users.CreatePreference(r.Context(), user.ID, *req.Gym, *req.MaxCrowdLevel)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPreferenceView(*pref))
}

func (h *Handler) updatePreference(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	preferenceID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req PreferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Unable to parse request body.")
		return
	}
	if req.Gym == nil || req.MaxCrowdLevel == nil {
		writeError(w, http.StatusBadRequest, "Gym and max_crowd_level are required.")
		return
	}

	pref, err := h.users.UpdatePreference(r.Context(), user.ID, preferenceID, *req.Gym, *req.MaxCrowdLevel)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toPreferenceView(*pref))
}

func (h *Handler) deletePreference(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	preferenceID, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.users.DeletePreference(r.Context(), user.ID, preferenceID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
