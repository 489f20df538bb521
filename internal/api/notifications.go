package api

import (
	"encoding/json"
	"net/http"

	"github.com/AdeebK1129/GymCrowd-backend/internal/auth"
)

// NotificationRequest is the payload for creating a notification.
type NotificationRequest struct {
	User    *int64 `json:"user"`
	Gym     *int64 `json:"gym"`
	Message string `json:"message"`
}

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notifications.List(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	views := make([]NotificationView, 0, len(notifications))
	for _, n := range notifications {
		views = append(views, toNotificationView(n))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) createNotification(w http.ResponseWriter, r *http.Request) {
	var req NotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Unable to parse request body.")
		return
	}
	if req.User == nil || req.Gym == nil {
		writeError(w, http.StatusBadRequest, "User, gym, and message are required.")
		return
	}

	notification, err := h.notifications.Create(r.Context(), *req.User, *req.Gym, req.Message)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toNotificationView(*notification))
}

func (h *Handler) getNotification(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	notificationID, ok := pathID(w, r)
	if !ok {
		return
	}

	notification, err := h.notifications.Get(r.Context(), user.ID, notificationID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toNotificationView(*notification))
}

func (h *Handler) deleteNotification(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	notificationID, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.notifications.Delete(r.Context(), user.ID, notificationID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
