package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// pathID parses the {id} route parameter. Non-numeric ids behave like unknown
// resources.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusNotFound, "Not found.")
		return 0, false
	}
	return id, true
}

func (h *Handler) listGyms(w http.ResponseWriter, r *http.Request) {
	gyms, err := h.gyms.ListGyms(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	views := make([]GymView, 0, len(gyms))
	for _, gym := range gyms {
		views = append(views, toGymView(gym))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) getGym(w http.ResponseWriter, r *http.Request) {
	gymID, ok := pathID(w, r)
	if !ok {
		return
	}

	detail, err := h.gyms.GetGym(r.Context(), gymID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toGymView(*detail))
}

func (h *Handler) listCrowdData(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.gyms.ListSnapshots(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	views := make([]SnapshotView, 0, len(snapshots))
	for _, snap := range snapshots {
		views = append(views, toSnapshotView(snap))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) getCrowdData(w http.ResponseWriter, r *http.Request) {
	crowdID, ok := pathID(w, r)
	if !ok {
		return
	}

	snap, err := h.gyms.GetSnapshot(r.Context(), crowdID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toSnapshotView(*snap))
}
