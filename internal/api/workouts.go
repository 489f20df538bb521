package api

import (
	"encoding/json"
	"net/http"

	"github.com/AdeebK1129/GymCrowd-backend/internal/auth"
	"github.com/AdeebK1129/GymCrowd-backend/internal/domain"
)

// WorkoutRequest is the payload for logging a workout session.
type WorkoutRequest struct {
	Date string `json:"date"`
}

// EntryRequest is the payload for logging an exercise into a workout.
type EntryRequest struct {
	Workout  *int64   `json:"workout"`
	Exercise *int64   `json:"exercise"`
	Sets     int      `json:"sets"`
	Reps     int      `json:"reps"`
	Weight   *float64 `json:"weight"`
}

func (h *Handler) listExercises(w http.ResponseWriter, r *http.Request) {
	exercises, err := h.workouts.ListExercises(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	views := make([]ExerciseView, 0, len(exercises))
	for _, ex := range exercises {
		views = append(views, toExerciseView(ex))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) getExercise(w http.ResponseWriter, r *http.Request) {
	exerciseID, ok := pathID(w, r)
	if !ok {
		return
	}

	exercise, err := h.workouts.GetExercise(r.Context(), exerciseID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toExerciseView(*exercise))
}

func (h *Handler) listWorkouts(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	workouts, err := h.workouts.ListWorkouts(r.Context(), user.ID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	views := make([]WorkoutView, 0, len(workouts))
	for _, workout := range workouts {
		views = append(views, toWorkoutView(workout))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) createWorkout(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	var req WorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Unable to parse request body.")
		return
	}

	detail, err := h.workouts.CreateWorkout(r.Context(), user.ID, req.Date)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toWorkoutView(*detail))
}

func (h *Handler) getWorkout(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	workoutID, ok := pathID(w, r)
	if !ok {
		return
	}

	detail, err := h.workouts.GetWorkout(r.Context(), user.ID, workoutID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toWorkoutView(*detail))
}

func (h *Handler) deleteWorkout(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	workoutID, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.workouts.DeleteWorkout(r.Context(), user.ID, workoutID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listWorkoutEntries(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	entries, err := h.workouts.ListEntries(r.Context(), user.ID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	views := make([]EntryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, toEntryView(entry))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) createWorkoutEntry(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	var req EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Unable to parse request body.")
		return
	}
	if req.Workout == nil || req.Exercise == nil {
		writeError(w, http.StatusBadRequest, "Workout and exercise are required.")
		return
	}

	entry, err := h.workouts.AddEntry(r.Context(), user.ID, domain.AddEntryInput{
		WorkoutID:  *req.Workout,
		ExerciseID: *req.Exercise,
		Sets:       req.Sets,
		Reps:       req.Reps,
		Weight:     req.Weight,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEntryView(*entry))
}
