package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/AdeebK1129/GymCrowd-backend/internal/auth"
	"github.com/AdeebK1129/GymCrowd-backend/internal/domain"
	"github.com/AdeebK1129/GymCrowd-backend/internal/middleware"
)

// Handler coordinates HTTP requests with the domain services.
type Handler struct {
	users         *domain.UserService
	gyms          *domain.GymService
	workouts      *domain.WorkoutService
	notifications *domain.NotificationService
	logger        *slog.Logger
}

// NewHandler builds a Handler.
func NewHandler(users *domain.UserService, gyms *domain.GymService, workouts *domain.WorkoutService, notifications *domain.NotificationService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		users:         users,
		gyms:          gyms,
		workouts:      workouts,
		notifications: notifications,
		logger:        logger,
	}
}

// Router wires the REST surface. Protected routes sit behind the bearer-token
// middleware; authentication is checked before any resource lookup.
func (h *Handler) Router(authMiddleware auth.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.StripSlashes)
	r.Use(middleware.Metrics)
	r.Use(middleware.RequestLogger(h.logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", healthz)

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/signup", h.signup)
		r.Post("/login", h.login)
		r.Post("/token", h.issueToken)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Wrap)
			r.Post("/logout", h.logout)
			r.Get("/preferences", h.listPreferences)
			r.Post("/preferences", h.createPreference)
			r.Put("/preferences/{id}", h.updatePreference)
			r.Delete("/preferences/{id}", h.deletePreference)
		})
	})

	r.Route("/api/gyms", func(r chi.Router) {
		r.Get("/", h.listGyms)
		r.Get("/crowddata", h.listCrowdData)
		r.Get("/crowddata/{id}", h.getCrowdData)
		r.Get("/{id}", h.getGym)
	})

	r.Route("/api/workouts", func(r chi.Router) {
		r.Get("/exercises", h.listExercises)
		r.Get("/exercises/{id}", h.getExercise)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Wrap)
			r.Get("/", h.listWorkouts)
			r.Post("/", h.createWorkout)
			r.Get("/workout-exercises", h.listWorkoutEntries)
			r.Post("/workout-exercises", h.createWorkoutEntry)
			r.Get("/{id}", h.getWorkout)
			r.Delete("/{id}", h.deleteWorkout)
		})
	})

	r.Route("/api/notifications", func(r chi.Router) {
		r.Get("/", h.listNotifications)
		r.Post("/", h.createNotification)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Wrap)
			r.Get("/{id}", h.getNotification)
			r.Delete("/{id}", h.deleteNotification)
		})
	})

	return r
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
