package domain

import (
	"context"
	"strings"
	"time"
)

// Exercise is a row of the global exercise catalog. Populated by the seed step
// and read-only through the API.
type Exercise struct {
	ID               int64
	Name             string
	BodyPart         string
	Equipment        *string
	GifURL           *string
	Target           string
	SecondaryMuscles *string
	Instructions     string
}

// Workout is one logged session owned by a user.
type Workout struct {
	ID        int64
	UserID    int64
	Date      time.Time
	CreatedAt time.Time
}

// WorkoutEntry is one exercise performed within a workout. Entries are removed
// only by cascade when their workout is deleted.
type WorkoutEntry struct {
	ID        int64
	WorkoutID int64
	Exercise  Exercise
	Sets      int
	Reps      int
	Weight    *float64
}

// WorkoutDetail bundles a workout with its entries in insertion order.
type WorkoutDetail struct {
	Workout
	Entries []WorkoutEntry
}

// ExerciseRepository captures read access to the exercise catalog.
type ExerciseRepository interface {
	List(ctx context.Context) ([]Exercise, error)
	Get(ctx context.Context, exerciseID int64) (*Exercise, error)
	BulkInsert(ctx context.Context, exercises []Exercise) (int, error)
}

// WorkoutRepository captures persistence operations for workouts and entries.
type WorkoutRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]WorkoutDetail, error)
	Create(ctx context.Context, workout Workout) (*Workout, error)
	Get(ctx context.Context, workoutID int64) (*WorkoutDetail, error)
	// Delete removes the workout; entries go with it by cascade.
	Delete(ctx context.Context, workoutID int64) error
	ListEntriesByUser(ctx context.Context, userID int64) ([]WorkoutEntry, error)
	CreateEntry(ctx context.Context, entry WorkoutEntry, exerciseID int64) (*WorkoutEntry, error)
}

// WorkoutService orchestrates workout logging.
type WorkoutService struct {
	workouts  WorkoutRepository
	exercises ExerciseRepository
}

// NewWorkoutService constructs a WorkoutService.
func NewWorkoutService(workouts WorkoutRepository, exercises ExerciseRepository) *WorkoutService {
	return &WorkoutService{workouts: workouts, exercises: exercises}
}

// ListExercises returns the full catalog.
func (s *WorkoutService) ListExercises(ctx context.Context) ([]Exercise, error) {
	return s.exercises.List(ctx)
}

// GetExercise returns one catalog entry.
func (s *WorkoutService) GetExercise(ctx context.Context, exerciseID int64) (*Exercise, error) {
	exercise, err := s.exercises.Get(ctx, exerciseID)
	if err != nil {
		return nil, err
	}
	if exercise == nil {
		return nil, ErrNotFound
	}
	return exercise, nil
}

// ListWorkouts returns the acting user's workouts with nested entries.
func (s *WorkoutService) ListWorkouts(ctx context.Context, userID int64) ([]WorkoutDetail, error) {
	return s.workouts.ListByUser(ctx, userID)
}

// CreateWorkout logs a new session for the acting user.
func (s *WorkoutService) CreateWorkout(ctx context.Context, userID int64, date string) (*WorkoutDetail, error) {
	if strings.TrimSpace(date) == "" {
		return nil, Invalid("Date is required.")
	}
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, Invalid("Date must be in YYYY-MM-DD format.")
	}

	workout, err := s.workouts.Create(ctx, Workout{
		UserID:    userID,
		Date:      parsed,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	return &WorkoutDetail{Workout: *workout, Entries: []WorkoutEntry{}}, nil
}

// GetWorkout returns an owned workout with entries in creation order.
func (s *WorkoutService) GetWorkout(ctx context.Context, userID, workoutID int64) (*WorkoutDetail, error) {
	detail, err := s.workouts.Get(ctx, workoutID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, ErrNotFound
	}
	if detail.UserID != userID {
		return nil, ErrNotOwner
	}
	return detail, nil
}

// DeleteWorkout removes an owned workout; its entries cascade away with it.
func (s *WorkoutService) DeleteWorkout(ctx context.Context, userID, workoutID int64) error {
	detail, err := s.workouts.Get(ctx, workoutID)
	if err != nil {
		return err
	}
	if detail == nil {
		return ErrNotFound
	}
	if detail.UserID != userID {
		return ErrNotOwner
	}
	return s.workouts.Delete(ctx, workoutID)
}

// ListEntries returns every entry across the acting user's workouts.
func (s *WorkoutService) ListEntries(ctx context.Context, userID int64) ([]WorkoutEntry, error) {
	return s.workouts.ListEntriesByUser(ctx, userID)
}

// AddEntryInput captures the payload for logging an exercise into a workout.
type AddEntryInput struct {
	WorkoutID  int64
	ExerciseID int64
	Sets       int
	Reps       int
	Weight     *float64
}

// AddEntry validates references and ownership, then appends an entry to the
// workout.
func (s *WorkoutService) AddEntry(ctx context.Context, userID int64, input AddEntryInput) (*WorkoutEntry, error) {
	if input.Sets <= 0 {
		return nil, Invalid("Sets must be greater than zero.")
	}
	if input.Reps <= 0 {
		return nil, Invalid("Reps must be greater than zero.")
	}

	workout, err := s.workouts.Get(ctx, input.WorkoutID)
	if err != nil {
		return nil, err
	}
	if workout == nil {
		return nil, Invalid("The referenced workout does not exist.")
	}
	if workout.UserID != userID {
		return nil, ErrNotOwner
	}

	exercise, err := s.exercises.Get(ctx, input.ExerciseID)
	if err != nil {
		return nil, err
	}
	if exercise == nil {
		return nil, Invalid("The referenced exercise does not exist.")
	}

	return s.workouts.CreateEntry(ctx, WorkoutEntry{
		WorkoutID: input.WorkoutID,
		Sets:      input.Sets,
		Reps:      input.Reps,
		Weight:    input.Weight,
	}, input.ExerciseID)
}
