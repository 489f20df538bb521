package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AdeebK1129/GymCrowd-backend/internal/domain"
)

const exerciseColumns = `exercise_id, name, body_part, equipment, gif_url, target, secondary_muscles, instructions`

// ExerciseRepository serves the read-only exercise catalog.
type ExerciseRepository struct {
	pool *pgxpool.Pool
}

// NewExerciseRepository constructs an ExerciseRepository.
func NewExerciseRepository(pool *pgxpool.Pool) *ExerciseRepository {
	return &ExerciseRepository{pool: pool}
}

// List returns the full catalog.
func (r *ExerciseRepository) List(ctx context.Context) ([]domain.Exercise, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+exerciseColumns+` FROM exercises ORDER BY exercise_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := make([]domain.Exercise, 0)
	for rows.Next() {
		var ex domain.Exercise
		if err := scanExerciseInto(rows, &ex); err != nil {
			return nil, err
		}
		exercises = append(exercises, ex)
	}
	return exercises, rows.Err()
}

// Get returns one catalog entry, or nil when unknown.
func (r *ExerciseRepository) Get(ctx context.Context, exerciseID int64) (*domain.Exercise, error) {
	var ex domain.Exercise
	row := r.pool.QueryRow(ctx, `SELECT `+exerciseColumns+` FROM exercises WHERE exercise_id=$1`, exerciseID)
	if err := scanExerciseInto(row, &ex); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &ex, nil
}

// BulkInsert loads catalog entries in one transaction. Used by the seed step.
func (r *ExerciseRepository) BulkInsert(ctx context.Context, exercises []domain.Exercise) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	const stmt = `INSERT INTO exercises (name, body_part, equipment, gif_url, target, secondary_muscles, instructions)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`

	inserted := 0
	for _, ex := range exercises {
		if _, err := tx.Exec(ctx, stmt, ex.Name, ex.BodyPart, ex.Equipment, ex.GifURL, ex.Target, ex.SecondaryMuscles, ex.Instructions); err != nil {
			return 0, err
		}
		inserted++
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return inserted, nil
}

func scanExerciseInto(row pgx.Row, ex *domain.Exercise) error {
	return row.Scan(&ex.ID, &ex.Name, &ex.BodyPart, &ex.Equipment, &ex.GifURL, &ex.Target, &ex.SecondaryMuscles, &ex.Instructions)
}

// WorkoutRepository persists workouts and their exercise entries.
type WorkoutRepository struct {
	pool *pgxpool.Pool
}

// NewWorkoutRepository constructs a WorkoutRepository.
func NewWorkoutRepository(pool *pgxpool.Pool) *WorkoutRepository {
	return &WorkoutRepository{pool: pool}
}

// ListByUser returns the user's workouts with nested entries in insertion order.
func (r *WorkoutRepository) ListByUser(ctx context.Context, userID int64) ([]domain.WorkoutDetail, error) {
	return listWorkoutsByUser(ctx, r.pool, userID)
}

// Create logs one workout row.
func (r *WorkoutRepository) Create(ctx context.Context, workout domain.Workout) (*domain.Workout, error) {
	const stmt = `INSERT INTO user_workouts (user_id, workout_date, created_at)
        VALUES ($1,$2,$3)
        RETURNING workout_id, user_id, workout_date, created_at`

	var out domain.Workout
	row := r.pool.QueryRow(ctx, stmt, workout.UserID, workout.Date, workout.CreatedAt)
	if err := row.Scan(&out.ID, &out.UserID, &out.Date, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns one workout with entries, or nil when unknown.
func (r *WorkoutRepository) Get(ctx context.Context, workoutID int64) (*domain.WorkoutDetail, error) {
	const query = `SELECT workout_id, user_id, workout_date, created_at
        FROM user_workouts WHERE workout_id=$1`

	var detail domain.WorkoutDetail
	row := r.pool.QueryRow(ctx, query, workoutID)
	if err := row.Scan(&detail.ID, &detail.UserID, &detail.Date, &detail.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	entries, err := r.listEntriesForWorkout(ctx, workoutID)
	if err != nil {
		return nil, err
	}
	detail.Entries = entries
	return &detail, nil
}

// Delete removes the workout; entries cascade away at the store level.
func (r *WorkoutRepository) Delete(ctx context.Context, workoutID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM user_workouts WHERE workout_id=$1`, workoutID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const entryQuery = `SELECT we.entry_id, we.workout_id, we.sets, we.reps, we.weight, ` + prefixedExerciseColumns + `
    FROM workout_exercises we JOIN exercises e ON e.exercise_id = we.exercise_id`

const prefixedExerciseColumns = `e.exercise_id, e.name, e.body_part, e.equipment, e.gif_url, e.target, e.secondary_muscles, e.instructions`

// ListEntriesByUser returns every entry across the user's workouts.
func (r *WorkoutRepository) ListEntriesByUser(ctx context.Context, userID int64) ([]domain.WorkoutEntry, error) {
	const query = entryQuery + `
        JOIN user_workouts w ON w.workout_id = we.workout_id
        WHERE w.user_id=$1 ORDER BY we.entry_id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// CreateEntry appends one exercise entry to a workout.
func (r *WorkoutRepository) CreateEntry(ctx context.Context, entry domain.WorkoutEntry, exerciseID int64) (*domain.WorkoutEntry, error) {
	const stmt = `INSERT INTO workout_exercises (workout_id, exercise_id, sets, reps, weight)
        VALUES ($1,$2,$3,$4,$5) RETURNING entry_id`

	var entryID int64
	if err := r.pool.QueryRow(ctx, stmt, entry.WorkoutID, exerciseID, entry.Sets, entry.Reps, entry.Weight).Scan(&entryID); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, entryQuery+` WHERE we.entry_id=$1`, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, domain.ErrNotFound
	}
	return &entries[0], nil
}

func (r *WorkoutRepository) listEntriesForWorkout(ctx context.Context, workoutID int64) ([]domain.WorkoutEntry, error) {
	rows, err := r.pool.Query(ctx, entryQuery+` WHERE we.workout_id=$1 ORDER BY we.entry_id`, workoutID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

func listWorkoutsByUser(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]domain.WorkoutDetail, error) {
	const query = `SELECT workout_id, user_id, workout_date, created_at
        FROM user_workouts WHERE user_id=$1 ORDER BY workout_id`

	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}

	details := make([]domain.WorkoutDetail, 0)
	for rows.Next() {
		var detail domain.WorkoutDetail
		if err := rows.Scan(&detail.ID, &detail.UserID, &detail.Date, &detail.CreatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		details = append(details, detail)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range details {
		entryRows, err := pool.Query(ctx, entryQuery+` WHERE we.workout_id=$1 ORDER BY we.entry_id`, details[i].ID)
		if err != nil {
			return nil, err
		}
		entries, err := scanEntries(entryRows)
		entryRows.Close()
		if err != nil {
			return nil, err
		}
		details[i].Entries = entries
	}
	return details, nil
}

func scanEntries(rows pgx.Rows) ([]domain.WorkoutEntry, error) {
	entries := make([]domain.WorkoutEntry, 0)
	for rows.Next() {
		var entry domain.WorkoutEntry
		if err := rows.Scan(&entry.ID, &entry.WorkoutID, &entry.Sets, &entry.Reps, &entry.Weight,
			&entry.Exercise.ID, &entry.Exercise.Name, &entry.Exercise.BodyPart, &entry.Exercise.Equipment,
			&entry.Exercise.GifURL, &entry.Exercise.Target, &entry.Exercise.SecondaryMuscles, &entry.Exercise.Instructions); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
