package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AdeebK1129/GymCrowd-backend/internal/domain"
)

const userColumns = `user_id, name, email, username, password_hash, created_at`

// UserRepository persists accounts.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository constructs a UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts the user. Unique-constraint failures surface as
// domain.ErrEmailTaken / domain.ErrUsernameTaken and leave no row behind.
func (r *UserRepository) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	const stmt = `INSERT INTO users (name, email, username, password_hash, created_at)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING ` + userColumns

	row := r.pool.QueryRow(ctx, stmt, user.Name, user.Email, user.Username, user.PasswordHash, user.CreatedAt)
	created, err := scanUser(row)
	if err != nil {
		return nil, mapUniqueViolation(err)
	}
	return created, nil
}

// GetByUsername fetches an account by its unique username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE username=$1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// GetDetail returns a user with nested preferences, workouts, and notifications.
func (r *UserRepository) GetDetail(ctx context.Context, userID int64) (*domain.UserDetail, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE user_id=$1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	preferences, err := listPreferencesByUser(ctx, r.pool, userID)
	if err != nil {
		return nil, err
	}
	workouts, err := listWorkoutsByUser(ctx, r.pool, userID)
	if err != nil {
		return nil, err
	}
	notifications, err := listNotificationsByUser(ctx, r.pool, userID)
	if err != nil {
		return nil, err
	}

	return &domain.UserDetail{
		User:          *user,
		Preferences:   preferences,
		Workouts:      workouts,
		Notifications: notifications,
	}, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Username, &user.PasswordHash, &user.CreatedAt); err != nil {
		return nil, err
	}
	return &user, nil
}
