// Package postgres provides pgx-backed persistence for the GymCrowd backend.
package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/AdeebK1129/GymCrowd-backend/internal/domain"
)

const uniqueViolation = "23505"

// mapUniqueViolation translates unique-index failures into domain sentinels so
// the API layer can produce the exact conflict messages.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}
	switch pgErr.ConstraintName {
	case "users_email_key":
		return domain.ErrEmailTaken
	case "users_username_key":
		return domain.ErrUsernameTaken
	case "user_preferences_user_id_gym_id_key":
		return domain.ErrPreferenceExists
	}
	return err
}
