package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AdeebK1129/GymCrowd-backend/internal/domain"
)

// TokenRepository persists opaque bearer tokens, one per user.
type TokenRepository struct {
	pool *pgxpool.Pool
}

// NewTokenRepository constructs a TokenRepository.
func NewTokenRepository(pool *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{pool: pool}
}

// Replace deletes any existing token for the user and stores the new one in a
// single transaction, keeping the one-token-per-user invariant.
func (r *TokenRepository) Replace(ctx context.Context, token domain.Token) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM auth_tokens WHERE user_id=$1`, token.UserID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO auth_tokens (token, user_id, created_at) VALUES ($1,$2,$3)`,
		token.Key, token.UserID, token.CreatedAt); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Resolve maps a presented bearer token to its owning user.
func (r *TokenRepository) Resolve(ctx context.Context, key string) (*domain.User, error) {
	const query = `SELECT u.user_id, u.name, u.email, u.username, u.password_hash, u.created_at
        FROM auth_tokens t JOIN users u ON u.user_id = t.user_id
        WHERE t.token=$1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// DeleteForUser revokes the user's token if one exists.
func (r *TokenRepository) DeleteForUser(ctx context.Context, userID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM auth_tokens WHERE user_id=$1`, userID)
	return err
}
