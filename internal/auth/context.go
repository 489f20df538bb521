package auth

import (
	"context"

	"github.com/AdeebK1129/GymCrowd-backend/internal/domain"
)

type contextKey string

const userKey contextKey = "gymcrowd-auth-user"

// WithUser stores the authenticated user on the context.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// FromContext retrieves the user stored by WithUser.
func FromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok
}
