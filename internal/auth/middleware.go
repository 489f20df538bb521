// Package auth enforces opaque bearer-token authentication.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/AdeebK1129/GymCrowd-backend/internal/domain"
)

// ErrMissingToken is returned when the Authorization header is absent.
var ErrMissingToken = errors.New("missing bearer token")

// ErrInvalidToken is returned for malformed headers or revoked/unknown tokens.
var ErrInvalidToken = errors.New("invalid bearer token")

// TokenResolver maps a presented token to its owning user. A nil user with a
// nil error means the token is unknown or revoked.
type TokenResolver interface {
	ResolveToken(ctx context.Context, key string) (*domain.User, error)
}

// Middleware validates bearer tokens and stores the acting user on the request
// context. Authentication is rejected before any resource lookup.
type Middleware struct {
	resolver TokenResolver
}

// NewMiddleware constructs Middleware backed by the given resolver.
func NewMiddleware(resolver TokenResolver) Middleware {
	return Middleware{resolver: resolver}
}

// Wrap attaches authentication handling to an http.Handler.
func (m Middleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.resolveRequest(r)
		if err != nil {
			writeAuthError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

func (m Middleware) resolveRequest(r *http.Request) (*domain.User, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, ErrMissingToken
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return nil, ErrInvalidToken
	}
	key := strings.TrimSpace(header[len("Bearer "):])
	if key == "" {
		return nil, ErrInvalidToken
	}

	user, err := m.resolver.ResolveToken(r.Context(), key)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

func writeAuthError(w http.ResponseWriter, err error) {
	status := http.StatusUnauthorized
	message := "Authentication credentials were not provided."
	switch {
	case errors.Is(err, ErrInvalidToken):
		message = "Invalid token."
	case errors.Is(err, ErrMissingToken):
	default:
		status = http.StatusInternalServerError
		message = "Unexpected server error."
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
