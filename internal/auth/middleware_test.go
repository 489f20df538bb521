package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AdeebK1129/GymCrowd-backend/internal/domain"
)

type stubResolver struct {
	users map[string]*domain.User
	err   error
}

func (s *stubResolver) ResolveToken(ctx context.Context, key string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.users[key], nil
}

func protectedHandler(t *testing.T, sawUser **domain.User) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := FromContext(r.Context())
		if !ok {
			t.Fatal("expected user on request context")
		}
		*sawUser = user
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddlewareResolvesBearerToken(t *testing.T) {
	resolver := &stubResolver{users: map[string]*domain.User{
		"valid-token": {ID: 42, Username: "adeeb"},
	}}

	var sawUser *domain.User
	handler := NewMiddleware(resolver).Wrap(protectedHandler(t, &sawUser))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}
	if sawUser == nil || sawUser.ID != 42 {
		t.Fatalf("expected user 42 on context, got %+v", sawUser)
	}
}

func TestMiddlewareAcceptsLowercaseScheme(t *testing.T) {
	resolver := &stubResolver{users: map[string]*domain.User{
		"valid-token": {ID: 42},
	}}

	var sawUser *domain.User
	handler := NewMiddleware(resolver).Wrap(protectedHandler(t, &sawUser))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "bearer valid-token")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
}

func TestMiddlewareRejectsMissingHeader(t *testing.T) {
	handler := NewMiddleware(&stubResolver{}).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without credentials")
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rr.Code)
	}
	if msg := bodyError(t, rr); msg != "Authentication credentials were not provided." {
		t.Fatalf("unexpected error %q", msg)
	}
}

func TestMiddlewareRejectsUnknownToken(t *testing.T) {
	handler := NewMiddleware(&stubResolver{}).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a revoked token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer revoked")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rr.Code)
	}
	if msg := bodyError(t, rr); msg != "Invalid token." {
		t.Fatalf("unexpected error %q", msg)
	}
}

func TestMiddlewareRejectsMalformedHeader(t *testing.T) {
	handler := NewMiddleware(&stubResolver{}).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a malformed header")
	}))

	for _, header := range []string{"Token abc", "Bearer", "Bearer   "} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401 got %d", header, rr.Code)
		}
	}
}

func TestMiddlewareSurfacesResolverErrors(t *testing.T) {
	resolver := &stubResolver{err: errors.New("store down")}
	handler := NewMiddleware(resolver).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run when the resolver fails")
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rr.Code)
	}
}

func bodyError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error body %q: %v", rr.Body.String(), err)
	}
	return resp.Error
}
