package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/AdeebK1129/GymCrowd-backend/internal/auth"
	"github.com/AdeebK1129/GymCrowd-backend/internal/domain"
)

// fixture wires the full router against in-memory repositories so tests
// exercise routing, authentication, and handlers together.
type fixture struct {
	store   *memStore
	router  http.Handler
	gyms    *fakeGymRepo
	users   *domain.UserService
	workout *domain.WorkoutService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := newMemStore()
	userRepo := &fakeUserRepo{store: store}
	tokenRepo := &fakeTokenRepo{store: store}
	preferenceRepo := &fakePreferenceRepo{store: store}
	gymRepo := &fakeGymRepo{store: store}
	snapshotRepo := &fakeSnapshotRepo{store: store}
	exerciseRepo := &fakeExerciseRepo{store: store}
	workoutRepo := &fakeWorkoutRepo{store: store}
	notificationRepo := &fakeNotificationRepo{store: store}

	userService := domain.NewUserService(userRepo, tokenRepo, preferenceRepo, gymRepo)
	gymService := domain.NewGymService(gymRepo, snapshotRepo)
	workoutService := domain.NewWorkoutService(workoutRepo, exerciseRepo)
	notificationService := domain.NewNotificationService(notificationRepo, userRepo, gymRepo)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(userService, gymService, workoutService, notificationService, logger)

	return &fixture{
		store:   store,
		router:  handler.Router(auth.NewMiddleware(userService)),
		gyms:    gymRepo,
		users:   userService,
		workout: workoutService,
	}
}

// do performs a request against the router. A non-empty token is attached as a
// bearer credential.
func (f *fixture) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func (f *fixture) seedGym(t *testing.T, name string) domain.Gym {
	t.Helper()
	gym, err := f.gyms.Upsert(context.Background(), domain.Gym{
		Name:      name,
		Location:  "Campus Rd",
		Type:      "fitness",
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("failed to seed gym: %v", err)
	}
	return *gym
}

func (f *fixture) seedSnapshot(t *testing.T, gymID int64, occupancy int, lastUpdated time.Time) domain.CrowdSnapshot {
	t.Helper()
	repo := &fakeSnapshotRepo{store: f.store}
	snap, err := repo.Insert(context.Background(), domain.CrowdSnapshot{
		GymID:       gymID,
		Occupancy:   occupancy,
		LastUpdated: lastUpdated,
	})
	if err != nil {
		t.Fatalf("failed to seed snapshot: %v", err)
	}
	return *snap
}

func (f *fixture) seedExercise(t *testing.T, name string) domain.Exercise {
	t.Helper()
	repo := &fakeExerciseRepo{store: f.store}
	if _, err := repo.BulkInsert(context.Background(), []domain.Exercise{{
		Name:         name,
		BodyPart:     "back",
		Target:       "lats",
		Instructions: "Pull the bar to your chest.",
	}}); err != nil {
		t.Fatalf("failed to seed exercise: %v", err)
	}
	exercises, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("failed to list exercises: %v", err)
	}
	return exercises[len(exercises)-1]
}

// signup creates an account through the API and returns its id.
func (f *fixture) signup(t *testing.T, name, email, username, password string) int64 {
	t.Helper()
	rr := f.do(t, http.MethodPost, "/api/users/signup", SignupRequest{
		Name:     name,
		Email:    email,
		Username: username,
		Password: password,
	}, "")
	if rr.Code != http.StatusCreated {
		t.Fatalf("signup failed with %d: %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		User UserView `json:"user"`
	}
	decodeBody(t, rr, &resp)
	return resp.User.UserID
}

// token issues a bearer token through the API.
func (f *fixture) token(t *testing.T, username, password string) string {
	t.Helper()
	rr := f.do(t, http.MethodPost, "/api/users/token", CredentialsRequest{
		Username: username,
		Password: password,
	}, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("token issuance failed with %d: %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	decodeBody(t, rr, &resp)
	return resp.Token
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to decode response %q: %v", rr.Body.String(), err)
	}
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error string `json:"error"`
	}
	decodeBody(t, rr, &resp)
	return resp.Error
}
