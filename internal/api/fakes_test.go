package api

import (
	"context"
	"sort"
	"sync"

	"github.com/AdeebK1129/GymCrowd-backend/internal/domain"
)

// memStore backs the in-memory repository fakes. All fakes share one store so
// cross-aggregate reads (user detail, gym detail) see consistent data.
type memStore struct {
	mu sync.Mutex

	users         map[int64]domain.User
	tokens        map[string]domain.Token
	preferences   map[int64]domain.Preference
	gyms          map[int64]domain.Gym
	snapshots     map[int64]domain.CrowdSnapshot
	exercises     map[int64]domain.Exercise
	workouts      map[int64]domain.Workout
	entries       map[int64]domain.WorkoutEntry
	notifications map[int64]domain.Notification

	nextID int64
}

func newMemStore() *memStore {
	return &memStore{
		users:         map[int64]domain.User{},
		tokens:        map[string]domain.Token{},
		preferences:   map[int64]domain.Preference{},
		gyms:          map[int64]domain.Gym{},
		snapshots:     map[int64]domain.CrowdSnapshot{},
		exercises:     map[int64]domain.Exercise{},
		workouts:      map[int64]domain.Workout{},
		entries:       map[int64]domain.WorkoutEntry{},
		notifications: map[int64]domain.Notification{},
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) snapshotsForGym(gymID int64) []domain.CrowdSnapshot {
	var out []domain.CrowdSnapshot
	for _, snap := range s.snapshots {
		if snap.GymID == gymID {
			out = append(out, snap)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastUpdated.Equal(out[j].LastUpdated) {
			return out[i].LastUpdated.After(out[j].LastUpdated)
		}
		return out[i].ID > out[j].ID
	})
	if out == nil {
		out = []domain.CrowdSnapshot{}
	}
	return out
}

func (s *memStore) preferencesForUser(userID int64) []domain.Preference {
	var out []domain.Preference
	for _, pref := range s.preferences {
		if pref.UserID == userID {
			out = append(out, pref)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if out == nil {
		out = []domain.Preference{}
	}
	return out
}

func (s *memStore) workoutDetail(workoutID int64) *domain.WorkoutDetail {
	workout, ok := s.workouts[workoutID]
	if !ok {
		return nil
	}
	entries := []domain.WorkoutEntry{}
	for _, entry := range s.entries {
		if entry.WorkoutID == workoutID {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return &domain.WorkoutDetail{Workout: workout, Entries: entries}
}

func (s *memStore) workoutsForUser(userID int64) []domain.WorkoutDetail {
	var ids []int64
	for id, workout := range s.workouts {
		if workout.UserID == userID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]domain.WorkoutDetail, 0, len(ids))
	for _, id := range ids {
		out = append(out, *s.workoutDetail(id))
	}
	return out
}

func (s *memStore) notificationsForUser(userID int64) []domain.Notification {
	var out []domain.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if out == nil {
		out = []domain.Notification{}
	}
	return out
}

type fakeUserRepo struct{ store *memStore }

func (f *fakeUserRepo) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for _, existing := range f.store.users {
		if existing.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
		if existing.Username == user.Username {
			return nil, domain.ErrUsernameTaken
		}
	}
	user.ID = f.store.id()
	f.store.users[user.ID] = user
	return &user, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for _, user := range f.store.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetDetail(ctx context.Context, userID int64) (*domain.UserDetail, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	user, ok := f.store.users[userID]
	if !ok {
		return nil, nil
	}
	return &domain.UserDetail{
		User:          user,
		Preferences:   f.store.preferencesForUser(userID),
		Workouts:      f.store.workoutsForUser(userID),
		Notifications: f.store.notificationsForUser(userID),
	}, nil
}

type fakeTokenRepo struct{ store *memStore }

func (f *fakeTokenRepo) Replace(ctx context.Context, token domain.Token) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for key, existing := range f.store.tokens {
		if existing.UserID == token.UserID {
			delete(f.store.tokens, key)
		}
	}
	f.store.tokens[token.Key] = token
	return nil
}

func (f *fakeTokenRepo) Resolve(ctx context.Context, key string) (*domain.User, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	token, ok := f.store.tokens[key]
	if !ok {
		return nil, nil
	}
	user, ok := f.store.users[token.UserID]
	if !ok {
		return nil, nil
	}
	u := user
	return &u, nil
}

func (f *fakeTokenRepo) DeleteForUser(ctx context.Context, userID int64) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for key, token := range f.store.tokens {
		if token.UserID == userID {
			delete(f.store.tokens, key)
		}
	}
	return nil
}

type fakePreferenceRepo struct{ store *memStore }

func (f *fakePreferenceRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Preference, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return f.store.preferencesForUser(userID), nil
}

func (f *fakePreferenceRepo) Create(ctx context.Context, userID, gymID int64, maxCrowdLevel float64) (*domain.Preference, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for _, pref := range f.store.preferences {
		if pref.UserID == userID && pref.Gym.ID == gymID {
			return nil, domain.ErrPreferenceExists
		}
	}
	pref := domain.Preference{
		ID:            f.store.id(),
		UserID:        userID,
		Gym:           f.store.gyms[gymID],
		MaxCrowdLevel: maxCrowdLevel,
	}
	f.store.preferences[pref.ID] = pref
	return &pref, nil
}

func (f *fakePreferenceRepo) Get(ctx context.Context, preferenceID int64) (*domain.Preference, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	pref, ok := f.store.preferences[preferenceID]
	if !ok {
		return nil, nil
	}
	return &pref, nil
}

func (f *fakePreferenceRepo) Update(ctx context.Context, preferenceID, gymID int64, maxCrowdLevel float64) (*domain.Preference, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	pref, ok := f.store.preferences[preferenceID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	pref.Gym = f.store.gyms[gymID]
	pref.MaxCrowdLevel = maxCrowdLevel
	f.store.preferences[preferenceID] = pref
	return &pref, nil
}

func (f *fakePreferenceRepo) Delete(ctx context.Context, preferenceID int64) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if _, ok := f.store.preferences[preferenceID]; !ok {
		return domain.ErrNotFound
	}
	delete(f.store.preferences, preferenceID)
	return nil
}

type fakeGymRepo struct{ store *memStore }

func (f *fakeGymRepo) List(ctx context.Context) ([]domain.GymDetail, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var ids []int64
	for id := range f.store.gyms {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]domain.GymDetail, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.GymDetail{Gym: f.store.gyms[id], CrowdData: f.store.snapshotsForGym(id)})
	}
	return out, nil
}

func (f *fakeGymRepo) Get(ctx context.Context, gymID int64) (*domain.GymDetail, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	gym, ok := f.store.gyms[gymID]
	if !ok {
		return nil, nil
	}
	return &domain.GymDetail{Gym: gym, CrowdData: f.store.snapshotsForGym(gymID)}, nil
}

func (f *fakeGymRepo) GetByName(ctx context.Context, name string) (*domain.Gym, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for _, gym := range f.store.gyms {
		if gym.Name == name {
			g := gym
			return &g, nil
		}
	}
	return nil, nil
}

func (f *fakeGymRepo) Upsert(ctx context.Context, gym domain.Gym) (*domain.Gym, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for id, existing := range f.store.gyms {
		if existing.Name == gym.Name {
			existing.Location = gym.Location
			existing.Type = gym.Type
			f.store.gyms[id] = existing
			return &existing, nil
		}
	}
	gym.ID = f.store.id()
	f.store.gyms[gym.ID] = gym
	return &gym, nil
}

type fakeSnapshotRepo struct{ store *memStore }

func (f *fakeSnapshotRepo) Insert(ctx context.Context, snapshot domain.CrowdSnapshot) (*domain.CrowdSnapshot, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	snapshot.ID = f.store.id()
	f.store.snapshots[snapshot.ID] = snapshot
	return &snapshot, nil
}

func (f *fakeSnapshotRepo) List(ctx context.Context) ([]domain.CrowdSnapshot, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var out []domain.CrowdSnapshot
	for _, snap := range f.store.snapshots {
		out = append(out, snap)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastUpdated.Equal(out[j].LastUpdated) {
			return out[i].LastUpdated.After(out[j].LastUpdated)
		}
		return out[i].ID > out[j].ID
	})
	if out == nil {
		out = []domain.CrowdSnapshot{}
	}
	return out, nil
}

func (f *fakeSnapshotRepo) Get(ctx context.Context, crowdID int64) (*domain.CrowdSnapshot, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	snap, ok := f.store.snapshots[crowdID]
	if !ok {
		return nil, nil
	}
	return &snap, nil
}

type fakeExerciseRepo struct{ store *memStore }

func (f *fakeExerciseRepo) List(ctx context.Context) ([]domain.Exercise, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var out []domain.Exercise
	for _, ex := range f.store.exercises {
		out = append(out, ex)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if out == nil {
		out = []domain.Exercise{}
	}
	return out, nil
}

func (f *fakeExerciseRepo) Get(ctx context.Context, exerciseID int64) (*domain.Exercise, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	ex, ok := f.store.exercises[exerciseID]
	if !ok {
		return nil, nil
	}
	return &ex, nil
}

func (f *fakeExerciseRepo) BulkInsert(ctx context.Context, exercises []domain.Exercise) (int, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for _, ex := range exercises {
		ex.ID = f.store.id()
		f.store.exercises[ex.ID] = ex
	}
	return len(exercises), nil
}

type fakeWorkoutRepo struct{ store *memStore }

func (f *fakeWorkoutRepo) ListByUser(ctx context.Context, userID int64) ([]domain.WorkoutDetail, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return f.store.workoutsForUser(userID), nil
}

func (f *fakeWorkoutRepo) Create(ctx context.Context, workout domain.Workout) (*domain.Workout, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	workout.ID = f.store.id()
	f.store.workouts[workout.ID] = workout
	return &workout, nil
}

func (f *fakeWorkoutRepo) Get(ctx context.Context, workoutID int64) (*domain.WorkoutDetail, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return f.store.workoutDetail(workoutID), nil
}

func (f *fakeWorkoutRepo) Delete(ctx context.Context, workoutID int64) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if _, ok := f.store.workouts[workoutID]; !ok {
		return domain.ErrNotFound
	}
	delete(f.store.workouts, workoutID)
	for id, entry := range f.store.entries {
		if entry.WorkoutID == workoutID {
			delete(f.store.entries, id)
		}
	}
	return nil
}

func (f *fakeWorkoutRepo) ListEntriesByUser(ctx context.Context, userID int64) ([]domain.WorkoutEntry, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var out []domain.WorkoutEntry
	for _, entry := range f.store.entries {
		workout, ok := f.store.workouts[entry.WorkoutID]
		if ok && workout.UserID == userID {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if out == nil {
		out = []domain.WorkoutEntry{}
	}
	return out, nil
}

func (f *fakeWorkoutRepo) CreateEntry(ctx context.Context, entry domain.WorkoutEntry, exerciseID int64) (*domain.WorkoutEntry, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	entry.ID = f.store.id()
	entry.Exercise = f.store.exercises[exerciseID]
	f.store.entries[entry.ID] = entry
	return &entry, nil
}

type fakeNotificationRepo struct{ store *memStore }

func (f *fakeNotificationRepo) List(ctx context.Context) ([]domain.Notification, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var out []domain.Notification
	for _, n := range f.store.notifications {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if out == nil {
		out = []domain.Notification{}
	}
	return out, nil
}

func (f *fakeNotificationRepo) Create(ctx context.Context, notification domain.Notification) (*domain.Notification, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	notification.ID = f.store.id()
	f.store.notifications[notification.ID] = notification
	return &notification, nil
}

func (f *fakeNotificationRepo) Get(ctx context.Context, notificationID int64) (*domain.Notification, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	n, ok := f.store.notifications[notificationID]
	if !ok {
		return nil, nil
	}
	return &n, nil
}

func (f *fakeNotificationRepo) Delete(ctx context.Context, notificationID int64) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if _, ok := f.store.notifications[notificationID]; !ok {
		return domain.ErrNotFound
	}
	delete(f.store.notifications, notificationID)
	return nil
}
