package domain

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is the account record. Email and username are globally unique.
type User struct {
	ID           int64
	Name         string
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// UserDetail bundles a user with the collections nested into API responses.
type UserDetail struct {
	User
	Preferences   []Preference
	Workouts      []WorkoutDetail
	Notifications []Notification
}

// Preference records the crowd level a user tolerates for one gym. At most one
// preference exists per (user, gym) pair.
type Preference struct {
	ID            int64
	UserID        int64
	Gym           Gym
	MaxCrowdLevel float64
	CreatedAt     time.Time
}

// Token is an opaque bearer credential. Each user holds at most one: issuing a
// new token replaces the previous one, logout deletes it.
type Token struct {
	Key       string
	UserID    int64
	CreatedAt time.Time
}

// UserRepository captures persistence operations for accounts.
type UserRepository interface {
	// Create inserts the user, returning ErrEmailTaken or ErrUsernameTaken on
	// unique-constraint collisions. No row is created on rejection.
	Create(ctx context.Context, user User) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetDetail(ctx context.Context, userID int64) (*UserDetail, error)
}

// TokenRepository captures persistence operations for bearer tokens.
type TokenRepository interface {
	// Replace deletes any existing token for the user and stores the new one.
	Replace(ctx context.Context, token Token) error
	// Resolve returns the user owning the token, or nil when the token is unknown.
	Resolve(ctx context.Context, key string) (*User, error)
	// DeleteForUser revokes the user's token. Deleting a missing token is not an error.
	DeleteForUser(ctx context.Context, userID int64) error
}

// PreferenceRepository captures persistence operations for preferences.
type PreferenceRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]Preference, error)
	// Create returns ErrPreferenceExists when the (user, gym) pair already has a row.
	Create(ctx context.Context, userID, gymID int64, maxCrowdLevel float64) (*Preference, error)
	Get(ctx context.Context, preferenceID int64) (*Preference, error)
	Update(ctx context.Context, preferenceID, gymID int64, maxCrowdLevel float64) (*Preference, error)
	Delete(ctx context.Context, preferenceID int64) error
}

// UserService orchestrates account, session, and preference workflows.
type UserService struct {
	users       UserRepository
	tokens      TokenRepository
	preferences PreferenceRepository
	gyms        GymRepository
}

// NewUserService constructs a UserService.
func NewUserService(users UserRepository, tokens TokenRepository, preferences PreferenceRepository, gyms GymRepository) *UserService {
	return &UserService{users: users, tokens: tokens, preferences: preferences, gyms: gyms}
}

// SignupInput captures the signup payload from the API layer.
type SignupInput struct {
	Name     string
	Email    string
	Username string
	Password string
}

// Signup creates an account after validating required fields and hashing the
// password. Duplicate email/username surfaces as ErrEmailTaken/ErrUsernameTaken
// without creating a row.
func (s *UserService) Signup(ctx context.Context, input SignupInput) (*UserDetail, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Email) == "" ||
		strings.TrimSpace(input.Username) == "" || input.Password == "" {
		return nil, Invalid("Name, email, username, and password are required.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, User{
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.TrimSpace(input.Email),
		Username:     strings.TrimSpace(input.Username),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	return &UserDetail{
		User:          *user,
		Preferences:   []Preference{},
		Workouts:      []WorkoutDetail{},
		Notifications: []Notification{},
	}, nil
}

// Login validates credentials and returns the user detail.
func (s *UserService) Login(ctx context.Context, username, password string) (*UserDetail, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, Invalid("Username and password are required.")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return s.users.GetDetail(ctx, user.ID)
}

// IssueToken validates credentials, revokes any prior token, and issues a fresh
// opaque token for the user.
func (s *UserService) IssueToken(ctx context.Context, username, password string) (string, *UserDetail, error) {
	detail, err := s.Login(ctx, username, password)
	if err != nil {
		return "", nil, err
	}

	key, err := newTokenKey()
	if err != nil {
		return "", nil, err
	}
	token := Token{Key: key, UserID: detail.ID, CreatedAt: time.Now().UTC()}
	if err := s.tokens.Replace(ctx, token); err != nil {
		return "", nil, err
	}
	return key, detail, nil
}

// Logout revokes the user's token.
func (s *UserService) Logout(ctx context.Context, userID int64) error {
	return s.tokens.DeleteForUser(ctx, userID)
}

// ResolveToken maps a presented bearer token to its owning user.
func (s *UserService) ResolveToken(ctx context.Context, key string) (*User, error) {
	return s.tokens.Resolve(ctx, key)
}

// ListPreferences returns the acting user's preferences.
func (s *UserService) ListPreferences(ctx context.Context, userID int64) ([]Preference, error) {
	return s.preferences.ListByUser(ctx, userID)
}

// CreatePreference adds a preference for the acting user after validating the
// gym reference and crowd level.
func (s *UserService) CreatePreference(ctx context.Context, userID, gymID int64, maxCrowdLevel float64) (*Preference, error) {
	if err := s.validatePreference(ctx, gymID, maxCrowdLevel); err != nil {
		return nil, err
	}
	return s.preferences.Create(ctx, userID, gymID, maxCrowdLevel)
}

// UpdatePreference rewrites an owned preference in place, keeping its id.
func (s *UserService) UpdatePreference(ctx context.Context, userID, preferenceID, gymID int64, maxCrowdLevel float64) (*Preference, error) {
	existing, err := s.preferences.Get(ctx, preferenceID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	if existing.UserID != userID {
		return nil, ErrNotOwner
	}
	if err := s.validatePreference(ctx, gymID, maxCrowdLevel); err != nil {
		return nil, err
	}
	return s.preferences.Update(ctx, preferenceID, gymID, maxCrowdLevel)
}

// DeletePreference removes an owned preference.
func (s *UserService) DeletePreference(ctx context.Context, userID, preferenceID int64) error {
	existing, err := s.preferences.Get(ctx, preferenceID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	if existing.UserID != userID {
		return ErrNotOwner
	}
	return s.preferences.Delete(ctx, preferenceID)
}

func (s *UserService) validatePreference(ctx context.Context, gymID int64, maxCrowdLevel float64) error {
	if maxCrowdLevel < 0 || maxCrowdLevel > 1 {
		return Invalid("max_crowd_level must be between 0 and 1.")
	}
	gym, err := s.gyms.Get(ctx, gymID)
	if err != nil {
		return err
	}
	if gym == nil {
		return Invalid("The referenced gym does not exist.")
	}
	return nil
}

// newTokenKey generates a 40-character hex token.
func newTokenKey() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
