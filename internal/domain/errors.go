package domain

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrEmailTaken indicates a signup with an email that is already registered.
	ErrEmailTaken = errors.New("an account with this email already exists")
	// ErrUsernameTaken indicates a signup with a username that is already registered.
	ErrUsernameTaken = errors.New("an account with this username already exists")
	// ErrInvalidCredentials is returned when username/password validation fails.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrPreferenceExists indicates a second preference for the same (user, gym) pair.
	ErrPreferenceExists = errors.New("a preference for this gym already exists")
	// ErrNotOwner is returned when the acting user does not own the resource.
	ErrNotOwner = errors.New("resource is owned by another user")
	// ErrValidation wraps field-level validation failures.
	ErrValidation = errors.New("validation failed")
)

// ValidationError reports a rejected write with a client-facing message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid builds a ValidationError.
func Invalid(message string) error {
	return &ValidationError{Message: message}
}
