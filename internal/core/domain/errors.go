package domain

import "errors"

// Sentinel errors shared across services, repositories and the HTTP layer.
// The central error handler maps each to a deterministic status code.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user already exists")
	ErrWrongPortal        = errors.New("account registered under a different role; use the matching portal to log in")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")

	ErrClientNotFound  = errors.New("client not found")
	ErrClientExists    = errors.New("client already exists")
	ErrProjectNotFound = errors.New("project not found")
)

// ValidationError marks a request whose content is well-formed JSON but
// semantically invalid (bad enum value, missing conditional field, end date
// before start date). It always maps to a 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validation builds a ValidationError from a message.
func Validation(msg string) error {
	return &ValidationError{Msg: msg}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
