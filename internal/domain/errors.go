package domain

import "errors"

var (
	// ErrNotFound covers absent, inactive and not-owned records alike.
	ErrNotFound = errors.New("short url not found")
	// ErrExpired is distinct from ErrNotFound so the redirect edge can
	// show a different landing experience.
	ErrExpired = errors.New("short url has expired")
	// ErrAliasTaken surfaces a custom-alias uniqueness conflict.
	ErrAliasTaken = errors.New("alias is already taken")
	// ErrCodeTaken is a short-code uniqueness conflict at write time.
	// The service retries these internally; callers never see it.
	ErrCodeTaken = errors.New("short code already exists")
	// ErrCodeExhausted means every generation attempt collided.
	ErrCodeExhausted = errors.New("failed to generate a unique short code")
	// ErrUnauthorized means the request carries no valid owner identity.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError rejects malformed input before any mutation.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Validation builds a ValidationError with the given reason.
func Validation(reason string) error {
	return &ValidationError{Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
