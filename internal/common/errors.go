// Package common defines shared constants and sentinel errors used across
// the music journal server and its tooling. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound          = errors.New("not found")
	ErrDuplicate           = errors.New("duplicate record")
	ErrForeignKey          = errors.New("foreign key violation")
	ErrEmptyPatch          = errors.New("update contains no fields")
	ErrEntryNotFound error = notFoundError{msg: "no journal entry found with that ID"}

	// Storage lifecycle errors.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// Envelope errors.
	ErrDecryption = errors.New("decryption failed")
	ErrInvalidKey = errors.New("invalid encryption key")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")
	ErrUpstream       = errors.New("upstream service error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// notFoundError carries a user-facing message while still matching
// ErrorNotFound through errors.Is.
type notFoundError struct {
	msg string
}

func (e notFoundError) Error() string { return e.msg }

func (e notFoundError) Unwrap() error { return ErrorNotFound }
