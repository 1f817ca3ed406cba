package errs

import cr "github.com/cockroachdb/errors"

// Error classes. Domain sentinels are marked with exactly one of these so
// callers can branch with errors.Is without knowing every sentinel.
var (
	// ErrValidation: malformed input, state untouched.
	ErrValidation = cr.New("validation error")
	// ErrConflict: availability or suspension conflict, state untouched.
	ErrConflict = cr.New("conflict")
	// ErrInvalidTransition: action illegal for the current status.
	ErrInvalidTransition = cr.New("invalid transition")
	// ErrIntegrity: a money or escrow invariant failed. Never user-facing.
	ErrIntegrity = cr.New("integrity violation")
	ErrNotFound  = cr.New("not found")
	ErrForbidden = cr.New("forbidden")
)

// Validation returns a new sentinel marked as a validation error.
func Validation(msg string) error { return cr.Mark(cr.New(msg), ErrValidation) }

func Conflict(msg string) error { return cr.Mark(cr.New(msg), ErrConflict) }

func InvalidTransition(msg string) error { return cr.Mark(cr.New(msg), ErrInvalidTransition) }

func Integrity(msg string) error { return cr.Mark(cr.New(msg), ErrIntegrity) }

func NotFound(msg string) error { return cr.Mark(cr.New(msg), ErrNotFound) }

func Forbidden(msg string) error { return cr.Mark(cr.New(msg), ErrForbidden) }

func IsValidation(err error) bool        { return cr.Is(err, ErrValidation) }
func IsConflict(err error) bool          { return cr.Is(err, ErrConflict) }
func IsInvalidTransition(err error) bool { return cr.Is(err, ErrInvalidTransition) }
func IsIntegrity(err error) bool         { return cr.Is(err, ErrIntegrity) }
func IsNotFound(err error) bool          { return cr.Is(err, ErrNotFound) }
func IsForbidden(err error) bool         { return cr.Is(err, ErrForbidden) }
