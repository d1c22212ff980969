package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound      = errors.New("resource not found")
	ErrTableNotFound = fmt.Errorf("%w: population table", ErrNotFound)
	ErrGroupNotFound = fmt.Errorf("%w: population group", ErrNotFound)

	// Validation errors
	ErrInvalidTable     = errors.New("invalid population table")
	ErrLengthMismatch   = errors.New("column length mismatch")
	ErrUnorderedAges    = errors.New("ages must be strictly increasing")
	ErrNegativeCount    = errors.New("population counts must be non-negative")
	ErrInvalidParams    = errors.New("invalid analysis parameters")
	ErrInsufficientData = errors.New("insufficient data for analysis")
)

// NewTableError wraps cause under ErrInvalidTable with row-level context
func NewTableError(cause error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %w: %s", ErrInvalidTable, cause, fmt.Sprintf(format, args...))
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidTable) ||
		errors.Is(err, ErrLengthMismatch) ||
		errors.Is(err, ErrUnorderedAges) ||
		errors.Is(err, ErrNegativeCount) ||
		errors.Is(err, ErrInsufficientData) ||
		errors.Is(err, ErrInvalidParams)
}
