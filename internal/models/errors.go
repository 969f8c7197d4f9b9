package models

import (
	"errors"
	"fmt"
)

// Custom errors
var (
	ErrDataUnavailable = errors.New("category data unavailable")
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownStrategy = errors.New("unknown staking strategy")
	ErrCourseNotFound  = errors.New("course not found")
	ErrNoParticipants  = errors.New("course has no participants")
)

// ValidationError reports bad caller input to the stake allocator. The
// operation that returns it produces no partial result.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a new validation error
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// InsufficientEntrantsError is returned by the mid-range strategy when the
// exclusion filter leaves fewer than two entrants.
type InsufficientEntrantsError struct {
	Remaining   int
	ExcludeLow  int
	ExcludeHigh int
}

func (e *InsufficientEntrantsError) Error() string {
	return fmt.Sprintf("insufficient entrants: %d remaining after excluding %d favourites and %d outsiders",
		e.Remaining, e.ExcludeLow, e.ExcludeHigh)
}

// IsValidationError reports whether err wraps a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
