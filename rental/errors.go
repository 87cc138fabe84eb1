/*
errors.go - Error types for the rental service layer

PURPOSE:
  All error kinds surfaced by the rental and catalog services, in one
  place. The pricing core raises none of these; they originate at the
  store boundary (missing records, uniqueness) or in request validation.

ERROR CATEGORIES:
  1. Not found   - ErrToolNotFound, ErrRentalNotFound,
                   ErrBrandNotFound, ErrToolTypeNotFound
  2. Validation  - ErrInvalidRequest (via *ValidationError)
  3. Conflict    - ErrDuplicate (via *DuplicateError)

USAGE:
  Callers translate with errors.Is / the helpers below:

    if rental.IsNotFound(err) {
        // 404
    }

SEE ALSO:
  - api/handlers.go: Maps these errors to HTTP status codes
*/
package rental

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrToolNotFound is returned when a referenced tool id does not exist.
	ErrToolNotFound = errors.New("tool not found")

	// ErrRentalNotFound is returned when a referenced rental id does not exist.
	ErrRentalNotFound = errors.New("rental not found")

	// ErrBrandNotFound is returned when a tool references an unknown brand.
	ErrBrandNotFound = errors.New("tool brand not found")

	// ErrToolTypeNotFound is returned when a tool references an unknown type.
	ErrToolTypeNotFound = errors.New("tool type not found")

	// ErrDuplicate is returned when a unique name or code is already taken.
	ErrDuplicate = errors.New("already exists")

	// ErrInvalidRequest is returned when input fails validation.
	ErrInvalidRequest = errors.New("invalid request")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError lists every rule an input violated.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid request: " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidRequest
}

// add records a problem; used while collecting violations.
func (e *ValidationError) add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

// orNil returns e only if it holds problems.
func (e *ValidationError) orNil() error {
	if len(e.Problems) == 0 {
		return nil
	}
	return e
}

// DuplicateError names the record that already exists.
type DuplicateError struct {
	Kind  string // "tool", "tool brand", "tool type"
	Value string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Kind, e.Value)
}

func (e *DuplicateError) Unwrap() error {
	return ErrDuplicate
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrToolNotFound) ||
		errors.Is(err, ErrRentalNotFound) ||
		errors.Is(err, ErrBrandNotFound) ||
		errors.Is(err, ErrToolTypeNotFound)
}

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) || errors.Is(err, ErrDuplicate)
}
