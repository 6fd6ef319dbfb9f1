package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// StoreError represents a failure surfaced by a record store operation.
//
// Store errors include:
//   - Uniqueness violation: a unique-indexed field collides with an
//     existing record (duplicate phone, course name, booking number)
//   - Not found: an update addressed an identity that doesn't exist
//
// The store is left unchanged whenever a StoreError is returned.
type StoreError struct {
	// Code identifies the error category.
	Code StoreErrorCode

	// Message is a human-readable description.
	Message string

	// Collection names the affected collection.
	Collection string

	// Field names the colliding unique field (for uniqueness errors).
	Field string
}

// StoreErrorCode categorizes store errors.
type StoreErrorCode string

const (
	// ErrCodeUniqueViolation indicates a unique-indexed field collision.
	ErrCodeUniqueViolation StoreErrorCode = "UNIQUE_VIOLATION"

	// ErrCodeNotFound indicates the addressed record doesn't exist.
	ErrCodeNotFound StoreErrorCode = "NOT_FOUND"
)

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (collection=%s, field=%s)", e.Code, e.Message, e.Collection, e.Field)
	}
	if e.Collection != "" {
		return fmt.Sprintf("%s: %s (collection=%s)", e.Code, e.Message, e.Collection)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsUniqueViolation returns true if the error is a uniqueness violation.
// Uses errors.As to handle wrapped errors.
func IsUniqueViolation(err error) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code == ErrCodeUniqueViolation
	}
	return false
}

// IsNotFound returns true if the error is a not-found error.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code == ErrCodeNotFound
	}
	return false
}

// notFoundError creates a StoreError for a missing record.
func notFoundError(collection string, id int64) *StoreError {
	return &StoreError{
		Code:       ErrCodeNotFound,
		Message:    fmt.Sprintf("no record with identity %d", id),
		Collection: collection,
	}
}

// translateInsertError maps driver errors to the store taxonomy. Unique
// constraint failures become typed uniqueness violations naming the
// colliding field; everything else is wrapped as-is.
func translateInsertError(collection string, err error) error {
	var se sqlite3.Error
	if errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique {
		return &StoreError{
			Code:       ErrCodeUniqueViolation,
			Message:    "duplicate value for unique field",
			Collection: collection,
			Field:      uniqueField(se.Error()),
		}
	}
	return fmt.Errorf("insert %s: %w", collection, err)
}

// uniqueField extracts the column name from a SQLite unique-constraint
// message of the form "UNIQUE constraint failed: students.phone".
func uniqueField(msg string) string {
	const marker = "UNIQUE constraint failed: "
	i := strings.Index(msg, marker)
	if i < 0 {
		return ""
	}
	qualified := strings.TrimSpace(msg[i+len(marker):])
	if dot := strings.LastIndex(qualified, "."); dot >= 0 {
		return qualified[dot+1:]
	}
	return qualified
}
