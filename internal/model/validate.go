package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Age bounds considered plausible for enrollment.
const (
	MinAge = 3
	MaxAge = 100
)

// ValidationError reports a field that failed pre-insert validation.
// The store enforces uniqueness independently; this covers everything the
// form layer used to reject before a record reached the database.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// IsValidationError reports whether err is a field validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NormalizeName trims whitespace and applies NFC normalization so composed
// and decomposed forms of the same name compare equal in search and lookup.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// MatchesSearch reports whether the haystack contains the normalized
// search term. An empty term matches everything.
func MatchesSearch(haystack, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(NormalizeName(haystack), NormalizeName(term))
}

// Validate checks the student's fields against intake rules.
func (s *Student) Validate() error {
	if NormalizeName(s.Name) == "" {
		return &ValidationError{Field: "name", Message: "must not be empty"}
	}
	if s.Age < MinAge || s.Age > MaxAge {
		return &ValidationError{Field: "age", Message: fmt.Sprintf("must be between %d and %d", MinAge, MaxAge)}
	}
	if strings.TrimSpace(s.Phone) == "" {
		return &ValidationError{Field: "phone", Message: "must not be empty"}
	}
	if s.HasSiblings != SiblingYes && s.HasSiblings != SiblingNo {
		return &ValidationError{Field: "hasSiblings", Message: `must be "yes" or "no"`}
	}
	return nil
}

// Validate checks the course's fields.
func (c *Course) Validate() error {
	if NormalizeName(c.CourseName) == "" {
		return &ValidationError{Field: "courseName", Message: "must not be empty"}
	}
	if c.Price < 0 {
		return &ValidationError{Field: "price", Message: "must not be negative"}
	}
	return nil
}

// Validate checks the booking's fields. RemainingAmount is deliberately
// unchecked: overpayment yields a negative remainder and that is kept.
func (b *Booking) Validate() error {
	if b.StudentID <= 0 {
		return &ValidationError{Field: "studentId", Message: "must reference a student"}
	}
	if b.CourseID <= 0 {
		return &ValidationError{Field: "courseId", Message: "must reference a course"}
	}
	if b.PaidAmount < 0 {
		return &ValidationError{Field: "paidAmount", Message: "must not be negative"}
	}
	if b.DiscountAmount < 0 {
		return &ValidationError{Field: "discountAmount", Message: "must not be negative"}
	}
	if _, err := time.Parse(DateLayout, b.PaymentDate); err != nil {
		return &ValidationError{Field: "paymentDate", Message: "must be a calendar date (YYYY-MM-DD)"}
	}
	return nil
}

// Validate checks the attendance record's fields.
func (a *AttendanceRecord) Validate() error {
	if a.StudentID <= 0 {
		return &ValidationError{Field: "studentId", Message: "must reference a student"}
	}
	if _, err := time.Parse(DateLayout, a.Date); err != nil {
		return &ValidationError{Field: "date", Message: "must be a calendar date (YYYY-MM-DD)"}
	}
	return nil
}
