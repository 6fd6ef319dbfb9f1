// Package gate guards privileged actions behind a single shared secret.
//
// Course price edits, booking deletion, full database wipe, and
// import-restore are destructive or financially sensitive; each requires
// the operator to supply the configured secret out-of-band. This is a
// static shared secret compared exactly, not per-user authorization - a
// documented limitation of the system, not an access-control design.
package gate

import (
	"crypto/subtle"
	"errors"
)

// DeniedError is returned when the supplied secret doesn't match.
// The guarded operation must not be attempted after a denial.
type DeniedError struct{}

func (e *DeniedError) Error() string {
	return "not authorized: privileged secret mismatch"
}

// IsDenied returns true if the error is an authorization denial.
// Uses errors.As to handle wrapped errors.
func IsDenied(err error) bool {
	var de *DeniedError
	return errors.As(err, &de)
}

// Gate checks supplied secrets against the configured one.
type Gate struct {
	secret []byte
}

// New creates a gate for the configured secret. An empty secret produces a
// gate that denies everything, so an unconfigured system fails closed.
func New(secret string) *Gate {
	return &Gate{secret: []byte(secret)}
}

// Authorize compares the supplied value against the configured secret in
// constant time. Returns a DeniedError on mismatch; no state is touched.
func (g *Gate) Authorize(supplied string) error {
	if len(g.secret) == 0 {
		return &DeniedError{}
	}
	if subtle.ConstantTimeCompare(g.secret, []byte(supplied)) != 1 {
		return &DeniedError{}
	}
	return nil
}
