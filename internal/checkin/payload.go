// Package checkin turns scanned barcode payloads into attendance records.
//
// A Session holds the scan state machine: while scanning, each sampled
// payload is debounced against a suppression window and then reconciled
// against the loaded student roster. Malformed or foreign payloads are
// expected noise and are discarded silently. The same RecordAttendance
// path serves manual check-in from the roster.
package checkin

import (
	"strconv"
	"strings"
)

// PayloadPrefix tags a scan payload as a student reference.
// The full payload form is "STUDENT_ID:<positive integer>".
const PayloadPrefix = "STUDENT_ID:"

// ParsePayload extracts the student identity from a scan payload.
// Returns false for anything that is not a well-formed student reference:
// a missing tag, a non-numeric remainder, or a non-positive identity.
func ParsePayload(payload string) (int64, bool) {
	rest, found := strings.CutPrefix(strings.TrimSpace(payload), PayloadPrefix)
	if !found {
		return 0, false
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
