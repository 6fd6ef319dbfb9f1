package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tecnosoft/academy/internal/store"
)

// ErrNotConfirmed is returned when Import is called without the explicit
// destructive-action confirmation. Nothing is touched.
var ErrNotConfirmed = errors.New("backup: import not confirmed")

// Import restores a snapshot document by full replacement: validate,
// wipe, re-insert. confirmed must be true - restore destroys the current
// database contents and callers collect that confirmation from the
// operator first.
//
// Identities are preserved: records carrying an identity are reinserted
// under it (the store's sequences advance past them), so cross-entity
// references inside the snapshot remain valid after restore. Records
// without an identity get a fresh one.
//
// Parse or schema failure aborts before any mutation. A failure after the
// wipe leaves the database empty or partially populated with no automatic
// rollback; the returned error says how far the restore got.
func Import(ctx context.Context, s *store.Store, data []byte, confirmed bool) error {
	if err := ValidateDocument(data); err != nil {
		return err
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("parse snapshot document: %w", err)
	}

	if !confirmed {
		return ErrNotConfirmed
	}

	if err := s.ClearAll(ctx); err != nil {
		return fmt.Errorf("restore: wipe: %w", err)
	}

	for i, st := range snap.Students {
		var err error
		if st.StudentID > 0 {
			err = s.RestoreStudent(ctx, st)
		} else {
			err = s.InsertStudent(ctx, &snap.Students[i])
		}
		if err != nil {
			return fmt.Errorf("restore incomplete: students[%d]: %w", i, err)
		}
	}
	for i, c := range snap.Courses {
		var err error
		if c.CourseID > 0 {
			err = s.RestoreCourse(ctx, c)
		} else {
			err = s.InsertCourse(ctx, &snap.Courses[i])
		}
		if err != nil {
			return fmt.Errorf("restore incomplete: courses[%d]: %w", i, err)
		}
	}
	for i, b := range snap.Bookings {
		var err error
		if b.BookingID > 0 {
			err = s.RestoreBooking(ctx, b)
		} else {
			err = s.InsertBooking(ctx, &snap.Bookings[i])
		}
		if err != nil {
			return fmt.Errorf("restore incomplete: bookings[%d]: %w", i, err)
		}
	}
	for i, a := range snap.Attendance {
		var err error
		if a.AttendanceID > 0 {
			err = s.RestoreAttendance(ctx, a)
		} else {
			err = s.InsertAttendance(ctx, &snap.Attendance[i])
		}
		if err != nil {
			return fmt.Errorf("restore incomplete: attendance[%d]: %w", i, err)
		}
	}

	return nil
}
