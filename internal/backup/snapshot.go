// Package backup serializes the whole database to a single snapshot
// document and restores it by full replacement.
//
// A snapshot is one JSON object keyed by collection name, with a small
// envelope (snapshot id, export date) on top. Import validates the
// document structurally before touching the store, then wipes and
// re-inserts every record preserving its original identity, so foreign
// references recorded in the snapshot survive the round-trip.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tecnosoft/academy/internal/model"
	"github.com/tecnosoft/academy/internal/store"
)

// Snapshot is the backup document: the full contents of the four
// collections plus the export envelope.
type Snapshot struct {
	SnapshotID string                   `json:"snapshotId"`
	ExportedAt string                   `json:"exportedAt"`
	Students   []model.Student          `json:"students"`
	Courses    []model.Course           `json:"courses"`
	Bookings   []model.Booking          `json:"bookings"`
	Attendance []model.AttendanceRecord `json:"attendance"`
}

// Exporter assembles snapshots. The zero value is not usable; construct
// with NewExporter. Now and NewID are injectable for deterministic output
// in tests.
type Exporter struct {
	Now   func() time.Time
	NewID func() string
}

// NewExporter creates an exporter using the system clock and random
// snapshot ids.
func NewExporter() *Exporter {
	return &Exporter{
		Now:   time.Now,
		NewID: uuid.NewString,
	}
}

// Export reads all four collections and assembles the snapshot document.
// There is no partial export and no filtering.
func (e *Exporter) Export(ctx context.Context, s *store.Store) (*Snapshot, error) {
	students, err := s.ListStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	courses, err := s.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	bookings, err := s.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	attendance, err := s.ListAttendance(ctx)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	return &Snapshot{
		SnapshotID: e.NewID(),
		ExportedAt: e.Now().UTC().Format(model.DateLayout),
		Students:   students,
		Courses:    courses,
		Bookings:   bookings,
		Attendance: attendance,
	}, nil
}

// Marshal renders the snapshot as indented JSON, the transportable form
// written to the backup file.
func (s *Snapshot) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// Filename returns the conventional backup file name for an export date,
// e.g. "academy_backup_2024-09-02.json".
func Filename(date time.Time) string {
	return fmt.Sprintf("academy_backup_%s.json", date.UTC().Format(model.DateLayout))
}
