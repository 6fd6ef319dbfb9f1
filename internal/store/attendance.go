package store

import (
	"context"
	"fmt"

	"github.com/tecnosoft/academy/internal/model"
)

// ListAttendance returns every attendance record as an unordered snapshot
// at call time. An empty collection yields an empty slice, never nil and
// never an error.
func (s *Store) ListAttendance(ctx context.Context) ([]model.AttendanceRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT attendance_id, student_id, student_name, date
		FROM attendance
	`)
	if err != nil {
		return nil, fmt.Errorf("query attendance: %w", err)
	}
	defer rows.Close()

	records := []model.AttendanceRecord{}
	for rows.Next() {
		var a model.AttendanceRecord
		if err := rows.Scan(&a.AttendanceID, &a.StudentID, &a.StudentName, &a.Date); err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendance: %w", err)
	}

	return records, nil
}

// InsertAttendance persists a new check-in record as one atomic unit,
// assigning the next identity and writing it back into the record.
// Attendance is append-only and carries no unique secondary index, so the
// same student may legitimately appear multiple times per day.
func (s *Store) InsertAttendance(ctx context.Context, a *model.AttendanceRecord) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO attendance (student_id, student_name, date)
		VALUES (?, ?, ?)
	`, a.StudentID, a.StudentName, a.Date)
	if err != nil {
		return translateInsertError("attendance", err)
	}

	a.AttendanceID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert attendance: last insert id: %w", err)
	}
	return nil
}

// RestoreAttendance inserts an attendance record preserving its existing
// identity. Used only by backup restore.
func (s *Store) RestoreAttendance(ctx context.Context, a model.AttendanceRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attendance (attendance_id, student_id, student_name, date)
		VALUES (?, ?, ?, ?)
	`, a.AttendanceID, a.StudentID, a.StudentName, a.Date)
	if err != nil {
		return translateInsertError("attendance", err)
	}
	return nil
}
