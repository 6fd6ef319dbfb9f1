package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tecnosoft/academy/internal/model"
)

// timeLayout is the stored form of full timestamps (creation/booking dates).
const timeLayout = time.RFC3339Nano

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// ListStudents returns every student as an unordered snapshot at call time.
// An empty collection yields an empty slice, never nil and never an error.
func (s *Store) ListStudents(ctx context.Context) ([]model.Student, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT student_id, name, age, address, phone, has_siblings, created_at
		FROM students
	`)
	if err != nil {
		return nil, fmt.Errorf("query students: %w", err)
	}
	defer rows.Close()

	students := []model.Student{}
	for rows.Next() {
		var st model.Student
		var flag, createdAt string
		if err := rows.Scan(&st.StudentID, &st.Name, &st.Age, &st.Address, &st.Phone, &flag, &createdAt); err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		st.HasSiblings = model.SiblingFlag(flag)
		if st.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("scan student: created_at: %w", err)
		}
		students = append(students, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate students: %w", err)
	}

	return students, nil
}

// GetStudent retrieves one student by identity.
// Returns a NOT_FOUND StoreError if no such student exists.
func (s *Store) GetStudent(ctx context.Context, id int64) (model.Student, error) {
	var st model.Student
	var flag, createdAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT student_id, name, age, address, phone, has_siblings, created_at
		FROM students
		WHERE student_id = ?
	`, id).Scan(&st.StudentID, &st.Name, &st.Age, &st.Address, &st.Phone, &flag, &createdAt)
	if err == sql.ErrNoRows {
		return model.Student{}, notFoundError("students", id)
	}
	if err != nil {
		return model.Student{}, fmt.Errorf("get student: %w", err)
	}
	st.HasSiblings = model.SiblingFlag(flag)
	if st.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.Student{}, fmt.Errorf("get student: created_at: %w", err)
	}
	return st, nil
}

// InsertStudent persists a new student as one atomic unit, assigning the
// next identity and writing it back into the record. Fails with a
// uniqueness StoreError when the phone number collides with an existing
// student; the store is left unchanged on failure.
func (s *Store) InsertStudent(ctx context.Context, st *model.Student) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO students (name, age, address, phone, has_siblings, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, st.Name, st.Age, st.Address, st.Phone, string(st.HasSiblings), formatTime(st.CreatedAt))
	if err != nil {
		return translateInsertError("students", err)
	}

	st.StudentID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert students: last insert id: %w", err)
	}
	return nil
}

// RestoreStudent inserts a student preserving its existing identity.
// Used only by backup restore; the AUTOINCREMENT sequence advances past
// the restored identity, so later auto-assigned inserts never collide.
func (s *Store) RestoreStudent(ctx context.Context, st model.Student) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO students (student_id, name, age, address, phone, has_siblings, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, st.StudentID, st.Name, st.Age, st.Address, st.Phone, string(st.HasSiblings), formatTime(st.CreatedAt))
	if err != nil {
		return translateInsertError("students", err)
	}
	return nil
}
