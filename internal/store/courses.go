package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tecnosoft/academy/internal/model"
)

// ListCourses returns every course as an unordered snapshot at call time.
// An empty collection yields an empty slice, never nil and never an error.
func (s *Store) ListCourses(ctx context.Context) ([]model.Course, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT course_id, course_name, price, created_at
		FROM courses
	`)
	if err != nil {
		return nil, fmt.Errorf("query courses: %w", err)
	}
	defer rows.Close()

	courses := []model.Course{}
	for rows.Next() {
		var c model.Course
		var createdAt string
		if err := rows.Scan(&c.CourseID, &c.CourseName, &c.Price, &createdAt); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		if c.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("scan course: created_at: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courses: %w", err)
	}

	return courses, nil
}

// GetCourse retrieves one course by identity.
// Returns a NOT_FOUND StoreError if no such course exists.
func (s *Store) GetCourse(ctx context.Context, id int64) (model.Course, error) {
	var c model.Course
	var createdAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT course_id, course_name, price, created_at
		FROM courses
		WHERE course_id = ?
	`, id).Scan(&c.CourseID, &c.CourseName, &c.Price, &createdAt)
	if err == sql.ErrNoRows {
		return model.Course{}, notFoundError("courses", id)
	}
	if err != nil {
		return model.Course{}, fmt.Errorf("get course: %w", err)
	}
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.Course{}, fmt.Errorf("get course: created_at: %w", err)
	}
	return c, nil
}

// InsertCourse persists a new course as one atomic unit, assigning the
// next identity and writing it back into the record. Fails with a
// uniqueness StoreError when the course name collides with an existing
// course; the store is left unchanged on failure.
func (s *Store) InsertCourse(ctx context.Context, c *model.Course) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO courses (course_name, price, created_at)
		VALUES (?, ?, ?)
	`, c.CourseName, c.Price, formatTime(c.CreatedAt))
	if err != nil {
		return translateInsertError("courses", err)
	}

	c.CourseID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert courses: last insert id: %w", err)
	}
	return nil
}

// UpdateCourse replaces the stored course matched by identity. The only
// in-scope use is the privileged price correction; historical bookings
// keep their snapshot of the old price. Returns a NOT_FOUND StoreError if
// the identity doesn't exist, and a uniqueness StoreError if the new name
// collides with another course.
func (s *Store) UpdateCourse(ctx context.Context, c model.Course) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE courses
		SET course_name = ?, price = ?, created_at = ?
		WHERE course_id = ?
	`, c.CourseName, c.Price, formatTime(c.CreatedAt), c.CourseID)
	if err != nil {
		return translateInsertError("courses", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update courses: rows affected: %w", err)
	}
	if affected == 0 {
		return notFoundError("courses", c.CourseID)
	}
	return nil
}

// RestoreCourse inserts a course preserving its existing identity.
// Used only by backup restore.
func (s *Store) RestoreCourse(ctx context.Context, c model.Course) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO courses (course_id, course_name, price, created_at)
		VALUES (?, ?, ?, ?)
	`, c.CourseID, c.CourseName, c.Price, formatTime(c.CreatedAt))
	if err != nil {
		return translateInsertError("courses", err)
	}
	return nil
}
