package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tecnosoft/academy/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "academy.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testStudent(phone string) model.Student {
	return model.Student{
		Name:        "Sara",
		Age:         10,
		Phone:       phone,
		HasSiblings: model.SiblingNo,
		CreatedAt:   time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "academy.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "academy.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("final Open() failed: %v", err)
	}
	defer s.Close()

	// Verify all four collections survived the repeated opens
	tables := []string{"students", "courses", "bookings", "attendance"}
	for _, table := range tables {
		var name string
		err := s.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q not found after idempotent opens: %v", table, err)
		}
	}
}

func TestOpen_InvalidPath(t *testing.T) {
	_, err := Open("/nonexistent/dir/academy.db")
	if err == nil {
		t.Error("expected error for invalid path, got nil")
	}
}

func TestClose_NilDB(t *testing.T) {
	s := &Store{db: nil}
	if err := s.Close(); err != nil {
		t.Errorf("Close() on nil db should not error: %v", err)
	}
}

func TestOpen_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "academy.db")
	ctx := context.Background()

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first Open() failed: %v", err)
	}
	st := testStudent("0100000000")
	if err := s1.InsertStudent(ctx, &st); err != nil {
		t.Fatalf("InsertStudent() failed: %v", err)
	}
	s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer s2.Close()

	students, err := s2.ListStudents(ctx)
	if err != nil {
		t.Fatalf("ListStudents() failed: %v", err)
	}
	if len(students) != 1 {
		t.Fatalf("got %d students after reopen, want 1", len(students))
	}
	if !students[0].CreatedAt.Equal(st.CreatedAt) {
		t.Errorf("created_at changed across reopen: got %v, want %v", students[0].CreatedAt, st.CreatedAt)
	}
}

func TestClearAll_EmptiesEveryCollection(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	st := testStudent("0100000000")
	if err := s.InsertStudent(ctx, &st); err != nil {
		t.Fatalf("InsertStudent() failed: %v", err)
	}
	c := model.Course{CourseName: "English A1", Price: 500, CreatedAt: time.Now()}
	if err := s.InsertCourse(ctx, &c); err != nil {
		t.Fatalf("InsertCourse() failed: %v", err)
	}
	b := model.NewBooking(st, c, 1, 300, 0, "2024-09-02", "BK-1", time.Now())
	if err := s.InsertBooking(ctx, &b); err != nil {
		t.Fatalf("InsertBooking() failed: %v", err)
	}
	a := model.NewAttendanceRecord(st, time.Now())
	if err := s.InsertAttendance(ctx, &a); err != nil {
		t.Fatalf("InsertAttendance() failed: %v", err)
	}

	if err := s.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll() failed: %v", err)
	}

	students, _ := s.ListStudents(ctx)
	courses, _ := s.ListCourses(ctx)
	bookings, _ := s.ListBookings(ctx)
	attendance, _ := s.ListAttendance(ctx)
	if len(students)+len(courses)+len(bookings)+len(attendance) != 0 {
		t.Errorf("collections not empty after ClearAll: %d/%d/%d/%d",
			len(students), len(courses), len(bookings), len(attendance))
	}
}

func TestClearAll_DoesNotReuseIdentities(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := testStudent("0100000000")
	if err := s.InsertStudent(ctx, &first); err != nil {
		t.Fatalf("InsertStudent() failed: %v", err)
	}
	c := model.Course{CourseName: "English A1", Price: 500, CreatedAt: time.Now()}
	if err := s.InsertCourse(ctx, &c); err != nil {
		t.Fatalf("InsertCourse() failed: %v", err)
	}

	if err := s.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll() failed: %v", err)
	}

	second := testStudent("0100000001")
	if err := s.InsertStudent(ctx, &second); err != nil {
		t.Fatalf("InsertStudent() after clear failed: %v", err)
	}
	if second.StudentID <= first.StudentID {
		t.Errorf("identity reused after ClearAll: first=%d, post-clear=%d",
			first.StudentID, second.StudentID)
	}

	c2 := model.Course{CourseName: "English A2", Price: 550, CreatedAt: time.Now()}
	if err := s.InsertCourse(ctx, &c2); err != nil {
		t.Fatalf("InsertCourse() after clear failed: %v", err)
	}
	if c2.CourseID <= c.CourseID {
		t.Errorf("course identity reused after ClearAll: first=%d, post-clear=%d",
			c.CourseID, c2.CourseID)
	}
}

func TestListAll_EmptyCollectionsYieldEmptySlices(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	students, err := s.ListStudents(ctx)
	if err != nil {
		t.Fatalf("ListStudents() failed: %v", err)
	}
	if students == nil || len(students) != 0 {
		t.Errorf("ListStudents() = %v, want empty non-nil slice", students)
	}

	attendance, err := s.ListAttendance(ctx)
	if err != nil {
		t.Fatalf("ListAttendance() failed: %v", err)
	}
	if attendance == nil || len(attendance) != 0 {
		t.Errorf("ListAttendance() = %v, want empty non-nil slice", attendance)
	}
}
