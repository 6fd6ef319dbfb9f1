package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStudent() Student {
	return Student{
		StudentID:   1,
		Name:        "Sara",
		Age:         10,
		Phone:       "0100000000",
		HasSiblings: SiblingNo,
		CreatedAt:   time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC),
	}
}

func validCourse() Course {
	return Course{
		CourseID:   1,
		CourseName: "English A1",
		Price:      500,
		CreatedAt:  time.Date(2024, 9, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestNewBooking_RemainingAmount(t *testing.T) {
	now := time.Date(2024, 9, 2, 12, 0, 0, 0, time.UTC)

	b := NewBooking(validStudent(), validCourse(), 1, 300, 0, "2024-09-02", "BK-1", now)
	assert.Equal(t, 200.0, b.RemainingAmount)

	// Overpayment is kept negative, not clamped.
	b = NewBooking(validStudent(), validCourse(), 1, 450, 100, "2024-09-02", "BK-2", now)
	assert.Equal(t, -50.0, b.RemainingAmount)
}

func TestNewBooking_SnapshotsSourceFields(t *testing.T) {
	now := time.Date(2024, 9, 2, 12, 0, 0, 0, time.UTC)
	student := validStudent()
	course := validCourse()

	b := NewBooking(student, course, 2, 100, 0, "2024-09-02", "BK-3", now)

	// Later edits to the course must not show through the booking.
	course.Price = 999
	course.CourseName = "English B2"

	assert.Equal(t, "English A1", b.CourseName)
	assert.Equal(t, 500.0, b.CoursePrice)
	assert.Equal(t, 400.0, b.RemainingAmount)
	assert.Equal(t, "Sara", b.StudentName)
	assert.Equal(t, now, b.BookingDate)
}

func TestNewAttendanceRecord_CalendarDateOnly(t *testing.T) {
	now := time.Date(2024, 9, 2, 23, 59, 59, 0, time.UTC)
	rec := NewAttendanceRecord(validStudent(), now)

	assert.Equal(t, int64(1), rec.StudentID)
	assert.Equal(t, "Sara", rec.StudentName)
	assert.Equal(t, "2024-09-02", rec.Date)
}

func TestBookingNumberGenerator_PairwiseDistinct(t *testing.T) {
	g := NewBookingNumberGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 10000; i++ {
		n := g.Next()
		require.False(t, seen[n], "duplicate booking number %s", n)
		seen[n] = true
	}
}

func TestBookingNumberGenerator_FrozenClock(t *testing.T) {
	frozen := time.Date(2024, 9, 2, 12, 0, 0, 0, time.UTC)
	g := NewBookingNumberGeneratorAt(func() time.Time { return frozen })

	a := g.Next()
	b := g.Next()
	c := g.Next()
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, b, c)
	assert.NotEqual(t, a, c)
}

func TestStudentValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Student)
		wantErr bool
	}{
		{"valid", func(s *Student) {}, false},
		{"empty name", func(s *Student) { s.Name = "   " }, true},
		{"age too low", func(s *Student) { s.Age = 2 }, true},
		{"age too high", func(s *Student) { s.Age = 150 }, true},
		{"empty phone", func(s *Student) { s.Phone = "" }, true},
		{"bad sibling flag", func(s *Student) { s.HasSiblings = "maybe" }, true},
		{"address optional", func(s *Student) { s.Address = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validStudent()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsValidationError(err))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCourseValidate(t *testing.T) {
	c := validCourse()
	require.NoError(t, c.Validate())

	c.Price = -1
	require.Error(t, c.Validate())

	c = validCourse()
	c.CourseName = ""
	require.Error(t, c.Validate())

	// Free courses are allowed.
	c = validCourse()
	c.Price = 0
	require.NoError(t, c.Validate())
}

func TestBookingValidate(t *testing.T) {
	now := time.Now()
	b := NewBooking(validStudent(), validCourse(), 1, 300, 0, "2024-09-02", "BK-1", now)
	require.NoError(t, b.Validate())

	bad := b
	bad.PaymentDate = "02/09/2024"
	require.Error(t, bad.Validate())

	bad = b
	bad.StudentID = 0
	require.Error(t, bad.Validate())

	bad = b
	bad.DiscountAmount = -5
	require.Error(t, bad.Validate())
}

func TestMatchesSearch_Normalized(t *testing.T) {
	// "é" composed vs decomposed ("e" + combining acute).
	assert.True(t, MatchesSearch("Renée", "Renée"))
	assert.True(t, MatchesSearch("Sara Ahmed", "Ahmed"))
	assert.True(t, MatchesSearch("anything", ""))
	assert.False(t, MatchesSearch("Sara", "Nora"))
}
