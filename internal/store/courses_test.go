package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tecnosoft/academy/internal/model"
)

func testCourse(name string) model.Course {
	return model.Course{
		CourseName: name,
		Price:      500,
		CreatedAt:  time.Date(2024, 9, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestInsertCourse_DuplicateNameRejected(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := testCourse("English A1")
	require.NoError(t, s.InsertCourse(ctx, &first))

	second := testCourse("English A1")
	second.Price = 999
	err := s.InsertCourse(ctx, &second)
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	var se *StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "course_name", se.Field)

	courses, err := s.ListCourses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, 500.0, courses[0].Price)
}

func TestUpdateCourse_PriceCorrection(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	c := testCourse("English A1")
	require.NoError(t, s.InsertCourse(ctx, &c))

	c.Price = 650
	require.NoError(t, s.UpdateCourse(ctx, c))

	got, err := s.GetCourse(ctx, c.CourseID)
	require.NoError(t, err)
	assert.Equal(t, 650.0, got.Price)
}

func TestUpdateCourse_MissingIdentity(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	c := testCourse("English A1")
	c.CourseID = 42
	err := s.UpdateCourse(ctx, c)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestCoursePriceEdit_DoesNotRewriteBookingSnapshot(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	st := testStudent("0100000000")
	require.NoError(t, s.InsertStudent(ctx, &st))
	c := testCourse("English A1")
	require.NoError(t, s.InsertCourse(ctx, &c))

	b := model.NewBooking(st, c, 1, 300, 0, "2024-09-02", "BK-1", time.Now())
	require.NoError(t, s.InsertBooking(ctx, &b))

	c.Price = 1000
	require.NoError(t, s.UpdateCourse(ctx, c))

	bookings, err := s.ListBookings(ctx)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, 500.0, bookings[0].CoursePrice)
	assert.Equal(t, 200.0, bookings[0].RemainingAmount)
}
