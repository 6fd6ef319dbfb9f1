package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tecnosoft/academy/internal/model"
)

func TestInsertStudent_AssignsMonotonicIdentities(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := testStudent("0100000001")
	require.NoError(t, s.InsertStudent(ctx, &first))
	second := testStudent("0100000002")
	require.NoError(t, s.InsertStudent(ctx, &second))

	assert.Equal(t, int64(1), first.StudentID)
	assert.Equal(t, int64(2), second.StudentID)
}

func TestInsertStudent_DuplicatePhoneRejected(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := testStudent("0100000000")
	require.NoError(t, s.InsertStudent(ctx, &first))

	second := testStudent("0100000000")
	second.Name = "Nora"
	err := s.InsertStudent(ctx, &second)
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	var se *StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "phone", se.Field)

	// Store afterward contains only the first student.
	students, err := s.ListStudents(ctx)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Sara", students[0].Name)
}

func TestGetStudent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	st := testStudent("0100000000")
	require.NoError(t, s.InsertStudent(ctx, &st))

	got, err := s.GetStudent(ctx, st.StudentID)
	require.NoError(t, err)
	assert.Equal(t, st.Name, got.Name)
	assert.Equal(t, st.Phone, got.Phone)
	assert.Equal(t, model.SiblingNo, got.HasSiblings)
	assert.True(t, got.CreatedAt.Equal(st.CreatedAt))

	_, err = s.GetStudent(ctx, 999)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestRestoreStudent_PreservesIdentityAndAdvancesSequence(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	restored := testStudent("0100000007")
	restored.StudentID = 7
	require.NoError(t, s.RestoreStudent(ctx, restored))

	got, err := s.GetStudent(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Sara", got.Name)

	// A later auto-assigned insert must not collide with the restored id.
	fresh := testStudent("0100000008")
	require.NoError(t, s.InsertStudent(ctx, &fresh))
	assert.Greater(t, fresh.StudentID, int64(7))
}
