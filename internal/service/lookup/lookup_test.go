package lookup_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"academy-service/internal/apperr"
	"academy-service/internal/ports/academytx"
	"academy-service/internal/service/lookup"
	"academy-service/internal/testutil/memstore"
)

func TestLookup_NotFoundKinds(t *testing.T) {
	t.Parallel()

	st := memstore.New()
	ctx := context.Background()

	err := st.WithTx(ctx, func(tx academytx.Repository) error {
		_, err := lookup.Teacher(ctx, tx, 1, lookup.Opts(false, false))
		require.Equal(t, apperr.TeacherNotFound(1), err)

		_, err = lookup.Student(ctx, tx, 2, lookup.Opts(false, false))
		require.Equal(t, apperr.StudentNotFound(2), err)

		_, err = lookup.Course(ctx, tx, 3, lookup.Opts(true, true))
		require.Equal(t, apperr.CourseNotFound(3), err)
		return nil
	})
	require.NoError(t, err)
}

func TestLookup_Found(t *testing.T) {
	t.Parallel()

	st := memstore.New()
	id := st.AddTeacher("Ken Berry")
	ctx := context.Background()

	err := st.WithTx(ctx, func(tx academytx.Repository) error {
		got, err := lookup.Teacher(ctx, tx, id, lookup.Opts(true, false))
		require.NoError(t, err)
		require.Equal(t, "Ken Berry", got.Name)
		require.Empty(t, got.Courses)
		return nil
	})
	require.NoError(t, err)
}

func TestRead_PicksUnitOfWorkByLocking(t *testing.T) {
	t.Parallel()

	st := memstore.New()
	id := st.AddCourse("Calculus", nil)
	ctx := context.Background()

	get := func(track bool) func(tx academytx.Repository) error {
		return func(tx academytx.Repository) error {
			_, err := lookup.Course(ctx, tx, id, lookup.Opts(true, track))
			return err
		}
	}

	require.NoError(t, lookup.Read(ctx, st, false, get(false)))
	require.Equal(t, 1, st.Reads())

	require.NoError(t, lookup.Read(ctx, st, true, get(true)))
	require.Equal(t, 1, st.Reads())
	require.Equal(t, 1, st.TrackedReads())
	require.Zero(t, st.Commits())
}
