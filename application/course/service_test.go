package course

import (
	"context"
	"testing"

	"erp/domain/course"
	"erp/infrastructure/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*Service, *memory.Database) {
	t.Helper()
	db := memory.NewDatabase()
	return NewService(db.Courses, db.CourseLookups, db.UnitOfWork), db
}

func TestGetByCode(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	for _, c := range []course.Course{
		{Code: "FA", Name: "First Aid"},
		{Code: "FAW", Name: "First Aid at Work"},
	} {
		_, err := svc.Create(ctx, c)
		require.NoError(t, err)
	}

	got, found, err := svc.GetByCode(ctx, "fa")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "First Aid", got.Name)

	got, found, err = svc.GetByCode(ctx, "FAW")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "First Aid at Work", got.Name)

	_, found, err = svc.GetByCode(ctx, "F")
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = svc.GetByCode(ctx, " ")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCreateRejectsDelegateRange(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Create(context.Background(), course.Course{Code: "X", Name: "X", MinDelegates: 10, MaxDelegates: 4})

	assert.Error(t, err)
}

func TestLookups(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	require.NoError(t, db.CourseLookups.SaveType(ctx, course.Type{Code: "O", Name: "Online"}))
	require.NoError(t, db.CourseLookups.SaveType(ctx, course.Type{Code: "C", Name: "Classroom"}))
	require.NoError(t, db.CourseLookups.SaveCategory(ctx, course.Category{Name: "Safety"}))

	types, err := svc.Types(ctx)
	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Equal(t, "C", types[0].Code)

	categories, err := svc.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, int64(1), categories[0].No)
}
