package repository

import (
	"context"
	"employee-api/internal/model"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySave_AssignsDistinctIDs(t *testing.T) {
	repo := NewMemoryEmployeeRepository()
	ctx := context.Background()

	first, err := repo.Save(ctx, model.NewEmployee("Mary", "Manager"))
	require.NoError(t, err)
	second, err := repo.Save(ctx, model.NewEmployee("Mary", "Manager"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, 2, repo.Len())
}

func TestMemorySave_UpsertOverwritesInPlace(t *testing.T) {
	repo := NewMemoryEmployeeRepository()
	ctx := context.Background()

	_, err := repo.Save(ctx, model.NewEmployeeWithID(1, "Tom", "Engineer"))
	require.NoError(t, err)
	saved, err := repo.Save(ctx, model.NewEmployeeWithID(1, "Tom", "Manager"))
	require.NoError(t, err)

	assert.Equal(t, model.NewEmployeeWithID(1, "Tom", "Manager"), saved)
	assert.Equal(t, 1, repo.Len())

	found, ok, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Manager", found.Role)
}

func TestMemorySave_AssignedIDsSkipClientIDs(t *testing.T) {
	repo := NewMemoryEmployeeRepository()
	ctx := context.Background()

	_, err := repo.Save(ctx, model.NewEmployeeWithID(10, "Tom", "Manager"))
	require.NoError(t, err)

	created, err := repo.Save(ctx, model.NewEmployee("Mary", "Manager"))
	require.NoError(t, err)
	assert.Equal(t, int64(11), created.ID)
}

func TestMemorySave_DeletedIDsAreNotReused(t *testing.T) {
	repo := NewMemoryEmployeeRepository()
	ctx := context.Background()

	first, _ := repo.Save(ctx, model.NewEmployee("Mary", "Manager"))
	require.NoError(t, repo.DeleteByID(ctx, first.ID))

	second, err := repo.Save(ctx, model.NewEmployee("Mary", "Manager"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestMemoryFindByID_Absent(t *testing.T) {
	repo := NewMemoryEmployeeRepository()

	_, found, err := repo.FindByID(context.Background(), 1)
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryDeleteByID_AbsentIsNoop(t *testing.T) {
	repo := NewMemoryEmployeeRepository()

	assert.NoError(t, repo.DeleteByID(context.Background(), 99))
	assert.NoError(t, repo.DeleteByID(context.Background(), 99))
}

func TestMemory_CancelledContext(t *testing.T) {
	repo := NewMemoryEmployeeRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Save(ctx, model.NewEmployee("Mary", "Manager"))
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestMemorySave_ConcurrentSameIDUpserts(t *testing.T) {
	repo := NewMemoryEmployeeRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Save(ctx, model.NewEmployeeWithID(1, "Tom", "Manager"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, repo.Len())
	e, found, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, model.NewEmployeeWithID(1, "Tom", "Manager"), e)
}

func TestMemorySave_ConcurrentCreatesGetUniqueIDs(t *testing.T) {
	repo := NewMemoryEmployeeRepository()
	ctx := context.Background()

	ids := make(chan int64, 100)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e, err := repo.Save(ctx, model.NewEmployee("Mary", "Manager"))
			if assert.NoError(t, err) {
				ids <- e.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "id %d assigned twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, 100)
}
