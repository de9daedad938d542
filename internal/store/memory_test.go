package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-gudang/internal/domain"
)

func TestMemoryStagedWrites(t *testing.T) {
	ctx := context.Background()
	m := NewMemory[domain.Category]()

	cat, err := domain.NewCategory("Coffee", nil)
	require.NoError(t, err)

	require.NoError(t, m.Add(ctx, cat))

	// Staged writes are invisible until Commit.
	all, err := m.ListAll(ctx)
	require.NoError(t, err)
	require.Empty(t, all)

	_, ok, err := m.GetByID(ctx, cat.ID)
	require.NoError(t, err)
	require.False(t, ok)

	affected, err := m.Commit(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, affected)

	got, ok, err := m.GetByID(ctx, cat.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Coffee", got.Name)
}

func TestMemoryCommitIsIdempotentOnStage(t *testing.T) {
	ctx := context.Background()
	m := NewMemory[domain.Category]()

	cat, err := domain.NewCategory("Tea", nil)
	require.NoError(t, err)
	require.NoError(t, m.Add(ctx, cat))

	affected, err := m.Commit(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, affected)

	// A second commit has nothing staged.
	affected, err = m.Commit(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, affected)
}

func TestMemoryListAllPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	m := NewMemory[domain.Category]()

	names := []string{"Alpha", "Bravo", "Charlie"}
	for _, name := range names {
		cat, err := domain.NewCategory(name, nil)
		require.NoError(t, err)
		require.NoError(t, m.Add(ctx, cat))
	}
	_, err := m.Commit(ctx)
	require.NoError(t, err)

	all, err := m.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, name := range names {
		require.Equal(t, name, all[i].Name)
	}
}

func TestMemoryUpdateAndRemove(t *testing.T) {
	ctx := context.Background()
	m := NewMemory[domain.Category]()

	cat, err := domain.NewCategory("Snacks", nil)
	require.NoError(t, err)
	require.NoError(t, m.Add(ctx, cat))
	_, err = m.Commit(ctx)
	require.NoError(t, err)

	cat.Name = "Sweets"
	require.NoError(t, m.Update(ctx, cat))
	_, err = m.Commit(ctx)
	require.NoError(t, err)

	got, ok, err := m.GetByID(ctx, cat.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Sweets", got.Name)

	require.NoError(t, m.Remove(ctx, cat))
	affected, err := m.Commit(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, affected)

	_, ok, err = m.GetByID(ctx, cat.ID)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryCommitErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate add", func(t *testing.T) {
		m := NewMemory[domain.Category]()
		cat, err := domain.NewCategory("Dup", nil)
		require.NoError(t, err)
		require.NoError(t, m.Add(ctx, cat))
		require.NoError(t, m.Add(ctx, cat))
		_, err = m.Commit(ctx)
		require.ErrorIs(t, err, ErrDuplicateID)
	})

	t.Run("update missing row", func(t *testing.T) {
		m := NewMemory[domain.Category]()
		cat, err := domain.NewCategory("Ghost", nil)
		require.NoError(t, err)
		require.NoError(t, m.Update(ctx, cat))
		_, err = m.Commit(ctx)
		require.ErrorIs(t, err, ErrMissingRow)
	})

	t.Run("remove missing row", func(t *testing.T) {
		m := NewMemory[domain.Category]()
		cat, err := domain.NewCategory("Ghost", nil)
		require.NoError(t, err)
		require.NoError(t, m.Remove(ctx, cat))
		_, err = m.Commit(ctx)
		require.ErrorIs(t, err, ErrMissingRow)
	})

	t.Run("failure keeps earlier mutations", func(t *testing.T) {
		m := NewMemory[domain.Category]()
		first, err := domain.NewCategory("First", nil)
		require.NoError(t, err)
		missing := domain.Category{ID: uuid.New(), Name: "Missing"}
		require.NoError(t, m.Add(ctx, first))
		require.NoError(t, m.Update(ctx, missing))
		affected, err := m.Commit(ctx)
		require.ErrorIs(t, err, ErrMissingRow)
		require.EqualValues(t, 1, affected)

		_, ok, err := m.GetByID(ctx, first.ID)
		require.NoError(t, err)
		require.True(t, ok)

		// The stage was cleared despite the failure.
		affected, err = m.Commit(ctx)
		require.NoError(t, err)
		require.EqualValues(t, 0, affected)
	})
}

func TestMemoryContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMemory[domain.Category]()
	_, err := m.ListAll(ctx)
	require.ErrorIs(t, err, context.Canceled)

	cat, newErr := domain.NewCategory("Late", nil)
	require.NoError(t, newErr)
	require.ErrorIs(t, m.Add(ctx, cat), context.Canceled)

	_, err = m.Commit(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
