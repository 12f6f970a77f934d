// Package storetest holds the behavior every store.Store implementation is
// expected to share. Backends call Run from their own tests.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada-cloud/internal/model"
	"github.com/idilsaglam/tada-cloud/internal/store"
)

// Run exercises s through the store contract. newStore must return an
// empty store for each call.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Helper()

	t.Run("empty list", func(t *testing.T) {
		items, err := newStore(t).List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("create assigns id and keeps fields", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		td, err := s.Create(ctx, model.NewTodo{
			Title:    "Buy milk",
			Content:  "2%",
			Status:   model.StatusPending,
			Category: []string{"errand"},
		})
		require.NoError(t, err)
		assert.NotEmpty(t, td.ID)
		assert.False(t, td.CreatedAt.IsZero())

		items, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		got := items[0]
		assert.Equal(t, td.ID, got.ID)
		assert.Equal(t, "Buy milk", got.Title)
		assert.Equal(t, "2%", got.Content)
		assert.Equal(t, model.StatusPending, got.Status)
		assert.Equal(t, []string{"errand"}, got.Category)
	})

	t.Run("ids are unique and list keeps creation order", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		seen := map[string]bool{}
		var want []string
		for _, title := range []string{"one", "two", "three", "four"} {
			td, err := s.Create(ctx, model.NewTodo{Title: title, Content: "c"})
			require.NoError(t, err)
			assert.False(t, seen[td.ID], "duplicate id %s", td.ID)
			seen[td.ID] = true
			want = append(want, title)
		}
		items, err := s.List(ctx)
		require.NoError(t, err)
		var got []string
		for _, it := range items {
			got = append(got, it.Title)
		}
		assert.Equal(t, want, got)
	})

	t.Run("missing status stays missing", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		_, err := s.Create(ctx, model.NewTodo{Title: "t", Content: "c"})
		require.NoError(t, err)
		items, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, model.StatusPending, items[0].EffectiveStatus())
		assert.NotNil(t, items[0].Category)
	})

	t.Run("update changes only status", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		td, err := s.Create(ctx, model.NewTodo{Title: "t", Content: "c", Status: model.StatusPending, Category: []string{"x"}})
		require.NoError(t, err)

		up, err := s.Update(ctx, model.StatusUpdate{ID: td.ID, Status: model.StatusCompleted})
		require.NoError(t, err)
		assert.Equal(t, model.StatusCompleted, up.Status)

		items, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, model.StatusCompleted, items[0].Status)
		assert.Equal(t, "t", items[0].Title)
		assert.Equal(t, []string{"x"}, items[0].Category)
	})

	t.Run("update unknown id", func(t *testing.T) {
		_, err := newStore(t).Update(context.Background(), model.StatusUpdate{ID: "nope", Status: model.StatusCompleted})
		assert.True(t, errors.Is(err, store.ErrNotFound), "got %v", err)
	})

	t.Run("delete removes record", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		a, err := s.Create(ctx, model.NewTodo{Title: "a", Content: "c"})
		require.NoError(t, err)
		b, err := s.Create(ctx, model.NewTodo{Title: "b", Content: "c"})
		require.NoError(t, err)

		require.NoError(t, s.Delete(ctx, a.ID))
		items, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, b.ID, items[0].ID)
	})

	t.Run("delete unknown id", func(t *testing.T) {
		err := newStore(t).Delete(context.Background(), "nope")
		assert.True(t, errors.Is(err, store.ErrNotFound), "got %v", err)
	})
}
