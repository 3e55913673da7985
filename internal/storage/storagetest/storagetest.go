// Package storagetest holds the behaviour every storage.Storage driver must
// share, run by each driver's tests.
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo/internal/storage"
)

// Run exercises s. The storage must not contain the slots used here.
func Run(t *testing.T, s storage.Storage) {
	t.Helper()
	ctx := context.Background()

	t.Run("absent key", func(t *testing.T) {
		_, err := s.Get(ctx, "storagetest-absent")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "storagetest-a", []byte(`[{"id":"1"}]`)))

		got, err := s.Get(ctx, "storagetest-a")
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"1"}]`, string(got))
	})

	t.Run("overwrite replaces whole value", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "storagetest-b", []byte("a much longer first value")))
		require.NoError(t, s.Set(ctx, "storagetest-b", []byte("short")))

		got, err := s.Get(ctx, "storagetest-b")
		require.NoError(t, err)
		assert.Equal(t, "short", string(got))
	})

	t.Run("slots are independent", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "storagetest-c", []byte("c")))
		require.NoError(t, s.Set(ctx, "storagetest-d", []byte("d")))

		c, err := s.Get(ctx, "storagetest-c")
		require.NoError(t, err)
		d, err := s.Get(ctx, "storagetest-d")
		require.NoError(t, err)
		assert.Equal(t, "c", string(c))
		assert.Equal(t, "d", string(d))
	})

	t.Run("empty value", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "storagetest-e", []byte{}))

		got, err := s.Get(ctx, "storagetest-e")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
