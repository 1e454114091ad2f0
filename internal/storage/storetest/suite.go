// Package storetest holds a compliance suite shared by every storage.TxStore.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/workoutlog/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises a TxStore implementation. makeStore must return a clean,
// isolated store whose value limit is limit bytes.
func Run(t *testing.T, limit int, makeStore func(t *testing.T) storage.TxStore) {
	t.Helper()

	t.Run("missing key", func(t *testing.T) {
		s := makeStore(t)
		value, found, err := s.Get(context.Background(), "absent")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, value)
	})

	t.Run("put then get", func(t *testing.T) {
		s := makeStore(t)
		ctx := context.Background()
		require.NoError(t, s.Put(ctx, "k", []byte(`[{"id":"1"}]`)))

		value, found, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, `[{"id":"1"}]`, string(value))
	})

	t.Run("put overwrites", func(t *testing.T) {
		s := makeStore(t)
		ctx := context.Background()
		require.NoError(t, s.Put(ctx, "k", []byte("one")))
		require.NoError(t, s.Put(ctx, "k", []byte("two")))

		value, _, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "two", string(value))
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		s := makeStore(t)
		ctx := context.Background()
		require.NoError(t, s.Put(ctx, "k", []byte("v")))
		require.NoError(t, s.Delete(ctx, "k"))
		require.NoError(t, s.Delete(ctx, "k"))

		_, found, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("quota keeps previous value", func(t *testing.T) {
		s := makeStore(t)
		ctx := context.Background()
		require.NoError(t, s.Put(ctx, "k", []byte("small")))

		err := s.Put(ctx, "k", make([]byte, limit+1))
		require.Error(t, err)
		assert.ErrorIs(t, err, storage.ErrQuotaExceeded)

		value, _, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "small", string(value))
	})

	t.Run("tx commits on success", func(t *testing.T) {
		s := makeStore(t)
		ctx := context.Background()
		err := s.WithinTx(ctx, func(ctx context.Context, tx storage.Store) error {
			if err := tx.Put(ctx, "k", []byte("in-tx")); err != nil {
				return err
			}
			value, found, err := tx.Get(ctx, "k")
			require.NoError(t, err)
			assert.True(t, found, "writes are visible inside the tx")
			assert.Equal(t, "in-tx", string(value))
			return nil
		})
		require.NoError(t, err)

		value, _, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "in-tx", string(value))
	})

	t.Run("tx discards writes on error", func(t *testing.T) {
		s := makeStore(t)
		ctx := context.Background()
		require.NoError(t, s.Put(ctx, "k", []byte("before")))

		boom := errors.New("boom")
		err := s.WithinTx(ctx, func(ctx context.Context, tx storage.Store) error {
			require.NoError(t, tx.Put(ctx, "k", []byte("after")))
			require.NoError(t, tx.Delete(ctx, "other"))
			return boom
		})
		assert.ErrorIs(t, err, boom)

		value, _, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "before", string(value))
	})

	t.Run("tx delete", func(t *testing.T) {
		s := makeStore(t)
		ctx := context.Background()
		require.NoError(t, s.Put(ctx, "k", []byte("v")))

		err := s.WithinTx(ctx, func(ctx context.Context, tx storage.Store) error {
			return tx.Delete(ctx, "k")
		})
		require.NoError(t, err)

		_, found, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, found)
	})
}
