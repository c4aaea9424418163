package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// backends returns every Storage implementation rooted in a fresh temp dir.
func backends(t *testing.T) map[string]Storage {
	t.Helper()

	file, err := NewFileStorage(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)

	sqlite, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlite.Close()
	})

	return map[string]Storage{
		"memory": NewMemoryStorage(),
		"file":   file,
		"sqlite": sqlite,
	}
}

// TestStorage_Contract runs the same get/set/delete sequence against each backend.
func TestStorage_Contract(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	for name, storage := range backends(t) {
		t.Run(name, func(t *testing.T) {
			// Missing key is not an error.
			value, ok, err := storage.Get(ctx, "alarms")
			require.NoError(t, err)
			require.False(t, ok)
			require.Nil(t, value)

			require.NoError(t, storage.Set(ctx, "alarms", []byte(`[1]`)))
			require.NoError(t, storage.Set(ctx, "alarms", []byte(`[1,2]`)))

			value, ok, err = storage.Get(ctx, "alarms")
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, []byte(`[1,2]`), value)

			// Empty values are stored and distinguishable from missing ones.
			require.NoError(t, storage.Set(ctx, "empty", nil))

			value, ok, err = storage.Get(ctx, "empty")
			require.NoError(t, err)
			require.True(t, ok)
			require.Empty(t, value)

			require.NoError(t, storage.Delete(ctx, "alarms"))
			require.NoError(t, storage.Delete(ctx, "alarms"))

			_, ok, err = storage.Get(ctx, "alarms")
			require.NoError(t, err)
			require.False(t, ok)
		})
	}
}

// TestStorage_InvalidKey ensures keys that could escape the storage are rejected.
func TestStorage_InvalidKey(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	for name, storage := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"", " ", "../alarms", `a\b`, ".."} {
				_, _, err := storage.Get(ctx, key)
				require.ErrorIs(t, err, ErrInvalidKey, key)
				require.ErrorIs(t, storage.Set(ctx, key, []byte("x")), ErrInvalidKey, key)
			}
		})
	}
}

// TestMemoryStorage_CopiesValues verifies callers cannot mutate stored buffers.
func TestMemoryStorage_CopiesValues(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage := NewMemoryStorage()

	input := []byte("abc")
	require.NoError(t, storage.Set(ctx, "k", input))

	input[0] = 'x'

	got, _, err := storage.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), got)

	got[1] = 'y'

	again, _, err := storage.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), again)
}

// TestFileStorage_LeavesNoTempFiles checks that only the value file remains after writes.
func TestFileStorage_LeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	storage, err := NewFileStorage(dir)
	require.NoError(t, err)

	for range 5 {
		require.NoError(t, storage.Set(context.Background(), "alarms", []byte(`[]`)))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "alarms.json", entries[0].Name())

	info, err := entries[0].Info()
	require.NoError(t, err)
	require.Equal(t, os.FileMode(DefaultFilePermissions), info.Mode().Perm())
}

// TestStorage_CanceledContext ensures canceled operations do not touch the storage.
func TestStorage_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for name, storage := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, storage.Set(ctx, "alarms", []byte(`[]`)), context.Canceled)
		})
	}
}
