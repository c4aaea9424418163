package kv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/alarm-manager/internal/config"
)

// TestOpen verifies each configured backend produces the matching storage.
func TestOpen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()

	storage, closer, err := Open(ctx, config.Storage{Backend: config.BackendFile, Path: filepath.Join(dir, "data")})
	require.NoError(t, err)
	require.IsType(t, new(FileStorage), storage)
	require.NoError(t, closer.Close())

	storage, closer, err = Open(ctx, config.Storage{Backend: config.BackendSQLite, Path: filepath.Join(dir, "kv.db")})
	require.NoError(t, err)
	require.IsType(t, new(SQLiteStorage), storage)
	require.NoError(t, closer.Close())

	storage, closer, err = Open(ctx, config.Storage{Backend: config.BackendMemory})
	require.NoError(t, err)
	require.IsType(t, new(MemoryStorage), storage)
	require.NoError(t, closer.Close())

	_, _, err = Open(ctx, config.Storage{Backend: "redis"})
	require.ErrorIs(t, err, errUnsupportedBackend)
}
