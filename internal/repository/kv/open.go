package kv

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/oshokin/alarm-manager/internal/config"
)

var errUnsupportedBackend = errors.New("unsupported storage backend")

// nopCloser is returned for backends without resources to release.
type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the storage described by settings. The returned closer must be
// closed when the storage is no longer used.
func Open(ctx context.Context, settings config.Storage) (Storage, io.Closer, error) {
	switch settings.Backend {
	case config.BackendFile, "":
		storage, err := NewFileStorage(settings.Path)
		if err != nil {
			return nil, nil, err
		}

		return storage, nopCloser{}, nil
	case config.BackendSQLite:
		storage, err := OpenSQLite(ctx, settings.Path)
		if err != nil {
			return nil, nil, err
		}

		return storage, storage, nil
	case config.BackendMemory:
		return NewMemoryStorage(), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", errUnsupportedBackend, settings.Backend)
	}
}
