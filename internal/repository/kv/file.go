package kv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	// DefaultDirPermissions is used when creating the storage directory.
	DefaultDirPermissions = 0o700
	// DefaultFilePermissions is used for value files.
	DefaultFilePermissions = 0o600

	// fileExtension is appended to keys to build value file names.
	fileExtension = ".json"
)

// FileStorage keeps each key in its own file inside a directory.
// Writes go to a temporary file that is renamed over the target, so a
// concurrent reader never sees a partially written value.
type FileStorage struct {
	// dir is the directory holding value files.
	dir string
	// mu serializes writers and keeps reads from racing a rename.
	mu sync.RWMutex
}

// NewFileStorage creates the directory if needed and returns a storage rooted at it.
func NewFileStorage(dir string) (*FileStorage, error) {
	dir = filepath.Clean(dir)

	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}

	return &FileStorage{
		dir: dir,
	}, nil
}

// Dir returns the storage directory.
func (s *FileStorage) Dir() string {
	return s.dir
}

// Get reads the value file for key.
func (s *FileStorage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, false, err
	}

	if err = ctx.Err(); err != nil {
		return nil, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}

	return contents, true, nil
}

// Set atomically replaces the value file for key.
func (s *FileStorage) Set(ctx context.Context, key string, value []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	if err = ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, "."+key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", key, err)
	}

	tmpPath := tmp.Name()

	// Remove the temp file on any failure below; after a successful rename
	// it no longer exists and the error is ignored.
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err = tmp.Write(value); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("write %s: %w", key, err)
	}

	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("sync %s: %w", key, err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", key, err)
	}

	if err = os.Chmod(tmpPath, DefaultFilePermissions); err != nil {
		return fmt.Errorf("chmod %s: %w", key, err)
	}

	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace %s: %w", key, err)
	}

	return nil
}

// Delete removes the value file for key.
func (s *FileStorage) Delete(ctx context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	if err = ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", key, err)
	}

	return nil
}

// path maps a key to its value file.
func (s *FileStorage) path(key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}

	return filepath.Join(s.dir, key+fileExtension), nil
}
