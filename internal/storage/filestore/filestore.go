// Package filestore implements storage.Storage with one JSON file per slot.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"todo/internal/storage"
)

// keyRegex limits slot names to something safe to use as a file name.
var keyRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,64}$`)

// Store keeps each slot in <dir>/<key>.json.
type Store struct {
	dir string
}

// New creates a Store rooted at dir, creating the directory (mode 0700) if
// needed.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("filestore: data directory not set")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("filestore: create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Path returns the file backing key.
func (s *Store) Path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get implements storage.Storage.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if !keyRegex.MatchString(key) {
		return nil, fmt.Errorf("filestore: invalid key %q", key)
	}
	data, err := os.ReadFile(s.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("filestore: read %s: %w", key, err)
	}
	return data, nil
}

// Set implements storage.Storage. The value is written to a temporary file in
// the same directory and renamed over the slot file.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if !keyRegex.MatchString(key) {
		return fmt.Errorf("filestore: invalid key %q", key)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("filestore: write %s: %w", key, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("filestore: write %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("filestore: sync %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("filestore: write %s: %w", key, err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		return fmt.Errorf("filestore: write %s: %w", key, err)
	}
	if err := os.Rename(tmpName, s.Path(key)); err != nil {
		return fmt.Errorf("filestore: replace %s: %w", key, err)
	}
	return nil
}

// Close implements storage.Storage.
func (s *Store) Close() error { return nil }
