package local

import (
	"errors"
	"os"
	"path/filepath"
	"time"
)

// Store keeps blobs on the local filesystem under a base directory. Used
// for development and as the storage backend in tests.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) fullPath(path string) string {
	return filepath.Join(s.baseDir, filepath.FromSlash(path))
}

func (s *Store) Put(path string, data []byte) error {
	full := s.fullPath(path)
	err := os.MkdirAll(filepath.Dir(full), 0770)
	if err != nil {
		return err
	}
	return os.WriteFile(full, data, 0644)
}

func (s *Store) Delete(path string) error {
	return os.Remove(s.fullPath(path))
}

func (s *Store) Exists(path string) (bool, error) {
	_, err := os.Stat(s.fullPath(path))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// URL returns the filesystem path; local blobs have no presigning.
func (s *Store) URL(path string, _ time.Duration) (string, error) {
	return s.fullPath(path), nil
}
