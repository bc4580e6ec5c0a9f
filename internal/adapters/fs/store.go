// Package fs implements manifest persistence and discovery on the local filesystem.
package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/poetrysort/internal/core/domain"
	"go.trai.ch/poetrysort/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestStore = (*Store)(nil)

// Store implements ports.ManifestStore.
// It remembers the digest of every manifest it reads and refuses to
// overwrite one whose content changed on disk in the meantime.
type Store struct {
	mu      sync.Mutex
	digests map[string]uint64
}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{digests: make(map[string]uint64)}
}

// Read returns the content of the manifest at path.
func (s *Store) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is provided by the user
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestNotFound.Error()), "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}

	s.remember(path, HashBytes(data))
	return data, nil
}

// Write atomically replaces the content of the manifest at path,
// keeping its permissions.
func (s *Store) Write(path string, data []byte) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}

	mode := iofs.FileMode(domain.FilePerm)
	if info, statErr := os.Stat(target); statErr == nil {
		mode = info.Mode().Perm()
	}

	if expected, ok := s.digest(path); ok {
		current, hashErr := HashFile(target)
		if hashErr != nil {
			return zerr.With(zerr.Wrap(hashErr, domain.ErrManifestWriteFailed.Error()), "path", path)
		}
		if current != expected {
			return zerr.With(zerr.Wrap(domain.ErrManifestModified, "refusing to overwrite"), "path", path)
		}
	}

	if err := writeAtomic(target, data, mode); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}

	s.remember(path, HashBytes(data))
	return nil
}

func writeAtomic(path string, data []byte, mode iofs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // Gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func (s *Store) remember(path string, digest uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.digests[key(path)] = digest
}

func (s *Store) digest(path string) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.digests[key(path)]
	return d, ok
}

func key(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
