package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/poetrysort/internal/core/domain"
	"go.trai.ch/zerr"
)

// FindManifest walks up from dir to the nearest pyproject.toml.
func FindManifest(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve start directory"), "dir", dir)
	}

	for {
		candidate := filepath.Join(current, domain.ManifestFileName)
		info, statErr := os.Stat(candidate)
		switch {
		case statErr == nil && !info.IsDir():
			return candidate, nil
		case statErr != nil && !errors.Is(statErr, iofs.ErrNotExist):
			return "", zerr.With(zerr.Wrap(statErr, "failed to stat path"), "path", candidate)
		}

		parent := filepath.Dir(current)
		if parent == current {
			// Reached root
			break
		}
		current = parent
	}

	return "", zerr.With(zerr.Wrap(domain.ErrManifestNotFound, "no "+domain.ManifestFileName+" in directory or its parents"), "dir", dir)
}

// Locate implements ports.ManifestStore by walking up from dir.
func (s *Store) Locate(dir string) (string, error) {
	return FindManifest(dir)
}
