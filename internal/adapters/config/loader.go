// Package config provides the configuration loader for poetrysort.
package config

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"slices"
	"strings"

	"go.trai.ch/poetrysort/internal/core/domain"
	"go.trai.ch/poetrysort/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration file at path.
// An empty path or a missing file yields domain.DefaultConfig.
func (l *Loader) Load(path string) (*domain.Config, error) {
	if path == "" {
		return domain.DefaultConfig(), nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // Path is provided by the user
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	cfg, err := l.toDomain(&file)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return cfg, nil
}

func (l *Loader) toDomain(file *File) (*domain.Config, error) {
	cfg := domain.DefaultConfig()

	if v := strings.TrimSpace(file.Version); v != "" && v != domain.ConfigVersion {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnsupportedConfigVersion, domain.ErrConfigParseFailed.Error()), "version", v)
	}

	if file.Marker != "" {
		if err := validateMarker(file.Marker); err != nil {
			return nil, err
		}
		cfg.Marker = strings.TrimSpace(file.Marker)
	}

	if len(file.Tables) == 0 {
		return cfg, nil
	}

	specs := make([]domain.TableSpec, 0, len(file.Tables))
	for i, dto := range file.Tables {
		path := strings.TrimSpace(dto.Path)
		if err := validateTablePath(path); err != nil {
			return nil, zerr.With(err, "index", i)
		}

		if slices.ContainsFunc(specs, func(s domain.TableSpec) bool { return s.Path == path }) {
			l.Logger.Warn(fmt.Sprintf("table %q is configured more than once, using the first entry", path))
			continue
		}

		specs = append(specs, domain.TableSpec{Path: path, Pin: strings.TrimSpace(dto.Pin)})
	}
	cfg.Tables = specs
	return cfg, nil
}

func validateMarker(marker string) error {
	trimmed := strings.TrimSpace(marker)
	if !strings.HasPrefix(trimmed, "#") || strings.ContainsAny(trimmed, "\r\n") {
		return zerr.With(zerr.Wrap(domain.ErrInvalidMarker, domain.ErrConfigParseFailed.Error()), "marker", marker)
	}
	return nil
}

func validateTablePath(path string) error {
	if path == "" {
		return zerr.Wrap(domain.ErrInvalidTableSpec, domain.ErrConfigParseFailed.Error())
	}
	if slices.Contains(strings.Split(path, "."), "") {
		return zerr.With(zerr.Wrap(domain.ErrInvalidTableSpec, domain.ErrConfigParseFailed.Error()), "table", path)
	}
	return nil
}
