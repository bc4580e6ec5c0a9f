// Package app implements the application layer for poetrysort.
package app

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"go.trai.ch/poetrysort/internal/core/domain"
	"go.trai.ch/poetrysort/internal/core/ports"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	store        ports.ManifestStore
	codec        ports.ManifestCodec
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	store ports.ManifestStore,
	codec ports.ManifestCodec,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		store:        store,
		codec:        codec,
		logger:       log,
	}
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// Check reports unsorted tables without rewriting any file.
	Check bool
	// JSON switches the log output to JSON lines.
	JSON bool
	// Jobs bounds the number of manifests processed concurrently.
	// Zero or less means one per CPU.
	Jobs int
	// ConfigPath is the tool configuration file. Empty means defaults.
	ConfigPath string
}

// Run normalizes the manifests at paths, or the nearest manifest above the
// working directory when paths is empty.
// It returns domain.ErrManifestReordered when at least one table was
// (or in check mode would be) reordered.
func (a *App) Run(ctx context.Context, paths []string, opts RunOptions) error {
	if opts.JSON {
		a.logger.SetJSON(true)
	}

	cfg, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	if len(paths) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return zerr.Wrap(err, "failed to get current working directory")
		}
		path, err := a.store.Locate(cwd)
		if err != nil {
			return err
		}
		paths = []string{path}
	}

	reports, err := a.NormalizeAll(ctx, paths, cfg, opts)
	if err != nil {
		return err
	}

	if domain.CombinedStatus(reports) == domain.StatusChanged {
		return domain.ErrManifestReordered
	}
	return nil
}

func jobs(n int) int {
	if n > 0 {
		return n
	}
	return runtime.NumCPU()
}

func summary(r *domain.Report, check bool) string {
	var sorted []string
	for _, t := range r.Tables {
		if t.Changed {
			sorted = append(sorted, t.Path)
		}
	}

	switch {
	case len(sorted) == 0:
		return fmt.Sprintf("%s: dependency tables left unchanged", r.Path)
	case check:
		return fmt.Sprintf("%s: %s not sorted", r.Path, strings.Join(sorted, ", "))
	default:
		return fmt.Sprintf("%s modified: %s sorted", r.Path, strings.Join(sorted, ", "))
	}
}
