package app

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"go.trai.ch/poetrysort/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// NormalizeAll normalizes every manifest in paths.
// Distinct files are processed concurrently, bounded by opts.Jobs.
// Reports are returned in input order; the first error aborts the batch.
func (a *App) NormalizeAll(
	ctx context.Context,
	paths []string,
	cfg *domain.Config,
	opts RunOptions,
) ([]*domain.Report, error) {
	paths = uniquePaths(paths)
	reports := make([]*domain.Report, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs(opts.Jobs))

	for i, path := range paths {
		g.Go(func() error {
			report, err := a.Normalize(ctx, path, cfg, opts.Check)
			if err != nil {
				return err
			}
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// Normalize sorts the configured dependency tables of the manifest at path.
// Changed tables are rendered into one document, verified against the
// original data and written once. In check mode nothing is written.
func (a *App) Normalize(ctx context.Context, path string, cfg *domain.Config, check bool) (*domain.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := a.store.Read(path)
	if err != nil {
		return nil, err
	}

	manifest, err := a.codec.Decode(data)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to decode manifest"), "path", path)
	}

	report := &domain.Report{Path: path}
	if !manifest.Defined(domain.PoetryPath) {
		a.logger.Info(fmt.Sprintf("%s: no [%s] table, nothing to sort", path, domain.PoetryPath))
		return report, nil
	}
	report.Poetry = true

	seen := make(map[string]bool)
	for _, spec := range cfg.Tables {
		tables := selectTables(manifest, spec)
		if len(tables) == 0 && !spec.IsPattern() {
			if manifest.DefinedInline(spec.Path) {
				return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrInlineTable,
					"cannot sort dependency table"), "path", path), "table", spec.Path)
			}
			a.logger.Info(fmt.Sprintf("%s: no [%s] table", path, spec.Path))
			report.Tables = append(report.Tables, domain.TableResult{Path: spec.Path, Missing: true})
			continue
		}

		for _, table := range tables {
			name := table.Name()
			if seen[name] {
				continue
			}
			seen[name] = true

			sorted, changed := domain.SortTable(table, spec.Pin, cfg.Marker)
			if changed {
				manifest.Replace(sorted)
			}
			report.Tables = append(report.Tables, domain.TableResult{
				Path:    name,
				Changed: changed,
				Pinned:  spec.Pin != "" && table.Has(spec.Pin),
				Before:  table.Keys(),
				After:   sorted.Keys(),
			})
		}
	}

	if !manifest.Modified() {
		a.logger.Info(summary(report, check))
		return report, nil
	}

	rendered := manifest.Bytes()
	if err := a.codec.Verify(data, rendered); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "refusing to write manifest"), "path", path)
	}

	if check {
		a.logger.Warn(summary(report, check))
		return report, nil
	}

	if err := a.store.Write(path, rendered); err != nil {
		return nil, err
	}
	report.Written = true
	a.logger.Info(summary(report, check))
	return report, nil
}

func selectTables(m *domain.Manifest, spec domain.TableSpec) []domain.Table {
	if !spec.IsPattern() {
		if t, ok := m.Table(spec.Path); ok {
			return []domain.Table{t}
		}
		return nil
	}

	var tables []domain.Table
	for _, t := range m.Tables() {
		if spec.Matches(t.Path) {
			tables = append(tables, t)
		}
	}
	return tables
}

func uniquePaths(paths []string) []string {
	unique := make([]string, 0, len(paths))
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		key := filepath.Clean(p)
		if abs, err := filepath.Abs(p); err == nil {
			key = abs
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, p)
	}
	return slices.Clip(unique)
}
