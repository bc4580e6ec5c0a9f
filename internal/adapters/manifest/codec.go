// Package manifest decodes TOML manifests into the line model used for sorting.
package manifest

import (
	"errors"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/go-cmp/cmp"
	"go.trai.ch/poetrysort/internal/core/domain"
	"go.trai.ch/poetrysort/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestCodec = (*Codec)(nil)

// Codec implements ports.ManifestCodec on top of BurntSushi/toml.
type Codec struct{}

// NewCodec creates a new Codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Decode validates data as TOML and splits it into sections and entries.
func (c *Codec) Decode(data []byte) (*domain.Manifest, error) {
	var doc map[string]any
	meta, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, parseError(err)
	}

	lines := splitLines(string(data))
	scanned, ok := scan(lines)
	if !ok {
		return nil, domain.ErrManifestLayout
	}

	keys := meta.Keys()
	defined := make([]string, len(keys))
	for i, k := range keys {
		defined[i] = strings.Join(k, ".")
	}

	tables, err := buildTables(lines, scanned, eolOf(lines), &meta)
	if err != nil {
		return nil, err
	}
	return domain.NewManifest(lines, tables, defined), nil
}

// Verify checks that rendered decodes to the same data as original.
func (c *Codec) Verify(original, rendered []byte) error {
	var before, after map[string]any
	if _, err := toml.Decode(string(original), &before); err != nil {
		return parseError(err)
	}
	if _, err := toml.Decode(string(rendered), &after); err != nil {
		return zerr.Wrap(parseError(err), domain.ErrRoundTripMismatch.Error())
	}
	if diff := cmp.Diff(before, after); diff != "" {
		return zerr.With(zerr.Wrap(domain.ErrRoundTripMismatch, "rendered manifest differs"), "diff", diff)
	}
	return nil
}

func parseError(err error) error {
	wrapped := zerr.Wrap(err, domain.ErrManifestParseFailed.Error())
	var perr toml.ParseError
	if errors.As(err, &perr) {
		wrapped = zerr.With(wrapped, "line", perr.Position.Line)
	}
	return wrapped
}

func buildTables(lines []string, scanned []scannedLine, eol string, meta *toml.MetaData) ([]domain.Table, error) {
	var (
		tables  []domain.Table
		current *domain.Table
		pending []string
	)

	closeTable := func(end int) {
		if current == nil {
			return
		}
		current.End = end
		current.Trailer = pending
		tables = append(tables, *current)
		current = nil
	}

	for i, sl := range scanned {
		switch sl.kind {
		case lineHeader:
			closeTable(i)
			current = &domain.Table{Path: sl.path, Header: i, Start: i + 1, EOL: eol, Marker: -1}
			pending = nil
		case lineArrayHeader:
			closeTable(i)
			pending = nil
		case lineTrivia:
			if current != nil {
				pending = append(pending, lines[i])
			}
		case lineEntry:
			if current == nil {
				continue
			}
			key := sl.path[0]
			if !meta.IsDefined(slices.Concat(current.Path, []string{key})...) {
				return nil, zerr.With(zerr.Wrap(domain.ErrManifestLayout, "entry outside a known table"), "line", i+1)
			}
			entryLines := append(pending, lines[i])
			current.Entries = append(current.Entries, domain.Entry{Key: key, Lines: entryLines})
			pending = nil
		case lineContinuation:
			if current == nil || len(current.Entries) == 0 {
				continue
			}
			last := &current.Entries[len(current.Entries)-1]
			last.Lines = append(last.Lines, lines[i])
		}
	}
	closeTable(len(lines))
	return tables, nil
}

// splitLines splits s after every newline, keeping the line endings.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func eolOf(lines []string) string {
	if len(lines) > 0 && strings.HasSuffix(lines[0], "\r\n") {
		return "\r\n"
	}
	return "\n"
}
