package domain

import (
	"slices"
	"strings"
)

const (
	// PoetryPath is the table that marks a manifest as Poetry managed.
	PoetryPath = "tool.poetry"

	// ProductionPath is the table holding runtime dependencies.
	ProductionPath = "tool.poetry.dependencies"

	// DevelopmentPath is the table holding development dependencies.
	DevelopmentPath = "tool.poetry.dev-dependencies"

	// PinnedKey is kept first in the production table.
	PinnedKey = "python"

	// DefaultMarker is stamped into every table that had to be reordered.
	DefaultMarker = "# Everything after this should be sorted alphabetically"
)

// TableSpec selects the tables to sort.
// A `*` segment in Path matches exactly one key segment.
type TableSpec struct {
	Path string
	Pin  string
}

// DefaultTableSpecs returns the production and development tables.
func DefaultTableSpecs() []TableSpec {
	return []TableSpec{
		{Path: ProductionPath, Pin: PinnedKey},
		{Path: DevelopmentPath},
	}
}

// IsPattern reports whether the spec contains a wildcard segment.
func (s TableSpec) IsPattern() bool {
	return slices.Contains(strings.Split(s.Path, "."), "*")
}

// Matches reports whether the dotted table path is selected by the spec.
func (s TableSpec) Matches(path []string) bool {
	pattern := strings.Split(s.Path, ".")
	if len(pattern) != len(path) {
		return false
	}
	for i, seg := range pattern {
		if seg != "*" && seg != path[i] {
			return false
		}
	}
	return true
}
