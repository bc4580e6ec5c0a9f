package domain

import (
	"slices"
	"strings"
)

// Entry is one key of a table together with the raw lines that define it.
// Lines holds the leading comments and blank lines, the key line and any
// continuation lines of a multi-line value, each with its line ending.
type Entry struct {
	Key   string
	Lines []string
}

// Table is a `[a.b.c]` section of a manifest.
type Table struct {
	// Path holds the unquoted segments of the section header.
	Path []string
	// Header is the index of the header line in the manifest.
	Header int
	// Start and End delimit the body lines [Start, End) in the manifest.
	Start, End int
	// Entries holds the keys of the body in document order.
	Entries []Entry
	// Trailer holds the blank and comment lines following the last entry.
	Trailer []string
	// EOL is the line ending used by the document.
	EOL string

	// Marker is the number of entries rendered before MarkerLine, or -1.
	Marker     int
	MarkerLine string
}

// Name returns the dotted path of the table.
func (t *Table) Name() string {
	return strings.Join(t.Path, ".")
}

// Keys returns the entry keys in their current order.
func (t *Table) Keys() []string {
	keys := make([]string, len(t.Entries))
	for i, e := range t.Entries {
		keys[i] = e.Key
	}
	return keys
}

// Has reports whether the table has an entry for key.
func (t *Table) Has(key string) bool {
	return slices.ContainsFunc(t.Entries, func(e Entry) bool { return e.Key == key })
}

func (t *Table) render(b *strings.Builder) {
	for i, e := range t.Entries {
		if i == t.Marker {
			b.WriteString(t.MarkerLine)
		}
		for _, line := range e.Lines {
			b.WriteString(line)
		}
	}
	if t.Marker >= 0 && t.Marker == len(t.Entries) {
		b.WriteString(t.MarkerLine)
	}
	for _, line := range t.Trailer {
		b.WriteString(line)
	}
}

// Manifest is a TOML document held as raw lines plus the sections found in it.
// Rendering an unmodified manifest reproduces its input byte for byte.
type Manifest struct {
	lines    []string
	tables   []Table
	keys     map[string]struct{}
	replaced map[int]Table
}

// NewManifest creates a Manifest from its lines, its sections and the dotted
// paths of every key defined in it.
func NewManifest(lines []string, tables []Table, keys []string) *Manifest {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return &Manifest{
		lines:    lines,
		tables:   tables,
		keys:     set,
		replaced: make(map[int]Table),
	}
}

// Defined reports whether path, or any key below it, is defined in the document.
func (m *Manifest) Defined(path string) bool {
	if _, ok := m.keys[path]; ok {
		return true
	}
	prefix := path + "."
	for k := range m.keys {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}

// DefinedInline reports whether keys below path are defined outside the
// sections rooted at path, through an inline table or dotted keys.
func (m *Manifest) DefinedInline(path string) bool {
	var sections []string
	for _, t := range m.tables {
		if name := t.Name(); name == path || strings.HasPrefix(name, path+".") {
			sections = append(sections, name)
		}
	}

	for k := range m.keys {
		if k != path && !strings.HasPrefix(k, path+".") {
			continue
		}
		if k == path && len(sections) > 0 {
			continue
		}
		covered := slices.ContainsFunc(sections, func(s string) bool {
			return k == s || strings.HasPrefix(k, s+".")
		})
		if !covered {
			return true
		}
	}
	return false
}

// Tables returns the sections of the manifest in document order, with any
// replacement applied.
func (m *Manifest) Tables() []Table {
	out := make([]Table, len(m.tables))
	for i := range m.tables {
		out[i] = m.tableAt(i)
	}
	return out
}

// Table returns the section whose dotted path equals name.
func (m *Manifest) Table(name string) (Table, bool) {
	i := m.indexOf(name)
	if i < 0 {
		return Table{}, false
	}
	return m.tableAt(i), true
}

// Replace swaps the section with the same path for t.
// It reports false when the manifest has no such section.
func (m *Manifest) Replace(t Table) bool {
	i := m.indexOf(t.Name())
	if i < 0 {
		return false
	}
	m.replaced[i] = t
	return true
}

// Modified reports whether any section was replaced.
func (m *Manifest) Modified() bool {
	return len(m.replaced) > 0
}

// Bytes renders the manifest.
func (m *Manifest) Bytes() []byte {
	var b strings.Builder
	next := 0
	for i, t := range m.tables {
		r, ok := m.replaced[i]
		if !ok {
			continue
		}
		for _, line := range m.lines[next:t.Start] {
			b.WriteString(line)
		}
		r.render(&b)
		next = t.End
	}
	for _, line := range m.lines[next:] {
		b.WriteString(line)
	}
	return []byte(b.String())
}

func (m *Manifest) indexOf(name string) int {
	return slices.IndexFunc(m.tables, func(t Table) bool { return t.Name() == name })
}

func (m *Manifest) tableAt(i int) Table {
	if r, ok := m.replaced[i]; ok {
		return r
	}
	return m.tables[i]
}
