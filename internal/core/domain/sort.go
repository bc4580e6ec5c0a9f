package domain

import (
	"slices"
	"strings"
)

// SortKeys returns keys in byte-wise order with every occurrence of pin moved
// to the front. An empty pin disables pinning.
func SortKeys(keys []string, pin string) []string {
	sorted := slices.Clone(keys)
	slices.SortStableFunc(sorted, func(a, b string) int {
		return compareKeys(a, b, pin)
	})
	return sorted
}

// SortTable sorts the entries of t by key, keeps pin first and reports
// whether the order changed. An unchanged table is returned as is.
//
// A reordered table carries exactly one marker line: after the pinned entry
// when the table has one, otherwise directly after the header. Marker lines
// left by earlier runs are dropped.
func SortTable(t Table, pin, marker string) (Table, bool) {
	sorted := slices.Clone(t.Entries)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		return compareKeys(a.Key, b.Key, pin)
	})

	out := t
	out.Entries = sorted
	if slices.Equal(t.Keys(), out.Keys()) {
		return t, false
	}

	eol := t.EOL
	if eol == "" {
		eol = "\n"
	}

	pinned := 0
	for i, e := range sorted {
		lines := make([]string, 0, len(e.Lines))
		for _, line := range e.Lines {
			if isMarker(line, marker) {
				continue
			}
			if !strings.HasSuffix(line, "\n") {
				line += eol
			}
			lines = append(lines, line)
		}
		sorted[i].Lines = lines
		if pin != "" && e.Key == pin {
			pinned++
		}
	}
	out.Trailer = slices.DeleteFunc(slices.Clone(t.Trailer), func(line string) bool {
		return isMarker(line, marker)
	})
	out.Marker = pinned
	out.MarkerLine = marker + eol
	return out, true
}

func compareKeys(a, b, pin string) int {
	if pin != "" && a != b {
		switch pin {
		case a:
			return -1
		case b:
			return 1
		}
	}
	return strings.Compare(a, b)
}

func isMarker(line, marker string) bool {
	return strings.TrimSpace(line) == marker
}
