package logger

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// messager matches errors that report their own message without the chain,
// like zerr.Error.
type messager interface {
	Message() string
}

// metadataer matches errors that carry structured metadata, like zerr.Error.
type metadataer interface {
	Metadata() map[string]any
}

// ErrorEntry is one level of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries walks the chain of err. A standard library error ends
// the walk with its full message. Levels without a message only carry
// metadata, which is folded into the nearest level that has one.
func collectErrorEntries(err error) []ErrorEntry {
	var (
		entries []ErrorEntry
		pending map[string]any
	)
	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error(), Metadata: pending})
			break
		}

		var metadata map[string]any
		if md, ok := current.(metadataer); ok {
			metadata = md.Metadata()
		}
		current = errors.Unwrap(current)

		if m.Message() == "" && current != nil {
			if len(entries) > 0 {
				last := &entries[len(entries)-1]
				last.Metadata = merge(last.Metadata, metadata)
			} else {
				pending = merge(pending, metadata)
			}
			continue
		}

		entries = append(entries, ErrorEntry{Message: m.Message(), Metadata: merge(metadata, pending)})
		pending = nil
	}
	return entries
}

func merge(dst, src map[string]any) map[string]any {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// formatErrorEntries renders the entries as an "Error:" line followed by
// the causes, each with its metadata sorted by key.
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string
	for i, entry := range entries {
		msg := strings.Split(entry.Message, "\n")

		prefix, indent := "Error: ", "       "
		if i > 0 {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			prefix, indent = "    → ", "      "
		}

		lines = append(lines, prefix+msg[0])
		for _, line := range msg[1:] {
			lines = append(lines, indent+line)
		}
		lines = append(lines, formatMetadata(entry.Metadata, indent)...)
	}
	return strings.Join(lines, "\n")
}

func formatMetadata(metadata map[string]any, indent string) []string {
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var lines []string
	for _, k := range keys {
		value := strings.Split(strings.TrimRight(fmt.Sprint(metadata[k]), "\n"), "\n")
		lines = append(lines, indent+k+": "+value[0])
		for _, line := range value[1:] {
			lines = append(lines, indent+"  "+line)
		}
	}
	return lines
}
