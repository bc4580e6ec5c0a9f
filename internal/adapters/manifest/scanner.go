package manifest

import (
	"strconv"
	"strings"
)

const bom = "\xef\xbb\xbf"

type lineKind int

const (
	lineTrivia lineKind = iota
	lineHeader
	lineArrayHeader
	lineEntry
	lineContinuation
)

// scannedLine classifies one physical line of a document.
type scannedLine struct {
	kind lineKind
	path []string // header path, or the full key path of an entry
}

// scanner tracks values that span several lines.
type scanner struct {
	depth     int    // open arrays and inline tables
	multiline string // closing delimiter of an open multi-line string
}

func (s *scanner) open() bool {
	return s.depth > 0 || s.multiline != ""
}

// scan classifies every line. The input is expected to be valid TOML.
func scan(lines []string) ([]scannedLine, bool) {
	var s scanner
	out := make([]scannedLine, len(lines))
	for i, raw := range lines {
		line := strings.TrimRight(raw, "\r\n")
		if i == 0 {
			line = strings.TrimPrefix(line, bom)
		}
		if s.open() {
			out[i] = scannedLine{kind: lineContinuation}
			s.value(line)
			continue
		}

		trimmed := strings.TrimLeft(line, " \t")
		switch {
		case trimmed == "" || trimmed[0] == '#':
			out[i] = scannedLine{kind: lineTrivia}
		case strings.HasPrefix(trimmed, "[["):
			path, rest, ok := parseKey(trimmed[2:])
			if !ok || !strings.HasPrefix(rest, "]]") {
				return nil, false
			}
			out[i] = scannedLine{kind: lineArrayHeader, path: path}
		case trimmed[0] == '[':
			path, rest, ok := parseKey(trimmed[1:])
			if !ok || !strings.HasPrefix(rest, "]") {
				return nil, false
			}
			out[i] = scannedLine{kind: lineHeader, path: path}
		default:
			path, rest, ok := parseKey(trimmed)
			if !ok || !strings.HasPrefix(rest, "=") {
				return nil, false
			}
			out[i] = scannedLine{kind: lineEntry, path: path}
			s.value(rest[1:])
		}
	}
	return out, !s.open()
}

// value consumes the value part of a line and updates the open state.
func (s *scanner) value(line string) {
	for i := 0; i < len(line); {
		if s.multiline != "" {
			i = s.closeMultiline(line, i)
			continue
		}
		switch c := line[i]; c {
		case '#':
			return
		case '"', '\'':
			delim := strings.Repeat(string(c), 3)
			if strings.HasPrefix(line[i:], delim) {
				s.multiline = delim
				i += 3
				continue
			}
			i = skipString(line, i)
		case '[', '{':
			s.depth++
			i++
		case ']', '}':
			s.depth--
			i++
		default:
			i++
		}
	}
}

// closeMultiline advances past the content of an open multi-line string,
// closing it when its delimiter is found on this line.
func (s *scanner) closeMultiline(line string, i int) int {
	quote := s.multiline[0]
	for i < len(line) {
		c := line[i]
		if c == '\\' && quote == '"' {
			i += 2
			continue
		}
		if c != quote {
			i++
			continue
		}
		// Up to two quotes may precede the closing delimiter.
		run := 0
		for i+run < len(line) && line[i+run] == quote {
			run++
		}
		i += run
		if run >= 3 {
			s.multiline = ""
			return i
		}
	}
	return i
}

// skipString returns the index just past the single-line string starting at i.
func skipString(line string, i int) int {
	quote := line[i]
	for i++; i < len(line); i++ {
		switch line[i] {
		case '\\':
			if quote == '"' {
				i++
			}
		case quote:
			return i + 1
		}
	}
	return i
}

// parseKey reads a dotted key from the start of s and returns its unquoted
// segments and the remainder after any trailing whitespace.
func parseKey(s string) ([]string, string, bool) {
	var segments []string
	for {
		s = strings.TrimLeft(s, " \t")
		seg, rest, ok := parseSegment(s)
		if !ok {
			return nil, s, false
		}
		segments = append(segments, seg)
		s = strings.TrimLeft(rest, " \t")
		if !strings.HasPrefix(s, ".") {
			return segments, s, true
		}
		s = s[1:]
	}
}

func parseSegment(s string) (string, string, bool) {
	if s == "" {
		return "", s, false
	}
	switch s[0] {
	case '"':
		end := skipString(s, 0)
		if end > len(s) || s[end-1] != '"' || end < 2 {
			return "", s, false
		}
		unquoted, err := strconv.Unquote(s[:end])
		if err != nil {
			// TOML escapes Go does not know, such as \e, keep the raw text.
			unquoted = s[1 : end-1]
		}
		return unquoted, s[end:], true
	case '\'':
		end := strings.IndexByte(s[1:], '\'')
		if end < 0 {
			return "", s, false
		}
		return s[1 : end+1], s[end+2:], true
	}
	end := 0
	for end < len(s) && isBareKeyChar(s[end]) {
		end++
	}
	if end == 0 {
		return "", s, false
	}
	return s[:end], s[end:], true
}

func isBareKeyChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '-'
}
