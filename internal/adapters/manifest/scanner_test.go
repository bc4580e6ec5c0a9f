package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		in       string
		segments []string
		rest     string
		ok       bool
	}{
		{in: `python = "^3.9"`, segments: []string{"python"}, rest: `= "^3.9"`, ok: true},
		{in: `numpy.version= "1"`, segments: []string{"numpy", "version"}, rest: `= "1"`, ok: true},
		{in: `"zope.interface" = "*"`, segments: []string{"zope.interface"}, rest: `= "*"`, ok: true},
		{in: `'raw\key' = 1`, segments: []string{`raw\key`}, rest: `= 1`, ok: true},
		{in: ` tool . poetry . dependencies ]`, segments: []string{"tool", "poetry", "dependencies"}, rest: `]`, ok: true},
		{in: `= 1`, ok: false},
		{in: `"unterminated = 1`, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			segments, rest, ok := parseKey(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.segments, segments)
				assert.Equal(t, tt.rest, rest)
			}
		})
	}
}

func TestScan(t *testing.T) {
	lines := []string{
		"# leading\n",
		"[tool.poetry.dependencies]\n",
		"a = '''\n",
		"[not.a.header]\n",
		"'''\n",
		"b = \"\"\"x\\\"\"\"\" # one line, escaped quote\n",
		"c = [ # open\n",
		"  \"]\", '[',\n",
		"]\n",
		"\n",
		"[[tool.poetry.source]]\n",
		"d = \"#\" # comment with ]\n",
	}

	scanned, ok := scan(lines)
	require.True(t, ok)

	kinds := make([]lineKind, len(scanned))
	for i, sl := range scanned {
		kinds[i] = sl.kind
	}
	assert.Equal(t, []lineKind{
		lineTrivia,
		lineHeader,
		lineEntry,
		lineContinuation,
		lineContinuation,
		lineEntry,
		lineEntry,
		lineContinuation,
		lineContinuation,
		lineTrivia,
		lineArrayHeader,
		lineEntry,
	}, kinds)
	assert.Equal(t, []string{"tool", "poetry", "dependencies"}, scanned[1].path)
	assert.Equal(t, []string{"tool", "poetry", "source"}, scanned[10].path)
}

func TestScan_UnclosedValue(t *testing.T) {
	_, ok := scan([]string{"a = [\n", "  1,\n"})
	assert.False(t, ok)
}

func TestScan_ByteOrderMark(t *testing.T) {
	scanned, ok := scan([]string{"\xef\xbb\xbf[tool.poetry]\n", "name = \"demo\"\n"})
	require.True(t, ok)
	assert.Equal(t, lineHeader, scanned[0].kind)
	assert.Equal(t, []string{"tool", "poetry"}, scanned[0].path)

	// Only the first line may carry the mark.
	_, ok = scan([]string{"[tool.poetry]\n", "\xef\xbb\xbfname = 1\n"})
	assert.False(t, ok)
}
