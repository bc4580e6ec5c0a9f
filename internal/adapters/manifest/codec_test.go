package manifest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/poetrysort/internal/adapters/manifest"
	"go.trai.ch/poetrysort/internal/core/domain"
	"go.trai.ch/zerr"
)

const poetryManifest = `[tool.poetry]
name = "demo"
description = """
[tool.poetry.dependencies]
not a header
"""

[tool.poetry.dependencies]
requests = "^2.0"
# web framework
flask = [
    { version = "^1.0", python = "<3.12" },
    { version = "^2.0", python = ">=3.12" },
]
python = "^3.9"
"zope.interface" = '*'
numpy.version = "^1.26"
numpy.optional = true

[tool.poetry.dependencies.torch]
version = "^2.1"

[tool.poetry.dev-dependencies]
pytest = "^7.0"
black = "^22.0"  # formatter
`

func TestCodec_Decode(t *testing.T) {
	codec := manifest.NewCodec()

	m, err := codec.Decode([]byte(poetryManifest))
	require.NoError(t, err)

	assert.Equal(t, poetryManifest, string(m.Bytes()))
	assert.True(t, m.Defined(domain.PoetryPath))

	deps, ok := m.Table(domain.ProductionPath)
	require.True(t, ok)
	assert.Equal(t, []string{"requests", "flask", "python", "zope.interface", "numpy", "numpy"}, deps.Keys())
	assert.Equal(t, []string{
		"# web framework\n",
		"flask = [\n",
		"    { version = \"^1.0\", python = \"<3.12\" },\n",
		"    { version = \"^2.0\", python = \">=3.12\" },\n",
		"]\n",
	}, deps.Entries[1].Lines)
	assert.Equal(t, []string{"\n"}, deps.Trailer)
	assert.Equal(t, 7, deps.Header)
	assert.Equal(t, "\n", deps.EOL)
	assert.Equal(t, -1, deps.Marker)

	torch, ok := m.Table("tool.poetry.dependencies.torch")
	require.True(t, ok)
	assert.Equal(t, []string{"version"}, torch.Keys())

	dev, ok := m.Table(domain.DevelopmentPath)
	require.True(t, ok)
	assert.Equal(t, []string{"pytest", "black"}, dev.Keys())
	assert.Empty(t, dev.Trailer)

	// The header-looking line inside the multi-line string is not a section.
	assert.Len(t, m.Tables(), 4)
}

func TestCodec_DecodeWithoutPoetry(t *testing.T) {
	m, err := manifest.NewCodec().Decode([]byte("[project]\nname = \"demo\"\n"))
	require.NoError(t, err)

	assert.False(t, m.Defined(domain.PoetryPath))
	_, ok := m.Table(domain.ProductionPath)
	assert.False(t, ok)
}

func TestCodec_DecodeInlineTableIsNotASection(t *testing.T) {
	m, err := manifest.NewCodec().Decode([]byte("[tool.poetry]\ndependencies = { python = \"^3.9\" }\n"))
	require.NoError(t, err)

	assert.True(t, m.Defined(domain.ProductionPath))
	_, ok := m.Table(domain.ProductionPath)
	assert.False(t, ok)
}

func TestCodec_DecodeCRLF(t *testing.T) {
	input := "[tool.poetry.dev-dependencies]\r\npytest = \"^7.0\"\r\nblack = \"^22.0\"\r\n"

	m, err := manifest.NewCodec().Decode([]byte(input))
	require.NoError(t, err)

	dev, ok := m.Table(domain.DevelopmentPath)
	require.True(t, ok)
	assert.Equal(t, "\r\n", dev.EOL)
	assert.Equal(t, input, string(m.Bytes()))
}

func TestCodec_DecodeByteOrderMark(t *testing.T) {
	input := "\xef\xbb\xbf[tool.poetry.dependencies]\nrequests = \"^2.0\"\npython = \"^3.9\"\n"

	m, err := manifest.NewCodec().Decode([]byte(input))
	require.NoError(t, err)

	deps, ok := m.Table(domain.ProductionPath)
	require.True(t, ok)
	assert.Equal(t, []string{"requests", "python"}, deps.Keys())
	assert.Equal(t, input, string(m.Bytes()))
}

func TestCodec_DecodeArrayOfTablesEndsSection(t *testing.T) {
	input := `[tool.poetry.dependencies]
python = "^3.9"

[[tool.poetry.source]]
name = "internal"
url = "https://example.invalid/simple"
`
	m, err := manifest.NewCodec().Decode([]byte(input))
	require.NoError(t, err)

	deps, ok := m.Table(domain.ProductionPath)
	require.True(t, ok)
	assert.Equal(t, []string{"python"}, deps.Keys())
	assert.Equal(t, 3, deps.End)
	assert.Len(t, m.Tables(), 1)
}

func TestCodec_DecodeParseError(t *testing.T) {
	_, err := manifest.NewCodec().Decode([]byte("[tool.poetry.dependencies]\npython = \n"))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrManifestParseFailed.Error())

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Contains(t, zErr.Metadata(), "line")
}

func TestCodec_Verify(t *testing.T) {
	codec := manifest.NewCodec()
	original := []byte("[a]\nb = 1\nc = [1, 2]\n")

	require.NoError(t, codec.Verify(original, []byte("[a]\n# sorted\nc = [1, 2]\nb = 1\n")))

	err := codec.Verify(original, []byte("[a]\nb = 1\n"))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrRoundTripMismatch.Error())

	err = codec.Verify(original, []byte("[a\n"))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrRoundTripMismatch.Error())
}
