package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/poetrysort/internal/adapters/config"
	"go.trai.ch/poetrysort/internal/core/domain"
	"go.trai.ch/poetrysort/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), domain.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

func TestLoader_Load_Missing(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	cfg, err := loader.Load(filepath.Join(t.TempDir(), domain.ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)

	cfg, err = loader.Load("")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestLoader_Load(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	path := writeConfig(t, `
version: "1"
marker: "  # sorted below  "
tables:
  - path: tool.poetry.dependencies
    pin: python
  - path: tool.poetry.dev-dependencies
  - path: tool.poetry.group.*.dependencies
`)

	cfg, err := loader.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "# sorted below", cfg.Marker)
	assert.Equal(t, []domain.TableSpec{
		{Path: domain.ProductionPath, Pin: domain.PinnedKey},
		{Path: domain.DevelopmentPath},
		{Path: "tool.poetry.group.*.dependencies"},
	}, cfg.Tables)
}

func TestLoader_Load_PartialKeepsDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	cfg, err := loader.Load(writeConfig(t, "version: \"1\"\n"))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultMarker, cfg.Marker)
	assert.Equal(t, domain.DefaultTableSpecs(), cfg.Tables)
}

func TestLoader_Load_DuplicateTable(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)
	loader := config.NewLoader(mockLogger)

	cfg, err := loader.Load(writeConfig(t, `
tables:
  - path: tool.poetry.dependencies
    pin: python
  - path: tool.poetry.dependencies
`))
	require.NoError(t, err)
	assert.Equal(t, []domain.TableSpec{{Path: domain.ProductionPath, Pin: domain.PinnedKey}}, cfg.Tables)
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
		message string
	}{
		{
			name:    "invalid yaml",
			content: "tables: [\n",
			message: domain.ErrConfigParseFailed.Error(),
		},
		{
			name:    "empty table path",
			content: "tables:\n  - pin: python\n",
			want:    domain.ErrInvalidTableSpec,
		},
		{
			name:    "empty path segment",
			content: "tables:\n  - path: tool..dependencies\n",
			want:    domain.ErrInvalidTableSpec,
		},
		{
			name:    "unknown version",
			content: "version: \"2\"\n",
			want:    domain.ErrUnsupportedConfigVersion,
		},
		{
			name:    "marker is not a comment",
			content: "marker: sorted below\n",
			want:    domain.ErrInvalidMarker,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			loader := config.NewLoader(mocks.NewMockLogger(ctrl))

			_, err := loader.Load(writeConfig(t, tt.content))
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
			if tt.message != "" {
				assert.ErrorContains(t, err, tt.message)
			}
		})
	}
}

func TestLoader_Load_Unreadable(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	_, err := loader.Load(t.TempDir())
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrConfigReadFailed.Error())
}
