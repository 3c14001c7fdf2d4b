package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/cart-parser/internal/report"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, "./input", cfg.InputDir)
	assert.Equal(t, "./output", cfg.OutputDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, report.FormatJSON, cfg.Format())
	assert.Equal(t, "{original}_{timestamp}", cfg.OutputNameFormat)
	assert.Equal(t, 4, cfg.MaxConcurrency)
	assert.True(t, cfg.ContinueOnError)
	assert.True(t, cfg.ArchiveOnSuccess)
	assert.Empty(t, cfg.PostgresDSN)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
input_dir: ./carts
output_format: yaml
max_concurrency: 2
archive_on_success: false
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "./carts", cfg.InputDir)
	assert.Equal(t, report.FormatYAML, cfg.Format())
	assert.Equal(t, 2, cfg.MaxConcurrency)
	assert.False(t, cfg.ArchiveOnSuccess)
	assert.Equal(t, "./output", cfg.OutputDir)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "output_format: yaml\n")
	t.Setenv("CARTPARSER_OUTPUT_FORMAT", "xml")
	t.Setenv("CARTPARSER_MAX_CONCURRENCY", "8")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, report.FormatXML, cfg.Format())
	assert.Equal(t, 8, cfg.MaxConcurrency)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown format", "output_format: pdf\n"},
		{"bad log level", "log_level: loud\n"},
		{"zero concurrency", "max_concurrency: 0\n"},
		{"empty name format", "output_name_format: \" \"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))

			assert.ErrorContains(t, err, "invalid configuration")
		})
	}
}

func TestLoadMalformedFile(t *testing.T) {
	_, err := Load(writeConfig(t, "input_dir: [unclosed\n"))

	assert.ErrorContains(t, err, "failed to read config file")
}
