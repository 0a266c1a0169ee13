package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strata-lang/strata/internal/diag"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "strata.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
schema_catalogs:
  - catalogs/cloud.json
  - catalogs/local.json
min_severity: warning
workers: 4
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"catalogs/cloud.json", "catalogs/local.json"}, cfg.SchemaCatalogs)
	assert.Equal(t, diag.SeverityWarning, cfg.MinSeverity)
	assert.Equal(t, 4, cfg.Workers)
}

func TestLoadFillsDefaults(t *testing.T) {
	path := writeConfig(t, `schema_catalogs: [catalogs/cloud.json]`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, diag.SeverityNote, cfg.MinSeverity)
	assert.Equal(t, Default().Workers, cfg.Workers)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "workers: [not an int")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())

	cfg.MinSeverity = "loud"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Workers = 0
	assert.Error(t, cfg.Validate())
}
