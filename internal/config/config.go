// Package config loads the checker's runtime configuration from a YAML
// file: which schema catalogs to preload and how the check run behaves.
package config

import (
	"os"
	"runtime"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/strata-lang/strata/internal/diag"
)

// Config is the full runtime configuration of a check run.
type Config struct {
	// SchemaCatalogs are paths to catalog files loaded in order; later
	// catalogs override earlier entries for the same type reference.
	SchemaCatalogs []string `yaml:"schema_catalogs"`

	// MinSeverity filters the diagnostics printed to the report; anything
	// below it is still counted but not shown.
	MinSeverity diag.Severity `yaml:"min_severity"`

	// Workers bounds the number of documents checked concurrently.
	Workers int `yaml:"workers"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		MinSeverity: diag.SeverityNote,
		Workers:     runtime.NumCPU(),
	}
}

// Load reads a YAML configuration file, filling unset fields from Default.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading config %s", path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parsing config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// Validate rejects configurations the runner cannot honor.
func (c Config) Validate() error {
	switch c.MinSeverity {
	case diag.SeverityError, diag.SeverityWarning, diag.SeverityNote:
	default:
		return errors.Errorf("unknown severity %q", c.MinSeverity)
	}
	if c.Workers < 1 {
		return errors.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}
