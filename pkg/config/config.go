// Package config loads the settings of a compile run.
//
// Settings are layered: built-in defaults, then an optional YAML file, then
// SPATREM_* environment variables. Command-line flags are applied last by
// the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/coolbeans/spatrem/pkg/importer"
	"github.com/coolbeans/spatrem/pkg/logging"
	"github.com/coolbeans/spatrem/pkg/store"
	"github.com/coolbeans/spatrem/pkg/tabular"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "SPATREM_"

// ErrInvalidConfig is returned when a setting has an unknown value.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full set of run settings.
type Config struct {
	Output  OutputConfig   `yaml:"output"`
	Import  ImportConfig   `yaml:"import"`
	Metrics MetricsConfig  `yaml:"metrics"`
	Log     logging.Config `yaml:"log" envPrefix:"LOG_"`
}

// OutputConfig controls serialization.
type OutputConfig struct {
	// Format is turtle, ntriples, jsonld or rdfxml.
	Format string `yaml:"format" env:"FORMAT"`
	// Dir is the default output directory.
	Dir string `yaml:"dir" env:"OUTPUT_DIR"`
}

// ImportConfig holds the knobs of the graph assembler and the table reader.
type ImportConfig struct {
	// Anonymous is distinct (one person per "Anon." mention) or merge.
	Anonymous string `yaml:"anonymous" env:"ANONYMOUS"`
	// Untranslated is build or skip for rows without a named translator.
	Untranslated string `yaml:"untranslated" env:"UNTRANSLATED"`
	// IssueNumbering attaches volume and number literals to issues.
	IssueNumbering bool `yaml:"issue_numbering" env:"ISSUE_NUMBERING"`
	// Manifestations models each issue's publication event.
	Manifestations bool `yaml:"manifestations" env:"MANIFESTATIONS"`
	// RowErrors is skip or abort.
	RowErrors string `yaml:"row_errors" env:"ROW_ERRORS"`
	// Sheet selects the worksheet of spreadsheet input.
	Sheet string `yaml:"sheet" env:"SHEET"`
}

// MetricsConfig controls the Prometheus textfile written after a run.
type MetricsConfig struct {
	Textfile string `yaml:"textfile" env:"METRICS_TEXTFILE"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format: string(store.FormatTurtle),
		},
		Import: ImportConfig{
			Anonymous:      string(importer.AnonymousDistinct),
			Untranslated:   string(importer.UntranslatedBuild),
			IssueNumbering: true,
			RowErrors:      string(tabular.RowsSkip),
		},
		Log: logging.Config{
			Level:  "info",
			Format: logging.FormatText,
		},
	}
}

// Load reads path (when not empty) over the defaults, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overrides settings from SPATREM_* variables that are set.
func (c *Config) ApplyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// Validate rejects unknown enumeration values.
func (c *Config) Validate() error {
	if _, err := store.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("%w: output.format: %v", ErrInvalidConfig, err)
	}
	if err := oneOf("import.anonymous", c.Import.Anonymous,
		string(importer.AnonymousDistinct), string(importer.AnonymousMerge)); err != nil {
		return err
	}
	if err := oneOf("import.untranslated", c.Import.Untranslated,
		string(importer.UntranslatedBuild), string(importer.UntranslatedSkip)); err != nil {
		return err
	}
	if err := oneOf("import.row_errors", c.Import.RowErrors,
		string(tabular.RowsSkip), string(tabular.RowsAbort)); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}
	if err := oneOf("log.format", c.Log.Format, logging.FormatText, logging.FormatJSON); err != nil {
		return err
	}
	return nil
}

func oneOf(field, value string, allowed ...string) error {
	for _, candidate := range allowed {
		if value == candidate {
			return nil
		}
	}
	return fmt.Errorf("%w: %s must be one of %s, got %q",
		ErrInvalidConfig, field, strings.Join(allowed, ", "), value)
}

// Format returns the parsed output format.
func (c *Config) Format() store.Format {
	format, err := store.ParseFormat(c.Output.Format)
	if err != nil {
		return store.FormatTurtle
	}
	return format
}

// ImportOptions converts the import knobs for the assembler.
func (c *Config) ImportOptions() importer.Options {
	return importer.Options{
		Anonymous:      importer.AnonymousPolicy(c.Import.Anonymous),
		Untranslated:   importer.UntranslatedPolicy(c.Import.Untranslated),
		IssueNumbering: c.Import.IssueNumbering,
		Manifestations: c.Import.Manifestations,
	}
}

// ReadOptions converts the table-reading knobs.
func (c *Config) ReadOptions() tabular.Options {
	return tabular.Options{
		Sheet:  c.Import.Sheet,
		Policy: tabular.RowPolicy(c.Import.RowErrors),
	}
}
