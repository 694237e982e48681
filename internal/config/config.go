// Package config provides unified configuration loading for reprorepo.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/juusorepo/ReproRepo/internal/panel"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up in the project root.
const FileName = "reprorepo.yaml"

// Config contains all reprorepo configuration settings.
type Config struct {
	// Simulation controls the synthetic panel generator.
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`

	// Paths locates datasets and derived outputs relative to the project root.
	Paths PathsConfig `json:"paths" yaml:"paths"`

	// Logging contains settings for operational logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// SimulationConfig configures the panel generator.
type SimulationConfig struct {
	// Seed initializes the random number generator. The same seed always
	// reproduces the same dataset byte for byte.
	Seed int64 `json:"seed" yaml:"seed"`

	// Subjects is the number of simulated infants.
	Subjects int `json:"subjects" yaml:"subjects"`

	// Waves is the number of measurement waves per subject.
	Waves int `json:"waves" yaml:"waves"`
}

// PathsConfig locates project files. All paths are relative to the project
// root unless absolute.
type PathsConfig struct {
	// Raw is the location of the generated raw dataset.
	Raw string `json:"raw" yaml:"raw"`

	// Processed is the location of the cleaned dataset.
	Processed string `json:"processed" yaml:"processed"`

	// Tables is the directory for exported analysis tables.
	Tables string `json:"tables" yaml:"tables"`
}

// LoggingConfig configures reprorepo's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default) or "debug".
	Level string `json:"level" yaml:"level"`
}

// Default returns a Config with the reference defaults.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Seed:     123,
			Subjects: 100,
			Waves:    3,
		},
		Paths: PathsConfig{
			Raw:       filepath.Join("data", "raw", "panel_raw.csv"),
			Processed: filepath.Join("data", "processed", "panel_processed.csv"),
			Tables:    filepath.Join("output", "tables"),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration for a project root.
// Order: defaults -> <root>/reprorepo.yaml -> environment variables.
// A missing config file is not an error; defaults apply.
func Load(projectRoot string) (*Config, error) {
	config := Default()

	configPath := filepath.Join(projectRoot, FileName)
	if _, statErr := os.Stat(configPath); statErr == nil {
		fileConfig, loadErr := LoadFromFile(configPath)
		if loadErr != nil {
			return nil, fmt.Errorf("loading config file: %w", loadErr)
		}
		config = fileConfig
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	sim := panel.Config{
		Subjects: c.Simulation.Subjects,
		Waves:    c.Simulation.Waves,
		Seed:     c.Simulation.Seed,
	}
	if err := sim.Validate(); err != nil {
		return err
	}

	if c.Paths.Raw == "" || c.Paths.Processed == "" || c.Paths.Tables == "" {
		return fmt.Errorf("paths.raw, paths.processed, and paths.tables must all be set")
	}

	validLevels := map[string]bool{"info": true, "debug": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, or empty for default)", c.Logging.Level)
	}

	return nil
}

// PanelConfig converts the simulation section to a generator config.
func (c *Config) PanelConfig() panel.Config {
	return panel.Config{
		Subjects: c.Simulation.Subjects,
		Waves:    c.Simulation.Waves,
		Seed:     c.Simulation.Seed,
	}
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("REPROREPO_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Simulation.Seed = n
		}
	}

	if v := os.Getenv("REPROREPO_SUBJECTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Simulation.Subjects = n
		}
	}

	if v := os.Getenv("REPROREPO_WAVES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Simulation.Waves = n
		}
	}

	if v := os.Getenv("REPROREPO_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}
