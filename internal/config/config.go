// =============================================================================
// Tabular File Splitter - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing the application
// configuration. The configuration is a single YAML file whose recognized
// options mirror the splitter's external interface:
//
//   input_directory  : directory scanned (non-recursively) for input files
//   output_directory : directory receiving {base}_part_{n}.csv/.xlsx files
//   max_rows         : maximum number of rows per part (positive integer)
//   csv_output       : emit a CSV file for every part
//   excel_output     : emit an XLSX file for every part
//   log_directory    : directory receiving the per-run log file
//   max_workers      : worker pool size (0 = host parallelism)
//
// ARCHITECTURE:
//   The configuration system is designed to be:
//   - Explicit: loaded once and passed by value, never read ambiently
//   - Defaulted: unset options receive sensible defaults on load
//   - Validated: directories are created and limits checked on load
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
// This is loaded from the main config.yaml file.
type Config struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is the directory where input CSV/XLSX files are placed.
	// The application scans this directory (non-recursively) for files
	// to process.
	// Default: "./input"
	InputDir string `yaml:"input_directory"`

	// OutputDir is the directory where generated part files are placed.
	// Default: "./output"
	OutputDir string `yaml:"output_directory"`

	// LogDir is the directory where the per-run log file is created.
	// Each invocation produces one append-only log file named after the
	// process start timestamp.
	// Default: "./logs"
	LogDir string `yaml:"log_directory"`

	// =========================================================================
	// SPLIT SETTINGS
	// =========================================================================

	// MaxRows is the maximum number of data rows per output part.
	// Every part except possibly the last contains exactly this many rows.
	// Must be a positive integer.
	// Default: 1000
	MaxRows int `yaml:"max_rows"`

	// CSVOutput emits a CSV file for every part when true.
	// Default: true
	CSVOutput bool `yaml:"csv_output"`

	// ExcelOutput emits an XLSX file for every part when true.
	// If both CSVOutput and ExcelOutput are false, files are still read
	// and partitioned but no output is written. This is not an error.
	// Default: false
	ExcelOutput bool `yaml:"excel_output"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxWorkers is the maximum number of files to process concurrently.
	// A value of 0 selects the host's parallelism (runtime.GOMAXPROCS).
	// Default: 0
	MaxWorkers int `yaml:"max_workers"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Load reads the configuration from a YAML file, applies default values for
// unset options, and validates the result.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file cannot be read, parsed, or validated.
func Load(configPath string) (*Config, error) {
	// Read the configuration file.
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse the YAML.
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply default values.
	applyDefaults(&cfg)

	// Validate the configuration.
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns a configuration populated entirely from defaults.
// Used when no configuration file is present and everything is supplied
// via flags.
func Default() *Config {
	cfg := &Config{CSVOutput: true}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.InputDir == "" {
		cfg.InputDir = "./input"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.LogDir == "" {
		cfg.LogDir = "./logs"
	}
	if cfg.MaxRows == 0 {
		cfg.MaxRows = 1000
	}
}

// Validate checks limits and ensures the configured directories exist,
// creating any that are missing. Exported so flag overrides applied after
// Load can be re-checked.
func Validate(cfg *Config) error {
	if cfg.MaxRows <= 0 {
		return fmt.Errorf("max_rows must be a positive integer, got %d", cfg.MaxRows)
	}
	if cfg.MaxWorkers < 0 {
		return fmt.Errorf("max_workers must not be negative, got %d", cfg.MaxWorkers)
	}

	// Create missing directories.
	dirs := []string{
		cfg.InputDir,
		cfg.OutputDir,
		cfg.LogDir,
	}

	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
	}

	return nil
}
