// Package config provides unified configuration loading for beliefsim.
// It supports loading from YAML files and environment variables.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Recorder backend names accepted in configuration.
const (
	RecorderNone   = "none"
	RecorderMemory = "memory"
	RecorderJSONL  = "jsonl"
	RecorderSQLite = "sqlite"
)

// Config contains all beliefsim configuration settings.
type Config struct {
	// Logging contains settings for operational and decision logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`

	// Runner contains settings for the tick driver.
	Runner RunnerConfig `json:"runner" yaml:"runner"`

	// Recorder contains settings for run telemetry output.
	Recorder RecorderConfig `json:"recorder" yaml:"recorder"`

	// Seed is the base random seed for runs. Zero derives a seed from
	// the clock at run time.
	Seed int64 `json:"seed" yaml:"seed"`
}

// LoggingConfig configures beliefsim's logging behaviour.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", "trace",
	// "warn", or "error".
	Level string `json:"level" yaml:"level"`

	// DecisionLog is the path of the JSONL selection trace. Empty
	// disables the trace. Supports ${VAR} syntax for env vars.
	DecisionLog string `json:"decision_log,omitempty" yaml:"decision_log,omitempty"`
}

// RunnerConfig configures the tick driver.
type RunnerConfig struct {
	// Workers caps concurrent agents per phase. Zero runs one goroutine
	// per agent.
	Workers int `json:"workers" yaml:"workers"`
}

// RecorderConfig configures run telemetry.
type RecorderConfig struct {
	// Backend selects the sink: "none" (default), "memory", "jsonl", or
	// "sqlite".
	Backend string `json:"backend" yaml:"backend"`

	// Path is the output file for file-backed backends. Supports ${VAR}
	// syntax for env vars.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		Runner: RunnerConfig{
			Workers: 0,
		},
		Recorder: RecorderConfig{
			Backend: RecorderNone,
		},
		Seed: 0,
	}
}

// Load loads configuration from the default locations and environment variables.
// Order: defaults -> ~/.beliefsim/config.yaml -> environment variables
func Load() (*Config, error) {
	config := Default()

	// Try to load from default config file
	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".beliefsim", "config.yaml")
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileConfig, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			config = fileConfig
		}
	}

	// Apply environment variable overrides
	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file. Unknown
// keys are rejected so typos in experiment setups surface early.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Expand environment variables in paths
	config.Recorder.Path = expandEnvVars(config.Recorder.Path)
	config.Logging.DecisionLog = expandEnvVars(config.Logging.DecisionLog)

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	validLevels := map[string]bool{"info": true, "debug": true, "trace": true, "warn": true, "error": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, warn, error, or empty for default)", c.Logging.Level)
	}

	if c.Runner.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Runner.Workers)
	}

	switch c.Recorder.Backend {
	case "", RecorderNone, RecorderMemory:
	case RecorderJSONL, RecorderSQLite:
		if c.Recorder.Path == "" {
			return fmt.Errorf("recorder backend %q requires a path", c.Recorder.Backend)
		}
	default:
		return fmt.Errorf("invalid recorder backend: %s (valid: none, memory, jsonl, sqlite)", c.Recorder.Backend)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("BELIEFSIM_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}

	if v := os.Getenv("BELIEFSIM_DECISION_LOG"); v != "" {
		config.Logging.DecisionLog = v
	}

	if v := os.Getenv("BELIEFSIM_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Runner.Workers = n
		}
	}

	if v := os.Getenv("BELIEFSIM_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Seed = n
		}
	}

	if v := os.Getenv("BELIEFSIM_RECORDER"); v != "" {
		config.Recorder.Backend = v
	}

	if v := os.Getenv("BELIEFSIM_RECORDER_PATH"); v != "" {
		config.Recorder.Path = v
	}
}

// expandEnvVars expands ${VAR} patterns in a string with environment variable values.
func expandEnvVars(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return os.Expand(s, os.Getenv)
}
