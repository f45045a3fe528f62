// Package config loads flowgen configuration from .flowgen/config.yaml,
// merging it over built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the flowgen configuration file
const ConfigFileName = "config.yaml"

// ConfigDirName is the name of the flowgen configuration directory
const ConfigDirName = ".flowgen"

// Config holds all flowgen configuration
type Config struct {
	Flow    FlowConfig    `yaml:"flow"`
	Output  OutputConfig  `yaml:"output"`
	History HistoryConfig `yaml:"history"`
}

// FlowConfig holds configuration for method selection during generation
type FlowConfig struct {
	EntryMethod     string   `yaml:"entry_method"`
	HandlerSuffixes []string `yaml:"handler_suffixes"`
}

// OutputConfig holds configuration for diagram output
type OutputConfig struct {
	Direction string `yaml:"direction"`
	Suffix    string `yaml:"suffix"`
}

// HistoryConfig holds configuration for the run history store.
// History is on by default; the zero value of Disabled keeps it that way
// when the field is absent from the config file.
type HistoryConfig struct {
	Disabled bool `yaml:"disabled"`
}

// ErrConfigNotFound is returned when no config file can be found
var ErrConfigNotFound = errors.New("config file not found")

// ErrInvalidConfig is returned when config validation fails
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads config from .flowgen/config.yaml, falling back to defaults.
// It searches for the config directory starting from workDir and walking up
// the directory tree. If no config is found, returns defaults.
func Load(workDir string) (*Config, error) {
	configDir, err := FindConfigDir(workDir)
	if err != nil {
		// No config dir found, return defaults
		return DefaultConfig(), nil
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	return LoadFromPath(configPath)
}

// LoadFromPath reads config from a specific path.
// Merges loaded config with defaults and validates the result.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	merged := Merge(loaded, DefaultConfig())

	if err := Validate(merged); err != nil {
		return nil, err
	}

	return merged, nil
}

// FindConfigDir locates the .flowgen directory by walking up from startDir.
// Returns the path to the .flowgen directory if found.
func FindConfigDir(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	currentDir := absDir
	for {
		configDir := filepath.Join(currentDir, ConfigDirName)
		info, err := os.Stat(configDir)
		if err == nil && info.IsDir() {
			return configDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", ErrConfigNotFound
		}
		currentDir = parentDir
	}
}

// EnsureConfigDir creates the .flowgen directory if it doesn't exist.
// Returns the path to the .flowgen directory.
func EnsureConfigDir(workDir string) (string, error) {
	absDir, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	configDir := filepath.Join(absDir, ConfigDirName)

	info, err := os.Stat(configDir)
	if err == nil {
		if info.IsDir() {
			return configDir, nil
		}
		return "", fmt.Errorf("%s exists but is not a directory", configDir)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	return configDir, nil
}

// Validate checks that configuration values are usable.
func Validate(c *Config) error {
	switch c.Output.Direction {
	case "TD", "TB", "LR", "RL", "BT":
	default:
		return fmt.Errorf("%w: direction must be one of TD, TB, LR, RL, BT, got %q",
			ErrInvalidConfig, c.Output.Direction)
	}

	if c.Flow.EntryMethod == "" {
		return fmt.Errorf("%w: entry_method must not be empty", ErrInvalidConfig)
	}

	for _, s := range c.Flow.HandlerSuffixes {
		if s == "" {
			return fmt.Errorf("%w: handler suffixes must not be empty", ErrInvalidConfig)
		}
	}

	return nil
}
