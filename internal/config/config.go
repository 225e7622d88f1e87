package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

const (
	// DefaultConfigFile is looked up in the working directory when no path is given.
	DefaultConfigFile = "benchscore.yml"
	// ConfigEnv overrides the config path when the flag is not set.
	ConfigEnv = "BENCHSCORE_CONFIG"
)

// Config is the YAML configuration of benchscore.
type Config struct {
	Logger  Logger  `yaml:"logger"`
	Scoring Scoring `yaml:"scoring"`
}

// Logger configures the diagnostic logger.
type Logger struct {
	Level           string `yaml:"level"`
	DisableTime     *bool  `yaml:"disable_time"`
	JSONFormat      *bool  `yaml:"json_format"`
	IncludeLocation *bool  `yaml:"include_location"`
}

// Scoring holds defaults for the score command.
type Scoring struct {
	// Scanner is the default scanner variant: auto, contrast or umbrella.
	Scanner           string            `yaml:"scanner"`
	ExcludeSuppressed bool              `yaml:"exclude_suppressed"`
	// RuleOverrides replaces the scanner rule id of a rule category.
	RuleOverrides     map[string]string `yaml:"rule_overrides"`
}

// NewConfig reads the configuration at configPath. Keys that do not map to a
// Config field are rejected.
func NewConfig(configPath string) (*Config, error) {
	info, err := os.Stat(configPath)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("'%s' is a directory, not a file", configPath)
	}

	raw, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.UnmarshalStrict(raw, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig resolves the configuration path and loads it. An explicit path or
// BENCHSCORE_CONFIG must exist; a missing default file yields an empty configuration.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = os.Getenv(ConfigEnv)
	}
	if configPath == "" {
		if _, err := os.Stat(DefaultConfigFile); os.IsNotExist(err) {
			return &Config{}, nil
		}
		configPath = DefaultConfigFile
	}

	cfg, err := NewConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %q: %w", configPath, err)
	}
	return cfg, nil
}
