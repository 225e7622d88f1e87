package config

import (
	"fmt"
	"strings"

	"github.com/scan-io-git/benchscore/internal/rules"
)

var (
	logLevels       = []string{"", "TRACE", "DEBUG", "INFO", "WARN", "ERROR"}
	scannerVariants = []string{"", "auto", "contrast", "umbrella"}
)

// ValidateConfig checks if the global configurations have valid values.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := ValidateLoggerConfig(&cfg.Logger); err != nil {
		return fmt.Errorf("YAML global config: logger directive is invalid: %w", err)
	}
	if err := ValidateScoringConfig(&cfg.Scoring); err != nil {
		return fmt.Errorf("YAML global config: scoring directive is invalid: %w", err)
	}
	return nil
}

// ValidateLoggerConfig checks that the log level is known.
func ValidateLoggerConfig(loggerConfig *Logger) error {
	if !contains(logLevels, strings.ToUpper(loggerConfig.Level)) {
		return fmt.Errorf("unknown log level %q", loggerConfig.Level)
	}
	return nil
}

// ValidateScoringConfig checks the scanner variant and that every rule override names a known category.
func ValidateScoringConfig(scoringConfig *Scoring) error {
	if !contains(scannerVariants, strings.ToLower(scoringConfig.Scanner)) {
		return fmt.Errorf("unknown scanner variant %q", scoringConfig.Scanner)
	}
	if _, err := rules.New(scoringConfig.RuleOverrides); err != nil {
		return err
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
