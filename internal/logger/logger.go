package logger

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/scan-io-git/benchscore/internal/config"
)

// LogLevelEnv takes priority over the configured log level.
const LogLevelEnv = "BENCHSCORE_LOG_LEVEL"

// NewLogger creates a new hclog.Logger instance based on the YAML configuration and the provided name.
// Diagnostics go to stderr so stdout carries only the report.
func NewLogger(cfg *config.Config, name string) hclog.Logger {
	return newLogger(cfg, name, os.Stderr)
}

func newLogger(cfg *config.Config, name string, output io.Writer) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:            name,
		DisableTime:     config.GetBoolValue(cfg, "Logger.DisableTime", true),
		JSONFormat:      config.GetBoolValue(cfg, "Logger.JSONFormat", false),
		IncludeLocation: config.GetBoolValue(cfg, "Logger.IncludeLocation", false),
		Output:          output,
		Level:           determineLogLevel(cfg),
	})
}

// determineLogLevel prefers BENCHSCORE_LOG_LEVEL over the configured level; INFO otherwise.
func determineLogLevel(cfg *config.Config) hclog.Level {
	level := os.Getenv(LogLevelEnv)
	if level == "" && cfg != nil {
		level = cfg.Logger.Level
	}
	if level == "" {
		return hclog.Info
	}
	if parsed := hclog.LevelFromString(level); parsed != hclog.NoLevel {
		return parsed
	}
	hclog.New(&hclog.LoggerOptions{
		Level:       hclog.Warn,
		DisableTime: true,
		Output:      os.Stderr,
	}).Warn("unrecognized log level, defaulting to INFO", "level", level)
	return hclog.Info
}
