package score

import (
	"github.com/spf13/pflag"

	"github.com/scan-io-git/benchscore/internal/config"
)

// hasFlags reports whether any flag was set on the command line.
func hasFlags(flags *pflag.FlagSet) bool {
	changed := false
	flags.Visit(func(*pflag.Flag) {
		changed = true
	})
	return changed
}

// applyConfigDefaults fills options that were not set on the command line from the configuration.
func applyConfigDefaults(options *RunOptionsScore, cfg *config.Config, scannerSet, suppressedSet bool) {
	if cfg == nil {
		return
	}
	if !scannerSet {
		options.Scanner = config.SetThen(cfg.Scoring.Scanner, options.Scanner)
	}
	if !suppressedSet {
		options.ExcludeSuppressed = options.ExcludeSuppressed || cfg.Scoring.ExcludeSuppressed
	}
}
