package score

import (
	"fmt"
	"strings"

	"github.com/scan-io-git/benchscore/internal/files"
	"github.com/scan-io-git/benchscore/internal/sarif"
)

// validateScoreArgs validates the arguments provided to the score command.
func validateScoreArgs(options *RunOptionsScore, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("expected a SARIF file and a benchmark CSV file, got %d argument(s)", len(args))
	}

	variant := strings.ToLower(strings.TrimSpace(options.Scanner))
	if !isKnownVariant(variant) {
		return fmt.Errorf("the 'scanner' flag must be one of %s: %q", strings.Join(sarif.Variants, ", "), options.Scanner)
	}
	options.Scanner = variant

	resultsPath, err := files.ResolveInputFile(args[0])
	if err != nil {
		return fmt.Errorf("invalid SARIF file: %w", err)
	}
	expectedPath, err := files.ResolveInputFile(args[1])
	if err != nil {
		return fmt.Errorf("invalid benchmark CSV file: %w", err)
	}

	options.ResultsPath = resultsPath
	options.ExpectedPath = expectedPath
	return nil
}

func isKnownVariant(variant string) bool {
	for _, v := range sarif.Variants {
		if v == variant {
			return true
		}
	}
	return false
}
