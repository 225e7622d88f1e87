package version

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/benchscore/internal/config"
	"github.com/scan-io-git/benchscore/internal/rules"
)

var (
	AppConfig     *config.Config
	CoreVersion   = "unknown"
	GolangVersion = "unknown"
	BuildTime     = "unknown"
)

// Versions holds version information of the binary.
type Versions struct {
	Version       string `json:"version"`
	GolangVersion string `json:"golang_version"`
	BuildTime     string `json:"build_time"`
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// NewVersionCmd creates a new cobra.Command for the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "version",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Print the version number and the rule catalog in use",
		RunE: func(cmd *cobra.Command, args []string) error {
			var overrides map[string]string
			if AppConfig != nil {
				overrides = AppConfig.Scoring.RuleOverrides
			}
			catalog, err := rules.New(overrides)
			if err != nil {
				return err
			}
			printVersionInfo(cmd.OutOrStdout(), Versions{
				Version:       CoreVersion,
				GolangVersion: GolangVersion,
				BuildTime:     BuildTime,
			}, catalog)
			return nil
		},
	}
}

// printVersionInfo prints the version information and the category to rule id mapping.
func printVersionInfo(w io.Writer, versions Versions, catalog *rules.Catalog) {
	fmt.Fprintf(w, "Core Version: v%s\n", versions.Version)
	fmt.Fprintf(w, "Go Version: %s\n", versions.GolangVersion)
	fmt.Fprintf(w, "Build Time: %s\n", versions.BuildTime)
	fmt.Fprintln(w, "Rule Catalog:")
	for _, e := range catalog.Entries() {
		fmt.Fprintf(w, "  %s: %s\n", e.Category, e.RuleID)
	}
}
