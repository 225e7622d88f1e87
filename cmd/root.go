package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/benchscore/cmd/score"
	"github.com/scan-io-git/benchscore/cmd/version"
	"github.com/scan-io-git/benchscore/internal/config"

	errs "github.com/scan-io-git/benchscore/internal/errors"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "benchscore [command]",
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		Short:                 "Benchscore scores static analysis results against a labeled benchmark.",
		Long: `Benchscore matches the SARIF findings of a static analysis scanner to the test cases
	of a labeled benchmark suite, such as the OWASP Benchmark, and reports detection efficacy.
	`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+config.DefaultConfigFile+" when present)")
	rootCmd.AddCommand(score.ScoreCmd)
	rootCmd.AddCommand(version.NewVersionCmd())
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		return errs.ExitCode(err)
	}
	return errs.ExitOK
}

func initConfig() error {
	var err error

	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		return errs.NewCommandError("initializing config", err, errs.ExitError)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		return errs.NewCommandError("validating config", err, errs.ExitError)
	}

	score.Init(AppConfig)
	version.Init(AppConfig)
	return nil
}
