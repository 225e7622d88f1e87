package score

import (
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/scan-io-git/benchscore/internal/config"
	"github.com/scan-io-git/benchscore/internal/findings"
	"github.com/scan-io-git/benchscore/internal/groundtruth"
	"github.com/scan-io-git/benchscore/internal/logger"
	"github.com/scan-io-git/benchscore/internal/rules"
	"github.com/scan-io-git/benchscore/internal/sarif"
	"github.com/scan-io-git/benchscore/internal/scorer"

	errs "github.com/scan-io-git/benchscore/internal/errors"
)

// RunOptionsScore holds the arguments for the score command.
type RunOptionsScore struct {
	Scanner           string
	ExcludeSuppressed bool
	ResultsPath       string
	ExpectedPath      string
}

// Global variables for configuration and command arguments
var (
	AppConfig         *config.Config
	scoreOptions      RunOptionsScore
	exampleScoreUsage = `  # Scoring a Contrast Scan SARIF report against the OWASP Benchmark expected results
  benchscore score results.sarif expectedresults-1.2.csv

  # Forcing the flow message based name extraction of the umbrella scanner
  benchscore score --scanner umbrella umbrella.sarif expectedresults-1.2.csv

  # Ignoring results the scanner reported as suppressed
  benchscore score --exclude-suppressed results.sarif expectedresults-1.2.csv`
)

// ScoreCmd represents the score command.
var ScoreCmd = &cobra.Command{
	Use:                   "score [--scanner/-p auto|contrast|umbrella] [--exclude-suppressed] SARIF_FILE BENCHMARK_CSV",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleScoreUsage,
	Short:                 "Score a scanner SARIF report against the benchmark expected results",
	Long: fmt.Sprintf(`Score a scanner SARIF report against the benchmark expected results.

Every expected result is classified as a true/false positive/negative and the
true positive rate, true negative rate, Youden index and benchmark score are reported.

Supported scanner variants:
  %s`, strings.Join(sarif.Variants, "\n  ")),
	RunE: runScoreCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runScoreCommand executes the score command.
func runScoreCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !hasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	log := logger.NewLogger(AppConfig, "core-score")

	options := scoreOptions
	applyConfigDefaults(&options, AppConfig, cmd.Flags().Changed("scanner"), cmd.Flags().Changed("exclude-suppressed"))
	if err := validateScoreArgs(&options, args); err != nil {
		log.Error("invalid score arguments", "error", err)
		return errs.NewCommandError("invalid score arguments", err, errs.ExitError)
	}

	if err := Run(AppConfig, options, cmd.OutOrStdout(), log); err != nil {
		log.Error("score command failed", "error", err)
		return err
	}

	log.Debug("score command completed successfully")
	return nil
}

// Run scores the report at options.ResultsPath against options.ExpectedPath and writes the report to out.
// Nothing is written to out unless every step succeeds.
func Run(cfg *config.Config, options RunOptionsScore, out io.Writer, log hclog.Logger) error {
	if log == nil {
		log = hclog.NewNullLogger()
	}

	var overrides map[string]string
	if cfg != nil {
		overrides = cfg.Scoring.RuleOverrides
	}
	catalog, err := rules.New(overrides)
	if err != nil {
		return errs.NewCommandError("invalid rule catalog", err, errs.ExitError)
	}

	expected, err := groundtruth.LoadFile(options.ExpectedPath)
	if err != nil {
		return errs.NewCommandError("failed to load expected results", err, errs.ExitError)
	}
	for _, name := range expected.Duplicates() {
		log.Warn("duplicate expected result, last row wins", "test", name)
	}

	report, err := sarif.ReadReport(options.ResultsPath, log, options.ExcludeSuppressed)
	if err != nil {
		return errs.NewCommandError("failed to read scanner results", err, errs.ExitError)
	}
	ingester, err := sarif.NewIngester(options.Scanner, report, log)
	if err != nil {
		return errs.NewCommandError("failed to select scanner variant", err, errs.ExitError)
	}
	actual := findings.NewIndex()
	walked := ingester.Ingest(report, actual)

	result, err := scorer.New(catalog, log).Score(expected, actual)
	if err != nil {
		return errs.NewCommandError("failed to score results", err, errs.ExitError)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Parsing through %d %s SARIF result entries\n", walked, ingester.Name())
	fmt.Fprintf(&b, "Read %d actual unique results from %s\n", actual.Size(), ingester.Name())
	fmt.Fprintf(&b, "Read %d expected OWASP Benchmark Results\n", expected.Len())
	if err := scorer.WriteReport(&b, actual, result); err != nil {
		return errs.NewCommandError("failed to render report", err, errs.ExitError)
	}
	if _, err := io.WriteString(out, b.String()); err != nil {
		return errs.NewCommandError("failed to write report", err, errs.ExitError)
	}
	return nil
}

// Initialize flags for the score command.
func init() {
	ScoreCmd.Flags().StringVarP(&scoreOptions.Scanner, "scanner", "p", sarif.VariantAuto, "Scanner variant that produced the report: auto, contrast or umbrella.")
	ScoreCmd.Flags().BoolVar(&scoreOptions.ExcludeSuppressed, "exclude-suppressed", false, "Ignore results with SARIF suppressions.")
	ScoreCmd.Flags().BoolP("help", "h", false, "Show help for the score command.")
}
