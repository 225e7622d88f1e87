package sarif

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/owenrumney/go-sarif/v2/sarif"
)

// Report wraps a parsed SARIF document.
type Report struct {
	*sarif.Report
	logger hclog.Logger
}

// ToolMetadata identifies the scanner that produced a run.
type ToolMetadata struct {
	Name    string
	Version *string
}

func readSarifReport(inputPath string) (*sarif.Report, error) {
	jsonFile, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sarif report %q: %w", inputPath, err)
	}
	defer jsonFile.Close()

	byteValue, err := io.ReadAll(jsonFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read sarif report %q: %w", inputPath, err)
	}

	var sarifReport sarif.Report
	if err := json.Unmarshal(byteValue, &sarifReport); err != nil {
		return nil, fmt.Errorf("failed to parse sarif report %q: %w", inputPath, err)
	}
	return &sarifReport, nil
}

// remove all results with Suppressions property
func removeSuppressedResults(report *sarif.Report) int {
	removed := 0
	for _, run := range report.Runs {
		var filteredResults []*sarif.Result

		for _, result := range run.Results {
			if len(result.Suppressions) == 0 {
				filteredResults = append(filteredResults, result)
			} else {
				removed++
			}
		}

		run.Results = filteredResults
	}
	return removed
}

// ReadReport loads the SARIF file at inputPath.
func ReadReport(inputPath string, logger hclog.Logger, noSuppressions bool) (*Report, error) {
	sarifReport, err := readSarifReport(inputPath)
	if err != nil {
		return nil, err
	}
	return NewReport(sarifReport, logger, noSuppressions), nil
}

// NewReport wraps an already parsed document, optionally dropping suppressed results.
func NewReport(report *sarif.Report, logger hclog.Logger, noSuppressions bool) *Report {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if noSuppressions {
		if removed := removeSuppressedResults(report); removed > 0 {
			logger.Debug("suppressed results removed", "count", removed)
		}
	}
	return &Report{Report: report, logger: logger}
}

// ExtractToolNameAndVersion returns the driver metadata of every run.
func (r Report) ExtractToolNameAndVersion() []ToolMetadata {
	logger := loggerOrNull(r.logger)
	var tools []ToolMetadata
	for _, run := range r.Runs {
		if run == nil || run.Tool.Driver == nil {
			continue
		}
		tool := ToolMetadata{
			Name:    run.Tool.Driver.Name,
			Version: run.Tool.Driver.SemanticVersion,
		}
		logger.Debug("sarif run tool", "name", tool.Name, "version", deref(tool.Version))
		tools = append(tools, tool)
	}
	return tools
}

// Results returns the results of all runs in document order.
func (r Report) Results() []*sarif.Result {
	var results []*sarif.Result
	for _, run := range r.Runs {
		if run == nil {
			continue
		}
		results = append(results, run.Results...)
	}
	return results
}
