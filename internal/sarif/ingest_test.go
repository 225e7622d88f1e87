package sarif

import (
	"bytes"
	"testing"

	"github.com/hashicorp/go-hclog"
	gosarif "github.com/owenrumney/go-sarif/v2/sarif"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/benchscore/internal/findings"
)

func strPtr(s string) *string { return &s }

func contrastResult(ruleID, uri, snippet string) *gosarif.Result {
	region := &gosarif.Region{}
	if snippet != "" {
		region.Snippet = &gosarif.ArtifactContent{Text: strPtr(snippet)}
	}
	return &gosarif.Result{
		RuleID:  strPtr(ruleID),
		Message: gosarif.Message{Text: strPtr(ruleID + " message")},
		Locations: []*gosarif.Location{
			{
				PhysicalLocation: &gosarif.PhysicalLocation{
					ArtifactLocation: &gosarif.ArtifactLocation{URI: strPtr(uri)},
					Region:           region,
				},
			},
		},
	}
}

func umbrellaResult(ruleID, message string) *gosarif.Result {
	return &gosarif.Result{
		RuleID:  strPtr(ruleID),
		Message: gosarif.Message{Text: strPtr(message)},
	}
}

func reportWith(toolName string, results ...*gosarif.Result) *Report {
	return NewReport(&gosarif.Report{
		Version: string(gosarif.Version210),
		Runs: []*gosarif.Run{
			{
				Tool:    gosarif.Tool{Driver: &gosarif.ToolComponent{Name: toolName}},
				Results: results,
			},
		},
	}, nil, false)
}

func testLogger(buf *bytes.Buffer) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:        "test",
		Output:      buf,
		DisableTime: true,
		Level:       hclog.Trace,
	})
}

func TestContrastIngester(t *testing.T) {
	report := reportWith("Contrast Scan",
		contrastResult("sql-injection", "testcode/BenchmarkTest00002.java", "flow-a"),
		contrastResult("sql-injection", "testcode/BenchmarkTest00002.java", "flow-a"),
		contrastResult("reflected-xss", "testcode/BenchmarkTest00002.java", "flow-b"),
		contrastResult("cmd-injection", "testcode/BenchmarkTest00005.java", ""),
		contrastResult("path-traversal", "helpers/Utils.java", "flow-c"),
	)

	var logs bytes.Buffer
	index := findings.NewIndex()
	walked := NewContrastIngester(testLogger(&logs)).Ingest(report, index)

	assert.Equal(t, 5, walked)
	assert.Equal(t, 4, index.Size())
	assert.Equal(t, []string{"BenchmarkTest00002", "BenchmarkTest00005", findings.NoMatchName}, index.Names())

	f, ok := index.LookupByRule("BenchmarkTest00005", "cmd-injection")
	require.True(t, ok)
	assert.Equal(t, "cmd-injection message", f.FlowSignature, "message text is used when the snippet is missing")

	noMatch := index.Findings(findings.NoMatchName)
	require.Len(t, noMatch, 1)
	assert.Equal(t, "path-traversal", noMatch[0].RuleID)
	assert.Contains(t, logs.String(), "NO MATCH for test case name")
	assert.Contains(t, logs.String(), "helpers/Utils.java")
}

func TestUmbrellaIngester(t *testing.T) {
	report := reportWith("Umbrella",
		umbrellaResult("sql-injection", "Data flows from BenchmarkTest00002.java:40 to BenchmarkTest00002.java:55"),
		umbrellaResult("sql-injection", "Data flows from BenchmarkTest00002.java:40 to BenchmarkTest00002.java:55"),
		umbrellaResult("reflected-xss", "Data flows from BenchmarkTest00002.java:40 to BenchmarkTest00002.java:70"),
		umbrellaResult("reflected-xss", "Some unrelated message"),
	)

	index := findings.NewIndex()
	walked := NewUmbrellaIngester(nil).Ingest(report, index)

	assert.Equal(t, 4, walked)
	assert.Equal(t, 3, index.Size())
	assert.Equal(t, []string{"reflected-xss", "sql-injection"}, index.RuleIDs("BenchmarkTest00002"))
	assert.Len(t, index.Findings(findings.NoMatchName), 1)
}

func TestIngesterToleratesMissingFields(t *testing.T) {
	report := reportWith("Contrast Scan", &gosarif.Result{}, nil)

	index := findings.NewIndex()
	walked := NewContrastIngester(nil).Ingest(report, index)

	assert.Equal(t, 1, walked, "nil results are not counted")
	assert.Equal(t, 1, index.Size())
	got := index.Findings(findings.NoMatchName)
	require.Len(t, got, 1)
	assert.Equal(t, "", got[0].RuleID)
}

func TestNewIngester(t *testing.T) {
	contrast := reportWith("Contrast Scan")
	umbrella := reportWith("Umbrella Static Analyzer")

	tests := []struct {
		name     string
		variant  string
		report   *Report
		wantName string
		wantErr  string
	}{
		{name: "explicit contrast", variant: "contrast", report: umbrella, wantName: VariantContrast},
		{name: "explicit umbrella", variant: "Umbrella", report: contrast, wantName: VariantUmbrella},
		{name: "auto contrast", variant: "auto", report: contrast, wantName: VariantContrast},
		{name: "auto umbrella", variant: "auto", report: umbrella, wantName: VariantUmbrella},
		{name: "empty means auto", variant: "", report: umbrella, wantName: VariantUmbrella},
		{name: "unknown", variant: "semgrep", report: contrast, wantErr: `unsupported scanner variant "semgrep", expected one of auto, contrast, umbrella`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ing, err := NewIngester(tt.variant, tt.report, nil)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, ing.Name())
		})
	}
}

func TestDetectVariantDefaultsToContrast(t *testing.T) {
	assert.Equal(t, VariantContrast, DetectVariant(nil))
	assert.Equal(t, VariantContrast, DetectVariant(NewReport(&gosarif.Report{}, nil, false)))
}
