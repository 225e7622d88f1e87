package scorer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/benchscore/internal/findings"
	"github.com/scan-io-git/benchscore/internal/groundtruth"
)

func TestVerdictLine(t *testing.T) {
	tests := []struct {
		name    string
		verdict Verdict
		want    string
	}{
		{
			name: "true positive",
			verdict: Verdict{
				Record:         groundtruth.Record{Name: "BenchmarkTest00002", Category: "sqli", Vulnerable: true},
				ExpectedRuleID: "sql-injection",
				Outcome:        TruePositive,
			},
			want: "BenchmarkTest00002: PASS: Found a [sqli, sql-injection] result: True Positive",
		},
		{
			name: "false negative",
			verdict: Verdict{
				Record:         groundtruth.Record{Name: "BenchmarkTest00001", Category: "xss", Vulnerable: true},
				ExpectedRuleID: "reflected-xss",
				Outcome:        FalseNegative,
			},
			want: "BenchmarkTest00001: FAIL: expected a [xss, reflected-xss] finding, but didn't get one: False Negative",
		},
		{
			name: "false negative with other rules",
			verdict: Verdict{
				Record:         groundtruth.Record{Name: "BenchmarkTest00004", Category: "xss", Vulnerable: true},
				ExpectedRuleID: "reflected-xss",
				Outcome:        FalseNegative,
				OtherRuleHit:   true,
				FoundRuleIDs:   []string{"sql-injection"},
			},
			want: "BenchmarkTest00004: FAIL: expected a [xss, reflected-xss] finding, but didn't get one: False Negative. Other rules mistakenly hit however: [sql-injection]",
		},
		{
			name: "true negative",
			verdict: Verdict{
				Record:         groundtruth.Record{Name: "BenchmarkTest00005", Category: "cmdi"},
				ExpectedRuleID: "cmd-injection",
				Outcome:        TrueNegative,
			},
			want: "BenchmarkTest00005: PASS: correctly identified True Negative in [cmdi] test",
		},
		{
			name: "false positive",
			verdict: Verdict{
				Record:         groundtruth.Record{Name: "BenchmarkTest00003", Category: "xss"},
				ExpectedRuleID: "reflected-xss",
				Outcome:        FalsePositive,
				FoundRuleIDs:   []string{"reflected-xss", "sql-injection"},
			},
			want: "BenchmarkTest00003: FAIL: Found a result of types [reflected-xss, sql-injection] on test type reflected-xss where one was not expected: False Positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerdictLine(tt.verdict))
			assert.Equal(t, tt.verdict.Outcome == TruePositive || tt.verdict.Outcome == TrueNegative, tt.verdict.Pass())
		})
	}
}

func TestWriteReport(t *testing.T) {
	records := loadRecords(t,
		"BenchmarkTest00001,xss,true,79",
		"BenchmarkTest00002,xss,false,79",
	)
	idx := indexOf(
		findings.Finding{TestCaseName: "BenchmarkTest00001", RuleID: "reflected-xss", FlowSignature: "a"},
		findings.Finding{TestCaseName: "BenchmarkTest00001", RuleID: "reflected-xss", FlowSignature: "b"},
	)

	result, err := New(nil, nil).Score(records, idx)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, WriteReport(&out, idx, result))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 12)
	assert.Equal(t, []string{
		"BenchmarkTest00001:",
		"    BenchmarkTest00001,reflected-xss",
		"    BenchmarkTest00001,reflected-xss",
		"BenchmarkTest00001: PASS: Found a [xss, reflected-xss] result: True Positive",
		"BenchmarkTest00002: PASS: correctly identified True Negative in [xss] test",
		"Detection Efficacy:",
		"    True Negative Rate: 1.0000 (1/1)",
		"    True Positive Rate: 1.0000 (1/1)",
		"Youden Index: 1.0000",
		"OWASP Benchmark Score: 100",
	}, lines[:10])

	assert.True(t, strings.HasPrefix(lines[10], "Category"))
	assert.Contains(t, lines[11], "xss")
	assert.Contains(t, lines[11], "reflected-xss")
	assert.Contains(t, lines[11], "100")
}

func TestOutcomeLabel(t *testing.T) {
	assert.Equal(t, "True Positive", TruePositive.Label())
	assert.Equal(t, "False Negative", FalseNegative.Label())
	assert.Equal(t, "True Negative", TrueNegative.Label())
	assert.Equal(t, "False Positive", FalsePositive.Label())
	assert.Equal(t, "outcome(9)", Outcome(9).String())
}
