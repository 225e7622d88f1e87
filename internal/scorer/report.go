package scorer

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/scan-io-git/benchscore/internal/findings"
)

const undefined = "undefined"

// Label returns the outcome in title case, e.g. "False Negative".
func (o Outcome) Label() string {
	return cases.Title(language.English).String(o.String())
}

// WriteReport writes the findings listing, one line per verdict and the summary to w.
func WriteReport(w io.Writer, actual *findings.Index, result *Result) error {
	if err := WriteFindings(w, actual); err != nil {
		return err
	}
	if err := WriteVerdicts(w, result); err != nil {
		return err
	}
	if err := WriteSummary(w, result); err != nil {
		return err
	}
	return WriteCategories(w, result)
}

// WriteFindings lists the distinct findings grouped by test case name.
func WriteFindings(w io.Writer, actual *findings.Index) error {
	for _, name := range actual.Names() {
		if _, err := fmt.Fprintf(w, "%s:\n", name); err != nil {
			return err
		}
		for _, f := range actual.Findings(name) {
			if _, err := fmt.Fprintf(w, "    %s,%s\n", f.TestCaseName, f.RuleID); err != nil {
				return err
			}
		}
	}
	return nil
}

// VerdictLine renders the PASS/FAIL line of a verdict.
func VerdictLine(v Verdict) string {
	rec := v.Record
	switch v.Outcome {
	case TruePositive:
		return fmt.Sprintf("%s: PASS: Found a [%s, %s] result: %s", rec.Name, rec.Category, v.ExpectedRuleID, v.Outcome.Label())
	case FalseNegative:
		line := fmt.Sprintf("%s: FAIL: expected a [%s, %s] finding, but didn't get one: %s",
			rec.Name, rec.Category, v.ExpectedRuleID, v.Outcome.Label())
		if v.OtherRuleHit {
			line += fmt.Sprintf(". Other rules mistakenly hit however: [%s]", strings.Join(v.FoundRuleIDs, ", "))
		}
		return line
	case TrueNegative:
		return fmt.Sprintf("%s: PASS: correctly identified %s in [%s] test", rec.Name, v.Outcome.Label(), rec.Category)
	case FalsePositive:
		return fmt.Sprintf("%s: FAIL: Found a result of types [%s] on test type %s where one was not expected: %s",
			rec.Name, strings.Join(v.FoundRuleIDs, ", "), v.ExpectedRuleID, v.Outcome.Label())
	default:
		return fmt.Sprintf("%s: %s", rec.Name, v.Outcome)
	}
}

// WriteVerdicts writes one line per classified test case.
func WriteVerdicts(w io.Writer, result *Result) error {
	for _, v := range result.Verdicts {
		if _, err := fmt.Fprintln(w, VerdictLine(v)); err != nil {
			return err
		}
	}
	return nil
}

// WriteSummary writes the overall rates, Youden index and score.
func WriteSummary(w io.Writer, result *Result) error {
	c := result.Counts
	youden, score := formatYouden(c)
	_, err := fmt.Fprintf(w,
		"Detection Efficacy:\n    True Negative Rate: %s\n    True Positive Rate: %s\nYouden Index: %s\nOWASP Benchmark Score: %s\n",
		formatRatio(c.TrueNegativeRate()), formatRatio(c.TruePositiveRate()), youden, score)
	return err
}

// WriteCategories writes the confusion matrix of every category present in the expected results.
func WriteCategories(w io.Writer, result *Result) error {
	if len(result.Categories) == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Category\tRule\tTP\tFN\tTN\tFP\tTPR\tTNR\tScore")
	for _, cat := range result.Categories {
		c := cat.Counts
		_, score := formatYouden(c)
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%s\t%s\t%s\n",
			cat.Entry.Category, cat.Entry.RuleID,
			c.DetectedPositives, c.TotalPositives-c.DetectedPositives,
			c.DetectedNegatives, c.TotalNegatives-c.DetectedNegatives,
			formatRate(c.TruePositiveRate()), formatRate(c.TrueNegativeRate()), score)
	}
	return tw.Flush()
}

func formatRate(r Ratio) string {
	v, ok := r.Value()
	if !ok {
		return undefined
	}
	return fmt.Sprintf("%.4f", v)
}

func formatRatio(r Ratio) string {
	return fmt.Sprintf("%s (%d/%d)", formatRate(r), r.Num, r.Den)
}

func formatYouden(c Counts) (string, string) {
	youden, ok := c.YoudenIndex()
	if !ok {
		return undefined, undefined
	}
	score, _ := c.Score()
	return fmt.Sprintf("%.4f", youden), fmt.Sprintf("%d", score)
}
