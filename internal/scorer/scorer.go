package scorer

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/benchscore/internal/findings"
	"github.com/scan-io-git/benchscore/internal/groundtruth"
	"github.com/scan-io-git/benchscore/internal/rules"
)

// Outcome is the confusion matrix bucket of a test case.
type Outcome int

const (
	TruePositive Outcome = iota
	FalseNegative
	TrueNegative
	FalsePositive
)

func (o Outcome) String() string {
	switch o {
	case TruePositive:
		return "true positive"
	case FalseNegative:
		return "false negative"
	case TrueNegative:
		return "true negative"
	case FalsePositive:
		return "false positive"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Verdict is the classification of one expected result.
type Verdict struct {
	Record         groundtruth.Record
	ExpectedRuleID string
	Outcome        Outcome
	// FoundRuleIDs are the distinct rule ids the scanner reported for the test case.
	FoundRuleIDs []string
	// OtherRuleHit marks a false negative where the scanner reported only unexpected rules.
	OtherRuleHit bool
}

// Pass reports whether the scanner got the test case right.
func (v Verdict) Pass() bool {
	return v.Outcome == TruePositive || v.Outcome == TrueNegative
}

// Ratio is a count over a total. The value is undefined when the total is zero.
type Ratio struct {
	Num int
	Den int
}

// Value returns Num/Den, or false when Den is zero.
func (r Ratio) Value() (float64, bool) {
	if r.Den == 0 {
		return 0, false
	}
	return float64(r.Num) / float64(r.Den), true
}

// Counts is a confusion matrix summary.
type Counts struct {
	TotalPositives    int
	DetectedPositives int
	TotalNegatives    int
	DetectedNegatives int
}

func (c *Counts) add(o Outcome) {
	switch o {
	case TruePositive:
		c.TotalPositives++
		c.DetectedPositives++
	case FalseNegative:
		c.TotalPositives++
	case TrueNegative:
		c.TotalNegatives++
		c.DetectedNegatives++
	case FalsePositive:
		c.TotalNegatives++
	}
}

// TruePositiveRate is detected positives over all vulnerable test cases.
func (c Counts) TruePositiveRate() Ratio {
	return Ratio{Num: c.DetectedPositives, Den: c.TotalPositives}
}

// TrueNegativeRate is detected negatives over all safe test cases.
func (c Counts) TrueNegativeRate() Ratio {
	return Ratio{Num: c.DetectedNegatives, Den: c.TotalNegatives}
}

// YoudenIndex is TPR + TNR - 1, undefined when either rate is.
func (c Counts) YoudenIndex() (float64, bool) {
	tpr, ok := c.TruePositiveRate().Value()
	if !ok {
		return 0, false
	}
	tnr, ok := c.TrueNegativeRate().Value()
	if !ok {
		return 0, false
	}
	return tpr + tnr - 1, true
}

// Score is the Youden index scaled to percent and truncated toward zero.
// It is computed on the counts so float rounding never costs a point.
func (c Counts) Score() (int, bool) {
	if c.TotalPositives == 0 || c.TotalNegatives == 0 {
		return 0, false
	}
	p, n := int64(c.TotalPositives), int64(c.TotalNegatives)
	num := int64(c.DetectedPositives)*n + int64(c.DetectedNegatives)*p - p*n
	return int(num * 100 / (p * n)), true
}

// CategoryCounts is the confusion matrix of one rule category.
type CategoryCounts struct {
	Entry rules.Entry
	Counts
}

// Result holds the verdict of every expected result and the aggregated counts.
type Result struct {
	Verdicts   []Verdict
	Counts     Counts
	Categories []CategoryCounts
}

// Scorer classifies expected results against scanner findings.
type Scorer struct {
	catalog *rules.Catalog
	logger  hclog.Logger
}

// New creates a Scorer. A nil catalog means the default one.
func New(catalog *rules.Catalog, logger hclog.Logger) *Scorer {
	if catalog == nil {
		catalog = rules.Default()
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Scorer{catalog: catalog, logger: logger}
}

// Score classifies every record in name order. Neither input is modified.
// An unresolvable category aborts the run.
func (s *Scorer) Score(expected *groundtruth.Records, actual *findings.Index) (*Result, error) {
	records := expected.All()
	result := &Result{Verdicts: make([]Verdict, 0, len(records))}

	perCategory := make(map[rules.Category]*Counts)
	for _, rec := range records {
		entry, err := s.catalog.Resolve(rec.Category)
		if err != nil {
			return nil, fmt.Errorf("test %s: %w", rec.Name, err)
		}
		if rec.Vulnerable && !entry.Supported() {
			s.logger.Trace("scanner has no rule for category", "test", rec.Name, "category", entry.Category)
		}

		v := s.classify(rec, entry, actual)
		result.Verdicts = append(result.Verdicts, v)
		result.Counts.add(v.Outcome)

		c, ok := perCategory[entry.Category]
		if !ok {
			c = &Counts{}
			perCategory[entry.Category] = c
		}
		c.add(v.Outcome)
	}

	for _, entry := range s.catalog.Entries() {
		if c, ok := perCategory[entry.Category]; ok {
			result.Categories = append(result.Categories, CategoryCounts{Entry: entry, Counts: *c})
		}
	}
	return result, nil
}

func (s *Scorer) classify(rec groundtruth.Record, entry rules.Entry, actual *findings.Index) Verdict {
	v := Verdict{
		Record:         rec,
		ExpectedRuleID: entry.RuleID,
		FoundRuleIDs:   actual.RuleIDs(rec.Name),
	}
	_, hit := actual.Lookup(rec.Name)

	if rec.Vulnerable {
		switch {
		case !hit:
			v.Outcome = FalseNegative
		case !matchesExpected(actual, rec.Name, entry.RuleID):
			v.Outcome = FalseNegative
			v.OtherRuleHit = true
		default:
			v.Outcome = TruePositive
		}
		return v
	}

	if !hit {
		v.Outcome = TrueNegative
		return v
	}
	v.Outcome = FalsePositive
	if len(v.FoundRuleIDs) > 1 {
		s.logger.Warn("rule ids hit on the wrong test for them", "test", rec.Name, "rules", v.FoundRuleIDs)
	}
	return v
}

func matchesExpected(actual *findings.Index, name, ruleID string) bool {
	_, ok := actual.LookupByRule(name, ruleID)
	return ok
}
