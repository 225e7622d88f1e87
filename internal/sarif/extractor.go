package sarif

import (
	"regexp"

	"github.com/scan-io-git/benchscore/internal/findings"
)

var (
	// e.g. src/main/java/org/owasp/benchmark/testcode/BenchmarkTest01870.java
	benchmarkPathRegex = regexp.MustCompile(`^.*(BenchmarkTest\d{5})\.java$`)
	// e.g. "Untrusted data flows from BenchmarkTest00001.java:45 to BenchmarkTest00001.java:61"
	benchmarkFlowRegex = regexp.MustCompile(`(?s)^.*?\b(BenchmarkTest\d{5})\.java:\d+\b.*?[\w$./-]+\.java:\d+\b`)
)

// NameExtractor derives the benchmark test case name from scanner specific text.
type NameExtractor interface {
	// Extract returns the test case name, or findings.NoMatchName and false.
	Extract(text string) (string, bool)
}

// PatternExtractor extracts the first capture group of an anchored pattern.
type PatternExtractor struct {
	pattern *regexp.Regexp
}

// NewPatternExtractor builds an extractor from a pattern whose first group is the test name.
func NewPatternExtractor(pattern *regexp.Regexp) *PatternExtractor {
	return &PatternExtractor{pattern: pattern}
}

// PathExtractor matches artifact URIs ending in BenchmarkTestNNNNN.java.
func PathExtractor() *PatternExtractor {
	return NewPatternExtractor(benchmarkPathRegex)
}

// FlowMessageExtractor matches flow descriptions that reference a source and a sink as file:line.
// The first referenced benchmark file names the test case.
func FlowMessageExtractor() *PatternExtractor {
	return NewPatternExtractor(benchmarkFlowRegex)
}

// Extract implements NameExtractor.
func (p *PatternExtractor) Extract(text string) (string, bool) {
	m := p.pattern.FindStringSubmatch(text)
	if len(m) < 2 || m[1] == "" {
		return findings.NoMatchName, false
	}
	return m[1], true
}
