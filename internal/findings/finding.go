package findings

import "sort"

// NoMatchName is the test case bucket for findings whose location could not be mapped to a benchmark test.
const NoMatchName = "NO MATCH"

// Finding is a single scanner result normalised to the benchmark test it belongs to.
type Finding struct {
	TestCaseName string `json:"test_case_name"`
	RuleID       string `json:"rule_id"`
	// FlowSignature describes the source to sink path that produced the finding.
	FlowSignature string `json:"flow_signature"`
}

// testCaseFindings keeps the distinct findings of one test case in ingestion order.
type testCaseFindings struct {
	order []Finding
	bySig map[string]int
}

// Index groups findings by test case name and then by flow signature.
//
// A scanner may report several distinct tainted flows for one test case, each possibly
// under a different rule id. All distinct flows are kept; a flow that was already seen
// for the same test case is dropped, so the first reported finding for a signature wins.
// Entries are never overwritten or removed.
type Index struct {
	cases map[string]*testCaseFindings
}

// NewIndex creates an empty Index.
func NewIndex() *Index {
	return &Index{cases: make(map[string]*testCaseFindings)}
}

// Put adds f unless a finding with the same flow signature is already stored for its test case.
func (idx *Index) Put(f Finding) {
	tc, ok := idx.cases[f.TestCaseName]
	if !ok {
		tc = &testCaseFindings{bySig: make(map[string]int)}
		idx.cases[f.TestCaseName] = tc
	}
	if _, seen := tc.bySig[f.FlowSignature]; seen {
		return
	}
	tc.bySig[f.FlowSignature] = len(tc.order)
	tc.order = append(tc.order, f)
}

// Lookup returns the findings of a test case keyed by flow signature.
// The returned map is a copy.
func (idx *Index) Lookup(name string) (map[string]Finding, bool) {
	tc, ok := idx.cases[name]
	if !ok {
		return nil, false
	}
	out := make(map[string]Finding, len(tc.order))
	for _, f := range tc.order {
		out[f.FlowSignature] = f
	}
	return out, true
}

// Findings returns the findings of a test case in the order they were first reported.
func (idx *Index) Findings(name string) []Finding {
	tc, ok := idx.cases[name]
	if !ok {
		return nil
	}
	out := make([]Finding, len(tc.order))
	copy(out, tc.order)
	return out
}

// LookupByRule returns the first reported finding of a test case carrying ruleID.
func (idx *Index) LookupByRule(name, ruleID string) (Finding, bool) {
	tc, ok := idx.cases[name]
	if !ok {
		return Finding{}, false
	}
	for _, f := range tc.order {
		if f.RuleID == ruleID {
			return f, true
		}
	}
	return Finding{}, false
}

// RuleIDs returns the sorted distinct rule ids reported for a test case.
func (idx *Index) RuleIDs(name string) []string {
	tc, ok := idx.cases[name]
	if !ok {
		return nil
	}
	seen := make(map[string]struct{}, len(tc.order))
	var ids []string
	for _, f := range tc.order {
		if _, dup := seen[f.RuleID]; dup {
			continue
		}
		seen[f.RuleID] = struct{}{}
		ids = append(ids, f.RuleID)
	}
	sort.Strings(ids)
	return ids
}

// Names returns all test case names with at least one finding, sorted.
func (idx *Index) Names() []string {
	names := make([]string, 0, len(idx.cases))
	for name := range idx.cases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Size is the number of distinct findings across all test cases.
func (idx *Index) Size() int {
	size := 0
	for _, tc := range idx.cases {
		size += len(tc.order)
	}
	return size
}

// Len is the number of test cases with at least one finding.
func (idx *Index) Len() int {
	return len(idx.cases)
}
