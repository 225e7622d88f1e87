package sarif

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/scan-io-git/benchscore/internal/findings"
)

// Scanner variants.
const (
	VariantAuto     = "auto"
	VariantContrast = "contrast"
	VariantUmbrella = "umbrella"
)

// Variants lists the accepted values for the scanner variant.
var Variants = []string{VariantAuto, VariantContrast, VariantUmbrella}

// Ingester turns the results of a report into indexed findings.
type Ingester interface {
	Name() string
	// Ingest adds every non-nil result of report to index and returns how many it added.
	Ingest(report *Report, index *findings.Index) int
}

// fieldFunc picks a text field out of a SARIF result.
type fieldFunc func(*sarif.Result) string

// resultIngester is an Ingester parameterised by where the test name and the flow signature live.
type resultIngester struct {
	name      string
	extractor NameExtractor
	nameText  fieldFunc
	signature fieldFunc
	logger    hclog.Logger
}

// NewContrastIngester reads the test name from the primary location URI and
// uses the region snippet as the flow signature.
func NewContrastIngester(logger hclog.Logger) Ingester {
	return &resultIngester{
		name:      VariantContrast,
		extractor: PathExtractor(),
		nameText:  primaryURI,
		signature: snippetOrMessage,
		logger:    loggerOrNull(logger),
	}
}

// NewUmbrellaIngester reads the test name from the flow description message,
// which also serves as the flow signature.
func NewUmbrellaIngester(logger hclog.Logger) Ingester {
	return &resultIngester{
		name:      VariantUmbrella,
		extractor: FlowMessageExtractor(),
		nameText:  messageText,
		signature: messageText,
		logger:    loggerOrNull(logger),
	}
}

// NewIngester returns the ingester for variant. VariantAuto inspects the report's tool driver.
func NewIngester(variant string, report *Report, logger hclog.Logger) (Ingester, error) {
	switch strings.ToLower(strings.TrimSpace(variant)) {
	case VariantContrast:
		return NewContrastIngester(logger), nil
	case VariantUmbrella:
		return NewUmbrellaIngester(logger), nil
	case VariantAuto, "":
		detected := DetectVariant(report)
		loggerOrNull(logger).Debug("scanner variant detected", "variant", detected)
		return NewIngester(detected, report, logger)
	default:
		return nil, fmt.Errorf("unsupported scanner variant %q, expected one of %s", variant, strings.Join(Variants, ", "))
	}
}

// DetectVariant guesses the producing scanner from the run tool names.
func DetectVariant(report *Report) string {
	if report == nil {
		return VariantContrast
	}
	for _, tool := range report.ExtractToolNameAndVersion() {
		if strings.Contains(strings.ToLower(tool.Name), VariantUmbrella) {
			return VariantUmbrella
		}
	}
	return VariantContrast
}

func (ri *resultIngester) Name() string {
	return ri.name
}

func (ri *resultIngester) Ingest(report *Report, index *findings.Index) int {
	walked := 0
	for _, result := range report.Results() {
		if result == nil {
			continue
		}
		walked++
		text := ri.nameText(result)
		name, ok := ri.extractor.Extract(text)
		if !ok {
			ri.logger.Warn("NO MATCH for test case name", "text", text)
		}
		index.Put(findings.Finding{
			TestCaseName:  name,
			RuleID:        deref(result.RuleID),
			FlowSignature: ri.signature(result),
		})
	}
	ri.logger.Info("parsed sarif result entries", "count", walked, "variant", ri.name)
	return walked
}

func primaryLocation(r *sarif.Result) *sarif.PhysicalLocation {
	if len(r.Locations) == 0 || r.Locations[0] == nil {
		return nil
	}
	return r.Locations[0].PhysicalLocation
}

func primaryURI(r *sarif.Result) string {
	loc := primaryLocation(r)
	if loc == nil || loc.ArtifactLocation == nil {
		return ""
	}
	return deref(loc.ArtifactLocation.URI)
}

func messageText(r *sarif.Result) string {
	return deref(r.Message.Text)
}

func snippetOrMessage(r *sarif.Result) string {
	loc := primaryLocation(r)
	if loc != nil && loc.Region != nil && loc.Region.Snippet != nil && loc.Region.Snippet.Text != nil {
		return *loc.Region.Snippet.Text
	}
	return messageText(r)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func loggerOrNull(logger hclog.Logger) hclog.Logger {
	if logger == nil {
		return hclog.NewNullLogger()
	}
	return logger
}
