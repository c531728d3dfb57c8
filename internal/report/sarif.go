package report

import (
	"io"

	"github.com/nao1215/smellscan/internal/model"
	"github.com/owenrumney/go-sarif/v2/sarif"
)

// sarifInformationURI points code scanning services at the project.
const sarifInformationURI = "https://github.com/nao1215/smellscan"

// SARIFReport outputs a SARIF 2.1.0 log with one rule per smell type and
// one result per warning, for upload to code scanning services.
type SARIFReport struct {
	baseReport

	version string
}

// SARIFReportOption configures a SARIFReport.
type SARIFReportOption func(*SARIFReport)

// WithToolVersion records the smellscan version in the tool driver.
func WithToolVersion(version string) SARIFReportOption {
	return func(r *SARIFReport) {
		r.version = version
	}
}

// NewSARIFReport creates a SARIFReport that outputs to the given writer.
func NewSARIFReport(output io.Writer, opts ...SARIFReportOption) *SARIFReport {
	r := &SARIFReport{
		baseReport: newBaseReport(output),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Show writes the SARIF log, pretty printed.
func (r *SARIFReport) Show() error {
	log, err := sarif.New(sarif.Version210)
	if err != nil {
		return err
	}

	run := sarif.NewRunWithInformationURI("smellscan", sarifInformationURI)
	if r.version != "" {
		version := r.version
		run.Tool.Driver.Version = &version
	}

	rules := make(map[string]bool)
	for _, w := range r.warnings() {
		level := sarifLevel(w.Severity())
		if !rules[w.SmellType] {
			info := model.GetSmellInfo(w.SmellType)
			run.AddRule(w.SmellType).
				WithDescription(info.Summary).
				WithDefaultConfiguration(&sarif.ReportingConfiguration{
					Level: level,
				})
			rules[w.SmellType] = true
		}

		location := sarif.NewLocation().WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(w.Source)).
				WithRegion(sarif.NewRegion().WithStartLine(w.FirstLine())),
		)

		result := sarif.NewRuleResult(w.SmellType).
			WithMessage(sarif.NewTextMessage(SimpleWarningFormatter{}.Format(w))).
			WithLevel(level).
			WithLocations([]*sarif.Location{location})
		run.AddResult(result)
	}
	log.AddRun(run)

	return log.PrettyWrite(r.output)
}

func sarifLevel(s model.Severity) string {
	switch s {
	case model.SeverityHigh:
		return "error"
	case model.SeverityMedium:
		return "warning"
	default:
		return "note"
	}
}
