package report

import (
	"fmt"
	"io"

	"github.com/nao1215/smellscan/internal/config"
	"github.com/nao1215/smellscan/internal/model"
)

// Report collects examination results and renders them.
type Report interface {
	// AddResult appends one examined source. Results are rendered in the
	// order they were added unless the report is configured otherwise.
	AddResult(r model.Result)

	// Show renders every collected result to the report's output.
	Show() error
}

// baseReport provides the output and result list shared by all reports.
type baseReport struct {
	output  io.Writer
	results []model.Result
}

func newBaseReport(output io.Writer) baseReport {
	return baseReport{output: output}
}

// AddResult implements Report.
func (b *baseReport) AddResult(r model.Result) {
	b.results = append(b.results, r)
}

// warnings flattens the warnings of every collected result.
func (b *baseReport) warnings() []*model.SmellWarning {
	all := make([]*model.SmellWarning, 0)
	for _, r := range b.results {
		all = append(all, r.Warnings()...)
	}
	return all
}

// totalWarnings counts the warnings of every collected result.
func (b *baseReport) totalWarnings() int {
	total := 0
	for _, r := range b.results {
		total += len(r.Warnings())
	}
	return total
}

// Options selects the behaviour of the report returned by New.
// Fields that do not apply to the chosen format are ignored.
type Options struct {
	// Heading is config.HeadingQuiet or config.HeadingVerbose.
	Heading string

	// Color enables ANSI colors in the text report.
	Color bool

	// LineNumbers selects LineNumberWarningFormatter for the text report.
	LineNumbers bool

	// SingleLine selects SingleLineWarningFormatter for the text report.
	SingleLine bool

	// SortByIssueCount orders text report results by warning count.
	SortByIssueCount bool

	// Version is recorded as the tool version in SARIF output.
	Version string
}

// New creates the report for format writing to output.
func New(format config.Format, output io.Writer, opts Options) (Report, error) {
	switch format {
	case config.FormatText, "":
		return NewTextReport(output, textOptions(opts)...), nil
	case config.FormatJSON:
		return NewJSONReport(output, WithPrettyPrint()), nil
	case config.FormatYAML:
		return NewYAMLReport(output), nil
	case config.FormatMarkdown:
		return NewMarkdownReport(output), nil
	case config.FormatSARIF:
		return NewSARIFReport(output, WithToolVersion(opts.Version)), nil
	default:
		return nil, fmt.Errorf("%w: %s", config.ErrInvalidFormat, format)
	}
}

func textOptions(opts Options) []TextReportOption {
	options := []TextReportOption{
		WithColor(opts.Color),
		WithSortByIssueCount(opts.SortByIssueCount),
	}
	if opts.Heading == config.HeadingVerbose {
		options = append(options, WithHeadingFormatter(VerboseHeading{}))
	}
	switch {
	case opts.LineNumbers:
		options = append(options, WithWarningFormatter(LineNumberWarningFormatter{}))
	case opts.SingleLine:
		options = append(options, WithWarningFormatter(SingleLineWarningFormatter{}))
	}
	return options
}
