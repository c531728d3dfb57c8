package report

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/nao1215/smellscan/internal/model"
)

// TextReport renders results as human-readable text for the terminal.
//
// Each result gets a heading such as "file.go -- 2 warnings" followed by
// one indented line per warning. When more than one result was added a
// "N total warnings" footer closes the report.
//
// Design decision: colors are a per-report option rather than a global
// switch, so tests and concurrent reports never influence each other.
type TextReport struct {
	baseReport

	warningFormatter WarningFormatter
	reportFormatter  ReportFormatter
	headingFormatter HeadingFormatter

	colored          bool
	sortByIssueCount bool
}

// TextReportOption configures a TextReport.
type TextReportOption func(*TextReport)

// WithWarningFormatter sets how each warning is rendered.
func WithWarningFormatter(wf WarningFormatter) TextReportOption {
	return func(r *TextReport) {
		r.warningFormatter = wf
	}
}

// WithReportFormatter sets how the warning list of a result is rendered.
func WithReportFormatter(rf ReportFormatter) TextReportOption {
	return func(r *TextReport) {
		r.reportFormatter = rf
	}
}

// WithHeadingFormatter sets how result headings are rendered.
func WithHeadingFormatter(hf HeadingFormatter) TextReportOption {
	return func(r *TextReport) {
		r.headingFormatter = hf
	}
}

// WithColor enables or disables ANSI colors.
func WithColor(enabled bool) TextReportOption {
	return func(r *TextReport) {
		r.colored = enabled
	}
}

// WithSortByIssueCount orders results by descending warning count.
// Results with equal counts keep the order they were added in.
func WithSortByIssueCount(enabled bool) TextReportOption {
	return func(r *TextReport) {
		r.sortByIssueCount = enabled
	}
}

// NewTextReport creates a TextReport that writes to output.
// Defaults: SimpleWarningFormatter, ListFormatter, QuietHeading, no color.
func NewTextReport(output io.Writer, opts ...TextReportOption) *TextReport {
	r := &TextReport{
		baseReport:       newBaseReport(output),
		warningFormatter: SimpleWarningFormatter{},
		reportFormatter:  ListFormatter{},
		headingFormatter: QuietHeading{},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Show writes the report in a single Write call.
func (r *TextReport) Show() error {
	p := NewPalette(r.colored)
	var sb strings.Builder

	for _, result := range r.ordered() {
		r.writeResult(&sb, result, p)
	}
	if len(r.results) > 1 {
		r.writeFooter(&sb, p)
	}

	if sb.Len() == 0 {
		return nil
	}
	_, err := io.WriteString(r.output, sb.String())
	return err
}

// ordered returns the results in rendering order.
func (r *TextReport) ordered() []model.Result {
	if !r.sortByIssueCount {
		return r.results
	}
	sorted := slices.Clone(r.results)
	slices.SortStableFunc(sorted, func(a, b model.Result) int {
		return len(b.Warnings()) - len(a.Warnings())
	})
	return sorted
}

func (r *TextReport) writeResult(sb *strings.Builder, result model.Result, p *Palette) {
	header := r.headingFormatter.Header(result, p)
	warnings := result.Warnings()
	if header == "" && len(warnings) == 0 {
		return
	}

	sb.WriteString(header)
	if len(warnings) > 0 {
		sb.WriteString(":\n")
		sb.WriteString(r.reportFormatter.FormatList(warnings, r.warningFormatter))
	}
	sb.WriteString("\n")
}

// writeFooter writes the total, green when clean and red otherwise.
func (r *TextReport) writeFooter(sb *strings.Builder, p *Palette) {
	total := r.totalWarnings()
	footer := fmt.Sprintf("%d total warnings\n", total)
	if total == 0 {
		sb.WriteString(p.Green(footer))
		return
	}
	sb.WriteString(p.Red(footer))
}
