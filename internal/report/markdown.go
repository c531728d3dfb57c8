package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/smellscan/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MarkdownReport outputs results in GitHub Flavored Markdown.
// This format is designed for pull request comments and documentation.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation, which gives us tables, alerts and mermaid charts without
// hand-escaping.
type MarkdownReport struct {
	baseReport
}

// NewMarkdownReport creates a MarkdownReport that outputs to the given writer.
func NewMarkdownReport(output io.Writer) *MarkdownReport {
	return &MarkdownReport{
		baseReport: newBaseReport(output),
	}
}

// Show writes the full report.
func (r *MarkdownReport) Show() error {
	md := markdown.NewMarkdown(r.output)

	md.H1("smellscan Report")
	md.PlainText("")

	r.writeSummary(md)
	r.writeSources(md)
	r.writeFooter(md)

	return md.Build()
}

// writeSummary writes the per-severity and per-smell summary tables.
func (r *MarkdownReport) writeSummary(md *markdown.Markdown) {
	warnings := r.warnings()
	counts := make(map[model.Severity]int)
	for _, w := range warnings {
		counts[w.Severity()]++
	}

	md.H2("Summary")
	md.PlainText("")

	rows := make([][]string, 0, len(model.Severities())+1)
	for _, sev := range model.Severities() {
		rows = append(rows, []string{severityLabel(sev), strconv.Itoa(counts[sev])})
	}
	rows = append(rows, []string{"**Total**", "**" + strconv.Itoa(len(warnings)) + "**"})
	md.Table(markdown.TableSet{
		Header: []string{"Severity", "Count"},
		Rows:   rows,
	})
	md.PlainText("")

	if len(warnings) > 0 {
		r.writeSmellTable(md, warnings)
		r.writePieChart(md, counts)
	}
	r.writeAlert(md, counts, len(warnings))
}

// writeSmellTable counts warnings per smell type in first-seen order.
func (r *MarkdownReport) writeSmellTable(md *markdown.Markdown, warnings []*model.SmellWarning) {
	var order []string
	counts := make(map[string]int)
	for _, w := range warnings {
		if _, seen := counts[w.SmellType]; !seen {
			order = append(order, w.SmellType)
		}
		counts[w.SmellType]++
	}

	rows := make([][]string, 0, len(order))
	for _, smellType := range order {
		info := model.GetSmellInfo(smellType)
		rows = append(rows, []string{
			smellType,
			severityLabel(info.Severity),
			strconv.Itoa(counts[smellType]),
			info.Recommendation,
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Smell", "Severity", "Count", "Recommendation"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart for severity distribution.
func (r *MarkdownReport) writePieChart(md *markdown.Markdown, counts map[model.Severity]int) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Smell Severity Distribution"),
		piechart.WithShowData(true),
	)

	for _, sev := range model.Severities() {
		if counts[sev] > 0 {
			chart.LabelAndIntValue(severityName(sev), uint64(counts[sev])) //nolint:gosec // counts are never negative
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on severity counts.
func (r *MarkdownReport) writeAlert(md *markdown.Markdown, counts map[model.Severity]int, total int) {
	switch {
	case counts[model.SeverityHigh] > 0:
		md.Warningf(
			"Structural smells detected. %d high severity smell(s) point at misplaced responsibilities.",
			counts[model.SeverityHigh],
		)
	case counts[model.SeverityMedium] > 0:
		md.Importantf(
			"%d medium severity smell(s) make the code harder to change.",
			counts[model.SeverityMedium],
		)
	case total > 0:
		md.Note("Only naming and informational smells detected.")
	default:
		md.Tip("No smells detected.")
	}
	md.PlainText("")
}

// writeSources writes one table per source that has warnings.
func (r *MarkdownReport) writeSources(md *markdown.Markdown) {
	md.H2("Sources")
	md.PlainText("")

	smelly := 0
	for _, result := range r.results {
		warnings := result.Warnings()
		if len(warnings) == 0 {
			continue
		}
		smelly++

		md.PlainText("### `" + result.Describe() + "`")
		md.PlainText("")

		rows := make([][]string, len(warnings))
		for i, w := range warnings {
			rows[i] = []string{
				lineList(w.Lines),
				w.Context,
				w.SmellType,
				truncateString(w.Message, 80),
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Lines", "Context", "Smell", "Message"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	if smelly == 0 {
		md.PlainText("No smells detected.")
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (r *MarkdownReport) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [smellscan](https://github.com/nao1215/smellscan)*")
}

// severityName renders a severity in title case, e.g. "High".
func severityName(s model.Severity) string {
	return cases.Title(language.English).String(s.String())
}

// severityLabel prefixes the severity name with its marker.
func severityLabel(s model.Severity) string {
	markers := map[model.Severity]string{
		model.SeverityHigh:   "🟠",
		model.SeverityMedium: "🟡",
		model.SeverityLow:    "🔵",
		model.SeverityInfo:   "⚪",
	}
	return markers[s] + " " + severityName(s)
}

func lineList(lines []int) string {
	if len(lines) == 0 {
		return "-"
	}
	parts := make([]byte, 0, len(lines)*4)
	for i, l := range lines {
		if i > 0 {
			parts = append(parts, ", "...)
		}
		parts = strconv.AppendInt(parts, int64(l), 10)
	}
	return string(parts)
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
