package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nao1215/smellscan/internal/model"
)

// WarningFormatter renders a single warning as one line of text.
type WarningFormatter interface {
	Format(w *model.SmellWarning) string
}

// SimpleWarningFormatter renders "{context} {message} ({smell type})".
type SimpleWarningFormatter struct{}

// Format implements WarningFormatter.
func (SimpleWarningFormatter) Format(w *model.SmellWarning) string {
	return fmt.Sprintf("%s %s (%s)", w.Context, w.Message, w.SmellType)
}

// DetailedWarningFormatter appends the warning's details to the simple
// form, e.g. "sum has the parameter name 'x2' (UncommunicativeParameterName) {name: x2}".
type DetailedWarningFormatter struct{}

// Format implements WarningFormatter.
func (DetailedWarningFormatter) Format(w *model.SmellWarning) string {
	simple := SimpleWarningFormatter{}.Format(w)
	if len(w.Details) == 0 {
		return simple
	}
	return simple + " {" + w.Details.String() + "}"
}

// LineNumberWarningFormatter prefixes the simple form with the warning's
// line numbers, e.g. "[3, 7]:".
type LineNumberWarningFormatter struct{}

// Format implements WarningFormatter.
func (LineNumberWarningFormatter) Format(w *model.SmellWarning) string {
	lines := make([]string, 0, len(w.Lines))
	for _, l := range w.Lines {
		lines = append(lines, strconv.Itoa(l))
	}
	return "[" + strings.Join(lines, ", ") + "]:" + SimpleWarningFormatter{}.Format(w)
}

// SingleLineWarningFormatter renders "{source}:{first line}: {simple}",
// which editors and terminals recognise as a jump target.
type SingleLineWarningFormatter struct{}

// Format implements WarningFormatter.
func (SingleLineWarningFormatter) Format(w *model.SmellWarning) string {
	return fmt.Sprintf("%s:%d: %s", w.Source, w.FirstLine(), SimpleWarningFormatter{}.Format(w))
}

// ReportFormatter renders a list of warnings.
type ReportFormatter interface {
	FormatList(warnings []*model.SmellWarning, wf WarningFormatter) string
}

// ListFormatter renders one indented line per warning.
type ListFormatter struct{}

// FormatList implements ReportFormatter.
func (ListFormatter) FormatList(warnings []*model.SmellWarning, wf WarningFormatter) string {
	return FormatList(warnings, wf)
}

// FormatList renders warnings one per line, each indented by two spaces,
// without a trailing newline. A nil wf uses SimpleWarningFormatter.
func FormatList(warnings []*model.SmellWarning, wf WarningFormatter) string {
	if wf == nil {
		wf = SimpleWarningFormatter{}
	}
	lines := make([]string, 0, len(warnings))
	for _, w := range warnings {
		lines = append(lines, "  "+wf.Format(w))
	}
	return strings.Join(lines, "\n")
}

// HeadingFormatter renders the heading line of one result.
type HeadingFormatter interface {
	Header(r model.Result, p *Palette) string
}

// QuietHeading shows headings only for results that have warnings.
type QuietHeading struct{}

// Header implements HeadingFormatter.
func (QuietHeading) Header(r model.Result, p *Palette) string {
	if len(r.Warnings()) == 0 {
		return ""
	}
	return heading(r, p)
}

// VerboseHeading shows a heading for every result.
type VerboseHeading struct{}

// Header implements HeadingFormatter.
func (VerboseHeading) Header(r model.Result, p *Palette) string {
	return heading(r, p)
}

func heading(r model.Result, p *Palette) string {
	count := len(r.Warnings())
	plural := "s"
	if count == 1 {
		plural = ""
	}
	return p.Cyan(r.Describe()+" -- ") +
		p.Yellow(fmt.Sprintf("%d warning", count)) +
		p.Yellow(plural)
}
