package report

import (
	"encoding/json"
	"io"
)

// JSONReport outputs every warning as one JSON array.
// This format is designed for tool integration and programmatic processing.
//
// Design decision: We use standard encoding/json because model.Value
// already implements json.Marshaler and the output is a plain array.
type JSONReport struct {
	baseReport

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONReportOption configures a JSONReport.
type JSONReportOption func(*JSONReport)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONReportOption {
	return func(r *JSONReport) {
		r.indent = true
		r.indentPrefix = prefix
		r.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONReportOption {
	return WithIndent("", "  ")
}

// NewJSONReport creates a JSONReport that outputs to the given writer.
func NewJSONReport(output io.Writer, opts ...JSONReportOption) *JSONReport {
	r := &JSONReport{
		baseReport: newBaseReport(output),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Show writes all warnings as a JSON array followed by a newline.
// With no warnings the array is empty rather than null.
func (r *JSONReport) Show() error {
	var data []byte
	var err error

	if r.indent {
		data, err = json.MarshalIndent(r.warnings(), r.indentPrefix, r.indentString)
	} else {
		data, err = json.Marshal(r.warnings())
	}
	if err != nil {
		return err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	_, err = r.output.Write(data)
	return err
}
