package report

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLReport outputs every warning as one YAML sequence.
type YAMLReport struct {
	baseReport
}

// NewYAMLReport creates a YAMLReport that outputs to the given writer.
func NewYAMLReport(output io.Writer) *YAMLReport {
	return &YAMLReport{
		baseReport: newBaseReport(output),
	}
}

// Show writes all warnings as a YAML sequence.
func (r *YAMLReport) Show() error {
	enc := yaml.NewEncoder(r.output)
	enc.SetIndent(2)
	if err := enc.Encode(r.warnings()); err != nil {
		return err
	}
	return enc.Close()
}
