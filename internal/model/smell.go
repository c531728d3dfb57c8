package model

import (
	"encoding/hex"
	"sort"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Detail is one named value attached to a smell warning, such as the
// offending parameter name or a statement count.
type Detail struct {
	Name  string `json:"name" yaml:"name"`
	Value Value  `json:"value" yaml:"value"`
}

// D is shorthand for building a Detail from a Go value. It panics on
// unsupported types; detectors only ever pass strings and integers.
func D(name string, v any) Detail {
	val, err := ValueOf(v)
	if err != nil {
		panic(err)
	}
	return Detail{Name: name, Value: val}
}

// Details is an ordered list of smell details. Order is kept for display;
// lookups are by name.
type Details []Detail

// Get returns the value recorded under name.
func (d Details) Get(name string) (Value, bool) {
	for _, detail := range d {
		if detail.Name == name {
			return detail.Value, true
		}
	}
	return Value{}, false
}

// String renders the details as "name: value, name: value".
func (d Details) String() string {
	parts := make([]string, 0, len(d))
	for _, detail := range d {
		parts = append(parts, detail.Name+": "+detail.Value.String())
	}
	return strings.Join(parts, ", ")
}

// SmellWarning is a single smell found in a source.
//
// SmellType is the concrete detector name and Category is the family it
// belongs to; a warning matches a request for either.
type SmellWarning struct {
	// SmellType is the detector that raised the warning, e.g. "FeatureEnvy".
	SmellType string `json:"smell_type" yaml:"smell_type"`

	// Category is the smell family, e.g. "LowCohesion".
	Category string `json:"category" yaml:"category"`

	// Context is the code element the smell was found in, e.g. "(*S).simple".
	Context string `json:"context" yaml:"context"`

	// Message is the human-readable description.
	Message string `json:"message" yaml:"message"`

	// Lines are the source lines that exhibit the smell.
	Lines []int `json:"lines" yaml:"lines"`

	// Source describes the examined input, e.g. "string" or a file path.
	Source string `json:"source" yaml:"source"`

	// Details holds detector-specific values such as name or count.
	Details Details `json:"details,omitempty" yaml:"details,omitempty"`
}

// Matches reports whether the warning is of the given category and carries
// every one of the given details with an equal value.
func (w *SmellWarning) Matches(category Category, details ...Detail) bool {
	if string(category) != w.SmellType && string(category) != w.Category {
		return false
	}
	for _, want := range details {
		got, ok := w.Details.Get(want.Name)
		if !ok || !got.Equal(want.Value) {
			return false
		}
	}
	return true
}

// FirstLine returns the first reported line, or 0 when none was recorded.
func (w *SmellWarning) FirstLine() int {
	if len(w.Lines) == 0 {
		return 0
	}
	return w.Lines[0]
}

// Severity returns the severity assigned to the warning's smell type.
func (w *SmellWarning) Severity() Severity {
	return GetSeverity(w.SmellType)
}

// Fingerprint identifies a warning across runs. Line numbers are left out
// so that code moving within a file does not look like a new smell.
func Fingerprint(w *SmellWarning) string {
	details := make([]string, 0, len(w.Details))
	for _, d := range w.Details {
		details = append(details, d.Name+"="+d.Value.String())
	}
	sort.Strings(details)

	h := sha3.New256()
	for _, part := range []string{w.Source, w.SmellType, w.Context, strings.Join(details, ",")} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
