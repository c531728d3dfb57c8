package model

import "time"

// Result is the read-only view of an examined source that matchers and
// reports consume.
type Result interface {
	// Describe returns the label of the examined source.
	Describe() string

	// Warnings returns the smells found, in detection order.
	Warnings() []*SmellWarning
}

// Examination is the outcome of examining one source.
// It is built once by the examiner and not modified afterwards.
type Examination struct {
	// Description identifies the source: "string" for inline code,
	// otherwise the file path.
	Description string `json:"description" yaml:"description"`

	// Smells are the warnings in detection order.
	Smells []*SmellWarning `json:"smells" yaml:"smells"`

	// ExaminedAt is when the examination finished.
	ExaminedAt time.Time `json:"examined_at" yaml:"examined_at"`

	// Error holds the failure message when the source could not be
	// examined. Only batch examination records failures this way.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewExamination creates an Examination stamped with the current time.
func NewExamination(description string, smells []*SmellWarning) *Examination {
	if smells == nil {
		smells = []*SmellWarning{}
	}
	return &Examination{
		Description: description,
		Smells:      smells,
		ExaminedAt:  time.Now(),
	}
}

// Describe implements Result.
func (e *Examination) Describe() string { return e.Description }

// Warnings implements Result.
func (e *Examination) Warnings() []*SmellWarning { return e.Smells }

// SmellCount returns the number of warnings.
func (e *Examination) SmellCount() int { return len(e.Smells) }

// Smelly reports whether at least one smell was found.
func (e *Examination) Smelly() bool { return len(e.Smells) > 0 }

// CountBySeverity tallies warnings per severity level.
func (e *Examination) CountBySeverity() map[Severity]int {
	counts := make(map[Severity]int)
	for _, w := range e.Smells {
		counts[w.Severity()]++
	}
	return counts
}
