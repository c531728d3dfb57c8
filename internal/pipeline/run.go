package pipeline

import (
	"github.com/nao1215/smellscan/internal/model"
	"github.com/nao1215/smellscan/internal/source"
)

// Run is the state shared by the steps of one scan.
type Run struct {
	// Targets are the paths requested by the user.
	Targets []string

	// Sources are the collected inputs to examine.
	Sources []source.Source

	// Examinations hold one result per source, in source order.
	Examinations []*model.Examination

	// RunID is the database ID assigned when the run was saved.
	// Zero when the run was not saved.
	RunID int64

	// PerformedSteps lists the steps that completed, in order.
	PerformedSteps []string
}

// NewRun creates a Run for the given targets.
func NewRun(targets ...string) *Run {
	return &Run{Targets: targets}
}

// SmellCount returns the number of warnings across all examinations.
func (r *Run) SmellCount() int {
	total := 0
	for _, e := range r.Examinations {
		total += e.SmellCount()
	}
	return total
}

// Failures returns the examinations that could not be completed.
func (r *Run) Failures() []*model.Examination {
	var failed []*model.Examination
	for _, e := range r.Examinations {
		if e.Error != "" {
			failed = append(failed, e)
		}
	}
	return failed
}
