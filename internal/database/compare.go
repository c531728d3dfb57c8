package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/nao1215/smellscan/internal/model"
)

// Directions of change between two examinations.
const (
	DirectionWorsened  = "worsened"
	DirectionImproved  = "improved"
	DirectionUnchanged = "unchanged"
)

// ErrExaminationFailed is returned by CheckComparable when a stored
// examination recorded a failure instead of its smells.
var ErrExaminationFailed = errors.New("examination failed")

// Comparison holds the difference between two examinations of one source.
type Comparison struct {
	// Source is the examined source both examinations belong to.
	Source string `json:"source"`

	// Previous contains metadata about the older examination.
	Previous Snapshot `json:"previous"`

	// Current contains metadata about the newer examination.
	Current Snapshot `json:"current"`

	// NewSmells are present in the current examination only.
	NewSmells []*model.SmellWarning `json:"new_smells"`

	// ResolvedSmells are present in the previous examination only.
	ResolvedSmells []*model.SmellWarning `json:"resolved_smells"`

	// UnchangedCount is the number of smells present in both.
	UnchangedCount int `json:"unchanged_count"`

	// Direction is "improved", "worsened", or "unchanged".
	Direction string `json:"direction"`
}

// Snapshot summarizes one side of a comparison.
type Snapshot struct {
	ID          int64     `json:"id"`
	ExaminedAt  time.Time `json:"examined_at"`
	TotalSmells int       `json:"total_smells"`
	HighCount   int       `json:"high_count"`
	MediumCount int       `json:"medium_count"`
	LowCount    int       `json:"low_count"`
	InfoCount   int       `json:"info_count"`
}

// Count returns the number of smells at the given severity.
func (s Snapshot) Count(sev model.Severity) int {
	switch sev {
	case model.SeverityHigh:
		return s.HighCount
	case model.SeverityMedium:
		return s.MediumCount
	case model.SeverityLow:
		return s.LowCount
	default:
		return s.InfoCount
	}
}

// score weighs severities so that one structural smell outweighs several
// naming ones.
func (s Snapshot) score() int {
	return s.HighCount*50 + s.MediumCount*10 + s.LowCount*5 + s.InfoCount
}

func newSnapshot(r *ExaminationRecord) Snapshot {
	counts := r.Examination.CountBySeverity()
	return Snapshot{
		ID:          r.ID,
		ExaminedAt:  r.Timestamp,
		TotalSmells: r.Examination.SmellCount(),
		HighCount:   counts[model.SeverityHigh],
		MediumCount: counts[model.SeverityMedium],
		LowCount:    counts[model.SeverityLow],
		InfoCount:   counts[model.SeverityInfo],
	}
}

// CheckComparable returns ErrExaminationFailed when either record could not
// be examined. A failed examination stores no smells, so comparing it would
// report every earlier smell as resolved.
func CheckComparable(previous, current *ExaminationRecord) error {
	for _, r := range []*ExaminationRecord{previous, current} {
		if r.Examination.Error != "" {
			return fmt.Errorf("%w: examination #%d of %s: %s",
				ErrExaminationFailed, r.ID, r.Examination.Description, r.Examination.Error)
		}
	}
	return nil
}

// Compare reports which smells were introduced and which were resolved
// between previous and current. Smells are matched by model.Fingerprint,
// so a smell whose code merely moved counts as unchanged. Duplicate
// fingerprints are matched one for one. Result order follows detection
// order. Callers check CheckComparable first.
func Compare(previous, current *ExaminationRecord) *Comparison {
	result := &Comparison{
		Source:         current.Examination.Description,
		Previous:       newSnapshot(previous),
		Current:        newSnapshot(current),
		NewSmells:      []*model.SmellWarning{},
		ResolvedSmells: []*model.SmellWarning{},
	}

	remaining := make(map[string]int)
	for _, w := range previous.Examination.Smells {
		remaining[model.Fingerprint(w)]++
	}
	for _, w := range current.Examination.Smells {
		key := model.Fingerprint(w)
		if remaining[key] > 0 {
			remaining[key]--
			result.UnchangedCount++
			continue
		}
		result.NewSmells = append(result.NewSmells, w)
	}
	for _, w := range previous.Examination.Smells {
		key := model.Fingerprint(w)
		if remaining[key] > 0 {
			remaining[key]--
			result.ResolvedSmells = append(result.ResolvedSmells, w)
		}
	}

	switch prev, cur := result.Previous.score(), result.Current.score(); {
	case cur < prev:
		result.Direction = DirectionImproved
	case cur > prev:
		result.Direction = DirectionWorsened
	default:
		result.Direction = DirectionUnchanged
	}
	return result
}
