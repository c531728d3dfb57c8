package smelltest

import (
	"fmt"

	"github.com/nao1215/smellscan/internal/model"
	"github.com/nao1215/smellscan/internal/report"
	"github.com/nao1215/smellscan/internal/source"
)

// ExclusiveSmellMatcher checks that an examination contains exactly one
// smell and that this smell has the requested category and details.
type ExclusiveSmellMatcher struct {
	*SmellMatcher
}

// NewExclusiveSmellMatcher creates an exclusive matcher for category.
func NewExclusiveSmellMatcher(category any, constraints ...Constraint) (*ExclusiveSmellMatcher, error) {
	m, err := NewSmellMatcher(category, constraints...)
	if err != nil {
		return nil, err
	}
	return &ExclusiveSmellMatcher{SmellMatcher: m}, nil
}

// ReekOnlyOf is like NewExclusiveSmellMatcher but panics on malformed
// constraints.
func ReekOnlyOf(category any, constraints ...Constraint) *ExclusiveSmellMatcher {
	m, err := NewExclusiveSmellMatcher(category, constraints...)
	if err != nil {
		panic(err)
	}
	return m
}

// Using replaces the analyzer used by Evaluate and returns the matcher.
func (m *ExclusiveSmellMatcher) Using(a Analyzer) *ExclusiveSmellMatcher {
	m.SmellMatcher.Using(a)
	return m
}

// Evaluate examines src and reports whether its only smell is the
// requested one.
func (m *ExclusiveSmellMatcher) Evaluate(src source.Source) bool {
	result, ok := m.examine(src)
	if !ok {
		return false
	}
	return m.EvaluateResult(result)
}

// EvaluateResult reports whether an existing result holds exactly one
// smell and that smell matches. Any other count fails without looking at
// categories.
func (m *ExclusiveSmellMatcher) EvaluateResult(r model.Result) bool {
	if !m.record(r) {
		return false
	}
	if len(m.warnings) != 1 {
		return false
	}
	return m.warnings[0].Matches(m.category, m.constraints...)
}

// FailureMessage lists every smell that was actually found, with its
// details.
func (m *ExclusiveSmellMatcher) FailureMessage() string {
	if m.err != nil {
		return m.examinationFailed("to reek only of")
	}
	return fmt.Sprintf("Expected %s to reek only of %s, but got:\n%s",
		m.description, m.category, report.FormatList(m.warnings, report.DetailedWarningFormatter{}))
}

// NegatedFailureMessage explains why Evaluate returned true when it was
// expected not to.
func (m *ExclusiveSmellMatcher) NegatedFailureMessage() string {
	return fmt.Sprintf("Expected %s not to reek only of %s, but it did", m.description, m.category)
}
