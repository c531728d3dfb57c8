package smelltest

import (
	"errors"
	"fmt"

	"github.com/nao1215/smellscan/internal/examiner"
	"github.com/nao1215/smellscan/internal/model"
	"github.com/nao1215/smellscan/internal/source"
)

// Analyzer examines a source. *examiner.Examiner satisfies it.
type Analyzer interface {
	Examine(src source.Source) (*model.Examination, error)
}

// Constraint requires a matching smell to carry one detail with the given
// value, e.g. Constraint{"name": "x2"}. It must hold exactly one key.
type Constraint map[string]any

// ErrInvalidConstraint is returned when a constraint does not hold exactly
// one key or its value cannot be compared.
var ErrInvalidConstraint = errors.New("invalid detail constraint")

// ErrNoExamination is recorded when an Analyzer returns neither a result
// nor an error.
var ErrNoExamination = errors.New("analyzer returned no examination")

// SmellMatcher checks that an examination contains a smell of a category.
// With constraints, every constraint must be satisfied by some smell of
// that category; different constraints may be satisfied by different
// smells.
//
// A matcher remembers the last examination it saw so that its failure
// messages can describe it. Use one matcher per assertion.
type SmellMatcher struct {
	category    model.Category
	constraints []model.Detail
	analyzer    Analyzer

	description string
	warnings    []*model.SmellWarning
	err         error
}

// NewSmellMatcher creates a matcher for category. Malformed constraints
// are reported here rather than silently matching on an arbitrary key.
func NewSmellMatcher(category any, constraints ...Constraint) (*SmellMatcher, error) {
	details, err := toDetails(constraints)
	if err != nil {
		return nil, err
	}
	return &SmellMatcher{
		category:    model.NormalizeCategory(category),
		constraints: details,
		analyzer:    examiner.New(),
	}, nil
}

// ReekOf is like NewSmellMatcher but panics on malformed constraints.
func ReekOf(category any, constraints ...Constraint) *SmellMatcher {
	m, err := NewSmellMatcher(category, constraints...)
	if err != nil {
		panic(err)
	}
	return m
}

func toDetails(constraints []Constraint) ([]model.Detail, error) {
	details := make([]model.Detail, 0, len(constraints))
	for i, c := range constraints {
		if len(c) != 1 {
			return nil, fmt.Errorf("%w: constraint %d has %d keys, want exactly 1", ErrInvalidConstraint, i, len(c))
		}
		for name, v := range c {
			value, err := model.ValueOf(v)
			if err != nil {
				return nil, fmt.Errorf("%w: constraint %d: %w", ErrInvalidConstraint, i, err)
			}
			details = append(details, model.Detail{Name: name, Value: value})
		}
	}
	return details, nil
}

// Using replaces the analyzer used by Evaluate and returns the matcher.
func (m *SmellMatcher) Using(a Analyzer) *SmellMatcher {
	m.analyzer = a
	return m
}

// Category returns the normalized category the matcher looks for.
func (m *SmellMatcher) Category() model.Category {
	return m.category
}

// Warnings returns every smell of the last evaluated examination.
func (m *SmellMatcher) Warnings() []*model.SmellWarning {
	return m.warnings
}

// Evaluate examines src and reports whether it has the requested smell.
// An examination failure counts as a mismatch and is described by
// FailureMessage.
func (m *SmellMatcher) Evaluate(src source.Source) bool {
	result, ok := m.examine(src)
	if !ok {
		return false
	}
	return m.EvaluateResult(result)
}

// EvaluateResult reports whether an existing result has the requested smell.
func (m *SmellMatcher) EvaluateResult(r model.Result) bool {
	if !m.record(r) {
		return false
	}
	if len(m.constraints) == 0 {
		return m.anyMatch()
	}
	for _, c := range m.constraints {
		if !m.anyMatch(c) {
			return false
		}
	}
	return true
}

func (m *SmellMatcher) examine(src source.Source) (model.Result, bool) {
	m.err = nil
	result, err := m.analyzer.Examine(src)
	if err == nil && result == nil {
		err = ErrNoExamination
	}
	if err != nil {
		m.fail(src.Description(), err)
		return nil, false
	}
	return result, true
}

// record keeps r for the failure messages. A nil r is recorded as a
// failed examination.
func (m *SmellMatcher) record(r model.Result) bool {
	if r == nil {
		m.fail(m.description, ErrNoExamination)
		return false
	}
	m.err = nil
	m.description = r.Describe()
	m.warnings = r.Warnings()
	return true
}

func (m *SmellMatcher) fail(description string, err error) {
	m.description = description
	m.warnings = nil
	m.err = err
}

func (m *SmellMatcher) anyMatch(details ...model.Detail) bool {
	for _, w := range m.warnings {
		if w.Matches(m.category, details...) {
			return true
		}
	}
	return false
}

// FailureMessage explains why Evaluate returned false.
func (m *SmellMatcher) FailureMessage() string {
	if m.err != nil {
		return m.examinationFailed("to reek of")
	}
	return fmt.Sprintf("Expected %s to reek of %s, but it didn't", m.description, m.category)
}

// NegatedFailureMessage explains why Evaluate returned true when it was
// expected not to.
func (m *SmellMatcher) NegatedFailureMessage() string {
	return fmt.Sprintf("Expected %s not to reek of %s, but it did", m.description, m.category)
}

func (m *SmellMatcher) examinationFailed(expectation string) string {
	return fmt.Sprintf("Expected %s %s %s, but examination failed: %v", m.description, expectation, m.category, m.err)
}
