package smelltest

import (
	"github.com/nao1215/smellscan/internal/source"
	"github.com/stretchr/testify/assert"
)

type tHelper interface {
	Helper()
}

// AssertReekOf asserts that code has a smell of category.
func AssertReekOf(t assert.TestingT, code string, category any, constraints ...Constraint) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	m, err := NewSmellMatcher(category, constraints...)
	if err != nil {
		return assert.Fail(t, err.Error())
	}
	if m.Evaluate(source.FromString(code)) {
		return true
	}
	return assert.Fail(t, m.FailureMessage())
}

// AssertNotReekOf asserts that code has no smell of category.
func AssertNotReekOf(t assert.TestingT, code string, category any, constraints ...Constraint) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	m, err := NewSmellMatcher(category, constraints...)
	if err != nil {
		return assert.Fail(t, err.Error())
	}
	src := source.FromString(code)
	if !m.Evaluate(src) {
		if m.err != nil {
			return assert.Fail(t, m.FailureMessage())
		}
		return true
	}
	return assert.Fail(t, m.NegatedFailureMessage())
}

// AssertReekOnlyOf asserts that code has exactly one smell and that it is
// of category.
func AssertReekOnlyOf(t assert.TestingT, code string, category any, constraints ...Constraint) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	m, err := NewExclusiveSmellMatcher(category, constraints...)
	if err != nil {
		return assert.Fail(t, err.Error())
	}
	if m.Evaluate(source.FromString(code)) {
		return true
	}
	return assert.Fail(t, m.FailureMessage())
}

// AssertNotReekOnlyOf asserts that code does not have category as its
// only smell.
func AssertNotReekOnlyOf(t assert.TestingT, code string, category any, constraints ...Constraint) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	m, err := NewExclusiveSmellMatcher(category, constraints...)
	if err != nil {
		return assert.Fail(t, err.Error())
	}
	if !m.Evaluate(source.FromString(code)) {
		if m.err != nil {
			return assert.Fail(t, m.FailureMessage())
		}
		return true
	}
	return assert.Fail(t, m.NegatedFailureMessage())
}
