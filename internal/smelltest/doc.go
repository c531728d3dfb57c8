// Package smelltest provides assertions for tests that check which smells
// a piece of Go source has.
//
// A matcher examines source, then decides whether the examination holds a
// smell of the requested category, optionally with specific details:
//
//	m := smelltest.ReekOf("UncommunicativeParameterName", smelltest.Constraint{"name": "x2"})
//	if !m.Evaluate(source.FromString(code)) {
//		t.Error(m.FailureMessage())
//	}
//
// Categories may name a concrete smell type or a smell family, and may be
// given as plain or namespaced strings, model.Category values or detector
// values; see model.NormalizeCategory. The testify helpers AssertReekOf,
// AssertNotReekOf, AssertReekOnlyOf and AssertNotReekOnlyOf wrap the
// matchers for inline source.
package smelltest
