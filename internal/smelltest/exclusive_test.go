package smelltest

import (
	"testing"

	"github.com/nao1215/smellscan/internal/model"
	"github.com/nao1215/smellscan/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExclusiveSmellMatcherEvaluate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		code        string
		category    any
		constraints []Constraint
		want        bool
	}{
		{"single matching smell", oneBadParam, "UncommunicativeParameterName", nil, true},
		{"single smell by family", oneBadParam, "UncommunicativeName", nil, true},
		{"single smell with detail", oneBadParam, "UncommunicativeParameterName", []Constraint{{"name": "x2"}}, true},
		{"single smell with other detail", oneBadParam, "UncommunicativeParameterName", []Constraint{{"name": "y3"}}, false},
		{"single smell of other category", oneBadParam, "FeatureEnvy", nil, false},
		{"two smells of the category", twoBadParams, "UncommunicativeParameterName", nil, false},
		{"two smells of mixed categories", envious, "FeatureEnvy", nil, false},
		{"no smells", cleanCode, "FeatureEnvy", nil, false},
		{"empty source", "", "FeatureEnvy", nil, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m := ReekOnlyOf(tc.category, tc.constraints...)
			assert.Equal(t, tc.want, m.Evaluate(source.FromString(tc.code)))
		})
	}
}

func TestExclusiveSmellMatcherMessages(t *testing.T) {
	t.Parallel()

	t.Run("failure message lists what was found", func(t *testing.T) {
		t.Parallel()
		m := ReekOnlyOf("UncommunicativeParameterName")
		require.False(t, m.Evaluate(source.FromString(twoBadParams)))
		want := "Expected string to reek only of UncommunicativeParameterName, but got:\n" +
			"  sum has the parameter name 'x2' (UncommunicativeParameterName) {name: x2}\n" +
			"  sum has the parameter name 'y3' (UncommunicativeParameterName) {name: y3}"
		assert.Equal(t, want, m.FailureMessage())
	})

	t.Run("failure message for no smells has an empty list", func(t *testing.T) {
		t.Parallel()
		m := ReekOnlyOf("FeatureEnvy")
		require.False(t, m.Evaluate(source.FromString(cleanCode)))
		assert.Equal(t, "Expected string to reek only of FeatureEnvy, but got:\n", m.FailureMessage())
	})

	t.Run("negated failure message", func(t *testing.T) {
		t.Parallel()
		m := ReekOnlyOf("UncommunicativeParameterName")
		require.True(t, m.Evaluate(source.FromString(oneBadParam)))
		assert.Equal(t, "Expected string not to reek only of UncommunicativeParameterName, but it did", m.NegatedFailureMessage())
	})

	t.Run("analyzer replaced with Using", func(t *testing.T) {
		t.Parallel()
		result := model.NewExamination("fixture.go", []*model.SmellWarning{
			{SmellType: "NestedIterators", Category: "NestedIterators", Details: model.Details{model.D("depth", 3)}},
		})
		m := ReekOnlyOf("NestedIterators", Constraint{"depth": 3}).Using(stubAnalyzer{result: result})
		assert.True(t, m.Evaluate(source.FromString("ignored")))
	})

	t.Run("analyzer without result fails", func(t *testing.T) {
		t.Parallel()
		m := ReekOnlyOf("FeatureEnvy").Using(stubAnalyzer{})
		assert.NotPanics(t, func() {
			assert.False(t, m.Evaluate(source.FromString(oneBadParam)))
		})
		assert.Contains(t, m.FailureMessage(), "but examination failed: analyzer returned no examination")
	})

	t.Run("examination failure", func(t *testing.T) {
		t.Parallel()
		m := ReekOnlyOf("FeatureEnvy")
		assert.False(t, m.Evaluate(source.FromString("func (")))
		assert.Contains(t, m.FailureMessage(), "Expected string to reek only of FeatureEnvy, but examination failed:")
	})
}
