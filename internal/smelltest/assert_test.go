package smelltest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// recordingT captures assertion failures instead of failing the test.
type recordingT struct {
	messages []string
}

func (r *recordingT) Errorf(format string, args ...any) {
	r.messages = append(r.messages, fmt.Sprintf(format, args...))
}

func TestAssertHelpers(t *testing.T) {
	t.Parallel()

	t.Run("passing assertions", func(t *testing.T) {
		t.Parallel()
		AssertReekOf(t, envious, "FeatureEnvy")
		AssertReekOf(t, twoBadParams, "UncommunicativeParameterName", Constraint{"name": "y3"})
		AssertNotReekOf(t, cleanCode, "UncommunicativeName")
		AssertReekOnlyOf(t, oneBadParam, "UncommunicativeParameterName", Constraint{"name": "x2"})
		AssertNotReekOnlyOf(t, twoBadParams, "UncommunicativeParameterName")
	})

	testCases := []struct {
		name    string
		assert  func(assert.TestingT) bool
		message string
	}{
		{
			name:    "AssertReekOf",
			assert:  func(t assert.TestingT) bool { return AssertReekOf(t, cleanCode, "FeatureEnvy") },
			message: "Expected string to reek of FeatureEnvy, but it didn't",
		},
		{
			name:    "AssertNotReekOf",
			assert:  func(t assert.TestingT) bool { return AssertNotReekOf(t, envious, "FeatureEnvy") },
			message: "Expected string not to reek of FeatureEnvy, but it did",
		},
		{
			name:    "AssertReekOnlyOf",
			assert:  func(t assert.TestingT) bool { return AssertReekOnlyOf(t, envious, "FeatureEnvy") },
			message: "Expected string to reek only of FeatureEnvy, but got:",
		},
		{
			name:    "AssertNotReekOnlyOf",
			assert:  func(t assert.TestingT) bool { return AssertNotReekOnlyOf(t, oneBadParam, "UncommunicativeName") },
			message: "Expected string not to reek only of UncommunicativeName, but it did",
		},
		{
			name: "malformed constraint",
			assert: func(t assert.TestingT) bool {
				return AssertReekOf(t, envious, "FeatureEnvy", Constraint{"a": 1, "b": 2})
			},
			message: "invalid detail constraint",
		},
		{
			name:    "unparsable source",
			assert:  func(t assert.TestingT) bool { return AssertNotReekOf(t, "func (", "FeatureEnvy") },
			message: "but examination failed",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name+" failure", func(t *testing.T) {
			t.Parallel()
			rec := &recordingT{}
			assert.False(t, tc.assert(rec))
			if assert.Len(t, rec.messages, 1) {
				assert.Contains(t, rec.messages[0], tc.message)
			}
		})
	}
}
