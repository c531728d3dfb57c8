package model

import (
	"reflect"
	"testing"
)

type featureEnvyDetector struct{}

type stringer string

func (s stringer) String() string { return string(s) }

func TestNormalizeCategory(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		in   any
		want Category
	}{
		{"plain string", "FeatureEnvy", "FeatureEnvy"},
		{"namespaced with colons", "Smellscan::Smells::FeatureEnvy", "FeatureEnvy"},
		{"namespaced with dots", "smells.FeatureEnvy", "FeatureEnvy"},
		{"trailing colons", "Smells::FeatureEnvy::", "FeatureEnvy"},
		{"trailing dot", "smells.FeatureEnvy.", "FeatureEnvy"},
		{"only separators", "::", ""},
		{"category value", Category("LowCohesion"), "LowCohesion"},
		{"stringer", stringer("smells::UtilityFunction"), "UtilityFunction"},
		{"reflect type", reflect.TypeOf(featureEnvyDetector{}), "featureEnvyDetector"},
		{"detector value", &featureEnvyDetector{}, "featureEnvyDetector"},
		{"nil", nil, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeCategory(tc.in); got != tc.want {
				t.Errorf("NormalizeCategory(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
