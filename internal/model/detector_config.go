package model

// DetectorConfig tunes a single smell detector.
// Zero values mean "use the detector's default".
type DetectorConfig struct {
	// Enabled turns the detector off when explicitly false.
	Enabled *bool `yaml:"enabled,omitempty"`

	// Accept lists names that are never reported by naming detectors.
	Accept []string `yaml:"accept,omitempty"`

	// Reject lists regular expressions for names that naming detectors
	// report.
	Reject []string `yaml:"reject,omitempty"`

	// Max is the detector's threshold: statements, parameters, calls,
	// nesting depth or methods, depending on the detector.
	Max int `yaml:"max,omitempty"`
}

// IsEnabled reports whether the detector should run.
func (c DetectorConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// Merge overlays the non-zero fields of override onto c.
func (c DetectorConfig) Merge(override DetectorConfig) DetectorConfig {
	result := c
	if override.Enabled != nil {
		enabled := *override.Enabled
		result.Enabled = &enabled
	}
	if len(override.Accept) > 0 {
		result.Accept = override.Accept
	}
	if len(override.Reject) > 0 {
		result.Reject = override.Reject
	}
	if override.Max != 0 {
		result.Max = override.Max
	}
	return result
}
