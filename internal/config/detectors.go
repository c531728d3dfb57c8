package config

import (
	"fmt"
	"slices"

	"github.com/nao1215/smellscan/internal/model"
	"github.com/nao1215/smellscan/internal/smells"
)

// File represents the structure of the .smellscan configuration file.
//
//	defaults:
//	  accept: [id]
//	detectors:
//	  TooManyStatements:
//	    max: 15
//	  BooleanParameter:
//	    enabled: false
//	exclude:
//	  - generated
type File struct {
	// Detectors maps smell types to their settings.
	Detectors map[string]model.DetectorConfig `yaml:"detectors,omitempty"`

	// Defaults are applied to every detector unless overridden in Detectors.
	Defaults model.DetectorConfig `yaml:"defaults,omitempty"`

	// ExcludePaths are directory names skipped while collecting sources.
	ExcludePaths []string `yaml:"exclude,omitempty"`
}

// NewFile returns an empty configuration under which every detector runs
// with its built-in defaults.
func NewFile() *File {
	return &File{
		Detectors: make(map[string]model.DetectorConfig),
	}
}

// DetectorConfig returns the settings for one smell type, merging the
// detector-specific entry over the defaults. A nil File yields zero settings.
func (cf *File) DetectorConfig(smellType string) model.DetectorConfig {
	if cf == nil {
		return model.DetectorConfig{}
	}
	result := cf.Defaults
	if override, ok := cf.Detectors[smellType]; ok {
		result = result.Merge(override)
	}
	return result
}

// Validate rejects settings for smell types no detector reports.
func (cf *File) Validate() error {
	if cf == nil {
		return nil
	}
	names := make([]string, 0, len(cf.Detectors))
	for name := range cf.Detectors {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if !smells.Known(name) {
			return fmt.Errorf("%w: %s", ErrUnknownSmell, name)
		}
	}
	return nil
}
