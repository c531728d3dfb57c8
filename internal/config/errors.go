package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and File.Validate() so
// callers can use errors.Is() to tell them apart.
var (
	// ErrNoTarget is returned when no file or directory to scan is given.
	ErrNoTarget = errors.New("no target specified: provide at least one file or directory")

	// ErrInvalidFormat is returned when the report format is not one of
	// text, json, yaml, markdown or sarif.
	ErrInvalidFormat = errors.New("invalid report format: must be text, json, yaml, markdown or sarif")

	// ErrInvalidHeading is returned when the heading style is neither
	// quiet nor verbose.
	ErrInvalidHeading = errors.New("invalid heading style: must be quiet or verbose")

	// ErrConflictingHeadings is returned when both --quiet and
	// --verbose-heading are specified.
	ErrConflictingHeadings = errors.New("conflicting heading styles: --quiet and --verbose-heading cannot be used together")

	// ErrInvalidColorMode is returned when the color mode is not auto,
	// always or never.
	ErrInvalidColorMode = errors.New("invalid color mode: must be auto, always or never")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingLineFormats is returned when both --line-numbers and
	// --single-line are specified. Each picks a different warning layout.
	ErrConflictingLineFormats = errors.New("conflicting warning formats: --line-numbers and --single-line cannot be used together")

	// ErrUnknownSmell is returned when the configuration file names a smell
	// type that no detector reports.
	ErrUnknownSmell = errors.New("unknown smell type")
)
