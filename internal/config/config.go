package config

import (
	"path/filepath"
	"slices"

	"github.com/adrg/xdg"
)

// Format selects the report renderer.
type Format string

// Supported report formats.
const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatSARIF    Format = "sarif"
)

// Formats lists every supported report format.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML, FormatMarkdown, FormatSARIF}
}

// Heading styles for the text report.
const (
	// HeadingQuiet omits the heading of sources without warnings.
	HeadingQuiet = "quiet"

	// HeadingVerbose prints a heading for every examined source.
	HeadingVerbose = "verbose"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Default configuration values.
const (
	// DefaultBatchSize is the number of sources examined concurrently.
	// Parsing is CPU bound, so a small multiple of the core count is plenty.
	DefaultBatchSize = 8

	// AppName is the application name used for XDG directory paths.
	AppName = "smellscan"
)

// Config holds all configuration options for a smellscan run.
// It is populated from CLI flags and passed down explicitly rather than
// kept in global state.
//
// Design decision: a single flat struct, as the number of options is small.
type Config struct {
	// Targets are the files and directories to examine.
	Targets []string

	// ExcludePaths are directory names skipped while walking targets,
	// in addition to those listed in the configuration file.
	ExcludePaths []string

	// Format selects the report renderer.
	Format Format

	// Heading is the text report heading style, HeadingQuiet or HeadingVerbose.
	Heading string

	// Color is the color mode, ColorAuto, ColorAlways or ColorNever.
	// Auto enables color only when stdout is a terminal.
	Color string

	// LineNumbers prefixes each warning with its line numbers.
	LineNumbers bool

	// SingleLine prints each warning as "source:line: warning", which
	// editors can jump to.
	SingleLine bool

	// SortByIssueCount orders sources by descending warning count.
	SortByIssueCount bool

	// BatchSize is the number of sources examined concurrently.
	BatchSize int

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string

	// Detectors holds detector settings loaded from the configuration file.
	Detectors *File

	// ReportFile is the output file path for the report.
	// When empty the report goes to stdout.
	ReportFile string

	// SaveToDB stores the examinations in the history database.
	SaveToDB bool

	// DBDir is the directory holding the SQLite database.
	// Defaults to the XDG data directory (~/.local/share/smellscan on Linux).
	DBDir string

	// FailOnSmells makes the scan command exit with a non-zero status
	// when any smell is found.
	FailOnSmells bool

	// Verbose enables debug logging.
	Verbose bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Format:    FormatText,
		Heading:   HeadingQuiet,
		Color:     ColorAuto,
		BatchSize: DefaultBatchSize,
		DBDir:     XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for smellscan.
// On Linux: ~/.local/share/smellscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for smellscan.
// On Linux: ~/.config/smellscan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid and returns the first
// problem found.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}
	if !slices.Contains(Formats(), c.Format) {
		return ErrInvalidFormat
	}
	if c.Heading != HeadingQuiet && c.Heading != HeadingVerbose {
		return ErrInvalidHeading
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return ErrInvalidColorMode
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.LineNumbers && c.SingleLine {
		return ErrConflictingLineFormats
	}
	if c.Detectors != nil {
		return c.Detectors.Validate()
	}
	return nil
}
