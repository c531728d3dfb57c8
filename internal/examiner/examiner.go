// Package examiner parses Go sources and runs the configured smell
// detectors over them.
package examiner

import (
	"bytes"
	"fmt"
	"go/parser"
	"go/token"
	"log/slog"
	"regexp"

	"github.com/nao1215/smellscan/internal/config"
	"github.com/nao1215/smellscan/internal/model"
	"github.com/nao1215/smellscan/internal/smells"
	"github.com/nao1215/smellscan/internal/source"
)

// packageClause detects whether inline code already declares its package.
var packageClause = regexp.MustCompile(`(?m)^\s*package\s+\w+`)

// inlinePrelude is prepended to inline code that has no package clause.
// It sits on the same line as the code so line numbers are unchanged.
const inlinePrelude = "package main;"

// Examiner examines sources for smells. It holds no per-source state, so
// one Examiner may be shared by concurrent callers.
type Examiner struct {
	detectorConfig *config.File
	logger         *slog.Logger
}

// Option configures an Examiner.
type Option func(*Examiner)

// WithConfig sets the detector configuration. Without it every detector
// runs with its defaults.
func WithConfig(cf *config.File) Option {
	return func(e *Examiner) {
		e.detectorConfig = cf
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Examiner) {
		e.logger = logger
	}
}

// New creates an Examiner.
func New(opts ...Option) *Examiner {
	e := &Examiner{}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.detectorConfig == nil {
		e.detectorConfig = config.NewFile()
	}
	return e
}

// Examine parses src and runs every enabled detector over it.
// Detectors are built afresh for each call.
func (e *Examiner) Examine(src source.Source) (*model.Examination, error) {
	code, err := src.Read()
	if err != nil {
		return nil, err
	}
	if src.Inline() && !packageClause.Match(code) {
		code = append([]byte(inlinePrelude), code...)
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, src.Description(), bytes.NewReader(code), parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", src.Description(), err)
	}

	detectors, err := smells.Build(e.detectorConfig.DetectorConfig)
	if err != nil {
		return nil, err
	}

	ctx := smells.NewContext(src.Description(), fset, file)
	var warnings []*model.SmellWarning
	for _, d := range detectors {
		found := d.Examine(ctx)
		if len(found) > 0 {
			e.logger.Debug("smells detected",
				"source", src.Description(),
				"smell_type", d.SmellType(),
				"count", len(found),
			)
		}
		warnings = append(warnings, found...)
	}

	return model.NewExamination(src.Description(), warnings), nil
}
