package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nao1215/smellscan/internal/model"
	"github.com/nao1215/smellscan/internal/report"
	"github.com/nao1215/smellscan/internal/source"
)

// ErrNoSources is returned when the targets contain no Go files.
var ErrNoSources = errors.New("no Go source files found")

// CollectStep expands the run's targets into sources.
type CollectStep struct {
	// exclude names directories to skip in addition to source.DefaultExcludes.
	exclude []string

	logger *slog.Logger
}

// CollectStepOption configures a CollectStep.
type CollectStepOption func(*CollectStep)

// WithExclude adds directory names that are never walked.
func WithExclude(names []string) CollectStepOption {
	return func(s *CollectStep) {
		s.exclude = append(s.exclude, names...)
	}
}

// WithCollectLogger sets a custom logger for the collect step.
func WithCollectLogger(logger *slog.Logger) CollectStepOption {
	return func(s *CollectStep) {
		s.logger = logger
	}
}

// NewCollectStep creates a new source collection step.
func NewCollectStep(opts ...CollectStepOption) *CollectStep {
	s := &CollectStep{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *CollectStep) Name() string {
	return "collect"
}

// Do collects sources. Sources already present in the run, such as inline
// code, are kept in front of the collected files.
func (s *CollectStep) Do(_ context.Context, run *Run) error {
	collected, err := source.Collect(run.Targets, s.exclude)
	if err != nil {
		return err
	}
	run.Sources = append(run.Sources, collected...)
	if len(run.Sources) == 0 {
		return ErrNoSources
	}
	s.logger.Debug("sources collected", "count", len(run.Sources))
	return nil
}

// ExamineStep examines every source of the run with a BatchExaminer.
type ExamineStep struct {
	batch *BatchExaminer
}

// NewExamineStep creates a new examination step.
func NewExamineStep(batch *BatchExaminer) *ExamineStep {
	return &ExamineStep{batch: batch}
}

// Name returns the step name.
func (s *ExamineStep) Name() string {
	return "examine"
}

// Do examines the sources and stores the results in the run.
func (s *ExamineStep) Do(ctx context.Context, run *Run) error {
	examinations, err := s.batch.ExamineAll(ctx, run.Sources)
	if err != nil {
		return fmt.Errorf("examination interrupted: %w", err)
	}
	run.Examinations = examinations
	return nil
}

// RunSaver stores the examinations of a run. *database.SmellDB satisfies it.
type RunSaver interface {
	SaveRun(ctx context.Context, examinations []*model.Examination) (int64, error)
}

// SaveStep stores the run's examinations for later comparison.
type SaveStep struct {
	saver  RunSaver
	logger *slog.Logger
}

// NewSaveStep creates a new save step.
func NewSaveStep(saver RunSaver, logger *slog.Logger) *SaveStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &SaveStep{saver: saver, logger: logger}
}

// Name returns the step name.
func (s *SaveStep) Name() string {
	return "save"
}

// Do saves the run and records its ID.
func (s *SaveStep) Do(ctx context.Context, run *Run) error {
	runID, err := s.saver.SaveRun(ctx, run.Examinations)
	if err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}
	run.RunID = runID
	s.logger.Debug("results saved", "run_id", runID, "examinations", len(run.Examinations))
	return nil
}

// ReportStep writes the run's examinations with a report.
type ReportStep struct {
	report report.Report
}

// NewReportStep creates a new report step.
func NewReportStep(r report.Report) *ReportStep {
	return &ReportStep{report: r}
}

// Name returns the step name.
func (s *ReportStep) Name() string {
	return "report"
}

// Do adds every completed examination to the report and shows it.
// Failed examinations are left out; their errors were already logged.
func (s *ReportStep) Do(_ context.Context, run *Run) error {
	for _, e := range run.Examinations {
		if e == nil || e.Error != "" {
			continue
		}
		s.report.AddResult(e)
	}
	return s.report.Show()
}
