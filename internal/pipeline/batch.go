package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/smellscan/internal/config"
	"github.com/nao1215/smellscan/internal/model"
	"github.com/nao1215/smellscan/internal/source"
	"golang.org/x/sync/errgroup"
)

// Examiner examines a single source. *examiner.Examiner satisfies it.
type Examiner interface {
	Examine(src source.Source) (*model.Examination, error)
}

// BatchExaminer examines many sources concurrently.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because errgroup already bounds the number of running goroutines and
// propagates cancellation.
type BatchExaminer struct {
	// examiner is shared by all goroutines and must be safe for
	// concurrent use.
	examiner Examiner

	// concurrency is the maximum number of concurrent examinations.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchExaminer.
type BatchOption func(*BatchExaminer)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchExaminer) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent examinations.
// Non-positive values keep the default of config.DefaultBatchSize.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchExaminer) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchExaminer creates a new BatchExaminer.
func NewBatchExaminer(examiner Examiner, opts ...BatchOption) *BatchExaminer {
	be := &BatchExaminer{
		examiner:    examiner,
		concurrency: config.DefaultBatchSize,
	}
	for _, opt := range opts {
		opt(be)
	}
	if be.logger == nil {
		be.logger = slog.Default()
	}
	return be
}

// ExamineAll examines every source and returns one examination per source,
// in source order. A source that fails to read or parse does not stop the
// batch: its examination carries the error message and no smells.
//
// The returned error is non-nil only when ctx is cancelled; examinations of
// sources that never started are nil in that case.
func (be *BatchExaminer) ExamineAll(ctx context.Context, sources []source.Source) ([]*model.Examination, error) {
	results := make([]*model.Examination, len(sources))
	err := be.ExamineAllWithCallback(ctx, sources, func(e *model.Examination, index int) {
		results[index] = e
	})
	return results, err
}

// ExamineAllWithCallback examines every source and calls callback for each
// completed examination with the index of its source. The callback is called
// from the examining goroutine; distinct indexes never race.
func (be *BatchExaminer) ExamineAllWithCallback(
	ctx context.Context,
	sources []source.Source,
	callback func(e *model.Examination, index int),
) error {
	be.logger.Debug("starting batch examination",
		"total_sources", len(sources),
		"concurrency", be.concurrency,
	)
	startTime := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(be.concurrency)

	for i, src := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			e, err := be.examiner.Examine(src)
			if err != nil {
				be.logger.Warn("examination failed",
					"source", src.Description(),
					"error", err,
				)
				// Recorded in the examination so the other sources still run.
				e = model.NewExamination(src.Description(), nil)
				e.Error = err.Error()
			}
			callback(e, i)
			return nil
		})
	}

	err := g.Wait()
	be.logger.Debug("batch examination complete",
		"total_sources", len(sources),
		"elapsed", time.Since(startTime),
	)
	return err
}
