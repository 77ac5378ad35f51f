package scan

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Task is one scan unit: a single block's row source paired with the
// collector that produces its result batches. Each task runs on one
// goroutine; the collector, reconciler, and source it holds are not shared
// with other tasks.
type Task struct {
	// BlockID identifies the block for logs and error messages.
	BlockID string

	// Source streams the block's scanned rows.
	Source Source

	// Collector produces result batches from the source.
	Collector Collector

	// BatchSize bounds each collected batch. Non-positive values fall back to
	// DefaultBatchSize.
	BatchSize int

	// Sink receives each non-empty batch in order. A sink error fails the
	// task.
	Sink func(batch []Row) error
}

// Runner executes scan tasks for one query, at most Parallelism at a time.
type Runner struct {
	logger      *slog.Logger
	parallelism int
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the structured logger tasks report to. Defaults to
// slog.Default().
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithParallelism bounds the number of tasks running concurrently. Defaults
// to unbounded.
func WithParallelism(n int) RunnerOption {
	return func(r *Runner) {
		r.parallelism = n
	}
}

// NewRunner creates a task runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}

	return r
}

// Run executes all tasks and blocks until they finish. The first task failure
// cancels the remaining ones through the derived context; abandoned tasks
// simply stop collecting. The returned error is the first failure, wrapped
// with its block id.
func (r *Runner) Run(ctx context.Context, tasks []Task) error {
	group, ctx := errgroup.WithContext(ctx)
	if r.parallelism > 0 {
		group.SetLimit(r.parallelism)
	}

	for _, task := range tasks {
		task := task
		group.Go(func() error {
			if err := r.runTask(ctx, task); err != nil {
				r.logger.Error("scan task failed", "block", task.BlockID, "error", err)

				return fmt.Errorf("block %s: %w", task.BlockID, err)
			}

			return nil
		})
	}

	return group.Wait()
}

func (r *Runner) runTask(ctx context.Context, task Task) error {
	total := 0
	batches := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		batch, err := task.Collector.Collect(task.Source, task.BatchSize)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			break
		}

		total += len(batch)
		batches++
		if task.Sink != nil {
			if err := task.Sink(batch); err != nil {
				return err
			}
		}
	}

	r.logger.Debug("scan task finished", "block", task.BlockID, "rows", total, "batches", batches)

	return nil
}
