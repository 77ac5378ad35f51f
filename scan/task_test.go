package scan

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mdkey/errs"
	"github.com/arloliu/mdkey/rowkey"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunner_CollectsAllBlocks(t *testing.T) {
	block, latest, pres := evolvedSchemas(t)

	var mu sync.Mutex
	collected := make(map[string]int)
	sink := func(id string) func([]Row) error {
		return func(batch []Row) error {
			mu.Lock()
			defer mu.Unlock()
			collected[id] += len(batch)

			return nil
		}
	}

	tasks := make([]Task, 0, 3)
	for _, id := range []string{"blk-0", "blk-1", "blk-2"} {
		rec, err := NewReconciler(block, latest, pres)
		require.NoError(t, err)
		col, err := NewRestructureCollector(NewRawCollector(), rec)
		require.NoError(t, err)

		tasks = append(tasks, Task{
			BlockID:   id,
			Source:    NewSliceSource(makeRows(t, [][]uint64{{0, 0}, {1, 1}, {2, 2}})),
			Collector: col,
			BatchSize: 2,
			Sink:      sink(id),
		})
	}

	runner := NewRunner(WithLogger(discardLogger()), WithParallelism(2))
	require.NoError(t, runner.Run(context.Background(), tasks))

	require.Equal(t, map[string]int{"blk-0": 3, "blk-1": 3, "blk-2": 3}, collected)
}

func TestRunner_FailureCarriesBlockID(t *testing.T) {
	block, latest, pres := evolvedSchemas(t)
	rec, err := NewReconciler(block, latest, pres)
	require.NoError(t, err)
	col, err := NewRestructureCollector(NewRawCollector(), rec)
	require.NoError(t, err)

	tasks := []Task{{
		BlockID:   "blk-bad",
		Source:    NewSliceSource([]Row{{Key: rowkey.Key{Surrogate: []byte{0xC0}}}}),
		Collector: col,
	}}

	runner := NewRunner(WithLogger(discardLogger()))
	err = runner.Run(context.Background(), tasks)
	require.ErrorIs(t, err, errs.ErrInvalidKeyLength)
	require.ErrorContains(t, err, "blk-bad")
}

func TestRunner_SinkErrorFailsTask(t *testing.T) {
	sinkErr := errors.New("sink full")

	tasks := []Task{{
		BlockID:   "blk-0",
		Source:    NewSliceSource(makeRows(t, [][]uint64{{0, 0}})),
		Collector: NewRawCollector(),
		Sink:      func([]Row) error { return sinkErr },
	}}

	runner := NewRunner(WithLogger(discardLogger()))
	err := runner.Run(context.Background(), tasks)
	require.ErrorIs(t, err, sinkErr)
}

func TestRunner_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var sunk atomic.Int64
	tasks := []Task{{
		BlockID:   "blk-0",
		Source:    NewSliceSource(makeRows(t, [][]uint64{{0, 0}})),
		Collector: NewRawCollector(),
		Sink: func(batch []Row) error {
			sunk.Add(int64(len(batch)))

			return nil
		},
	}}

	runner := NewRunner(WithLogger(discardLogger()))
	err := runner.Run(ctx, tasks)
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, sunk.Load(), "canceled tasks do not deliver batches")
}

func TestRunner_NoTasks(t *testing.T) {
	runner := NewRunner(WithLogger(discardLogger()))
	require.NoError(t, runner.Run(context.Background(), nil))
}
