package scan

import (
	"sync/atomic"
	"time"
)

// Clock abstracts wall-clock time so collectors can record preparation time
// without unit tests depending on real time.
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

type systemClock struct{}

func (systemClock) Now() time.Time                  { return time.Now() }
func (systemClock) Since(t time.Time) time.Duration { return time.Since(t) }

// SystemClock returns the real wall clock.
func SystemClock() Clock {
	return systemClock{}
}

// Stats accumulates scan-side counters for one query. All methods are safe
// for concurrent use by parallel block tasks and are no-ops on a nil
// receiver, so collectors never need to nil-check.
type Stats struct {
	rows         atomic.Int64
	batches      atomic.Int64
	resultPrepNs atomic.Int64
}

// RecordBatch records one collected batch and the time spent preparing it.
func (s *Stats) RecordBatch(rows int, prep time.Duration) {
	if s == nil {
		return
	}
	s.rows.Add(int64(rows))
	s.batches.Add(1)
	s.resultPrepNs.Add(prep.Nanoseconds())
}

// Rows returns the total number of rows collected.
func (s *Stats) Rows() int64 {
	if s == nil {
		return 0
	}

	return s.rows.Load()
}

// Batches returns the number of batches collected.
func (s *Stats) Batches() int64 {
	if s == nil {
		return 0
	}

	return s.batches.Load()
}

// ResultPrepTime returns the accumulated batch preparation time.
func (s *Stats) ResultPrepTime() time.Duration {
	if s == nil {
		return 0
	}

	return time.Duration(s.resultPrepNs.Load())
}
