package scan

import (
	"fmt"

	"github.com/arloliu/mdkey/errs"
)

// DefaultBatchSize bounds a collected batch when the task does not specify a
// limit.
const DefaultBatchSize = 4096

// Collector produces a batch of result rows from an upstream scan source.
//
// Implementations return at most limit rows; an empty batch with a nil error
// means the source is exhausted.
type Collector interface {
	Collect(src Source, limit int) ([]Row, error)
}

// Option configures a collector.
type Option func(*collectorConfig)

type collectorConfig struct {
	clock Clock
	stats *Stats
}

func newCollectorConfig(opts []Option) collectorConfig {
	cfg := collectorConfig{clock: SystemClock()}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithClock injects the clock used for timing statistics. Defaults to the
// system clock.
func WithClock(clock Clock) Option {
	return func(cfg *collectorConfig) {
		cfg.clock = clock
	}
}

// WithStats injects the stats accumulator batches are recorded to. Defaults
// to none.
func WithStats(stats *Stats) Option {
	return func(cfg *collectorConfig) {
		cfg.stats = stats
	}
}

// RawCollector drains rows from the source in bounded batches without
// rewriting their keys. Use it directly when the block's schema already
// matches the query's latest schema, or as the base of a
// RestructureCollector when it does not.
type RawCollector struct {
	clock Clock
	stats *Stats
}

var _ Collector = (*RawCollector)(nil)

// NewRawCollector creates a collector that passes row keys through untouched.
func NewRawCollector(opts ...Option) *RawCollector {
	cfg := newCollectorConfig(opts)

	return &RawCollector{clock: cfg.clock, stats: cfg.stats}
}

// Collect consumes up to limit rows from the source. A non-positive limit
// falls back to DefaultBatchSize.
func (c *RawCollector) Collect(src Source, limit int) ([]Row, error) {
	if limit <= 0 {
		limit = DefaultBatchSize
	}

	start := c.clock.Now()
	rows := make([]Row, 0, limit)
	for len(rows) < limit {
		row, ok := src.Next()
		if !ok {
			break
		}
		rows = append(rows, row)
	}
	c.stats.RecordBatch(len(rows), c.clock.Since(start))

	return rows, nil
}

// RestructureCollector decorates a base collector with row key
// reconciliation: it delegates batch production, then rewrites each row's
// surrogate key and raw value array to the latest schema shape in place.
//
// The surrogate and raw rewrite passes each run only when the respective
// newly-added dimension count is nonzero, so a schema with every dimension
// present costs nothing beyond the base collector.
type RestructureCollector struct {
	base  Collector
	rec   *Reconciler
	clock Clock
	stats *Stats
}

var _ Collector = (*RestructureCollector)(nil)

// NewRestructureCollector wraps base with the reconciler. Both are required.
func NewRestructureCollector(base Collector, rec *Reconciler, opts ...Option) (*RestructureCollector, error) {
	if base == nil {
		return nil, errs.ErrNilCollector
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: reconciler is nil", errs.ErrNilCollector)
	}

	cfg := newCollectorConfig(opts)

	return &RestructureCollector{base: base, rec: rec, clock: cfg.clock, stats: cfg.stats}, nil
}

// Collect produces a batch through the base collector and reconciles every
// row in it. Rows are mutated in place; a reconciliation error aborts the
// batch and fails the task.
func (c *RestructureCollector) Collect(src Source, limit int) ([]Row, error) {
	start := c.clock.Now()

	rows, err := c.base.Collect(src, limit)
	if err != nil {
		return nil, err
	}

	if c.rec.AddedSurrogateCount() > 0 {
		for i := range rows {
			if err := c.rec.ReconcileSurrogateKey(&rows[i]); err != nil {
				return nil, err
			}
		}
	}
	if c.rec.AddedRawCount() > 0 {
		for i := range rows {
			if err := c.rec.ReconcileRawValues(&rows[i]); err != nil {
				return nil, err
			}
		}
	}

	c.stats.RecordBatch(len(rows), c.clock.Since(start))

	return rows, nil
}
