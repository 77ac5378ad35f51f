// Package scan collects batches of scanned rows and reconciles their compact
// row keys to the query's latest schema when the block being scanned was
// written under an older, narrower schema.
//
// The building blocks compose rather than subclass:
//
//   - RawCollector drains rows from a Source in bounded batches without
//     touching their keys. It is the whole story for blocks whose schema
//     already matches the query.
//   - Reconciler rewrites one row's key: it decodes the surrogate key with the
//     block codec, inserts defaults at the positions of newly added
//     dimensions, re-encodes with the latest codec, and rewrites the raw
//     value array the same way.
//   - RestructureCollector decorates any Collector, delegating batch
//     production and then running the Reconciler over the batch. Rewrites are
//     skipped entirely when no dimension of the respective kind was added, so
//     an all-present schema costs nothing extra.
//   - Runner executes one scan task per (query, block) pair, tasks in
//     parallel, each task single-goroutine over its own collector.
//
// All detected errors reflect structural inconsistency between the query plan
// and the physical block; they fail the task and are never masked. Timing is
// captured through an injected Clock so tests run without real time.
package scan
