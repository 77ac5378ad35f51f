// Package presence records, for one (block schema, latest schema) pair, which
// latest-schema dimensions physically exist in the block and what default
// value each absent dimension takes.
//
// A Map is built once per (query, block) task — either directly by the query
// planner through a Builder, or derived from the two snapshots with
// FromSnapshots — and is read-only afterwards, so it may be shared by anything
// scanning the same block. Existence flags are kept in a roaring bitmap; one
// entry exists per latest-schema dimension, including implicit ones.
//
// Defaults resolve in two steps: an explicit default configured for the
// dimension wins; otherwise surrogate dimensions fall back to the null
// surrogate constant, text-typed raw dimensions to the null member sentinel
// bytes, and all other raw dimensions to empty bytes.
package presence
