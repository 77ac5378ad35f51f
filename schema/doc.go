// Package schema describes the dimension layout of a table snapshot.
//
// A Snapshot is an ordered, immutable list of Dimension descriptors. Two
// snapshots matter during a scan: the block snapshot (what a physical segment
// stores) and the latest snapshot (what the running query expects). When a
// segment was written before columns were added, the two differ and each row's
// key must be reconciled to the latest shape; the scan package performs that
// remap and the keycodec package derives the bit-packed key layout from the
// snapshot's surrogate dimensions.
//
// Cardinality is a tagged value: either Known(n) for dictionary-bounded
// dimensions or Unbounded() for directly encoded dimensions whose id space is
// not bounded by an observed dictionary. Bit-width computation consumes the
// tag instead of comparing against a magic max-integer sentinel.
//
// Snapshots are safe for concurrent use once constructed.
package schema
