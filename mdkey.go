// Package mdkey implements the multi-dimension row key codec and the per-row
// key reconciliation a columnar storage engine needs to scan segments written
// under an older schema.
//
// When columns are added to a table after some segments were written, old
// segments encode fewer dimensions than the running query expects. At scan
// time each row's compact key is re-encoded to the latest schema shape,
// inserting default values at the positions of the newly added columns,
// without rewriting the underlying data. Downstream grouping, sorting, and
// equality operators then see keys bit-for-bit compatible with those from
// fully up-to-date segments.
//
// # Core Components
//
//   - keycodec: fixed-length bit-packed codec for surrogate dimension values,
//     preserving lexicographic order
//   - schema: immutable dimension snapshots with tagged cardinalities
//   - presence: per-(block, query) record of which latest-schema dimensions a
//     block stores, and the defaults for absent ones
//   - scan: batch collectors, the row key reconciler, and the parallel
//     per-block task runner
//   - rowkey: the typed compact key carried by each row
//   - keyframe: compressed serialization of reconciled key batches
//
// # Basic Usage
//
// Scanning one evolved block:
//
//	import "github.com/arloliu/mdkey"
//
//	pres, _ := presence.FromSnapshots(blockSchema, latestSchema)
//	collector, _ := mdkey.NewReconcilingCollector(blockSchema, latestSchema, pres)
//
//	for {
//	    batch, err := collector.Collect(source, 4096)
//	    if err != nil || len(batch) == 0 {
//	        break
//	    }
//	    // batch rows now carry latest-schema keys
//	}
//
// This package provides convenient top-level wrappers around the subpackages,
// simplifying the most common use cases. For fine-grained control, use the
// subpackages directly.
package mdkey

import (
	"github.com/arloliu/mdkey/keycodec"
	"github.com/arloliu/mdkey/presence"
	"github.com/arloliu/mdkey/scan"
	"github.com/arloliu/mdkey/schema"
)

// BuildCodec builds the bit-packed key codec for a snapshot's surrogate
// dimensions.
func BuildCodec(s *schema.Snapshot) (*keycodec.Codec, error) {
	return keycodec.FromSnapshot(s)
}

// NewReconcilingCollector builds the collector for one (query, block) scan
// task. When the presence map marks every latest-schema dimension present,
// the block needs no reconciliation and the plain raw collector is returned;
// otherwise the raw collector is wrapped with a restructuring one.
func NewReconcilingCollector(block, latest *schema.Snapshot, pres *presence.Map, opts ...scan.Option) (scan.Collector, error) {
	if pres != nil && pres.AbsentCount() == 0 {
		return scan.NewRawCollector(opts...), nil
	}

	rec, err := scan.NewReconciler(block, latest, pres)
	if err != nil {
		return nil, err
	}

	// The wrapper records stats for the whole batch; the base collector runs
	// without its own to avoid double counting.
	return scan.NewRestructureCollector(scan.NewRawCollector(), rec, opts...)
}
