package scan

import (
	"fmt"

	"github.com/arloliu/mdkey/errs"
	"github.com/arloliu/mdkey/keycodec"
	"github.com/arloliu/mdkey/presence"
	"github.com/arloliu/mdkey/schema"
)

// rawDim is one raw dimension of the latest schema, pre-resolved so the
// per-row loop does not re-scan the snapshot.
type rawDim struct {
	ordinal  int
	dataType schema.DataType
	present  bool
}

// surrogateDim mirrors rawDim for surrogate dimensions.
type surrogateDim struct {
	ordinal int
	present bool
}

// Reconciler rewrites one block's row keys into the latest schema shape. It
// owns two key codecs: one built from the block's physical surrogate layout
// and one from the latest schema, where every newly added surrogate dimension
// gets an unbounded 32-bit field in its own partition.
//
// A reconciler belongs to a single (query, block) task and is used from one
// goroutine; its codecs and presence map are immutable and may be shared.
type Reconciler struct {
	pres *presence.Map

	blockCodec  *keycodec.Codec
	latestCodec *keycodec.Codec

	surrogates []surrogateDim
	raws       []rawDim

	blockRawCount   int
	addedSurrogates int
	addedRaws       int

	oldValues []uint64
	newValues []uint64
}

// ReconcilerOption configures a Reconciler.
type ReconcilerOption func(*reconcilerConfig)

type reconcilerConfig struct {
	cache *keycodec.Cache
}

// WithCodecCache makes the reconciler obtain its block codec from the shared
// cache instead of building a private one, so parallel tasks over blocks with
// identical physical schemas share a single codec instance.
func WithCodecCache(cache *keycodec.Cache) ReconcilerOption {
	return func(cfg *reconcilerConfig) {
		cfg.cache = cache
	}
}

// NewReconciler builds the reconciler for one (block schema, latest schema)
// pair. The presence map must carry one entry per latest-schema dimension.
//
// Errors are configuration errors: nil snapshots, presence map size mismatch,
// a presence map marking more surrogate or raw dimensions present than the
// block physically stores, or invalid cardinalities in either snapshot.
func NewReconciler(block, latest *schema.Snapshot, pres *presence.Map, opts ...ReconcilerOption) (*Reconciler, error) {
	if block == nil || latest == nil {
		return nil, fmt.Errorf("%w: reconciler needs both block and latest snapshots", errs.ErrNilSnapshot)
	}
	if pres == nil || pres.Len() != latest.Len() {
		got := 0
		if pres != nil {
			got = pres.Len()
		}

		return nil, fmt.Errorf("%w: presence map has %d entries, latest schema has %d dimensions",
			errs.ErrPresenceSizeMismatch, got, latest.Len())
	}

	var cfg reconcilerConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &Reconciler{pres: pres, blockRawCount: block.RawCount()}

	blockSurrogates := block.Surrogates()

	var err error
	if len(blockSurrogates) > 0 {
		if cfg.cache != nil {
			r.blockCodec, err = cfg.cache.ForSnapshot(block)
		} else {
			r.blockCodec, err = keycodec.FromSnapshot(block)
		}
		if err != nil {
			return nil, err
		}
	}

	// Build the latest codec field list: present dimensions keep the block's
	// physical cardinality and partition assignment, newly added dimensions
	// get an unbounded 32-bit field in a fresh single-column partition.
	var latestFields []keycodec.Field
	consumed := 0
	presentRaws := 0
	freshGroup := -1
	for _, d := range latest.Dimensions() {
		switch d.Kind {
		case schema.KindSurrogate:
			sd := surrogateDim{ordinal: d.Ordinal, present: pres.Present(d.Ordinal)}
			r.surrogates = append(r.surrogates, sd)
			if sd.present {
				if consumed >= len(blockSurrogates) {
					return nil, fmt.Errorf("%w: presence map marks more surrogate dimensions present than block stores (%d)",
						errs.ErrPresenceSizeMismatch, len(blockSurrogates))
				}
				bd := blockSurrogates[consumed]
				consumed++
				latestFields = append(latestFields, keycodec.Field{
					Cardinality:    bd.Cardinality,
					PartitionGroup: bd.PartitionGroup,
				})
			} else {
				r.addedSurrogates++
				latestFields = append(latestFields, keycodec.Field{
					Cardinality:    schema.Unbounded(),
					PartitionGroup: freshGroup,
				})
				freshGroup--
			}
		case schema.KindRaw:
			rd := rawDim{ordinal: d.Ordinal, dataType: d.Type, present: pres.Present(d.Ordinal)}
			r.raws = append(r.raws, rd)
			if rd.present {
				presentRaws++
				if presentRaws > r.blockRawCount {
					return nil, fmt.Errorf("%w: presence map marks more raw dimensions present than block stores (%d)",
						errs.ErrPresenceSizeMismatch, r.blockRawCount)
				}
			} else {
				r.addedRaws++
			}
		case schema.KindImplicit:
			// Implicit dimensions never occupy a slot in either key array.
		}
	}

	if len(latestFields) > 0 {
		r.latestCodec, err = keycodec.New(latestFields)
		if err != nil {
			return nil, err
		}
		r.newValues = make([]uint64, len(latestFields))
	}
	if r.blockCodec != nil {
		r.oldValues = make([]uint64, r.blockCodec.NumDimensions())
	}

	return r, nil
}

// AddedSurrogateCount returns the number of latest-schema surrogate
// dimensions absent from the block.
func (r *Reconciler) AddedSurrogateCount() int {
	return r.addedSurrogates
}

// AddedRawCount returns the number of latest-schema raw dimensions absent
// from the block.
func (r *Reconciler) AddedRawCount() int {
	return r.addedRaws
}

// LatestKeyLength returns the fixed surrogate key length of the latest
// schema, or 0 when it has no surrogate dimensions.
func (r *Reconciler) LatestKeyLength() int {
	if r.latestCodec == nil {
		return 0
	}

	return r.latestCodec.KeyLength()
}

// LatestCodec returns the codec governing reconciled surrogate keys, or nil
// when the latest schema has no surrogate dimensions. Downstream consumers
// use it to decode keys this reconciler produced.
func (r *Reconciler) LatestCodec() *keycodec.Codec {
	return r.latestCodec
}

// ReconcileSurrogateKey rewrites the row's surrogate key in place to the
// latest schema shape, inserting defaults at the positions of newly added
// surrogate dimensions. When the latest schema has no surrogate dimensions,
// or none were added, the key bytes are left untouched.
//
// A key whose length does not match the block codec is a decode error and
// fails the task: it means the query plan and the physical block disagree.
func (r *Reconciler) ReconcileSurrogateKey(row *Row) error {
	if r.latestCodec == nil || r.addedSurrogates == 0 {
		return nil
	}

	if r.blockCodec != nil {
		if err := r.blockCodec.DecodeInto(r.oldValues, row.Key.Surrogate); err != nil {
			return err
		}
	}

	consumed := 0
	for i, sd := range r.surrogates {
		if sd.present {
			r.newValues[i] = r.oldValues[consumed]
			consumed++
		} else {
			r.newValues[i] = r.pres.SurrogateDefault(sd.ordinal)
		}
	}

	key, err := r.latestCodec.AppendEncoded(make([]byte, 0, r.latestCodec.KeyLength()), r.newValues)
	if err != nil {
		return err
	}
	row.Key.Surrogate = key

	return nil
}

// ReconcileRawValues replaces the row's raw value array with one shaped per
// the latest schema, inserting typed defaults at the positions of newly added
// raw dimensions. When none were added the array is left untouched.
func (r *Reconciler) ReconcileRawValues(row *Row) error {
	if r.addedRaws == 0 {
		return nil
	}
	if len(row.Key.Raw) != r.blockRawCount {
		return fmt.Errorf("%w: row has %d raw values, block schema has %d raw dimensions",
			errs.ErrInvalidRawValueCount, len(row.Key.Raw), r.blockRawCount)
	}

	values := make([][]byte, 0, len(r.raws))
	consumed := 0
	for _, rd := range r.raws {
		if rd.present {
			values = append(values, row.Key.Raw[consumed])
			consumed++
		} else {
			values = append(values, r.pres.RawDefault(rd.ordinal, rd.dataType))
		}
	}
	row.Key.Raw = values

	return nil
}
