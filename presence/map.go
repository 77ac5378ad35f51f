package presence

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/arloliu/mdkey/errs"
	"github.com/arloliu/mdkey/schema"
)

const (
	// NullSurrogate is the surrogate id reserved for the null member. It is the
	// default for an absent surrogate dimension with no explicit default.
	NullSurrogate uint64 = 1

	// NullMemberValue is the canonical null member sentinel. Its UTF-8 bytes
	// are the default for an absent text-typed raw dimension with no explicit
	// default.
	NullMemberValue = "@NU#LL$!"
)

// emptyValue is the default for absent non-text raw dimensions. Shared and
// never mutated.
var emptyValue = []byte{}

// Map is the read-only presence record of one (block schema, latest schema)
// pair. Construct it with a Builder or FromSnapshots.
type Map struct {
	size              int
	exists            *roaring.Bitmap
	surrogateDefaults []uint64
	hasSurrogate      []bool
	rawDefaults       [][]byte
}

// Builder accumulates presence flags and explicit defaults for a latest
// schema of a known dimension count.
type Builder struct {
	m *Map
}

// NewBuilder creates a builder for a latest schema with size dimensions.
// Every dimension starts out absent.
func NewBuilder(size int) *Builder {
	return &Builder{m: &Map{
		size:              size,
		exists:            roaring.New(),
		surrogateDefaults: make([]uint64, size),
		hasSurrogate:      make([]bool, size),
		rawDefaults:       make([][]byte, size),
	}}
}

// MarkPresent records that the latest-schema dimension at ordinal exists in
// the block.
func (b *Builder) MarkPresent(ordinal int) *Builder {
	b.m.exists.Add(uint32(ordinal)) //nolint: gosec

	return b
}

// SetSurrogateDefault records an explicit surrogate default for an absent
// dimension.
func (b *Builder) SetSurrogateDefault(ordinal int, value uint64) *Builder {
	b.m.surrogateDefaults[ordinal] = value
	b.m.hasSurrogate[ordinal] = true

	return b
}

// SetRawDefault records an explicit raw byte default for an absent dimension.
// The value is stored as-is and must not be mutated afterwards.
func (b *Builder) SetRawDefault(ordinal int, value []byte) *Builder {
	b.m.rawDefaults[ordinal] = value

	return b
}

// Build finalizes the map. The builder must not be reused afterwards.
func (b *Builder) Build() *Map {
	return b.m
}

// FromSnapshots derives the presence map by matching latest-schema dimensions
// against the block schema by name and encoding kind. No explicit defaults are
// set; absent dimensions take the typed fallbacks.
func FromSnapshots(block, latest *schema.Snapshot) (*Map, error) {
	if block == nil || latest == nil {
		return nil, fmt.Errorf("%w: presence map needs both block and latest snapshots", errs.ErrNilSnapshot)
	}

	inBlock := make(map[string]schema.EncodingKind, block.Len())
	for _, d := range block.Dimensions() {
		inBlock[d.Name] = d.Kind
	}

	builder := NewBuilder(latest.Len())
	for i, d := range latest.Dimensions() {
		if kind, ok := inBlock[d.Name]; ok && kind == d.Kind {
			builder.MarkPresent(i)
		}
	}

	return builder.Build(), nil
}

// Len returns the number of entries, one per latest-schema dimension.
func (m *Map) Len() int {
	return m.size
}

// Present reports whether the latest-schema dimension at ordinal exists in
// the block.
func (m *Map) Present(ordinal int) bool {
	return m.exists.Contains(uint32(ordinal)) //nolint: gosec
}

// AbsentCount returns the number of latest-schema dimensions missing from the
// block.
func (m *Map) AbsentCount() int {
	return m.size - int(m.exists.GetCardinality()) //nolint: gosec
}

// SurrogateDefault returns the surrogate value an absent dimension takes: the
// explicit default if one was configured, else NullSurrogate.
func (m *Map) SurrogateDefault(ordinal int) uint64 {
	if m.hasSurrogate[ordinal] {
		return m.surrogateDefaults[ordinal]
	}

	return NullSurrogate
}

// RawDefault returns the byte value an absent raw dimension takes: the
// explicit default if one was configured, else the null member sentinel bytes
// for text-like types, else empty bytes. The returned slice must not be
// mutated.
func (m *Map) RawDefault(ordinal int, dataType schema.DataType) []byte {
	if v := m.rawDefaults[ordinal]; v != nil {
		return v
	}
	if dataType.IsText() {
		return []byte(NullMemberValue)
	}

	return emptyValue
}
