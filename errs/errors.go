package errs

import "errors"

// Configuration errors, detected at construction time.
var (
	// ErrCardinalityPartitionMismatch indicates the cardinality and partition-group
	// lists handed to a codec have different lengths.
	ErrCardinalityPartitionMismatch = errors.New("cardinality and partition lists have mismatched lengths")

	// ErrInvalidCardinality indicates a dimension declared a non-positive
	// cardinality without being marked unbounded.
	ErrInvalidCardinality = errors.New("invalid dimension cardinality")

	// ErrPresenceSizeMismatch indicates a presence map whose length differs from
	// the latest schema's dimension count.
	ErrPresenceSizeMismatch = errors.New("presence map size does not match schema dimension count")

	// ErrNilSnapshot indicates a nil schema snapshot was passed where one is required.
	ErrNilSnapshot = errors.New("schema snapshot is nil")

	// ErrNilCollector indicates a decorating collector was built without a base collector.
	ErrNilCollector = errors.New("base collector is nil")
)

// Encode errors.
var (
	// ErrSurrogateOutOfRange indicates a surrogate value does not fit the
	// bit-width assigned to its dimension.
	ErrSurrogateOutOfRange = errors.New("surrogate value out of range for dimension bit-width")

	// ErrValueCountMismatch indicates the number of values handed to Encode
	// differs from the codec's dimension count.
	ErrValueCountMismatch = errors.New("value count does not match codec dimension count")
)

// Decode errors.
var (
	// ErrInvalidKeyLength indicates a key byte sequence whose length differs from
	// the codec's fixed key length.
	ErrInvalidKeyLength = errors.New("key length does not match codec key length")

	// ErrInvalidRawValueCount indicates a row carries a different number of raw
	// values than the block schema declares.
	ErrInvalidRawValueCount = errors.New("raw value count does not match block schema")
)

// Key frame errors.
var (
	// ErrInvalidFrameSize indicates a frame shorter than its fixed header.
	ErrInvalidFrameSize = errors.New("invalid key frame size")

	// ErrInvalidMagicNumber indicates the frame header magic does not match.
	ErrInvalidMagicNumber = errors.New("invalid key frame magic number")

	// ErrUnsupportedFrameVersion indicates a frame version this build cannot read.
	ErrUnsupportedFrameVersion = errors.New("unsupported key frame version")

	// ErrFrameCorrupted indicates a frame payload that cannot be parsed back into
	// the declared number of row keys.
	ErrFrameCorrupted = errors.New("key frame payload corrupted")
)
