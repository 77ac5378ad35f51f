// Package errs defines the sentinel errors shared across mdkey packages.
//
// Errors fall into four groups that callers usually care about:
//
//   - Configuration errors (ErrCardinalityPartitionMismatch, ErrInvalidCardinality,
//     ErrPresenceSizeMismatch, ErrNilCollector, ErrNilSnapshot): raised while a
//     codec, presence map, or reconciler is being constructed, before any row is
//     processed. They indicate an inconsistency between the query plan and the
//     physical block and abort the scan task.
//
//   - Encode errors (ErrSurrogateOutOfRange, ErrValueCountMismatch): the values
//     handed to a codec do not fit its layout. Values are never silently
//     truncated.
//
//   - Decode errors (ErrInvalidKeyLength, ErrInvalidRawValueCount): a row's key
//     bytes or raw value array does not match the layout the codec was built
//     for.
//
//   - Key frame errors (ErrInvalidFrameSize, ErrInvalidMagicNumber,
//     ErrUnsupportedFrameVersion, ErrFrameCorrupted): a serialized key frame
//     cannot be parsed back into row keys.
//
// Call sites wrap these sentinels with context:
//
//	return fmt.Errorf("%w: dimension %d value %d exceeds %d bits",
//	    errs.ErrSurrogateOutOfRange, i, value, width)
//
// so callers can match with errors.Is while still getting a useful message.
package errs
