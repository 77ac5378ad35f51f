package compress

// NoOpCompressor bypasses data without compression. Useful for frames that
// never leave the process and for baseline measurements.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns the input data directly without copying.
//
// The returned slice shares the input's memory; callers must not modify the
// input afterwards if they plan to use the result.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input data directly without copying.
//
// The returned slice shares the input's memory; callers must not modify the
// input afterwards if they plan to use the result.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
