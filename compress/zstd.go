package compress

// ZstdCompressor favors compression ratio over speed, a fit for key frames
// that are retained across a long-running merge or shipped over the network.
//
// Two implementations exist behind the cgo_zstd build tag: the default pure
// Go implementation (klauspost/compress/zstd) and a cgo binding (gozstd) for
// deployments that want libzstd's throughput.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
