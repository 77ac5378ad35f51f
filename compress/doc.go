// Package compress provides the compression codecs applied to key frame
// payloads.
//
// A key frame carries a batch of reconciled row keys between scan stages. Its
// payload is a run of length-prefixed byte values that repeat heavily across
// rows (surrogate keys of neighboring rows share most of their bytes), so
// even fast codecs compress it well. The frame header records which codec was
// used; the decoder looks the codec up by that type.
//
// Four algorithms are supported:
//
//   - None: bypass, for frames that never leave the process
//   - Zstd: best ratio, for spills kept around or shipped over the network
//   - S2: balanced ratio and speed
//   - LZ4: fastest decompression
//
// All codecs are stateless values safe for concurrent use; implementations
// that benefit from reusable internal state draw it from sync.Pool.
package compress
