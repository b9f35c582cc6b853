package frame

import (
	"io"
)

// BodyCompressor implements one of the compression algorithms a STARTUP message can negotiate with the server
// (see message.Supported's COMPRESSION option). package compression/lz4 and package compression/snappy provide the
// two algorithms the wire protocol defines.
type BodyCompressor interface {
	// Algorithm names the algorithm, as it appears in the STARTUP COMPRESSION option (e.g. "LZ4", "SNAPPY").
	Algorithm() string

	// Compress reads source to exhaustion and writes the compressed body to dest.
	Compress(source io.Reader, dest io.Writer) error

	// Decompress reads source to exhaustion and writes the decompressed body to dest.
	Decompress(source io.Reader, dest io.Writer) error
}
