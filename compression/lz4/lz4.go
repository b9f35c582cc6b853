// Package lz4 adapts github.com/pierrec/lz4/v4 to the frame.BodyCompressor interface.
package lz4

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

// BodyCompressor implements frame.BodyCompressor using the LZ4 block format. Cassandra's wire format prefixes every
// compressed body with a 4-byte big-endian length of the decompressed payload, a framing detail the underlying
// library leaves to its caller.
type BodyCompressor struct{}

func (BodyCompressor) Algorithm() string {
	return "LZ4"
}

func (BodyCompressor) Compress(source io.Reader, dest io.Writer) error {
	uncompressed, err := readAll(source)
	if err != nil {
		return fmt.Errorf("cannot read uncompressed body: %w", err)
	}
	// 4 bytes for the decompressed length prefix, plus the worst-case compressed block size
	out := make([]byte, 4+lz4.CompressBlockBound(len(uncompressed)))
	binary.BigEndian.PutUint32(out, uint32(len(uncompressed)))
	// CompressBlock writes a single byte and reports written = 1 for an empty input; that's the encoding
	// Cassandra expects for an empty compressed body, not an error case.
	written, err := lz4.CompressBlock(uncompressed, out[4:], nil)
	if err != nil {
		return fmt.Errorf("cannot compress body: %w", err)
	}
	if _, err := dest.Write(out[:4+written]); err != nil {
		return fmt.Errorf("cannot write compressed body: %w", err)
	}
	return nil
}

func (BodyCompressor) Decompress(source io.Reader, dest io.Writer) error {
	var decompressedLength uint32
	if err := binary.Read(source, binary.BigEndian, &decompressedLength); err != nil {
		return fmt.Errorf("cannot read compressed length: %w", err)
	}
	if decompressedLength == 0 {
		// the single placeholder byte CompressBlock wrote for an empty body must still be drained
		if _, err := io.CopyN(io.Discard, source, 1); err != nil {
			return fmt.Errorf("cannot read empty body: %w", err)
		}
		return nil
	}
	compressed, err := readAll(source)
	if err != nil {
		return fmt.Errorf("cannot read compressed body: %w", err)
	}
	decompressed, written, err := uncompressGrowing(compressed)
	if err != nil {
		return fmt.Errorf("cannot decompress body: %w", err)
	}
	if written != int(decompressedLength) {
		return fmt.Errorf("decompressed length mismatch, expected %d, got: %d", decompressedLength, written)
	}
	if _, err := dest.Write(decompressed[:written]); err != nil {
		return fmt.Errorf("cannot write decompressed body: %w", err)
	}
	return nil
}

// uncompressGrowing retries UncompressBlock against successively larger buffers, since the library offers no way
// to learn the decompressed size up front beyond the length prefix already consumed by the caller.
func uncompressGrowing(compressed []byte) (buf []byte, written int, err error) {
	for size := len(compressed) * 2; size <= len(compressed)*8; size *= 2 {
		buf = make([]byte, size)
		if written, err = lz4.UncompressBlock(compressed, buf); err == nil {
			return buf, written, nil
		}
	}
	return nil, 0, err
}

func readAll(source io.Reader) ([]byte, error) {
	if buf, ok := source.(*bytes.Buffer); ok {
		return buf.Bytes(), nil
	}
	return io.ReadAll(source)
}
