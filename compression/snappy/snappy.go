// Package snappy adapts github.com/golang/snappy to the frame.BodyCompressor interface. Unlike LZ4, snappy's wire
// format is already self-describing (it carries its own decompressed length), so no extra framing is needed here.
package snappy

import (
	"bytes"
	"fmt"
	"io"

	"github.com/golang/snappy"
)

// BodyCompressor implements frame.BodyCompressor using the snappy block format.
type BodyCompressor struct{}

func (BodyCompressor) Algorithm() string {
	return "SNAPPY"
}

func (BodyCompressor) Compress(source io.Reader, dest io.Writer) error {
	uncompressed, err := readAll(source)
	if err != nil {
		return fmt.Errorf("cannot read uncompressed body: %w", err)
	}
	if _, err := dest.Write(snappy.Encode(nil, uncompressed)); err != nil {
		return fmt.Errorf("cannot write compressed body: %w", err)
	}
	return nil
}

func (BodyCompressor) Decompress(source io.Reader, dest io.Writer) error {
	compressed, err := readAll(source)
	if err != nil {
		return fmt.Errorf("cannot read compressed body: %w", err)
	}
	decompressed, err := snappy.Decode(nil, compressed)
	if err != nil {
		return fmt.Errorf("cannot decompress body: %w", err)
	}
	if _, err := dest.Write(decompressed); err != nil {
		return fmt.Errorf("cannot write decompressed body: %w", err)
	}
	return nil
}

func readAll(source io.Reader) ([]byte, error) {
	if buf, ok := source.(*bytes.Buffer); ok {
		return buf.Bytes(), nil
	}
	return io.ReadAll(source)
}
