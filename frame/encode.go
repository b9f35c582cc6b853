package frame

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/nativecql/cql/primitive"
)

func (c *codec) EncodeFrame(frame *Frame, dest io.Writer) error {
	if frame.Header.Flags.Contains(primitive.HeaderFlagCompressed) {
		return c.encodeFrameCompressed(frame, dest)
	}
	return c.encodeFrameUncompressed(frame, dest)
}

func (c *codec) encodeFrameUncompressed(frame *Frame, dest io.Writer) error {
	length, err := c.uncompressedBodyLength(frame.Header, frame.Body)
	if err != nil {
		return fmt.Errorf("cannot compute length of uncompressed message body: %w", err)
	}
	frame.Header.BodyLength = int32(length)
	if err := c.EncodeHeader(frame.Header, dest); err != nil {
		return fmt.Errorf("cannot encode frame header: %w", err)
	}
	if err := c.EncodeBody(frame.Header, frame.Body, dest); err != nil {
		return fmt.Errorf("cannot encode frame body: %w", err)
	}
	return nil
}

// encodeFrameCompressed encodes the body into a scratch buffer first, since the header's body length must reflect
// the compressed size and that size is unknown until compression runs.
func (c *codec) encodeFrameCompressed(frame *Frame, dest io.Writer) error {
	var compressedBody bytes.Buffer
	if err := c.EncodeBody(frame.Header, frame.Body, &compressedBody); err != nil {
		return fmt.Errorf("cannot encode frame body: %w", err)
	}
	frame.Header.BodyLength = int32(compressedBody.Len())
	if err := c.EncodeHeader(frame.Header, dest); err != nil {
		return fmt.Errorf("cannot encode frame header: %w", err)
	}
	if _, err := compressedBody.WriteTo(dest); err != nil {
		return fmt.Errorf("cannot concat frame body to frame header: %w", err)
	}
	return nil
}

func (c *codec) EncodeRawFrame(frame *RawFrame, dest io.Writer) error {
	if !frame.Header.Version.IsValid() {
		return NewVersionErr(fmt.Sprintf("unsupported protocol version: %v", frame.Header.Version), frame.Header.Version)
	}
	frame.Header.BodyLength = int32(len(frame.Body))
	if err := c.EncodeHeader(frame.Header, dest); err != nil {
		return fmt.Errorf("cannot encode raw header: %w", err)
	}
	if _, err := dest.Write(frame.Body); err != nil {
		return fmt.Errorf("cannot write raw body: %w", err)
	}
	return nil
}

func (c *codec) EncodeHeader(header *Header, dest io.Writer) error {
	if !header.Version.IsValid() {
		return NewVersionErr(fmt.Sprintf("unsupported protocol version: %v", header.Version), header.Version)
	}
	if err := primitive.WriteByte(uint8(header.Version), dest); err != nil {
		return fmt.Errorf("cannot encode header version and direction: %w", err)
	}
	if err := primitive.WriteByte(uint8(header.Flags), dest); err != nil {
		return fmt.Errorf("cannot encode header flags: %w", err)
	}
	if err := primitive.WriteStreamId(header.StreamId, dest); err != nil {
		return fmt.Errorf("cannot encode header stream id: %w", err)
	}
	if err := primitive.WriteByte(uint8(header.OpCode), dest); err != nil {
		return fmt.Errorf("cannot encode header opcode: %w", err)
	}
	if err := primitive.WriteInt(header.BodyLength, dest); err != nil {
		return fmt.Errorf("cannot encode header body length: %w", err)
	}
	return nil
}

func (c *codec) EncodeBody(header *Header, body *Body, dest io.Writer) error {
	if header.OpCode != body.Message.GetOpCode() {
		return fmt.Errorf("opcode mismatch between header and body: %d != %d", header.OpCode, body.Message.GetOpCode())
	}
	if !header.Flags.Contains(primitive.HeaderFlagCompressed) {
		return c.encodeBodyUncompressed(header, body, dest)
	}
	if c.compressor == nil {
		return errors.New("cannot compress body: no compressor available")
	}
	length, err := c.uncompressedBodyLength(header, body)
	if err != nil {
		return fmt.Errorf("cannot compute length of uncompressed message body: %w", err)
	}
	uncompressed := bytes.NewBuffer(make([]byte, 0, length))
	if err := c.encodeBodyUncompressed(header, body, uncompressed); err != nil {
		return fmt.Errorf("cannot encode body: %w", err)
	}
	if err := c.compressor.Compress(uncompressed, dest); err != nil {
		return fmt.Errorf("cannot compress body: %w", err)
	}
	return nil
}

func (c *codec) encodeBodyUncompressed(header *Header, body *Body, dest io.Writer) error {
	if header.Flags.Contains(primitive.HeaderFlagTracing) && body.Message.IsResponse() {
		if err := primitive.WriteUuid(body.TracingId, dest); err != nil {
			return fmt.Errorf("cannot encode body tracing id: %w", err)
		}
	}
	if header.Flags.Contains(primitive.HeaderFlagCustomPayload) {
		if err := primitive.WriteBytesMap(body.CustomPayload, dest); err != nil {
			return fmt.Errorf("cannot encode body custom payload: %w", err)
		}
	}
	if header.Flags.Contains(primitive.HeaderFlagWarning) {
		if err := primitive.WriteStringList(body.Warnings, dest); err != nil {
			return fmt.Errorf("cannot encode body warnings: %w", err)
		}
	}
	encoder, err := c.findMessageCodec(body.Message.GetOpCode())
	if err != nil {
		return err
	}
	if err := encoder.Encode(body.Message, dest); err != nil {
		return fmt.Errorf("cannot encode body message: %w", err)
	}
	return nil
}

func (c *codec) uncompressedBodyLength(header *Header, body *Body) (int, error) {
	encoder, err := c.findMessageCodec(body.Message.GetOpCode())
	if err != nil {
		return -1, err
	}
	length, err := encoder.EncodedLength(body.Message)
	if err != nil {
		return -1, fmt.Errorf("cannot compute message length: %w", err)
	}
	if header.Flags.Contains(primitive.HeaderFlagTracing) {
		length += primitive.LengthOfUuid
	}
	if header.Flags.Contains(primitive.HeaderFlagCustomPayload) {
		length += primitive.LengthOfBytesMap(body.CustomPayload)
	}
	if header.Flags.Contains(primitive.HeaderFlagWarning) {
		length += primitive.LengthOfStringList(body.Warnings)
	}
	return length, nil
}
