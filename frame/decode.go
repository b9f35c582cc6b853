package frame

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/nativecql/cql/primitive"
)

func (c *codec) DecodeFrame(source io.Reader) (*Frame, error) {
	header, err := c.DecodeHeader(source)
	if err != nil {
		return nil, fmt.Errorf("cannot decode frame header: %w", err)
	}
	body, err := c.DecodeBody(header, source)
	if err != nil {
		return nil, fmt.Errorf("cannot decode frame body: %w", err)
	}
	return &Frame{Header: header, Body: body}, nil
}

func (c *codec) DecodeRawFrame(source io.Reader) (*RawFrame, error) {
	header, err := c.DecodeHeader(source)
	if err != nil {
		return nil, fmt.Errorf("cannot decode frame header: %w", err)
	}
	body, err := c.DecodeRawBody(header, source)
	if err != nil {
		return nil, fmt.Errorf("cannot read frame body: %w", err)
	}
	return &RawFrame{Header: header, Body: body}, nil
}

func (c *codec) DecodeHeader(source io.Reader) (*Header, error) {
	versionByte, err := primitive.ReadByte(source)
	if err != nil {
		return nil, fmt.Errorf("cannot decode header version and direction: %w", err)
	}
	version := primitive.Version(versionByte)
	if !version.IsValid() {
		return nil, NewVersionErr(fmt.Sprintf("unsupported protocol version: %v", version), version)
	}
	header := &Header{IsResponse: version.IsResponse(), Version: version}

	flags, err := primitive.ReadByte(source)
	if err != nil {
		return nil, fmt.Errorf("cannot decode header flags: %w", err)
	}
	header.Flags = primitive.HeaderFlag(flags)

	if header.StreamId, err = primitive.ReadStreamId(source); err != nil {
		return nil, fmt.Errorf("cannot decode header stream id: %w", err)
	}
	opCode, err := primitive.ReadByte(source)
	if err != nil {
		return nil, fmt.Errorf("cannot decode header opcode: %w", err)
	}
	header.OpCode = primitive.OpCode(opCode)
	if header.BodyLength, err = primitive.ReadInt(source); err != nil {
		return nil, fmt.Errorf("cannot decode header body length: %w", err)
	}

	if err := primitive.CheckValidOpCode(header.OpCode); err != nil {
		return nil, err
	}
	if header.IsResponse {
		if err := primitive.CheckResponseOpCode(header.OpCode); err != nil {
			return nil, err
		}
	} else if err := primitive.CheckRequestOpCode(header.OpCode); err != nil {
		return nil, err
	}
	return header, nil
}

func (c *codec) DecodeBody(header *Header, source io.Reader) (*Body, error) {
	if header.Flags.Contains(primitive.HeaderFlagCompressed) {
		if c.compressor == nil {
			return nil, errors.New("cannot decompress body: no compressor available")
		}
		var decompressed bytes.Buffer
		if err := c.compressor.Decompress(io.LimitReader(source, int64(header.BodyLength)), &decompressed); err != nil {
			return nil, fmt.Errorf("cannot decompress body: %w", err)
		}
		source = &decompressed
	}

	body := &Body{}
	var err error
	if header.IsResponse && header.Flags.Contains(primitive.HeaderFlagTracing) {
		if body.TracingId, err = primitive.ReadUuid(source); err != nil {
			return nil, fmt.Errorf("cannot decode body tracing id: %w", err)
		}
	}
	if header.Flags.Contains(primitive.HeaderFlagCustomPayload) {
		if body.CustomPayload, err = primitive.ReadBytesMap(source); err != nil {
			return nil, fmt.Errorf("cannot decode body custom payload: %w", err)
		}
	}
	if header.IsResponse && header.Flags.Contains(primitive.HeaderFlagWarning) {
		if body.Warnings, err = primitive.ReadStringList(source); err != nil {
			return nil, fmt.Errorf("cannot decode body warnings: %w", err)
		}
	}
	decoder, err := c.findMessageCodec(header.OpCode)
	if err != nil {
		return nil, err
	}
	if body.Message, err = decoder.Decode(source); err != nil {
		return nil, fmt.Errorf("cannot decode body message: %w", err)
	}
	return body, nil
}

func (c *codec) DecodeRawBody(header *Header, source io.Reader) ([]byte, error) {
	if header.BodyLength < 0 {
		return nil, fmt.Errorf("invalid body length: %d", header.BodyLength)
	}
	if header.BodyLength == 0 {
		return []byte{}, nil
	}
	count := int64(header.BodyLength)
	buf := bytes.NewBuffer(make([]byte, 0, count))
	if _, err := io.CopyN(buf, source, count); err != nil {
		return nil, fmt.Errorf("cannot decode raw body: %w", err)
	}
	return buf.Bytes(), nil
}

// DiscardBody skips past an undecoded body, seeking directly when the source supports it and copying to
// io.Discard otherwise.
func (c *codec) DiscardBody(header *Header, source io.Reader) error {
	if header.BodyLength < 0 {
		return fmt.Errorf("invalid body length: %d", header.BodyLength)
	}
	if header.BodyLength == 0 {
		return nil
	}
	count := int64(header.BodyLength)
	var err error
	if s, ok := source.(io.Seeker); ok {
		_, err = s.Seek(count, io.SeekCurrent)
	} else {
		_, err = io.CopyN(io.Discard, source, count)
	}
	if err != nil {
		return fmt.Errorf("cannot discard body: %w", err)
	}
	return nil
}
