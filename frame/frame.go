package frame

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/nativecql/cql/message"
	"github.com/nativecql/cql/primitive"
)

// Frame is a fully decoded frame: header plus a typed Body.
type Frame struct {
	Header *Header
	Body   *Body
}

// RawFrame is a frame whose body has been length-delimited and, if needed, decompressed, but not decoded into a
// message. Used by proxies and test harnesses that relay frames without understanding their payload.
type RawFrame struct {
	Header *Header
	Body   []byte
}

// Header is the 9-byte frame header.
type Header struct {
	IsResponse bool
	Version    primitive.Version
	Flags      primitive.HeaderFlag
	// StreamId pairs a response with the request that triggered it. The wire format calls it a [short], but it is
	// signed: server-initiated frames such as EVENT use negative stream ids.
	StreamId int16
	OpCode   primitive.OpCode
	// BodyLength is computed when encoding and populated exactly from the decoded length when decoding; callers
	// should not set it themselves.
	BodyLength int32
}

// Body carries the frame's optional trailers (tracing id, custom payload, warnings) alongside the decoded Message.
type Body struct {
	// TracingId is set only on response frames that opted into tracing.
	TracingId *primitive.UUID
	// CustomPayload is nil unless the CUSTOM_PAYLOAD flag is set.
	CustomPayload map[string][]byte
	// Warnings is non-empty only on response frames carrying the WARNING flag.
	Warnings []string
	Message  message.Message
}

// NewFrame builds a request or response Frame for msg, deriving the header's direction byte from
// msg.IsResponse().
func NewFrame(streamId int16, msg message.Message) *Frame {
	version := primitive.VersionRequest
	if msg.IsResponse() {
		version = primitive.VersionResponse
	}
	return &Frame{
		Header: &Header{
			IsResponse: msg.IsResponse(),
			Version:    version,
			StreamId:   streamId,
			OpCode:     msg.GetOpCode(),
		},
		Body: &Body{Message: msg},
	}
}

// SetCustomPayload sets or clears the frame's custom payload, keeping the CUSTOM_PAYLOAD header flag in sync.
// Only valid from protocol v4 onward.
func (f *Frame) SetCustomPayload(customPayload map[string][]byte) {
	if len(customPayload) > 0 {
		f.Header.Flags = f.Header.Flags.Add(primitive.HeaderFlagCustomPayload)
	} else {
		f.Header.Flags = f.Header.Flags.Remove(primitive.HeaderFlagCustomPayload)
	}
	f.Body.CustomPayload = customPayload
}

// SetWarnings sets or clears the frame's query warnings, keeping the WARNING header flag in sync. Only valid from
// protocol v4 onward.
func (f *Frame) SetWarnings(warnings []string) {
	if len(warnings) > 0 {
		f.Header.Flags = f.Header.Flags.Add(primitive.HeaderFlagWarning)
	} else {
		f.Header.Flags = f.Header.Flags.Remove(primitive.HeaderFlagWarning)
	}
	f.Body.Warnings = warnings
}

// SetTracingId sets or clears the frame's tracing id, keeping the TRACING header flag in sync. Only meaningful on
// response frames.
func (f *Frame) SetTracingId(tracingId *primitive.UUID) {
	if tracingId != nil {
		f.Header.Flags = f.Header.Flags.Add(primitive.HeaderFlagTracing)
	} else {
		f.Header.Flags = f.Header.Flags.Remove(primitive.HeaderFlagTracing)
	}
	f.Body.TracingId = tracingId
}

// RequestTracingId toggles the TRACING flag on a request frame to ask the server to attach a tracing id to its
// response.
func (f *Frame) RequestTracingId(tracing bool) {
	if tracing {
		f.Header.Flags = f.Header.Flags.Add(primitive.HeaderFlagTracing)
	} else {
		f.Header.Flags = f.Header.Flags.Remove(primitive.HeaderFlagTracing)
	}
}

// SetCompress toggles the COMPRESSED header flag, but only for opcodes that benefit from compression; it does not
// by itself cause the body to be compressed — the codec's BodyCompressor must also be configured.
func (f *Frame) SetCompress(compress bool) {
	if compress && isCompressible(f.Body.Message.GetOpCode()) {
		f.Header.Flags = f.Header.Flags.Add(primitive.HeaderFlagCompressed)
	} else {
		f.Header.Flags = f.Header.Flags.Remove(primitive.HeaderFlagCompressed)
	}
}

func (f *Frame) String() string {
	return fmt.Sprintf("{header: %v, body: %v}", f.Header, f.Body)
}

func (f *RawFrame) String() string {
	return fmt.Sprintf("{header: %v, body: %v}", f.Header, f.Body)
}

func (h *Header) String() string {
	return fmt.Sprintf("{response: %v, version: %v, flags: %08b, stream id: %v, opcode: %v, body length: %v}",
		h.IsResponse, h.Version, h.Flags, h.StreamId, h.OpCode, h.BodyLength)
}

func (b *Body) String() string {
	return fmt.Sprintf("{tracing id: %v, payload: %v, warnings: %v, message: %v}",
		b.TracingId, b.CustomPayload, b.Warnings, b.Message)
}

// Dump encodes f and renders it as a hex dump, for debugging.
func (f *Frame) Dump() (string, error) {
	var buf bytes.Buffer
	if err := NewCodec().EncodeFrame(f, &buf); err != nil {
		return "", err
	}
	return hex.Dump(buf.Bytes()), nil
}

// Dump encodes f and renders it as a hex dump, for debugging.
func (f *RawFrame) Dump() (string, error) {
	var buf bytes.Buffer
	if err := NewRawCodec().EncodeRawFrame(f, &buf); err != nil {
		return "", err
	}
	return hex.Dump(buf.Bytes()), nil
}

// isCompressible excludes opcodes that must never be compressed (STARTUP, per the protocol spec) or that are
// always empty and so gain nothing from it (OPTIONS, READY).
func isCompressible(opCode primitive.OpCode) bool {
	return opCode != primitive.OpCodeStartup &&
		opCode != primitive.OpCodeOptions &&
		opCode != primitive.OpCodeReady
}
