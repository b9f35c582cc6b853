package message

import (
	"errors"
	"fmt"
	"io"

	"github.com/nativecql/cql/primitive"
)

const (
	// StartupOptionCqlVersion is the Startup.Options key carrying the CQL version the driver speaks, e.g. "3.0.0".
	StartupOptionCqlVersion = "CQL_VERSION"
	// StartupOptionCompression is the Startup.Options key naming the negotiated body compression algorithm,
	// one of "LZ4" or "SNAPPY".
	StartupOptionCompression = "COMPRESSION"
	// StartupOptionDriverName is the Startup.Options key identifying the client driver to the server.
	StartupOptionDriverName = "DRIVER_NAME"
	// StartupOptionDriverVersion is the Startup.Options key identifying the client driver version to the server.
	StartupOptionDriverVersion = "DRIVER_VERSION"

	defaultCqlVersion = "3.0.0"
)

// Startup is the first request a client sends once a connection is opened. It negotiates CQL version,
// compression, and other session-wide options. The server replies with either Ready or Authenticate.
type Startup struct {
	Options map[string]string
}

// NewStartup creates a new Startup message with the default CQL_VERSION and the given key/value pairs applied
// on top, e.g. NewStartup(StartupOptionCompression, "LZ4").
func NewStartup(pairs ...string) *Startup {
	options := map[string]string{StartupOptionCqlVersion: defaultCqlVersion}
	for i := 0; i+1 < len(pairs); i += 2 {
		options[pairs[i]] = pairs[i+1]
	}
	return &Startup{Options: options}
}

// SetCompression sets the COMPRESSION option to the given algorithm's wire name, or removes it entirely when c is
// primitive.CompressionNone.
func (m *Startup) SetCompression(c primitive.Compression) {
	switch c {
	case primitive.CompressionLz4:
		m.Options[StartupOptionCompression] = "LZ4"
	case primitive.CompressionSnappy:
		m.Options[StartupOptionCompression] = "SNAPPY"
	default:
		delete(m.Options, StartupOptionCompression)
	}
}

// SetDriverName sets the DRIVER_NAME option.
func (m *Startup) SetDriverName(name string) {
	m.Options[StartupOptionDriverName] = name
}

func (m *Startup) IsResponse() bool {
	return false
}

func (m *Startup) GetOpCode() primitive.OpCode {
	return primitive.OpCodeStartup
}

func (m *Startup) String() string {
	return fmt.Sprintf("STARTUP %v", m.Options)
}

type startupCodec struct{}

func (c *startupCodec) Encode(msg Message, dest io.Writer) error {
	startup, ok := msg.(*Startup)
	if !ok {
		return errors.New(fmt.Sprintf("expected *message.Startup, got %T", msg))
	}
	return primitive.WriteStringMap(startup.Options, dest)
}

func (c *startupCodec) EncodedLength(msg Message) (int, error) {
	startup, ok := msg.(*Startup)
	if !ok {
		return -1, errors.New(fmt.Sprintf("expected *message.Startup, got %T", msg))
	}
	return primitive.LengthOfStringMap(startup.Options), nil
}

func (c *startupCodec) Decode(source io.Reader) (Message, error) {
	options, err := primitive.ReadStringMap(source)
	if err != nil {
		return nil, err
	}
	return &Startup{Options: options}, nil
}

func (c *startupCodec) GetOpCode() primitive.OpCode {
	return primitive.OpCodeStartup
}
