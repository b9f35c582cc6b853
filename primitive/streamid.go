package primitive

import (
	"io"
)

// ReadStreamId reads a stream id, a signed 16-bit integer encoded as a [short]. Server-initiated frames such as
// EVENT use negative stream ids.
func ReadStreamId(source io.Reader) (int16, error) {
	id, err := ReadShort(source)
	return int16(id), err
}

// WriteStreamId writes a stream id as a [short].
func WriteStreamId(streamId int16, dest io.Writer) error {
	return WriteShort(uint16(streamId), dest)
}
