package primitive

import (
	"errors"
	"fmt"
	"io"
)

// ReadBytes reads a [bytes]: an [int] length n followed by n bytes of content, or just a length of -1 to mean a
// CQL NULL (as opposed to a zero-length value, which is a length of 0 followed by no bytes).
func ReadBytes(source io.Reader) ([]byte, error) {
	length, err := ReadInt(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read [bytes] length: %w", err)
	}
	if length < 0 {
		return nil, nil
	}
	decoded := make([]byte, length)
	read, err := source.Read(decoded)
	if err != nil {
		return nil, fmt.Errorf("cannot read [bytes] content: %w", err)
	}
	if read != int(length) {
		return nil, errors.New("not enough bytes to read [bytes] content")
	}
	return decoded, nil
}

// WriteBytes writes a [bytes]; a nil slice is written as a length of -1, distinguishing CQL NULL from an empty value.
func WriteBytes(b []byte, dest io.Writer) error {
	if b == nil {
		if err := WriteInt(-1, dest); err != nil {
			return fmt.Errorf("cannot write null [bytes]: %w", err)
		}
		return nil
	}
	length := len(b)
	if err := WriteInt(int32(length), dest); err != nil {
		return fmt.Errorf("cannot write [bytes] length: %w", err)
	}
	n, err := dest.Write(b)
	if err != nil {
		return fmt.Errorf("cannot write [bytes] content: %w", err)
	}
	if n < length {
		return errors.New("not enough capacity to write [bytes] content")
	}
	return nil
}

func LengthOfBytes(b []byte) int {
	return LengthOfInt + len(b)
}

// ReadShortBytes reads a [short bytes]: the same shape as [bytes], but with a [short] length instead of an [int]
// one, used where the protocol bounds the content to 64KB (e.g. query parameter values in the legacy encoding).
func ReadShortBytes(source io.Reader) ([]byte, error) {
	length, err := ReadShort(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read [short bytes] length: %w", err)
	}
	if length < 0 {
		return nil, nil
	}
	if length == 0 {
		return []byte{}, nil
	}
	decoded := make([]byte, length)
	read, err := source.Read(decoded)
	if err != nil {
		return nil, fmt.Errorf("cannot read [short bytes] content: %w", err)
	}
	if read != int(length) {
		return nil, errors.New("not enough bytes to read [short bytes] content")
	}
	return decoded, nil
}

func WriteShortBytes(b []byte, dest io.Writer) error {
	length := len(b)
	if err := WriteShort(uint16(length), dest); err != nil {
		return fmt.Errorf("cannot write [short bytes] length: %w", err)
	}
	n, err := dest.Write(b)
	if err != nil {
		return fmt.Errorf("cannot write [short bytes] content: %w", err)
	}
	if n < length {
		return errors.New("not enough capacity to write [short bytes] content")
	}
	return nil
}

func LengthOfShortBytes(b []byte) int {
	return LengthOfShort + len(b)
}
