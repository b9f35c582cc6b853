package primitive

import (
	"errors"
	"fmt"
	"io"
)

// ReadString reads a [string]: a [short] length n followed by n bytes of UTF-8 text.
func ReadString(source io.Reader) (string, error) {
	length, err := ReadShort(source)
	if err != nil {
		return "", fmt.Errorf("cannot read [string] length: %w", err)
	}
	decoded := make([]byte, length)
	read, err := source.Read(decoded)
	if err != nil {
		return "", fmt.Errorf("cannot read [string] content: %w", err)
	}
	if read != int(length) {
		return "", errors.New("not enough bytes to read [string] content")
	}
	return string(decoded), nil
}

func WriteString(s string, dest io.Writer) error {
	length := len(s)
	if err := WriteShort(uint16(length), dest); err != nil {
		return fmt.Errorf("cannot write [string] length: %w", err)
	}
	n, err := dest.Write([]byte(s))
	if err != nil {
		return fmt.Errorf("cannot write [string] length: %w", err)
	}
	if n < length {
		return errors.New("not enough capacity to write [string] content")
	}
	return nil
}

func LengthOfString(s string) int {
	return LengthOfShort + len(s)
}

// ReadLongString reads a [long string]: the same shape as [string], but with an [int] length, used for content
// that can exceed 64KB (the CQL query text of a QUERY or PREPARE message).
func ReadLongString(source io.Reader) (string, error) {
	length, err := ReadInt(source)
	if err != nil {
		return "", fmt.Errorf("cannot read [long string] length: %w", err)
	}
	decoded := make([]byte, length)
	read, err := source.Read(decoded)
	if err != nil {
		return "", fmt.Errorf("cannot read [long string] content: %w", err)
	}
	if read != int(length) {
		return "", errors.New("not enough bytes to read [long string] content")
	}
	return string(decoded), nil
}

func WriteLongString(s string, dest io.Writer) error {
	length := len(s)
	if err := WriteInt(int32(length), dest); err != nil {
		return fmt.Errorf("cannot write [long string] length: %w", err)
	}
	n, err := dest.Write([]byte(s))
	if err != nil {
		return fmt.Errorf("cannot write [long string] length: %w", err)
	}
	if n < length {
		return errors.New("not enough capacity to write [long string] content")
	}
	return nil
}

func LengthOfLongString(s string) int {
	return LengthOfInt + len(s)
}

// ReadStringList reads a [string list]: a [short] count n followed by n [string] values.
func ReadStringList(source io.Reader) ([]string, error) {
	length, err := ReadShort(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read [string list] length: %w", err)
	}
	if length == 0 {
		return []string{}, nil
	}
	decoded := make([]string, length)
	for i := uint16(0); i < length; i++ {
		str, err := ReadString(source)
		if err != nil {
			return nil, fmt.Errorf("cannot read [string list] element %d: %w", i, err)
		}
		decoded[i] = str
	}
	return decoded, nil
}

func WriteStringList(list []string, dest io.Writer) error {
	if err := WriteShort(uint16(len(list)), dest); err != nil {
		return fmt.Errorf("cannot write [string list] length: %w", err)
	}
	for i, s := range list {
		if err := WriteString(s, dest); err != nil {
			return fmt.Errorf("cannot write [string list] element %d: %w", i, err)
		}
	}
	return nil
}

func LengthOfStringList(list []string) int {
	length := LengthOfShort
	for _, s := range list {
		length += LengthOfString(s)
	}
	return length
}
