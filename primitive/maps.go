package primitive

import (
	"fmt"
	"io"
)

// ReadStringMap reads a [string map]: a [short] count n followed by n key/value pairs of [string].
func ReadStringMap(source io.Reader) (map[string]string, error) {
	length, err := ReadShort(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read [string map] length: %w", err)
	}
	decoded := make(map[string]string, length)
	for i := uint16(0); i < length; i++ {
		key, err := ReadString(source)
		if err != nil {
			return nil, fmt.Errorf("cannot read [string map] entry %d key: %w", i, err)
		}
		value, err := ReadString(source)
		if err != nil {
			return nil, fmt.Errorf("cannot read [string map] entry %d value: %w", i, err)
		}
		decoded[key] = value
	}
	return decoded, nil
}

func WriteStringMap(m map[string]string, dest io.Writer) error {
	if err := WriteShort(uint16(len(m)), dest); err != nil {
		return fmt.Errorf("cannot write [string map] length: %w", err)
	}
	for key, value := range m {
		if err := WriteString(key, dest); err != nil {
			return fmt.Errorf("cannot write [string map] entry '%v' key: %w", key, err)
		}
		if err := WriteString(value, dest); err != nil {
			return fmt.Errorf("cannot write [string map] entry '%v' value: %w", key, err)
		}
	}
	return nil
}

func LengthOfStringMap(m map[string]string) int {
	length := LengthOfShort
	for key, value := range m {
		length += LengthOfString(key) + LengthOfString(value)
	}
	return length
}

// ReadStringMultiMap reads a [string multimap]: a [short] count n followed by n key/value pairs of [string] to
// [string list], used to carry the STARTUP-negotiable options advertised in a SUPPORTED response.
func ReadStringMultiMap(source io.Reader) (map[string][]string, error) {
	length, err := ReadShort(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read [string multimap] length: %w", err)
	}
	decoded := make(map[string][]string, length)
	for i := uint16(0); i < length; i++ {
		key, err := ReadString(source)
		if err != nil {
			return nil, fmt.Errorf("cannot read [string multimap] entry %d key: %w", i, err)
		}
		value, err := ReadStringList(source)
		if err != nil {
			return nil, fmt.Errorf("cannot read [string multimap] entry %d value: %w", i, err)
		}
		decoded[key] = value
	}
	return decoded, nil
}

func WriteStringMultiMap(m map[string][]string, dest io.Writer) error {
	if err := WriteShort(uint16(len(m)), dest); err != nil {
		return fmt.Errorf("cannot write [string multimap] length: %w", err)
	}
	for key, value := range m {
		if err := WriteString(key, dest); err != nil {
			return fmt.Errorf("cannot write [string multimap] entry '%v' key: %w", key, err)
		}
		if err := WriteStringList(value, dest); err != nil {
			return fmt.Errorf("cannot write [string multimap] entry '%v' value: %w", key, err)
		}
	}
	return nil
}

func LengthOfStringMultiMap(m map[string][]string) int {
	length := LengthOfShort
	for key, value := range m {
		length += LengthOfString(key) + LengthOfStringList(value)
	}
	return length
}

// ReadBytesMap reads a [bytes map]: a [short] count n followed by n key/value pairs of [string] to [bytes], used
// for the custom payload carried by CUSTOM_PAYLOAD-flagged requests and responses.
func ReadBytesMap(source io.Reader) (map[string][]byte, error) {
	length, err := ReadShort(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read [bytes map] length: %w", err)
	}
	decoded := make(map[string][]byte, length)
	for i := uint16(0); i < length; i++ {
		key, err := ReadString(source)
		if err != nil {
			return nil, fmt.Errorf("cannot read [bytes map] entry %d key: %w", i, err)
		}
		value, err := ReadBytes(source)
		if err != nil {
			return nil, fmt.Errorf("cannot read [bytes map] entry %d value: %w", i, err)
		}
		decoded[key] = value
	}
	return decoded, nil
}

func WriteBytesMap(m map[string][]byte, dest io.Writer) error {
	if err := WriteShort(uint16(len(m)), dest); err != nil {
		return fmt.Errorf("cannot write [bytes map] length: %w", err)
	}
	for key, value := range m {
		if err := WriteString(key, dest); err != nil {
			return fmt.Errorf("cannot write [bytes map] entry '%v' key: %w", key, err)
		}
		if err := WriteBytes(value, dest); err != nil {
			return fmt.Errorf("cannot write [bytes map] entry '%v' value: %w", value, err)
		}
	}
	return nil
}

func LengthOfBytesMap(m map[string][]byte) int {
	length := LengthOfShort
	for key, value := range m {
		length += LengthOfString(key) + LengthOfBytes(value)
	}
	return length
}
