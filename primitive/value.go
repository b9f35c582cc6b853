package primitive

import (
	"errors"
	"fmt"
	"io"
)

// ValueType distinguishes a regular [value] from the special null and "unset" markers encoded in its length field.
type ValueType int32

const (
	ValueTypeRegular = ValueType(0)
	ValueTypeNull    = ValueType(-1)
	ValueTypeUnset   = ValueType(-2)
)

// Value is a bound query parameter: either a regular value with its raw, type-specific encoded contents, a SQL-style
// NULL, or an "unset" marker telling the server to keep the column's existing value (used by batched conditional
// updates).
type Value struct {
	Type     ValueType
	Contents []byte
}

func NewValue(contents []byte) *Value {
	return &Value{Type: ValueTypeRegular, Contents: contents}
}

func NewNullValue() *Value {
	return &Value{Type: ValueTypeNull}
}

func NewUnsetValue() *Value {
	return &Value{Type: ValueTypeUnset}
}

// [value]

func ReadValue(source io.Reader) (*Value, error) {
	length, err := ReadInt(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read [value] length: %w", err)
	}
	switch {
	case length == int32(ValueTypeNull):
		return NewNullValue(), nil
	case length == int32(ValueTypeUnset):
		return NewUnsetValue(), nil
	case length < 0:
		return nil, fmt.Errorf("invalid [value] length: %v", length)
	default:
		decoded := make([]byte, length)
		if _, err := io.ReadFull(source, decoded); err != nil {
			return nil, fmt.Errorf("cannot read [value] content: %w", err)
		}
		return NewValue(decoded), nil
	}
}

func WriteValue(value *Value, dest io.Writer) error {
	if value == nil {
		return errors.New("cannot write a nil [value]")
	}
	switch value.Type {
	case ValueTypeNull:
		return WriteInt(int32(ValueTypeNull), dest)
	case ValueTypeUnset:
		return WriteInt(int32(ValueTypeUnset), dest)
	case ValueTypeRegular:
		if value.Contents == nil {
			return WriteInt(int32(ValueTypeNull), dest)
		}
		length := len(value.Contents)
		if err := WriteInt(int32(length), dest); err != nil {
			return fmt.Errorf("cannot write [value] length: %w", err)
		}
		if n, err := dest.Write(value.Contents); err != nil {
			return fmt.Errorf("cannot write [value] content: %w", err)
		} else if n < length {
			return errors.New("not enough capacity to write [value] content")
		}
		return nil
	default:
		return fmt.Errorf("unknown [value] type: %v", value.Type)
	}
}

func LengthOfValue(value *Value) (int, error) {
	if value == nil {
		return -1, errors.New("cannot compute length of a nil [value]")
	}
	switch value.Type {
	case ValueTypeNull, ValueTypeUnset:
		return LengthOfInt, nil
	case ValueTypeRegular:
		return LengthOfInt + len(value.Contents), nil
	default:
		return -1, fmt.Errorf("unknown [value] type: %v", value.Type)
	}
}

// positional [value]s

func ReadPositionalValues(source io.Reader) ([]*Value, error) {
	length, err := ReadShort(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read positional [value]s length: %w", err)
	}
	decoded := make([]*Value, length)
	for i := uint16(0); i < length; i++ {
		if value, err := ReadValue(source); err != nil {
			return nil, fmt.Errorf("cannot read positional [value]s element %d content: %w", i, err)
		} else {
			decoded[i] = value
		}
	}
	return decoded, nil
}

func WritePositionalValues(values []*Value, dest io.Writer) error {
	length := len(values)
	if err := WriteShort(uint16(length), dest); err != nil {
		return fmt.Errorf("cannot write positional [value]s length: %w", err)
	}
	for i, value := range values {
		if err := WriteValue(value, dest); err != nil {
			return fmt.Errorf("cannot write positional [value]s element %d content: %w", i, err)
		}
	}
	return nil
}

func LengthOfPositionalValues(values []*Value) (length int, err error) {
	length += LengthOfShort
	for i, value := range values {
		valueLength, err := LengthOfValue(value)
		if err != nil {
			return -1, fmt.Errorf("cannot compute length of positional [value] %d: %w", i, err)
		}
		length += valueLength
	}
	return length, nil
}

// named [value]s

func ReadNamedValues(source io.Reader) (map[string]*Value, error) {
	length, err := ReadShort(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read named [value]s length: %w", err)
	}
	decoded := make(map[string]*Value, length)
	for i := uint16(0); i < length; i++ {
		name, err := ReadString(source)
		if err != nil {
			return nil, fmt.Errorf("cannot read named [value]s entry %d name: %w", i, err)
		}
		value, err := ReadValue(source)
		if err != nil {
			return nil, fmt.Errorf("cannot read named [value]s entry %d content: %w", i, err)
		}
		decoded[name] = value
	}
	return decoded, nil
}

func WriteNamedValues(values map[string]*Value, dest io.Writer) error {
	length := len(values)
	if err := WriteShort(uint16(length), dest); err != nil {
		return fmt.Errorf("cannot write named [value]s length: %w", err)
	}
	for name, value := range values {
		if err := WriteString(name, dest); err != nil {
			return fmt.Errorf("cannot write named [value]s entry '%v' name: %w", name, err)
		}
		if err := WriteValue(value, dest); err != nil {
			return fmt.Errorf("cannot write named [value]s entry '%v' content: %w", name, err)
		}
	}
	return nil
}

func LengthOfNamedValues(values map[string]*Value) (length int, err error) {
	length += LengthOfShort
	for name, value := range values {
		valueLength, err := LengthOfValue(value)
		if err != nil {
			return -1, fmt.Errorf("cannot compute length of named [value]s: %w", err)
		}
		length += LengthOfString(name)
		length += valueLength
	}
	return length, nil
}
