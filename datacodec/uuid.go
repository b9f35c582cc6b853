// Copyright 2020 DataStax
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package datacodec

import (
	"github.com/nativecql/cql/datatype"
	"github.com/nativecql/cql/primitive"
)

// Uuid is a codec for the CQL uuid type. Out of better options available in Go's standard library, its
// preferred Go type is primitive.UUID, but it can encode from and decode to []byte, [16]byte and string as well.
// When dealing with UUIDs in Go, consider using a high-level library such as Google's uuid package:
// https://pkg.go.dev/github.com/google/uuid.
var Uuid Codec = &uuidCodec{dataType: datatype.Uuid}

// Timeuuid is a codec for the CQL timeuuid type. Out of better options available in Go's standard library, its
// preferred Go type is primitive.UUID, but it can encode from and decode to []byte, [16]byte and string as well.
// This codec does not actually enforce that user-provided UUIDs are time UUIDs; it is functionally equivalent to
// the Uuid codec.
// When dealing with UUIDs in Go, consider using a high-level library such as Google's uuid package:
// https://pkg.go.dev/github.com/google/uuid.
var Timeuuid Codec = &uuidCodec{dataType: datatype.Timeuuid}

type uuidCodec struct {
	dataType datatype.DataType
}

func (c *uuidCodec) DataType() datatype.DataType {
	return c.dataType
}

func (c *uuidCodec) Encode(source interface{}) (dest []byte, err error) {
	if dest, err = convertToUuidBytes(source); err != nil {
		err = errCannotEncode(source, c.DataType(), err)
	}
	return
}

func (c *uuidCodec) Decode(source []byte, dest interface{}) (wasNull bool, err error) {
	var val []byte
	if val, wasNull, err = readUuid(source); err == nil {
		err = convertFromUuidBytes(val, wasNull, dest)
	}
	if err != nil {
		err = errCannotDecode(dest, c.DataType(), err)
	}
	return
}

func convertToUuidBytes(source interface{}) (val []byte, err error) {
	switch s := source.(type) {
	case primitive.UUID:
		val = s.Bytes()
	case *primitive.UUID:
		if s != nil {
			val = s.Bytes()
		}
	case []byte:
		if len(s) != primitive.LengthOfUuid {
			err = errWrongFixedLength(primitive.LengthOfUuid, len(s))
		} else {
			val = s
		}
	case *[]byte:
		if s != nil {
			if len(*s) != primitive.LengthOfUuid {
				err = errWrongFixedLength(primitive.LengthOfUuid, len(*s))
			} else {
				val = *s
			}
		}
	case [16]byte:
		val = s[:]
	case *[16]byte:
		if s != nil {
			val = (*s)[:]
		}
	case string:
		var uuid *primitive.UUID
		if uuid, err = primitive.ParseUuid(s); err == nil {
			val = uuid.Bytes()
		}
	case *string:
		if s != nil {
			var uuid *primitive.UUID
			if uuid, err = primitive.ParseUuid(*s); err == nil {
				val = uuid.Bytes()
			}
		}
	case nil:
	default:
		err = ErrConversionNotSupported
	}
	if err != nil {
		err = errSourceConversionFailed(source, val, err)
	}
	return
}

func convertFromUuidBytes(val []byte, wasNull bool, dest interface{}) (err error) {
	switch d := dest.(type) {
	case *interface{}:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = nil
		} else {
			u := primitive.UUID{}
			copy(u[:], val)
			*d = u
		}
	case *primitive.UUID:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = primitive.UUID{}
		} else {
			copy((*d)[:], val)
		}
	case *[]byte:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = nil
		} else {
			*d = val
		}
	case *[16]byte:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = [16]byte{}
		} else {
			*d = [16]byte{}
			copy((*d)[:], val)
		}
	case *string:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = ""
		} else {
			var uuid primitive.UUID
			copy(uuid[:], val)
			*d = uuid.String()
		}
	default:
		err = errDestinationInvalid(dest)
	}
	if err != nil {
		err = errDestinationConversionFailed(val, dest, err)
	}
	return
}

// The below function is roughly equivalent to primitive.ReadUuid.

func readUuid(source []byte) (val []byte, wasNull bool, err error) {
	length := len(source)
	if length == 0 {
		wasNull = true
	} else if length != primitive.LengthOfUuid {
		err = errWrongFixedLength(primitive.LengthOfUuid, length)
	} else {
		val = source
	}
	if err != nil {
		err = errCannotRead(val, err)
	}
	return
}
