package result

import (
	"fmt"

	"github.com/nativecql/cql/datacodec"
	"github.com/nativecql/cql/datatype"
)

// Handle bundles a column's raw, still-encoded bytes together with its declared CQL type. It defers projection to
// a native Go value until Scan is called, so that columns the caller never reads (wide rows, unused collections)
// never pay a decoding cost. This mirrors how nested collection elements carry their declared type down from their
// parent container instead of re-inspecting the wire bytes.
type Handle struct {
	raw      []byte
	dataType datatype.DataType
}

// NewHandle wraps raw column bytes together with the type the server declared for them. Used both for top-level
// columns and for elements of a collection, where dataType is the element type carried down from the parent.
func NewHandle(raw []byte, dataType datatype.DataType) *Handle {
	return &Handle{raw: raw, dataType: dataType}
}

// DataType returns the CQL type the server declared for this column.
func (h *Handle) DataType() datatype.DataType {
	return h.dataType
}

// IsNull reports whether the column value is a CQL NULL.
func (h *Handle) IsNull() bool {
	return h.raw == nil
}

// Raw returns the column's still-encoded bytes, exactly as received on the wire. Most callers should prefer Scan;
// Raw is for callers that want to forward the encoded value as-is (for example to a display or logging layer) or
// that implement their own decoding for a type Scan does not support.
func (h *Handle) Raw() []byte {
	return h.raw
}

// Scan decodes the column's raw bytes into dest, which must be a pointer to a Go type compatible with the
// column's declared CQL type. If the declared type has no compatible Go projection for dest, or if dest itself is
// of an unsupported kind, an *InvalidProjection error is returned instead of panicking. wasNull reports whether the
// raw value was a CQL NULL, in which case dest is left at its zero value.
func (h *Handle) Scan(dest interface{}) (wasNull bool, err error) {
	codec, err := datacodec.NewCodec(h.dataType)
	if err != nil {
		return false, newInvalidProjection(h.dataType.String(), err.Error())
	}
	wasNull, err = codec.Decode(h.raw, dest)
	if err != nil {
		return false, newInvalidProjection(h.dataType.String(), fmt.Sprintf("%T", dest))
	}
	return wasNull, nil
}
