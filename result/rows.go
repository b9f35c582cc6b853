// Package result provides a typed projection layer over the raw RESULT messages decoded by package message. Rows
// wraps a *message.RowsResult and exposes column accessors by index or by name, decoding scalar columns eagerly
// and deferring collection, tuple and UDT columns to a lazy Handle so that unread columns are never decoded.
package result

import (
	"fmt"

	"github.com/nativecql/cql/datatype"
	"github.com/nativecql/cql/message"
	"github.com/nativecql/cql/primitive"
)

// Rows wraps a Rows RESULT message and exposes its metadata and row data through a typed projection API.
type Rows struct {
	result *message.RowsResult

	// columnsByName lazily caches the index of each column, keyed by name. Built lazily on first lookup by name,
	// since not every caller scans by name, and building it unconditionally would cost an O(n) scan up front even
	// when unused.
	columnsByName map[string]int
}

// NewRows wraps a decoded Rows RESULT message for typed projection.
func NewRows(result *message.RowsResult) *Rows {
	return &Rows{result: result}
}

// Metadata returns the result set's metadata, as decoded from the wire. If the server set the NO_METADATA flag,
// Columns will be nil; callers that need the column list in that case must obtain it from the RowsMetadata of a
// prior PREPARE for the same query and consult it directly, since the protocol offers no other way to recover it.
func (r *Rows) Metadata() *message.RowsMetadata {
	return r.result.Metadata
}

// RowCount returns the number of rows in this result set. It does not account for further pages: when PagingState
// is non-nil, more rows are available from the server in a subsequent request.
func (r *Rows) RowCount() int {
	return len(r.result.Data)
}

// PagingState returns the opaque paging state token returned by the server, or nil if this is the last page. The
// token is meaningless to interpret locally; it must be passed back verbatim as the paging state of a subsequent
// request to retrieve the next page.
func (r *Rows) PagingState() []byte {
	if r.result.Metadata == nil {
		return nil
	}
	return r.result.Metadata.PagingState
}

func (r *Rows) column(index int) (*message.ColumnMetadata, error) {
	if r.result.Metadata == nil || index < 0 || index >= len(r.result.Metadata.Columns) {
		return nil, newInvalidProjection("valid column index", fmt.Sprintf("%d", index))
	}
	return r.result.Metadata.Columns[index], nil
}

func (r *Rows) columnIndex(name string) (int, error) {
	if r.result.Metadata == nil {
		return 0, newInvalidProjection("result metadata", "no metadata (NO_METADATA flag set)")
	}
	if r.columnsByName == nil {
		r.columnsByName = make(map[string]int, len(r.result.Metadata.Columns))
		for i, col := range r.result.Metadata.Columns {
			r.columnsByName[col.Name] = i
		}
	}
	index, ok := r.columnsByName[name]
	if !ok {
		return 0, newInvalidProjection("known column name", name)
	}
	return index, nil
}

func (r *Rows) raw(row, index int) ([]byte, error) {
	if row < 0 || row >= len(r.result.Data) {
		return nil, newInvalidProjection("valid row index", fmt.Sprintf("%d", row))
	}
	cols := r.result.Data[row]
	if index < 0 || index >= len(cols) {
		return nil, newInvalidProjection("valid column index", fmt.Sprintf("%d", index))
	}
	return cols[index], nil
}

// isLazy reports whether the given CQL type should be projected through a lazy Handle rather than decoded eagerly.
func isLazy(dt datatype.DataType) bool {
	switch dt.GetDataTypeCode() {
	case primitive.DataTypeCodeList,
		primitive.DataTypeCodeSet,
		primitive.DataTypeCodeMap,
		primitive.DataTypeCodeTuple,
		primitive.DataTypeCodeUdt:
		return true
	}
	return false
}

// Scan decodes the column at the given row and column index into dest. It returns an *InvalidProjection error if
// the column is a list, set, map, tuple or user-defined type: such columns must be retrieved with Handle instead,
// so that their projection can be deferred until the caller actually needs it.
func (r *Rows) Scan(row, index int, dest interface{}) (wasNull bool, err error) {
	col, err := r.column(index)
	if err != nil {
		return false, err
	}
	if isLazy(col.Type) {
		return false, newInvalidProjection("scalar column", col.Type.String())
	}
	raw, err := r.raw(row, index)
	if err != nil {
		return false, err
	}
	return NewHandle(raw, col.Type).Scan(dest)
}

// ScanByName behaves like Scan, but resolves the column by name instead of by index. Name resolution costs an
// O(n) scan over the declared columns the first time it is invoked on a given Rows value; subsequent lookups hit
// a cache built from that scan.
func (r *Rows) ScanByName(row int, name string, dest interface{}) (wasNull bool, err error) {
	index, err := r.columnIndex(name)
	if err != nil {
		return false, err
	}
	return r.Scan(row, index, dest)
}

// Handle returns a lazy Handle for the column at the given row and column index, deferring its projection to a
// native Go value until the caller invokes Handle.Scan. Use this for list, set, map, tuple and user-defined type
// columns.
func (r *Rows) Handle(row, index int) (*Handle, error) {
	col, err := r.column(index)
	if err != nil {
		return nil, err
	}
	raw, err := r.raw(row, index)
	if err != nil {
		return nil, err
	}
	return NewHandle(raw, col.Type), nil
}

// HandleByName behaves like Handle, but resolves the column by name instead of by index.
func (r *Rows) HandleByName(row int, name string) (*Handle, error) {
	index, err := r.columnIndex(name)
	if err != nil {
		return nil, err
	}
	return r.Handle(row, index)
}
