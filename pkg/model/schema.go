// pkg/model/schema.go
package model

// TableSchema describes the table shape derived from the header row. It
// supplies the table width used for column validation and backs the
// header-listing mode.
type TableSchema struct {
	Columns []HeaderColumn
}

// HeaderColumn is one header cell with its user-facing 1-indexed position.
type HeaderColumn struct {
	Position int    // 1-indexed column position
	Name     string // Header text, verbatim
}

// NewTableSchema builds a TableSchema from the header row.
func NewTableSchema(header Row) *TableSchema {
	columns := make([]HeaderColumn, len(header))
	for i, name := range header {
		columns[i] = HeaderColumn{
			Position: i + 1,
			Name:     name,
		}
	}
	return &TableSchema{Columns: columns}
}

// Width returns the table width: the field count of the header row.
func (ts *TableSchema) Width() int {
	return len(ts.Columns)
}

// GetColumnByPosition returns the column at a 1-indexed position.
// Returns nil if the position is out of range.
func (ts *TableSchema) GetColumnByPosition(position int) *HeaderColumn {
	if position < 1 || position > len(ts.Columns) {
		return nil
	}
	return &ts.Columns[position-1]
}
