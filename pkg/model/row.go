// pkg/model/row.go
package model

import (
	"strconv"
	"strings"
)

// Row is a single record of the input table: an ordered sequence of text
// fields. Rows are immutable once read. The first row of a file is the
// header, but it carries no special type — it is deduplicated like any
// other row.
type Row []string

// Field returns the field at the given 0-indexed position, or the empty
// string when the row is too short. Ragged rows are legal input, so
// out-of-range access is never an error.
func (r Row) Field(index int) string {
	if index < 0 || index >= len(r) {
		return ""
	}
	return r[index]
}

// Identity returns the row's identity value: the value of its first field,
// or the empty string for a zero-length row. Identity values are used only
// for the duplicate-pair log, never for key comparison.
func (r Row) Identity() string {
	return r.Field(0)
}

// Key is the composite dedup key built from the selected columns of a row,
// encoded so that distinct field tuples always encode to distinct strings.
// Each field is length-prefixed, so ("a,b") and ("a","b") cannot collide.
type Key string

// BuildKey extracts a Key from a row using 1-indexed column positions.
// Positions beyond the row's width contribute the empty string.
func BuildKey(row Row, columns []int) Key {
	var sb strings.Builder
	for _, col := range columns {
		field := row.Field(col - 1)
		sb.WriteString(strconv.Itoa(len(field)))
		sb.WriteByte(':')
		sb.WriteString(field)
	}
	return Key(sb.String())
}

// DuplicatePair records one rejected row: the identity value of the row
// that was kept and the identity value of the duplicate that was dropped.
type DuplicatePair struct {
	Original  string // Identity of the first-seen row with this key
	Duplicate string // Identity of the rejected row
}
