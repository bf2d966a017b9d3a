// pkg/selector/selector.go
package selector

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidColumnSpec is returned when a column specification cannot be
// resolved to at least one valid column, or contains a token that is not an
// integer. It is fatal to the run.
var ErrInvalidColumnSpec = errors.New("invalid column specification")

// ColumnSpec captures the raw user intent for which columns participate in
// the dedup key. Both fields are optional.
type ColumnSpec struct {
	// StartOrList is an ordered list of 1-indexed column positions. When
	// Count is also set, only its first element is used, as a starting
	// column.
	StartOrList []int

	// Count is the number of consecutive columns to use, or nil.
	Count *int
}

// ResolvedColumns is a validated, ordered list of 1-indexed column
// positions. It is non-empty and every element lies within [1, tableWidth].
type ResolvedColumns []int

// String renders the columns as a comma-separated list for logs and the
// audit store.
func (rc ResolvedColumns) String() string {
	parts := make([]string, len(rc))
	for i, col := range rc {
		parts[i] = strconv.Itoa(col)
	}
	return strings.Join(parts, ",")
}

// ParseStartOrList parses the hyphen-delimited column specifier accepted on
// the command line (e.g. "3" or "3-5-8") into an ordered list of integers.
// An empty string yields nil. Any token that is not a valid integer fails
// with ErrInvalidColumnSpec.
func ParseStartOrList(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, "-")
	columns := make([]int, 0, len(parts))
	for _, part := range parts {
		value, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: column token %q is not an integer", ErrInvalidColumnSpec, part)
		}
		columns = append(columns, value)
	}

	return columns, nil
}

// Resolve translates a ColumnSpec plus the known table width into the
// concrete list of key columns. Resolution precedence:
//
//  1. Both StartOrList and Count given: the first element of StartOrList is
//     the starting column and the result is the consecutive run of Count
//     columns from there. Remaining StartOrList elements are silently
//     ignored (a documented quirk of the option surface, not an error).
//  2. Only StartOrList given: the result is exactly that list, order and
//     duplicates preserved.
//  3. Only Count given: the result is columns 1 through Count.
//  4. Neither given: every column, 1 through tableWidth.
//
// The candidate list is then filtered to positions within [1, tableWidth],
// preserving order and multiplicity. An empty result after filtering fails
// with ErrInvalidColumnSpec. Resolve performs no I/O and is deterministic.
func Resolve(spec ColumnSpec, tableWidth int) (ResolvedColumns, error) {
	var columns []int

	switch {
	case len(spec.StartOrList) > 0 && spec.Count != nil:
		start := spec.StartOrList[0]
		columns = consecutiveRun(start, *spec.Count)

	case len(spec.StartOrList) > 0:
		columns = spec.StartOrList

	case spec.Count != nil:
		columns = consecutiveRun(1, *spec.Count)

	default:
		columns = consecutiveRun(1, tableWidth)
	}

	valid := make(ResolvedColumns, 0, len(columns))
	for _, col := range columns {
		if col >= 1 && col <= tableWidth {
			valid = append(valid, col)
		}
	}

	if len(valid) == 0 {
		return nil, fmt.Errorf("%w: no columns within table width %d", ErrInvalidColumnSpec, tableWidth)
	}

	return valid, nil
}

// consecutiveRun returns the integers [start, start+count-1].
func consecutiveRun(start, count int) []int {
	if count <= 0 {
		return nil
	}
	run := make([]int, count)
	for i := range run {
		run[i] = start + i
	}
	return run
}
