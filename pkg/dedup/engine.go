// pkg/dedup/engine.go
package dedup

import (
	"github.com/mshammas/csvdeduplicator/pkg/model"
	"github.com/mshammas/csvdeduplicator/pkg/selector"
)

// Deduplicate partitions rows into first occurrences (kept, in input order)
// and repeats (dropped, logged as duplicate pairs in discovery order).
//
// For each row a composite key is built from the resolved columns; a row
// whose key was already seen is a repeat and contributes the pair
// (identity of the first-seen row, identity of this row). Rows shorter
// than a required column index contribute the empty string for that field.
// The header row is not special-cased: a later row colliding with the
// header's key is logged as a duplicate of the header.
//
// Deduplicate never fails for in-memory inputs and always satisfies
// len(kept) + len(pairs) == len(rows). One pass, O(n) time and auxiliary
// space in the row count.
func Deduplicate(rows []model.Row, columns selector.ResolvedColumns) ([]model.Row, []model.DuplicatePair) {
	seen := make(map[model.Key]string, len(rows))
	kept := make([]model.Row, 0, len(rows))
	var pairs []model.DuplicatePair

	for _, row := range rows {
		key := model.BuildKey(row, columns)
		if original, ok := seen[key]; ok {
			pairs = append(pairs, model.DuplicatePair{
				Original:  original,
				Duplicate: row.Identity(),
			})
			continue
		}
		seen[key] = row.Identity()
		kept = append(kept, row)
	}

	return kept, pairs
}
