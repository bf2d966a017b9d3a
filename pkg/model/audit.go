// pkg/model/audit.go
package model

import (
	"time"
)

// DedupOperation represents a single detected duplicate, as recorded in the
// audit store.
type DedupOperation struct {
	RunID             string    // Identifier of the dedup run that found it
	InputFile         string    // Path of the input file
	RowNumber         int       // 1-indexed position of the duplicate in the input
	OriginalIdentity  string    // Identity value of the kept row
	DuplicateIdentity string    // Identity value of the rejected row
	KeyColumns        string    // Resolved key columns, e.g. "3,5,8"
	DetectedAt        time.Time // When the duplicate was found (set by database)
}

// RunRecord summarizes one completed dedup run for the audit store.
type RunRecord struct {
	RunID           string
	InputFile       string
	OutputFile      string
	DuplicateLog    string
	KeyColumns      string
	RowsRead        int64
	RowsKept        int64
	DuplicatesFound int64
	Duration        time.Duration
	StartedAt       time.Time
	FinishedAt      time.Time
}
