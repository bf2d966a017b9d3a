// pkg/dedup/result.go
package dedup

import (
	"time"

	"github.com/google/uuid"
)

// DedupResult represents the outcome of one dedup run.
type DedupResult struct {
	RunID           string // Unique run identifier
	InputFile       string
	OutputFile      string // Deduplicated rows artifact
	DuplicateLog    string // Duplicate-pair artifact
	KeyColumns      string // Resolved key columns, comma-separated
	Success         bool
	RowsRead        int64
	RowsKept        int64
	DuplicatesFound int64
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
}

// NewDedupResult initializes a result for a run over the given input file.
func NewDedupResult(inputFile string) *DedupResult {
	return &DedupResult{
		RunID:     uuid.New().String(),
		InputFile: inputFile,
		StartTime: time.Now(),
	}
}

// Complete marks the run as complete and calculates its duration.
func (r *DedupResult) Complete(success bool) {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
	r.Success = success
}

// DuplicateRate returns the percentage of input rows rejected as repeats.
func (r *DedupResult) DuplicateRate() float64 {
	if r.RowsRead == 0 {
		return 0
	}
	return float64(r.DuplicatesFound) / float64(r.RowsRead) * 100
}
