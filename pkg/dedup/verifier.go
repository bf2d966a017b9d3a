// pkg/dedup/verifier.go
package dedup

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mshammas/csvdeduplicator/pkg/model"
	"github.com/mshammas/csvdeduplicator/pkg/selector"
)

// ErrVerificationFailed indicates the dedup pass violated one of its own
// invariants. This is a bug, not bad input; no output is written when it
// occurs.
var ErrVerificationFailed = errors.New("dedup verification failed")

// VerificationReport contains the results of a post-pass verification.
type VerificationReport struct {
	VerificationTime time.Time
	CountsMatch      bool
	InputRowCount    int64
	KeptRowCount     int64
	DuplicateCount   int64
	KeysUnique       bool
	DuplicateKeys    []string // Sample of repeated keys among kept rows
	PairsConsistent  bool
	Duration         time.Duration
}

// Verifier checks the dedup pass output against the invariants the engine
// promises: every input row is accounted for exactly once, kept rows have
// pairwise distinct keys, and every duplicate pair names the identity of a
// kept row as its original.
type Verifier struct {
	logger     *zap.Logger
	maxSamples int
}

// NewVerifier creates a new Verifier.
func NewVerifier(logger *zap.Logger) *Verifier {
	return &Verifier{
		logger:     logger,
		maxSamples: 5,
	}
}

// Verify checks the pass output and returns a report. A non-nil error wraps
// ErrVerificationFailed and means the output must not be written.
func (v *Verifier) Verify(
	rows []model.Row,
	kept []model.Row,
	pairs []model.DuplicatePair,
	columns selector.ResolvedColumns,
) (*VerificationReport, error) {
	start := time.Now()
	report := &VerificationReport{
		VerificationTime: start,
		InputRowCount:    int64(len(rows)),
		KeptRowCount:     int64(len(kept)),
		DuplicateCount:   int64(len(pairs)),
	}

	report.CountsMatch = len(kept)+len(pairs) == len(rows)

	// Kept rows must have pairwise distinct keys, and each key's recorded
	// identity is needed to validate the pairs.
	identities := make(map[model.Key]string, len(kept))
	report.KeysUnique = true
	for _, row := range kept {
		key := model.BuildKey(row, columns)
		if _, ok := identities[key]; ok {
			report.KeysUnique = false
			if len(report.DuplicateKeys) < v.maxSamples {
				report.DuplicateKeys = append(report.DuplicateKeys, string(key))
			}
			continue
		}
		identities[key] = row.Identity()
	}

	// Every pair's original identity must match some kept row's identity.
	report.PairsConsistent = true
	known := make(map[string]bool, len(identities))
	for _, identity := range identities {
		known[identity] = true
	}
	for _, pair := range pairs {
		if !known[pair.Original] {
			report.PairsConsistent = false
			break
		}
	}

	report.Duration = time.Since(start)

	if v.logger != nil {
		v.logger.Debug("Verification completed",
			zap.Bool("countsMatch", report.CountsMatch),
			zap.Bool("keysUnique", report.KeysUnique),
			zap.Bool("pairsConsistent", report.PairsConsistent),
			zap.Duration("duration", report.Duration))
	}

	switch {
	case !report.CountsMatch:
		return report, fmt.Errorf("%w: %d kept + %d duplicates != %d input rows",
			ErrVerificationFailed, len(kept), len(pairs), len(rows))
	case !report.KeysUnique:
		return report, fmt.Errorf("%w: kept rows contain repeated keys", ErrVerificationFailed)
	case !report.PairsConsistent:
		return report, fmt.Errorf("%w: duplicate pair references unknown original identity", ErrVerificationFailed)
	}

	return report, nil
}
