// pkg/dedup/manager.go
package dedup

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/mshammas/csvdeduplicator/pkg/csvio"
	"github.com/mshammas/csvdeduplicator/pkg/model"
	"github.com/mshammas/csvdeduplicator/pkg/selector"
)

// AuditSink records completed runs and their duplicates in an external
// store. A nil sink disables auditing.
type AuditSink interface {
	RecordRun(ctx context.Context, record model.RunRecord) error
	RecordDuplicates(ctx context.Context, operations []model.DedupOperation) error
}

// RunOptions describes one dedup run.
type RunOptions struct {
	InputPath    string
	OutputPath   string // Empty: derived from InputPath ("_deduped" suffix)
	DuplicateLog string // Empty: csvio.DefaultDuplicateLogName
	Spec         selector.ColumnSpec
}

// Manager orchestrates a dedup run: read, resolve columns, deduplicate,
// verify, write both artifacts, and optionally audit. Runs are
// single-threaded one-shot batch transformations; the whole table is
// materialized in memory before processing begins, and outputs are written
// only after the full pass succeeds.
type Manager struct {
	logger   *zap.Logger
	metrics  *RunMetrics
	verifier *Verifier
	audit    AuditSink
}

// NewManager creates a new run manager. The audit sink may be nil.
func NewManager(logger *zap.Logger, audit AuditSink) *Manager {
	return &Manager{
		logger:   logger,
		metrics:  NewRunMetrics(logger),
		verifier: NewVerifier(logger),
		audit:    audit,
	}
}

// GetMetrics returns the run metrics.
func (m *Manager) GetMetrics() *RunMetrics {
	return m.metrics
}

// Run executes one dedup run. On failure no artifact is left at either
// destination path.
func (m *Manager) Run(ctx context.Context, opts RunOptions) (*DedupResult, error) {
	result := NewDedupResult(opts.InputPath)
	result.OutputFile = opts.OutputPath
	if result.OutputFile == "" {
		result.OutputFile = csvio.DerivedOutputPath(opts.InputPath)
	}
	result.DuplicateLog = opts.DuplicateLog
	if result.DuplicateLog == "" {
		result.DuplicateLog = csvio.DefaultDuplicateLogName
	}

	m.logger.Info("Starting dedup run",
		zap.String("runID", result.RunID),
		zap.String("input", opts.InputPath),
		zap.String("output", result.OutputFile))

	if info, err := os.Stat(opts.InputPath); err == nil {
		m.metrics.RecordInputSize(info.Size())
	}

	rows, err := csvio.ReadAll(opts.InputPath)
	if err != nil {
		result.Complete(false)
		return result, err
	}

	schema := model.NewTableSchema(rows[0])
	columns, err := selector.Resolve(opts.Spec, schema.Width())
	if err != nil {
		result.Complete(false)
		return result, err
	}
	result.KeyColumns = columns.String()

	m.logger.Info("Resolved key columns",
		zap.String("columns", result.KeyColumns),
		zap.Int("tableWidth", schema.Width()),
		zap.Int("rows", len(rows)))

	kept, pairs := Deduplicate(rows, columns)
	result.RowsRead = int64(len(rows))
	result.RowsKept = int64(len(kept))
	result.DuplicatesFound = int64(len(pairs))
	m.metrics.RecordPass(result.RowsRead, result.RowsKept, result.DuplicatesFound)

	if _, err := m.verifier.Verify(rows, kept, pairs, columns); err != nil {
		result.Complete(false)
		return result, err
	}

	if err := csvio.WriteRows(result.OutputFile, kept); err != nil {
		result.Complete(false)
		return result, fmt.Errorf("failed to write deduplicated output: %w", err)
	}

	if err := csvio.WriteDuplicatePairs(result.DuplicateLog, pairs); err != nil {
		result.Complete(false)
		return result, fmt.Errorf("failed to write duplicate log: %w", err)
	}

	if m.audit != nil {
		if err := m.recordAudit(ctx, result, rows, pairs, columns); err != nil {
			// Artifacts are already durable and valid; the run still fails
			// so the operator notices the missing audit trail.
			result.Complete(false)
			return result, fmt.Errorf("%w: %v", errAudit, err)
		}
	}

	result.Complete(true)
	m.metrics.Complete()

	m.logger.Info("Dedup run completed",
		zap.String("runID", result.RunID),
		zap.Int64("rowsKept", result.RowsKept),
		zap.Int64("duplicatesFound", result.DuplicatesFound),
		zap.Duration("duration", result.Duration))

	return result, nil
}

// recordAudit writes the run summary and its duplicate operations to the
// audit sink.
func (m *Manager) recordAudit(
	ctx context.Context,
	result *DedupResult,
	rows []model.Row,
	pairs []model.DuplicatePair,
	columns selector.ResolvedColumns,
) error {
	now := time.Now()
	record := model.RunRecord{
		RunID:           result.RunID,
		InputFile:       result.InputFile,
		OutputFile:      result.OutputFile,
		DuplicateLog:    result.DuplicateLog,
		KeyColumns:      result.KeyColumns,
		RowsRead:        result.RowsRead,
		RowsKept:        result.RowsKept,
		DuplicatesFound: result.DuplicatesFound,
		Duration:        now.Sub(result.StartTime),
		StartedAt:       result.StartTime,
		FinishedAt:      now,
	}

	if err := m.audit.RecordRun(ctx, record); err != nil {
		return err
	}

	operations := buildDedupOperations(result, rows, pairs, columns)
	return m.audit.RecordDuplicates(ctx, operations)
}

// buildDedupOperations re-walks the rows to attach 1-indexed row numbers to
// each duplicate pair for the audit trail.
func buildDedupOperations(
	result *DedupResult,
	rows []model.Row,
	pairs []model.DuplicatePair,
	columns selector.ResolvedColumns,
) []model.DedupOperation {
	operations := make([]model.DedupOperation, 0, len(pairs))

	seen := make(map[model.Key]bool, len(rows))
	pairIdx := 0
	for i, row := range rows {
		key := model.BuildKey(row, columns)
		if !seen[key] {
			seen[key] = true
			continue
		}
		if pairIdx >= len(pairs) {
			break
		}
		pair := pairs[pairIdx]
		pairIdx++
		operations = append(operations, model.DedupOperation{
			RunID:             result.RunID,
			InputFile:         result.InputFile,
			RowNumber:         i + 1,
			OriginalIdentity:  pair.Original,
			DuplicateIdentity: pair.Duplicate,
			KeyColumns:        result.KeyColumns,
		})
	}

	return operations
}
