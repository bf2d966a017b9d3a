// pkg/audit/store.go
package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/mshammas/csvdeduplicator/pkg/config"
	"github.com/mshammas/csvdeduplicator/pkg/model"
)

// Store records dedup runs and the duplicates they found in PostgreSQL
// tracking tables. It is optional: the CLI only constructs one when an
// audit DSN is configured.
type Store struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewStore connects to the audit database and ensures the tracking tables
// exist.
func NewStore(ctx context.Context, cfg *config.AuditConfig, logger *zap.Logger) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("audit configuration cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	logger.Info("Connecting to audit database")

	db, err := sqlx.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize audit database connection: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to audit database: %w", err)
	}

	store := &Store{
		db:     db,
		logger: logger,
	}

	if err := store.setupTrackingTables(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup tracking tables: %w", err)
	}

	return store, nil
}

// setupTrackingTables ensures the dedup_runs and dedup_duplicates tables
// exist.
func (s *Store) setupTrackingTables(ctx context.Context) error {
	execCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	createRunsSQL := `
		CREATE TABLE IF NOT EXISTS public.dedup_runs (
			run_id TEXT PRIMARY KEY,
			input_file TEXT NOT NULL,
			output_file TEXT NOT NULL,
			duplicate_log TEXT NOT NULL,
			key_columns TEXT NOT NULL,
			rows_read BIGINT NOT NULL,
			rows_kept BIGINT NOT NULL,
			duplicates_found BIGINT NOT NULL,
			duration_ms BIGINT NOT NULL,
			started_at TIMESTAMP WITH TIME ZONE NOT NULL,
			finished_at TIMESTAMP WITH TIME ZONE NOT NULL
		)
	`
	if _, err := s.db.ExecContext(execCtx, createRunsSQL); err != nil {
		return fmt.Errorf("failed to create dedup_runs table: %w", err)
	}

	createDuplicatesSQL := `
		CREATE TABLE IF NOT EXISTS public.dedup_duplicates (
			id SERIAL PRIMARY KEY,
			run_id TEXT NOT NULL,
			input_file TEXT NOT NULL,
			row_number INTEGER NOT NULL,
			original_identity TEXT NOT NULL,
			duplicate_identity TEXT NOT NULL,
			key_columns TEXT NOT NULL,
			detected_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := s.db.ExecContext(execCtx, createDuplicatesSQL); err != nil {
		return fmt.Errorf("failed to create dedup_duplicates table: %w", err)
	}

	s.logger.Info("Ensured audit tracking tables exist")
	return nil
}

// RecordRun inserts the summary of a completed run.
func (s *Store) RecordRun(ctx context.Context, record model.RunRecord) error {
	execCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := s.db.ExecContext(execCtx, `
		INSERT INTO public.dedup_runs
		(run_id, input_file, output_file, duplicate_log, key_columns,
		 rows_read, rows_kept, duplicates_found, duration_ms, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		record.RunID,
		record.InputFile,
		record.OutputFile,
		record.DuplicateLog,
		record.KeyColumns,
		record.RowsRead,
		record.RowsKept,
		record.DuplicatesFound,
		record.Duration.Milliseconds(),
		record.StartedAt,
		record.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run record: %w", err)
	}

	s.logger.Info("Recorded dedup run",
		zap.String("runID", record.RunID),
		zap.Int64("duplicatesFound", record.DuplicatesFound))
	return nil
}

// RecordDuplicates batch inserts duplicate operations in a transaction.
func (s *Store) RecordDuplicates(ctx context.Context, operations []model.DedupOperation) error {
	if len(operations) == 0 {
		return nil
	}

	execCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	tx, err := s.db.BeginTxx(execCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Error("Failed to rollback transaction",
					zap.Error(rbErr),
					zap.Error(err))
			}
		}
	}()

	stmt, err := tx.PrepareContext(execCtx, `
		INSERT INTO public.dedup_duplicates
		(run_id, input_file, row_number, original_identity, duplicate_identity, key_columns)
		VALUES ($1, $2, $3, $4, $5, $6)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, op := range operations {
		_, err = stmt.ExecContext(execCtx,
			op.RunID,
			op.InputFile,
			op.RowNumber,
			op.OriginalIdentity,
			op.DuplicateIdentity,
			op.KeyColumns,
		)
		if err != nil {
			return fmt.Errorf("failed to insert duplicate record: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info("Recorded duplicate operations", zap.Int("count", len(operations)))
	return nil
}

// Close closes the audit database connection.
func (s *Store) Close() error {
	s.logger.Info("Closing audit database connection")
	return s.db.Close()
}
