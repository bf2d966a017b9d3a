// pkg/dedup/metrics.go
package dedup

import (
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// RunMetrics tracks counters and timings for a dedup run.
type RunMetrics struct {
	logger          *zap.Logger
	StartTime       time.Time
	EndTime         time.Time
	RowsRead        int64
	RowsKept        int64
	DuplicatesFound int64
	InputBytes      int64
}

// NewRunMetrics creates a new RunMetrics instance.
func NewRunMetrics(logger *zap.Logger) *RunMetrics {
	return &RunMetrics{
		StartTime: time.Now(),
		logger:    logger,
	}
}

// RecordPass records the outcome of the dedup pass.
func (m *RunMetrics) RecordPass(rowsRead, rowsKept, duplicates int64) {
	m.RowsRead = rowsRead
	m.RowsKept = rowsKept
	m.DuplicatesFound = duplicates

	if m.logger != nil {
		m.logger.Info("Dedup pass completed",
			zap.Int64("rowsRead", rowsRead),
			zap.Int64("rowsKept", rowsKept),
			zap.Int64("duplicatesFound", duplicates))
	}
}

// RecordInputSize records the byte size of the input file.
func (m *RunMetrics) RecordInputSize(bytes int64) {
	m.InputBytes = bytes
}

// Complete marks the run as complete.
func (m *RunMetrics) Complete() {
	m.EndTime = time.Now()

	if m.logger != nil {
		m.logger.Info("Run completed",
			zap.Duration("totalDuration", m.Duration()),
			zap.Int64("rowsRead", m.RowsRead),
			zap.Int64("duplicatesFound", m.DuplicatesFound),
			zap.Float64("throughput", m.CalculateThroughput()))
	}
}

// Duration returns the total duration of the run so far.
func (m *RunMetrics) Duration() time.Duration {
	if m.EndTime.IsZero() {
		return time.Since(m.StartTime)
	}
	return m.EndTime.Sub(m.StartTime)
}

// CalculateThroughput calculates the rows/second throughput of the pass.
func (m *RunMetrics) CalculateThroughput() float64 {
	seconds := m.Duration().Seconds()
	if seconds <= 0 {
		return 0
	}
	return float64(m.RowsRead) / seconds
}

// GenerateReport creates a human-readable metrics report.
func (m *RunMetrics) GenerateReport() string {
	return fmt.Sprintf(`
Dedup Metrics Report
====================
Duration:          %s
Input Size:        %s

Rows Read:         %d
Rows Kept:         %d
Duplicates Found:  %d (%.1f%%)
Throughput:        %.2f rows/sec
`,
		formatDuration(m.Duration()),
		formatBytes(m.InputBytes),
		m.RowsRead,
		m.RowsKept,
		m.DuplicatesFound, m.getPercentage(float64(m.DuplicatesFound), float64(m.RowsRead)),
		m.CalculateThroughput(),
	)
}

// getPercentage safely calculates a percentage, avoiding division by zero.
func (m *RunMetrics) getPercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * 100
}

// ToJSON serializes metrics to JSON.
func (m *RunMetrics) ToJSON() ([]byte, error) {
	return json.Marshal(struct {
		Duration        string  `json:"duration"`
		RowsRead        int64   `json:"rowsRead"`
		RowsKept        int64   `json:"rowsKept"`
		DuplicatesFound int64   `json:"duplicatesFound"`
		InputBytes      int64   `json:"inputBytes"`
		Throughput      float64 `json:"throughput"`
	}{
		Duration:        formatDuration(m.Duration()),
		RowsRead:        m.RowsRead,
		RowsKept:        m.RowsKept,
		DuplicatesFound: m.DuplicatesFound,
		InputBytes:      m.InputBytes,
		Throughput:      m.CalculateThroughput(),
	})
}

// formatBytes converts bytes to a human-readable string.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// formatDuration formats a duration to a human-readable string.
func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	} else if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
