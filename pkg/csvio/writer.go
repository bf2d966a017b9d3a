// pkg/csvio/writer.go
package csvio

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mshammas/csvdeduplicator/pkg/model"
)

// DefaultDuplicateLogName is the filename of the duplicate-pair log when no
// override is configured.
const DefaultDuplicateLogName = "deduplicate_list"

// DerivedOutputPath derives the deduplicated output path from the input
// path by appending "_deduped" before the extension, e.g.
// "data.csv" -> "data_deduped.csv".
func DerivedOutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(inputPath, ext)
	return fmt.Sprintf("%s_deduped%s", base, ext)
}

// WriteRows writes rows to a CSV file atomically: the data is written to a
// temporary file in the destination directory, flushed to disk, and then
// renamed over the destination. A failed run never leaves a partial file
// behind at the destination path.
func WriteRows(path string, rows []model.Row) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary output file: %w", err)
	}
	tmpPath := tmp.Name()

	// On any failure below, the temp file is removed.
	if err := writeAndClose(tmp, rows); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move output into place at %s: %w", path, err)
	}

	return nil
}

// WriteDuplicatePairs writes the duplicate-pair log as two-column CSV
// records, in the order the duplicates were discovered. The same atomic
// temp-then-rename policy as WriteRows applies.
func WriteDuplicatePairs(path string, pairs []model.DuplicatePair) error {
	rows := make([]model.Row, len(pairs))
	for i, pair := range pairs {
		rows[i] = model.Row{pair.Original, pair.Duplicate}
	}
	return WriteRows(path, rows)
}

// writeAndClose encodes rows into f, syncs, and closes it.
func writeAndClose(f *os.File, rows []model.Row) error {
	writer := csv.NewWriter(f)
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		f.Close()
		return fmt.Errorf("failed to flush output: %w", err)
	}

	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("failed to sync output: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}

	return nil
}
