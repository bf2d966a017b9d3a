package csvio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mshammas/csvdeduplicator/pkg/model"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestReadAll(t *testing.T) {
	path := writeFile(t, t.TempDir(), "in.csv", "id,name\n1,alice\n2,bob\n")

	rows, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll returned error: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Field(0) != "id" || rows[2].Field(1) != "bob" {
		t.Errorf("unexpected rows: %v", rows)
	}
}

func TestReadAll_RaggedRows(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ragged.csv", "a,b,c\nx\ny,z\n")

	rows, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll returned error: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if len(rows[1]) != 1 || len(rows[2]) != 2 {
		t.Errorf("ragged widths not preserved: %v", rows)
	}
}

func TestReadAll_EmptyFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.csv", "")

	_, err := ReadAll(path)
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestReadAll_MissingFile(t *testing.T) {
	_, err := ReadAll(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if errors.Is(err, ErrEmptyInput) {
		t.Error("missing file must not be reported as empty input")
	}
}

func TestReadAll_SkipsBOM(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bom.csv", "\xEF\xBB\xBFid,name\n1,x\n")

	rows, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll returned error: %v", err)
	}
	if rows[0].Field(0) != "id" {
		t.Errorf("BOM not skipped: first field is %q", rows[0].Field(0))
	}
}

func TestReadHeader(t *testing.T) {
	path := writeFile(t, t.TempDir(), "in.csv", "id,name\n1,alice\n")

	header, err := ReadHeader(path)
	if err != nil {
		t.Fatalf("ReadHeader returned error: %v", err)
	}
	if len(header) != 2 || header[0] != "id" || header[1] != "name" {
		t.Errorf("unexpected header: %v", header)
	}
}

func TestReadHeader_EmptyFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.csv", "")

	_, err := ReadHeader(path)
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestDerivedOutputPath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"data.csv", "data_deduped.csv"},
		{"/tmp/data.csv", "/tmp/data_deduped.csv"},
		{"noext", "noext_deduped"},
		{"a.b.csv", "a.b_deduped.csv"},
	}

	for _, tt := range tests {
		if got := DerivedOutputPath(tt.input); got != tt.want {
			t.Errorf("DerivedOutputPath(%q): expected %q, got %q", tt.input, tt.want, got)
		}
	}
}

func TestWriteRows_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")

	rows := []model.Row{{"id", "name"}, {"1", "a,b"}, {"2", "line\nbreak"}}
	if err := WriteRows(path, rows); err != nil {
		t.Fatalf("WriteRows returned error: %v", err)
	}

	got, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll returned error: %v", err)
	}
	if len(got) != len(rows) {
		t.Fatalf("expected %d rows, got %d", len(rows), len(got))
	}
	for i := range rows {
		for j := range rows[i] {
			if got[i].Field(j) != rows[i][j] {
				t.Errorf("row %d field %d: expected %q, got %q", i, j, rows[i][j], got[i].Field(j))
			}
		}
	}
}

func TestWriteRows_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")

	if err := WriteRows(path, []model.Row{{"a"}}); err != nil {
		t.Fatalf("WriteRows returned error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir returned error: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "out.csv" {
		t.Errorf("expected only out.csv in dir, got %v", entries)
	}
}

func TestWriteDuplicatePairs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deduplicate_list")

	pairs := []model.DuplicatePair{
		{Original: "a", Duplicate: "a"},
		{Original: "b", Duplicate: "c"},
	}
	if err := WriteDuplicatePairs(path, pairs); err != nil {
		t.Fatalf("WriteDuplicatePairs returned error: %v", err)
	}

	rows, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll returned error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 records, got %d", len(rows))
	}
	if rows[1].Field(0) != "b" || rows[1].Field(1) != "c" {
		t.Errorf("unexpected second record: %v", rows[1])
	}
}

func TestWriteDuplicatePairs_EmptyLog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deduplicate_list")

	if err := WriteDuplicatePairs(path, nil); err != nil {
		t.Fatalf("WriteDuplicatePairs returned error: %v", err)
	}

	// The log file exists even when no duplicates were found.
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("expected empty log, got %d bytes", info.Size())
	}
}
