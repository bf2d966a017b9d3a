// pkg/csvio/reader.go
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mshammas/csvdeduplicator/pkg/model"
)

// ErrEmptyInput is returned when the input file contains no rows at all
// (no header, no data). It is fatal to the run and reported before any
// processing.
var ErrEmptyInput = errors.New("input file is empty")

// ReadAll reads every row of a CSV file into memory. Ragged rows are legal:
// the reader does not enforce a uniform field count, since short rows are
// handled downstream as empty-string fields. A UTF-8 BOM at the start of
// the file is skipped.
func ReadAll(path string) ([]model.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(newBOMSkippingReader(f))
	reader.FieldsPerRecord = -1

	var rows []model.Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read input file %s: %w", path, err)
		}
		rows = append(rows, model.Row(record))
	}

	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}

	return rows, nil
}

// ReadHeader reads only the first row of a CSV file. Used by the
// header-listing mode, which has no need for the full row set.
func ReadHeader(path string) (model.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(newBOMSkippingReader(f))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header from %s: %w", path, err)
	}

	return model.Row(header), nil
}

// bomSkippingReader wraps an io.Reader and drops a leading UTF-8 BOM
// (0xEF 0xBB 0xBF), commonly added by Windows tools.
type bomSkippingReader struct {
	reader  io.Reader
	checked bool
	buf     []byte
}

func newBOMSkippingReader(r io.Reader) *bomSkippingReader {
	return &bomSkippingReader{reader: r}
}

// Read implements io.Reader. On the first call it inspects the first three
// bytes and discards them if they form a BOM.
func (r *bomSkippingReader) Read(p []byte) (int, error) {
	if !r.checked {
		r.checked = true

		var head [3]byte
		n, err := io.ReadFull(r.reader, head[:])
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			// Fewer than 3 bytes in the file; nothing to skip.
			r.buf = head[:n]
		} else if err != nil {
			return 0, err
		} else if head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
			r.buf = nil
		} else {
			r.buf = head[:n]
		}
	}

	if len(r.buf) > 0 {
		n := copy(p, r.buf)
		r.buf = r.buf[n:]
		return n, nil
	}

	return r.reader.Read(p)
}
