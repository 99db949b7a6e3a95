// Package table reads the tabular source of tagged entries.
//
// The source is a CSV file with a header row. Three columns are required:
//
//	Name  entry title, also the entry's identity
//	Tag   slash-delimited hierarchical tag path (may be empty)
//	Link  URL or reference (may be empty)
//
// Additional columns are ignored and column order is free. Rows shorter than
// the header are padded with empty cells.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	tgerrors "github.com/matzehuels/taggraph/pkg/errors"
)

// Required column names.
const (
	ColumnName = "Name"
	ColumnTag  = "Tag"
	ColumnLink = "Link"
)

// RequiredColumns lists the columns every source table must have.
var RequiredColumns = []string{ColumnName, ColumnTag, ColumnLink}

// Row is one entry of the source table.
type Row struct {
	Name string
	Tag  string
	Link *string // nil when the cell is empty
}

// ReadFile reads the CSV table at path.
func ReadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, tgerrors.Wrap(tgerrors.ErrCodeFileNotFound, err, "input table %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// Read decodes a CSV table from r.
//
// Read returns an ErrCodeMissingColumn error when the header lacks a required
// column, ErrCodeInvalidRow when a row has an empty Name, and
// ErrCodeInvalidInput for CSV syntax errors or an empty input. Read does not
// close r.
func Read(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, tgerrors.New(tgerrors.ErrCodeInvalidInput, "table is empty")
	}
	if err != nil {
		return nil, tgerrors.Wrap(tgerrors.ErrCodeInvalidInput, err, "read header")
	}
	cols, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, tgerrors.Wrap(tgerrors.ErrCodeInvalidInput, err, "read row")
		}
		line, _ := cr.FieldPos(0)

		row := Row{
			Name: cell(rec, cols[ColumnName]),
			Tag:  cell(rec, cols[ColumnTag]),
		}
		if row.Name == "" {
			return nil, tgerrors.New(tgerrors.ErrCodeInvalidRow, "line %d: empty %s", line, ColumnName)
		}
		if link := cell(rec, cols[ColumnLink]); link != "" {
			row.Link = &link
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// columnIndex maps required column names to their header positions.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		h = strings.TrimSpace(h)
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}

	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, tgerrors.New(tgerrors.ErrCodeMissingColumn, "missing required column(s): %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

// cell returns rec[i], or "" when the record is too short.
// The value is copied because records are reused between reads.
func cell(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.Clone(rec[i])
}
