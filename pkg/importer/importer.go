package importer

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Format selects how an upload is decoded.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ImportOptions defines the configuration for an asset import
type ImportOptions struct {
	Schema Schema
	Format Format // default FormatCSV
}

// Record is one mapped row, keyed by Field.Key.
type Record map[string]string

// ImportSummary describes how the uploaded header row lined up with the schema.
type ImportSummary struct {
	Schema           string   `json:"schema"`
	Rows             int      `json:"rows"`
	Matched          []string `json:"matched"`
	Missing          []string `json:"missing"`
	Ignored          []string `json:"ignored"`
	DuplicateHeaders []string `json:"duplicate_headers,omitempty"`
}

// Result is the outcome of a successful import.
type Result struct {
	Records []Record
	Summary ImportSummary
}

// FormatFromFilename picks the decoder for an uploaded file name.
func FormatFromFilename(name string) Format {
	if strings.EqualFold(filepath.Ext(strings.TrimSpace(name)), ".xlsx") {
		return FormatXLSX
	}
	return FormatCSV
}

// Normalize reduces a column header to its canonical key: surrounding
// whitespace trimmed, lowercased, and every space, '/', '.' and '_' removed.
func Normalize(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '.', '_':
			return -1
		}
		return r
	}, h)
}

// HeaderIndex maps canonical header keys to column positions.
type HeaderIndex struct {
	headers    []string
	columns    map[string]int
	duplicates []string
}

// NewHeaderIndex indexes a header row. When several headers share a
// canonical key the first one wins and the others are recorded as duplicates.
func NewHeaderIndex(headers []string) *HeaderIndex {
	ix := &HeaderIndex{
		headers: headers,
		columns: make(map[string]int, len(headers)),
	}
	for i, h := range headers {
		key := Normalize(h)
		if key == "" {
			continue
		}
		if _, seen := ix.columns[key]; seen {
			ix.duplicates = append(ix.duplicates, h)
			continue
		}
		ix.columns[key] = i
	}
	return ix
}

// Lookup returns the column for a logical field name.
func (ix *HeaderIndex) Lookup(name string) (int, bool) {
	col, ok := ix.columns[Normalize(name)]
	return col, ok
}

// Value reads the named field from row. Unmatched fields and short rows
// yield the empty string.
func (ix *HeaderIndex) Value(row []string, name string) string {
	col, ok := ix.Lookup(name)
	if !ok || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// Duplicates returns the headers shadowed by an earlier header with the same key.
func (ix *HeaderIndex) Duplicates() []string {
	return ix.duplicates
}

// MapRows turns data rows into records over the schema, in row order.
func MapRows(headers []string, rows [][]string, schema Schema) ([]Record, ImportSummary) {
	ix := NewHeaderIndex(headers)

	summary := ImportSummary{
		Schema:           schema.Name,
		Matched:          []string{},
		Missing:          []string{},
		Ignored:          []string{},
		DuplicateHeaders: ix.Duplicates(),
	}

	used := make(map[int]bool, len(schema.Fields))
	for _, f := range schema.Fields {
		if col, ok := ix.Lookup(f.Header); ok {
			used[col] = true
			summary.Matched = append(summary.Matched, f.Header)
		} else {
			summary.Missing = append(summary.Missing, f.Header)
		}
	}
	for i, h := range headers {
		if !used[i] && strings.TrimSpace(h) != "" {
			summary.Ignored = append(summary.Ignored, h)
		}
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec := make(Record, len(schema.Fields))
		for _, f := range schema.Fields {
			rec[f.Key] = ix.Value(row, f.Header)
		}
		records = append(records, rec)
	}
	summary.Rows = len(records)

	return records, summary
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV decodes a CSV document whose first record is the header row.
// Invalid UTF-8 is dropped, a leading byte-order mark is ignored, and
// rows may have any number of fields. Empty input yields no header and
// no rows.
func ReadCSV(r io.Reader) ([]string, [][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "read csv")
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	text := strings.ToValidUTF8(string(data), "")

	cr := csv.NewReader(strings.NewReader(text))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	headers, err := cr.Read()
	if err == io.EOF {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, errors.Wrap(err, "read csv header")
	}

	var rows [][]string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errors.Wrap(err, "read csv row")
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}

// Import decodes r according to opts.Format and maps every data row
// through opts.Schema.
func Import(ctx context.Context, r io.Reader, opts ImportOptions) (Result, error) {
	if opts.Format == "" {
		opts.Format = FormatCSV
	}
	if len(opts.Schema.Fields) == 0 {
		opts.Schema = Minimal()
	}

	var (
		headers []string
		rows    [][]string
		err     error
	)
	switch opts.Format {
	case FormatCSV:
		headers, rows, err = ReadCSV(r)
	case FormatXLSX:
		headers, rows, err = ReadXLSX(r)
	default:
		return Result{}, errors.Errorf("unsupported import format %q", opts.Format)
	}
	if err != nil {
		return Result{}, err
	}

	if err := ctx.Err(); err != nil {
		return Result{}, errors.WithStack(err)
	}

	records, summary := MapRows(headers, rows, opts.Schema)
	return Result{Records: records, Summary: summary}, nil
}
