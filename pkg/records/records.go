// Package records loads raw athlete records from CSV, JSON and JSON Lines.
//
// Every reader produces []flow.RawRecord: one map per row keyed by column
// name. Values are kept as loosely typed as the source allows (strings for
// CSV, decoded JSON values otherwise); cleaning happens in package flow.
package records

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	tferrors "github.com/matzehuels/tierflow/pkg/errors"
	"github.com/matzehuels/tierflow/pkg/flow"
)

// Format identifies a record file format.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
)

// DetectFormat infers the format from a file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".jsonl", ".ndjson":
		return FormatJSONL, nil
	default:
		return "", tferrors.New(tferrors.ErrCodeInvalidFormat,
			"cannot infer record format of %q (expected .csv, .json, .jsonl or .ndjson)", path)
	}
}

// ReadFile reads the records of a file, choosing the reader by extension.
func ReadFile(path string) ([]flow.RawRecord, error) {
	if err := tferrors.ValidatePath(path); err != nil {
		return nil, err
	}
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, tferrors.Wrap(tferrors.ErrCodeFileNotFound, err, "records file %s", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, format)
}

// Read reads records in the given format.
func Read(r io.Reader, format Format) ([]flow.RawRecord, error) {
	switch format {
	case FormatCSV:
		return ReadCSV(r)
	case FormatJSON:
		return ReadJSON(r)
	case FormatJSONL:
		return ReadJSONLines(r)
	default:
		return nil, tferrors.New(tferrors.ErrCodeInvalidFormat, "unknown record format %q", format)
	}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV reads a CSV file with a header row. Short rows leave the trailing
// columns absent and empty cells decode as nil, so both fall back to the
// placeholder values during cleaning.
func ReadCSV(r io.Reader) ([]flow.RawRecord, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, tferrors.Wrap(tferrors.ErrCodeInvalidInput, err, "read csv header")
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	var out []flow.RawRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, tferrors.Wrap(tferrors.ErrCodeInvalidInput, err, "read csv row %d", len(out)+2)
		}
		rec := make(flow.RawRecord, len(columns))
		for i, col := range columns {
			if col == "" || i >= len(row) {
				continue
			}
			if row[i] == "" {
				rec[col] = nil
				continue
			}
			rec[col] = row[i]
		}
		out = append(out, rec)
	}
	return out, nil
}

// ReadJSON reads a JSON array of objects. Numbers are kept as json.Number so
// identifiers such as "007" survive cleaning unchanged.
func ReadJSON(r io.Reader) ([]flow.RawRecord, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var out []flow.RawRecord
	if err := dec.Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, tferrors.Wrap(tferrors.ErrCodeInvalidInput, err, "decode json records")
	}
	return out, nil
}

// ReadJSONLines reads one JSON object per line. Blank lines are skipped.
func ReadJSONLines(r io.Reader) ([]flow.RawRecord, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var out []flow.RawRecord
	for {
		var rec flow.RawRecord
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, tferrors.Wrap(tferrors.ErrCodeInvalidInput, err, "decode json line %d", len(out)+1)
		}
		out = append(out, rec)
	}
}
