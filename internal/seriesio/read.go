// Package seriesio reads a numeric series from delimited text and writes
// decomposition results as CSV or JSON.
package seriesio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-mstl/core"
)

// ErrNoData is returned when the input holds no observations.
var ErrNoData = errors.New("seriesio: no observations")

// ReadOptions controls how a series column is located.
type ReadOptions struct {
	// Column is a header name or a 0-based column index. Empty selects the
	// first column whose first observation is numeric.
	Column string
	// HasHeader treats the first record as column names.
	HasHeader bool
	// Delimiter separates fields.
	Delimiter rune
}

// DefaultReadOptions returns comma-separated input with a header row.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{HasHeader: true, Delimiter: ','}
}

// ReadFile reads one series column from the file at path.
func ReadFile(path string, opts ReadOptions) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadColumn(f, opts)
}

// ReadColumn reads one series column from r. Every observation must be a
// finite number; empty or non-numeric cells fail with their line number.
func ReadColumn(r io.Reader, opts ReadOptions) ([]float64, error) {
	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	reader.Comment = '#'

	var header []string
	if opts.HasHeader {
		rec, err := reader.Read()
		if err == io.EOF {
			return nil, ErrNoData
		}
		if err != nil {
			return nil, fmt.Errorf("seriesio: header: %w", err)
		}
		header = rec
	}

	col := -1
	if opts.Column != "" {
		var err error
		col, err = columnIndex(header, opts.Column)
		if err != nil {
			return nil, err
		}
	}

	var values []float64
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("seriesio: %w", err)
		}
		line, _ := reader.FieldPos(0)

		if col < 0 {
			col = firstNumeric(rec)
			if col < 0 {
				return nil, fmt.Errorf("seriesio: line %d: no numeric column", line)
			}
		}
		if col >= len(rec) {
			return nil, fmt.Errorf("seriesio: line %d: missing column %d", line, col)
		}

		v, err := parseValue(rec[col])
		if err != nil {
			return nil, fmt.Errorf("seriesio: line %d: %w", line, err)
		}
		values = append(values, v)
	}

	if len(values) == 0 {
		return nil, ErrNoData
	}
	return values, nil
}

func columnIndex(header []string, column string) (int, error) {
	for i, h := range header {
		if strings.TrimSpace(h) == column {
			return i, nil
		}
	}
	idx, err := strconv.Atoi(column)
	if err != nil || idx < 0 {
		return 0, fmt.Errorf("seriesio: column %q not found", column)
	}
	return idx, nil
}

// firstNumeric returns the first field that parses as a float. Non-finite
// values still select the column so that parseValue reports them.
func firstNumeric(rec []string) int {
	for i, field := range rec {
		if _, err := strconv.ParseFloat(strings.TrimSpace(field), 64); err == nil {
			return i
		}
	}
	return -1
}

func parseValue(field string) (float64, error) {
	s := strings.TrimSpace(field)
	if s == "" {
		return 0, errors.New("missing value")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("value %q is not a number", s)
	}
	if !core.IsFinite(v) {
		return 0, fmt.Errorf("value %q is not finite", s)
	}
	return v, nil
}
