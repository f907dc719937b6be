// Package dataset loads bulk expert ratings from CSV exports.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
)

// Row maps a normalized column name to the trimmed cell value.
type Row map[string]string

// utf8BOM is prepended to CSV exports by some spreadsheet tools.
const utf8BOM = "\ufeff"

// LoadCSV reads every data row of a rating export. The first row holds the
// column names, which are trimmed and lowercased (component names after a
// "component:" or "reasoning:" prefix keep their case); duplicate names are
// rejected. Blank lines are skipped.
func LoadCSV(path string) ([]Row, error) {
	return loadRows(path, 1, math.MaxInt)
}

// LoadCSVRange reads data rows start through end (1-based, inclusive). Row 1
// is the first row after the header. An end past the last row is clamped,
// and a start past it yields no rows.
func LoadCSVRange(path string, start, end int) ([]Row, error) {
	if start < 1 {
		return nil, fmt.Errorf("csv: range start must be >= 1, got %d", start)
	}
	if end < start {
		return nil, fmt.Errorf("csv: range end (%d) must be >= start (%d)", end, start)
	}
	return loadRows(path, start, end)
}

func loadRows(path string, start, end int) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("csv: %s is empty (no header row)", path)
	}
	if err != nil {
		return nil, fmt.Errorf("csv: parse %s: %w", path, err)
	}
	columns, err := normalizeHeader(header)
	if err != nil {
		return nil, fmt.Errorf("csv: %s: %w", path, err)
	}

	rows := []Row{}
	for n := 1; n <= end; n++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: parse %s: %w", path, err)
		}
		if n < start {
			continue
		}
		row := make(Row, len(columns))
		for i, col := range columns {
			row[col] = strings.TrimSpace(record[i])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func normalizeHeader(header []string) ([]string, error) {
	columns := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		col := normalizeColumn(h)
		if col == "" {
			return nil, fmt.Errorf("column %d has no name", i+1)
		}
		if seen[col] {
			return nil, fmt.Errorf("duplicate column %q", col)
		}
		seen[col] = true
		columns[i] = col
	}
	return columns, nil
}

// normalizeColumn lowercases a column name. For per-component columns only
// the prefix is lowercased; the component name must match the AI analysis
// exactly.
func normalizeColumn(h string) string {
	h = strings.TrimSpace(h)
	for _, prefix := range []string{ComponentPrefix, ReasoningPrefix} {
		if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
			return prefix + strings.TrimSpace(h[len(prefix):])
		}
	}
	return strings.ToLower(h)
}
