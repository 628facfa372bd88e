// Package dataset loads the monthly CSV datasets into series. Rows without a
// period or a numeric value are dropped, never repaired.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/poder-adquisitivo/internal/series"
	"github.com/iwvelando/poder-adquisitivo/pkg/mathutil"
)

var (
	// ErrMissingColumn is returned when the header lacks a configured column.
	ErrMissingColumn = errors.New("missing column")

	// ErrEmptyFile is returned for input without a header row.
	ErrEmptyFile = errors.New("empty dataset")
)

// Stats counts the data rows read and the rows dropped by the filter.
type Stats struct {
	Rows    int
	Dropped int
}

// Kept returns the number of rows that made it into the series.
func (s Stats) Kept() int {
	return s.Rows - s.Dropped
}

// Parse reads a CSV with a header row and builds a series from periodColumn
// and valueColumn, keeping the source order.
func Parse(name string, r io.Reader, periodColumn, valueColumn string) (series.Series, Stats, error) {
	var stats Stats

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return series.Series{}, stats, fmt.Errorf("%w: %s has no header row", ErrEmptyFile, name)
	}
	if err != nil {
		return series.Series{}, stats, fmt.Errorf("failed to read header of %s: %w", name, err)
	}

	periodIdx, valueIdx := -1, -1
	for i, col := range header {
		col = strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
		switch col {
		case periodColumn:
			if periodIdx < 0 {
				periodIdx = i
			}
		case valueColumn:
			if valueIdx < 0 {
				valueIdx = i
			}
		}
	}
	if periodIdx < 0 {
		return series.Series{}, stats, fmt.Errorf("%w: %s has no column %q", ErrMissingColumn, name, periodColumn)
	}
	if valueIdx < 0 {
		return series.Series{}, stats, fmt.Errorf("%w: %s has no column %q", ErrMissingColumn, name, valueColumn)
	}

	var records []series.MonthlyRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return series.Series{}, stats, fmt.Errorf("failed to read %s: %w", name, err)
		}
		stats.Rows++

		record, ok := parseRow(row, periodIdx, valueIdx)
		if !ok {
			stats.Dropped++
			continue
		}
		records = append(records, record)
	}

	return series.New(name, records), stats, nil
}

func parseRow(row []string, periodIdx, valueIdx int) (series.MonthlyRecord, bool) {
	if periodIdx >= len(row) || valueIdx >= len(row) {
		return series.MonthlyRecord{}, false
	}
	period := strings.TrimSpace(row[periodIdx])
	if period == "" {
		return series.MonthlyRecord{}, false
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(row[valueIdx]), 64)
	if err != nil || !mathutil.IsFinite(value) {
		return series.MonthlyRecord{}, false
	}
	return series.MonthlyRecord{Period: period, Value: value}, true
}
