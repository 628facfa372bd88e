// Package prepare turns raw daily exchange-rate exports into the monthly
// average CSVs the dataset loader reads.
package prepare

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/poder-adquisitivo/internal/series"
	"github.com/iwvelando/poder-adquisitivo/pkg/constants"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

// ErrMissingColumn is returned when the raw export lacks the date or value column.
var ErrMissingColumn = errors.New("missing column")

// dateLayouts are tried in order; exports use ISO dates or day-first dates.
var dateLayouts = []string{"2006-01-02", "02.01.2006", "02/01/2006"}

// Format describes one raw export layout.
type Format struct {
	Name         string
	DateColumn   string
	ValueColumn  string
	OutputColumn string
	Normalize    func(raw string) (float64, error)
}

// Blue is the parallel-market export: "Fecha", "Último" with es-AR numbers.
var Blue = Format{
	Name:         constants.MarketBlue,
	DateColumn:   "Fecha",
	ValueColumn:  "Último",
	OutputColumn: constants.DefaultBlueRateColumn,
	Normalize:    NormalizeBlue,
}

// Official is the central bank export: "indice_tiempo", "dolar_estadounidense".
var Official = Format{
	Name:         constants.MarketOfficial,
	DateColumn:   "indice_tiempo",
	ValueColumn:  "dolar_estadounidense",
	OutputColumn: constants.DefaultOfficialRateColumn,
	Normalize:    NormalizeOfficial,
}

// FormatByName returns the export format for a market name.
func FormatByName(name string) (Format, error) {
	switch name {
	case Blue.Name:
		return Blue, nil
	case Official.Name:
		return Official, nil
	}
	return Format{}, fmt.Errorf("unknown export format %q, expected %s or %s", name, Blue.Name, Official.Name)
}

// NormalizeBlue parses "1.234,50" style numbers: dots are thousands
// separators, the comma is the decimal mark and anything else is noise.
func NormalizeBlue(raw string) (float64, error) {
	s := strings.ReplaceAll(raw, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, s)
	return strconv.ParseFloat(s, 64)
}

// NormalizeOfficial parses official export values. Some rows lost their
// decimal point; an all-digit value longer than three digits gets one
// inserted before its last three digits.
func NormalizeOfficial(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if !strings.Contains(s, ".") && len(s) > 3 && isDigits(s) {
		s = s[:len(s)-3] + "." + s[len(s)-3:]
	}
	return strconv.ParseFloat(s, 64)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// ParseDate accepts the date layouts found in the exports.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

// Options controls which rows are kept.
type Options struct {
	StartYear int
}

// Stats counts the raw rows read and dropped.
type Stats struct {
	Rows        int
	BadDate     int
	BadValue    int
	BeforeStart int
	Months      int
}

// Monthly reads a raw daily export and returns one record per month holding
// the mean of that month's values rounded to two decimals, in ascending
// period order.
func Monthly(logger *zap.Logger, r io.Reader, f Format, opts Options) ([]series.MonthlyRecord, Stats, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var stats Stats

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, stats, fmt.Errorf("failed to read header: %w", err)
	}
	dateIdx, valueIdx := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")) {
		case f.DateColumn:
			dateIdx = i
		case f.ValueColumn:
			valueIdx = i
		}
	}
	if dateIdx < 0 || valueIdx < 0 {
		return nil, stats, fmt.Errorf("%w: export needs columns %q and %q", ErrMissingColumn, f.DateColumn, f.ValueColumn)
	}

	byMonth := make(map[string][]float64)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("failed to read export: %w", err)
		}
		stats.Rows++
		if dateIdx >= len(row) || valueIdx >= len(row) {
			stats.BadValue++
			continue
		}

		date, err := ParseDate(row[dateIdx])
		if err != nil {
			stats.BadDate++
			continue
		}
		if date.Year() < opts.StartYear {
			stats.BeforeStart++
			continue
		}
		value, err := f.Normalize(row[valueIdx])
		if err != nil {
			stats.BadValue++
			continue
		}
		period := date.Format(constants.DateTimeLayout)
		byMonth[period] = append(byMonth[period], value)
	}

	periods := make([]string, 0, len(byMonth))
	for p := range byMonth {
		periods = append(periods, p)
	}
	sort.Strings(periods)

	records := make([]series.MonthlyRecord, 0, len(periods))
	for _, p := range periods {
		mean := stat.Mean(byMonth[p], nil)
		records = append(records, series.MonthlyRecord{Period: p, Value: Round2(mean)})
	}
	stats.Months = len(records)

	logger.Debug(fmt.Sprintf("prepared %d months from %d rows", stats.Months, stats.Rows),
		zap.String("op", "prepare.Monthly"),
		zap.String("format", f.Name),
		zap.Int("badDate", stats.BadDate),
		zap.Int("badValue", stats.BadValue),
		zap.Int("beforeStart", stats.BeforeStart),
	)
	return records, stats, nil
}

// Round2 rounds to two decimals, ties to even.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).RoundBank(constants.DisplayDecimals).InexactFloat64()
}

// Write writes records as a "mes,<column>" CSV.
func Write(w io.Writer, column string, records []series.MonthlyRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{constants.DefaultPeriodColumn, column}); err != nil {
		return err
	}
	for _, r := range records {
		value := decimal.NewFromFloat(r.Value).Round(constants.DisplayDecimals).String()
		if err := cw.Write([]string{r.Period, value}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
