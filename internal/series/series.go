// Package series defines monthly time series and the period lookups and
// rate accumulation shared by every comparison.
package series

import (
	"fmt"
)

// MonthlyRecord is one month's observation of a single metric.
type MonthlyRecord struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

// Series is an ordered, read-only sequence of MonthlyRecord sharing one
// metric. Records keep their source order; they are not re-sorted.
type Series struct {
	Name    string
	records []MonthlyRecord
}

// New builds a Series from records. The slice is copied so later changes to
// the caller's slice do not leak into the series.
func New(name string, records []MonthlyRecord) Series {
	copied := make([]MonthlyRecord, len(records))
	copy(copied, records)
	return Series{Name: name, records: copied}
}

// Len returns the number of records.
func (s Series) Len() int {
	return len(s.records)
}

// Empty reports whether the series has no records.
func (s Series) Empty() bool {
	return len(s.records) == 0
}

// At returns the record at index i.
func (s Series) At(i int) (MonthlyRecord, error) {
	if i < 0 || i >= len(s.records) {
		return MonthlyRecord{}, fmt.Errorf("%w: index %d outside series %s of length %d",
			ErrInvalidRange, i, s.label(), len(s.records))
	}
	return s.records[i], nil
}

// Records returns a copy of all records.
func (s Series) Records() []MonthlyRecord {
	out := make([]MonthlyRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Periods returns the period of every record in order.
func (s Series) Periods() []string {
	out := make([]string, len(s.records))
	for i, r := range s.records {
		out[i] = r.Period
	}
	return out
}

// Values returns the value of every record in order.
func (s Series) Values() []float64 {
	out := make([]float64, len(s.records))
	for i, r := range s.records {
		out[i] = r.Value
	}
	return out
}

// IndexOf returns the zero-based index of the first record whose period
// equals period.
func (s Series) IndexOf(period string) (int, error) {
	for i, r := range s.records {
		if r.Period == period {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s in series %s", ErrPeriodNotFound, period, s.label())
}

// LatestIndex returns the index of the most recent available observation.
func (s Series) LatestIndex() (int, error) {
	if len(s.records) == 0 {
		return -1, fmt.Errorf("%w: series %s is empty", ErrMissingSeriesValue, s.label())
	}
	return len(s.records) - 1, nil
}

// Latest returns the most recent available observation.
func (s Series) Latest() (MonthlyRecord, error) {
	i, err := s.LatestIndex()
	if err != nil {
		return MonthlyRecord{}, err
	}
	return s.records[i], nil
}

// ValueAt returns the value recorded for period.
func (s Series) ValueAt(period string) (float64, error) {
	for _, r := range s.records {
		if r.Period == period {
			return r.Value, nil
		}
	}
	return 0, fmt.Errorf("%w: no %s value for %s", ErrMissingSeriesValue, s.label(), period)
}

func (s Series) label() string {
	if s.Name == "" {
		return "(unnamed)"
	}
	return s.Name
}
