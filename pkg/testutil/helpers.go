// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/poder-adquisitivo/internal/series"
	"github.com/iwvelando/poder-adquisitivo/pkg/constants"
	"github.com/iwvelando/poder-adquisitivo/pkg/datetime"
)

// Monthly builds a series with one record per consecutive month starting at
// start. It panics on a malformed start period.
func Monthly(name, start string, values ...float64) series.Series {
	records := make([]series.MonthlyRecord, len(values))
	period := start
	for i, v := range values {
		records[i] = series.MonthlyRecord{Period: period, Value: v}
		next, err := datetime.OffsetDate(period, constants.DateTimeLayout, 1)
		if err != nil {
			panic(err)
		}
		period = next
	}
	return series.New(name, records)
}

// Constant builds a series of months values all equal to value.
func Constant(name, start string, months int, value float64) series.Series {
	values := make([]float64, months)
	for i := range values {
		values[i] = value
	}
	return Monthly(name, start, values...)
}

// FromRecords builds a series from explicit records, keeping their order.
// Useful for gaps and out-of-order fixtures.
func FromRecords(name string, records ...series.MonthlyRecord) series.Series {
	return series.New(name, records)
}
