// Package datetime provides period ("YYYY-MM") utility functions.
package datetime

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/poder-adquisitivo/pkg/constants"
)

const (
	// DateTimeLayout is the format expected in datasets and requests and is
	// also the output period format.
	DateTimeLayout = constants.DateTimeLayout
)

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// ParsePeriod parses a "YYYY-MM" period.
func ParsePeriod(period string) (time.Time, error) {
	t, err := time.Parse(DateTimeLayout, period)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid period %q: expected YYYY-MM", period)
	}
	return t, nil
}

// IsPeriod reports whether the string is a well-formed "YYYY-MM" period.
func IsPeriod(period string) bool {
	if len(period) != len(DateTimeLayout) {
		return false
	}
	_, err := time.Parse(DateTimeLayout, period)
	return err == nil
}

// OffsetDate returns the string-formatted date offset by the given number of
// months relative to the given date.
func OffsetDate(date, layout string, months int) (string, error) {
	t, err := time.Parse(layout, date)
	if err != nil {
		return date, err
	}
	return t.AddDate(0, months, 0).Format(layout), nil
}

// MonthsBetween returns the number of whole months from first to second.
// The result is negative when second precedes first.
func MonthsBetween(first, second string) (int, error) {
	firstT, err := ParsePeriod(first)
	if err != nil {
		return 0, err
	}
	secondT, err := ParsePeriod(second)
	if err != nil {
		return 0, err
	}
	years := secondT.Year() - firstT.Year()
	return years*constants.MonthsPerYear + int(secondT.Month()) - int(firstT.Month()), nil
}

// DateBeforeDate reports whether period first is strictly before period
// second.
func DateBeforeDate(first, second string) (bool, error) {
	firstT, err := ParsePeriod(first)
	if err != nil {
		return false, err
	}
	secondT, err := ParsePeriod(second)
	if err != nil {
		return false, err
	}
	return firstT.Before(secondT), nil
}

// MonthLabel renders a period as its Spanish month name and year, e.g.
// "2022-02" becomes "febrero 2022". Empty input yields an empty label and a
// malformed period is returned unchanged.
func MonthLabel(period string) string {
	if period == "" {
		return ""
	}
	t, err := ParsePeriod(period)
	if err != nil {
		return period
	}
	return spanishMonths[t.Month()-1] + " " + t.Format("2006")
}

// TitleMonthLabel is MonthLabel with the month name capitalised
// ("Febrero 2022"), as used in headings.
func TitleMonthLabel(period string) string {
	label := MonthLabel(period)
	if label == "" || label == period {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
