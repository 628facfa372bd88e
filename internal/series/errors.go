package series

import (
	"errors"
)

// Errors returned by lookups, accumulation and comparisons. Callers wrap them
// with context; use errors.Is or KindOf to classify.
var (
	ErrPeriodOutOfRange   = errors.New("period out of supported range")
	ErrInvalidPeriod      = errors.New("invalid period")
	ErrPeriodNotFound     = errors.New("period not found")
	ErrEmptyRange         = errors.New("empty range")
	ErrInvalidRange       = errors.New("invalid range")
	ErrMissingSeriesValue = errors.New("missing series value")
	ErrInvalidAmount      = errors.New("invalid amount")
)

// Kind classifies a comparison failure for presentation.
type Kind string

const (
	KindNone               Kind = ""
	KindPeriodOutOfRange   Kind = "period_out_of_range"
	KindInvalidPeriod      Kind = "invalid_period"
	KindPeriodNotFound     Kind = "period_not_found"
	KindEmptyRange         Kind = "empty_range"
	KindInvalidRange       Kind = "invalid_range"
	KindMissingSeriesValue Kind = "missing_series_value"
	KindInvalidAmount      Kind = "invalid_amount"
	KindUnknown            Kind = "unknown"
)

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrPeriodOutOfRange, KindPeriodOutOfRange},
	{ErrInvalidPeriod, KindInvalidPeriod},
	{ErrPeriodNotFound, KindPeriodNotFound},
	{ErrEmptyRange, KindEmptyRange},
	{ErrInvalidRange, KindInvalidRange},
	{ErrMissingSeriesValue, KindMissingSeriesValue},
	{ErrInvalidAmount, KindInvalidAmount},
}

// KindOf maps an error to its Kind. A nil error is KindNone and an error
// outside the taxonomy is KindUnknown.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindUnknown
}

// UserVisible reports whether failures of this kind are explained to the
// user. The remaining kinds only leave the result empty.
func (k Kind) UserVisible() bool {
	switch k {
	case KindPeriodOutOfRange, KindInvalidPeriod, KindInvalidAmount:
		return true
	}
	return false
}
