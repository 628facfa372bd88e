package series

import (
	"fmt"

	"github.com/iwvelando/poder-adquisitivo/pkg/constants"
	"github.com/iwvelando/poder-adquisitivo/pkg/datetime"
)

// Span is an inclusive index range within a series.
type Span struct {
	From int
	To   int
}

// Months returns the number of records covered by the span.
func (sp Span) Months() int {
	if sp.To < sp.From {
		return 0
	}
	return sp.To - sp.From + 1
}

// Bounds is the closed interval of base periods a calculation accepts.
type Bounds struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

// DefaultBounds returns the supported range of the bundled datasets.
func DefaultBounds() Bounds {
	return Bounds{Min: constants.MinPeriod, Max: constants.MaxPeriod}
}

// Check validates period against the bounds. Periods compare
// lexicographically, which matches chronological order for "YYYY-MM".
func (b Bounds) Check(period string) error {
	if !datetime.IsPeriod(period) {
		return fmt.Errorf("%w: %q, expected YYYY-MM", ErrInvalidPeriod, period)
	}
	if period < b.Min || period > b.Max {
		return fmt.Errorf("%w: %s not within %s..%s", ErrPeriodOutOfRange, period, b.Min, b.Max)
	}
	return nil
}

// Resolve locates basePeriod in s and pairs it with the latest index. There
// must be at least one month after the base period.
func Resolve(s Series, basePeriod string) (Span, error) {
	from, err := s.IndexOf(basePeriod)
	if err != nil {
		return Span{}, err
	}
	to, err := s.LatestIndex()
	if err != nil {
		return Span{}, err
	}
	if from >= to {
		return Span{}, fmt.Errorf("%w: base period %s is the latest period of series %s",
			ErrInvalidRange, basePeriod, s.label())
	}
	return Span{From: from, To: to}, nil
}
