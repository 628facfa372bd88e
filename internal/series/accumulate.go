package series

import (
	"fmt"

	"github.com/iwvelando/poder-adquisitivo/pkg/constants"
)

// Accumulate sums the values over the inclusive range [from, to] and divides
// by 100, turning monthly percentages into a fraction. Rates are added, not
// compounded.
func Accumulate(s Series, from, to int) (float64, error) {
	if from > to {
		return 0, fmt.Errorf("%w: from %d is after to %d", ErrEmptyRange, from, to)
	}
	if from < 0 || to >= len(s.records) {
		return 0, fmt.Errorf("%w: [%d, %d] outside series %s of length %d",
			ErrInvalidRange, from, to, s.label(), len(s.records))
	}

	sum := 0.0
	for _, r := range s.records[from : to+1] {
		sum += r.Value
	}
	return sum / constants.PercentageMultiplier, nil
}

// AccumulateSince resolves basePeriod and accumulates from it through the
// latest period.
func AccumulateSince(s Series, basePeriod string) (float64, Span, error) {
	span, err := Resolve(s, basePeriod)
	if err != nil {
		return 0, Span{}, err
	}
	rate, err := Accumulate(s, span.From, span.To)
	if err != nil {
		return 0, Span{}, err
	}
	return rate, span, nil
}
