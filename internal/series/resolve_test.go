package series

import (
	"errors"
	"testing"
)

func TestBoundsCheck(t *testing.T) {
	bounds := DefaultBounds()

	tests := []struct {
		name    string
		period  string
		wantErr error
	}{
		{name: "Minimum is inclusive", period: "2009-01"},
		{name: "Maximum is inclusive", period: "2025-06"},
		{name: "Inside range", period: "2023-01"},
		{name: "Before minimum", period: "2008-12", wantErr: ErrPeriodOutOfRange},
		{name: "After maximum", period: "2025-07", wantErr: ErrPeriodOutOfRange},
		{name: "Far future", period: "2026-01", wantErr: ErrPeriodOutOfRange},
		{name: "Malformed", period: "2023-1", wantErr: ErrInvalidPeriod},
		{name: "Empty", period: "", wantErr: ErrInvalidPeriod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := bounds.Check(tt.period)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Check(%q) unexpected error: %v", tt.period, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Check(%q) error = %v, expected %v", tt.period, err, tt.wantErr)
			}
		})
	}
}

func TestOutOfRangeIsDistinctFromNotFound(t *testing.T) {
	s := New("inflation", []MonthlyRecord{
		{Period: "2025-05", Value: 1.5},
		{Period: "2025-06", Value: 1.6},
	})

	rangeErr := DefaultBounds().Check("2008-12")
	_, lookupErr := s.IndexOf("2026-01")

	if !errors.Is(rangeErr, ErrPeriodOutOfRange) {
		t.Fatalf("Check() error = %v, expected ErrPeriodOutOfRange", rangeErr)
	}
	if !errors.Is(lookupErr, ErrPeriodNotFound) {
		t.Fatalf("IndexOf() error = %v, expected ErrPeriodNotFound", lookupErr)
	}
	if errors.Is(rangeErr, ErrPeriodNotFound) || errors.Is(lookupErr, ErrPeriodOutOfRange) {
		t.Errorf("out-of-range and not-found errors must not match each other")
	}
	if KindOf(rangeErr) == KindOf(lookupErr) {
		t.Errorf("KindOf() returned %s for both errors", KindOf(rangeErr))
	}
}

func TestResolve(t *testing.T) {
	s := sampleSeries()

	tests := []struct {
		name     string
		period   string
		wantSpan Span
		wantErr  error
	}{
		{name: "First period", period: "2023-01", wantSpan: Span{From: 0, To: 4}},
		{name: "Second to last", period: "2023-04", wantSpan: Span{From: 3, To: 4}},
		{name: "Latest period is no span", period: "2023-05", wantErr: ErrInvalidRange},
		{name: "Absent period", period: "2022-12", wantErr: ErrPeriodNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span, err := Resolve(s, tt.period)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Resolve(%q) error = %v, expected %v", tt.period, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) unexpected error: %v", tt.period, err)
			}
			if span != tt.wantSpan {
				t.Errorf("Resolve(%q) = %+v, expected %+v", tt.period, span, tt.wantSpan)
			}
		})
	}
}

func TestResolveEmptySeries(t *testing.T) {
	if _, err := Resolve(New("empty", nil), "2023-01"); !errors.Is(err, ErrPeriodNotFound) {
		t.Errorf("Resolve() on empty series error = %v, expected ErrPeriodNotFound", err)
	}
}

func TestSpanMonths(t *testing.T) {
	if got := (Span{From: 2, To: 4}).Months(); got != 3 {
		t.Errorf("Months() = %d, expected 3", got)
	}
	if got := (Span{From: 4, To: 2}).Months(); got != 0 {
		t.Errorf("Months() for inverted span = %d, expected 0", got)
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err     error
		want    Kind
		visible bool
	}{
		{nil, KindNone, false},
		{ErrPeriodOutOfRange, KindPeriodOutOfRange, true},
		{ErrInvalidPeriod, KindInvalidPeriod, true},
		{ErrInvalidAmount, KindInvalidAmount, true},
		{ErrPeriodNotFound, KindPeriodNotFound, false},
		{ErrEmptyRange, KindEmptyRange, false},
		{ErrInvalidRange, KindInvalidRange, false},
		{ErrMissingSeriesValue, KindMissingSeriesValue, false},
		{errors.New("boom"), KindUnknown, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf(%v) = %s, expected %s", tt.err, got, tt.want)
			}
			if got := KindOf(tt.err).UserVisible(); got != tt.visible {
				t.Errorf("UserVisible() for %s = %v, expected %v", tt.want, got, tt.visible)
			}
		})
	}
}
