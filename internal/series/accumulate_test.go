package series

import (
	"errors"
	"math"
	"testing"
)

func TestAccumulate(t *testing.T) {
	s := sampleSeries()

	tests := []struct {
		name    string
		from    int
		to      int
		want    float64
		wantErr error
	}{
		{name: "Whole series", from: 0, to: 4, want: (6.0 + 6.6 + 7.7 + 8.4 + 7.8) / 100},
		{name: "Single month", from: 2, to: 2, want: 7.7 / 100},
		{name: "Tail", from: 3, to: 4, want: (8.4 + 7.8) / 100},
		{name: "Inverted range", from: 3, to: 2, wantErr: ErrEmptyRange},
		{name: "Negative start", from: -1, to: 2, wantErr: ErrInvalidRange},
		{name: "End past series", from: 0, to: 5, wantErr: ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Accumulate(s, tt.from, tt.to)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Accumulate(%d, %d) error = %v, expected %v", tt.from, tt.to, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Accumulate(%d, %d) unexpected error: %v", tt.from, tt.to, err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Accumulate(%d, %d) = %v, expected %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestAccumulateMatchesSliceSum(t *testing.T) {
	s := New("inflation", []MonthlyRecord{
		{Period: "2022-01", Value: 3.9},
		{Period: "2022-02", Value: 4.7},
		{Period: "2022-03", Value: 6.7},
		{Period: "2022-04", Value: 6.0},
		{Period: "2022-05", Value: 5.1},
		{Period: "2022-06", Value: 5.3},
		{Period: "2022-07", Value: 7.4},
	})
	values := s.Values()

	for from := 0; from < len(values); from++ {
		for to := from; to < len(values); to++ {
			sum := 0.0
			for _, v := range values[from : to+1] {
				sum += v
			}
			got, err := Accumulate(s, from, to)
			if err != nil {
				t.Fatalf("Accumulate(%d, %d) error = %v", from, to, err)
			}
			if got != sum/100 {
				t.Errorf("Accumulate(%d, %d) = %v, expected %v", from, to, got, sum/100)
			}
		}
	}
}

func TestAccumulateIsNotCompounded(t *testing.T) {
	s := New("inflation", []MonthlyRecord{
		{Period: "2024-01", Value: 10},
		{Period: "2024-02", Value: 10},
	})
	got, err := Accumulate(s, 0, 1)
	if err != nil {
		t.Fatalf("Accumulate() error = %v", err)
	}
	if got != 0.2 {
		t.Errorf("Accumulate() = %v, expected simple sum 0.2 (compounded would be 0.21)", got)
	}
}

func TestAccumulateSince(t *testing.T) {
	s := sampleSeries()

	rate, span, err := AccumulateSince(s, "2023-03")
	if err != nil {
		t.Fatalf("AccumulateSince() error = %v", err)
	}
	if span != (Span{From: 2, To: 4}) {
		t.Errorf("AccumulateSince() span = %+v, expected {2 4}", span)
	}
	if math.Abs(rate-(7.7+8.4+7.8)/100) > 1e-12 {
		t.Errorf("AccumulateSince() rate = %v", rate)
	}

	if _, _, err := AccumulateSince(s, "2023-05"); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("AccumulateSince(latest) error = %v, expected ErrInvalidRange", err)
	}
	if _, _, err := AccumulateSince(s, "2030-01"); !errors.Is(err, ErrPeriodNotFound) {
		t.Errorf("AccumulateSince(absent) error = %v, expected ErrPeriodNotFound", err)
	}
}
