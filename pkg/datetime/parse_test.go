package datetime

import (
	"testing"
)

func TestIsPeriod(t *testing.T) {
	tests := []struct {
		period   string
		expected bool
	}{
		{"2023-01", true},
		{"2025-12", true},
		{"2023-13", false},
		{"2023-1", false},
		{"2023/01", false},
		{"2023-01-15", false},
		{"", false},
		{"enero", false},
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			if got := IsPeriod(tt.period); got != tt.expected {
				t.Errorf("IsPeriod(%q) = %v, expected %v", tt.period, got, tt.expected)
			}
		})
	}
}

func TestParsePeriodError(t *testing.T) {
	if _, err := ParsePeriod("2023-00"); err == nil {
		t.Errorf("ParsePeriod() expected error for month 00")
	}
}

func TestOffsetDate(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		months   int
		expected string
		wantErr  bool
	}{
		{name: "Next month", date: "2025-01", months: 1, expected: "2025-02"},
		{name: "Cross year boundary forward", date: "2025-06", months: 8, expected: "2026-02"},
		{name: "Cross year boundary backward", date: "2009-01", months: -1, expected: "2008-12"},
		{name: "Invalid date", date: "not-a-date", months: 1, expected: "not-a-date", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := OffsetDate(tt.date, DateTimeLayout, tt.months)
			if (err != nil) != tt.wantErr {
				t.Errorf("OffsetDate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if result != tt.expected {
				t.Errorf("OffsetDate() = %s, expected %s", result, tt.expected)
			}
		})
	}
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name     string
		first    string
		second   string
		expected int
		wantErr  bool
	}{
		{name: "Same month", first: "2023-01", second: "2023-01", expected: 0},
		{name: "Within a year", first: "2023-01", second: "2023-07", expected: 6},
		{name: "Across years", first: "2009-01", second: "2025-06", expected: 197},
		{name: "Backwards", first: "2024-03", second: "2023-12", expected: -3},
		{name: "Invalid first", first: "2024", second: "2023-12", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MonthsBetween(tt.first, tt.second)
			if (err != nil) != tt.wantErr {
				t.Errorf("MonthsBetween() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && result != tt.expected {
				t.Errorf("MonthsBetween(%s, %s) = %d, expected %d", tt.first, tt.second, result, tt.expected)
			}
		})
	}
}

func TestDateBeforeDate(t *testing.T) {
	before, err := DateBeforeDate("2023-01", "2023-02")
	if err != nil {
		t.Fatalf("DateBeforeDate() error = %v", err)
	}
	if !before {
		t.Errorf("DateBeforeDate() = false, expected true")
	}

	before, err = DateBeforeDate("2023-02", "2023-02")
	if err != nil {
		t.Fatalf("DateBeforeDate() error = %v", err)
	}
	if before {
		t.Errorf("DateBeforeDate() = true for equal dates, expected false")
	}

	if _, err := DateBeforeDate("bad", "2023-02"); err == nil {
		t.Errorf("DateBeforeDate() expected error for invalid first date")
	}
}

func TestMonthLabel(t *testing.T) {
	tests := []struct {
		period   string
		expected string
		title    string
	}{
		{"2022-02", "febrero 2022", "Febrero 2022"},
		{"2009-01", "enero 2009", "Enero 2009"},
		{"2025-12", "diciembre 2025", "Diciembre 2025"},
		{"", "", ""},
		{"garbage", "garbage", "garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			if got := MonthLabel(tt.period); got != tt.expected {
				t.Errorf("MonthLabel(%q) = %q, expected %q", tt.period, got, tt.expected)
			}
			if got := TitleMonthLabel(tt.period); got != tt.title {
				t.Errorf("TitleMonthLabel(%q) = %q, expected %q", tt.period, got, tt.title)
			}
		})
	}
}
