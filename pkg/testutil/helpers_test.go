package testutil

import (
	"testing"
)

func TestMonthly(t *testing.T) {
	s := Monthly("inflation", "2024-11", 2.5, 3.0, 4.2)

	if s.Len() != 3 {
		t.Fatalf("Monthly() length = %d, expected 3", s.Len())
	}
	expected := []string{"2024-11", "2024-12", "2025-01"}
	for i, p := range s.Periods() {
		if p != expected[i] {
			t.Errorf("period[%d] = %s, expected %s", i, p, expected[i])
		}
	}
	if s.Name != "inflation" {
		t.Errorf("Monthly() name = %s, expected inflation", s.Name)
	}
}

func TestMonthlyPanicsOnBadStart(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected Monthly to panic with invalid start period")
		}
	}()

	Monthly("bad", "2024/11", 1.0)
}

func TestConstant(t *testing.T) {
	s := Constant("fare", "2023-01", 4, 100)
	if s.Len() != 4 {
		t.Fatalf("Constant() length = %d, expected 4", s.Len())
	}
	for _, v := range s.Values() {
		if v != 100 {
			t.Errorf("Constant() value = %v, expected 100", v)
		}
	}
	latest, err := s.Latest()
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if latest.Period != "2023-04" {
		t.Errorf("Latest().Period = %s, expected 2023-04", latest.Period)
	}
}
