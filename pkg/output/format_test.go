package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/iwvelando/poder-adquisitivo/internal/compare"
	"github.com/iwvelando/poder-adquisitivo/internal/navigation"
	"github.com/iwvelando/poder-adquisitivo/internal/series"
)

func fareFixture() compare.FareResult {
	return compare.FareResult{
		Window:                  compare.Window{BasePeriod: "2023-01", LatestPeriod: "2023-03", Months: 3},
		AccumulatedInflation:    1.5,
		FareBase:                100,
		FareLatest:              500,
		AdjustedSalary:          250000,
		TicketsBefore:           1000,
		TicketsExpected:         500,
		TicketsActual:           360,
		DiffVsExpected:          -140,
		DiffVsBefore:            -640,
		PercentVsExpected:       -28,
		PercentVsBefore:         -64,
		PercentExpectedVsBefore: -50,
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		name     string
		metric   compare.Metric
		expected string
	}{
		{"Pesos", compare.Metric{Value: 250000, Decimals: 2, Unit: compare.UnitPesos}, "$250.000,00"},
		{"Negative pesos", compare.Metric{Value: -1234.5, Decimals: 2, Unit: compare.UnitPesos}, "-$1.234,50"},
		{"Dollars", compare.Metric{Value: 1800, Decimals: 2, Unit: compare.UnitDollars}, "USD 1.800,00"},
		{"Percent", compare.Metric{Value: 150, Decimals: 2, Unit: compare.UnitPercent}, "150,00%"},
		{"Percent one decimal", compare.Metric{Value: -28, Decimals: 1, Unit: compare.UnitPercent}, "-28,0%"},
		{"Tickets", compare.Metric{Value: 1000, Decimals: 0, Unit: compare.UnitTickets}, "1.000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Display(tt.metric); got != tt.expected {
				t.Errorf("Display() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name     string
		result   compare.Result
		expected []string
	}{
		{
			name:   "Fare below expectation",
			result: fareFixture(),
			expected: []string{
				"Ahora podés pagar 140 boleto(s) menos (-28,0%) que lo esperado según inflación.",
				"En comparación con el pasado, tu capacidad de compra cambió en 640 boleto(s) menos (-64,0%).",
			},
		},
		{
			name:     "Purchasing power fell",
			result:   compare.PurchasingPowerResult{DifferencePercent: -12.5},
			expected: []string{"Tu poder adquisitivo cayó un 12,50% respecto al ajuste por inflación."},
		},
		{
			name:     "Purchasing power improved",
			result:   compare.PurchasingPowerResult{DifferencePercent: 8},
			expected: []string{"Tu poder adquisitivo mejoró un 8,00% respecto al ajuste por inflación."},
		},
		{
			name: "Adjusted dollars lost",
			result: compare.UsdSalaryAdjustedResult{
				Window:            compare.Window{BasePeriod: "2023-01"},
				UsdThen:           1800,
				UsdNow:            900,
				DifferencePercent: -50,
			},
			expected: []string{"Tu sueldo actual equivale a USD 900,00, pero ajustado por inflación, en enero 2023 habría sido USD 1.800,00. Perdiste 50,00% de poder adquisitivo en dólares."},
		},
		{
			name:     "Adjusted dollars gained",
			result:   compare.UsdSalaryAdjustedResult{UsdThen: 900, UsdNow: 1800, DifferencePercent: 100},
			expected: []string{"Tu sueldo actual equivale a USD 1.800,00, superando el valor ajustado por inflación de USD 900,00. Ganaste 100,00% de poder adquisitivo en dólares."},
		},
		{
			name: "Simple dollars improved",
			result: compare.UsdSalarySimpleResult{
				Window:            compare.Window{BasePeriod: "2023-01"},
				DifferencePercent: 260,
			},
			expected: []string{"Tu sueldo en dólares mejoró respecto a enero 2023: ganás 260,00% más."},
		},
		{
			name: "Simple dollars fell",
			result: compare.UsdSalarySimpleResult{
				Window:            compare.Window{BasePeriod: "2020-01"},
				DifferencePercent: -10,
			},
			expected: []string{"Tu sueldo en dólares cayó respecto a enero 2020: ganás 10,00% menos."},
		},
		{
			name:     "Investment beat inflation",
			result:   compare.UsdInvestmentResult{DiffVsInflation: 1000, DiffVsInflationPercent: 20},
			expected: []string{"Invertir en dólares fue mejor que quedarse en pesos: ganaste 20,00% sobre la inflación."},
		},
		{
			name:     "Investment lost to inflation",
			result:   compare.UsdInvestmentResult{DiffVsInflation: -1000, DiffVsInflationPercent: -20},
			expected: []string{"Invertir en dólares fue peor que quedarse en pesos: perdiste 20,00% frente a la inflación."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summary(tt.result)
			if len(got) != len(tt.expected) {
				t.Fatalf("Summary() returned %d lines, expected %d: %v", len(got), len(tt.expected), got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("Summary()[%d] = %q, expected %q", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	bounds := series.DefaultBounds()
	tests := []struct {
		name     string
		err      error
		expected string
		visible  bool
	}{
		{
			name:     "Out of range",
			err:      fmt.Errorf("check: %w", series.ErrPeriodOutOfRange),
			expected: "La fecha seleccionada está fuera del rango disponible (enero 2009 a junio 2025).",
			visible:  true,
		},
		{"Invalid period", series.ErrInvalidPeriod, "La fecha debe tener el formato AAAA-MM.", true},
		{"Invalid amount", series.ErrInvalidAmount, "Los montos deben ser números mayores a cero.", true},
		{"Missing value stays silent", series.ErrMissingSeriesValue, "", false},
		{"Not found stays silent", series.ErrPeriodNotFound, "", false},
		{"Unknown error", errors.New("boom"), "", false},
		{"Nil error", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ErrorMessage(tt.err, bounds)
			if ok != tt.visible || got != tt.expected {
				t.Errorf("ErrorMessage() = (%q, %v), expected (%q, %v)", got, ok, tt.expected, tt.visible)
			}
		})
	}
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := PrettyFormat(&buf, fareFixture()); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"--- Boletos ---",
		"Período: Enero 2023 a Marzo 2023 (3 meses)",
		"Inflación acumulada",
		"150,00%",
		"$250.000,00",
		"Ahora podés pagar 140 boleto(s) menos",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("PrettyFormat() output missing %q:\n%s", want, out)
		}
	}
}

func TestPrettyFormatMissingMonths(t *testing.T) {
	r := fareFixture()
	var buf bytes.Buffer
	if err := PrettyFormat(&buf, r); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	if strings.Contains(buf.String(), "Sin datos") {
		t.Errorf("PrettyFormat() reported missing months for a complete window:\n%s", buf.String())
	}

	r.Window = compare.Window{BasePeriod: "2023-01", LatestPeriod: "2023-04", Months: 3, MissingMonths: 1}
	buf.Reset()
	if err := PrettyFormat(&buf, r); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Sin datos para 1 mes(es) del período") {
		t.Errorf("PrettyFormat() output missing gap note:\n%s", buf.String())
	}
}

func TestCsvFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, fareFixture()); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("failed to read CSV output: %v", err)
	}
	if len(rows) != len(fareFixture().Metrics())+1 {
		t.Fatalf("CsvFormat() wrote %d rows, expected %d", len(rows), len(fareFixture().Metrics())+1)
	}
	if got := strings.Join(rows[0], ","); got != "variant,key,label,value,display" {
		t.Errorf("header = %q", got)
	}
	first := rows[1]
	if first[0] != "fare-affordability" || first[1] != "accumulatedInflation" || first[3] != "150.00" || first[4] != "150,00%" {
		t.Errorf("first row = %v", first)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := JSONFormat(&buf, fareFixture()); err != nil {
		t.Fatalf("JSONFormat() error = %v", err)
	}

	var view ResultView
	if err := json.Unmarshal(buf.Bytes(), &view); err != nil {
		t.Fatalf("failed to decode JSON output: %v", err)
	}
	if view.Variant != compare.FareAffordability || view.Title != "Boletos" {
		t.Errorf("view header = %q %q", view.Variant, view.Title)
	}
	if view.Window.Months != 2 {
		t.Errorf("view.Window.Months = %d, expected 2", view.Window.Months)
	}
	if len(view.Summary) != 2 {
		t.Errorf("view.Summary has %d lines, expected 2", len(view.Summary))
	}
	if view.Metrics[4].Key != "ticketsBefore" || view.Metrics[4].Display != "1.000" {
		t.Errorf("view.Metrics[4] = %+v", view.Metrics[4])
	}
}

func TestWrite(t *testing.T) {
	for _, f := range []string{"", "pretty", "csv", "json"} {
		var buf bytes.Buffer
		if err := Write(&buf, f, compare.PurchasingPowerResult{}); err != nil {
			t.Errorf("Write(%q) error = %v", f, err)
		}
		if buf.Len() == 0 {
			t.Errorf("Write(%q) wrote nothing", f)
		}
	}

	if err := Write(&bytes.Buffer{}, "xml", compare.PurchasingPowerResult{}); err == nil {
		t.Error("Write(xml) expected an error")
	}
}

func TestSections(t *testing.T) {
	var buf bytes.Buffer
	if err := Sections(&buf, navigation.Sections()); err != nil {
		t.Fatalf("Sections() error = %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != len(navigation.Sections()) {
		t.Errorf("Sections() wrote %d lines, expected %d", len(lines), len(navigation.Sections()))
	}
}
