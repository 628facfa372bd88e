package output

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/poder-adquisitivo/internal/compare"
	"github.com/iwvelando/poder-adquisitivo/internal/series"
	"github.com/iwvelando/poder-adquisitivo/pkg/datetime"
	"github.com/iwvelando/poder-adquisitivo/pkg/format"
)

// Summary returns the closing sentences shown under a result.
func Summary(r compare.Result) []string {
	switch res := r.(type) {
	case compare.FareResult:
		return fareSummary(res)
	case compare.PurchasingPowerResult:
		verb := "mejoró"
		if res.DifferencePercent < 0 {
			verb = "cayó"
		}
		return []string{fmt.Sprintf("Tu poder adquisitivo %s un %s respecto al ajuste por inflación.",
			verb, format.Percent(math.Abs(res.DifferencePercent), 2))}
	case compare.UsdSalaryAdjustedResult:
		base := datetime.MonthLabel(res.BasePeriod)
		if res.DifferencePercent < 0 {
			return []string{fmt.Sprintf("Tu sueldo actual equivale a %s, pero ajustado por inflación, en %s habría sido %s. Perdiste %s de poder adquisitivo en dólares.",
				format.USD(res.UsdNow), base, format.USD(res.UsdThen), format.Percent(math.Abs(res.DifferencePercent), 2))}
		}
		return []string{fmt.Sprintf("Tu sueldo actual equivale a %s, superando el valor ajustado por inflación de %s. Ganaste %s de poder adquisitivo en dólares.",
			format.USD(res.UsdNow), format.USD(res.UsdThen), format.Percent(res.DifferencePercent, 2))}
	case compare.UsdSalarySimpleResult:
		base := datetime.MonthLabel(res.BasePeriod)
		if res.DifferencePercent < 0 {
			return []string{fmt.Sprintf("Tu sueldo en dólares cayó respecto a %s: ganás %s menos.",
				base, format.Percent(math.Abs(res.DifferencePercent), 2))}
		}
		return []string{fmt.Sprintf("Tu sueldo en dólares mejoró respecto a %s: ganás %s más.",
			base, format.Percent(res.DifferencePercent, 2))}
	case compare.UsdInvestmentResult:
		if res.DiffVsInflation < 0 {
			return []string{fmt.Sprintf("Invertir en dólares fue peor que quedarse en pesos: perdiste %s frente a la inflación.",
				format.Percent(math.Abs(res.DiffVsInflationPercent), 2))}
		}
		return []string{fmt.Sprintf("Invertir en dólares fue mejor que quedarse en pesos: ganaste %s sobre la inflación.",
			format.Percent(res.DiffVsInflationPercent, 2))}
	}
	return nil
}

func fareSummary(res compare.FareResult) []string {
	vsExpected := wholeTickets(res.DiffVsExpected)
	vsBefore := wholeTickets(res.DiffVsBefore)
	return []string{
		fmt.Sprintf("Ahora podés pagar %s boleto(s) %s (%s) que lo esperado según inflación.",
			format.Number(math.Abs(vsExpected), 0), moreOrLess(vsExpected), format.Percent(res.PercentVsExpected, 1)),
		fmt.Sprintf("En comparación con el pasado, tu capacidad de compra cambió en %s boleto(s) %s (%s).",
			format.Number(math.Abs(vsBefore), 0), moreOrLess(vsBefore), format.Percent(res.PercentVsBefore, 1)),
	}
}

// wholeTickets rounds a ticket difference the way it is displayed, so the
// sentence agrees with the number shown.
func wholeTickets(v float64) float64 {
	return math.Round(v)
}

func moreOrLess(v float64) string {
	if v < 0 {
		return "menos"
	}
	return "más"
}

// ErrorMessage returns the Spanish message shown for a failed comparison.
// Only user-visible kinds have one; the rest leave the result empty.
func ErrorMessage(err error, bounds series.Bounds) (string, bool) {
	kind := series.KindOf(err)
	if !kind.UserVisible() {
		return "", false
	}
	switch {
	case errors.Is(err, series.ErrPeriodOutOfRange):
		return fmt.Sprintf("La fecha seleccionada está fuera del rango disponible (%s a %s).",
			datetime.MonthLabel(bounds.Min), datetime.MonthLabel(bounds.Max)), true
	case errors.Is(err, series.ErrInvalidPeriod):
		return "La fecha debe tener el formato AAAA-MM.", true
	case errors.Is(err, series.ErrInvalidAmount):
		return "Los montos deben ser números mayores a cero.", true
	}
	return "", false
}
