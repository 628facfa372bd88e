package compare

import "github.com/iwvelando/poder-adquisitivo/pkg/constants"

// Unit describes how a metric value is presented.
type Unit string

const (
	UnitPesos   Unit = "ars"
	UnitDollars Unit = "usd"
	UnitPercent Unit = "percent"
	UnitTickets Unit = "tickets"
)

// Metric is one labelled value of a result, in display order.
type Metric struct {
	Key      string  `json:"key"`
	Label    string  `json:"label"`
	Value    float64 `json:"value"`
	Decimals int     `json:"decimals"`
	Unit     Unit    `json:"unit"`
}

// Result is the output of one calculator. Values carry full precision;
// Decimals on each metric says how presentation rounds them.
type Result interface {
	Variant() Variant
	Metrics() []Metric
	Coverage() Window
}

// Window is the stretch of a series a result was computed over.
type Window struct {
	BasePeriod   string `json:"basePeriod"`
	LatestPeriod string `json:"latestPeriod"`
	Months       int    `json:"months"`

	// MissingMonths counts calendar months inside the window with no record.
	MissingMonths int `json:"missingMonths,omitempty"`
}

// Coverage returns the window itself; results embed it.
func (w Window) Coverage() Window { return w }

type FareResult struct {
	Window
	AccumulatedInflation    float64 `json:"accumulatedInflation"`
	FareBase                float64 `json:"fareBase"`
	FareLatest              float64 `json:"fareLatest"`
	AdjustedSalary          float64 `json:"adjustedSalary"`
	TicketsBefore           float64 `json:"ticketsBefore"`
	TicketsExpected         float64 `json:"ticketsExpected"`
	TicketsActual           float64 `json:"ticketsActual"`
	DiffVsExpected          float64 `json:"diffVsExpected"`
	DiffVsBefore            float64 `json:"diffVsBefore"`
	PercentVsExpected       float64 `json:"percentVsExpected"`
	PercentVsBefore         float64 `json:"percentVsBefore"`
	PercentExpectedVsBefore float64 `json:"percentExpectedVsBefore"`
}

func (FareResult) Variant() Variant { return FareAffordability }

func (r FareResult) Metrics() []Metric {
	return []Metric{
		percent("accumulatedInflation", "Inflación acumulada", r.AccumulatedInflation*constants.PercentageMultiplier),
		pesos("fareBase", "Valor del boleto en el mes base", r.FareBase),
		pesos("fareLatest", "Valor del boleto hoy", r.FareLatest),
		pesos("adjustedSalary", "Sueldo ajustado por inflación", r.AdjustedSalary),
		tickets("ticketsBefore", "Boletos que pagabas antes", r.TicketsBefore),
		tickets("ticketsExpected", "Boletos que deberías pagar hoy", r.TicketsExpected),
		tickets("ticketsActual", "Boletos reales que podés pagar hoy", r.TicketsActual),
		tickets("diffVsExpected", "Diferencia contra lo esperado", r.DiffVsExpected),
		tickets("diffVsBefore", "Diferencia contra antes", r.DiffVsBefore),
		ticketPercent("percentVsExpected", "Variación contra lo esperado", r.PercentVsExpected),
		ticketPercent("percentVsBefore", "Variación contra antes", r.PercentVsBefore),
		ticketPercent("percentExpectedVsBefore", "Variación esperada contra antes", r.PercentExpectedVsBefore),
	}
}

type PurchasingPowerResult struct {
	Window
	AccumulatedInflation float64 `json:"accumulatedInflation"`
	SalaryGrowthPercent  float64 `json:"salaryGrowthPercent"`
	AdjustedSalary       float64 `json:"adjustedSalary"`
	AbsoluteDifference   float64 `json:"absoluteDifference"`
	DifferencePercent    float64 `json:"differencePercent"`
}

func (PurchasingPowerResult) Variant() Variant { return PurchasingPower }

func (r PurchasingPowerResult) Metrics() []Metric {
	return []Metric{
		percent("accumulatedInflation", "Inflación acumulada", r.AccumulatedInflation*constants.PercentageMultiplier),
		percent("salaryGrowthPercent", "Tu sueldo creció", r.SalaryGrowthPercent),
		pesos("adjustedSalary", "Sueldo ajustado por inflación", r.AdjustedSalary),
		pesos("absoluteDifference", "Diferencia", r.AbsoluteDifference),
		percent("differencePercent", "Variación real", r.DifferencePercent),
	}
}

type UsdSalaryAdjustedResult struct {
	Window
	Market               string  `json:"market"`
	RateBase             float64 `json:"rateBase"`
	RateLatest           float64 `json:"rateLatest"`
	AccumulatedInflation float64 `json:"accumulatedInflation"`
	DeflatedSalary       float64 `json:"deflatedSalary"`
	UsdThen              float64 `json:"usdThen"`
	UsdNow               float64 `json:"usdNow"`
	Difference           float64 `json:"difference"`
	DifferencePercent    float64 `json:"differencePercent"`
}

func (UsdSalaryAdjustedResult) Variant() Variant { return UsdSalaryAdjusted }

func (r UsdSalaryAdjustedResult) Metrics() []Metric {
	return []Metric{
		pesos("rateBase", "Dólar en ese mes", r.RateBase),
		pesos("rateLatest", "Dólar actual", r.RateLatest),
		percent("accumulatedInflation", "Inflación acumulada", r.AccumulatedInflation*constants.PercentageMultiplier),
		pesos("deflatedSalary", "Sueldo ajustado por inflación", r.DeflatedSalary),
		dollars("usdThen", "Sueldo en dólares en el mes base", r.UsdThen),
		dollars("usdNow", "Sueldo en dólares hoy", r.UsdNow),
		dollars("difference", "Diferencia", r.Difference),
		percent("differencePercent", "Variación", r.DifferencePercent),
	}
}

type UsdSalarySimpleResult struct {
	Window
	Market            string  `json:"market"`
	RateBase          float64 `json:"rateBase"`
	RateLatest        float64 `json:"rateLatest"`
	UsdBase           float64 `json:"usdBase"`
	UsdCurrent        float64 `json:"usdCurrent"`
	Difference        float64 `json:"difference"`
	DifferencePercent float64 `json:"differencePercent"`
}

func (UsdSalarySimpleResult) Variant() Variant { return UsdSalarySimple }

func (r UsdSalarySimpleResult) Metrics() []Metric {
	return []Metric{
		pesos("rateBase", "Dólar en el mes base", r.RateBase),
		pesos("rateLatest", "Dólar actual", r.RateLatest),
		dollars("usdBase", "Sueldo en dólares en el mes base", r.UsdBase),
		dollars("usdCurrent", "Sueldo en dólares hoy", r.UsdCurrent),
		dollars("difference", "Diferencia", r.Difference),
		percent("differencePercent", "Variación", r.DifferencePercent),
	}
}

type UsdInvestmentResult struct {
	Window
	Market                 string  `json:"market"`
	Dollars                float64 `json:"dollars"`
	RatePurchase           float64 `json:"ratePurchase"`
	RateLatest             float64 `json:"rateLatest"`
	RateChangePercent      float64 `json:"rateChangePercent"`
	PastInvestment         float64 `json:"pastInvestment"`
	ValueToday             float64 `json:"valueToday"`
	PesoGain               float64 `json:"pesoGain"`
	PesoGainPercent        float64 `json:"pesoGainPercent"`
	AccumulatedInflation   float64 `json:"accumulatedInflation"`
	AdjustedInvestment     float64 `json:"adjustedInvestment"`
	DiffVsInflation        float64 `json:"diffVsInflation"`
	DiffVsInflationPercent float64 `json:"diffVsInflationPercent"`
}

func (UsdInvestmentResult) Variant() Variant { return UsdInvestment }

func (r UsdInvestmentResult) Metrics() []Metric {
	return []Metric{
		pesos("ratePurchase", "Dólar en el mes de compra", r.RatePurchase),
		pesos("rateLatest", "Dólar actual", r.RateLatest),
		percent("rateChangePercent", "Variación del dólar", r.RateChangePercent),
		pesos("pastInvestment", "Inversión inicial en pesos", r.PastInvestment),
		pesos("valueToday", "Valor actual de esos dólares", r.ValueToday),
		pesos("pesoGain", "Variación directa", r.PesoGain),
		percent("pesoGainPercent", "Variación directa (%)", r.PesoGainPercent),
		percent("accumulatedInflation", "Inflación acumulada", r.AccumulatedInflation*constants.PercentageMultiplier),
		pesos("adjustedInvestment", "Valor ajustado por inflación", r.AdjustedInvestment),
		pesos("diffVsInflation", "Diferencia respecto al ajuste", r.DiffVsInflation),
		percent("diffVsInflationPercent", "Diferencia respecto al ajuste (%)", r.DiffVsInflationPercent),
	}
}

func pesos(key, label string, v float64) Metric {
	return Metric{Key: key, Label: label, Value: v, Decimals: constants.DisplayDecimals, Unit: UnitPesos}
}

func dollars(key, label string, v float64) Metric {
	return Metric{Key: key, Label: label, Value: v, Decimals: constants.DisplayDecimals, Unit: UnitDollars}
}

func percent(key, label string, v float64) Metric {
	return Metric{Key: key, Label: label, Value: v, Decimals: constants.DisplayDecimals, Unit: UnitPercent}
}

func tickets(key, label string, v float64) Metric {
	return Metric{Key: key, Label: label, Value: v, Decimals: 0, Unit: UnitTickets}
}

func ticketPercent(key, label string, v float64) Metric {
	return Metric{Key: key, Label: label, Value: v, Decimals: 1, Unit: UnitPercent}
}

// Lookup returns the metric with key.
func Lookup(r Result, key string) (Metric, bool) {
	for _, m := range r.Metrics() {
		if m.Key == key {
			return m, true
		}
	}
	return Metric{}, false
}
