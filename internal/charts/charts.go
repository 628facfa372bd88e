// Package charts turns loaded series into line-chart data for the web UI.
// Rendering happens in the browser.
package charts

import (
	"github.com/iwvelando/poder-adquisitivo/internal/series"
	"github.com/iwvelando/poder-adquisitivo/pkg/mathutil"
	"gonum.org/v1/gonum/floats"
)

// Dataset is one line of a chart. A nil point is a gap.
type Dataset struct {
	Label           string     `json:"label"`
	Data            []*float64 `json:"data"`
	BorderColor     string     `json:"borderColor"`
	BackgroundColor string     `json:"backgroundColor"`
}

// Chart is a labelled set of lines sharing the X axis.
type Chart struct {
	Title    string    `json:"title"`
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

const (
	officialColor  = "#3b82f6"
	blueColor      = "#ef4444"
	inflationColor = "#10b981"
	fareColor      = "#0d9488"
)

// ExchangeVsInflation charts both exchange rates next to the running
// cumulative inflation, labelled by the inflation periods. Rates are matched
// by period; months a rate series lacks are gaps.
func ExchangeVsInflation(inflation, official, blue series.Series) Chart {
	labels := inflation.Periods()

	cumulative := floats.CumSum(make([]float64, inflation.Len()), inflation.Values())
	acc := make([]*float64, len(cumulative))
	for i, v := range cumulative {
		acc[i] = point(mathutil.Round(v))
	}

	return Chart{
		Title:  "Evolución económica",
		Labels: labels,
		Datasets: []Dataset{
			{Label: "Dólar Oficial", Data: alignTo(labels, official), BorderColor: officialColor, BackgroundColor: officialColor + "80"},
			{Label: "Dólar Blue", Data: alignTo(labels, blue), BorderColor: blueColor, BackgroundColor: blueColor + "80"},
			{Label: "Inflación Acumulada", Data: acc, BorderColor: inflationColor, BackgroundColor: inflationColor + "80"},
		},
	}
}

// FareHistory charts the transport fare over time.
func FareHistory(fare series.Series) Chart {
	values := fare.Values()
	data := make([]*float64, len(values))
	for i, v := range values {
		data[i] = point(v)
	}
	return Chart{
		Title:  "Evolución del boleto",
		Labels: fare.Periods(),
		Datasets: []Dataset{
			{Label: "Boleto mínimo AMBA ($)", Data: data, BorderColor: fareColor, BackgroundColor: fareColor + "80"},
		},
	}
}

func alignTo(labels []string, s series.Series) []*float64 {
	byPeriod := make(map[string]float64, s.Len())
	for _, r := range s.Records() {
		if _, seen := byPeriod[r.Period]; !seen {
			byPeriod[r.Period] = r.Value
		}
	}
	out := make([]*float64, len(labels))
	for i, p := range labels {
		if v, ok := byPeriod[p]; ok {
			out[i] = point(v)
		}
	}
	return out
}

func point(v float64) *float64 {
	return &v
}
