// Package output provides utilities for formatting and displaying comparison results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/poder-adquisitivo/internal/compare"
	"github.com/iwvelando/poder-adquisitivo/internal/navigation"
	"github.com/iwvelando/poder-adquisitivo/pkg/constants"
	"github.com/iwvelando/poder-adquisitivo/pkg/datetime"
	"github.com/iwvelando/poder-adquisitivo/pkg/format"
)

// MetricView is a metric together with its display string.
type MetricView struct {
	compare.Metric
	Display string `json:"display"`
}

// ResultView is the presentation of a result shared by the JSON printer and
// the HTTP API.
type ResultView struct {
	Variant compare.Variant `json:"variant"`
	Title   string          `json:"title"`
	Window  compare.Window  `json:"window"`
	Metrics []MetricView    `json:"metrics"`
	Summary []string        `json:"summary"`
}

// View builds the presentation of r.
func View(r compare.Result) ResultView {
	metrics := r.Metrics()
	views := make([]MetricView, len(metrics))
	for i, m := range metrics {
		views[i] = MetricView{Metric: m, Display: Display(m)}
	}
	return ResultView{
		Variant: r.Variant(),
		Title:   Title(r.Variant()),
		Window:  r.Coverage(),
		Metrics: views,
		Summary: Summary(r),
	}
}

// Title returns the menu title of a variant.
func Title(v compare.Variant) string {
	if s, ok := navigation.ForVariant(v); ok {
		return s.Title
	}
	return string(v)
}

// Display formats a metric for its unit with es-AR separators.
func Display(m compare.Metric) string {
	switch m.Unit {
	case compare.UnitPesos:
		return format.Currency(m.Value)
	case compare.UnitDollars:
		return format.USD(m.Value)
	case compare.UnitPercent:
		return format.Percent(m.Value, m.Decimals)
	default:
		return format.Number(m.Value, m.Decimals)
	}
}

// Write prints r in the named output format.
func Write(w io.Writer, outputFormat string, r compare.Result) error {
	switch outputFormat {
	case constants.OutputFormatPretty, "":
		return PrettyFormat(w, r)
	case constants.OutputFormatCSV:
		return CsvFormat(w, r)
	case constants.OutputFormatJSON:
		return JSONFormat(w, r)
	}
	return fmt.Errorf("unsupported output format: %s", outputFormat)
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, r compare.Result) error {
	view := View(r)

	width := 0
	for _, m := range view.Metrics {
		if n := len([]rune(m.Label)); n > width {
			width = n
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- %s ---\n", view.Title)
	if view.Window.BasePeriod != "" {
		fmt.Fprintf(&b, "Período: %s a %s (%d meses)\n",
			datetime.TitleMonthLabel(view.Window.BasePeriod),
			datetime.TitleMonthLabel(view.Window.LatestPeriod),
			view.Window.Months)
		if view.Window.MissingMonths > 0 {
			fmt.Fprintf(&b, "Sin datos para %d mes(es) del período\n", view.Window.MissingMonths)
		}
	}
	for _, m := range view.Metrics {
		fmt.Fprintf(&b, "%-*s | %s\n", width, m.Label, m.Display)
	}
	if len(view.Summary) > 0 {
		b.WriteString("\n")
		for _, line := range view.Summary {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// CsvFormat outputs in comma-separated value format, one metric per row.
func CsvFormat(w io.Writer, r compare.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"variant", "key", "label", "value", "display"}); err != nil {
		return err
	}
	for _, m := range View(r).Metrics {
		row := []string{string(r.Variant()), m.Key, m.Label, format.Fixed(m.Value, m.Decimals), m.Display}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// JSONFormat outputs the result view as indented JSON.
func JSONFormat(w io.Writer, r compare.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(View(r))
}

// Sections prints the menu sections, one per line.
func Sections(w io.Writer, sections []navigation.Section) error {
	var b strings.Builder
	for _, s := range sections {
		fmt.Fprintf(&b, "%s %-28s %-20s %s\n", s.Icon, s.Title, s.Variant, s.Description)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
