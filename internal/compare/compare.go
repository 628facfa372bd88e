package compare

import (
	"fmt"

	"github.com/iwvelando/poder-adquisitivo/internal/series"
	"github.com/iwvelando/poder-adquisitivo/pkg/datetime"
	"github.com/iwvelando/poder-adquisitivo/pkg/mathutil"
	"go.uber.org/zap"
)

// Comparator runs the calculators over a fixed set of loaded series. It holds
// no mutable state and is safe for concurrent use.
type Comparator struct {
	datasets Datasets
	bounds   series.Bounds
	logger   *zap.Logger
}

// NewComparator builds a Comparator over datasets, accepting base periods
// within bounds.
func NewComparator(logger *zap.Logger, datasets Datasets, bounds series.Bounds) *Comparator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Comparator{datasets: datasets, bounds: bounds, logger: logger}
}

// Bounds returns the accepted base period range.
func (c *Comparator) Bounds() series.Bounds {
	return c.bounds
}

// Compare dispatches req to its variant. No result is returned when any
// check or lookup fails.
func (c *Comparator) Compare(req Request) (Result, error) {
	var (
		result Result
		err    error
	)
	switch r := req.(type) {
	case FareRequest:
		result, err = c.Fare(r)
	case PurchasingPowerRequest:
		result, err = c.PurchasingPower(r)
	case UsdSalaryAdjustedRequest:
		result, err = c.UsdSalaryAdjusted(r)
	case UsdSalarySimpleRequest:
		result, err = c.UsdSalarySimple(r)
	case UsdInvestmentRequest:
		result, err = c.UsdInvestment(r)
	default:
		return nil, fmt.Errorf("%w: request type %T", ErrUnknownVariant, req)
	}
	if err != nil {
		c.logger.Debug("comparison aborted",
			zap.String("op", "compare.Compare"),
			zap.String("variant", string(req.Variant())),
			zap.String("period", req.Period()),
			zap.String("kind", string(series.KindOf(err))),
			zap.Error(err),
		)
		return nil, err
	}
	return result, nil
}

// Fare compares how many fares the base and current salaries buy, against
// what the inflation-adjusted base salary would buy today.
func (c *Comparator) Fare(req FareRequest) (FareResult, error) {
	if err := c.bounds.Check(req.BasePeriod); err != nil {
		return FareResult{}, err
	}
	if err := requirePositive("base salary", req.BaseSalary); err != nil {
		return FareResult{}, err
	}
	if err := requirePositive("current salary", req.CurrentSalary); err != nil {
		return FareResult{}, err
	}

	acc, span, err := series.AccumulateSince(c.datasets.Inflation, req.BasePeriod)
	if err != nil {
		return FareResult{}, err
	}
	fareBase, err := valueAt(c.datasets.Fare, req.BasePeriod)
	if err != nil {
		return FareResult{}, err
	}
	fareLatest, err := latest(c.datasets.Fare)
	if err != nil {
		return FareResult{}, err
	}

	adjusted := mathutil.ApplyRate(req.BaseSalary, acc)
	before := req.BaseSalary / fareBase
	expected := adjusted / fareLatest.Value
	actual := req.CurrentSalary / fareLatest.Value

	return FareResult{
		Window:                  window(c.datasets.Inflation, req.BasePeriod, span),
		AccumulatedInflation:    acc,
		FareBase:                fareBase,
		FareLatest:              fareLatest.Value,
		AdjustedSalary:          adjusted,
		TicketsBefore:           before,
		TicketsExpected:         expected,
		TicketsActual:           actual,
		DiffVsExpected:          actual - expected,
		DiffVsBefore:            actual - before,
		PercentVsExpected:       mathutil.RatioPercent(actual, expected),
		PercentVsBefore:         mathutil.RatioPercent(actual, before),
		PercentExpectedVsBefore: mathutil.RatioPercent(expected, before),
	}, nil
}

// PurchasingPower compares the current salary with the base salary projected
// forward by inflation.
func (c *Comparator) PurchasingPower(req PurchasingPowerRequest) (PurchasingPowerResult, error) {
	if err := c.bounds.Check(req.BasePeriod); err != nil {
		return PurchasingPowerResult{}, err
	}
	if err := requirePositive("base salary", req.BaseSalary); err != nil {
		return PurchasingPowerResult{}, err
	}
	if err := requirePositive("current salary", req.CurrentSalary); err != nil {
		return PurchasingPowerResult{}, err
	}

	acc, span, err := series.AccumulateSince(c.datasets.Inflation, req.BasePeriod)
	if err != nil {
		return PurchasingPowerResult{}, err
	}

	adjusted := mathutil.ApplyRate(req.BaseSalary, acc)
	return PurchasingPowerResult{
		Window:               window(c.datasets.Inflation, req.BasePeriod, span),
		AccumulatedInflation: acc,
		SalaryGrowthPercent:  mathutil.ChangePercent(req.CurrentSalary, req.BaseSalary),
		AdjustedSalary:       adjusted,
		AbsoluteDifference:   req.CurrentSalary - adjusted,
		DifferencePercent:    mathutil.ChangePercent(req.CurrentSalary, adjusted),
	}, nil
}

// UsdSalaryAdjusted deflates the current salary back to the base period and
// compares its dollar value at the base rate with the current salary at the
// latest rate.
func (c *Comparator) UsdSalaryAdjusted(req UsdSalaryAdjustedRequest) (UsdSalaryAdjustedResult, error) {
	if err := c.bounds.Check(req.BasePeriod); err != nil {
		return UsdSalaryAdjustedResult{}, err
	}
	if err := requirePositive("current salary", req.CurrentSalary); err != nil {
		return UsdSalaryAdjustedResult{}, err
	}
	rates, err := c.datasets.ExchangeRate(req.Market)
	if err != nil {
		return UsdSalaryAdjustedResult{}, err
	}

	rateBase, err := valueAt(rates, req.BasePeriod)
	if err != nil {
		return UsdSalaryAdjustedResult{}, err
	}
	rateLatest, err := latest(rates)
	if err != nil {
		return UsdSalaryAdjustedResult{}, err
	}
	acc, span, err := series.AccumulateSince(c.datasets.Inflation, req.BasePeriod)
	if err != nil {
		return UsdSalaryAdjustedResult{}, err
	}

	deflated := mathutil.RemoveRate(req.CurrentSalary, acc)
	then := deflated / rateBase
	now := req.CurrentSalary / rateLatest.Value

	return UsdSalaryAdjustedResult{
		Window:               window(c.datasets.Inflation, req.BasePeriod, span),
		Market:               marketOrDefault(req.Market),
		RateBase:             rateBase,
		RateLatest:           rateLatest.Value,
		AccumulatedInflation: acc,
		DeflatedSalary:       deflated,
		UsdThen:              then,
		UsdNow:               now,
		Difference:           now - then,
		DifferencePercent:    mathutil.RatioPercent(now, then),
	}, nil
}

// UsdSalarySimple converts each salary to dollars at its own period's rate.
// There is no inflation term.
func (c *Comparator) UsdSalarySimple(req UsdSalarySimpleRequest) (UsdSalarySimpleResult, error) {
	if err := c.bounds.Check(req.BasePeriod); err != nil {
		return UsdSalarySimpleResult{}, err
	}
	if err := requirePositive("base salary", req.BaseSalary); err != nil {
		return UsdSalarySimpleResult{}, err
	}
	if err := requirePositive("current salary", req.CurrentSalary); err != nil {
		return UsdSalarySimpleResult{}, err
	}
	rates, err := c.datasets.ExchangeRate(req.Market)
	if err != nil {
		return UsdSalarySimpleResult{}, err
	}

	span, err := series.Resolve(rates, req.BasePeriod)
	if err != nil {
		return UsdSalarySimpleResult{}, err
	}
	rateBase, err := valueAt(rates, req.BasePeriod)
	if err != nil {
		return UsdSalarySimpleResult{}, err
	}
	rateLatest, err := latest(rates)
	if err != nil {
		return UsdSalarySimpleResult{}, err
	}

	usdBase := req.BaseSalary / rateBase
	usdCurrent := req.CurrentSalary / rateLatest.Value

	return UsdSalarySimpleResult{
		Window:            window(rates, req.BasePeriod, span),
		Market:            marketOrDefault(req.Market),
		RateBase:          rateBase,
		RateLatest:        rateLatest.Value,
		UsdBase:           usdBase,
		UsdCurrent:        usdCurrent,
		Difference:        usdCurrent - usdBase,
		DifferencePercent: mathutil.RatioPercent(usdCurrent, usdBase),
	}, nil
}

// UsdInvestment values dollars bought in the purchase period at today's rate
// and compares the result with the pesos spent, raw and adjusted by
// inflation.
func (c *Comparator) UsdInvestment(req UsdInvestmentRequest) (UsdInvestmentResult, error) {
	if err := c.bounds.Check(req.PurchasePeriod); err != nil {
		return UsdInvestmentResult{}, err
	}
	if err := requirePositive("dollars", req.Dollars); err != nil {
		return UsdInvestmentResult{}, err
	}
	rates, err := c.datasets.ExchangeRate(req.Market)
	if err != nil {
		return UsdInvestmentResult{}, err
	}

	ratePurchase, err := valueAt(rates, req.PurchasePeriod)
	if err != nil {
		return UsdInvestmentResult{}, err
	}
	rateLatest, err := latest(rates)
	if err != nil {
		return UsdInvestmentResult{}, err
	}
	acc, span, err := series.AccumulateSince(c.datasets.Inflation, req.PurchasePeriod)
	if err != nil {
		return UsdInvestmentResult{}, err
	}

	past := ratePurchase * req.Dollars
	today := rateLatest.Value * req.Dollars
	adjusted := mathutil.ApplyRate(past, acc)

	return UsdInvestmentResult{
		Window:                 window(c.datasets.Inflation, req.PurchasePeriod, span),
		Market:                 marketOrDefault(req.Market),
		Dollars:                req.Dollars,
		RatePurchase:           ratePurchase,
		RateLatest:             rateLatest.Value,
		RateChangePercent:      mathutil.ChangePercent(rateLatest.Value, ratePurchase),
		PastInvestment:         past,
		ValueToday:             today,
		PesoGain:               today - past,
		PesoGainPercent:        mathutil.RatioPercent(today, past),
		AccumulatedInflation:   acc,
		AdjustedInvestment:     adjusted,
		DiffVsInflation:        today - adjusted,
		DiffVsInflationPercent: mathutil.RatioPercent(today, adjusted),
	}, nil
}

func requirePositive(name string, v float64) error {
	if !mathutil.IsFinite(v) || v <= 0 {
		return fmt.Errorf("%w: %s must be a positive number, got %v", series.ErrInvalidAmount, name, v)
	}
	return nil
}

// valueAt looks up period in s. A zero value counts as missing since it
// cannot be divided by.
func valueAt(s series.Series, period string) (float64, error) {
	v, err := s.ValueAt(period)
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return 0, fmt.Errorf("%w: %s value for %s is zero", series.ErrMissingSeriesValue, s.Name, period)
	}
	return v, nil
}

func latest(s series.Series) (series.MonthlyRecord, error) {
	r, err := s.Latest()
	if err != nil {
		return series.MonthlyRecord{}, err
	}
	if r.Value == 0 {
		return series.MonthlyRecord{}, fmt.Errorf("%w: latest %s value for %s is zero",
			series.ErrMissingSeriesValue, s.Name, r.Period)
	}
	return r, nil
}

func window(s series.Series, base string, span series.Span) Window {
	w := Window{BasePeriod: base, Months: span.Months()}
	if r, err := s.At(span.To); err == nil {
		w.LatestPeriod = r.Period
		if between, err := datetime.MonthsBetween(base, r.Period); err == nil && between+1 > w.Months {
			w.MissingMonths = between + 1 - w.Months
		}
	}
	return w
}
