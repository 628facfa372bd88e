// Package compare implements the calculators: each variant projects a past
// quantity forward by accumulated inflation (or converts it through an
// exchange rate) and compares it with a current quantity.
package compare

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/poder-adquisitivo/internal/series"
	"github.com/iwvelando/poder-adquisitivo/pkg/constants"
)

// Variant names one calculator.
type Variant string

const (
	FareAffordability Variant = "fare-affordability"
	PurchasingPower   Variant = "purchasing-power"
	UsdSalaryAdjusted Variant = "usd-salary-adjusted"
	UsdSalarySimple   Variant = "usd-salary-simple"
	UsdInvestment     Variant = "usd-investment"
)

var (
	// ErrUnknownVariant is returned for a variant name no calculator handles.
	ErrUnknownVariant = errors.New("unknown variant")

	// ErrUnknownMarket is returned for an exchange-rate market other than
	// blue or official.
	ErrUnknownMarket = errors.New("unknown exchange-rate market")
)

// Variants lists every calculator in menu order.
func Variants() []Variant {
	return []Variant{FareAffordability, UsdSalaryAdjusted, PurchasingPower, UsdInvestment, UsdSalarySimple}
}

// ParseVariant converts a name into a Variant.
func ParseVariant(name string) (Variant, error) {
	v := Variant(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Variants() {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}

// Datasets holds the loaded series the calculators read.
type Datasets struct {
	Inflation    series.Series
	Fare         series.Series
	OfficialRate series.Series
	BlueRate     series.Series
}

// ExchangeRate returns the exchange-rate series for a market; the empty
// market selects the blue rate.
func (d Datasets) ExchangeRate(market string) (series.Series, error) {
	switch market {
	case "", constants.MarketBlue:
		return d.BlueRate, nil
	case constants.MarketOfficial:
		return d.OfficialRate, nil
	}
	return series.Series{}, fmt.Errorf("%w: %q", ErrUnknownMarket, market)
}

func marketOrDefault(market string) string {
	if market == "" {
		return constants.MarketBlue
	}
	return market
}
