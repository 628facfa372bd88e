package compare

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Request is the input of one calculator. Each variant has its own struct
// carrying only the fields it needs.
type Request interface {
	Variant() Variant
	Period() string
}

// FareRequest compares how many transport fares a salary buys.
type FareRequest struct {
	BasePeriod    string  `json:"basePeriod"`
	BaseSalary    float64 `json:"baseSalary"`
	CurrentSalary float64 `json:"currentSalary"`
}

// PurchasingPowerRequest compares a salary against its inflation-adjusted past value.
type PurchasingPowerRequest struct {
	BasePeriod    string  `json:"basePeriod"`
	BaseSalary    float64 `json:"baseSalary"`
	CurrentSalary float64 `json:"currentSalary"`
}

// UsdSalaryAdjustedRequest deflates the current salary to the base period and
// compares its dollar value then and now.
type UsdSalaryAdjustedRequest struct {
	BasePeriod    string  `json:"basePeriod"`
	CurrentSalary float64 `json:"currentSalary"`
	Market        string  `json:"market,omitempty"`
}

// UsdSalarySimpleRequest compares two salaries converted to dollars at their
// own periods' exchange rates.
type UsdSalarySimpleRequest struct {
	BasePeriod    string  `json:"basePeriod"`
	BaseSalary    float64 `json:"baseSalary"`
	CurrentSalary float64 `json:"currentSalary"`
	Market        string  `json:"market,omitempty"`
}

// UsdInvestmentRequest values a dollar purchase today against pesos kept
// and against inflation.
type UsdInvestmentRequest struct {
	PurchasePeriod string  `json:"purchasePeriod"`
	Dollars        float64 `json:"dollars"`
	Market         string  `json:"market,omitempty"`
}

func (FareRequest) Variant() Variant              { return FareAffordability }
func (PurchasingPowerRequest) Variant() Variant   { return PurchasingPower }
func (UsdSalaryAdjustedRequest) Variant() Variant { return UsdSalaryAdjusted }
func (UsdSalarySimpleRequest) Variant() Variant   { return UsdSalarySimple }
func (UsdInvestmentRequest) Variant() Variant     { return UsdInvestment }

func (r FareRequest) Period() string              { return r.BasePeriod }
func (r PurchasingPowerRequest) Period() string   { return r.BasePeriod }
func (r UsdSalaryAdjustedRequest) Period() string { return r.BasePeriod }
func (r UsdSalarySimpleRequest) Period() string   { return r.BasePeriod }
func (r UsdInvestmentRequest) Period() string     { return r.PurchasePeriod }

// Input is the flat set of fields a form or command line collects. It maps
// onto the request of any variant.
type Input struct {
	BasePeriod    string  `json:"basePeriod"`
	BaseAmount    float64 `json:"baseAmount,omitempty"`
	CurrentAmount float64 `json:"currentAmount,omitempty"`
	Dollars       float64 `json:"dollars,omitempty"`
	Market        string  `json:"market,omitempty"`
}

// Request builds the request for variant from the input.
func (in Input) Request(variant Variant) (Request, error) {
	switch variant {
	case FareAffordability:
		return FareRequest{BasePeriod: in.BasePeriod, BaseSalary: in.BaseAmount, CurrentSalary: in.CurrentAmount}, nil
	case PurchasingPower:
		return PurchasingPowerRequest{BasePeriod: in.BasePeriod, BaseSalary: in.BaseAmount, CurrentSalary: in.CurrentAmount}, nil
	case UsdSalaryAdjusted:
		return UsdSalaryAdjustedRequest{BasePeriod: in.BasePeriod, CurrentSalary: in.CurrentAmount, Market: in.Market}, nil
	case UsdSalarySimple:
		return UsdSalarySimpleRequest{BasePeriod: in.BasePeriod, BaseSalary: in.BaseAmount, CurrentSalary: in.CurrentAmount, Market: in.Market}, nil
	case UsdInvestment:
		return UsdInvestmentRequest{PurchasePeriod: in.BasePeriod, Dollars: in.Dollars, Market: in.Market}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
}

// DecodeRequest decodes a JSON body into the request struct of variant.
// Unknown fields are rejected.
func DecodeRequest(variant Variant, data []byte) (Request, error) {
	var target Request
	var err error
	switch variant {
	case FareAffordability:
		var r FareRequest
		err = decodeStrict(data, &r)
		target = r
	case PurchasingPower:
		var r PurchasingPowerRequest
		err = decodeStrict(data, &r)
		target = r
	case UsdSalaryAdjusted:
		var r UsdSalaryAdjustedRequest
		err = decodeStrict(data, &r)
		target = r
	case UsdSalarySimple:
		var r UsdSalarySimpleRequest
		err = decodeStrict(data, &r)
		target = r
	case UsdInvestment:
		var r UsdInvestmentRequest
		err = decodeStrict(data, &r)
		target = r
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s request: %w", variant, err)
	}
	return target, nil
}

func decodeStrict(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
