// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/poder-adquisitivo/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON:
		return nil
	}
	return fmt.Errorf("expected output format of %s, %s or %s, got %s",
		constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON, format)
}

// ValidateMarket checks an exchange-rate market name. Empty selects the
// default market and is accepted.
func ValidateMarket(market string) error {
	switch market {
	case "", constants.MarketBlue, constants.MarketOfficial:
		return nil
	}
	return fmt.Errorf("expected market of %s or %s, got %s",
		constants.MarketBlue, constants.MarketOfficial, market)
}
