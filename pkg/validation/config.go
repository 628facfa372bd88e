package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/poder-adquisitivo/pkg/datetime"
)

// ValidatePeriodBounds checks that a supported period range is well formed
// and not inverted.
func ValidatePeriodBounds(minPeriod, maxPeriod string) error {
	if !datetime.IsPeriod(minPeriod) {
		return fmt.Errorf("invalid minimum period %q: expected YYYY-MM", minPeriod)
	}
	if !datetime.IsPeriod(maxPeriod) {
		return fmt.Errorf("invalid maximum period %q: expected YYYY-MM", maxPeriod)
	}
	inverted, err := datetime.DateBeforeDate(maxPeriod, minPeriod)
	if err != nil {
		return err
	}
	if inverted {
		return fmt.Errorf("minimum period %s is after maximum period %s", minPeriod, maxPeriod)
	}
	return nil
}

// ValidateDataset returns warnings for a dataset definition that will leave
// dependent calculators without results, and an error for definitions that
// cannot be loaded at all.
func ValidateDataset(name, source, periodColumn, valueColumn string) ([]string, error) {
	var warnings []string

	if strings.TrimSpace(source) == "" {
		warnings = append(warnings, fmt.Sprintf("Dataset '%s' has no source; calculators that need it will not produce results", name))
		return warnings, nil
	}

	if strings.TrimSpace(periodColumn) == "" {
		return warnings, fmt.Errorf("dataset '%s' has no period column", name)
	}
	if strings.TrimSpace(valueColumn) == "" {
		return warnings, fmt.Errorf("dataset '%s' has no value column", name)
	}
	if periodColumn == valueColumn {
		return warnings, fmt.Errorf("dataset '%s' uses column '%s' for both period and value", name, periodColumn)
	}

	return warnings, nil
}
