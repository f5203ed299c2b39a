// Package validation provides lease-input validation utilities.
package validation

import (
	"fmt"
)

// LeaseCheck carries the fields general validation inspects. It is a plain
// snapshot so this package stays import-light for callers.
type LeaseCheck struct {
	Name                string
	RSF                 float64
	TermMonths          int
	AbatementMonths     int
	DiscountRatePercent float64
	OpexCapPercent      float64
	TIAllowancePSF      float64
	ActualBuildCostPSF  float64
}

// Warnings performs general validation and returns human-readable warnings.
// None of these block computation; the engine degrades to zero/empty output
// for business edge cases.
func (lc LeaseCheck) Warnings() []string {
	var warnings []string

	if lc.RSF <= 0 {
		warnings = append(warnings, fmt.Sprintf("Lease '%s' has non-positive RSF (%.0f) - PSF figures will be zero",
			lc.Name, lc.RSF))
	}

	if lc.TermMonths <= 0 {
		warnings = append(warnings, fmt.Sprintf("Lease '%s' resolves to a non-positive term - schedule will be empty",
			lc.Name))
	}

	if lc.AbatementMonths > lc.TermMonths && lc.TermMonths > 0 {
		warnings = append(warnings, fmt.Sprintf("Lease '%s' declares %d abatement months against a %d-month term - excess months will not map",
			lc.Name, lc.AbatementMonths, lc.TermMonths))
	}

	if lc.DiscountRatePercent == 0 {
		warnings = append(warnings, fmt.Sprintf("Lease '%s' has a zero discount rate - present values degrade to plain sums",
			lc.Name))
	}

	if lc.OpexCapPercent < 0 {
		warnings = append(warnings, fmt.Sprintf("Lease '%s' has a negative operating escalation cap (%.2f) - cap will be ignored",
			lc.Name, lc.OpexCapPercent))
	}

	if lc.ActualBuildCostPSF > 0 && lc.TIAllowancePSF > lc.ActualBuildCostPSF {
		warnings = append(warnings, fmt.Sprintf("Lease '%s' TI allowance (%.2f PSF) exceeds actual build cost (%.2f PSF) - no shortfall posts",
			lc.Name, lc.TIAllowancePSF, lc.ActualBuildCostPSF))
	}

	return warnings
}
