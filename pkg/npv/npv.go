// Package npv discounts dated cashflows under one canonical convention: an
// effective annual rate converts to monthly compounding, and a flow
// discounts by whole months elapsed since the anchor date.
package npv

import (
	"math"
	"time"

	"github.com/leaseworks/lease-economics/pkg/constants"
	"github.com/leaseworks/lease-economics/pkg/datetime"
	"github.com/leaseworks/lease-economics/pkg/mathutil"
)

// Cashflow is one dated amount. Order does not matter.
type Cashflow struct {
	Date   time.Time
	Amount float64
}

// NetPresentValue discounts the flows at the given effective annual rate
// (percent units) anchored at the earliest flow date. A rate of exactly 0
// degenerates to a plain sum.
func NetPresentValue(flows []Cashflow, annualRatePercent float64) float64 {
	if len(flows) == 0 {
		return 0
	}
	anchor := flows[0].Date
	for _, f := range flows[1:] {
		if f.Date.Before(anchor) {
			anchor = f.Date
		}
	}
	return NetPresentValueFrom(flows, annualRatePercent, anchor)
}

// NetPresentValueFrom discounts the flows against an explicit anchor date.
// Extension and termination math that does not start at time zero must
// supply the original schedule anchor so results compose with the base NPV.
func NetPresentValueFrom(flows []Cashflow, annualRatePercent float64, anchor time.Time) float64 {
	if len(flows) == 0 {
		return 0
	}
	if annualRatePercent == 0 {
		sum := 0.0
		for _, f := range flows {
			sum += f.Amount
		}
		return sum
	}
	monthly := mathutil.EffectiveMonthlyRate(annualRatePercent)
	total := 0.0
	for _, f := range flows {
		months := datetime.WholeMonthsSince(anchor, f.Date)
		total += f.Amount / math.Pow(1+monthly, float64(months))
	}
	return total
}

// DiscountAnnual discounts per-year aggregates by (1+monthly)^(12*year),
// which equals (1+annual)^year at integer-year boundaries. Index 0 is
// undiscounted.
func DiscountAnnual(amounts []float64, annualRatePercent float64) float64 {
	if len(amounts) == 0 {
		return 0
	}
	if annualRatePercent == 0 {
		sum := 0.0
		for _, a := range amounts {
			sum += a
		}
		return sum
	}
	monthly := mathutil.EffectiveMonthlyRate(annualRatePercent)
	total := 0.0
	for year, a := range amounts {
		total += a / math.Pow(1+monthly, float64(constants.MonthsPerYear*year))
	}
	return total
}
