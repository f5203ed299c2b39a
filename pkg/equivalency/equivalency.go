// Package equivalency converts between negotiation levers — rate delta,
// tenant-improvement allowance, free-rent months, and term extension — by
// comparing present values. Cross-conversions pivot through the PV of one
// unit of rate delta. Every function returns 0 on ill-posed input rather
// than erroring.
package equivalency

import (
	"math"
	"time"

	"github.com/leaseworks/lease-economics/pkg/constants"
	"github.com/leaseworks/lease-economics/pkg/datetime"
	"github.com/leaseworks/lease-economics/pkg/npv"
	"github.com/leaseworks/lease-economics/pkg/schedule"
)

// Input carries the built schedule plus discounting parameters.
type Input struct {
	Schedule            schedule.Schedule
	RSF                 float64
	DiscountRatePercent float64
}

func (in Input) anchor() (time.Time, bool) {
	if len(in.Schedule.Rows) == 0 {
		return time.Time{}, false
	}
	return in.Schedule.PaymentDate(0), true
}

// RateDeltaPV returns the present value of applying a PSF/yr rate delta to
// every rent-paying month of the schedule.
func RateDeltaPV(in Input, deltaPSF float64) float64 {
	anchor, ok := in.anchor()
	if !ok || in.RSF <= 0 || deltaPSF == 0 {
		return 0
	}
	paying := in.Schedule.RentPayingMonths()
	if len(paying) == 0 {
		return 0
	}
	monthly := deltaPSF * in.RSF / constants.MonthsPerYear
	flows := make([]npv.Cashflow, len(paying))
	for k, i := range paying {
		flows[k] = npv.Cashflow{Date: in.Schedule.PaymentDate(i), Amount: monthly}
	}
	return npv.NetPresentValueFrom(flows, in.DiscountRatePercent, anchor)
}

// TIPV returns the value of a tenant-improvement allowance, paid at time 0
// and therefore undiscounted.
func TIPV(in Input, tiPSF float64) float64 {
	if in.RSF <= 0 {
		return 0
	}
	return tiPSF * in.RSF
}

// FreeRentPV returns the present value of waiving rent for the earliest
// freeMonths rent-paying months. A fractional month applies a multiplier on
// the boundary month. The result is <= 0 for positive freeMonths.
func FreeRentPV(in Input, freeMonths float64) float64 {
	anchor, ok := in.anchor()
	if !ok || in.RSF <= 0 || freeMonths <= 0 {
		return 0
	}
	paying := in.Schedule.RentPayingMonths()
	if len(paying) == 0 {
		return 0
	}

	whole := int(freeMonths)
	fraction := freeMonths - float64(whole)
	var flows []npv.Cashflow
	for k := 0; k < whole && k < len(paying); k++ {
		i := paying[k]
		flows = append(flows, npv.Cashflow{
			Date:   in.Schedule.PaymentDate(i),
			Amount: -in.Schedule.Rows[i].NetRentDue,
		})
	}
	if fraction > 0 && whole < len(paying) {
		i := paying[whole]
		flows = append(flows, npv.Cashflow{
			Date:   in.Schedule.PaymentDate(i),
			Amount: -in.Schedule.Rows[i].NetRentDue * fraction,
		})
	}
	return npv.NetPresentValueFrom(flows, in.DiscountRatePercent, anchor)
}

// TermExtensionPV returns the present value of appending extraMonths to the
// lease, each valued at the final month's contractual rent and discounted
// from the original schedule anchor so the result composes with the base
// NPV.
func TermExtensionPV(in Input, extraMonths int) float64 {
	anchor, ok := in.anchor()
	if !ok || in.RSF <= 0 || extraMonths <= 0 {
		return 0
	}
	rows := in.Schedule.Rows
	last := rows[len(rows)-1]
	rent := last.ContractualBaseRent
	commencement := rows[0].Start

	extended := datetime.BuildPeriods(commencement, len(rows)+extraMonths, time.Time{})
	flows := make([]npv.Cashflow, 0, extraMonths)
	for _, p := range extended[len(rows):] {
		date := p.Start
		if in.Schedule.Timing == schedule.Arrears {
			date = p.End
		}
		flows = append(flows, npv.Cashflow{Date: date, Amount: rent})
	}
	return npv.NetPresentValueFrom(flows, in.DiscountRatePercent, anchor)
}

// unitRatePV is the pivot all cross-conversions share.
func unitRatePV(in Input) float64 {
	return RateDeltaPV(in, 1)
}

// TIToRateEquivalent converts a TI allowance (PSF) into the PSF/yr rate
// delta of equal present value.
func TIToRateEquivalent(in Input, tiPSF float64) float64 {
	unit := unitRatePV(in)
	if unit == 0 {
		return 0
	}
	return TIPV(in, tiPSF) / unit
}

// RateToTIEquivalent converts a PSF/yr rate delta into the TI allowance
// (PSF) of equal present value.
func RateToTIEquivalent(in Input, deltaPSF float64) float64 {
	if in.RSF <= 0 {
		return 0
	}
	return RateDeltaPV(in, deltaPSF) / in.RSF
}

// FreeRentToRateEquivalent converts free-rent months into the PSF/yr rate
// delta of equal present value.
func FreeRentToRateEquivalent(in Input, freeMonths float64) float64 {
	unit := unitRatePV(in)
	if unit == 0 {
		return 0
	}
	return FreeRentPV(in, freeMonths) / unit
}

// TermExtensionToRateEquivalent converts a term extension into the PSF/yr
// rate delta of equal present value.
func TermExtensionToRateEquivalent(in Input, extraMonths int) float64 {
	unit := unitRatePV(in)
	if unit == 0 {
		return 0
	}
	return TermExtensionPV(in, extraMonths) / unit
}

// RateToFreeRentMonths inverts FreeRentToRateEquivalent numerically: a
// linear scan over k = 0..min(cap, rent-paying months) picks the k whose
// free-rent PV magnitude is closest to the target magnitude. The scan cap is
// fixed; leases with longer free-rent windows are not searched past it. The
// returned sign follows the target's sign.
func RateToFreeRentMonths(in Input, deltaPSF float64) float64 {
	target := RateDeltaPV(in, deltaPSF)
	if target == 0 {
		return 0
	}
	paying := in.Schedule.RentPayingMonths()
	limit := constants.FreeRentSearchCapMonths
	if len(paying) < limit {
		limit = len(paying)
	}

	targetAbs := math.Abs(target)
	bestK := 0
	bestDiff := math.Inf(1)
	for k := 0; k <= limit; k++ {
		diff := math.Abs(targetAbs - math.Abs(FreeRentPV(in, float64(k))))
		if diff < bestDiff {
			bestDiff = diff
			bestK = k
		}
	}
	if target < 0 {
		return -float64(bestK)
	}
	return float64(bestK)
}
