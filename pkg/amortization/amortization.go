// Package amortization builds monthly repayment schedules for financed lease
// concessions and resolves unamortized balances and early-termination fees
// against them.
package amortization

import (
	"math"

	"github.com/leaseworks/lease-economics/pkg/constants"
	"github.com/leaseworks/lease-economics/pkg/mathutil"
)

// Method selects how principal is repaid.
type Method string

const (
	// MethodLevel repays with a constant monthly payment (standard annuity).
	MethodLevel Method = "level"
	// MethodStraightLine repays a constant principal portion each month.
	MethodStraightLine Method = "straight_line"
)

// Row is one month of an amortization schedule.
type Row struct {
	Month            int
	BeginningBalance float64
	Payment          float64
	Interest         float64
	Principal        float64
	EndingBalance    float64 // >= 0
}

// MonthlyPayment calculates the level monthly payment using the standard
// annuity formula. The monthly rate uses the same effective-annual-rate
// conversion as discounting; the two must never diverge. Zero interest
// divides the principal evenly across the term.
func MonthlyPayment(principal, annualRatePercent float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	if annualRatePercent == 0 {
		return principal / float64(termMonths)
	}
	monthlyRate := mathutil.EffectiveMonthlyRate(annualRatePercent)
	power := math.Pow(1+monthlyRate, float64(termMonths))
	discountFactor := (power - 1) / power
	return principal * monthlyRate / discountFactor
}

// Schedule builds the full monthly schedule for the given principal. Each
// row computes interest on the running balance and clamps the ending balance
// at zero against floating drift. Non-positive principal or term yields nil.
func Schedule(principal, annualRatePercent float64, termMonths int, method Method) []Row {
	if principal <= 0 || termMonths <= 0 {
		return nil
	}
	monthlyRate := mathutil.EffectiveMonthlyRate(annualRatePercent)
	rows := make([]Row, 0, termMonths)
	balance := principal

	var levelPayment float64
	if method != MethodStraightLine {
		levelPayment = MonthlyPayment(principal, annualRatePercent, termMonths)
	}

	for month := 0; month < termMonths; month++ {
		interest := balance * monthlyRate
		var payment, principalPortion float64
		if method == MethodStraightLine {
			principalPortion = principal / float64(termMonths)
			payment = principalPortion + interest
		} else {
			payment = levelPayment
			principalPortion = payment - interest
		}
		ending := mathutil.Max(0, balance-principalPortion)
		if month == termMonths-1 || mathutil.Round(ending) == 0 {
			// Machine error would leave a residual balance otherwise.
			ending = 0
		}
		rows = append(rows, Row{
			Month:            month,
			BeginningBalance: balance,
			Payment:          payment,
			Interest:         interest,
			Principal:        principalPortion,
			EndingBalance:    ending,
		})
		balance = ending
		if balance == 0 {
			break
		}
	}
	return rows
}

// UnamortizedBalance resolves the outstanding principal before month M's
// payment: the full total at month 0, the prior month's ending balance for
// M >= 1, and 0 beyond the amortization horizon. Resolution prefers the
// row's recorded beginning balance, then the prior row's ending balance,
// then total minus cumulative principal paid through M-1. The result is
// clamped to [0, total].
func UnamortizedBalance(rows []Row, month int, total float64) float64 {
	if month <= 0 {
		return clampBalance(total, total)
	}
	if month >= len(rows) {
		if len(rows) == 0 {
			return clampBalance(total, total)
		}
		return 0
	}
	if rows[month].BeginningBalance > 0 {
		return clampBalance(rows[month].BeginningBalance, total)
	}
	if prior := rows[month-1].EndingBalance; prior > 0 {
		return clampBalance(prior, total)
	}
	paid := 0.0
	for _, row := range rows[:month] {
		paid += row.Principal
	}
	return clampBalance(total-paid, total)
}

func clampBalance(balance, total float64) float64 {
	return mathutil.Min(mathutil.Max(balance, 0), mathutil.Max(total, 0))
}

// ResolvePenaltyMonths resolves the termination penalty: an explicit
// override wins, then a configured termination option's fee months, then
// the default.
func ResolvePenaltyMonths(override, optionFeeMonths int) int {
	if override > 0 {
		return override
	}
	if optionFeeMonths > 0 {
		return optionFeeMonths
	}
	return constants.DefaultTerminationPenaltyMonths
}

// TerminationFee computes the early-termination fee at the given month:
// penaltyMonths of the current monthly rent plus the unamortized balance of
// financed concessions.
func TerminationFee(rows []Row, month, penaltyMonths int, currentMonthlyRent, total float64) float64 {
	return float64(penaltyMonths)*currentMonthlyRent + UnamortizedBalance(rows, month, total)
}
