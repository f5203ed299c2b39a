// Package schedule builds the month-level contractual rent schedule by
// composing the anchored month periods, the escalation resolver, and the
// abatement mapper.
package schedule

import (
	"time"

	"github.com/leaseworks/lease-economics/pkg/abatement"
	"github.com/leaseworks/lease-economics/pkg/constants"
	"github.com/leaseworks/lease-economics/pkg/datetime"
	"github.com/leaseworks/lease-economics/pkg/escalation"
	"github.com/leaseworks/lease-economics/pkg/mathutil"
)

// PaymentTiming tags whether rent is due in advance or arrears. The tag only
// selects which date (period start vs end) becomes the discounting date; it
// never shifts month boundaries.
type PaymentTiming string

const (
	// Advance means rent is due on the first day of each lease month.
	Advance PaymentTiming = "advance"
	// Arrears means rent is due on the last day of each lease month.
	Arrears PaymentTiming = "arrears"
)

// Row is one month of the rent schedule.
// Invariant: NetRentDue = ContractualBaseRent + FreeRentAmount.
type Row struct {
	Index               int
	Start               time.Time
	End                 time.Time
	ContractualBaseRent float64
	FreeRentAmount      float64 // <= 0
	NetRentDue          float64
	Free                bool
}

// Summary aggregates the schedule.
type Summary struct {
	TermMonths       int
	FreeMonths       int
	TotalContractual float64
	TotalAbated      float64 // <= 0
	TotalNet         float64
	// BlendedRatePSF is the average annual net rent per square foot over the
	// term.
	BlendedRatePSF float64
}

// Input holds everything the builder needs. Expiration may be zero when
// TermMonths is set; TermMonths may be zero when Expiration is set (callers
// normally resolve both via config normalization first).
type Input struct {
	Commencement time.Time
	Expiration   time.Time
	TermMonths   int
	RSF          float64
	BaseRatePSF  float64 // annual rate per square foot
	Escalation   escalation.Config
	Abatement    abatement.Config
	Timing       PaymentTiming
	// RoundCents rounds every money value at every step. Display-only and
	// intentionally lossy for cumulative totals.
	RoundCents bool
}

// Schedule is the built monthly schedule.
type Schedule struct {
	Rows    []Row
	Summary Summary
	Timing  PaymentTiming
	// AnnualRates holds the escalated per-term-year PSF rates the rows were
	// built from, for downstream consumers.
	AnnualRates []float64
	RSF         float64
}

// Build composes the month periods, escalation table, and abatement flags
// into the monthly rent schedule. Missing commencement or a non-positive
// term yields an empty schedule, never an error.
func Build(in Input) Schedule {
	termMonths := in.TermMonths
	if termMonths <= 0 {
		termMonths = datetime.MonthsBetween(in.Commencement, in.Expiration)
	}
	months := datetime.BuildPeriods(in.Commencement, termMonths, in.Expiration)
	if len(months) == 0 {
		return Schedule{Timing: in.Timing, RSF: in.RSF}
	}

	termYears := (len(months) + constants.MonthsPerYear - 1) / constants.MonthsPerYear
	rates := escalation.AnnualRates(in.Escalation, in.BaseRatePSF, termYears, in.Commencement)
	flags := abatement.FreeMonthFlags(abatement.Normalize(in.Abatement, in.Commencement), months)

	rows := make([]Row, len(months))
	var summary Summary
	summary.TermMonths = len(months)
	for i, m := range months {
		contractual := rates[i/constants.MonthsPerYear] * in.RSF / constants.MonthsPerYear
		if in.RoundCents {
			contractual = mathutil.Round(contractual)
		}
		var freeRent float64
		if flags[i] {
			freeRent = -contractual
			summary.FreeMonths++
		}
		net := contractual + freeRent
		if in.RoundCents {
			net = mathutil.Round(net)
		}
		rows[i] = Row{
			Index:               m.Index,
			Start:               m.Start,
			End:                 m.End,
			ContractualBaseRent: contractual,
			FreeRentAmount:      freeRent,
			NetRentDue:          net,
			Free:                flags[i],
		}
		summary.TotalContractual += contractual
		summary.TotalAbated += freeRent
		summary.TotalNet += net
	}

	// Clamp denominators rather than dividing by zero.
	rsf := mathutil.Max(in.RSF, 1)
	summary.BlendedRatePSF = summary.TotalNet * constants.MonthsPerYear /
		(rsf * float64(mathutil.Max(float64(summary.TermMonths), 1)))

	return Schedule{
		Rows:        rows,
		Summary:     summary,
		Timing:      in.Timing,
		AnnualRates: rates,
		RSF:         in.RSF,
	}
}

// PaymentDate returns the discounting date for the given row per the
// schedule's payment-timing tag.
func (s Schedule) PaymentDate(i int) time.Time {
	if s.Timing == Arrears {
		return s.Rows[i].End
	}
	return s.Rows[i].Start
}

// RentPayingMonths returns the indexes of months with positive net rent due.
func (s Schedule) RentPayingMonths() []int {
	var paying []int
	for i, row := range s.Rows {
		if mathutil.IsPositive(row.NetRentDue) {
			paying = append(paying, i)
		}
	}
	return paying
}

// ContractualAtMonth returns the contractual base rent for the given month
// index, or 0 when the index is out of range.
func (s Schedule) ContractualAtMonth(i int) float64 {
	if i < 0 || i >= len(s.Rows) {
		return 0
	}
	return s.Rows[i].ContractualBaseRent
}
