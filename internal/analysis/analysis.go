// Package analysis composes the calculation pipeline — monthly schedule,
// cashflow aggregation, discounting, financed-concession amortization, and
// termination economics — into one result per lease.
package analysis

import (
	"go.uber.org/zap"

	"github.com/leaseworks/lease-economics/internal/config"
	"github.com/leaseworks/lease-economics/pkg/amortization"
	"github.com/leaseworks/lease-economics/pkg/cashflow"
	"github.com/leaseworks/lease-economics/pkg/equivalency"
	"github.com/leaseworks/lease-economics/pkg/npv"
	"github.com/leaseworks/lease-economics/pkg/schedule"
)

// Economics is the composite result of one analysis run. Every field is
// freshly constructed; recomputation is total and stateless on every input
// change.
type Economics struct {
	Name     string
	Schedule schedule.Schedule
	Cashflow cashflow.Result
	// RentNPV discounts the net rent stream alone.
	RentNPV float64
	// CashflowNPV discounts the full monthly cashflow including operating,
	// parking, one-time, and amortized items.
	CashflowNPV float64
	// AnnualNPV discounts the annual net-cashflow lines at integer-year
	// boundaries; it exists for consumers working at annual granularity.
	AnnualNPV                float64
	BlendedRatePSF           float64
	TerminationPenaltyMonths int
	// TerminationFees holds the early-termination fee at each lease month.
	TerminationFees []float64
}

// Engine runs analyses.
type Engine struct {
	logger   *zap.Logger
	cashflow *cashflow.Engine
}

// NewEngine creates an analysis engine. A nil logger falls back to a no-op
// logger.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		logger:   logger,
		cashflow: cashflow.NewEngine(logger),
	}
}

// Run computes the full economics for one set of lease terms. Degenerate
// input (missing commencement, non-positive term) yields empty results, not
// an error.
func (e *Engine) Run(terms config.LeaseTerms) Economics {
	sched := schedule.Build(schedule.Input{
		Commencement: terms.Commencement,
		Expiration:   terms.Expiration,
		TermMonths:   terms.TermMonths,
		RSF:          terms.RSF,
		BaseRatePSF:  terms.BaseRatePSF,
		Escalation:   terms.RentEscalation,
		Abatement:    terms.Abatement,
		Timing:       terms.Timing,
		RoundCents:   terms.RoundCents,
	})

	econ := Economics{
		Name:                     terms.Name,
		Schedule:                 sched,
		BlendedRatePSF:           sched.Summary.BlendedRatePSF,
		TerminationPenaltyMonths: amortization.ResolvePenaltyMonths(0, terms.TerminationFeeMonths),
	}
	if len(sched.Rows) == 0 {
		e.logger.Debug("empty schedule, returning zero economics",
			zap.String("op", "analysis.Run"),
			zap.String("lease", terms.Name),
		)
		return econ
	}

	econ.Cashflow = e.cashflow.Build(cashflow.Input{
		Schedule:             sched,
		RSF:                  terms.RSF,
		AbatementAppliesTo:   terms.Abatement.AppliesTo,
		Operating:            terms.Operating,
		Parking:              terms.Parking,
		OneTime:              terms.OneTime,
		Financing:            terms.Financing,
		OtherRecurringAnnual: terms.OtherRecurringAnnual,
	})

	econ.RentNPV = e.rentNPV(sched, terms.DiscountRatePercent)
	econ.CashflowNPV = e.totalNPV(sched, econ.Cashflow, terms.DiscountRatePercent)

	annualNet := make([]float64, len(econ.Cashflow.Annual))
	for y, line := range econ.Cashflow.Annual {
		annualNet[y] = line.NetCashFlow
	}
	econ.AnnualNPV = npv.DiscountAnnual(annualNet, terms.DiscountRatePercent)

	econ.TerminationFees = e.terminationFees(sched, econ.Cashflow, econ.TerminationPenaltyMonths)

	e.logger.Debug("analysis complete",
		zap.String("op", "analysis.Run"),
		zap.String("lease", terms.Name),
		zap.Int("termMonths", sched.Summary.TermMonths),
		zap.Float64("rentNPV", econ.RentNPV),
	)
	return econ
}

func (e *Engine) rentNPV(sched schedule.Schedule, discountRate float64) float64 {
	flows := make([]npv.Cashflow, len(sched.Rows))
	for i, row := range sched.Rows {
		flows[i] = npv.Cashflow{Date: sched.PaymentDate(i), Amount: row.NetRentDue}
	}
	return npv.NetPresentValue(flows, discountRate)
}

func (e *Engine) totalNPV(sched schedule.Schedule, cf cashflow.Result, discountRate float64) float64 {
	flows := make([]npv.Cashflow, len(cf.Monthly))
	for i, line := range cf.Monthly {
		flows[i] = npv.Cashflow{Date: sched.PaymentDate(i), Amount: line.Total}
	}
	return npv.NetPresentValue(flows, discountRate)
}

// terminationFees builds the fee-by-month curve from the financed
// amortization schedule and the contractual rent at each month.
func (e *Engine) terminationFees(sched schedule.Schedule, cf cashflow.Result, penaltyMonths int) []float64 {
	fees := make([]float64, len(sched.Rows))
	for m := range sched.Rows {
		fees[m] = amortization.TerminationFee(cf.Amortization, m, penaltyMonths,
			sched.ContractualAtMonth(m), cf.FinancedPrincipal)
	}
	return fees
}

// TerminationFeeAtMonth resolves the termination fee at one month, honoring
// an explicit penalty-months override ahead of the configured option.
func (e *Engine) TerminationFeeAtMonth(econ Economics, month, penaltyOverride int) float64 {
	if month < 0 || month >= len(econ.Schedule.Rows) {
		return 0
	}
	penalty := amortization.ResolvePenaltyMonths(penaltyOverride, econ.TerminationPenaltyMonths)
	return amortization.TerminationFee(econ.Cashflow.Amortization, month, penalty,
		econ.Schedule.ContractualAtMonth(month), econ.Cashflow.FinancedPrincipal)
}

// EquivalencyInput prepares the equivalency calculator's view of a run.
func (e *Engine) EquivalencyInput(econ Economics, terms config.LeaseTerms) equivalency.Input {
	return equivalency.Input{
		Schedule:            econ.Schedule,
		RSF:                 terms.RSF,
		DiscountRatePercent: terms.DiscountRatePercent,
	}
}
