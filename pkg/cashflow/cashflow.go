// Package cashflow aggregates the monthly rent schedule together with
// operating pass-through, parking, one-time costs, and financed-concession
// amortization into per-month and per-term-year cashflow lines.
package cashflow

import (
	"time"

	"go.uber.org/zap"

	"github.com/leaseworks/lease-economics/pkg/abatement"
	"github.com/leaseworks/lease-economics/pkg/amortization"
	"github.com/leaseworks/lease-economics/pkg/constants"
	"github.com/leaseworks/lease-economics/pkg/escalation"
	"github.com/leaseworks/lease-economics/pkg/mathutil"
	"github.com/leaseworks/lease-economics/pkg/schedule"
)

// LeaseType selects the operating-expense pass-through model.
type LeaseType string

const (
	// FullService means the landlord covers base-year operating expenses;
	// the tenant pays only increases above the escalated base-year rate.
	FullService LeaseType = "full_service"
	// TripleNet means the tenant pays the full escalated operating rate.
	TripleNet LeaseType = "triple_net"
)

// OperatingConfig describes the operating-expense pass-through.
type OperatingConfig struct {
	LeaseType   LeaseType
	BaseRatePSF float64
	// BaseYearOffset is the term-year index of the base year for full-service
	// pass-through; 0 means the commencement year.
	BaseYearOffset int
	Escalation     escalation.Config
	// ManualPassthroughPSF, when positive, substitutes a separately escalated
	// flat PSF figure for the full-service increase calculation.
	ManualPassthroughPSF               float64
	ManualPassthroughEscalationPercent float64
}

// ParkingConfig describes recurring parking charges.
type ParkingConfig struct {
	Spaces              int
	MonthlyCostPerSpace float64
	EscalationPercent   float64
}

// OneTimeCosts holds items that post only to term-year 0.
type OneTimeCosts struct {
	TIAllowancePSF     float64
	ActualBuildCostPSF float64
	TransactionCosts   float64
}

// FinancingConfig flags which concessions the landlord amortizes back into
// rent over the full term.
type FinancingConfig struct {
	FinanceTIAllowance      bool
	FinanceFreeRent         bool
	FinanceTransactionCosts bool
	AnnualRatePercent       float64
	Method                  amortization.Method
}

// AnnualLine is one lease-anniversary term-year of cashflow.
// Invariants: Subtotal = BaseRent+Operating+Parking+OtherRecurring;
// NetCashFlow = Subtotal+AbatementCredit+TIShortfall+TransactionCosts+AmortizedCosts.
type AnnualLine struct {
	Year             int
	Months           int
	BaseRent         float64
	Operating        float64
	Parking          float64
	OtherRecurring   float64
	AbatementCredit  float64 // <= 0
	TIShortfall      float64
	TransactionCosts float64
	AmortizedCosts   float64
	Subtotal         float64
	NetCashFlow      float64
}

// MonthlyLine is one lease month of total cashflow.
type MonthlyLine struct {
	Index           int
	Date            time.Time
	BaseRent        float64
	AbatementCredit float64 // <= 0
	Operating       float64
	Parking         float64
	OneTime         float64
	Amortized       float64
	Total           float64
}

// Input holds everything the engine needs, already normalized.
type Input struct {
	Schedule             schedule.Schedule
	RSF                  float64
	AbatementAppliesTo   abatement.AppliesTo
	Operating            OperatingConfig
	Parking              ParkingConfig
	OneTime              OneTimeCosts
	Financing            FinancingConfig
	OtherRecurringAnnual float64
}

// Result is the aggregated cashflow.
type Result struct {
	Annual            []AnnualLine
	Monthly           []MonthlyLine
	Amortization      []amortization.Row
	FinancedPrincipal float64
}

// Engine computes cashflow aggregations.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a cashflow engine. A nil logger falls back to a no-op
// logger.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// Build aggregates the schedule into monthly and annual cashflow lines. An
// empty schedule yields an empty result.
func (e *Engine) Build(in Input) Result {
	rows := in.Schedule.Rows
	if len(rows) == 0 {
		return Result{}
	}

	termMonths := len(rows)
	termYears := (termMonths + constants.MonthsPerYear - 1) / constants.MonthsPerYear
	commencement := rows[0].Start

	opexRates := escalation.AnnualRates(in.Operating.Escalation, in.Operating.BaseRatePSF,
		termYears, commencement)
	baseYear := in.Operating.BaseYearOffset
	if baseYear < 0 || baseYear >= termYears {
		baseYear = 0
	}

	principal, amortRows := e.financeConcessions(in, termMonths)

	monthly := make([]MonthlyLine, termMonths)
	annual := make([]AnnualLine, termYears)
	for y := range annual {
		annual[y].Year = y
	}

	for i, row := range rows {
		year := i / constants.MonthsPerYear

		operating := e.operatingForMonth(in, opexRates, baseYear, year)
		parking := parkingForMonth(in.Parking, year)
		other := in.OtherRecurringAnnual / constants.MonthsPerYear

		credit := row.FreeRentAmount
		if row.Free && in.AbatementAppliesTo == abatement.BasePlusNNN &&
			in.Operating.LeaseType == TripleNet {
			credit -= operating
		}

		var amortized float64
		if i < len(amortRows) {
			amortized = amortRows[i].Payment
		}

		var oneTime float64
		if i == 0 {
			oneTime = e.oneTimeAtCommencement(in)
		}

		monthly[i] = MonthlyLine{
			Index:           i,
			Date:            row.Start,
			BaseRent:        row.ContractualBaseRent,
			AbatementCredit: credit,
			Operating:       operating,
			Parking:         parking,
			OneTime:         oneTime,
			Amortized:       amortized,
			Total: row.ContractualBaseRent + credit + operating + parking +
				oneTime + amortized,
		}

		line := &annual[year]
		line.Months++
		line.BaseRent += row.ContractualBaseRent
		line.Operating += operating
		line.Parking += parking
		line.OtherRecurring += other
		line.AbatementCredit += credit
		line.AmortizedCosts += amortized
	}

	tiShortfall := mathutil.Max(0,
		in.OneTime.ActualBuildCostPSF-in.OneTime.TIAllowancePSF) * in.RSF
	annual[0].TIShortfall = tiShortfall
	if !in.Financing.FinanceTransactionCosts {
		annual[0].TransactionCosts = in.OneTime.TransactionCosts
	}

	for y := range annual {
		line := &annual[y]
		line.Subtotal = line.BaseRent + line.Operating + line.Parking + line.OtherRecurring
		line.NetCashFlow = line.Subtotal + line.AbatementCredit + line.TIShortfall +
			line.TransactionCosts + line.AmortizedCosts
	}

	return Result{
		Annual:            annual,
		Monthly:           monthly,
		Amortization:      amortRows,
		FinancedPrincipal: principal,
	}
}

// operatingForMonth returns the operating pass-through for one month of the
// given term year.
func (e *Engine) operatingForMonth(in Input, opexRates []float64, baseYear, year int) float64 {
	if in.Operating.BaseRatePSF <= 0 && in.Operating.ManualPassthroughPSF <= 0 {
		return 0
	}
	switch in.Operating.LeaseType {
	case TripleNet:
		return opexRates[year] * in.RSF / constants.MonthsPerYear
	case FullService:
		if in.Operating.ManualPassthroughPSF > 0 {
			escalated := in.Operating.ManualPassthroughPSF *
				compound(in.Operating.ManualPassthroughEscalationPercent, year)
			return escalated * in.RSF / constants.MonthsPerYear
		}
		increase := mathutil.Max(0, opexRates[year]-opexRates[baseYear])
		return increase * in.RSF / constants.MonthsPerYear
	default:
		return 0
	}
}

func parkingForMonth(cfg ParkingConfig, year int) float64 {
	if cfg.Spaces <= 0 || cfg.MonthlyCostPerSpace <= 0 {
		return 0
	}
	return float64(cfg.Spaces) * cfg.MonthlyCostPerSpace * compound(cfg.EscalationPercent, year)
}

func compound(annualPercent float64, years int) float64 {
	factor := 1.0
	rate := 1 + annualPercent/constants.PercentageMultiplier
	for i := 0; i < years; i++ {
		factor *= rate
	}
	return factor
}

// financeConcessions sums the flagged concessions into a financed principal
// and spreads it over the full term.
func (e *Engine) financeConcessions(in Input, termMonths int) (float64, []amortization.Row) {
	principal := 0.0
	if in.Financing.FinanceTIAllowance {
		principal += in.OneTime.TIAllowancePSF * in.RSF
	}
	if in.Financing.FinanceFreeRent {
		principal += -in.Schedule.Summary.TotalAbated
	}
	if in.Financing.FinanceTransactionCosts {
		principal += in.OneTime.TransactionCosts
	}
	if principal <= 0 {
		return 0, nil
	}
	e.logger.Debug("amortizing financed concessions",
		zap.String("op", "cashflow.Build"),
		zap.Float64("principal", principal),
		zap.Int("termMonths", termMonths),
	)
	return principal, amortization.Schedule(principal, in.Financing.AnnualRatePercent,
		termMonths, in.Financing.Method)
}

// oneTimeAtCommencement returns the one-time items posting at month 0.
func (e *Engine) oneTimeAtCommencement(in Input) float64 {
	oneTime := mathutil.Max(0, in.OneTime.ActualBuildCostPSF-in.OneTime.TIAllowancePSF) * in.RSF
	if !in.Financing.FinanceTransactionCosts {
		oneTime += in.OneTime.TransactionCosts
	}
	return oneTime
}
