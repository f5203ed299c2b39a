package config

import (
	"fmt"
	"time"

	"github.com/leaseworks/lease-economics/pkg/abatement"
	"github.com/leaseworks/lease-economics/pkg/amortization"
	"github.com/leaseworks/lease-economics/pkg/cashflow"
	"github.com/leaseworks/lease-economics/pkg/escalation"
	"github.com/leaseworks/lease-economics/pkg/schedule"
)

// LeaseTerms is the typed, normalized input the analysis engine consumes.
// It is immutable by convention: every analysis run constructs fresh output
// from it.
type LeaseTerms struct {
	Name                 string
	Commencement         time.Time
	Expiration           time.Time
	TermMonths           int
	RSF                  float64
	BaseRatePSF          float64
	Timing               schedule.PaymentTiming
	RoundCents           bool
	DiscountRatePercent  float64
	RentEscalation       escalation.Config
	Abatement            abatement.Config
	Operating            cashflow.OperatingConfig
	Parking              cashflow.ParkingConfig
	OneTime              cashflow.OneTimeCosts
	Financing            cashflow.FinancingConfig
	TerminationFeeMonths int // 0 = no termination option configured
	OtherRecurringAnnual float64
}

// LeaseTerms converts the file-facing lease config into the typed domain
// input, reconciling term length against expiration. Parse failures return
// an error; business-rule findings surface as Issues, with error-severity
// ones blocking only via the opt-in BlockingError assertion.
func (c *Configuration) LeaseTerms() (LeaseTerms, []Issue, error) {
	lc := c.Lease

	commencement, err := parseOptionalDate(lc.CommencementDate, "commencementDate")
	if err != nil {
		return LeaseTerms{}, nil, err
	}
	expiration, err := parseOptionalDate(lc.ExpirationDate, "expirationDate")
	if err != nil {
		return LeaseTerms{}, nil, err
	}

	termMonths, expiration, issues := normalizeTermDates(commencement, expiration, lc.TermMonths)

	rentEsc, err := convertEscalation(lc.RentEscalation, "rentEscalation")
	if err != nil {
		return LeaseTerms{}, issues, err
	}
	opexEsc, err := convertEscalation(lc.Operating.Escalation, "operating.escalation")
	if err != nil {
		return LeaseTerms{}, issues, err
	}
	abate, err := convertAbatement(lc.Abatement)
	if err != nil {
		return LeaseTerms{}, issues, err
	}

	terms := LeaseTerms{
		Name:                lc.Name,
		Commencement:        commencement,
		Expiration:          expiration,
		TermMonths:          termMonths,
		RSF:                 lc.RSF,
		BaseRatePSF:         lc.BaseRatePSF,
		Timing:              paymentTiming(lc.PaymentTiming),
		RoundCents:          lc.RoundCents,
		DiscountRatePercent: lc.DiscountRatePercent,
		RentEscalation:      rentEsc,
		Abatement:           abate,
		Operating: cashflow.OperatingConfig{
			LeaseType:                          leaseType(lc.Operating.LeaseType),
			BaseRatePSF:                        lc.Operating.BaseRatePSF,
			BaseYearOffset:                     lc.Operating.BaseYearOffset,
			Escalation:                         opexEsc,
			ManualPassthroughPSF:               lc.Operating.ManualPassthroughPSF,
			ManualPassthroughEscalationPercent: lc.Operating.ManualPassthroughEscalationPercent,
		},
		Parking: cashflow.ParkingConfig{
			Spaces:              lc.Parking.Spaces,
			MonthlyCostPerSpace: lc.Parking.MonthlyCostPerSpace,
			EscalationPercent:   lc.Parking.EscalationPercent,
		},
		OneTime: cashflow.OneTimeCosts{
			TIAllowancePSF:     lc.OneTime.TIAllowancePSF,
			ActualBuildCostPSF: lc.OneTime.ActualBuildCostPSF,
			TransactionCosts:   lc.OneTime.TransactionCosts,
		},
		Financing: cashflow.FinancingConfig{
			FinanceTIAllowance:      lc.Financing.FinanceTIAllowance,
			FinanceFreeRent:         lc.Financing.FinanceFreeRent,
			FinanceTransactionCosts: lc.Financing.FinanceTransactionCosts,
			AnnualRatePercent:       lc.Financing.AnnualRatePercent,
			Method:                  amortizationMethod(lc.Financing.Method),
		},
		OtherRecurringAnnual: lc.OtherRecurringAnnual,
	}
	if lc.Termination != nil {
		terms.TerminationFeeMonths = lc.Termination.FeeMonths
	}

	return terms, issues, nil
}

func parseOptionalDate(value, field string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	return t, nil
}

func convertEscalation(ec EscalationConfig, field string) (escalation.Config, error) {
	cfg := escalation.Config{
		Mode:       escalationMode(ec.Mode),
		Rate:       ec.Rate,
		Amount:     ec.Amount,
		CapPercent: ec.CapPercent,
	}
	for i, p := range ec.Periods {
		start, err := parseOptionalDate(p.PeriodStart, fmt.Sprintf("%s.periods[%d].periodStart", field, i))
		if err != nil {
			return cfg, err
		}
		end, err := parseOptionalDate(p.PeriodEnd, fmt.Sprintf("%s.periods[%d].periodEnd", field, i))
		if err != nil {
			return cfg, err
		}
		cfg.Periods = append(cfg.Periods, escalation.Period{
			Start:      start,
			End:        end,
			Percentage: p.EscalationPercentage,
		})
	}
	return cfg, nil
}

func convertAbatement(ac AbatementConfig) (abatement.Config, error) {
	cfg := abatement.Config{
		MonthsAtCommencement: ac.MonthsAtCommencement,
		AppliesTo:            abatementAppliesTo(ac.AppliesTo),
	}
	for i, p := range ac.Periods {
		start, err := parseOptionalDate(p.PeriodStart, fmt.Sprintf("abatement.periods[%d].periodStart", i))
		if err != nil {
			return cfg, err
		}
		end, err := parseOptionalDate(p.PeriodEnd, fmt.Sprintf("abatement.periods[%d].periodEnd", i))
		if err != nil {
			return cfg, err
		}
		appliesTo := abatementAppliesTo(p.AppliesTo)
		if p.AppliesTo == "" {
			appliesTo = cfg.AppliesTo
		}
		cfg.Periods = append(cfg.Periods, abatement.Period{
			Start:      start,
			End:        end,
			FreeMonths: p.FreeRentMonths,
			AppliesTo:  appliesTo,
		})
	}
	return cfg, nil
}

func escalationMode(mode string) escalation.Mode {
	switch mode {
	case string(escalation.ModeFixedPercent):
		return escalation.ModeFixedPercent
	case string(escalation.ModeFixedAmount):
		return escalation.ModeFixedAmount
	case string(escalation.ModeCustom):
		return escalation.ModeCustom
	default:
		return escalation.ModeNone
	}
}

func abatementAppliesTo(appliesTo string) abatement.AppliesTo {
	if appliesTo == string(abatement.BasePlusNNN) {
		return abatement.BasePlusNNN
	}
	return abatement.BaseOnly
}

func leaseType(lt string) cashflow.LeaseType {
	if lt == string(cashflow.TripleNet) {
		return cashflow.TripleNet
	}
	return cashflow.FullService
}

func paymentTiming(timing string) schedule.PaymentTiming {
	if timing == string(schedule.Arrears) {
		return schedule.Arrears
	}
	return schedule.Advance
}

func amortizationMethod(method string) amortization.Method {
	if method == string(amortization.MethodStraightLine) {
		return amortization.MethodStraightLine
	}
	return amortization.MethodLevel
}
