package config

import (
	"testing"

	"github.com/leaseworks/lease-economics/pkg/abatement"
	"github.com/leaseworks/lease-economics/pkg/amortization"
	"github.com/leaseworks/lease-economics/pkg/cashflow"
	"github.com/leaseworks/lease-economics/pkg/escalation"
	"github.com/leaseworks/lease-economics/pkg/schedule"
)

func sampleLeaseConfig() LeaseConfig {
	return LeaseConfig{
		Name:                "Sample Tower Suite 400",
		CommencementDate:    "2024-01-15",
		TermMonths:          36,
		RSF:                 10000,
		BaseRatePSF:         30.0,
		PaymentTiming:       "arrears",
		DiscountRatePercent: 8.0,
		RentEscalation:      EscalationConfig{Mode: "fixed_percent", Rate: 3.0},
		Abatement: AbatementConfig{
			AppliesTo: "base_plus_nnn",
			Periods: []AbatementPeriodConfig{
				{PeriodStart: "2024-01-15", PeriodEnd: "2024-04-14", FreeRentMonths: 3},
				{PeriodStart: "2025-01-15", PeriodEnd: "2025-02-14", FreeRentMonths: 1, AppliesTo: "base_only"},
			},
		},
		Operating: OperatingConfig{
			LeaseType:   "triple_net",
			BaseRatePSF: 12.0,
			Escalation:  EscalationConfig{Mode: "fixed_percent", Rate: 3.0},
		},
		Financing:   FinancingConfig{FinanceFreeRent: true, AnnualRatePercent: 6.0, Method: "straight_line"},
		Termination: &TerminationConfig{FeeMonths: 4},
	}
}

func TestLeaseTermsConversion(t *testing.T) {
	conf := &Configuration{Lease: sampleLeaseConfig()}
	terms, issues, err := conf.LeaseTerms()
	if err != nil {
		t.Fatalf("LeaseTerms() error = %v", err)
	}
	if len(issues) != 0 {
		t.Errorf("unexpected issues: %+v", issues)
	}

	if terms.TermMonths != 36 {
		t.Errorf("termMonths = %d, expected 36", terms.TermMonths)
	}
	if got := terms.Expiration.Format(DateLayout); got != "2027-01-14" {
		t.Errorf("expiration = %s, expected 2027-01-14", got)
	}
	if terms.Timing != schedule.Arrears {
		t.Errorf("timing = %q, expected arrears", terms.Timing)
	}
	if terms.RentEscalation.Mode != escalation.ModeFixedPercent {
		t.Errorf("rent escalation mode = %q", terms.RentEscalation.Mode)
	}
	if terms.Operating.LeaseType != cashflow.TripleNet {
		t.Errorf("lease type = %q, expected triple_net", terms.Operating.LeaseType)
	}
	if terms.Financing.Method != amortization.MethodStraightLine {
		t.Errorf("amortization method = %q, expected straight_line", terms.Financing.Method)
	}
	if terms.TerminationFeeMonths != 4 {
		t.Errorf("termination fee months = %d, expected 4", terms.TerminationFeeMonths)
	}
}

func TestLeaseTermsAbatementAppliesToFallback(t *testing.T) {
	conf := &Configuration{Lease: sampleLeaseConfig()}
	terms, _, err := conf.LeaseTerms()
	if err != nil {
		t.Fatalf("LeaseTerms() error = %v", err)
	}

	periods := terms.Abatement.Periods
	if len(periods) != 2 {
		t.Fatalf("abatement periods = %d, expected 2", len(periods))
	}
	// The first period inherits the config-level scope; the second overrides it.
	if periods[0].AppliesTo != abatement.BasePlusNNN {
		t.Errorf("period 0 appliesTo = %q, expected base_plus_nnn", periods[0].AppliesTo)
	}
	if periods[1].AppliesTo != abatement.BaseOnly {
		t.Errorf("period 1 appliesTo = %q, expected base_only", periods[1].AppliesTo)
	}
}

func TestLeaseTermsEnumDefaults(t *testing.T) {
	lc := sampleLeaseConfig()
	lc.PaymentTiming = ""
	lc.RentEscalation.Mode = "unknown"
	lc.Operating.LeaseType = ""
	lc.Financing.Method = ""
	lc.Abatement.AppliesTo = ""
	conf := &Configuration{Lease: lc}

	terms, _, err := conf.LeaseTerms()
	if err != nil {
		t.Fatalf("LeaseTerms() error = %v", err)
	}
	if terms.Timing != schedule.Advance {
		t.Errorf("timing default = %q, expected advance", terms.Timing)
	}
	if terms.RentEscalation.Mode != escalation.ModeNone {
		t.Errorf("escalation mode default = %q, expected none", terms.RentEscalation.Mode)
	}
	if terms.Operating.LeaseType != cashflow.FullService {
		t.Errorf("lease type default = %q, expected full_service", terms.Operating.LeaseType)
	}
	if terms.Financing.Method != amortization.MethodLevel {
		t.Errorf("amortization method default = %q, expected level", terms.Financing.Method)
	}
	if terms.Abatement.AppliesTo != abatement.BaseOnly {
		t.Errorf("abatement appliesTo default = %q, expected base_only", terms.Abatement.AppliesTo)
	}
}

func TestLeaseTermsInvalidDate(t *testing.T) {
	lc := sampleLeaseConfig()
	lc.CommencementDate = "01/15/2024"
	conf := &Configuration{Lease: lc}
	if _, _, err := conf.LeaseTerms(); err == nil {
		t.Error("expected a parse error for a malformed commencement date")
	}
}

func TestLeaseTermsMissingCommencementIssues(t *testing.T) {
	lc := sampleLeaseConfig()
	lc.CommencementDate = ""
	conf := &Configuration{Lease: lc}

	terms, issues, err := conf.LeaseTerms()
	if err != nil {
		t.Fatalf("LeaseTerms() error = %v, business findings must be issues", err)
	}
	if terms.TermMonths != 0 {
		t.Errorf("termMonths = %d, expected 0 without a commencement date", terms.TermMonths)
	}
	if BlockingError(issues) == nil {
		t.Error("expected a blocking issue for the missing commencement date")
	}
}

func TestLeaseTermsNoTermination(t *testing.T) {
	lc := sampleLeaseConfig()
	lc.Termination = nil
	conf := &Configuration{Lease: lc}

	terms, _, err := conf.LeaseTerms()
	if err != nil {
		t.Fatalf("LeaseTerms() error = %v", err)
	}
	if terms.TerminationFeeMonths != 0 {
		t.Errorf("termination fee months = %d, expected 0 when unconfigured", terms.TerminationFeeMonths)
	}
}
