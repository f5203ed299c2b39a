package analysis

import (
	"math"
	"testing"

	"github.com/leaseworks/lease-economics/internal/config"
	"github.com/leaseworks/lease-economics/pkg/abatement"
	"github.com/leaseworks/lease-economics/pkg/cashflow"
	"github.com/leaseworks/lease-economics/pkg/datetime"
	"github.com/leaseworks/lease-economics/pkg/escalation"
)

// sampleTerms mirrors a 36-month, 10,000 RSF, $30 PSF lease with 3% annual
// escalation and 3 free months at commencement.
func sampleTerms() config.LeaseTerms {
	return config.LeaseTerms{
		Name:                "Sample Tower Suite 400",
		Commencement:        datetime.MustParseDate("2024-01-15"),
		TermMonths:          36,
		RSF:                 10000,
		BaseRatePSF:         30.0,
		DiscountRatePercent: 8.0,
		RentEscalation:      escalation.Config{Mode: escalation.ModeFixedPercent, Rate: 3.0},
		Abatement:           abatement.Config{MonthsAtCommencement: 3},
	}
}

func TestRunFullEconomics(t *testing.T) {
	engine := NewEngine(nil)
	econ := engine.Run(sampleTerms())

	sched := econ.Schedule
	if sched.Summary.TermMonths != 36 {
		t.Fatalf("term months = %d, expected 36", sched.Summary.TermMonths)
	}
	if sched.Summary.FreeMonths != 3 {
		t.Errorf("free months = %d, expected 3", sched.Summary.FreeMonths)
	}
	if math.Abs(sched.Summary.TotalAbated-(-75000)) > 0.01 {
		t.Errorf("total abated = %.2f, expected -75000.00", sched.Summary.TotalAbated)
	}

	// Year 1 rent escalates once: 30 * 1.03 PSF.
	if got := sched.Rows[12].ContractualBaseRent; math.Abs(got-25750) > 0.01 {
		t.Errorf("month 12 contractual rent = %.2f, expected 25750.00", got)
	}

	if econ.RentNPV <= 0 || econ.RentNPV >= sched.Summary.TotalNet {
		t.Errorf("rent NPV = %.2f, expected positive and below total net %.2f",
			econ.RentNPV, sched.Summary.TotalNet)
	}
	// No operating, parking, or one-time items, so the two NPVs agree.
	if math.Abs(econ.CashflowNPV-econ.RentNPV) > 0.01 {
		t.Errorf("cashflow NPV = %.2f, expected to match rent NPV %.2f",
			econ.CashflowNPV, econ.RentNPV)
	}
	if econ.AnnualNPV <= 0 {
		t.Errorf("annual NPV = %.2f, expected positive", econ.AnnualNPV)
	}
	if econ.BlendedRatePSF <= 0 {
		t.Errorf("blended rate = %.4f, expected positive", econ.BlendedRatePSF)
	}
}

func TestRunTerminationFeeCurve(t *testing.T) {
	terms := sampleTerms()
	terms.TerminationFeeMonths = 4
	engine := NewEngine(nil)
	econ := engine.Run(terms)

	if econ.TerminationPenaltyMonths != 4 {
		t.Fatalf("penalty months = %d, expected configured 4", econ.TerminationPenaltyMonths)
	}
	if len(econ.TerminationFees) != 36 {
		t.Fatalf("fee curve length = %d, expected 36", len(econ.TerminationFees))
	}
	// No financed concessions: the fee is penalty months of the current rent.
	if got := econ.TerminationFees[12]; math.Abs(got-4*25750) > 0.01 {
		t.Errorf("fee at month 12 = %.2f, expected %.2f", got, 4*25750.0)
	}
}

func TestRunDefaultPenaltyMonths(t *testing.T) {
	engine := NewEngine(nil)
	econ := engine.Run(sampleTerms())
	if econ.TerminationPenaltyMonths != 6 {
		t.Errorf("penalty months = %d, expected default 6", econ.TerminationPenaltyMonths)
	}
}

func TestTerminationFeeAtMonthOverride(t *testing.T) {
	terms := sampleTerms()
	terms.TerminationFeeMonths = 4
	engine := NewEngine(nil)
	econ := engine.Run(terms)

	configured := engine.TerminationFeeAtMonth(econ, 12, 0)
	if math.Abs(configured-econ.TerminationFees[12]) > 0.01 {
		t.Errorf("fee without override = %.2f, expected curve value %.2f",
			configured, econ.TerminationFees[12])
	}
	overridden := engine.TerminationFeeAtMonth(econ, 12, 2)
	if math.Abs(overridden-2*25750) > 0.01 {
		t.Errorf("fee with override = %.2f, expected %.2f", overridden, 2*25750.0)
	}
	if got := engine.TerminationFeeAtMonth(econ, 99, 0); got != 0 {
		t.Errorf("fee past the term = %v, expected 0", got)
	}
}

func TestRunFinancedConcessionsRaiseFees(t *testing.T) {
	terms := sampleTerms()
	terms.Financing = cashflow.FinancingConfig{FinanceFreeRent: true, AnnualRatePercent: 6.0}
	engine := NewEngine(nil)
	econ := engine.Run(terms)

	if math.Abs(econ.Cashflow.FinancedPrincipal-75000) > 0.01 {
		t.Fatalf("financed principal = %.2f, expected 75000.00", econ.Cashflow.FinancedPrincipal)
	}
	// Early fees carry nearly the whole unamortized balance on top of rent.
	bare := float64(econ.TerminationPenaltyMonths) * econ.Schedule.ContractualAtMonth(1)
	if econ.TerminationFees[1] <= bare {
		t.Errorf("fee at month 1 = %.2f, expected above the rent-only fee %.2f",
			econ.TerminationFees[1], bare)
	}
	// The unamortized component shrinks toward zero over the term.
	lastExtra := econ.TerminationFees[35] -
		float64(econ.TerminationPenaltyMonths)*econ.Schedule.ContractualAtMonth(35)
	firstExtra := econ.TerminationFees[1] -
		float64(econ.TerminationPenaltyMonths)*econ.Schedule.ContractualAtMonth(1)
	if lastExtra >= firstExtra {
		t.Errorf("unamortized component grew over the term: first %.2f, last %.2f",
			firstExtra, lastExtra)
	}
}

func TestRunDegenerateTerms(t *testing.T) {
	engine := NewEngine(nil)
	econ := engine.Run(config.LeaseTerms{Name: "incomplete"})
	if len(econ.Schedule.Rows) != 0 {
		t.Errorf("expected an empty schedule for degenerate terms")
	}
	if econ.RentNPV != 0 || econ.CashflowNPV != 0 || len(econ.TerminationFees) != 0 {
		t.Errorf("expected zero economics, got %+v", econ)
	}
}

func TestEquivalencyInput(t *testing.T) {
	terms := sampleTerms()
	engine := NewEngine(nil)
	econ := engine.Run(terms)

	in := engine.EquivalencyInput(econ, terms)
	if in.RSF != 10000 || in.DiscountRatePercent != 8.0 {
		t.Errorf("equivalency input = %+v", in)
	}
	if len(in.Schedule.Rows) != 36 {
		t.Errorf("equivalency schedule rows = %d, expected 36", len(in.Schedule.Rows))
	}
}
