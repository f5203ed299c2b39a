// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/leaseworks/lease-economics/pkg/abatement"
	"github.com/leaseworks/lease-economics/pkg/datetime"
	"github.com/leaseworks/lease-economics/pkg/escalation"
	"github.com/leaseworks/lease-economics/pkg/schedule"
)

// LeaseFixture describes a simple lease for tests.
type LeaseFixture struct {
	Commencement      string
	TermMonths        int
	RSF               float64
	BaseRatePSF       float64
	EscalationPercent float64
	FreeMonths        int
	Timing            schedule.PaymentTiming
}

// BuildSchedule builds a schedule from the fixture. Zero-value fields fall
// back to a 36-month, 10,000 RSF, $30 PSF lease commencing 2024-01-15.
func BuildSchedule(f LeaseFixture) schedule.Schedule {
	if f.Commencement == "" {
		f.Commencement = "2024-01-15"
	}
	if f.TermMonths == 0 {
		f.TermMonths = 36
	}
	if f.RSF == 0 {
		f.RSF = 10000
	}
	if f.BaseRatePSF == 0 {
		f.BaseRatePSF = 30
	}

	esc := escalation.Config{Mode: escalation.ModeNone}
	if f.EscalationPercent != 0 {
		esc = escalation.Config{Mode: escalation.ModeFixedPercent, Rate: f.EscalationPercent}
	}

	return schedule.Build(schedule.Input{
		Commencement: datetime.MustParseDate(f.Commencement),
		TermMonths:   f.TermMonths,
		RSF:          f.RSF,
		BaseRatePSF:  f.BaseRatePSF,
		Escalation:   esc,
		Abatement:    abatement.Config{MonthsAtCommencement: f.FreeMonths},
		Timing:       f.Timing,
	})
}

// FreeMonthCount counts flagged free months in a schedule.
func FreeMonthCount(s schedule.Schedule) int {
	count := 0
	for _, row := range s.Rows {
		if row.Free {
			count++
		}
	}
	return count
}
