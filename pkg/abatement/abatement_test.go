package abatement

import (
	"testing"
	"time"

	"github.com/leaseworks/lease-economics/pkg/datetime"
)

func leaseMonths(t *testing.T, commencement string, term int) []datetime.Period {
	t.Helper()
	return datetime.BuildPeriods(datetime.MustParseDate(commencement), term, time.Time{})
}

func countFlags(flags []bool) int {
	count := 0
	for _, f := range flags {
		if f {
			count++
		}
	}
	return count
}

func TestNormalizeAtCommencementShorthand(t *testing.T) {
	commencement := datetime.MustParseDate("2024-01-15")
	periods := Normalize(Config{MonthsAtCommencement: 3}, commencement)

	if len(periods) != 1 {
		t.Fatalf("Normalize() returned %d periods, expected 1", len(periods))
	}
	p := periods[0]
	if !p.Start.Equal(commencement) {
		t.Errorf("period starts %s, expected lease start", p.Start.Format(datetime.DateLayout))
	}
	if p.FreeMonths != 3 {
		t.Errorf("period free months = %d, expected 3", p.FreeMonths)
	}
	if p.AppliesTo != BaseOnly {
		t.Errorf("period applies to %q, expected default %q", p.AppliesTo, BaseOnly)
	}
}

func TestNormalizeExplicitPeriodsPassThrough(t *testing.T) {
	commencement := datetime.MustParseDate("2024-01-15")
	explicit := []Period{{
		Start:      datetime.MustParseDate("2024-06-01"),
		End:        datetime.MustParseDate("2024-12-31"),
		FreeMonths: 2,
		AppliesTo:  BasePlusNNN,
	}}
	periods := Normalize(Config{MonthsAtCommencement: 5, Periods: explicit}, commencement)
	if len(periods) != 1 || periods[0].FreeMonths != 2 {
		t.Errorf("explicit periods should win over shorthand, got %+v", periods)
	}
}

func TestFreeMonthFlagsEarliestEligible(t *testing.T) {
	months := leaseMonths(t, "2024-01-15", 12)
	periods := []Period{{
		Start:      datetime.MustParseDate("2024-01-15"),
		End:        datetime.MustParseDate("2025-01-14"),
		FreeMonths: 3,
		AppliesTo:  BaseOnly,
	}}

	flags := FreeMonthFlags(periods, months)
	if got := countFlags(flags); got != 3 {
		t.Fatalf("flagged %d months, expected 3", got)
	}
	for i := 0; i < 3; i++ {
		if !flags[i] {
			t.Errorf("month %d not flagged, expected the earliest months free", i)
		}
	}
}

func TestFreeMonthFlagsNoDoubleBooking(t *testing.T) {
	months := leaseMonths(t, "2024-01-15", 12)
	periods := []Period{
		{
			Start:      datetime.MustParseDate("2024-01-15"),
			End:        datetime.MustParseDate("2024-04-14"),
			FreeMonths: 2,
		},
		{
			// Overlaps the first window; must skip already-flagged months.
			Start:      datetime.MustParseDate("2024-01-15"),
			End:        datetime.MustParseDate("2024-06-14"),
			FreeMonths: 2,
		},
	}

	flags := FreeMonthFlags(periods, months)
	if got := countFlags(flags); got != 4 {
		t.Fatalf("flagged %d months, expected 4", got)
	}
	for i := 0; i < 4; i++ {
		if !flags[i] {
			t.Errorf("month %d not flagged", i)
		}
	}
}

func TestFreeMonthFlagsBudgetExceedsWindow(t *testing.T) {
	months := leaseMonths(t, "2024-01-15", 12)
	periods := []Period{{
		// Two-month window but a five-month budget; only overlapping months
		// can be flagged.
		Start:      datetime.MustParseDate("2024-01-15"),
		End:        datetime.MustParseDate("2024-03-14"),
		FreeMonths: 5,
	}}

	flags := FreeMonthFlags(periods, months)
	if got := countFlags(flags); got != 2 {
		t.Errorf("flagged %d months, expected 2", got)
	}
}

func TestFreeMonthFlagsTotalNeverExceedsDeclared(t *testing.T) {
	months := leaseMonths(t, "2024-01-15", 24)
	periods := []Period{
		{Start: datetime.MustParseDate("2024-01-15"), End: datetime.MustParseDate("2026-01-14"), FreeMonths: 3},
		{Start: datetime.MustParseDate("2024-06-15"), End: datetime.MustParseDate("2026-01-14"), FreeMonths: 2},
	}

	flags := FreeMonthFlags(periods, months)
	declared := 0
	for _, p := range periods {
		declared += p.FreeMonths
	}
	if got := countFlags(flags); got > declared {
		t.Errorf("flagged %d months, declared total is %d", got, declared)
	}
}

func TestNormalizeDegenerateConfig(t *testing.T) {
	commencement := datetime.MustParseDate("2024-01-15")
	if got := Normalize(Config{}, commencement); got != nil {
		t.Errorf("Normalize with empty config = %v, expected nil", got)
	}
	if got := Normalize(Config{MonthsAtCommencement: 3}, time.Time{}); got != nil {
		t.Errorf("Normalize with zero commencement = %v, expected nil", got)
	}
}
