// Package escalation resolves per-term-year rate tables under the three
// supported escalation models. The same resolver serves base rent and
// operating-expense rates; operating configs additionally carry a cap.
package escalation

import (
	"sort"
	"time"

	"github.com/leaseworks/lease-economics/pkg/constants"
	"github.com/leaseworks/lease-economics/pkg/datetime"
	"github.com/leaseworks/lease-economics/pkg/mathutil"
)

// Mode selects the escalation model.
type Mode string

const (
	// ModeNone applies no escalation; every term year keeps the base rate.
	ModeNone Mode = "none"
	// ModeFixedPercent compounds the base rate by a fixed percentage each
	// term year: rate(n) = base * (1+r)^n.
	ModeFixedPercent Mode = "fixed_percent"
	// ModeFixedAmount steps the base rate by a fixed dollar amount each term
	// year: rate(n) = base + amount*n.
	ModeFixedAmount Mode = "fixed_amount"
	// ModeCustom compounds within dated escalation periods, carrying the
	// compounded value forward across periods.
	ModeCustom Mode = "custom"
)

// Period is one entry of a custom escalation table. Periods are assumed
// non-overlapping; the resolver sorts them by start date.
type Period struct {
	Start      time.Time
	End        time.Time
	Percentage float64 // percent units, 3.0 = 3%
}

// Config describes how a rate escalates over the lease term.
type Config struct {
	Mode    Mode
	Rate    float64 // percent per year, fixed_percent mode
	Amount  float64 // dollars per year, fixed_amount mode
	Periods []Period
	// CapPercent, when positive, caps every percentage rate before
	// compounding. Used by operating-expense escalation.
	CapPercent float64
}

// effectiveRate applies the configured cap, if any, to a percentage rate.
func (c Config) effectiveRate(pct float64) float64 {
	if c.CapPercent > 0 {
		return mathutil.Min(pct, c.CapPercent)
	}
	return pct
}

// AnnualRates resolves the escalated rate for each term year, indexed by
// term-year offset from commencement. Month-level consumers index the
// result via floor(monthIndex/12). A non-positive term yields nil.
func AnnualRates(cfg Config, baseRate float64, termYears int, commencement time.Time) []float64 {
	if termYears <= 0 {
		return nil
	}
	rates := make([]float64, termYears)
	switch cfg.Mode {
	case ModeFixedPercent:
		factor := 1 + cfg.effectiveRate(cfg.Rate)/constants.PercentageMultiplier
		rate := baseRate
		for n := 0; n < termYears; n++ {
			rates[n] = rate
			rate *= factor
		}
	case ModeFixedAmount:
		for n := 0; n < termYears; n++ {
			rates[n] = baseRate + cfg.Amount*float64(n)
		}
	case ModeCustom:
		return customRates(cfg, baseRate, termYears, commencement)
	default:
		for n := 0; n < termYears; n++ {
			rates[n] = baseRate
		}
	}
	return rates
}

// customRates resolves the custom period-table model. Each term year's
// anniversary date is matched to the period containing it; within a period
// the rate compounds once per matched anniversary, and the compounded value
// carries forward as the next period's starting base. Anniversaries matching
// no period leave the carried value unchanged.
//
// The exponent convention: a period's rate applies as many times as
// anniversaries fall inside its window, never by calendar years since the
// period's start date. A period opening between two anniversaries therefore
// first compounds at the first anniversary inside it, not retroactively.
func customRates(cfg Config, baseRate float64, termYears int, commencement time.Time) []float64 {
	periods := make([]Period, len(cfg.Periods))
	copy(periods, cfg.Periods)
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Start.Before(periods[j].Start)
	})

	// Precompute the term-year -> period-index map once per build.
	yearPeriod := make([]int, termYears)
	for n := 0; n < termYears; n++ {
		yearPeriod[n] = -1
		anniversary := datetime.AddMonthsClamped(commencement, n*constants.MonthsPerYear)
		for p := range periods {
			if !anniversary.Before(periods[p].Start) && !anniversary.After(periods[p].End) {
				yearPeriod[n] = p
				break
			}
		}
	}

	rates := make([]float64, termYears)
	carried := baseRate
	for n := 0; n < termYears; n++ {
		if p := yearPeriod[n]; p >= 0 {
			carried *= 1 + cfg.effectiveRate(periods[p].Percentage)/constants.PercentageMultiplier
		}
		rates[n] = carried
	}
	return rates
}
