// Package abatement maps free-rent concessions onto lease months. Each
// abatement period flags the earliest eligible months inside its date
// window; a month already flagged by an earlier period is never flagged
// twice.
package abatement

import (
	"time"

	"github.com/leaseworks/lease-economics/pkg/datetime"
)

// AppliesTo selects what a free month waives.
type AppliesTo string

const (
	// BaseOnly waives contractual base rent only.
	BaseOnly AppliesTo = "base_only"
	// BasePlusNNN waives base rent plus NNN operating pass-through.
	BasePlusNNN AppliesTo = "base_plus_nnn"
)

// Period is one abatement window with a free-month budget.
type Period struct {
	Start      time.Time
	End        time.Time
	FreeMonths int
	AppliesTo  AppliesTo
}

// Config describes the free-rent concession. Either MonthsAtCommencement is
// set (shorthand for a single window anchored at lease start) or Periods
// lists explicit windows.
type Config struct {
	MonthsAtCommencement int
	Periods              []Period
	AppliesTo            AppliesTo
}

// Normalize expands the at-commencement shorthand into an explicit period
// anchored at lease start. Explicit periods pass through unchanged.
func Normalize(cfg Config, commencement time.Time) []Period {
	if len(cfg.Periods) > 0 {
		return cfg.Periods
	}
	if cfg.MonthsAtCommencement <= 0 || commencement.IsZero() {
		return nil
	}
	appliesTo := cfg.AppliesTo
	if appliesTo == "" {
		appliesTo = BaseOnly
	}
	end := datetime.AddMonthsClamped(commencement, cfg.MonthsAtCommencement).AddDate(0, 0, -1)
	return []Period{{
		Start:      commencement,
		End:        end,
		FreeMonths: cfg.MonthsAtCommencement,
		AppliesTo:  appliesTo,
	}}
}

// FreeMonthFlags walks the ordered lease months for each abatement period
// and flags the earliest months overlapping the period's window as free,
// decrementing the period's remaining budget. Months flagged by an earlier
// period are skipped.
func FreeMonthFlags(periods []Period, months []datetime.Period) []bool {
	flags := make([]bool, len(months))
	for _, p := range periods {
		remaining := p.FreeMonths
		for i, m := range months {
			if remaining <= 0 {
				break
			}
			if flags[i] {
				continue
			}
			if overlaps(m, p.Start, p.End) {
				flags[i] = true
				remaining--
			}
		}
	}
	return flags
}

func overlaps(m datetime.Period, start, end time.Time) bool {
	return !m.Start.After(end) && !m.End.Before(start)
}
