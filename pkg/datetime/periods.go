// Package datetime provides date utilities for anchored lease-month
// arithmetic: month addition with end-of-month clamping, term derivation,
// and the whole-month differences used by discounting.
package datetime

import (
	"time"

	"github.com/leaseworks/lease-economics/pkg/constants"
)

const (
	// DateLayout is the format expected in config files and is also the output
	// date format.
	DateLayout = constants.DateLayout
)

// MustParseDate parses a date string using DateLayout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseDate(dateStr string) time.Time {
	t, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsLastDayOfMonth reports whether t falls on the last calendar day of its
// month.
func IsLastDayOfMonth(t time.Time) bool {
	return t.Day() == DaysInMonth(t.Year(), t.Month())
}

// AddMonthsClamped adds the given number of calendar months to t, clamping
// the day-of-month to the target month's last valid day. Unlike
// time.Time.AddDate, Jan 31 + 1 month yields Feb 28/29 rather than spilling
// into March.
func AddMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	total := int(month) - 1 + months
	year += total / constants.MonthsPerYear
	rem := total % constants.MonthsPerYear
	if rem < 0 {
		rem += constants.MonthsPerYear
		year--
	}
	target := time.Month(rem + 1)
	if dim := DaysInMonth(year, target); day > dim {
		day = dim
	}
	return time.Date(year, target, day, 0, 0, 0, 0, t.Location())
}

// MonthsBetween derives a term length in months from a start date and an
// inclusive end date via year/month difference. The partial trailing month
// counts as whole when the end day-of-month reaches the start day-of-month
// boundary or lands on its month's last calendar day. This deliberately
// rounds any such partial up to a whole month, so two different end dates can
// derive the same count; callers that must distinguish an exact term
// boundary from a nearby date compare against AddMonthsClamped directly
// rather than comparing derived counts. Returns 0 when end precedes start or
// either date is zero.
func MonthsBetween(start, end time.Time) int {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return 0
	}
	months := (end.Year()-start.Year())*constants.MonthsPerYear +
		int(end.Month()) - int(start.Month())
	if end.Day() >= start.Day() || IsLastDayOfMonth(end) {
		months++
	}
	if months < 0 {
		return 0
	}
	return months
}

// WholeMonthsSince counts whole calendar months elapsed from anchor to d:
// the raw calendar-month difference, minus one when d's day-of-month
// precedes the anchor's day-of-month.
func WholeMonthsSince(anchor, d time.Time) int {
	months := (d.Year()-anchor.Year())*constants.MonthsPerYear +
		int(d.Month()) - int(anchor.Month())
	if d.Day() < anchor.Day() {
		months--
	}
	return months
}

// Period is one anchored lease month.
type Period struct {
	Index int
	Start time.Time
	End   time.Time
}

// BuildPeriods builds the ordered list of anchored lease months. Month i
// starts at commencement + i calendar months (day clamped to the target
// month's last valid day) and ends the day before month i+1 starts, clamped
// to the expiration when one is supplied. A zero commencement or
// non-positive term yields an empty schedule, not an error.
func BuildPeriods(commencement time.Time, termMonths int, expiration time.Time) []Period {
	if commencement.IsZero() || termMonths <= 0 {
		return nil
	}
	periods := make([]Period, 0, termMonths)
	for i := 0; i < termMonths; i++ {
		start := AddMonthsClamped(commencement, i)
		if !expiration.IsZero() && start.After(expiration) {
			break
		}
		end := AddMonthsClamped(commencement, i+1).AddDate(0, 0, -1)
		if !expiration.IsZero() && end.After(expiration) {
			end = expiration
		}
		periods = append(periods, Period{Index: i, Start: start, End: end})
	}
	return periods
}
