package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/leaseworks/lease-economics/pkg/datetime"
)

// Severity classifies a normalization issue.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Issue is one finding from date/term reconciliation. Only error-severity
// issues block computation, and only when the caller opts in via
// BlockingError.
type Issue struct {
	Severity Severity
	Field    string
	Message  string
}

// BlockingError returns an error when any issue carries error severity. This
// is the opt-in assertion callers run before trusting normalized input;
// info and warn issues never halt computation.
func BlockingError(issues []Issue) error {
	var blocking []string
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			blocking = append(blocking, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
		}
	}
	if len(blocking) == 0 {
		return nil
	}
	return fmt.Errorf("blocking lease-term issues: %s", strings.Join(blocking, "; "))
}

// normalizeTermDates reconciles the explicit term length with the expiration
// date. When both are present the expiration must land exactly on the term
// boundary (commencement + termMonths calendar months, minus one day); any
// other expiration is a conflict, the explicit term length is authoritative,
// and the expiration is recomputed from it with a warning. An expiration that
// merely rounds to the same month count still conflicts; accepting it would
// silently truncate or stretch the final lease month. With only an expiration
// the term derives via year/month difference with the month-end rule. Missing
// commencement or a non-positive derived term produce error-severity issues
// and a zero term, never a Go error.
func normalizeTermDates(commencement, expiration time.Time, termMonths int) (int, time.Time, []Issue) {
	var issues []Issue

	if commencement.IsZero() {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Field:    "commencementDate",
			Message:  "commencement date is required",
		})
		return 0, time.Time{}, issues
	}

	switch {
	case termMonths > 0 && !expiration.IsZero():
		recomputed := datetime.AddMonthsClamped(commencement, termMonths).AddDate(0, 0, -1)
		if expiration.Equal(recomputed) {
			return termMonths, expiration, issues
		}
		issues = append(issues, Issue{
			Severity: SeverityWarn,
			Field:    "expirationDate",
			Message: fmt.Sprintf("expiration %s does not fall on the %d-month term boundary; recomputed expiration to %s",
				expiration.Format(DateLayout), termMonths, recomputed.Format(DateLayout)),
		})
		return termMonths, recomputed, issues
	case termMonths > 0:
		expiration = datetime.AddMonthsClamped(commencement, termMonths).AddDate(0, 0, -1)
		return termMonths, expiration, issues
	case !expiration.IsZero():
		if !expiration.After(commencement) {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Field:    "expirationDate",
				Message: fmt.Sprintf("expiration %s is not after commencement %s",
					expiration.Format(DateLayout), commencement.Format(DateLayout)),
			})
			return 0, expiration, issues
		}
		derived := datetime.MonthsBetween(commencement, expiration)
		issues = append(issues, Issue{
			Severity: SeverityInfo,
			Field:    "termMonths",
			Message:  fmt.Sprintf("derived %d-month term from expiration date", derived),
		})
		return derived, expiration, issues
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Field:    "termMonths",
			Message:  "either termMonths or expirationDate is required",
		})
		return 0, time.Time{}, issues
	}
}
