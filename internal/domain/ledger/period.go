package ledger

import (
	"time"

	"github.com/parish/backend/internal/domain/shared"
)

// DefaultMaxRangeDays is the widest report window accepted
const DefaultMaxRangeDays = 365

const day = 24 * time.Hour

// DateLayout is the wire format of report dates
const DateLayout = "2006-01-02"

// Period is an inclusive range of whole days.
type Period struct {
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NewPeriod validates a report window. Both bounds are required, the end may
// not precede the start, and the span may not exceed maxDays. A non-positive
// maxDays falls back to DefaultMaxRangeDays.
func NewPeriod(start, end *time.Time, maxDays int) (Period, error) {
	if start == nil || start.IsZero() {
		return Period{}, shared.NewValidationError("start_date is required")
	}
	if end == nil || end.IsZero() {
		return Period{}, shared.NewValidationError("end_date is required")
	}
	if maxDays <= 0 {
		maxDays = DefaultMaxRangeDays
	}

	p := Period{Start: Day(*start), End: Day(*end)}
	if p.End.Before(p.Start) {
		return Period{}, shared.NewValidationError("end_date must not be before start_date")
	}
	if p.End.Sub(p.Start) > time.Duration(maxDays)*day {
		return Period{}, shared.NewValidationError("date range must not exceed %d days", maxDays)
	}
	return p, nil
}

// Contains reports whether t falls on a day inside the period.
func (p Period) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(p.Start) && !d.After(p.End)
}

// EndExclusive is the first instant after the period.
func (p Period) EndExclusive() time.Time {
	return p.End.Add(day)
}

// Days returns the number of calendar days covered.
func (p Period) Days() int {
	return int(p.End.Sub(p.Start)/day) + 1
}

// String renders the period as start..end.
func (p Period) String() string {
	return p.Start.Format(DateLayout) + ".." + p.End.Format(DateLayout)
}
