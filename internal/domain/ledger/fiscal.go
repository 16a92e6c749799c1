package ledger

import (
	"fmt"
	"time"
)

// FiscalYearStartMonth is the first month of the parish fiscal year.
const FiscalYearStartMonth = time.April

// MonthsInYear is the number of columns of a fiscal-year series
const MonthsInYear = 12

// FiscalYear is identified by the calendar year it starts in:
// FiscalYear(2024) runs from 2024-04-01 to 2025-03-31.
type FiscalYear int

// FiscalYearOf returns the fiscal year containing t.
func FiscalYearOf(t time.Time) FiscalYear {
	if t.Month() < FiscalYearStartMonth {
		return FiscalYear(t.Year() - 1)
	}
	return FiscalYear(t.Year())
}

// Start returns the first day of the fiscal year.
func (fy FiscalYear) Start() time.Time {
	return time.Date(int(fy), FiscalYearStartMonth, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the last day of the fiscal year.
func (fy FiscalYear) End() time.Time {
	return fy.Start().AddDate(1, 0, -1)
}

// Period returns the fiscal year as a report period.
func (fy FiscalYear) Period() Period {
	return Period{Start: fy.Start(), End: fy.End()}
}

// Label renders the year as "2024-25".
func (fy FiscalYear) Label() string {
	return fmt.Sprintf("%d-%02d", int(fy), (int(fy)+1)%100)
}

// MonthIndex maps a calendar month to its fiscal column: April is 0, March is 11.
func MonthIndex(m time.Month) int {
	return (int(m) - int(FiscalYearStartMonth) + MonthsInYear) % MonthsInYear
}

// MonthAt is the inverse of MonthIndex.
func MonthAt(index int) time.Month {
	return time.Month((int(FiscalYearStartMonth)-1+index)%MonthsInYear + 1)
}
