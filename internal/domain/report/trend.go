package report

import (
	"sort"

	"github.com/google/uuid"
	"github.com/parish/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// YearSeries is the monthly series of one fiscal year
type YearSeries struct {
	FiscalYear int             `json:"fiscal_year"`
	Label      string          `json:"label"`
	Months     MonthlyAmounts  `json:"months"`
	Total      decimal.Decimal `json:"total"`
}

// HeadTrendReport compares one head across fiscal years
type HeadTrendReport struct {
	ParishID uuid.UUID              `json:"parish_id"`
	HeadID   uuid.UUID              `json:"head_id"`
	HeadName string                 `json:"head_name"`
	Type     ledger.TransactionType `json:"type"`
	Years    []YearSeries           `json:"years"`
}

// IncomeExpenseYear pairs the income and expense series of a fiscal year
type IncomeExpenseYear struct {
	FiscalYear   int             `json:"fiscal_year"`
	Label        string          `json:"label"`
	Income       MonthlyAmounts  `json:"income"`
	Expense      MonthlyAmounts  `json:"expense"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Net          decimal.Decimal `json:"net"`
}

// IncomeExpenseReport is the monthly income against expense, per fiscal year
type IncomeExpenseReport struct {
	ParishID uuid.UUID           `json:"parish_id"`
	FromYear int                 `json:"from_year"`
	ToYear   int                 `json:"to_year"`
	Years    []IncomeExpenseYear `json:"years"`
}

// foldByFiscalYear sums monthly totals into fiscal-year series.
func foldByFiscalYear(totals []ledger.MonthlyTotal) map[ledger.FiscalYear]*MonthlyAmounts {
	out := make(map[ledger.FiscalYear]*MonthlyAmounts)
	for _, t := range totals {
		fy := ledger.FiscalYearOf(monthStart(t))
		series, ok := out[fy]
		if !ok {
			series = &MonthlyAmounts{}
			out[fy] = series
		}
		idx := ledger.MonthIndex(t.Month)
		series[idx] = series[idx].Add(t.Amount)
	}
	return out
}

// BuildHeadTrend emits one series per fiscal year from..to, zero-filled
// where the head has no entries.
func BuildHeadTrend(parishID uuid.UUID, head ledger.TransactionHead, txType ledger.TransactionType, from, to ledger.FiscalYear, totals []ledger.MonthlyTotal) *HeadTrendReport {
	byYear := foldByFiscalYear(totals)
	r := &HeadTrendReport{
		ParishID: parishID,
		HeadID:   head.ID,
		HeadName: head.Name,
		Type:     txType,
		Years:    make([]YearSeries, 0, int(to-from)+1),
	}
	for fy := from; fy <= to; fy++ {
		var months MonthlyAmounts
		if s, ok := byYear[fy]; ok {
			months = *s
		}
		r.Years = append(r.Years, YearSeries{
			FiscalYear: int(fy),
			Label:      fy.Label(),
			Months:     months,
			Total:      months.Total(),
		})
	}
	return r
}

// BuildIncomeExpense left-joins expense onto income by fiscal year. Only
// years with income produce a row; a year without expense shows zeros.
func BuildIncomeExpense(parishID uuid.UUID, from, to ledger.FiscalYear, income, expense []ledger.MonthlyTotal) *IncomeExpenseReport {
	incomeByYear := foldByFiscalYear(income)
	expenseByYear := foldByFiscalYear(expense)

	years := make([]ledger.FiscalYear, 0, len(incomeByYear))
	for fy := range incomeByYear {
		if fy >= from && fy <= to {
			years = append(years, fy)
		}
	}
	sort.Slice(years, func(i, j int) bool { return years[i] < years[j] })

	r := &IncomeExpenseReport{
		ParishID: parishID,
		FromYear: int(from),
		ToYear:   int(to),
		Years:    make([]IncomeExpenseYear, 0, len(years)),
	}
	for _, fy := range years {
		row := IncomeExpenseYear{
			FiscalYear: int(fy),
			Label:      fy.Label(),
			Income:     *incomeByYear[fy],
		}
		if e, ok := expenseByYear[fy]; ok {
			row.Expense = *e
		}
		row.TotalIncome = row.Income.Total()
		row.TotalExpense = row.Expense.Total()
		row.Net = row.TotalIncome.Sub(row.TotalExpense)
		r.Years = append(r.Years, row)
	}
	return r
}
