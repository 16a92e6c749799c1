package report

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/parish/backend/internal/domain/ledger"
	"github.com/parish/backend/internal/domain/shared"
)

// PeriodRequest carries the inclusive report window shared by the
// period-based reports. Dates bind from YYYY-MM-DD query values.
type PeriodRequest struct {
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02" time_utc:"1"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02" time_utc:"1"`
}

// LedgerRequest defines the query of the ledger report
type LedgerRequest struct {
	PeriodRequest
	Customization       string `form:"customization"`
	IncludeTransactions bool   `form:"include_transactions"`
}

// CashBookRequest defines the query of the cash book. Bank is a bank name
// or "All".
type CashBookRequest struct {
	PeriodRequest
	Bank          string `form:"bank" binding:"required"`
	Customization string `form:"customization"`
}

// NoticeBoardRequest defines the query of the notice board
type NoticeBoardRequest struct {
	PeriodRequest
	Head          string `form:"head" binding:"required"`
	Customization string `form:"customization"`
}

// AramanaRequest defines the query of the Aramana report
type AramanaRequest struct {
	PeriodRequest
	Customization string `form:"customization"`
}

// FamilyDuesRequest defines the query of the Kudishika statement
type FamilyDuesRequest struct {
	PeriodRequest
	FamilyID      string `form:"family_id" binding:"required"`
	Customization string `form:"customization"`
}

// PivotRequest defines the query of the fiscal-year pivot. Type defaults to
// INCOME; a TopN of zero keeps every head.
type PivotRequest struct {
	FiscalYear int    `form:"fiscal_year" binding:"required"`
	Type       string `form:"type"`
	TopN       int    `form:"top_n" binding:"min=0"`
}

// HeadTrendRequest defines the query of the single-head trend
type HeadTrendRequest struct {
	HeadID   string `form:"head_id" binding:"required"`
	Type     string `form:"type"`
	FromYear int    `form:"from_year" binding:"required"`
	ToYear   int    `form:"to_year" binding:"required"`
}

// IncomeExpenseRequest defines the query of the income against expense series
type IncomeExpenseRequest struct {
	FromYear int `form:"from_year" binding:"required"`
	ToYear   int `form:"to_year" binding:"required"`
}

// Earliest and latest fiscal years accepted by the pivot reports
const (
	MinFiscalYear = 1900
	MaxFiscalYear = 2999
)

func parseID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, shared.NewValidationError("%s must be a valid UUID", field)
	}
	return id, nil
}

// parseType reads a transaction type, INCOME when empty.
func parseType(value string) (ledger.TransactionType, error) {
	if strings.TrimSpace(value) == "" {
		return ledger.TransactionTypeIncome, nil
	}
	t, ok := ledger.ParseTransactionType(value)
	if !ok {
		return "", shared.NewValidationError("type must be INCOME or EXPENSE")
	}
	return t, nil
}

func fiscalYear(field string, year int) (ledger.FiscalYear, error) {
	if year < MinFiscalYear || year > MaxFiscalYear {
		return 0, shared.NewValidationError("%s must be between %d and %d", field, MinFiscalYear, MaxFiscalYear)
	}
	return ledger.FiscalYear(year), nil
}

// fiscalRange validates an inclusive span of fiscal years.
func fiscalRange(from, to, maxYears int) (ledger.FiscalYear, ledger.FiscalYear, error) {
	fromFY, err := fiscalYear("from_year", from)
	if err != nil {
		return 0, 0, err
	}
	toFY, err := fiscalYear("to_year", to)
	if err != nil {
		return 0, 0, err
	}
	if toFY < fromFY {
		return 0, 0, shared.NewValidationError("to_year must not be before from_year")
	}
	if int(toFY-fromFY)+1 > maxYears {
		return 0, 0, shared.NewValidationError("year range must not exceed %d fiscal years", maxYears)
	}
	return fromFY, toFY, nil
}
