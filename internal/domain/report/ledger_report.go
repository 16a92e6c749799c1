package report

import (
	"sort"

	"github.com/google/uuid"
	"github.com/parish/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// HeadSummary is one line of the ledger report
type HeadSummary struct {
	HeadID   uuid.UUID       `json:"head_id"`
	HeadName string          `json:"head_name"`
	Income   decimal.Decimal `json:"income"`
	Expense  decimal.Decimal `json:"expense"`
	Balance  decimal.Decimal `json:"balance"` // Income - Expense
}

func (h HeadSummary) Legs() (decimal.Decimal, decimal.Decimal) {
	return h.Income, h.Expense
}

func (h HeadSummary) WithLegs(income, expense decimal.Decimal) HeadSummary {
	h.Income, h.Expense = income, expense
	h.Balance = income.Sub(expense)
	return h
}

// LedgerReport groups the entries of a period by transaction head
type LedgerReport struct {
	ParishID      uuid.UUID            `json:"parish_id"`
	Period        ledger.Period        `json:"period"`
	Customization ledger.Customization `json:"customization"`
	Heads         []HeadSummary        `json:"heads"`
	TotalIncome   decimal.Decimal      `json:"total_income"`
	TotalExpense  decimal.Decimal      `json:"total_expense"`
	Balance       decimal.Decimal      `json:"balance"`
	Transactions  []TransactionRow     `json:"transactions,omitempty"`
}

// BuildLedger groups txs by head name. txs must already be restricted to
// the period.
func BuildLedger(parishID uuid.UUID, period ledger.Period, txs []ledger.Transaction, c ledger.Customization, includeTransactions bool) *LedgerReport {
	byName := make(map[string]*HeadSummary)
	for _, tx := range txs {
		h, ok := byName[tx.HeadName]
		if !ok {
			h = &HeadSummary{HeadID: tx.HeadID, HeadName: tx.HeadName}
			byName[tx.HeadName] = h
		}
		h.Income = h.Income.Add(tx.IncomeAmount)
		h.Expense = h.Expense.Add(tx.ExpenseAmount)
	}

	heads := make([]HeadSummary, 0, len(byName))
	for _, h := range byName {
		heads = append(heads, h.WithLegs(h.Income, h.Expense))
	}
	sort.Slice(heads, func(i, j int) bool { return heads[i].HeadName < heads[j].HeadName })
	heads = ledger.Customize(c, heads)

	r := &LedgerReport{
		ParishID:      parishID,
		Period:        period,
		Customization: c,
		Heads:         heads,
		TotalIncome:   decimal.Zero,
		TotalExpense:  decimal.Zero,
	}
	for _, h := range heads {
		r.TotalIncome = r.TotalIncome.Add(h.Income)
		r.TotalExpense = r.TotalExpense.Add(h.Expense)
	}
	r.Balance = r.TotalIncome.Sub(r.TotalExpense)

	if includeTransactions {
		r.Transactions = Statement(txs, c)
	}
	return r
}
