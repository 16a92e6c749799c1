// Package report holds the financial report read-models of a parish and the
// pure functions that fold ledger entries into them.
package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/parish/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// Report type names, used for cache keys, spans and metrics
const (
	TypeLedger        = "ledger"
	TypeCashBook      = "cash_book"
	TypeNoticeBoard   = "notice_board"
	TypeAramana       = "aramana"
	TypeFamilyDues    = "family_dues"
	TypePivot         = "pivot"
	TypeHeadTrend     = "head_trend"
	TypeIncomeExpense = "income_expense"
)

// TransactionRow is a ledger entry as shown on a statement
type TransactionRow struct {
	ID            uuid.UUID              `json:"id"`
	Date          time.Time              `json:"date"`
	VoucherNumber string                 `json:"voucher_number"`
	Type          ledger.TransactionType `json:"type"`
	HeadID        uuid.UUID              `json:"head_id"`
	HeadName      string                 `json:"head_name"`
	BankName      string                 `json:"bank_name,omitempty"`
	FamilyID      *uuid.UUID             `json:"family_id,omitempty"`
	Description   string                 `json:"description,omitempty"`
	Income        decimal.Decimal        `json:"income"`
	Expense       decimal.Decimal        `json:"expense"`
}

// NewTransactionRow projects a ledger entry onto a statement row.
func NewTransactionRow(tx ledger.Transaction) TransactionRow {
	return TransactionRow{
		ID:            tx.ID,
		Date:          tx.Date,
		VoucherNumber: tx.VoucherNumber,
		Type:          tx.Type,
		HeadID:        tx.HeadID,
		HeadName:      tx.HeadName,
		BankName:      tx.BankName,
		FamilyID:      tx.FamilyID,
		Description:   tx.Description,
		Income:        tx.IncomeAmount,
		Expense:       tx.ExpenseAmount,
	}
}

func (r TransactionRow) Legs() (decimal.Decimal, decimal.Decimal) {
	return r.Income, r.Expense
}

func (r TransactionRow) WithLegs(income, expense decimal.Decimal) TransactionRow {
	r.Income, r.Expense = income, expense
	return r
}

// Statement projects txs onto rows in order and applies the customization.
func Statement(txs []ledger.Transaction, c ledger.Customization) []TransactionRow {
	rows := make([]TransactionRow, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, NewTransactionRow(tx))
	}
	return ledger.Customize(c, rows)
}

// SumLegs totals both legs of txs.
func SumLegs(txs []ledger.Transaction) (income, expense decimal.Decimal) {
	income, expense = decimal.Zero, decimal.Zero
	for _, tx := range txs {
		income = income.Add(tx.IncomeAmount)
		expense = expense.Add(tx.ExpenseAmount)
	}
	return income, expense
}

var hundred = decimal.NewFromInt(100)

// percentOf returns amount × pct / 100.
func percentOf(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(hundred)
}
