package report

import (
	"github.com/google/uuid"
	"github.com/parish/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// AllBanks requests the cash book of every bank of the parish
const AllBanks = "All"

// CashBookEntry is the cash book of a single bank
type CashBookEntry struct {
	BankID         uuid.UUID        `json:"bank_id"`
	BankName       string           `json:"bank_name"`
	OpeningBalance decimal.Decimal  `json:"opening_balance"`
	ClosingBalance decimal.Decimal  `json:"closing_balance"`
	TotalIncome    decimal.Decimal  `json:"total_income"`
	TotalExpense   decimal.Decimal  `json:"total_expense"`
	Statements     []TransactionRow `json:"statements"`
}

// CashBookReport lists one entry per requested bank, ordered by bank name
type CashBookReport struct {
	ParishID      uuid.UUID            `json:"parish_id"`
	Period        ledger.Period        `json:"period"`
	Bank          string               `json:"bank"`
	Customization ledger.Customization `json:"customization"`
	Banks         []CashBookEntry      `json:"banks"`
	TotalOpening  decimal.Decimal      `json:"total_opening"`
	TotalClosing  decimal.Decimal      `json:"total_closing"`
}

// BuildCashBookEntry assembles a bank entry from balances computed by the
// balance calculator and the bank's entries within the period. Totals are
// taken before customization so that opening + income - expense = closing.
func BuildCashBookEntry(bank ledger.Bank, opening, closing decimal.Decimal, inPeriod []ledger.Transaction, c ledger.Customization) CashBookEntry {
	income, expense := SumLegs(inPeriod)
	return CashBookEntry{
		BankID:         bank.ID,
		BankName:       bank.Name,
		OpeningBalance: opening,
		ClosingBalance: closing,
		TotalIncome:    income,
		TotalExpense:   expense,
		Statements:     Statement(inPeriod, c),
	}
}

// NewCashBookReport totals the bank entries.
func NewCashBookReport(parishID uuid.UUID, period ledger.Period, bank string, c ledger.Customization, entries []CashBookEntry) *CashBookReport {
	r := &CashBookReport{
		ParishID:      parishID,
		Period:        period,
		Bank:          bank,
		Customization: c,
		Banks:         entries,
		TotalOpening:  decimal.Zero,
		TotalClosing:  decimal.Zero,
	}
	for _, e := range entries {
		r.TotalOpening = r.TotalOpening.Add(e.OpeningBalance)
		r.TotalClosing = r.TotalClosing.Add(e.ClosingBalance)
	}
	return r
}
