package report

import (
	"github.com/google/uuid"
	"github.com/parish/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// AramanaLine is the diocesan share computed for one head.
// ToBePaid accrues from income, Paid from remittances booked as expense.
type AramanaLine struct {
	HeadID     uuid.UUID       `json:"head_id"`
	HeadName   string          `json:"head_name"`
	Percentage decimal.Decimal `json:"percentage"`
	Income     decimal.Decimal `json:"income"`
	Expense    decimal.Decimal `json:"expense"`
	ToBePaid   decimal.Decimal `json:"to_be_paid"` // Income × pct / 100
	Paid       decimal.Decimal `json:"paid"`       // Expense × pct / 100
	Balance    decimal.Decimal `json:"balance"`    // ToBePaid - Paid
}

// AramanaReport lists the Aramana heads of a parish for a period
type AramanaReport struct {
	ParishID      uuid.UUID            `json:"parish_id"`
	Period        ledger.Period        `json:"period"`
	Customization ledger.Customization `json:"customization"`
	Heads         []AramanaLine        `json:"heads"`
	TotalToBePaid decimal.Decimal      `json:"total_to_be_paid"`
	TotalPaid     decimal.Decimal      `json:"total_paid"`
	TotalBalance  decimal.Decimal      `json:"total_balance"`
}

func (l AramanaLine) Legs() (decimal.Decimal, decimal.Decimal) {
	return l.Income, l.Expense
}

// WithLegs recomputes the shares from the new legs at the line's percentage.
func (l AramanaLine) WithLegs(income, expense decimal.Decimal) AramanaLine {
	l.Income, l.Expense = income, expense
	l.ToBePaid = percentOf(income, l.Percentage)
	l.Paid = percentOf(expense, l.Percentage)
	l.Balance = l.ToBePaid.Sub(l.Paid)
	return l
}

// ComputeAramana applies the head's percentage to its period totals.
func ComputeAramana(head ledger.TransactionHead, income, expense decimal.Decimal) AramanaLine {
	pct := head.AramanaRate()
	toBePaid := percentOf(income, pct)
	paid := percentOf(expense, pct)
	return AramanaLine{
		HeadID:     head.ID,
		HeadName:   head.Name,
		Percentage: pct,
		Income:     income,
		Expense:    expense,
		ToBePaid:   toBePaid,
		Paid:       paid,
		Balance:    toBePaid.Sub(paid),
	}
}

// BuildAramana computes a line per head, in the order given, from the
// period's entries of those heads. Totals cover the lines left after c.
func BuildAramana(parishID uuid.UUID, period ledger.Period, heads []ledger.TransactionHead, txs []ledger.Transaction, c ledger.Customization) *AramanaReport {
	byHead := make(map[uuid.UUID][]ledger.Transaction, len(heads))
	for _, tx := range txs {
		byHead[tx.HeadID] = append(byHead[tx.HeadID], tx)
	}

	lines := make([]AramanaLine, 0, len(heads))
	for _, h := range heads {
		income, expense := SumLegs(byHead[h.ID])
		lines = append(lines, ComputeAramana(h, income, expense))
	}

	r := &AramanaReport{
		ParishID:      parishID,
		Period:        period,
		Customization: c,
		Heads:         ledger.Customize(c, lines),
		TotalToBePaid: decimal.Zero,
		TotalPaid:     decimal.Zero,
		TotalBalance:  decimal.Zero,
	}
	for _, line := range r.Heads {
		r.TotalToBePaid = r.TotalToBePaid.Add(line.ToBePaid)
		r.TotalPaid = r.TotalPaid.Add(line.Paid)
		r.TotalBalance = r.TotalBalance.Add(line.Balance)
	}
	return r
}
