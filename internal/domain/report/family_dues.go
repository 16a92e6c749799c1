package report

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/parish/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// DueEntry is a due raised against a family or a payment towards it.
// RunningBalance is the outstanding due after the entry.
type DueEntry struct {
	TransactionID  uuid.UUID       `json:"transaction_id"`
	Date           time.Time       `json:"date"`
	VoucherNumber  string          `json:"voucher_number"`
	Description    string          `json:"description,omitempty"`
	Due            decimal.Decimal `json:"due"`
	Payment        decimal.Decimal `json:"payment"`
	RunningBalance decimal.Decimal `json:"running_balance"`
}

func (e DueEntry) Legs() (decimal.Decimal, decimal.Decimal) {
	return e.Payment, e.Due
}

func (e DueEntry) WithLegs(income, expense decimal.Decimal) DueEntry {
	e.Payment, e.Due = income, expense
	return e
}

// FamilyDueHead is the Kudishika account of a family for one head
type FamilyDueHead struct {
	HeadID         uuid.UUID       `json:"head_id"`
	HeadName       string          `json:"head_name"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Dues           decimal.Decimal `json:"dues"`
	Payments       decimal.Decimal `json:"payments"`
	ClosingBalance decimal.Decimal `json:"closing_balance"` // OpeningBalance + Dues - Payments
	Entries        []DueEntry      `json:"entries"`
}

// FamilyDuesReport is the Kudishika statement of one family
type FamilyDuesReport struct {
	ParishID      uuid.UUID            `json:"parish_id"`
	Period        ledger.Period        `json:"period"`
	Customization ledger.Customization `json:"customization"`
	FamilyID      uuid.UUID            `json:"family_id"`
	FamilyNumber  string               `json:"family_number"`
	FamilyName    string               `json:"family_name"`
	Heads         []FamilyDueHead      `json:"heads"`
	TotalOpening  decimal.Decimal      `json:"total_opening"`
	TotalDues     decimal.Decimal      `json:"total_dues"`
	TotalPayments decimal.Decimal      `json:"total_payments"`
	TotalClosing  decimal.Decimal      `json:"total_closing"`
}

// BuildFamilyDueHead merges the period's dues (expense legs) and payments
// (income legs) in date order and carries the balance from opening.
// Customization hides entries but never changes the balances.
func BuildFamilyDueHead(head ledger.TransactionHead, opening decimal.Decimal, inPeriod []ledger.Transaction, c ledger.Customization) FamilyDueHead {
	sorted := make([]ledger.Transaction, len(inPeriod))
	copy(sorted, inPeriod)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].VoucherNumber < sorted[j].VoucherNumber
	})

	h := FamilyDueHead{
		HeadID:         head.ID,
		HeadName:       head.Name,
		OpeningBalance: opening,
		Dues:           decimal.Zero,
		Payments:       decimal.Zero,
	}
	running := opening
	entries := make([]DueEntry, 0, len(sorted))
	for _, tx := range sorted {
		running = running.Add(ledger.DueOrientation.Movement(tx))
		h.Dues = h.Dues.Add(tx.ExpenseAmount)
		h.Payments = h.Payments.Add(tx.IncomeAmount)
		entries = append(entries, DueEntry{
			TransactionID:  tx.ID,
			Date:           tx.Date,
			VoucherNumber:  tx.VoucherNumber,
			Description:    tx.Description,
			Due:            tx.ExpenseAmount,
			Payment:        tx.IncomeAmount,
			RunningBalance: running,
		})
	}
	h.ClosingBalance = opening.Add(h.Dues).Sub(h.Payments)
	h.Entries = ledger.Customize(c, entries)
	return h
}

// NewFamilyDuesReport totals the per-head accounts.
func NewFamilyDuesReport(parishID uuid.UUID, period ledger.Period, c ledger.Customization, family ledger.Family, heads []FamilyDueHead) *FamilyDuesReport {
	r := &FamilyDuesReport{
		ParishID:      parishID,
		Period:        period,
		Customization: c,
		FamilyID:      family.ID,
		FamilyNumber:  family.Number,
		FamilyName:    family.Name,
		Heads:         heads,
		TotalOpening:  decimal.Zero,
		TotalDues:     decimal.Zero,
		TotalPayments: decimal.Zero,
		TotalClosing:  decimal.Zero,
	}
	for _, h := range heads {
		r.TotalOpening = r.TotalOpening.Add(h.OpeningBalance)
		r.TotalDues = r.TotalDues.Add(h.Dues)
		r.TotalPayments = r.TotalPayments.Add(h.Payments)
		r.TotalClosing = r.TotalClosing.Add(h.ClosingBalance)
	}
	return r
}
