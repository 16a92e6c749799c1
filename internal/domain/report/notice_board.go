package report

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/parish/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// FamilyRef identifies a family on a roster
type FamilyRef struct {
	FamilyID     uuid.UUID `json:"family_id"`
	FamilyNumber string    `json:"family_number"`
	FamilyName   string    `json:"family_name"`
	HeadOfFamily string    `json:"head_of_family"`
	UnitName     string    `json:"unit_name"`
}

func newFamilyRef(f ledger.Family) FamilyRef {
	return FamilyRef{
		FamilyID:     f.ID,
		FamilyNumber: f.Number,
		FamilyName:   f.Name,
		HeadOfFamily: f.HeadName,
		UnitName:     f.UnitName,
	}
}

// PaidFamily is a family that contributed to the head during the period.
// LastPaidDate and VoucherNumber describe the latest payment.
type PaidFamily struct {
	FamilyRef
	Amount        decimal.Decimal `json:"amount"`
	LastPaidDate  time.Time       `json:"last_paid_date"`
	VoucherNumber string          `json:"voucher_number"`
	Payments      int             `json:"payments"`
}

// NoticeBoardReport partitions the live families of a parish by whether
// they paid towards one head
type NoticeBoardReport struct {
	ParishID       uuid.UUID            `json:"parish_id"`
	Period         ledger.Period        `json:"period"`
	Customization  ledger.Customization `json:"customization"`
	HeadID         uuid.UUID            `json:"head_id"`
	HeadName       string               `json:"head_name"`
	Paid           []PaidFamily         `json:"paid"`
	Unpaid         []FamilyRef          `json:"unpaid"`
	PaidCount      int                  `json:"paid_count"`
	UnpaidCount    int                  `json:"unpaid_count"`
	TotalCollected decimal.Decimal      `json:"total_collected"`
}

// FamilyCollection holds a family's entries against the head for the period
type FamilyCollection struct {
	Family   ledger.Family
	Payments []ledger.Transaction
}

// Collected returns the income total and the latest entry carrying income.
func (fc FamilyCollection) Collected() (decimal.Decimal, *ledger.Transaction) {
	total := decimal.Zero
	var latest *ledger.Transaction
	for i := range fc.Payments {
		tx := &fc.Payments[i]
		if !tx.IncomeAmount.IsPositive() {
			continue
		}
		total = total.Add(tx.IncomeAmount)
		if latest == nil || !tx.Date.Before(latest.Date) {
			latest = tx
		}
	}
	return total, latest
}

// project keeps only the legs c lets through. Under EXPENSE_ONLY no income
// is left, so the family counts as unpaid.
func (fc FamilyCollection) project(c ledger.Customization) FamilyCollection {
	payments := make([]ledger.Transaction, 0, len(fc.Payments))
	for _, tx := range fc.Payments {
		income, expense, keep := c.Project(tx.IncomeAmount, tx.ExpenseAmount)
		if !keep {
			continue
		}
		tx.IncomeAmount, tx.ExpenseAmount = income, expense
		payments = append(payments, tx)
	}
	return FamilyCollection{Family: fc.Family, Payments: payments}
}

// BuildNoticeBoard places every collection on exactly one roster. Any
// positive income amount left after c counts as paid, whatever the entry's
// type. Both rosters are ordered by family number.
func BuildNoticeBoard(parishID uuid.UUID, period ledger.Period, head ledger.TransactionHead, collections []FamilyCollection, c ledger.Customization) *NoticeBoardReport {
	r := &NoticeBoardReport{
		ParishID:       parishID,
		Period:         period,
		Customization:  c,
		HeadID:         head.ID,
		HeadName:       head.Name,
		Paid:           []PaidFamily{},
		Unpaid:         []FamilyRef{},
		TotalCollected: decimal.Zero,
	}

	for _, fc := range collections {
		fc = fc.project(c)
		amount, latest := fc.Collected()
		if !amount.IsPositive() {
			r.Unpaid = append(r.Unpaid, newFamilyRef(fc.Family))
			continue
		}
		count := 0
		for _, tx := range fc.Payments {
			if tx.IncomeAmount.IsPositive() {
				count++
			}
		}
		r.Paid = append(r.Paid, PaidFamily{
			FamilyRef:     newFamilyRef(fc.Family),
			Amount:        amount,
			LastPaidDate:  latest.Date,
			VoucherNumber: latest.VoucherNumber,
			Payments:      count,
		})
		r.TotalCollected = r.TotalCollected.Add(amount)
	}

	sort.SliceStable(r.Paid, func(i, j int) bool { return r.Paid[i].FamilyNumber < r.Paid[j].FamilyNumber })
	sort.SliceStable(r.Unpaid, func(i, j int) bool { return r.Unpaid[i].FamilyNumber < r.Unpaid[j].FamilyNumber })
	r.PaidCount, r.UnpaidCount = len(r.Paid), len(r.Unpaid)
	return r
}
