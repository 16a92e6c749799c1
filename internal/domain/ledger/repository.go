package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionFilter narrows a transaction query. From and To are inclusive
// days; Before is an exclusive day bound. Nil fields do not filter.
type TransactionFilter struct {
	ParishID uuid.UUID
	From     *time.Time
	To       *time.Time
	Before   *time.Time
	BankID   *uuid.UUID
	HeadID   *uuid.UUID
	HeadIDs  []uuid.UUID
	FamilyID *uuid.UUID
	Type     *TransactionType
}

// InPeriod restricts the filter to the days of p.
func (f TransactionFilter) InPeriod(p Period) TransactionFilter {
	start, end := p.Start, p.End
	f.From, f.To, f.Before = &start, &end, nil
	return f
}

// UpTo restricts the filter to entries dated on or before cutoff.
func (f TransactionFilter) UpTo(cutoff time.Time) TransactionFilter {
	c := Day(cutoff)
	f.From, f.To, f.Before = nil, &c, nil
	return f
}

// StrictlyBefore restricts the filter to entries dated before cutoff.
func (f TransactionFilter) StrictlyBefore(cutoff time.Time) TransactionFilter {
	c := Day(cutoff)
	f.From, f.To, f.Before = nil, nil, &c
	return f
}

// Matches reports whether t satisfies every set field of the filter.
func (f TransactionFilter) Matches(t Transaction) bool {
	if t.ParishID != f.ParishID {
		return false
	}
	d := Day(t.Date)
	if f.From != nil && d.Before(Day(*f.From)) {
		return false
	}
	if f.To != nil && d.After(Day(*f.To)) {
		return false
	}
	if f.Before != nil && !d.Before(Day(*f.Before)) {
		return false
	}
	if f.BankID != nil && (t.BankID == nil || *t.BankID != *f.BankID) {
		return false
	}
	if f.HeadID != nil && t.HeadID != *f.HeadID {
		return false
	}
	if len(f.HeadIDs) > 0 && !containsID(f.HeadIDs, t.HeadID) {
		return false
	}
	if f.FamilyID != nil && (t.FamilyID == nil || *t.FamilyID != *f.FamilyID) {
		return false
	}
	if f.Type != nil && t.Type != *f.Type {
		return false
	}
	return true
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// MonthlyTotalsFilter selects the transactions summed by MonthlyTotals.
type MonthlyTotalsFilter struct {
	ParishID uuid.UUID
	Type     TransactionType
	From     time.Time
	To       time.Time
	HeadID   *uuid.UUID
}

// MonthlyTotal is the sum of the leg matching the filter type for one head
// in one calendar month.
type MonthlyTotal struct {
	HeadID   *uuid.UUID
	HeadName string
	Year     int
	Month    time.Month
	Amount   decimal.Decimal
}

// TransactionReader is the minimal query surface needed to re-sum balances.
type TransactionReader interface {
	FindTransactions(ctx context.Context, filter TransactionFilter) ([]Transaction, error)
}

// Reader is the read-only ledger accessor the report engine depends on.
// Lookups of a single named entity return shared.ErrNotFound when absent.
type Reader interface {
	TransactionReader

	FindBankByName(ctx context.Context, parishID uuid.UUID, name string) (*Bank, error)
	FindBanks(ctx context.Context, parishID uuid.UUID) ([]Bank, error)

	FindHeadByID(ctx context.Context, parishID, headID uuid.UUID) (*TransactionHead, error)
	FindHeadByName(ctx context.Context, parishID uuid.UUID, name string) (*TransactionHead, error)
	FindHeadsByMarker(ctx context.Context, parishID uuid.UUID, marker string) ([]TransactionHead, error)

	FindFamilyByID(ctx context.Context, parishID, familyID uuid.UUID) (*Family, error)
	FindLiveFamilies(ctx context.Context, parishID uuid.UUID) ([]Family, error)
	FindFamilyDues(ctx context.Context, parishID, familyID uuid.UUID) ([]FamilyDue, error)

	MonthlyTotals(ctx context.Context, filter MonthlyTotalsFilter) ([]MonthlyTotal, error)
}
