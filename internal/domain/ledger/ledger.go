// Package ledger holds the parish ledger read-model: transactions, heads,
// banks, families and family dues, plus the balance and projection rules
// every financial report is built on.
package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a ledger entry
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// IsValid checks if the type is a valid TransactionType
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// ParseTransactionType parses INCOME/EXPENSE case-insensitively.
func ParseTransactionType(s string) (TransactionType, bool) {
	t := TransactionType(strings.ToUpper(strings.TrimSpace(s)))
	return t, t.IsValid()
}

// HeadType is the kind of entries a transaction head accepts
type HeadType string

const (
	HeadTypeIncome  HeadType = "INCOME"
	HeadTypeExpense HeadType = "EXPENSE"
	HeadTypeBoth    HeadType = "BOTH"
)

// IsValid checks if the type is a valid HeadType
func (h HeadType) IsValid() bool {
	switch h {
	case HeadTypeIncome, HeadTypeExpense, HeadTypeBoth:
		return true
	}
	return false
}

// FamilyStatusLive is the only family status that takes part in collection rosters.
const FamilyStatusLive = "Live"

// Head markers used to select heads for the Aramana and Kudishika reports.
const (
	MarkerAramana   = "Aramana"
	MarkerKudishika = "Kudishika"
)

// Transaction is a single ledger entry. Both legs are always read; a row
// normally carries only one of them.
type Transaction struct {
	ID            uuid.UUID
	ParishID      uuid.UUID
	Date          time.Time
	VoucherNumber string
	Type          TransactionType
	HeadID        uuid.UUID
	HeadName      string
	FamilyID      *uuid.UUID
	BankID        *uuid.UUID
	BankName      string
	IncomeAmount  decimal.Decimal
	ExpenseAmount decimal.Decimal
	Description   string
}

// Net returns income minus expense for the entry.
func (t Transaction) Net() decimal.Decimal {
	return t.IncomeAmount.Sub(t.ExpenseAmount)
}

// TransactionHead is an income/expense category of the parish ledger
type TransactionHead struct {
	ID             uuid.UUID
	ParishID       uuid.UUID
	Name           string
	Type           HeadType
	AramanaPercent *decimal.Decimal
	Description    string
}

// HasMarker reports whether the head name or description mentions marker.
func (h TransactionHead) HasMarker(marker string) bool {
	m := strings.ToLower(marker)
	return strings.Contains(strings.ToLower(h.Name), m) ||
		strings.Contains(strings.ToLower(h.Description), m)
}

// AramanaRate returns the configured Aramana percentage, zero when unset.
func (h TransactionHead) AramanaRate() decimal.Decimal {
	if h.AramanaPercent == nil {
		return decimal.Zero
	}
	return *h.AramanaPercent
}

// Bank is a parish bank or cash account
type Bank struct {
	ID             uuid.UUID
	ParishID       uuid.UUID
	Name           string
	OpeningBalance decimal.Decimal
	CurrentBalance decimal.Decimal
}

// Family is a registered household of the parish
type Family struct {
	ID       uuid.UUID
	ParishID uuid.UUID
	Number   string
	Name     string
	HeadName string
	UnitID   *uuid.UUID
	UnitName string
	Status   string
}

// IsLive reports whether the family takes part in collection rosters.
func (f Family) IsLive() bool {
	return f.Status == FamilyStatusLive
}

// FamilyDue is the carried-forward due of a family against one head
type FamilyDue struct {
	FamilyID       uuid.UUID
	HeadID         uuid.UUID
	ParishID       uuid.UUID
	OpeningBalance decimal.Decimal
}
