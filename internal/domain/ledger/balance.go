package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Orientation decides which leg of a transaction increases a balance.
type Orientation int

const (
	// AssetOrientation grows with income (bank and cash accounts).
	AssetOrientation Orientation = iota
	// DueOrientation grows with expense entries and shrinks with payments
	// (family dues).
	DueOrientation
)

// Movement returns the signed effect of t on a balance of this orientation.
func (o Orientation) Movement(t Transaction) decimal.Decimal {
	if o == DueOrientation {
		return t.ExpenseAmount.Sub(t.IncomeAmount)
	}
	return t.Net()
}

// Sum folds the movements of txs.
func (o Orientation) Sum(txs []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txs {
		total = total.Add(o.Movement(t))
	}
	return total
}

// Account identifies the slice of the ledger a balance is computed over.
type Account struct {
	ParishID    uuid.UUID
	BankID      *uuid.UUID
	HeadID      *uuid.UUID
	FamilyID    *uuid.UUID
	Orientation Orientation
}

func (a Account) filter() TransactionFilter {
	return TransactionFilter{
		ParishID: a.ParishID,
		BankID:   a.BankID,
		HeadID:   a.HeadID,
		FamilyID: a.FamilyID,
	}
}

// BalanceCalculator derives balances by re-summing the ledger from the
// account's base balance. Nothing is cached between calls.
type BalanceCalculator struct {
	reader TransactionReader
}

// NewBalanceCalculator creates a calculator over reader.
func NewBalanceCalculator(reader TransactionReader) *BalanceCalculator {
	return &BalanceCalculator{reader: reader}
}

// Opening returns base plus every movement dated strictly before cutoff.
// A nil cutoff returns base unchanged.
func (c *BalanceCalculator) Opening(ctx context.Context, acct Account, base decimal.Decimal, cutoff *time.Time) (decimal.Decimal, error) {
	if cutoff == nil {
		return base, nil
	}
	txs, err := c.reader.FindTransactions(ctx, acct.filter().StrictlyBefore(*cutoff))
	if err != nil {
		return decimal.Zero, fmt.Errorf("opening balance: %w", err)
	}
	return base.Add(acct.Orientation.Sum(txs)), nil
}

// Closing returns base plus every movement dated on or before cutoff.
func (c *BalanceCalculator) Closing(ctx context.Context, acct Account, base decimal.Decimal, cutoff time.Time) (decimal.Decimal, error) {
	txs, err := c.reader.FindTransactions(ctx, acct.filter().UpTo(cutoff))
	if err != nil {
		return decimal.Zero, fmt.Errorf("closing balance: %w", err)
	}
	return base.Add(acct.Orientation.Sum(txs)), nil
}
