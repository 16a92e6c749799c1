package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/parish/backend/internal/domain/ledger"
	"github.com/parish/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MemoryLedger is an in-memory ledger.Reader for tests. Fields may be
// populated directly before use; Err, when set, is returned by every query.
type MemoryLedger struct {
	mu sync.RWMutex

	Transactions []ledger.Transaction
	Banks        []ledger.Bank
	Heads        []ledger.TransactionHead
	Families     []ledger.Family
	Dues         []ledger.FamilyDue
	Err          error

	queries atomic.Int64
}

var _ ledger.Reader = (*MemoryLedger)(nil)

// NewMemoryLedger returns an empty ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{}
}

// Queries returns how many reads the ledger has served.
func (m *MemoryLedger) Queries() int64 {
	return m.queries.Load()
}

// AddTransaction appends tx, filling HeadName and BankName from the
// registered heads and banks when unset.
func (m *MemoryLedger) AddTransaction(tx ledger.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	if tx.HeadName == "" {
		for _, h := range m.Heads {
			if h.ID == tx.HeadID {
				tx.HeadName = h.Name
			}
		}
	}
	if tx.BankName == "" && tx.BankID != nil {
		for _, b := range m.Banks {
			if b.ID == *tx.BankID {
				tx.BankName = b.Name
			}
		}
	}
	m.Transactions = append(m.Transactions, tx)
}

func (m *MemoryLedger) begin(ctx context.Context) error {
	m.queries.Add(1)
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.Err
}

func (m *MemoryLedger) FindTransactions(ctx context.Context, filter ledger.TransactionFilter) ([]ledger.Transaction, error) {
	if err := m.begin(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []ledger.Transaction
	for _, tx := range m.Transactions {
		if filter.Matches(tx) {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (m *MemoryLedger) FindBankByName(ctx context.Context, parishID uuid.UUID, name string) (*ledger.Bank, error) {
	if err := m.begin(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, b := range m.Banks {
		if b.ParishID == parishID && strings.EqualFold(b.Name, name) {
			bank := b
			return &bank, nil
		}
	}
	return nil, shared.NewNotFoundError("bank", name)
}

func (m *MemoryLedger) FindBanks(ctx context.Context, parishID uuid.UUID) ([]ledger.Bank, error) {
	if err := m.begin(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []ledger.Bank
	for _, b := range m.Banks {
		if b.ParishID == parishID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemoryLedger) FindHeadByID(ctx context.Context, parishID, headID uuid.UUID) (*ledger.TransactionHead, error) {
	if err := m.begin(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, h := range m.Heads {
		if h.ParishID == parishID && h.ID == headID {
			head := h
			return &head, nil
		}
	}
	return nil, shared.NewNotFoundError("transaction head", headID.String())
}

func (m *MemoryLedger) FindHeadByName(ctx context.Context, parishID uuid.UUID, name string) (*ledger.TransactionHead, error) {
	if err := m.begin(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, h := range m.Heads {
		if h.ParishID == parishID && strings.EqualFold(h.Name, name) {
			head := h
			return &head, nil
		}
	}
	return nil, shared.NewNotFoundError("transaction head", name)
}

func (m *MemoryLedger) FindHeadsByMarker(ctx context.Context, parishID uuid.UUID, marker string) ([]ledger.TransactionHead, error) {
	if err := m.begin(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []ledger.TransactionHead
	for _, h := range m.Heads {
		if h.ParishID == parishID && h.HasMarker(marker) {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemoryLedger) FindFamilyByID(ctx context.Context, parishID, familyID uuid.UUID) (*ledger.Family, error) {
	if err := m.begin(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, f := range m.Families {
		if f.ParishID == parishID && f.ID == familyID {
			family := f
			return &family, nil
		}
	}
	return nil, shared.NewNotFoundError("family", familyID.String())
}

func (m *MemoryLedger) FindLiveFamilies(ctx context.Context, parishID uuid.UUID) ([]ledger.Family, error) {
	if err := m.begin(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []ledger.Family
	for _, f := range m.Families {
		if f.ParishID == parishID && f.IsLive() {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (m *MemoryLedger) FindFamilyDues(ctx context.Context, parishID, familyID uuid.UUID) ([]ledger.FamilyDue, error) {
	if err := m.begin(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []ledger.FamilyDue
	for _, d := range m.Dues {
		if d.ParishID == parishID && d.FamilyID == familyID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *MemoryLedger) MonthlyTotals(ctx context.Context, filter ledger.MonthlyTotalsFilter) ([]ledger.MonthlyTotal, error) {
	if err := m.begin(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	type key struct {
		head  uuid.UUID
		year  int
		month int
	}
	sums := make(map[key]*ledger.MonthlyTotal)
	var order []key

	txType := filter.Type
	txFilter := ledger.TransactionFilter{
		ParishID: filter.ParishID,
		From:     &filter.From,
		To:       &filter.To,
		HeadID:   filter.HeadID,
		Type:     &txType,
	}
	for _, tx := range m.Transactions {
		if !txFilter.Matches(tx) {
			continue
		}
		amount := tx.IncomeAmount
		if filter.Type == ledger.TransactionTypeExpense {
			amount = tx.ExpenseAmount
		}
		k := key{head: tx.HeadID, year: tx.Date.Year(), month: int(tx.Date.Month())}
		total, ok := sums[k]
		if !ok {
			var headID *uuid.UUID
			name := ""
			for _, h := range m.Heads {
				if h.ID == tx.HeadID {
					id := h.ID
					headID, name = &id, h.Name
				}
			}
			total = &ledger.MonthlyTotal{HeadID: headID, HeadName: name, Year: k.year, Month: tx.Date.Month(), Amount: decimal.Zero}
			sums[k] = total
			order = append(order, k)
		}
		total.Amount = total.Amount.Add(amount)
	}

	out := make([]ledger.MonthlyTotal, 0, len(order))
	for _, k := range order {
		out = append(out, *sums[k])
	}
	return out, nil
}
