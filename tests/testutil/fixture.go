package testutil

import (
	"testing"

	"github.com/google/uuid"
	"github.com/parish/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// Fixture is a small parish ledger shared by repository, service and
// handler tests. The report window used throughout is February 2024.
//
//	SBI:  opening 1000, +500 on 2024-01-15, -200 on 2024-02-10
//	Cash: opening 0, Aramana +1000/-400, offerings +300/+200, Kudishika payment +120
//	Family 1 owes Kudishika: carried 50, +100 due in January, +30 due and -120 paid in February
type Fixture struct {
	Ledger   *MemoryLedger
	ParishID uuid.UUID

	SBI  ledger.Bank
	Cash ledger.Bank

	Offering    ledger.TransactionHead
	Maintenance ledger.TransactionHead
	Aramana     ledger.TransactionHead
	Kudishika   ledger.TransactionHead

	Unit      uuid.UUID
	Family1   ledger.Family
	Family2   ledger.Family
	Shifted   ledger.Family
	PeriodMin string
	PeriodMax string
}

// NewFixture builds the shared parish ledger.
func NewFixture(t testing.TB) *Fixture {
	t.Helper()

	parish := TestParishID()
	pct := decimal.NewFromInt(10)
	unit := NewTestUUID("unit-st-george")

	f := &Fixture{
		Ledger:   NewMemoryLedger(),
		ParishID: parish,
		SBI: ledger.Bank{
			ID: NewTestUUID("bank-sbi"), ParishID: parish, Name: "SBI",
			OpeningBalance: Amount("1000"), CurrentBalance: Amount("1300"),
		},
		Cash: ledger.Bank{
			ID: NewTestUUID("bank-cash"), ParishID: parish, Name: "Cash",
			OpeningBalance: decimal.Zero, CurrentBalance: Amount("1220"),
		},
		Offering: ledger.TransactionHead{
			ID: NewTestUUID("head-offering"), ParishID: parish, Name: "Sunday Offering", Type: ledger.HeadTypeIncome,
		},
		Maintenance: ledger.TransactionHead{
			ID: NewTestUUID("head-maintenance"), ParishID: parish, Name: "Maintenance", Type: ledger.HeadTypeExpense,
		},
		Aramana: ledger.TransactionHead{
			ID: NewTestUUID("head-aramana"), ParishID: parish, Name: "Aramana Fund", Type: ledger.HeadTypeBoth,
			AramanaPercent: &pct,
		},
		Kudishika: ledger.TransactionHead{
			ID: NewTestUUID("head-kudishika"), ParishID: parish, Name: "Church Dues", Type: ledger.HeadTypeBoth,
			Description: "Kudishika collected per family",
		},
		Unit: unit,
		Family1: ledger.Family{
			ID: NewTestUUID("family-1"), ParishID: parish, Number: "F001", Name: "Puthenpura",
			HeadName: "Joseph", UnitID: &unit, UnitName: "St. George", Status: ledger.FamilyStatusLive,
		},
		Family2: ledger.Family{
			ID: NewTestUUID("family-2"), ParishID: parish, Number: "F002", Name: "Kizhakkel",
			HeadName: "Mary", UnitID: &unit, UnitName: "St. George", Status: ledger.FamilyStatusLive,
		},
		Shifted: ledger.Family{
			ID: NewTestUUID("family-3"), ParishID: parish, Number: "F003", Name: "Valiyaveettil",
			HeadName: "Thomas", Status: "Shifted",
		},
		PeriodMin: "2024-02-01",
		PeriodMax: "2024-02-29",
	}

	m := f.Ledger
	m.Banks = []ledger.Bank{f.SBI, f.Cash}
	m.Heads = []ledger.TransactionHead{f.Offering, f.Maintenance, f.Aramana, f.Kudishika}
	m.Families = []ledger.Family{f.Family1, f.Family2, f.Shifted}
	m.Dues = []ledger.FamilyDue{{
		FamilyID: f.Family1.ID, HeadID: f.Kudishika.ID, ParishID: parish, OpeningBalance: Amount("50"),
	}}

	sbi, cash := f.SBI.ID, f.Cash.ID
	fam1 := f.Family1.ID
	add := func(seed, day, voucher string, typ ledger.TransactionType, head uuid.UUID, bank, family *uuid.UUID, amount string) {
		tx := ledger.Transaction{
			ID:            NewTestUUID(seed),
			ParishID:      parish,
			Date:          Date(t, day),
			VoucherNumber: voucher,
			Type:          typ,
			HeadID:        head,
			BankID:        bank,
			FamilyID:      family,
			Description:   seed,
		}
		if typ == ledger.TransactionTypeIncome {
			tx.IncomeAmount = Amount(amount)
		} else {
			tx.ExpenseAmount = Amount(amount)
		}
		m.AddTransaction(tx)
	}

	add("tx-offering-jan", "2024-01-15", "V001", ledger.TransactionTypeIncome, f.Offering.ID, &sbi, nil, "500")
	add("tx-kudishika-due-jan", "2024-01-20", "V002", ledger.TransactionTypeExpense, f.Kudishika.ID, nil, &fam1, "100")
	add("tx-aramana-in", "2024-02-05", "V003", ledger.TransactionTypeIncome, f.Aramana.ID, &cash, nil, "1000")
	add("tx-maintenance", "2024-02-10", "V004", ledger.TransactionTypeExpense, f.Maintenance.ID, &sbi, nil, "200")
	add("tx-offering-fam1-a", "2024-02-12", "V005", ledger.TransactionTypeIncome, f.Offering.ID, &cash, &fam1, "300")
	add("tx-kudishika-paid", "2024-02-15", "V006", ledger.TransactionTypeIncome, f.Kudishika.ID, &cash, &fam1, "120")
	add("tx-kudishika-due-feb", "2024-02-18", "V007", ledger.TransactionTypeExpense, f.Kudishika.ID, nil, &fam1, "30")
	add("tx-aramana-out", "2024-02-20", "V008", ledger.TransactionTypeExpense, f.Aramana.ID, &cash, nil, "400")
	add("tx-offering-fam1-b", "2024-02-25", "V009", ledger.TransactionTypeIncome, f.Offering.ID, &cash, &fam1, "200")

	return f
}

// Period returns the February 2024 report window.
func (f *Fixture) Period(t testing.TB) ledger.Period {
	t.Helper()
	start, end := Date(t, f.PeriodMin), Date(t, f.PeriodMax)
	p, err := ledger.NewPeriod(&start, &end, 0)
	if err != nil {
		t.Fatalf("fixture period: %v", err)
	}
	return p
}
