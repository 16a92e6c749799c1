package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/parish/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) time.Time {
	t, err := time.Parse(ledger.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func amt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func assertAmount(t *testing.T, want int64, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, got.Equal(amt(want)), append([]any{"want %d, got %s", want, got.String()}, msgAndArgs...)...)
}

var (
	parishID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	period   = ledger.Period{Start: d("2024-02-01"), End: d("2024-02-28")}
)

func income(head string, date string, v int64) ledger.Transaction {
	return ledger.Transaction{
		ID: uuid.New(), ParishID: parishID, Date: d(date), Type: ledger.TransactionTypeIncome,
		HeadID: uuid.NewSHA1(uuid.Nil, []byte(head)), HeadName: head, IncomeAmount: amt(v),
	}
}

func expense(head string, date string, v int64) ledger.Transaction {
	return ledger.Transaction{
		ID: uuid.New(), ParishID: parishID, Date: d(date), Type: ledger.TransactionTypeExpense,
		HeadID: uuid.NewSHA1(uuid.Nil, []byte(head)), HeadName: head, ExpenseAmount: amt(v),
	}
}

func TestBuildLedger(t *testing.T) {
	txs := []ledger.Transaction{
		income("Offertory", "2024-02-04", 700),
		income("Offertory", "2024-02-11", 300),
		expense("Repairs", "2024-02-12", 250),
		income("Feast", "2024-02-20", 100),
		expense("Feast", "2024-02-21", 40),
	}

	t.Run("groups by head and keeps totals equal to the entries", func(t *testing.T) {
		r := BuildLedger(parishID, period, txs, ledger.CustomizationBoth, false)
		require.Len(t, r.Heads, 3)
		assert.Equal(t, []string{"Feast", "Offertory", "Repairs"},
			[]string{r.Heads[0].HeadName, r.Heads[1].HeadName, r.Heads[2].HeadName})

		assertAmount(t, 60, r.Heads[0].Balance)
		assertAmount(t, 1000, r.Heads[1].Income)
		assertAmount(t, -250, r.Heads[2].Balance)

		in, ex := SumLegs(txs)
		assert.True(t, r.TotalIncome.Equal(in))
		assert.True(t, r.TotalExpense.Equal(ex))
		assertAmount(t, 810, r.Balance)
		assert.Nil(t, r.Transactions)
	})

	t.Run("income only drops expense heads and zeroes expense legs", func(t *testing.T) {
		r := BuildLedger(parishID, period, txs, ledger.CustomizationIncomeOnly, true)
		require.Len(t, r.Heads, 2)
		assertAmount(t, 100, r.Heads[0].Balance)
		assertAmount(t, 0, r.TotalExpense)
		assert.Len(t, r.Transactions, 3)
	})
}

func TestBuildCashBookEntry(t *testing.T) {
	bank := ledger.Bank{ID: uuid.New(), Name: "Main", OpeningBalance: amt(1000)}
	feb := expense("Repairs", "2024-02-15", 200)

	entry := BuildCashBookEntry(bank, amt(1500), amt(1300), []ledger.Transaction{feb}, ledger.CustomizationBoth)

	assert.Equal(t, "Main", entry.BankName)
	assertAmount(t, 1500, entry.OpeningBalance)
	assertAmount(t, 1300, entry.ClosingBalance)
	assertAmount(t, 200, entry.TotalExpense)
	require.Len(t, entry.Statements, 1)
	assert.Equal(t, feb.ID, entry.Statements[0].ID)
	assert.True(t, entry.OpeningBalance.Add(entry.TotalIncome).Sub(entry.TotalExpense).Equal(entry.ClosingBalance))

	hidden := BuildCashBookEntry(bank, amt(1500), amt(1300), []ledger.Transaction{feb}, ledger.CustomizationIncomeOnly)
	assert.Empty(t, hidden.Statements)
	assertAmount(t, 200, hidden.TotalExpense)

	r := NewCashBookReport(parishID, period, AllBanks, ledger.CustomizationBoth, []CashBookEntry{entry, entry})
	assertAmount(t, 3000, r.TotalOpening)
	assertAmount(t, 2600, r.TotalClosing)
}

func TestBuildNoticeBoard(t *testing.T) {
	head := ledger.TransactionHead{ID: uuid.New(), Name: "Christmas Collection"}
	family := func(num string) ledger.Family {
		return ledger.Family{ID: uuid.New(), Number: num, Name: "Family " + num, Status: ledger.FamilyStatusLive, UnitName: "St. Joseph"}
	}
	f1, f2, f3 := family("003"), family("001"), family("002")

	first := income(head.Name, "2024-02-03", 50)
	first.VoucherNumber = "R-10"
	second := income(head.Name, "2024-02-17", 25)
	second.VoucherNumber = "R-22"

	r := BuildNoticeBoard(parishID, period, head, []FamilyCollection{
		{Family: f1, Payments: []ledger.Transaction{second, first}},
		{Family: f2},
		{Family: f3, Payments: []ledger.Transaction{expense(head.Name, "2024-02-05", 10)}},
	}, ledger.CustomizationBoth)

	require.Len(t, r.Paid, 1)
	require.Len(t, r.Unpaid, 2)
	assert.Equal(t, 3, r.PaidCount+r.UnpaidCount)

	paid := r.Paid[0]
	assert.Equal(t, "003", paid.FamilyNumber)
	assertAmount(t, 75, paid.Amount)
	assert.Equal(t, d("2024-02-17"), paid.LastPaidDate)
	assert.Equal(t, "R-22", paid.VoucherNumber)
	assert.Equal(t, 2, paid.Payments)
	assert.Equal(t, "St. Joseph", paid.UnitName)

	assert.Equal(t, "001", r.Unpaid[0].FamilyNumber)
	assert.Equal(t, "002", r.Unpaid[1].FamilyNumber)
	assertAmount(t, 75, r.TotalCollected)
	assert.Equal(t, ledger.CustomizationBoth, r.Customization)
}

func TestBuildNoticeBoard_IncomeLegOnExpenseEntry(t *testing.T) {
	head := ledger.TransactionHead{ID: uuid.New(), Name: "Feast Collection"}
	fam := ledger.Family{ID: uuid.New(), Number: "007", Status: ledger.FamilyStatusLive}

	mixed := income(head.Name, "2024-02-11", 40)
	mixed.Type = ledger.TransactionTypeExpense
	mixed.ExpenseAmount = amt(5)
	collections := []FamilyCollection{{Family: fam, Payments: []ledger.Transaction{mixed}}}

	r := BuildNoticeBoard(parishID, period, head, collections, ledger.CustomizationBoth)
	require.Len(t, r.Paid, 1)
	assertAmount(t, 40, r.Paid[0].Amount)

	incomeOnly := BuildNoticeBoard(parishID, period, head, collections, ledger.CustomizationIncomeOnly)
	require.Len(t, incomeOnly.Paid, 1)
	assertAmount(t, 40, incomeOnly.TotalCollected)

	expenseOnly := BuildNoticeBoard(parishID, period, head, collections, ledger.CustomizationExpenseOnly)
	assert.Empty(t, expenseOnly.Paid)
	require.Len(t, expenseOnly.Unpaid, 1)
	assert.True(t, expenseOnly.TotalCollected.IsZero())
	assertAmount(t, 40, collections[0].Payments[0].IncomeAmount)
}

func TestBuildAramana(t *testing.T) {
	pct := amt(10)
	head := ledger.TransactionHead{ID: uuid.NewSHA1(uuid.Nil, []byte("Aramana")), Name: "Aramana", AramanaPercent: &pct}
	unset := ledger.TransactionHead{ID: uuid.NewSHA1(uuid.Nil, []byte("Aramana Misc")), Name: "Aramana Misc"}

	txs := []ledger.Transaction{
		income("Aramana", "2024-02-02", 600),
		income("Aramana", "2024-02-09", 400),
		expense("Aramana", "2024-02-20", 400),
		income("Aramana Misc", "2024-02-10", 500),
	}

	heads := []ledger.TransactionHead{head, unset}
	r := BuildAramana(parishID, period, heads, txs, ledger.CustomizationBoth)
	require.Len(t, r.Heads, 2)

	line := r.Heads[0]
	assertAmount(t, 1000, line.Income)
	assertAmount(t, 100, line.ToBePaid)
	assertAmount(t, 40, line.Paid)
	assertAmount(t, 60, line.Balance)

	misc := r.Heads[1]
	assert.True(t, misc.Percentage.IsZero())
	assertAmount(t, 0, misc.ToBePaid)
	assertAmount(t, 0, misc.Balance)

	assertAmount(t, 60, r.TotalBalance)

	t.Run("income only keeps the accrued share", func(t *testing.T) {
		r := BuildAramana(parishID, period, heads, txs, ledger.CustomizationIncomeOnly)
		require.Len(t, r.Heads, 2)
		assertAmount(t, 100, r.Heads[0].ToBePaid)
		assertAmount(t, 0, r.Heads[0].Paid)
		assertAmount(t, 100, r.Heads[0].Balance)
		assertAmount(t, 100, r.TotalToBePaid)
		assertAmount(t, 0, r.TotalPaid)
		assertAmount(t, 100, r.TotalBalance)
	})

	t.Run("expense only keeps remitted heads", func(t *testing.T) {
		r := BuildAramana(parishID, period, heads, txs, ledger.CustomizationExpenseOnly)
		require.Len(t, r.Heads, 1)
		line := r.Heads[0]
		assert.Equal(t, "Aramana", line.HeadName)
		assert.True(t, line.Income.IsZero())
		assertAmount(t, 0, line.ToBePaid)
		assertAmount(t, 40, line.Paid)
		assertAmount(t, -40, line.Balance)
		assertAmount(t, -40, r.TotalBalance)
		assert.Equal(t, ledger.CustomizationExpenseOnly, r.Customization)
	})
}

func TestBuildFamilyDueHead(t *testing.T) {
	head := ledger.TransactionHead{ID: uuid.New(), Name: "Church Tax", Description: "Kudishika"}
	due := expense(head.Name, "2024-02-10", 300)
	due.VoucherNumber = "D-2"
	pay := income(head.Name, "2024-02-10", 200)
	pay.VoucherNumber = "D-1"
	late := income(head.Name, "2024-02-25", 50)

	h := BuildFamilyDueHead(head, amt(120), []ledger.Transaction{late, due, pay}, ledger.CustomizationBoth)

	assertAmount(t, 120, h.OpeningBalance)
	assertAmount(t, 300, h.Dues)
	assertAmount(t, 250, h.Payments)
	assertAmount(t, 170, h.ClosingBalance)

	require.Len(t, h.Entries, 3)
	assert.Equal(t, "D-1", h.Entries[0].VoucherNumber)
	assertAmount(t, -80, h.Entries[0].RunningBalance)
	assertAmount(t, 220, h.Entries[1].RunningBalance)
	assert.True(t, h.Entries[2].RunningBalance.Equal(h.ClosingBalance))

	paymentsOnly := BuildFamilyDueHead(head, amt(120), []ledger.Transaction{late, due, pay}, ledger.CustomizationIncomeOnly)
	assert.Len(t, paymentsOnly.Entries, 2)
	assert.True(t, paymentsOnly.ClosingBalance.Equal(h.ClosingBalance))

	r := NewFamilyDuesReport(parishID, period, ledger.CustomizationBoth, ledger.Family{ID: uuid.New(), Number: "042"}, []FamilyDueHead{h})
	assertAmount(t, 170, r.TotalClosing)
	assert.Equal(t, "042", r.FamilyNumber)
}

func monthly(head *uuid.UUID, name string, year int, month time.Month, v int64) ledger.MonthlyTotal {
	return ledger.MonthlyTotal{HeadID: head, HeadName: name, Year: year, Month: month, Amount: amt(v)}
}

func TestBuildPivot(t *testing.T) {
	offertory, feast, tithe, misc := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	totals := []ledger.MonthlyTotal{
		monthly(&offertory, "Offertory", 2024, time.April, 300),
		monthly(&offertory, "Offertory", 2025, time.March, 200),
		monthly(&feast, "Feast", 2024, time.December, 1000),
		monthly(&tithe, "Tithe", 2024, time.May, 250),
		monthly(&misc, "others", 2024, time.June, 50),
		monthly(nil, "", 2025, time.January, 200),
		monthly(&feast, "Feast", 2024, time.March, 999), // previous fiscal year
	}

	t.Run("orders by share with Others last", func(t *testing.T) {
		r := BuildPivot(parishID, ledger.FiscalYear(2024), ledger.TransactionTypeIncome, totals, 0)
		require.Len(t, r.Rows, 4)

		names := []string{r.Rows[0].HeadName, r.Rows[1].HeadName, r.Rows[2].HeadName, r.Rows[3].HeadName}
		assert.Equal(t, []string{"Feast", "Offertory", "Tithe", OthersLabel}, names)
		assert.True(t, r.Rows[3].Others)

		for i := 1; i < len(r.Rows)-1; i++ {
			assert.True(t, r.Rows[i-1].Percentage.GreaterThanOrEqual(r.Rows[i].Percentage))
		}

		assertAmount(t, 2000, r.GrandTotal)
		assertAmount(t, 500, r.Rows[1].Total)
		assertAmount(t, 300, r.Rows[1].Months[0])
		assertAmount(t, 200, r.Rows[1].Months[11])
		assert.True(t, r.Rows[0].Percentage.Equal(decimal.RequireFromString("50")))
		assertAmount(t, 250, r.Rows[3].Total)
		assertAmount(t, 1000, r.MonthTotals[ledger.MonthIndex(time.December)])
		assert.Equal(t, "2024-25", r.FiscalYearLabel)
	})

	t.Run("top N collapses the tail into Others", func(t *testing.T) {
		r := BuildPivot(parishID, ledger.FiscalYear(2024), ledger.TransactionTypeIncome, totals, 1)
		require.Len(t, r.Rows, 2)
		assert.Equal(t, "Feast", r.Rows[0].HeadName)
		assertAmount(t, 1000, r.Rows[1].Total)
		assertAmount(t, 2000, r.GrandTotal)
	})

	t.Run("empty input yields zero percentages", func(t *testing.T) {
		r := BuildPivot(parishID, ledger.FiscalYear(2024), ledger.TransactionTypeExpense, nil, 0)
		assert.Empty(t, r.Rows)
		assert.True(t, r.GrandTotal.IsZero())
	})

	t.Run("months encode in fiscal order", func(t *testing.T) {
		var m MonthlyAmounts
		m[0] = amt(5)
		m[11] = amt(7)
		data, err := json.Marshal(m)
		require.NoError(t, err)
		assert.Contains(t, string(data), `{"apr":"5","may":"0"`)
		assert.Contains(t, string(data), `"mar":"7"}`)

		var back MonthlyAmounts
		require.NoError(t, json.Unmarshal(data, &back))
		assert.True(t, back.Total().Equal(amt(12)))
	})
}

func TestBuildHeadTrend(t *testing.T) {
	head := ledger.TransactionHead{ID: uuid.New(), Name: "Offertory"}
	totals := []ledger.MonthlyTotal{
		monthly(&head.ID, head.Name, 2023, time.April, 100),
		monthly(&head.ID, head.Name, 2024, time.February, 40),
		monthly(&head.ID, head.Name, 2025, time.May, 70),
	}

	r := BuildHeadTrend(parishID, head, ledger.TransactionTypeIncome, 2022, 2025, totals)
	require.Len(t, r.Years, 4)
	assert.Equal(t, 2022, r.Years[0].FiscalYear)
	assert.True(t, r.Years[0].Total.IsZero())
	assertAmount(t, 140, r.Years[1].Total)
	assertAmount(t, 40, r.Years[1].Months[ledger.MonthIndex(time.February)])
	assert.True(t, r.Years[2].Total.IsZero())
	assertAmount(t, 70, r.Years[3].Total)
}

func TestBuildIncomeExpense(t *testing.T) {
	incomeTotals := []ledger.MonthlyTotal{
		monthly(nil, "", 2023, time.June, 500),
		monthly(nil, "", 2024, time.July, 800),
	}
	expenseTotals := []ledger.MonthlyTotal{
		monthly(nil, "", 2024, time.July, 300),
		monthly(nil, "", 2022, time.July, 999),
	}

	r := BuildIncomeExpense(parishID, 2022, 2024, incomeTotals, expenseTotals)
	require.Len(t, r.Years, 2, "income years drive the rows")

	assert.Equal(t, 2023, r.Years[0].FiscalYear)
	assertAmount(t, 500, r.Years[0].TotalIncome)
	assert.True(t, r.Years[0].TotalExpense.IsZero())

	assertAmount(t, 300, r.Years[1].TotalExpense)
	assertAmount(t, 500, r.Years[1].Net)
}
