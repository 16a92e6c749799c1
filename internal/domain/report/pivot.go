package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/parish/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// OthersLabel names the synthetic bucket that always closes a pivot
const OthersLabel = "Others"

var monthKeys = [ledger.MonthsInYear]string{
	"apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec", "jan", "feb", "mar",
}

// MonthlyAmounts holds one amount per fiscal month, April first.
// It encodes as a JSON object keyed apr..mar in fiscal order.
type MonthlyAmounts [ledger.MonthsInYear]decimal.Decimal

// Total sums the twelve months.
func (m MonthlyAmounts) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range m {
		total = total.Add(v)
	}
	return total
}

// Add returns the month-wise sum of m and o.
func (m MonthlyAmounts) Add(o MonthlyAmounts) MonthlyAmounts {
	for i := range m {
		m[i] = m[i].Add(o[i])
	}
	return m
}

func (m MonthlyAmounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range monthKeys {
		if i > 0 {
			buf.WriteByte(',')
		}
		v, err := m[i].MarshalJSON()
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&buf, "%q:%s", key, v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m *MonthlyAmounts) UnmarshalJSON(data []byte) error {
	var raw map[string]decimal.Decimal
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for i, key := range monthKeys {
		m[i] = raw[key]
	}
	return nil
}

// PivotRow is one head of the fiscal-year pivot
type PivotRow struct {
	HeadID     *uuid.UUID      `json:"head_id,omitempty"`
	HeadName   string          `json:"head_name"`
	Months     MonthlyAmounts  `json:"months"`
	Total      decimal.Decimal `json:"total"`
	Percentage decimal.Decimal `json:"percentage"`
	Others     bool            `json:"others"`
}

// PivotReport is the head × month cross-tab of one fiscal year
type PivotReport struct {
	ParishID        uuid.UUID              `json:"parish_id"`
	FiscalYear      int                    `json:"fiscal_year"`
	FiscalYearLabel string                 `json:"fiscal_year_label"`
	Type            ledger.TransactionType `json:"type"`
	Rows            []PivotRow             `json:"rows"`
	MonthTotals     MonthlyAmounts         `json:"month_totals"`
	GrandTotal      decimal.Decimal        `json:"grand_total"`
}

func isOthers(t ledger.MonthlyTotal) bool {
	return t.HeadID == nil || strings.EqualFold(strings.TrimSpace(t.HeadName), OthersLabel)
}

// BuildPivot folds monthly totals of fy into one row per head. Entries with
// no head, heads named "Others" and, when topN > 0, heads ranked below topN
// are merged into the Others row, which is always last. The remaining rows
// are ordered by descending share of the grand total, ties by name.
func BuildPivot(parishID uuid.UUID, fy ledger.FiscalYear, txType ledger.TransactionType, totals []ledger.MonthlyTotal, topN int) *PivotReport {
	rows := make(map[uuid.UUID]*PivotRow)
	others := &PivotRow{HeadName: OthersLabel, Others: true}
	hasOthers := false

	for _, t := range totals {
		if ledger.FiscalYearOf(monthStart(t)) != fy {
			continue
		}
		idx := ledger.MonthIndex(t.Month)
		if isOthers(t) {
			others.Months[idx] = others.Months[idx].Add(t.Amount)
			hasOthers = true
			continue
		}
		row, ok := rows[*t.HeadID]
		if !ok {
			id := *t.HeadID
			row = &PivotRow{HeadID: &id, HeadName: t.HeadName}
			rows[id] = row
		}
		row.Months[idx] = row.Months[idx].Add(t.Amount)
	}

	ranked := make([]PivotRow, 0, len(rows))
	for _, row := range rows {
		row.Total = row.Months.Total()
		ranked = append(ranked, *row)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if c := ranked[i].Total.Cmp(ranked[j].Total); c != 0 {
			return c > 0
		}
		return ranked[i].HeadName < ranked[j].HeadName
	})
	if topN > 0 && len(ranked) > topN {
		for _, tail := range ranked[topN:] {
			others.Months = others.Months.Add(tail.Months)
		}
		ranked = ranked[:topN]
		hasOthers = true
	}
	if hasOthers {
		others.Total = others.Months.Total()
		ranked = append(ranked, *others)
	}

	r := &PivotReport{
		ParishID:        parishID,
		FiscalYear:      int(fy),
		FiscalYearLabel: fy.Label(),
		Type:            txType,
		Rows:            ranked,
	}
	for _, row := range ranked {
		r.MonthTotals = r.MonthTotals.Add(row.Months)
	}
	r.GrandTotal = r.MonthTotals.Total()
	for i := range r.Rows {
		r.Rows[i].Percentage = share(r.Rows[i].Total, r.GrandTotal)
	}
	return r
}

func share(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(whole).Round(2)
}

func monthStart(t ledger.MonthlyTotal) time.Time {
	return time.Date(t.Year, t.Month, 1, 0, 0, 0, 0, time.UTC)
}
