package ledger

import (
	"strings"

	"github.com/parish/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Customization selects which monetary legs a report exposes.
type Customization string

const (
	CustomizationIncomeOnly  Customization = "INCOME_ONLY"
	CustomizationExpenseOnly Customization = "EXPENSE_ONLY"
	CustomizationBoth        Customization = "BOTH"
)

// IsValid checks if the value is a valid Customization
func (c Customization) IsValid() bool {
	switch c {
	case CustomizationIncomeOnly, CustomizationExpenseOnly, CustomizationBoth:
		return true
	}
	return false
}

// String returns the string representation of Customization
func (c Customization) String() string {
	return string(c)
}

// ParseCustomization accepts INCOME_ONLY, EXPENSE_ONLY or BOTH in any case,
// with "-" or " " as separator. Empty input means BOTH.
func ParseCustomization(s string) (Customization, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CustomizationBoth, nil
	}
	normalized := strings.NewReplacer("-", "_", " ", "_").Replace(strings.ToUpper(s))
	c := Customization(normalized)
	if !c.IsValid() {
		return "", shared.NewValidationError("unknown customization %q", s)
	}
	return c, nil
}

// Project returns the legs this option lets through, and whether a row
// carrying them should be shown at all.
func (c Customization) Project(income, expense decimal.Decimal) (decimal.Decimal, decimal.Decimal, bool) {
	switch c {
	case CustomizationIncomeOnly:
		return income, decimal.Zero, !income.IsZero()
	case CustomizationExpenseOnly:
		return decimal.Zero, expense, !expense.IsZero()
	default:
		return income, expense, true
	}
}

// Projectable is a report row with an income and an expense leg.
type Projectable[T any] interface {
	Legs() (income, expense decimal.Decimal)
	WithLegs(income, expense decimal.Decimal) T
}

// Customize projects rows through c. Rows whose permitted leg is zero are
// omitted, so applying the same option twice yields the same result.
func Customize[T Projectable[T]](c Customization, rows []T) []T {
	if rows == nil {
		return nil
	}
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		income, expense := r.Legs()
		in, ex, keep := c.Project(income, expense)
		if !keep {
			continue
		}
		out = append(out, r.WithLegs(in, ex))
	}
	return out
}
