package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/parish/backend/internal/domain/ledger"
	"github.com/parish/backend/internal/domain/shared"
	"github.com/parish/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormLedgerRepository implements ledger.Reader using GORM
type GormLedgerRepository struct {
	db *gorm.DB
}

var _ ledger.Reader = (*GormLedgerRepository)(nil)

// NewGormLedgerRepository creates a new GormLedgerRepository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

const transactionColumns = "t.*, h.head_name AS head_name, b.name AS bank_name"

// FindTransactions returns the entries matching filter, oldest first.
func (r *GormLedgerRepository) FindTransactions(ctx context.Context, filter ledger.TransactionFilter) ([]ledger.Transaction, error) {
	q := r.db.WithContext(ctx).
		Table("transactions AS t").
		Select(transactionColumns).
		Joins("LEFT JOIN transaction_heads h ON h.id = t.head_id").
		Joins("LEFT JOIN banks b ON b.id = t.bank_id").
		Scopes(ParishScope("t.parish_id", filter.ParishID))

	if filter.From != nil {
		q = q.Where("t.date >= ?", ledger.Day(*filter.From))
	}
	if filter.To != nil {
		q = q.Where("t.date <= ?", ledger.Day(*filter.To))
	}
	if filter.Before != nil {
		q = q.Where("t.date < ?", ledger.Day(*filter.Before))
	}
	if filter.BankID != nil {
		q = q.Where("t.bank_id = ?", *filter.BankID)
	}
	if filter.HeadID != nil {
		q = q.Where("t.head_id = ?", *filter.HeadID)
	}
	if len(filter.HeadIDs) > 0 {
		q = q.Where("t.head_id IN ?", filter.HeadIDs)
	}
	if filter.FamilyID != nil {
		q = q.Where("t.family_id = ?", *filter.FamilyID)
	}
	if filter.Type != nil {
		q = q.Where("t.transaction_type = ?", *filter.Type)
	}

	var rows []models.TransactionRow
	if err := q.Order("t.date ASC, t.voucher_number ASC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("find transactions: %w", err)
	}

	txs := make([]ledger.Transaction, len(rows))
	for i := range rows {
		txs[i] = rows[i].ToDomain()
	}
	return txs, nil
}

// FindBankByName looks a bank up by name, ignoring case.
func (r *GormLedgerRepository) FindBankByName(ctx context.Context, parishID uuid.UUID, name string) (*ledger.Bank, error) {
	var m models.BankModel
	err := r.db.WithContext(ctx).
		Scopes(ParishScope("parish_id", parishID)).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&m).Error
	if err != nil {
		return nil, notFoundOr(err, "bank", name)
	}
	bank := m.ToDomain()
	return &bank, nil
}

// FindBanks returns every bank of the parish ordered by name.
func (r *GormLedgerRepository) FindBanks(ctx context.Context, parishID uuid.UUID) ([]ledger.Bank, error) {
	var ms []models.BankModel
	if err := r.db.WithContext(ctx).
		Scopes(ParishScope("parish_id", parishID)).
		Order("name ASC").
		Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("find banks: %w", err)
	}
	banks := make([]ledger.Bank, len(ms))
	for i := range ms {
		banks[i] = ms[i].ToDomain()
	}
	return banks, nil
}

func (r *GormLedgerRepository) FindHeadByID(ctx context.Context, parishID, headID uuid.UUID) (*ledger.TransactionHead, error) {
	var m models.TransactionHeadModel
	err := r.db.WithContext(ctx).
		Scopes(ParishScope("parish_id", parishID)).
		Where("id = ?", headID).
		First(&m).Error
	if err != nil {
		return nil, notFoundOr(err, "transaction head", headID.String())
	}
	head := m.ToDomain()
	return &head, nil
}

// FindHeadByName looks a head up by name, ignoring case.
func (r *GormLedgerRepository) FindHeadByName(ctx context.Context, parishID uuid.UUID, name string) (*ledger.TransactionHead, error) {
	var m models.TransactionHeadModel
	err := r.db.WithContext(ctx).
		Scopes(ParishScope("parish_id", parishID)).
		Where("LOWER(head_name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&m).Error
	if err != nil {
		return nil, notFoundOr(err, "transaction head", name)
	}
	head := m.ToDomain()
	return &head, nil
}

// FindHeadsByMarker returns the heads whose name or description mentions
// marker, ignoring case, ordered by name.
func (r *GormLedgerRepository) FindHeadsByMarker(ctx context.Context, parishID uuid.UUID, marker string) ([]ledger.TransactionHead, error) {
	pattern := "%" + strings.ToLower(marker) + "%"

	var ms []models.TransactionHeadModel
	if err := r.db.WithContext(ctx).
		Scopes(ParishScope("parish_id", parishID)).
		Where("(LOWER(head_name) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?)", pattern, pattern).
		Order("head_name ASC").
		Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("find heads by marker %q: %w", marker, err)
	}
	heads := make([]ledger.TransactionHead, len(ms))
	for i := range ms {
		heads[i] = ms[i].ToDomain()
	}
	return heads, nil
}

const familyColumns = "f.*, u.name AS unit_name"

func (r *GormLedgerRepository) familyQuery(ctx context.Context, parishID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("families AS f").
		Select(familyColumns).
		Joins("LEFT JOIN units u ON u.id = f.unit_id").
		Scopes(ParishScope("f.parish_id", parishID))
}

func (r *GormLedgerRepository) FindFamilyByID(ctx context.Context, parishID, familyID uuid.UUID) (*ledger.Family, error) {
	var rows []models.FamilyRow
	if err := r.familyQuery(ctx, parishID).
		Where("f.id = ?", familyID).
		Limit(1).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("find family: %w", err)
	}
	if len(rows) == 0 {
		return nil, shared.NewNotFoundError("family", familyID.String())
	}
	family := rows[0].ToDomain()
	return &family, nil
}

// FindLiveFamilies returns the families with status Live ordered by family number.
func (r *GormLedgerRepository) FindLiveFamilies(ctx context.Context, parishID uuid.UUID) ([]ledger.Family, error) {
	var rows []models.FamilyRow
	if err := r.familyQuery(ctx, parishID).
		Where("f.status = ?", ledger.FamilyStatusLive).
		Order("f.family_number ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("find live families: %w", err)
	}
	families := make([]ledger.Family, len(rows))
	for i := range rows {
		families[i] = rows[i].ToDomain()
	}
	return families, nil
}

func (r *GormLedgerRepository) FindFamilyDues(ctx context.Context, parishID, familyID uuid.UUID) ([]ledger.FamilyDue, error) {
	var ms []models.FamilyDueModel
	if err := r.db.WithContext(ctx).
		Scopes(ParishScope("parish_id", parishID)).
		Where("family_id = ?", familyID).
		Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("find family dues: %w", err)
	}
	dues := make([]ledger.FamilyDue, len(ms))
	for i := range ms {
		dues[i] = ms[i].ToDomain()
	}
	return dues, nil
}

// monthlyTotalRow is the scan target of the MonthlyTotals aggregate.
type monthlyTotalRow struct {
	HeadID   *uuid.UUID
	HeadName *string
	Year     int
	Month    int
	Amount   decimal.Decimal
}

// MonthlyTotals sums the leg matching filter.Type per head and calendar
// month. Entries whose head no longer exists are grouped under a nil HeadID.
func (r *GormLedgerRepository) MonthlyTotals(ctx context.Context, filter ledger.MonthlyTotalsFilter) ([]ledger.MonthlyTotal, error) {
	if !filter.Type.IsValid() {
		return nil, shared.NewValidationError("invalid transaction type %q", filter.Type)
	}
	amountColumn := "t.income_amount"
	if filter.Type == ledger.TransactionTypeExpense {
		amountColumn = "t.expense_amount"
	}
	yearExpr, monthExpr := r.calendarExprs()

	q := r.db.WithContext(ctx).
		Table("transactions AS t").
		Select("h.id AS head_id, h.head_name AS head_name, " +
			yearExpr + " AS year, " + monthExpr + " AS month, " +
			"COALESCE(SUM(" + amountColumn + "), 0) AS amount").
		Joins("LEFT JOIN transaction_heads h ON h.id = t.head_id").
		Scopes(ParishScope("t.parish_id", filter.ParishID)).
		Where("t.transaction_type = ?", filter.Type).
		Where("t.date >= ? AND t.date <= ?", ledger.Day(filter.From), ledger.Day(filter.To))
	if filter.HeadID != nil {
		q = q.Where("t.head_id = ?", *filter.HeadID)
	}

	var rows []monthlyTotalRow
	if err := q.Group("h.id, h.head_name, " + yearExpr + ", " + monthExpr).
		Order("year ASC, month ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("monthly totals: %w", err)
	}

	totals := make([]ledger.MonthlyTotal, 0, len(rows))
	for _, row := range rows {
		total := ledger.MonthlyTotal{
			HeadID: row.HeadID,
			Year:   row.Year,
			Month:  time.Month(row.Month),
			Amount: row.Amount,
		}
		if row.HeadName != nil {
			total.HeadName = *row.HeadName
		}
		totals = append(totals, total)
	}
	return totals, nil
}

// calendarExprs returns the SQL expressions extracting the calendar year and
// month of t.date for the connected dialect.
func (r *GormLedgerRepository) calendarExprs() (year, month string) {
	if r.db.Dialector.Name() == DriverSQLite {
		return "CAST(strftime('%Y', t.date) AS INTEGER)", "CAST(strftime('%m', t.date) AS INTEGER)"
	}
	return "CAST(EXTRACT(YEAR FROM t.date) AS INTEGER)", "CAST(EXTRACT(MONTH FROM t.date) AS INTEGER)"
}

// notFoundOr maps gorm.ErrRecordNotFound to a domain not-found error and
// wraps every other error.
func notFoundOr(err error, entity, key string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NewNotFoundError(entity, key)
	}
	return fmt.Errorf("find %s: %w", entity, err)
}
