package models

import (
	"github.com/google/uuid"
	"github.com/parish/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// UnitModel is a prayer unit (ward) grouping families.
type UnitModel struct {
	ParishModel
	Name string `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (UnitModel) TableName() string {
	return "units"
}

// FamilyModel is the persistence model for a registered family.
type FamilyModel struct {
	ParishModel
	FamilyNumber string     `gorm:"type:varchar(30);not null;index"`
	FamilyName   string     `gorm:"type:varchar(150);not null"`
	HeadName     string     `gorm:"type:varchar(150)"`
	UnitID       *uuid.UUID `gorm:"type:uuid;index"`
	Status       string     `gorm:"type:varchar(20);not null;default:'Live';index"`
}

// TableName returns the table name for GORM
func (FamilyModel) TableName() string {
	return "families"
}

// FamilyModelFromDomain builds a persistence model from a domain Family.
func FamilyModelFromDomain(f ledger.Family) *FamilyModel {
	return &FamilyModel{
		ParishModel:  newParishModel(f.ID, f.ParishID),
		FamilyNumber: f.Number,
		FamilyName:   f.Name,
		HeadName:     f.HeadName,
		UnitID:       f.UnitID,
		Status:       f.Status,
	}
}

// FamilyRow is a family joined with its unit name.
type FamilyRow struct {
	FamilyModel
	UnitName string
}

// ToDomain converts the joined row to a domain Family.
func (r *FamilyRow) ToDomain() ledger.Family {
	return ledger.Family{
		ID:       r.ID,
		ParishID: r.ParishID,
		Number:   r.FamilyNumber,
		Name:     r.FamilyName,
		HeadName: r.HeadName,
		UnitID:   r.UnitID,
		UnitName: r.UnitName,
		Status:   r.Status,
	}
}

// FamilyDueModel is the carried-forward due of a family against one head.
type FamilyDueModel struct {
	ParishModel
	FamilyID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_family_due_head,priority:1"`
	HeadID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_family_due_head,priority:2"`
	OpeningBalance decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (FamilyDueModel) TableName() string {
	return "family_dues"
}

// ToDomain converts the persistence model to a domain FamilyDue.
func (m *FamilyDueModel) ToDomain() ledger.FamilyDue {
	return ledger.FamilyDue{
		FamilyID:       m.FamilyID,
		HeadID:         m.HeadID,
		ParishID:       m.ParishID,
		OpeningBalance: m.OpeningBalance,
	}
}

// FamilyDueModelFromDomain builds a persistence model from a domain FamilyDue.
func FamilyDueModelFromDomain(d ledger.FamilyDue) *FamilyDueModel {
	return &FamilyDueModel{
		ParishModel:    newParishModel(uuid.Nil, d.ParishID),
		FamilyID:       d.FamilyID,
		HeadID:         d.HeadID,
		OpeningBalance: d.OpeningBalance,
	}
}

// All returns every ledger model in dependency order, for AutoMigrate in
// tests and local SQLite databases.
func All() []any {
	return []any{
		&BankModel{},
		&TransactionHeadModel{},
		&UnitModel{},
		&FamilyModel{},
		&FamilyDueModel{},
		&TransactionModel{},
	}
}
