package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/parish/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// BankModel is the persistence model for a parish bank or cash account.
type BankModel struct {
	ParishModel
	Name           string          `gorm:"type:varchar(100);not null;index"`
	OpeningBalance decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CurrentBalance decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (BankModel) TableName() string {
	return "banks"
}

// ToDomain converts the persistence model to a domain Bank.
func (m *BankModel) ToDomain() ledger.Bank {
	return ledger.Bank{
		ID:             m.ID,
		ParishID:       m.ParishID,
		Name:           m.Name,
		OpeningBalance: m.OpeningBalance,
		CurrentBalance: m.CurrentBalance,
	}
}

// BankModelFromDomain builds a persistence model from a domain Bank.
func BankModelFromDomain(b ledger.Bank) *BankModel {
	return &BankModel{
		ParishModel:    newParishModel(b.ID, b.ParishID),
		Name:           b.Name,
		OpeningBalance: b.OpeningBalance,
		CurrentBalance: b.CurrentBalance,
	}
}

// TransactionHeadModel is the persistence model for an income/expense head.
type TransactionHeadModel struct {
	ParishModel
	HeadName          string           `gorm:"type:varchar(150);not null;index"`
	Type              ledger.HeadType  `gorm:"type:varchar(10);not null;default:'BOTH'"`
	AramanaPercentage *decimal.Decimal `gorm:"type:decimal(7,4)"`
	Description       string           `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (TransactionHeadModel) TableName() string {
	return "transaction_heads"
}

// ToDomain converts the persistence model to a domain TransactionHead.
func (m *TransactionHeadModel) ToDomain() ledger.TransactionHead {
	return ledger.TransactionHead{
		ID:             m.ID,
		ParishID:       m.ParishID,
		Name:           m.HeadName,
		Type:           m.Type,
		AramanaPercent: m.AramanaPercentage,
		Description:    m.Description,
	}
}

// TransactionHeadModelFromDomain builds a persistence model from a domain head.
func TransactionHeadModelFromDomain(h ledger.TransactionHead) *TransactionHeadModel {
	return &TransactionHeadModel{
		ParishModel:       newParishModel(h.ID, h.ParishID),
		HeadName:          h.Name,
		Type:              h.Type,
		AramanaPercentage: h.AramanaPercent,
		Description:       h.Description,
	}
}

// TransactionModel is the persistence model for a ledger entry.
type TransactionModel struct {
	ParishModel
	Date            time.Time              `gorm:"type:date;not null;index"`
	VoucherNumber   string                 `gorm:"type:varchar(50)"`
	TransactionType ledger.TransactionType `gorm:"type:varchar(10);not null"`
	HeadID          *uuid.UUID             `gorm:"type:uuid;index"`
	FamilyID        *uuid.UUID             `gorm:"type:uuid;index"`
	BankID          *uuid.UUID             `gorm:"type:uuid;index"`
	IncomeAmount    decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	ExpenseAmount   decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	Description     string                 `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}

// TransactionModelFromDomain builds a persistence model from a domain
// Transaction. A nil HeadID is stored as NULL.
func TransactionModelFromDomain(t ledger.Transaction) *TransactionModel {
	m := &TransactionModel{
		ParishModel:     newParishModel(t.ID, t.ParishID),
		Date:            ledger.Day(t.Date),
		VoucherNumber:   t.VoucherNumber,
		TransactionType: t.Type,
		FamilyID:        t.FamilyID,
		BankID:          t.BankID,
		IncomeAmount:    t.IncomeAmount,
		ExpenseAmount:   t.ExpenseAmount,
		Description:     t.Description,
	}
	if t.HeadID != uuid.Nil {
		head := t.HeadID
		m.HeadID = &head
	}
	return m
}

// TransactionRow is a transaction joined with its head and bank names.
type TransactionRow struct {
	TransactionModel
	HeadName string
	BankName string
}

// ToDomain converts the joined row to a domain Transaction.
func (r *TransactionRow) ToDomain() ledger.Transaction {
	t := ledger.Transaction{
		ID:            r.ID,
		ParishID:      r.ParishID,
		Date:          ledger.Day(r.Date),
		VoucherNumber: r.VoucherNumber,
		Type:          r.TransactionType,
		HeadName:      r.HeadName,
		FamilyID:      r.FamilyID,
		BankID:        r.BankID,
		BankName:      r.BankName,
		IncomeAmount:  r.IncomeAmount,
		ExpenseAmount: r.ExpenseAmount,
		Description:   r.Description,
	}
	if r.HeadID != nil {
		t.HeadID = *r.HeadID
	}
	return t
}
