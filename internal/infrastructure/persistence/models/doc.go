// Package models contains GORM-specific persistence models that map to the
// parish ledger tables. The domain layer stays free of GORM tags: repositories
// read these models and convert them with ToDomain.
//
// Structure:
// - base.go: common columns (BaseModel, ParishModel)
// - ledger.go: banks, transaction heads, transactions
// - family.go: units, families, family dues
package models
