package testutil

import (
	"testing"

	"github.com/google/uuid"
	"github.com/parish/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteDB opens a private in-memory SQLite database with the ledger
// schema migrated. It is closed when the test ends.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to open sqlite database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...), "Failed to migrate sqlite schema")
	return db
}

// SeedLedger writes the contents of a MemoryLedger into db so that the same
// fixture can drive both the in-memory and the GORM reader.
func SeedLedger(t *testing.T, db *gorm.DB, m *MemoryLedger) {
	t.Helper()

	units := make(map[uuid.UUID]*models.UnitModel)
	for _, f := range m.Families {
		if f.UnitID == nil {
			continue
		}
		if _, ok := units[*f.UnitID]; ok {
			continue
		}
		u := &models.UnitModel{Name: f.UnitName}
		u.ID, u.ParishID = *f.UnitID, f.ParishID
		units[*f.UnitID] = u
		require.NoError(t, db.Create(u).Error)
	}
	for _, b := range m.Banks {
		require.NoError(t, db.Create(models.BankModelFromDomain(b)).Error)
	}
	for _, h := range m.Heads {
		require.NoError(t, db.Create(models.TransactionHeadModelFromDomain(h)).Error)
	}
	for _, f := range m.Families {
		require.NoError(t, db.Create(models.FamilyModelFromDomain(f)).Error)
	}
	for _, d := range m.Dues {
		require.NoError(t, db.Create(models.FamilyDueModelFromDomain(d)).Error)
	}
	for _, tx := range m.Transactions {
		require.NoError(t, db.Create(models.TransactionModelFromDomain(tx)).Error)
	}
}
