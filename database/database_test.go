package database

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"stocks-api/config"
	"stocks-api/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB opens a migrated SQLite database private to the test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	log, _ := test.NewNullLogger()
	cfg := config.Load()
	cfg.DBDriver = "sqlite"
	cfg.DBPath = filepath.Join(t.TempDir(), "test.db")

	db, err := config.InitDB(cfg, log)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func nullLogger() logrus.FieldLogger {
	log, _ := test.NewNullLogger()
	return log
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", PasswordHash: "x"}
	require.NoError(t, NewUserRepository(db).CreateWithRole(context.Background(), user, models.RoleUser))
	return user
}

func seedStock(t *testing.T, db *gorm.DB, symbol string) *models.Stock {
	t.Helper()
	stock := &models.Stock{
		Symbol:      symbol,
		CompanyName: symbol + " Inc",
		Purchase:    decimal.RequireFromString("100.50"),
		LastDiv:     decimal.RequireFromString("1.25"),
		Industry:    "Tech",
		MarketCap:   1000,
	}
	require.NoError(t, db.Create(stock).Error)
	return stock
}

func seedStocks(t *testing.T, db *gorm.DB, n int) []*models.Stock {
	t.Helper()
	out := make([]*models.Stock, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, seedStock(t, db, fmt.Sprintf("S%02d", i)))
	}
	return out
}

func TestMigrateSeedsRoles(t *testing.T) {
	db := setupTestDB(t)

	// seeding again must not duplicate the roles
	require.NoError(t, seedRoles(db))

	var roles []models.Role
	require.NoError(t, db.Order("name").Find(&roles).Error)
	require.Len(t, roles, 2)
	assert.Equal(t, models.RoleAdmin, roles[0].Name)
	assert.Equal(t, models.RoleUser, roles[1].Name)
}

func TestTransactionRollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	boom := errors.New("boom")

	err := Transaction(context.Background(), db, func(tx *gorm.DB) error {
		require.NoError(t, tx.Create(&models.Stock{Symbol: "TMP", CompanyName: "Temp"}).Error)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, db.Model(&models.Stock{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestTransactionRejectsNilFunc(t *testing.T) {
	db := setupTestDB(t)
	assert.ErrorIs(t, Transaction(context.Background(), db, nil), ErrInvalidTransaction)
}
