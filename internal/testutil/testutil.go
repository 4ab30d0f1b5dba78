// Package testutil provides shared fixtures for database-backed tests: an
// isolated in-memory database with the full schema and seed helpers for users
// and accounts.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/securebank/ledger/infra/database"
	infrarepo "github.com/securebank/ledger/infra/repository"
	"github.com/securebank/ledger/pkg/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens an isolated in-memory sqlite database with the full schema.
// The pool is capped at one connection so sqlite serializes writers the way a
// server database would under row locks.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// DiscardLogger returns a logger whose output goes nowhere.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SeedUser inserts a user with a bcrypt hash of the given password.
func SeedUser(t *testing.T, db *gorm.DB, username, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &domain.User{Username: username, Email: username + "@example.com", Password: string(hash)}
	users := infrarepo.NewUserRepository(db)
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

// SeedAccount inserts an account with the given balance and status.
func SeedAccount(t *testing.T, db *gorm.DB, userID uint, balance decimal.Decimal, status domain.AccountStatus) *domain.Account {
	t.Helper()
	a := &domain.Account{
		AccountNumber: domain.NewAccountNumber(),
		AccountType:   domain.AccountTypeSavings,
		Balance:       balance,
		Currency:      domain.DefaultCurrency,
		Status:        status,
		UserID:        userID,
	}
	accounts := infrarepo.NewAccountRepository(db)
	require.NoError(t, accounts.Create(context.Background(), a))
	return a
}
