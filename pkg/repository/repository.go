// Package repository defines the storage contracts of the ledger core and the
// unit of work that binds them into one transaction boundary.
package repository

import (
	"context"
	"time"

	"github.com/securebank/ledger/pkg/domain"
	"github.com/shopspring/decimal"
)

// AccountRepository is the account store. Account numbers are globally unique
// and never reused; uniqueness is enforced here.
type AccountRepository interface {
	Create(ctx context.Context, a *domain.Account) error
	Get(ctx context.Context, id uint) (*domain.Account, error)
	// GetForUpdate reads an account while taking its row lock, serializing
	// mutating operations per account for the rest of the transaction.
	GetForUpdate(ctx context.Context, id uint) (*domain.Account, error)
	GetByNumber(ctx context.Context, number string) (*domain.Account, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	// ListByUser returns the user's accounts ordered by creation time.
	ListByUser(ctx context.Context, userID uint) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, id uint, balance decimal.Decimal) error
	UpdateStatus(ctx context.Context, id uint, status domain.AccountStatus) error
}

// TransactionFilter narrows user transaction listings.
type TransactionFilter struct {
	Type   *domain.TransactionType
	Status *domain.TransactionStatus
	Start  *time.Time
	End    *time.Time
}

// TransactionRepository is the append-only ledger. Entries are created
// PENDING and move to exactly one terminal status; they are never deleted.
type TransactionRepository interface {
	// Create appends a PENDING entry and fills in its sequence id.
	Create(ctx context.Context, t *domain.Transaction) error
	// UpdateStatus transitions an entry guarded by its current status.
	// A transition whose guard does not match fails with ErrInvalidState.
	UpdateStatus(ctx context.Context, id uint, from, to domain.TransactionStatus) error
	GetByTransactionID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	// ListByAccount pages entries where the account participates as sender or
	// receiver, most recent first.
	ListByAccount(ctx context.Context, accountNumber string, offset, limit int) ([]*domain.Transaction, int64, error)
	ListByUser(ctx context.Context, userID uint, f TransactionFilter, offset, limit int) ([]*domain.Transaction, int64, error)
	// SumByTypeSince totals COMPLETED debits of the given type charged to the
	// account since the given instant. Used for daily limit checks.
	SumByTypeSince(ctx context.Context, accountNumber string, t domain.TransactionType, since time.Time) (decimal.Decimal, error)
	CountByUserSince(ctx context.Context, userID uint, since time.Time) (int64, error)
	CountPendingByUser(ctx context.Context, userID uint) (int64, error)
}

// UserRepository stores boundary identities.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, id uint) (*domain.User, error)
	// GetByIdentity resolves a username or email.
	GetByIdentity(ctx context.Context, identity string) (*domain.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}

// AuditRepository records audit events.
type AuditRepository interface {
	Record(ctx context.Context, e *domain.AuditEvent) error
}

// UnitOfWork provides repository access bound to a single database session.
// Do runs fn inside a transaction; every repository obtained from the
// UnitOfWork passed to fn shares that transaction, so either every write in fn
// commits or none do.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error
	AccountRepository() (AccountRepository, error)
	TransactionRepository() (TransactionRepository, error)
	UserRepository() (UserRepository, error)
	AuditRepository() (AuditRepository, error)
}
