package repository

import (
	"context"

	repo "github.com/securebank/ledger/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one abstraction.
// Repositories obtained inside Do share the transaction session, so balance
// mutation and ledger writes commit or roll back as a unit.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// Do runs fn in a database transaction, providing a UoW bound to it. Nested
// calls reuse the surrounding transaction.
func (u *UoW) Do(ctx context.Context, fn func(uow repo.UnitOfWork) error) error {
	return u.session().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// AccountRepository returns the account store bound to the current session.
func (u *UoW) AccountRepository() (repo.AccountRepository, error) {
	return NewAccountRepository(u.session()), nil
}

// TransactionRepository returns the ledger bound to the current session.
func (u *UoW) TransactionRepository() (repo.TransactionRepository, error) {
	return NewTransactionRepository(u.session()), nil
}

// UserRepository returns the user store bound to the current session.
func (u *UoW) UserRepository() (repo.UserRepository, error) {
	return NewUserRepository(u.session()), nil
}

// AuditRepository returns the audit log bound to the current session.
func (u *UoW) AuditRepository() (repo.AuditRepository, error) {
	return NewAuditRepository(u.session()), nil
}
