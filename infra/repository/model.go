// Package repository contains the gorm-backed implementations of the storage
// contracts in pkg/repository, plus the unit of work that scopes them to a
// database transaction.
package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/securebank/ledger/pkg/domain"
	"github.com/shopspring/decimal"
)

// Account is the accounts table row.
type Account struct {
	ID            uint            `gorm:"primaryKey"`
	AccountNumber string          `gorm:"uniqueIndex;size:20;not null"`
	AccountType   string          `gorm:"size:20;not null"`
	Balance       decimal.Decimal `gorm:"type:numeric(15,2);not null"`
	Currency      string          `gorm:"size:3;not null;default:'INR'"`
	Status        string          `gorm:"size:20;not null"`
	UserID        uint            `gorm:"index;not null"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string { return "accounts" }

// Transaction is the transactions table row. Rows are append-only: once the
// status turns terminal nothing changes.
type Transaction struct {
	ID                uint            `gorm:"primaryKey"`
	TransactionID     string          `gorm:"uniqueIndex;size:50;not null"`
	TransactionType   string          `gorm:"size:20;not null"`
	Amount            decimal.Decimal `gorm:"type:numeric(15,2);not null"`
	Fee               decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Description       string          `gorm:"size:500"`
	FromAccountNumber *string         `gorm:"index;size:20"`
	ToAccountNumber   *string         `gorm:"index;size:20"`
	Status            string          `gorm:"size:20;not null"`
	CreatedAt         time.Time       `gorm:"not null"`
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string { return "transactions" }

// User is the users table row.
type User struct {
	ID        uint      `gorm:"primaryKey"`
	Username  string    `gorm:"uniqueIndex;size:50;not null"`
	Email     string    `gorm:"uniqueIndex;size:255;not null"`
	Password  string    `gorm:"size:255;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string { return "users" }

// AuditLog is the audit_logs table row.
type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uint      `gorm:"index;not null"`
	Action     string    `gorm:"size:50;not null"`
	EntityType string    `gorm:"size:20;not null"`
	EntityID   uint      `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName specifies the table name for the AuditLog model.
func (AuditLog) TableName() string { return "audit_logs" }

// Models lists every table for automigration.
func Models() []any {
	return []any{&Account{}, &Transaction{}, &User{}, &AuditLog{}}
}

func accountToDomain(m *Account) *domain.Account {
	return &domain.Account{
		ID:            m.ID,
		AccountNumber: m.AccountNumber,
		AccountType:   domain.AccountType(m.AccountType),
		Balance:       m.Balance,
		Currency:      m.Currency,
		Status:        domain.AccountStatus(m.Status),
		UserID:        m.UserID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func accountFromDomain(a *domain.Account) *Account {
	return &Account{
		ID:            a.ID,
		AccountNumber: a.AccountNumber,
		AccountType:   string(a.AccountType),
		Balance:       a.Balance,
		Currency:      a.Currency,
		Status:        string(a.Status),
		UserID:        a.UserID,
	}
}

func transactionToDomain(m *Transaction) *domain.Transaction {
	t := &domain.Transaction{
		ID:              m.ID,
		TransactionID:   m.TransactionID,
		TransactionType: domain.TransactionType(m.TransactionType),
		Amount:          m.Amount,
		Fee:             m.Fee,
		Description:     m.Description,
		Status:          domain.TransactionStatus(m.Status),
		CreatedAt:       m.CreatedAt,
	}
	if m.FromAccountNumber != nil {
		t.FromAccountNumber = *m.FromAccountNumber
	}
	if m.ToAccountNumber != nil {
		t.ToAccountNumber = *m.ToAccountNumber
	}
	return t
}

func transactionFromDomain(t *domain.Transaction) *Transaction {
	m := &Transaction{
		ID:              t.ID,
		TransactionID:   t.TransactionID,
		TransactionType: string(t.TransactionType),
		Amount:          t.Amount,
		Fee:             t.Fee,
		Description:     t.Description,
		Status:          string(t.Status),
	}
	if t.FromAccountNumber != "" {
		m.FromAccountNumber = &t.FromAccountNumber
	}
	if t.ToAccountNumber != "" {
		m.ToAccountNumber = &t.ToAccountNumber
	}
	return m
}

func userToDomain(m *User) *domain.User {
	return &domain.User{
		ID:        m.ID,
		Username:  m.Username,
		Email:     m.Email,
		Password:  m.Password,
		CreatedAt: m.CreatedAt,
	}
}
