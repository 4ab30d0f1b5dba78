package domain

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a money movement.
type TransactionType string

const (
	TransactionTypeDeposit  TransactionType = "DEPOSIT"
	TransactionTypeWithdraw TransactionType = "WITHDRAW"
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

// ParseTransactionType validates a case-insensitive transaction type string.
func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(strings.ToUpper(s)); t {
	case TransactionTypeDeposit, TransactionTypeWithdraw, TransactionTypeTransfer:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown transaction type %q", ErrInvalidArgument, s)
	}
}

// TransactionStatus is the state of a ledger entry. COMPLETED and FAILED are
// terminal; an entry never re-enters PENDING.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// ParseTransactionStatus validates a case-insensitive transaction status string.
func ParseTransactionStatus(s string) (TransactionStatus, error) {
	switch st := TransactionStatus(strings.ToUpper(s)); st {
	case TransactionStatusPending, TransactionStatusCompleted, TransactionStatusFailed:
		return st, nil
	default:
		return "", fmt.Errorf("%w: unknown transaction status %q", ErrInvalidArgument, s)
	}
}

// IsTerminal reports whether the status permits no further transition.
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionStatusCompleted || s == TransactionStatusFailed
}

// CanTransitionTransaction reports whether a ledger entry may move between the
// given statuses. Only PENDING -> {COMPLETED, FAILED} is legal.
func CanTransitionTransaction(from, to TransactionStatus) bool {
	return from == TransactionStatusPending && to.IsTerminal()
}

// Transaction is an entry in the append-only ledger. ID is the internal
// sequence key; TransactionID is the externally stable reference. Accounts are
// referenced by number, never by internal id. Once the status is terminal the
// entry is an immutable fact.
type Transaction struct {
	ID                uint              `json:"id"`
	TransactionID     string            `json:"transactionId"`
	TransactionType   TransactionType   `json:"transactionType"`
	Amount            decimal.Decimal   `json:"amount"`
	Fee               decimal.Decimal   `json:"fee"`
	Description       string            `json:"description,omitempty"`
	FromAccountNumber string            `json:"fromAccountNumber,omitempty"`
	ToAccountNumber   string            `json:"toAccountNumber,omitempty"`
	Status            TransactionStatus `json:"status"`
	CreatedAt         time.Time         `json:"createdAt"`
}

// NewTransactionID generates the external transaction reference, e.g.
// TXN17259113004217 + 4 random digits.
func NewTransactionID() string {
	return fmt.Sprintf("TXN%d%04d", time.Now().UnixMilli(), rand.IntN(10000))
}
