// Package dto defines the wire-level request and response shapes shared by
// the HTTP handlers and the service layer.
package dto

import "github.com/shopspring/decimal"

// RegisterRequest creates a user at the authentication boundary.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest exchanges credentials for a bearer token.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateAccountRequest opens a new account. Currency defaults to INR when
// omitted.
type CreateAccountRequest struct {
	AccountType string `json:"accountType" validate:"required"`
	Currency    string `json:"currency" validate:"omitempty,len=3,alpha"`
}

// UpdateStatusRequest requests an account lifecycle transition.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// DepositRequest credits an account.
type DepositRequest struct {
	AccountID   uint            `json:"accountId" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Description string          `json:"description" validate:"omitempty,max=500"`
}

// WithdrawRequest debits an account. The configured withdrawal fee is
// deducted on top of the amount.
type WithdrawRequest struct {
	AccountID   uint            `json:"accountId" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Description string          `json:"description" validate:"omitempty,max=500"`
}

// TransferRequest moves money between two accounts. The destination is
// addressed by account number, so transfers work across owners.
type TransferRequest struct {
	FromAccountID   uint            `json:"fromAccountId" validate:"required"`
	ToAccountNumber string          `json:"toAccountNumber" validate:"required,len=16,numeric"`
	Amount          decimal.Decimal `json:"amount" validate:"required"`
	Description     string          `json:"description" validate:"omitempty,max=500"`
}
