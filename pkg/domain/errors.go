package domain

import "errors"

// Sentinel errors returned by the ledger core. Services wrap these with
// context via fmt.Errorf("%w: ...") so callers can match with errors.Is.
var (
	// ErrInvalidArgument is returned for malformed or out-of-range input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound is returned when an account, transaction or user does not
	// exist, or when the caller is not allowed to see that it exists.
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when creating a resource that already exists.
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrAccountFrozen is returned when a frozen account gates an operation.
	ErrAccountFrozen = errors.New("account is frozen")
	// ErrAccountNotActive is returned when a non-active (e.g. closed) account
	// gates a mutating operation.
	ErrAccountNotActive = errors.New("account is not active")
	// ErrInvalidTransition is returned for a disallowed account status change.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrInsufficientFunds is returned when a debit would drop the balance
	// below the permitted minimum. Overdraft is never allowed.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrDailyLimitExceeded is returned when a debit would exceed the
	// configured daily limit for its transaction type.
	ErrDailyLimitExceeded = errors.New("daily limit exceeded")
	// ErrInvalidState is returned on an illegal transaction state transition,
	// e.g. completing an already-terminal transaction. Under correct locking
	// this indicates a logic bug, not a user error.
	ErrInvalidState = errors.New("invalid transaction state")
	// ErrUnauthorized is returned when credentials cannot be resolved to a user.
	ErrUnauthorized = errors.New("unauthorized")
)
