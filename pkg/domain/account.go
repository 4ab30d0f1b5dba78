// Package domain holds the entities and invariants of the account and
// transaction ledger core: accounts, the append-only transaction log, status
// transition rules and the shared error taxonomy.
package domain

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Money fields are rendered as raw JSON numbers ("balance": 150.75),
	// matching the wire contract.
	decimal.MarshalJSONWithoutQuotes = true
}

// AccountType is the product type of an account, fixed at creation.
type AccountType string

const (
	AccountTypeSavings  AccountType = "SAVINGS"
	AccountTypeCurrent  AccountType = "CURRENT"
	AccountTypeChecking AccountType = "CHECKING"
)

// ParseAccountType parses a case-insensitive account type string.
func ParseAccountType(s string) (AccountType, error) {
	switch t := AccountType(strings.ToUpper(s)); t {
	case AccountTypeSavings, AccountTypeCurrent, AccountTypeChecking:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown account type %q", ErrInvalidArgument, s)
	}
}

// AccountStatus is the lifecycle status of an account.
type AccountStatus string

const (
	AccountStatusActive AccountStatus = "ACTIVE"
	AccountStatusFrozen AccountStatus = "FROZEN"
	AccountStatusClosed AccountStatus = "CLOSED"
)

// ParseAccountStatus parses a case-insensitive account status string.
func ParseAccountStatus(s string) (AccountStatus, error) {
	switch st := AccountStatus(strings.ToUpper(s)); st {
	case AccountStatusActive, AccountStatusFrozen, AccountStatusClosed:
		return st, nil
	default:
		return "", fmt.Errorf("%w: unknown account status %q", ErrInvalidArgument, s)
	}
}

// allowedTransitions is the account status transition table. CLOSED is
// terminal; self-transitions are not allowed.
var allowedTransitions = map[AccountStatus][]AccountStatus{
	AccountStatusActive: {AccountStatusFrozen, AccountStatusClosed},
	AccountStatusFrozen: {AccountStatusActive, AccountStatusClosed},
	AccountStatusClosed: {},
}

// CanTransition reports whether an account may move from one status to another.
func CanTransition(from, to AccountStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// DefaultCurrency is applied when account creation omits a currency.
const DefaultCurrency = "INR"

// supportedCurrencies is the recognized currency set. Conversion between
// currencies is out of scope; the code only pins the unit of an account.
var supportedCurrencies = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "INR": true,
	"JPY": true, "AUD": true, "CAD": true, "SGD": true,
}

// ValidCurrency reports whether the given ISO 4217 code is supported.
func ValidCurrency(code string) bool {
	return supportedCurrencies[code]
}

// Account is a customer account. Balance is derived state: it always equals
// the sum of signed effects of COMPLETED transactions referencing the account,
// and is only ever advanced together with a ledger transition.
type Account struct {
	ID            uint            `json:"id"`
	AccountNumber string          `json:"accountNumber"`
	AccountType   AccountType     `json:"accountType"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
	Status        AccountStatus   `json:"status"`
	UserID        uint            `json:"-"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"-"`
}

// CanTransact returns the gating error for mutating operations, if any.
// Frozen accounts are reported distinctly from other non-active states.
func (a *Account) CanTransact() error {
	switch a.Status {
	case AccountStatusActive:
		return nil
	case AccountStatusFrozen:
		return fmt.Errorf("%w: account %s", ErrAccountFrozen, a.AccountNumber)
	default:
		return fmt.Errorf("%w: account %s is %s", ErrAccountNotActive, a.AccountNumber, a.Status)
	}
}

// NewAccountNumber generates a random 16-digit account number. Uniqueness is
// enforced by the account store; callers retry on collision.
func NewAccountNumber() string {
	n := rand.Int64N(9_000_000_000_000_000) + 1_000_000_000_000_000
	return fmt.Sprintf("%016d", n)
}
