package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAccountType(t *testing.T) {
	assert := assert.New(t)

	got, err := ParseAccountType("savings")
	assert.NoError(err)
	assert.Equal(AccountTypeSavings, got)

	got, err = ParseAccountType("CURRENT")
	assert.NoError(err)
	assert.Equal(AccountTypeCurrent, got)

	_, err = ParseAccountType("premium")
	assert.ErrorIs(err, ErrInvalidArgument)
}

func TestParseAccountStatus(t *testing.T) {
	assert := assert.New(t)

	got, err := ParseAccountStatus("frozen")
	assert.NoError(err)
	assert.Equal(AccountStatusFrozen, got)

	_, err = ParseAccountStatus("SUSPENDED")
	assert.ErrorIs(err, ErrInvalidArgument)
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to AccountStatus
		want     bool
	}{
		{AccountStatusActive, AccountStatusFrozen, true},
		{AccountStatusActive, AccountStatusClosed, true},
		{AccountStatusFrozen, AccountStatusActive, true},
		{AccountStatusFrozen, AccountStatusClosed, true},
		{AccountStatusClosed, AccountStatusActive, false},
		{AccountStatusClosed, AccountStatusFrozen, false},
		{AccountStatusClosed, AccountStatusClosed, false},
		{AccountStatusActive, AccountStatusActive, false},
		{AccountStatusFrozen, AccountStatusFrozen, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CanTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}

func TestCanTransact(t *testing.T) {
	assert := assert.New(t)

	active := Account{Status: AccountStatusActive}
	assert.NoError(active.CanTransact())

	frozen := Account{Status: AccountStatusFrozen}
	assert.ErrorIs(frozen.CanTransact(), ErrAccountFrozen)

	closed := Account{Status: AccountStatusClosed}
	assert.ErrorIs(closed.CanTransact(), ErrAccountNotActive)
}

func TestValidCurrency(t *testing.T) {
	assert.True(t, ValidCurrency("INR"))
	assert.True(t, ValidCurrency("USD"))
	assert.False(t, ValidCurrency("XYZ"))
	assert.False(t, ValidCurrency(""))
}

func TestNewAccountNumber(t *testing.T) {
	assert := assert.New(t)

	seen := map[string]bool{}
	for range 100 {
		n := NewAccountNumber()
		assert.Len(n, 16)
		for _, r := range n {
			assert.True(r >= '0' && r <= '9', "non-digit in account number %q", n)
		}
		seen[n] = true
	}
	// Collisions across 100 draws from a 10^16 space would indicate a broken generator.
	assert.Len(seen, 100)
}
