package transaction_test

import (
	"context"
	"sync"
	"testing"

	infrarepo "github.com/securebank/ledger/infra/repository"
	"github.com/securebank/ledger/internal/testutil"
	"github.com/securebank/ledger/pkg/domain"
	"github.com/securebank/ledger/pkg/repository"
	txnsvc "github.com/securebank/ledger/pkg/service/transaction"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func defaultPolicy() txnsvc.Policy {
	return txnsvc.Policy{
		WithdrawFee: decimal.NewFromInt(5),
		TransferFee: decimal.NewFromInt(10),
		DailyLimit:  decimal.NewFromInt(100000),
		MinBalance:  decimal.Zero,
	}
}

func newService(t *testing.T, policy txnsvc.Policy) (*txnsvc.Service, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	svc := txnsvc.New(infrarepo.NewUoW(db), policy, testutil.DiscardLogger())
	return svc, db
}

func balanceOf(t *testing.T, db *gorm.DB, accountID uint) decimal.Decimal {
	t.Helper()
	a, err := infrarepo.NewAccountRepository(db).Get(context.Background(), accountID)
	require.NoError(t, err)
	return a.Balance
}

func TestDeposit(t *testing.T) {
	assert := assert.New(t)
	svc, db := newService(t, defaultPolicy())
	u := testutil.SeedUser(t, db, "alice", "password123")
	a := testutil.SeedAccount(t, db, u.ID, decimal.Zero, domain.AccountStatusActive)

	amount := decimal.RequireFromString("150.75")
	txn, err := svc.Deposit(context.Background(), u.ID, a.ID, amount, "salary")
	require.NoError(t, err)

	assert.Equal(domain.TransactionTypeDeposit, txn.TransactionType)
	assert.Equal(domain.TransactionStatusCompleted, txn.Status)
	assert.Equal(a.AccountNumber, txn.ToAccountNumber)
	assert.Empty(txn.FromAccountNumber)
	assert.True(txn.Fee.IsZero())
	assert.True(balanceOf(t, db, a.ID).Equal(amount))
}

func TestDepositNonPositiveAmount(t *testing.T) {
	svc, db := newService(t, defaultPolicy())
	u := testutil.SeedUser(t, db, "alice", "password123")
	a := testutil.SeedAccount(t, db, u.ID, decimal.Zero, domain.AccountStatusActive)
	ctx := context.Background()

	_, err := svc.Deposit(ctx, u.ID, a.ID, decimal.Zero, "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = svc.Deposit(ctx, u.ID, a.ID, decimal.NewFromInt(-10), "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestDepositFrozenAccount(t *testing.T) {
	svc, db := newService(t, defaultPolicy())
	u := testutil.SeedUser(t, db, "alice", "password123")
	a := testutil.SeedAccount(t, db, u.ID, decimal.Zero, domain.AccountStatusFrozen)
	ctx := context.Background()

	_, err := svc.Deposit(ctx, u.ID, a.ID, decimal.NewFromInt(10), "")
	assert.ErrorIs(t, err, domain.ErrAccountFrozen)

	// Reactivating lifts the gate.
	accounts := infrarepo.NewAccountRepository(db)
	require.NoError(t, accounts.UpdateStatus(ctx, a.ID, domain.AccountStatusActive))

	_, err = svc.Deposit(ctx, u.ID, a.ID, decimal.NewFromInt(10), "")
	assert.NoError(t, err)
}

func TestDepositClosedAccount(t *testing.T) {
	svc, db := newService(t, defaultPolicy())
	u := testutil.SeedUser(t, db, "alice", "password123")
	a := testutil.SeedAccount(t, db, u.ID, decimal.Zero, domain.AccountStatusClosed)

	_, err := svc.Deposit(context.Background(), u.ID, a.ID, decimal.NewFromInt(10), "")
	assert.ErrorIs(t, err, domain.ErrAccountNotActive)
}

func TestDepositNotOwned(t *testing.T) {
	svc, db := newService(t, defaultPolicy())
	alice := testutil.SeedUser(t, db, "alice", "password123")
	bob := testutil.SeedUser(t, db, "bob", "password123")
	a := testutil.SeedAccount(t, db, alice.ID, decimal.Zero, domain.AccountStatusActive)

	_, err := svc.Deposit(context.Background(), bob.ID, a.ID, decimal.NewFromInt(10), "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWithdraw(t *testing.T) {
	assert := assert.New(t)
	svc, db := newService(t, defaultPolicy())
	u := testutil.SeedUser(t, db, "alice", "password123")
	a := testutil.SeedAccount(t, db, u.ID, decimal.NewFromInt(100), domain.AccountStatusActive)

	txn, err := svc.Withdraw(context.Background(), u.ID, a.ID, decimal.NewFromInt(50), "rent")
	require.NoError(t, err)

	assert.Equal(domain.TransactionTypeWithdraw, txn.TransactionType)
	assert.Equal(domain.TransactionStatusCompleted, txn.Status)
	assert.Equal(a.AccountNumber, txn.FromAccountNumber)
	assert.True(txn.Fee.Equal(decimal.NewFromInt(5)))
	// 100 - 50 - 5 fee.
	assert.True(balanceOf(t, db, a.ID).Equal(decimal.NewFromInt(45)))
}

func TestWithdrawInsufficientFunds(t *testing.T) {
	svc, db := newService(t, defaultPolicy())
	u := testutil.SeedUser(t, db, "alice", "password123")
	a := testutil.SeedAccount(t, db, u.ID, decimal.NewFromInt(40), domain.AccountStatusActive)

	_, err := svc.Withdraw(context.Background(), u.ID, a.ID, decimal.NewFromInt(50), "")
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	// The failed attempt leaves no trace: balance and ledger are untouched.
	assert.True(t, balanceOf(t, db, a.ID).Equal(decimal.NewFromInt(40)))
	var count int64
	require.NoError(t, db.Model(&infrarepo.Transaction{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestWithdrawExactBalanceWithFee(t *testing.T) {
	svc, db := newService(t, defaultPolicy())
	u := testutil.SeedUser(t, db, "alice", "password123")
	a := testutil.SeedAccount(t, db, u.ID, decimal.NewFromInt(55), domain.AccountStatusActive)

	_, err := svc.Withdraw(context.Background(), u.ID, a.ID, decimal.NewFromInt(50), "")
	require.NoError(t, err)
	assert.True(t, balanceOf(t, db, a.ID).IsZero())
}

func TestWithdrawMinimumBalance(t *testing.T) {
	policy := defaultPolicy()
	policy.MinBalance = decimal.NewFromInt(100)
	svc, db := newService(t, policy)
	u := testutil.SeedUser(t, db, "alice", "password123")
	a := testutil.SeedAccount(t, db, u.ID, decimal.NewFromInt(120), domain.AccountStatusActive)

	_, err := svc.Withdraw(context.Background(), u.ID, a.ID, decimal.NewFromInt(20), "")
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

func TestWithdrawDailyLimit(t *testing.T) {
	policy := defaultPolicy()
	policy.DailyLimit = decimal.NewFromInt(100)
	svc, db := newService(t, policy)
	u := testutil.SeedUser(t, db, "alice", "password123")
	a := testutil.SeedAccount(t, db, u.ID, decimal.NewFromInt(1000), domain.AccountStatusActive)
	ctx := context.Background()

	_, err := svc.Withdraw(ctx, u.ID, a.ID, decimal.NewFromInt(60), "")
	require.NoError(t, err)

	_, err = svc.Withdraw(ctx, u.ID, a.ID, decimal.NewFromInt(60), "")
	assert.ErrorIs(t, err, domain.ErrDailyLimitExceeded)

	// Staying within the limit still works.
	_, err = svc.Withdraw(ctx, u.ID, a.ID, decimal.NewFromInt(40), "")
	assert.NoError(t, err)
}

func TestTransfer(t *testing.T) {
	assert := assert.New(t)
	svc, db := newService(t, defaultPolicy())
	alice := testutil.SeedUser(t, db, "alice", "password123")
	bob := testutil.SeedUser(t, db, "bob", "password123")
	src := testutil.SeedAccount(t, db, alice.ID, decimal.NewFromInt(200), domain.AccountStatusActive)
	dst := testutil.SeedAccount(t, db, bob.ID, decimal.Zero, domain.AccountStatusActive)

	txn, err := svc.Transfer(context.Background(), alice.ID, src.ID, dst.AccountNumber, decimal.NewFromInt(50), "gift")
	require.NoError(t, err)

	assert.Equal(domain.TransactionTypeTransfer, txn.TransactionType)
	assert.Equal(domain.TransactionStatusCompleted, txn.Status)
	assert.Equal(src.AccountNumber, txn.FromAccountNumber)
	assert.Equal(dst.AccountNumber, txn.ToAccountNumber)
	assert.True(txn.Fee.Equal(decimal.NewFromInt(10)))

	// Sender pays amount plus fee, receiver gets the amount.
	assert.True(balanceOf(t, db, src.ID).Equal(decimal.NewFromInt(140)))
	assert.True(balanceOf(t, db, dst.ID).Equal(decimal.NewFromInt(50)))

	// Both parties get an audit record.
	var actions []string
	require.NoError(t, db.Model(&infrarepo.AuditLog{}).Order("created_at").Pluck("action", &actions).Error)
	assert.Contains(actions, "TRANSFER_OUT")
	assert.Contains(actions, "TRANSFER_IN")
}

func TestTransferToSelf(t *testing.T) {
	svc, db := newService(t, defaultPolicy())
	u := testutil.SeedUser(t, db, "alice", "password123")
	a := testutil.SeedAccount(t, db, u.ID, decimal.NewFromInt(100), domain.AccountStatusActive)

	_, err := svc.Transfer(context.Background(), u.ID, a.ID, a.AccountNumber, decimal.NewFromInt(10), "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestTransferUnknownDestination(t *testing.T) {
	svc, db := newService(t, defaultPolicy())
	u := testutil.SeedUser(t, db, "alice", "password123")
	a := testutil.SeedAccount(t, db, u.ID, decimal.NewFromInt(100), domain.AccountStatusActive)

	_, err := svc.Transfer(context.Background(), u.ID, a.ID, "0000000000000000", decimal.NewFromInt(10), "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransferForeignSource(t *testing.T) {
	svc, db := newService(t, defaultPolicy())
	alice := testutil.SeedUser(t, db, "alice", "password123")
	bob := testutil.SeedUser(t, db, "bob", "password123")
	src := testutil.SeedAccount(t, db, alice.ID, decimal.NewFromInt(100), domain.AccountStatusActive)
	dst := testutil.SeedAccount(t, db, bob.ID, decimal.Zero, domain.AccountStatusActive)

	_, err := svc.Transfer(context.Background(), bob.ID, src.ID, dst.AccountNumber, decimal.NewFromInt(10), "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransferFrozenDestination(t *testing.T) {
	svc, db := newService(t, defaultPolicy())
	alice := testutil.SeedUser(t, db, "alice", "password123")
	bob := testutil.SeedUser(t, db, "bob", "password123")
	src := testutil.SeedAccount(t, db, alice.ID, decimal.NewFromInt(100), domain.AccountStatusActive)
	dst := testutil.SeedAccount(t, db, bob.ID, decimal.Zero, domain.AccountStatusFrozen)

	_, err := svc.Transfer(context.Background(), alice.ID, src.ID, dst.AccountNumber, decimal.NewFromInt(10), "")
	assert.ErrorIs(t, err, domain.ErrAccountFrozen)
}

func TestTransferCurrencyMismatch(t *testing.T) {
	svc, db := newService(t, defaultPolicy())
	alice := testutil.SeedUser(t, db, "alice", "password123")
	bob := testutil.SeedUser(t, db, "bob", "password123")
	src := testutil.SeedAccount(t, db, alice.ID, decimal.NewFromInt(100), domain.AccountStatusActive)
	dst := testutil.SeedAccount(t, db, bob.ID, decimal.Zero, domain.AccountStatusActive)
	require.NoError(t, db.Model(&infrarepo.Account{}).Where("id = ?", dst.ID).Update("currency", "USD").Error)

	_, err := svc.Transfer(context.Background(), alice.ID, src.ID, dst.AccountNumber, decimal.NewFromInt(10), "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestTransferInsufficientRollsBack(t *testing.T) {
	svc, db := newService(t, defaultPolicy())
	alice := testutil.SeedUser(t, db, "alice", "password123")
	bob := testutil.SeedUser(t, db, "bob", "password123")
	src := testutil.SeedAccount(t, db, alice.ID, decimal.NewFromInt(55), domain.AccountStatusActive)
	dst := testutil.SeedAccount(t, db, bob.ID, decimal.Zero, domain.AccountStatusActive)

	// 50 + 10 fee exceeds the 55 balance.
	_, err := svc.Transfer(context.Background(), alice.ID, src.ID, dst.AccountNumber, decimal.NewFromInt(50), "")
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	assert.True(t, balanceOf(t, db, src.ID).Equal(decimal.NewFromInt(55)))
	assert.True(t, balanceOf(t, db, dst.ID).IsZero())
	var count int64
	require.NoError(t, db.Model(&infrarepo.Transaction{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestConcurrentDeposits(t *testing.T) {
	svc, db := newService(t, defaultPolicy())
	u := testutil.SeedUser(t, db, "alice", "password123")
	a := testutil.SeedAccount(t, db, u.ID, decimal.Zero, domain.AccountStatusActive)

	amounts := []int64{100, 50}
	var wg sync.WaitGroup
	errs := make([]error, len(amounts))
	for i, amount := range amounts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.Deposit(context.Background(), u.ID, a.ID, decimal.NewFromInt(amount), "")
		}()
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.True(t, balanceOf(t, db, a.ID).Equal(decimal.NewFromInt(150)))
}

func TestGetByTransactionID(t *testing.T) {
	svc, db := newService(t, defaultPolicy())
	alice := testutil.SeedUser(t, db, "alice", "password123")
	bob := testutil.SeedUser(t, db, "bob", "password123")
	a := testutil.SeedAccount(t, db, alice.ID, decimal.Zero, domain.AccountStatusActive)
	ctx := context.Background()

	created, err := svc.Deposit(ctx, alice.ID, a.ID, decimal.NewFromInt(10), "")
	require.NoError(t, err)

	got, err := svc.GetByTransactionID(ctx, alice.ID, created.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	// Strangers cannot see it, and the error does not reveal its existence.
	_, err = svc.GetByTransactionID(ctx, bob.ID, created.TransactionID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GetByTransactionID(ctx, alice.ID, "TXN00000000000000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListFiltered(t *testing.T) {
	assert := assert.New(t)
	svc, db := newService(t, defaultPolicy())
	u := testutil.SeedUser(t, db, "alice", "password123")
	a := testutil.SeedAccount(t, db, u.ID, decimal.NewFromInt(500), domain.AccountStatusActive)
	ctx := context.Background()

	_, err := svc.Deposit(ctx, u.ID, a.ID, decimal.NewFromInt(100), "")
	require.NoError(t, err)
	_, err = svc.Withdraw(ctx, u.ID, a.ID, decimal.NewFromInt(20), "")
	require.NoError(t, err)

	all, err := svc.List(ctx, u.ID, repository.TransactionFilter{}, 0, 20)
	require.NoError(t, err)
	assert.Equal(int64(2), all.TotalElements)

	deposits := domain.TransactionTypeDeposit
	byType, err := svc.List(ctx, u.ID, repository.TransactionFilter{Type: &deposits}, 0, 20)
	require.NoError(t, err)
	require.Len(t, byType.Content, 1)
	assert.Equal(domain.TransactionTypeDeposit, byType.Content[0].TransactionType)

	pending := domain.TransactionStatusPending
	byStatus, err := svc.List(ctx, u.ID, repository.TransactionFilter{Status: &pending}, 0, 20)
	require.NoError(t, err)
	assert.Empty(byStatus.Content)

	_, err = svc.List(ctx, u.ID, repository.TransactionFilter{}, -1, 20)
	assert.ErrorIs(err, domain.ErrInvalidArgument)
}
