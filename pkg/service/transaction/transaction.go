// Package transaction implements the transaction processor. Every money
// movement runs as one unit of work: the affected account rows are locked,
// a PENDING ledger entry is appended, balances are adjusted, and the entry is
// transitioned to COMPLETED — all committed atomically. A failed operation
// rolls the whole unit back, so the ledger and the account store never
// disagree.
package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/securebank/ledger/pkg/config"
	"github.com/securebank/ledger/pkg/domain"
	"github.com/securebank/ledger/pkg/dto"
	"github.com/securebank/ledger/pkg/repository"
	"github.com/shopspring/decimal"
)

const defaultPageSize = 20

// Policy holds the exact-decimal transaction policy derived from config.
type Policy struct {
	WithdrawFee decimal.Decimal
	TransferFee decimal.Decimal
	DailyLimit  decimal.Decimal
	MinBalance  decimal.Decimal
}

// PolicyFromConfig converts the float config knobs into exact decimals once.
func PolicyFromConfig(cfg config.Txn) Policy {
	return Policy{
		WithdrawFee: decimal.NewFromFloat(cfg.WithdrawFee),
		TransferFee: decimal.NewFromFloat(cfg.TransferFee),
		DailyLimit:  decimal.NewFromFloat(cfg.DailyLimit),
		MinBalance:  decimal.NewFromFloat(cfg.MinBalance),
	}
}

// Service validates and executes deposits, withdrawals and transfers.
type Service struct {
	uow    repository.UnitOfWork
	policy Policy
	logger *slog.Logger
	now    func() time.Time
}

// New creates a transaction processor.
func New(uow repository.UnitOfWork, policy Policy, logger *slog.Logger) *Service {
	return &Service{uow: uow, policy: policy, logger: logger, now: time.Now}
}

// Deposit credits the account. The ledger entry is COMPLETED and the balance
// reflects it before the call returns.
func (s *Service) Deposit(ctx context.Context, userID, accountID uint, amount decimal.Decimal, description string) (txn *domain.Transaction, err error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: deposit amount must be positive", domain.ErrInvalidArgument)
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acct, err := lockOwned(ctx, accounts, userID, accountID)
		if err != nil {
			return err
		}
		if err := acct.CanTransact(); err != nil {
			return err
		}
		txn = &domain.Transaction{
			TransactionID:   domain.NewTransactionID(),
			TransactionType: domain.TransactionTypeDeposit,
			Amount:          amount,
			Fee:             decimal.Zero,
			Description:     description,
			ToAccountNumber: acct.AccountNumber,
			Status:          domain.TransactionStatusPending,
		}
		return s.settle(ctx, uow, txn, userID, func() error {
			return accounts.UpdateBalance(ctx, acct.ID, acct.Balance.Add(amount))
		}, "DEPOSIT")
	})
	if err != nil {
		s.logger.Error("deposit failed", "accountID", accountID, "error", err)
		return nil, err
	}
	s.logger.Info("deposit completed", "accountID", accountID, "transactionID", txn.TransactionID)
	return txn, nil
}

// Withdraw debits the account by amount plus the withdrawal fee. The debit is
// rejected when it would overdraw the account, violate the minimum balance, or
// exceed the daily withdrawal limit.
func (s *Service) Withdraw(ctx context.Context, userID, accountID uint, amount decimal.Decimal, description string) (txn *domain.Transaction, err error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: withdrawal amount must be positive", domain.ErrInvalidArgument)
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acct, err := lockOwned(ctx, accounts, userID, accountID)
		if err != nil {
			return err
		}
		if err := acct.CanTransact(); err != nil {
			return err
		}
		if err := s.checkDebit(ctx, uow, acct, amount, s.policy.WithdrawFee, domain.TransactionTypeWithdraw); err != nil {
			return err
		}
		txn = &domain.Transaction{
			TransactionID:     domain.NewTransactionID(),
			TransactionType:   domain.TransactionTypeWithdraw,
			Amount:            amount,
			Fee:               s.policy.WithdrawFee,
			Description:       description,
			FromAccountNumber: acct.AccountNumber,
			Status:            domain.TransactionStatusPending,
		}
		return s.settle(ctx, uow, txn, userID, func() error {
			return accounts.UpdateBalance(ctx, acct.ID, acct.Balance.Sub(amount).Sub(s.policy.WithdrawFee))
		}, "WITHDRAW")
	})
	if err != nil {
		s.logger.Error("withdrawal failed", "accountID", accountID, "error", err)
		return nil, err
	}
	s.logger.Info("withdrawal completed", "accountID", accountID, "transactionID", txn.TransactionID)
	return txn, nil
}

// Transfer moves amount from one account to another, charging the transfer
// fee to the sender. Both accounts are locked in ascending id order so two
// opposing transfers cannot deadlock; both legs commit or neither does.
func (s *Service) Transfer(ctx context.Context, userID, fromAccountID uint, toAccountNumber string, amount decimal.Decimal, description string) (txn *domain.Transaction, err error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: transfer amount must be positive", domain.ErrInvalidArgument)
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		dest, err := accounts.GetByNumber(ctx, toAccountNumber)
		if err != nil {
			return err
		}
		if dest.ID == fromAccountID {
			return fmt.Errorf("%w: cannot transfer to the same account", domain.ErrInvalidArgument)
		}

		from, to, err := lockPair(ctx, accounts, fromAccountID, dest.ID)
		if err != nil {
			return err
		}
		if from.UserID != userID {
			return domain.ErrNotFound
		}
		if err := from.CanTransact(); err != nil {
			return err
		}
		if err := to.CanTransact(); err != nil {
			return err
		}
		if from.Currency != to.Currency {
			return fmt.Errorf("%w: cannot transfer between %s and %s accounts", domain.ErrInvalidArgument, from.Currency, to.Currency)
		}
		if err := s.checkDebit(ctx, uow, from, amount, s.policy.TransferFee, domain.TransactionTypeTransfer); err != nil {
			return err
		}

		txn = &domain.Transaction{
			TransactionID:     domain.NewTransactionID(),
			TransactionType:   domain.TransactionTypeTransfer,
			Amount:            amount,
			Fee:               s.policy.TransferFee,
			Description:       description,
			FromAccountNumber: from.AccountNumber,
			ToAccountNumber:   to.AccountNumber,
			Status:            domain.TransactionStatusPending,
		}
		err = s.settle(ctx, uow, txn, userID, func() error {
			if err := accounts.UpdateBalance(ctx, from.ID, from.Balance.Sub(amount).Sub(s.policy.TransferFee)); err != nil {
				return err
			}
			return accounts.UpdateBalance(ctx, to.ID, to.Balance.Add(amount))
		}, "TRANSFER_OUT")
		if err != nil {
			return err
		}
		audit, err := uow.AuditRepository()
		if err != nil {
			return err
		}
		return audit.Record(ctx, domain.NewAuditEvent(to.UserID, "TRANSFER_IN", "TRANSACTION", txn.ID))
	})
	if err != nil {
		s.logger.Error("transfer failed", "fromAccountID", fromAccountID, "error", err)
		return nil, err
	}
	s.logger.Info("transfer completed", "fromAccountID", fromAccountID, "transactionID", txn.TransactionID)
	return txn, nil
}

// GetByTransactionID returns a ledger entry by its external reference when the
// caller owns either side of it.
func (s *Service) GetByTransactionID(ctx context.Context, userID uint, transactionID string) (*domain.Transaction, error) {
	ledger, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	txn, err := ledger.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	accounts, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	owned, err := accounts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, a := range owned {
		if a.AccountNumber == txn.FromAccountNumber || a.AccountNumber == txn.ToAccountNumber {
			return txn, nil
		}
	}
	return nil, domain.ErrNotFound
}

// DefaultPageSize is the page size used when a listing omits one.
func (s *Service) DefaultPageSize() int {
	return defaultPageSize
}

// List pages the caller's transactions across all accounts, newest first,
// optionally filtered by type, status and time window.
func (s *Service) List(ctx context.Context, userID uint, f repository.TransactionFilter, page, size int) (dto.Page[*domain.Transaction], error) {
	var empty dto.Page[*domain.Transaction]
	if size <= 0 || page < 0 {
		return empty, fmt.Errorf("%w: invalid page parameters", domain.ErrInvalidArgument)
	}
	ledger, err := s.uow.TransactionRepository()
	if err != nil {
		return empty, err
	}
	content, total, err := ledger.ListByUser(ctx, userID, f, page*size, size)
	if err != nil {
		return empty, err
	}
	return dto.NewPage(content, page, size, total), nil
}

// settle appends the PENDING entry, applies the balance effect and completes
// the entry, recording an audit row, all on the surrounding transaction.
func (s *Service) settle(ctx context.Context, uow repository.UnitOfWork, txn *domain.Transaction, userID uint, applyBalance func() error, action string) error {
	ledger, err := uow.TransactionRepository()
	if err != nil {
		return err
	}
	if err := ledger.Create(ctx, txn); err != nil {
		return err
	}
	if err := applyBalance(); err != nil {
		return err
	}
	if err := ledger.UpdateStatus(ctx, txn.ID, domain.TransactionStatusPending, domain.TransactionStatusCompleted); err != nil {
		return err
	}
	txn.Status = domain.TransactionStatusCompleted

	audit, err := uow.AuditRepository()
	if err != nil {
		return err
	}
	return audit.Record(ctx, domain.NewAuditEvent(userID, action, "TRANSACTION", txn.ID))
}

// checkDebit enforces the no-overdraft, minimum-balance and daily-limit rules
// for a debit of amount plus fee against the given account.
func (s *Service) checkDebit(ctx context.Context, uow repository.UnitOfWork, acct *domain.Account, amount, fee decimal.Decimal, t domain.TransactionType) error {
	total := amount.Add(fee)
	if acct.Balance.LessThan(total) {
		return fmt.Errorf("%w: available %s, required %s", domain.ErrInsufficientFunds, acct.Balance, total)
	}
	if acct.Balance.Sub(total).LessThan(s.policy.MinBalance) {
		return fmt.Errorf("%w: balance would drop below the minimum of %s", domain.ErrInsufficientFunds, s.policy.MinBalance)
	}

	ledger, err := uow.TransactionRepository()
	if err != nil {
		return err
	}
	dayStart := s.now().UTC().Truncate(24 * time.Hour)
	daily, err := ledger.SumByTypeSince(ctx, acct.AccountNumber, t, dayStart)
	if err != nil {
		return err
	}
	if daily.Add(amount).GreaterThan(s.policy.DailyLimit) {
		return fmt.Errorf("%w: %s of %s already used today, limit %s", domain.ErrDailyLimitExceeded, t, daily, s.policy.DailyLimit)
	}
	return nil
}

func lockOwned(ctx context.Context, accounts repository.AccountRepository, userID, accountID uint) (*domain.Account, error) {
	acct, err := accounts.GetForUpdate(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if acct.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return acct, nil
}

// lockPair locks two accounts in ascending id order.
func lockPair(ctx context.Context, accounts repository.AccountRepository, fromID, toID uint) (from, to *domain.Account, err error) {
	first, second := fromID, toID
	if second < first {
		first, second = second, first
	}
	a, err := accounts.GetForUpdate(ctx, first)
	if err != nil {
		return nil, nil, err
	}
	b, err := accounts.GetForUpdate(ctx, second)
	if err != nil {
		return nil, nil, err
	}
	if a.ID == fromID {
		return a, b, nil
	}
	return b, a, nil
}
