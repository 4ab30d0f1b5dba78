// Package account implements the account lifecycle manager: creation, status
// transitions, balance reads and statement pagination. Mutations run inside a
// unit of work so account state and audit records commit together.
package account

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

// maxNumberAttempts bounds the retry loop for account number collisions.
const maxNumberAttempts = 5

// Service provides account lifecycle and read operations.
type Service struct {
	uow       repository.UnitOfWork
	statement config.Statement
	logger    *slog.Logger
}

// New creates an account service.
func New(uow repository.UnitOfWork, statement config.Statement, logger *slog.Logger) *Service {
	return &Service{uow: uow, statement: statement, logger: logger}
}

// CreateAccount opens a new ACTIVE account with a zero balance and a fresh
// unique account number. The currency defaults to INR when empty.
func (s *Service) CreateAccount(ctx context.Context, userID uint, accountType, currency string) (a *domain.Account, err error) {
	logger := s.logger.With("userID", userID, "accountType", accountType)

	parsedType, err := domain.ParseAccountType(accountType)
	if err != nil {
		return nil, err
	}
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	if !domain.ValidCurrency(currency) {
		return nil, fmt.Errorf("%w: unsupported currency %q", domain.ErrInvalidArgument, currency)
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		number, err := freshAccountNumber(ctx, accounts)
		if err != nil {
			return err
		}
		a = &domain.Account{
			AccountNumber: number,
			AccountType:   parsedType,
			Balance:       decimal.Zero,
			Currency:      currency,
			Status:        domain.AccountStatusActive,
			UserID:        userID,
		}
		if err := accounts.Create(ctx, a); err != nil {
			return err
		}
		return recordAudit(ctx, uow, userID, "ACCOUNT_CREATED", "ACCOUNT", a.ID)
	})
	if err != nil {
		logger.Error("account creation failed", "error", err)
		return nil, err
	}
	logger.Info("account created", "accountID", a.ID, "accountNumber", a.AccountNumber)
	return a, nil
}

// GetAccount returns the account if it exists and belongs to the caller. A
// foreign account is indistinguishable from a missing one.
func (s *Service) GetAccount(ctx context.Context, userID, accountID uint) (*domain.Account, error) {
	accounts, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	return getOwned(ctx, accounts, userID, accountID)
}

// ListAccounts returns the caller's accounts ordered by creation time.
func (s *Service) ListAccounts(ctx context.Context, userID uint) ([]*domain.Account, error) {
	accounts, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	return accounts.ListByUser(ctx, userID)
}

// GetBalance returns the account's current balance.
func (s *Service) GetBalance(ctx context.Context, userID, accountID uint) (decimal.Decimal, error) {
	a, err := s.GetAccount(ctx, userID, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return a.Balance, nil
}

// UpdateStatus applies an account lifecycle transition after validating it
// against the transition table. The new status is visible to the transaction
// processor as soon as this returns.
func (s *Service) UpdateStatus(ctx context.Context, userID, accountID uint, status string) (domain.AccountStatus, error) {
	newStatus, err := domain.ParseAccountStatus(status)
	if err != nil {
		return "", err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err := accounts.GetForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		if a.UserID != userID {
			return domain.ErrNotFound
		}
		if !domain.CanTransition(a.Status, newStatus) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, a.Status, newStatus)
		}
		if err := accounts.UpdateStatus(ctx, accountID, newStatus); err != nil {
			return err
		}
		return recordAudit(ctx, uow, userID, "ACCOUNT_STATUS_UPDATED", "ACCOUNT", accountID)
	})
	if err != nil {
		return "", err
	}
	s.logger.Info("account status updated", "accountID", accountID, "status", newStatus)
	return newStatus, nil
}

// GetStatement returns one page of the account's transaction history, most
// recent first. Size defaults are applied by the handler; a non-positive size,
// a size beyond the configured maximum, or a negative page is rejected.
func (s *Service) GetStatement(ctx context.Context, userID, accountID uint, page, size int) (dto.Page[*domain.Transaction], error) {
	var empty dto.Page[*domain.Transaction]
	if size <= 0 {
		return empty, fmt.Errorf("%w: page size must be positive", domain.ErrInvalidArgument)
	}
	if size > s.statement.MaxSize {
		return empty, fmt.Errorf("%w: page size exceeds maximum of %d", domain.ErrInvalidArgument, s.statement.MaxSize)
	}
	if page < 0 {
		return empty, fmt.Errorf("%w: page must not be negative", domain.ErrInvalidArgument)
	}

	accounts, err := s.uow.AccountRepository()
	if err != nil {
		return empty, err
	}
	a, err := getOwned(ctx, accounts, userID, accountID)
	if err != nil {
		return empty, err
	}
	ledger, err := s.uow.TransactionRepository()
	if err != nil {
		return empty, err
	}
	content, total, err := ledger.ListByAccount(ctx, a.AccountNumber, page*size, size)
	if err != nil {
		return empty, err
	}
	return dto.NewPage(content, page, size, total), nil
}

// Dashboard aggregates the caller's accounts and recent ledger activity.
func (s *Service) Dashboard(ctx context.Context, userID uint, since time.Time) (*dto.DashboardResponse, error) {
	accounts, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	owned, err := accounts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, a := range owned {
		total = total.Add(a.Balance)
	}
	ledger, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	recent, err := ledger.CountByUserSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	pending, err := ledger.CountPendingByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		TotalBalance:       total,
		TotalAccounts:      len(owned),
		RecentTransactions: recent,
		Pending:            pending,
	}, nil
}

// DefaultStatementSize exposes the configured default page size to handlers.
func (s *Service) DefaultStatementSize() int {
	return s.statement.DefaultSize
}

func getOwned(ctx context.Context, accounts repository.AccountRepository, userID, accountID uint) (*domain.Account, error) {
	a, err := accounts.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if a.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

func freshAccountNumber(ctx context.Context, accounts repository.AccountRepository) (string, error) {
	for range maxNumberAttempts {
		number := domain.NewAccountNumber()
		exists, err := accounts.ExistsByNumber(ctx, number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
	return "", fmt.Errorf("could not allocate a unique account number after %d attempts", maxNumberAttempts)
}

func recordAudit(ctx context.Context, uow repository.UnitOfWork, userID uint, action, entityType string, entityID uint) error {
	audit, err := uow.AuditRepository()
	if err != nil {
		return err
	}
	return audit.Record(ctx, domain.NewAuditEvent(userID, action, entityType, entityID))
}
