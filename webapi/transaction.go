package webapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/securebank/ledger/pkg/config"
	"github.com/securebank/ledger/pkg/domain"
	"github.com/securebank/ledger/pkg/dto"
	"github.com/securebank/ledger/pkg/middleware"
	"github.com/securebank/ledger/pkg/repository"
	authsvc "github.com/securebank/ledger/pkg/service/auth"
	txnsvc "github.com/securebank/ledger/pkg/service/transaction"
)

// TransactionRoutes registers the transaction processor endpoints:
//
//   - POST /api/transactions/deposit  : credit an account
//   - POST /api/transactions/withdraw : debit an account (fee applies)
//   - POST /api/transactions/transfer : move money between accounts
//   - GET  /api/transactions          : filtered, paged history
//   - GET  /api/transactions/:txnId   : lookup by external reference
func TransactionRoutes(api fiber.Router, txnSvc *txnsvc.Service, authSvc *authsvc.Service, jwtCfg config.Jwt) {
	g := api.Group("/transactions", middleware.Protected(jwtCfg))
	g.Post("/deposit", Deposit(txnSvc, authSvc))
	g.Post("/withdraw", Withdraw(txnSvc, authSvc))
	g.Post("/transfer", Transfer(txnSvc, authSvc))
	g.Get("/", ListTransactions(txnSvc, authSvc))
	g.Get("/:txnId", GetTransaction(txnSvc, authSvc))
}

// Deposit credits an account owned by the caller.
// @Summary Deposit money
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body dto.DepositRequest true "Deposit details"
// @Success 201 {object} dto.Response
// @Router /api/transactions/deposit [post]
// @Security BearerAuth
func Deposit(txnSvc *txnsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return nil
		}
		input, err := BindAndValidate[dto.DepositRequest](c)
		if input == nil {
			return err
		}
		txn, err := txnSvc.Deposit(c.Context(), userID, input.AccountID, input.Amount, input.Description)
		if err != nil {
			return ErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusCreated, "Deposit successful", txn)
	}
}

// Withdraw debits an account owned by the caller, charging the withdrawal fee.
// @Summary Withdraw money
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body dto.WithdrawRequest true "Withdrawal details"
// @Success 201 {object} dto.Response
// @Router /api/transactions/withdraw [post]
// @Security BearerAuth
func Withdraw(txnSvc *txnsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return nil
		}
		input, err := BindAndValidate[dto.WithdrawRequest](c)
		if input == nil {
			return err
		}
		txn, err := txnSvc.Withdraw(c.Context(), userID, input.AccountID, input.Amount, input.Description)
		if err != nil {
			return ErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusCreated, "Withdrawal successful", txn)
	}
}

// Transfer moves money from one of the caller's accounts to the destination
// account number, charging the transfer fee to the source.
// @Summary Transfer money
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body dto.TransferRequest true "Transfer details"
// @Success 201 {object} dto.Response
// @Router /api/transactions/transfer [post]
// @Security BearerAuth
func Transfer(txnSvc *txnsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return nil
		}
		input, err := BindAndValidate[dto.TransferRequest](c)
		if input == nil {
			return err
		}
		txn, err := txnSvc.Transfer(c.Context(), userID, input.FromAccountID, input.ToAccountNumber, input.Amount, input.Description)
		if err != nil {
			return ErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusCreated, "Transfer successful", txn)
	}
}

// ListTransactions pages the caller's history across all accounts, optionally
// filtered by type, status and date range.
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Param type query string false "DEPOSIT, WITHDRAW or TRANSFER"
// @Param status query string false "PENDING, COMPLETED or FAILED"
// @Param startDate query string false "RFC 3339 lower bound"
// @Param endDate query string false "RFC 3339 upper bound"
// @Param page query int false "Zero-based page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.Response
// @Router /api/transactions [get]
// @Security BearerAuth
func ListTransactions(txnSvc *txnsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return nil
		}
		filter, err := parseTransactionFilter(c)
		if err != nil {
			return ErrorJSON(c, err)
		}
		page, size, err := parsePageParams(c, txnSvc.DefaultPageSize())
		if err != nil {
			return ErrorJSON(c, err)
		}
		result, err := txnSvc.List(c.Context(), userID, filter, page, size)
		if err != nil {
			return ErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Transactions retrieved", result)
	}
}

// GetTransaction looks up one of the caller's transactions by its external
// reference, e.g. TXN17259113004217xxxx.
// @Summary Get transaction by reference
// @Tags transactions
// @Produce json
// @Param txnId path string true "Transaction reference"
// @Success 200 {object} dto.Response
// @Router /api/transactions/{txnId} [get]
// @Security BearerAuth
func GetTransaction(txnSvc *txnsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return nil
		}
		txn, err := txnSvc.GetByTransactionID(c.Context(), userID, c.Params("txnId"))
		if err != nil {
			return ErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Transaction retrieved", txn)
	}
}

func parseTransactionFilter(c *fiber.Ctx) (repository.TransactionFilter, error) {
	var f repository.TransactionFilter
	if raw := c.Query("type"); raw != "" {
		t, err := domain.ParseTransactionType(raw)
		if err != nil {
			return f, err
		}
		f.Type = &t
	}
	if raw := c.Query("status"); raw != "" {
		st, err := domain.ParseTransactionStatus(raw)
		if err != nil {
			return f, err
		}
		f.Status = &st
	}
	if raw := c.Query("startDate"); raw != "" {
		start, err := parseFilterTime(raw)
		if err != nil {
			return f, err
		}
		f.Start = &start
	}
	if raw := c.Query("endDate"); raw != "" {
		end, err := parseFilterTime(raw)
		if err != nil {
			return f, err
		}
		f.End = &end
	}
	return f, nil
}

// parseFilterTime accepts RFC 3339 timestamps and bare dates.
func parseFilterTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, errInvalidDateFilter
	}
	return t, nil
}
