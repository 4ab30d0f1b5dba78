package webapi

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/securebank/ledger/pkg/config"
	"github.com/securebank/ledger/pkg/dto"
	"github.com/securebank/ledger/pkg/middleware"
	accountsvc "github.com/securebank/ledger/pkg/service/account"
	authsvc "github.com/securebank/ledger/pkg/service/auth"
)

// AccountRoutes registers the account lifecycle and read endpoints:
//
//   - POST   /api/accounts              : open a new account
//   - GET    /api/accounts              : list the caller's accounts
//   - GET    /api/accounts/dashboard    : account and activity summary
//   - GET    /api/accounts/:id          : account details
//   - GET    /api/accounts/:id/balance  : current balance
//   - GET    /api/accounts/:id/statement: paged transaction history
//   - PATCH  /api/accounts/:id/status   : lifecycle transition
func AccountRoutes(api fiber.Router, accountSvc *accountsvc.Service, authSvc *authsvc.Service, jwtCfg config.Jwt) {
	g := api.Group("/accounts", middleware.Protected(jwtCfg))
	g.Post("/", CreateAccount(accountSvc, authSvc))
	g.Get("/", ListAccounts(accountSvc, authSvc))
	g.Get("/dashboard", Dashboard(accountSvc, authSvc))
	g.Get("/:id", GetAccount(accountSvc, authSvc))
	g.Get("/:id/balance", GetBalance(accountSvc, authSvc))
	g.Get("/:id/statement", GetStatement(accountSvc, authSvc))
	g.Patch("/:id/status", UpdateStatus(accountSvc, authSvc))
}

// CreateAccount opens a new account for the authenticated user.
// @Summary Create a new account
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.Response
// @Router /api/accounts [post]
// @Security BearerAuth
func CreateAccount(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return nil
		}
		input, err := BindAndValidate[dto.CreateAccountRequest](c)
		if input == nil {
			return err
		}
		a, err := accountSvc.CreateAccount(c.Context(), userID, input.AccountType, input.Currency)
		if err != nil {
			return ErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusCreated, "Account created successfully", a)
	}
}

// ListAccounts lists the caller's accounts in creation order.
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Success 200 {object} dto.Response
// @Router /api/accounts [get]
// @Security BearerAuth
func ListAccounts(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return nil
		}
		accounts, err := accountSvc.ListAccounts(c.Context(), userID)
		if err != nil {
			return ErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Accounts retrieved", accounts)
	}
}

// GetAccount returns one account owned by the caller.
// @Summary Get account details
// @Tags accounts
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} dto.Response
// @Router /api/accounts/{id} [get]
// @Security BearerAuth
func GetAccount(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return nil
		}
		accountID, err := parseAccountID(c)
		if err != nil {
			return ErrorJSON(c, err)
		}
		a, err := accountSvc.GetAccount(c.Context(), userID, accountID)
		if err != nil {
			return ErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Account details retrieved", a)
	}
}

// GetBalance returns the account's current balance as a bare number.
// @Summary Get account balance
// @Tags accounts
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} dto.Response
// @Router /api/accounts/{id}/balance [get]
// @Security BearerAuth
func GetBalance(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return nil
		}
		accountID, err := parseAccountID(c)
		if err != nil {
			return ErrorJSON(c, err)
		}
		balance, err := accountSvc.GetBalance(c.Context(), userID, accountID)
		if err != nil {
			return ErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Balance retrieved", balance)
	}
}

// GetStatement returns one page of the account's transaction history.
// @Summary Get account statement
// @Tags accounts
// @Produce json
// @Param id path int true "Account ID"
// @Param page query int false "Zero-based page number"
// @Param size query int false "Page size (default 20, max 100)"
// @Success 200 {object} dto.Response
// @Router /api/accounts/{id}/statement [get]
// @Security BearerAuth
func GetStatement(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return nil
		}
		accountID, err := parseAccountID(c)
		if err != nil {
			return ErrorJSON(c, err)
		}
		page, size, err := parsePageParams(c, accountSvc.DefaultStatementSize())
		if err != nil {
			return ErrorJSON(c, err)
		}
		statement, err := accountSvc.GetStatement(c.Context(), userID, accountID, page, size)
		if err != nil {
			return ErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Statement retrieved", statement)
	}
}

// UpdateStatus applies an account lifecycle transition.
// @Summary Update account status
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path int true "Account ID"
// @Param request body dto.UpdateStatusRequest true "New status"
// @Success 200 {object} dto.Response
// @Router /api/accounts/{id}/status [patch]
// @Security BearerAuth
func UpdateStatus(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return nil
		}
		accountID, err := parseAccountID(c)
		if err != nil {
			return ErrorJSON(c, err)
		}
		input, err := BindAndValidate[dto.UpdateStatusRequest](c)
		if input == nil {
			return err
		}
		status, err := accountSvc.UpdateStatus(c.Context(), userID, accountID, input.Status)
		if err != nil {
			return ErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Account status updated", string(status))
	}
}

// Dashboard summarizes the caller's accounts and last 30 days of activity.
// @Summary User dashboard
// @Tags accounts
// @Produce json
// @Success 200 {object} dto.Response
// @Router /api/accounts/dashboard [get]
// @Security BearerAuth
func Dashboard(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return nil
		}
		since := time.Now().AddDate(0, 0, -30)
		dashboard, err := accountSvc.Dashboard(c.Context(), userID, since)
		if err != nil {
			return ErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Dashboard data retrieved", dashboard)
	}
}

func parseAccountID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, errInvalidAccountID
	}
	return uint(id), nil
}

// parsePageParams reads page/size query parameters. An omitted size falls back
// to the default; explicit values are passed through for the service to bound.
func parsePageParams(c *fiber.Ctx, defaultSize int) (page, size int, err error) {
	page = 0
	if raw := c.Query("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, errInvalidPageParams
		}
	}
	size = defaultSize
	if raw := c.Query("size"); raw != "" {
		size, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, errInvalidPageParams
		}
	}
	return page, size, nil
}
