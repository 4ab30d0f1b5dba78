// Package webapi exposes the ledger core over HTTP. Every endpoint answers
// with the {success, message, data} envelope; all account and transaction
// routes require a bearer token resolved by the auth boundary.
package webapi

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/securebank/ledger/pkg/config"
	accountsvc "github.com/securebank/ledger/pkg/service/account"
	authsvc "github.com/securebank/ledger/pkg/service/auth"
	txnsvc "github.com/securebank/ledger/pkg/service/transaction"
)

// Services bundles the service dependencies of the HTTP layer.
type Services struct {
	Account     *accountsvc.Service
	Transaction *txnsvc.Service
	Auth        *authsvc.Service
}

// New builds the fiber application with all middleware and routes.
func New(svcs Services, cfg *config.App, logger *slog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "securebank",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			logger.Error("unhandled request error", "path", c.Path(), "error", err)
			return c.Status(status).JSON(errEnvelope("internal server error"))
		},
	})

	app.Use(recover.New())
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.MaxRequests,
		Expiration: cfg.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(errEnvelope("rate limit exceeded"))
		},
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return SuccessJSON(c, fiber.StatusOK, "OK", nil)
	})

	api := app.Group("/api")
	AuthRoutes(api, svcs.Auth)
	AccountRoutes(api, svcs.Account, svcs.Auth, cfg.Jwt)
	TransactionRoutes(api, svcs.Transaction, svcs.Auth, cfg.Jwt)

	return app
}
