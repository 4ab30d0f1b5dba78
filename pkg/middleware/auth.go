// Package middleware holds the HTTP middleware shared by the API routes.
package middleware

import (
	"errors"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/securebank/ledger/pkg/config"
	"github.com/securebank/ledger/pkg/dto"
)

// Protected verifies the bearer token and stores it in c.Locals("user").
func Protected(cfg config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(cfg.Secret)},
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	status := fiber.StatusUnauthorized
	if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(dto.Response{
		Success: false,
		Message: err.Error(),
	})
}
