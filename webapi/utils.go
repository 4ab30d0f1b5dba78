package webapi

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/securebank/ledger/pkg/domain"
	authsvc "github.com/securebank/ledger/pkg/service/auth"
)

var validate = validator.New()

var (
	errInvalidAccountID  = fmt.Errorf("%w: account id must be a positive integer", domain.ErrInvalidArgument)
	errInvalidPageParams = fmt.Errorf("%w: page and size must be integers", domain.ErrInvalidArgument)
	errInvalidDateFilter = fmt.Errorf("%w: dates must be RFC 3339 or YYYY-MM-DD", domain.ErrInvalidArgument)
)

// BindAndValidate parses the request body into T and validates it. On failure
// it writes the error response and returns a nil pointer.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(errEnvelope("invalid request body"))
	}
	if err := validate.Struct(input); err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(errEnvelope(fmt.Sprintf("validation failed: %v", err)))
	}
	return &input, nil
}

// currentUserID resolves the authenticated user from the verified token the
// JWT middleware stored on the request. When it returns false the error
// response has already been written.
func currentUserID(c *fiber.Ctx, authSvc *authsvc.Service) (uint, bool) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		_ = c.Status(fiber.StatusUnauthorized).JSON(errEnvelope("missing user context"))
		return 0, false
	}
	userID, err := authSvc.CurrentUserID(token)
	if err != nil {
		_ = c.Status(fiber.StatusUnauthorized).JSON(errEnvelope("invalid user token"))
		return 0, false
	}
	return userID, true
}
