package webapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/securebank/ledger/pkg/domain"
	"github.com/securebank/ledger/pkg/dto"
)

// SuccessJSON writes the standard response envelope for a successful call.
func SuccessJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(dto.Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorJSON maps a domain error onto the response envelope. Errors outside the
// domain taxonomy are reported as a generic internal error so storage details
// never leak to the caller.
func ErrorJSON(c *fiber.Ctx, err error) error {
	status := ErrorToStatusCode(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		message = "internal server error"
	}
	return c.Status(status).JSON(dto.Response{
		Success: false,
		Message: message,
	})
}

func errEnvelope(message string) dto.Response {
	return dto.Response{Success: false, Message: message}
}

// ErrorToStatusCode maps domain errors to HTTP status codes.
func ErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrDailyLimitExceeded):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrAccountFrozen),
		errors.Is(err, domain.ErrAccountNotActive):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrAlreadyExists):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
