package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/securebank/ledger/pkg/dto"
	authsvc "github.com/securebank/ledger/pkg/service/auth"
)

// AuthRoutes registers the public authentication endpoints.
func AuthRoutes(api fiber.Router, authSvc *authsvc.Service) {
	api.Post("/auth/register", Register(authSvc))
	api.Post("/auth/login", Login(authSvc))
}

// Register creates a new user.
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.Response
// @Router /api/auth/register [post]
func Register(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[dto.RegisterRequest](c)
		if input == nil {
			return err
		}
		u, err := authSvc.Register(c.Context(), input.Username, input.Email, input.Password)
		if err != nil {
			return ErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusCreated, "User registered successfully", u)
	}
}

// Login exchanges credentials for a bearer token.
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.Response
// @Router /api/auth/login [post]
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[dto.LoginRequest](c)
		if input == nil {
			return err
		}
		token, u, err := authSvc.Login(c.Context(), input.Username, input.Password)
		if err != nil {
			return ErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Login successful", dto.AuthResponse{
			Token:    token,
			Username: u.Username,
		})
	}
}
