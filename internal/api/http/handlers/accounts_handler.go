package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-io/helpdesk-api/internal/api/dto"
	"github.com/helpdesk-io/helpdesk-api/internal/auth"
	"github.com/helpdesk-io/helpdesk-api/internal/service"
	apperrors "github.com/helpdesk-io/helpdesk-api/pkg/util"
)

// AccountsHandler exposes registration and login endpoints.
type AccountsHandler struct {
	accounts *service.AccountService
	appEnv   string
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(accountService *service.AccountService, appEnv string) *AccountsHandler {
	return &AccountsHandler{accounts: accountService, appEnv: appEnv}
}

// Register handles POST /auth/register.
func (h *AccountsHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("All fields are required", nil)
	}

	account, token, exp, err := h.accounts.Register(c.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	h.setSessionCookie(c, token, exp)
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Register successful",
		"user":    dto.NewAccountResponse(account),
		"token":   token,
	})
}

// Login handles POST /auth/login.
func (h *AccountsHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("Email and password required", nil)
	}

	account, token, exp, err := h.accounts.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.setSessionCookie(c, token, exp)
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    dto.NewAccountResponse(account),
		"token":   token,
	})
}

func (h *AccountsHandler) setSessionCookie(c *fiber.Ctx, token string, exp time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Expires:  exp,
		HTTPOnly: true,
		Secure:   h.appEnv != "development",
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
