package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/helpdesk-io/helpdesk-api/internal/domain"
	"github.com/helpdesk-io/helpdesk-api/internal/repository"
	apperrors "github.com/helpdesk-io/helpdesk-api/pkg/util"
)

const principalKey = "auth_principal"

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "jwt"

// Middleware validates session tokens and loads the requesting account.
type Middleware struct {
	tokens   *TokenManager
	accounts repository.AccountRepository
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, accounts repository.AccountRepository) *Middleware {
	return &Middleware{tokens: tokens, accounts: accounts}
}

// Handle enforces authentication for protected routes. The token is read from
// the Authorization header first, then from the session cookie.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	token := ""
	if authHeader := c.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			token = parts[1]
		}
	}
	if token == "" {
		token = c.Cookies(SessionCookieName)
	}
	if token == "" {
		return apperrors.NewUnauthorized("not authorized, no token provided")
	}

	accountID, err := m.tokens.ParseToken(token)
	if err != nil {
		return apperrors.NewUnauthorized("not authorized, token failed")
	}

	account, err := m.accounts.GetByID(c.Context(), accountID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewUnauthorized("account no longer exists")
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, account)
	return c.Next()
}

// AccountFromContext retrieves the authenticated account.
func AccountFromContext(c *fiber.Ctx) (*domain.Account, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	account, ok := val.(*domain.Account)
	return account, ok
}
