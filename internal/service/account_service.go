package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/helpdesk-io/helpdesk-api/internal/auth"
	"github.com/helpdesk-io/helpdesk-api/internal/config"
	"github.com/helpdesk-io/helpdesk-api/internal/domain"
	"github.com/helpdesk-io/helpdesk-api/internal/repository"
	"github.com/helpdesk-io/helpdesk-api/internal/validate"
	apperrors "github.com/helpdesk-io/helpdesk-api/pkg/util"
)

// invalidCredentials is the single message for every login failure so the
// response never reveals which credential was wrong.
const invalidCredentials = "Invalid email or password"

// AccountService coordinates registration and login flows.
type AccountService struct {
	accounts   repository.AccountRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAccountService builds the service.
func NewAccountService(cfg config.Config, accounts repository.AccountRepository) *AccountService {
	return &AccountService{
		accounts:   accounts,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL()),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// RegisterInput is the registration payload after body parsing.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// Register creates a new account. Validators run in order name, email,
// password, role, short-circuiting on the first failure.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*domain.Account, string, time.Time, error) {
	name := strings.TrimSpace(input.Name)
	email := validate.NormalizeEmail(input.Email)

	if !validate.Name(name) {
		return nil, "", time.Time{}, apperrors.NewValidationError(
			"Name must be 2-50 characters and contain only letters, spaces, hyphens, or apostrophes", nil)
	}
	if !validate.Email(email) {
		return nil, "", time.Time{}, apperrors.NewValidationError("Invalid email format", nil)
	}
	if !validate.Password(input.Password) {
		return nil, "", time.Time{}, apperrors.NewValidationError(
			"Password must be at least 8 characters with uppercase, lowercase, and number", nil)
	}
	role, ok := validate.Role(input.Role)
	if !ok {
		return nil, "", time.Time{}, apperrors.NewValidationError("Invalid role. Must be 'user' or 'admin'", nil)
	}

	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewValidationError("User already exists", nil)
	} else if err != repository.ErrNoRows {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	account := &domain.Account{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if isUniqueViolation(err) {
			return nil, "", time.Time{}, apperrors.NewValidationError("User already exists", nil)
		}
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(account.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return account, token, exp, nil
}

// Login authenticates an account. Lookup and comparison failures all return
// the same generic unauthorized error.
func (s *AccountService) Login(ctx context.Context, email, password string) (*domain.Account, string, time.Time, error) {
	email = validate.NormalizeEmail(email)
	if !validate.Email(email) {
		return nil, "", time.Time{}, apperrors.NewValidationError("Invalid email format", nil)
	}
	if len(password) < 8 {
		return nil, "", time.Time{}, apperrors.NewUnauthorized(invalidCredentials)
	}

	account, err := s.accounts.GetByEmailWithPassword(ctx, email)
	if err != nil {
		if err == repository.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewUnauthorized(invalidCredentials)
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized(invalidCredentials)
	}

	token, exp, err := s.tokenMgr.GenerateToken(account.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	account.PasswordHash = ""
	return account, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AccountService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// isUniqueViolation reports whether err is the accounts email constraint
// firing, which happens when two registrations race past the pre-insert
// lookup.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
