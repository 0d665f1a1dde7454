package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/domain"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/platform/logger"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/service/auth"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/store"
)

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required"`
	Password string `validate:"required"`
	Role     string `validate:"required"`
}

// LoginResult is returned by a successful Login.
type LoginResult struct {
	Token   string
	Account *domain.Account
}

// AccountService handles registration and login.
type AccountService interface {
	// Register creates an account after checking required fields, the role,
	// and email uniqueness.
	Register(ctx context.Context, input RegisterInput) (*domain.Account, error)

	// Login verifies credentials and issues a bearer token.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

type accountServiceImpl struct {
	accounts   store.AccountStore
	hasher     auth.PasswordHasher
	verifier   auth.PasswordVerifier
	jwtService auth.JWTService
	validate   *validator.Validate
	logger     *slog.Logger
}

var _ AccountService = (*accountServiceImpl)(nil)

// NewAccountService creates an AccountService.
func NewAccountService(
	accounts store.AccountStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	jwtService auth.JWTService,
	log *slog.Logger,
) (AccountService, error) {
	if accounts == nil {
		return nil, errors.New("account store cannot be nil")
	}
	if hasher == nil || verifier == nil {
		return nil, errors.New("password hasher and verifier cannot be nil")
	}
	if jwtService == nil {
		return nil, errors.New("jwt service cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &accountServiceImpl{
		accounts:   accounts,
		hasher:     hasher,
		verifier:   verifier,
		jwtService: jwtService,
		validate:   validator.New(),
		logger:     log.With(slog.String("component", "account_service")),
	}, nil
}

func (s *accountServiceImpl) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Role = strings.TrimSpace(input.Role)
	if err := s.validate.Struct(input); err != nil {
		return nil, domain.NewValidationError("", MsgRegisterFieldsRequired)
	}

	role := domain.Role(input.Role)
	if !role.Valid() {
		return nil, &domain.ValidationError{Field: "role", Message: "Role must be agent or admin", Err: domain.ErrInvalidRole}
	}
	if len(input.Password) > auth.MaxPasswordBytes {
		return nil, domain.NewValidationError("password", "Password must be at most 72 bytes")
	}

	_, err := s.accounts.GetByEmail(ctx, input.Email)
	switch {
	case err == nil:
		log.Debug("registration rejected: email exists")
		return nil, store.ErrEmailExists
	case !errors.Is(err, store.ErrAccountNotFound):
		return nil, NewServiceError("register", "failed to check email", err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, NewServiceError("register", "failed to hash password", err)
	}

	account, err := domain.NewAccount(input.Name, input.Email, hash, role)
	if err != nil {
		return nil, err
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("registration lost race on email")
			return nil, store.ErrEmailExists
		}
		return nil, NewServiceError("register", "failed to save account", err)
	}

	log.Info("account registered",
		slog.String("account_id", account.ID),
		slog.String("role", string(account.Role)))
	return account, nil
}

func (s *accountServiceImpl) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.NewValidationError("", MsgLoginFieldsRequired)
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			log.Debug("login failed: unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, NewServiceError("login", "failed to load account", err)
	}

	if err := s.verifier.Compare(account.PasswordHash, password); err != nil {
		log.Debug("login failed: password mismatch", slog.String("account_id", account.ID))
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(ctx, account)
	if err != nil {
		return nil, NewServiceError("login", "failed to issue token", err)
	}

	log.Info("account logged in", slog.String("account_id", account.ID))
	return &LoginResult{Token: token, Account: account}, nil
}
