package account

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
)

// PasswordHasher derives the stored one-way hash from a plaintext password.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

type Service struct {
	store    Store
	hasher   PasswordHasher
	validate *validator.Validate
	logger   *slog.Logger
}

func NewService(store Store, hasher PasswordHasher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("Initializing account service")

	return &Service{
		store:    store,
		hasher:   hasher,
		validate: newValidator(),
		logger:   logger,
	}
}

// CreateAccount normalizes and validates input, hashes the password once and persists the
// account. The plaintext password is never stored or logged.
func (s *Service) CreateAccount(ctx context.Context, input NewAccount) (*Account, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = NormalizeEmail(input.Email)
	if input.Role == "" {
		input.Role = RolePlayer
	}

	logger := s.logger.With(
		"component", "account_service",
		"operation", "create",
		"email", input.Email,
		"role", input.Role,
	)

	if err := s.validate.Struct(input); err != nil {
		logger.Debug("Account input rejected", "error", err)
		return nil, validationError(err)
	}
	if len(input.Password) > maxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	balance, err := ParseBalance(input.Balance)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		logger.Error("Failed to hash password", "error", err)
		return nil, err
	}

	created, err := s.store.Create(ctx, &Credentials{
		Account: Account{
			Name:    input.Name,
			Email:   input.Email,
			Role:    input.Role,
			Balance: balance,
		},
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Account created", "account_id", created.ID)
	return created, nil
}

func (s *Service) GetAccount(ctx context.Context, id string) (*Account, error) {
	return s.store.GetByID(ctx, id)
}

func (s *Service) FindAccountByEmail(ctx context.Context, email string) (*Account, error) {
	return s.store.FindByEmail(ctx, NormalizeEmail(email))
}
