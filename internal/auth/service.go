package auth

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"accounts-server/internal/account"
	"accounts-server/internal/shared/errors"
)

// CredentialStore is the part of account.Store the login path needs.
type CredentialStore interface {
	FindCredentialsByEmail(ctx context.Context, email string) (*account.Credentials, error)
}

type PasswordVerifier interface {
	Verify(plaintext, hash string) bool
	VerifyDummy(plaintext string)
}

type Signer interface {
	Ready() error
	Issue(accountID string, role account.Role, ttl time.Duration) (string, error)
}

type Config struct {
	TokenTTL time.Duration
}

type Service struct {
	store    CredentialStore
	verifier PasswordVerifier
	issuer   Signer
	config   Config
	logger   *slog.Logger
}

func NewService(store CredentialStore, verifier PasswordVerifier, issuer Signer, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("Initializing auth service", "token_ttl", cfg.TokenTTL)

	return &Service{
		store:    store,
		verifier: verifier,
		issuer:   issuer,
		config:   cfg,
		logger:   logger,
	}
}

// Login verifies an email and password and issues a session token for the account.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = account.NormalizeEmail(email)
	logger := s.logger.With(
		"component", "auth_service",
		"operation", "login",
		"email", email,
	)

	if err := s.issuer.Ready(); err != nil {
		logger.Error("Token signing secret is not configured")
		return nil, err
	}

	if email == "" || password == "" {
		logger.Warn("Login rejected: missing email or password")
		return nil, ErrCredentialsRequired
	}

	creds, err := s.store.FindCredentialsByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, account.ErrAccountNotFound) {
			s.verifier.VerifyDummy(password)
			logger.Warn("Login failed: invalid email")
			return nil, ErrInvalidCredentials
		}
		logger.Error("Failed to look up account", "error", err)
		return nil, errors.WrapInternal("failed to look up account", err)
	}

	if !s.verifier.Verify(password, creds.PasswordHash) {
		logger.Warn("Login failed: invalid password", "account_id", creds.ID)
		return nil, ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(creds.ID, creds.Role, s.config.TokenTTL)
	if err != nil {
		logger.Error("Failed to issue token", "account_id", creds.ID, "error", err)
		return nil, err
	}

	logger.Info("Login successful", "account_id", creds.ID, "role", creds.Role)

	return &LoginResult{
		Token: token,
		Role:  creds.Role,
		User:  newAccountView(creds.Public()),
	}, nil
}
