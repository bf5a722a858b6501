package account

import (
	"context"
	"database/sql"
	stderrors "errors"
	"log/slog"

	"github.com/lib/pq"

	"accounts-server/internal/shared/errors"
)

const (
	uniqueViolation      = "23505"
	invalidTextRepresent = "22P02"
)

const publicColumns = `id, name, email, role, balance, created_at, updated_at`

// PostgresRepository stores accounts in the accounts table created by migrations/.
type PostgresRepository struct {
	db *sql.DB
}

var _ Store = (*PostgresRepository)(nil)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	slog.With("component", "account_repository", "operation", "init").Debug("Initializing postgres account repository")
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, creds *Credentials) (*Account, error) {
	if err := CheckInvariants(creds); err != nil {
		return nil, err
	}

	logger := slog.With(
		"component", "account_repository",
		"operation", "create",
		"email", creds.Email,
	)

	query := `
		INSERT INTO accounts (name, email, password_hash, role, balance)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	created := *creds.Public()
	err := r.db.QueryRowContext(ctx, query,
		creds.Name,
		creds.Email,
		creds.PasswordHash,
		string(creds.Role),
		creds.Balance,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if stderrors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			logger.Info("Account email already registered")
			return nil, ErrEmailTaken
		}
		return nil, errors.WrapInternal("failed to create account", err)
	}

	logger.Info("Account created", "account_id", created.ID, "role", created.Role)
	return &created, nil
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	query := `SELECT ` + publicColumns + ` FROM accounts WHERE email = $1`

	var a Account
	var role string
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&a.ID,
		&a.Name,
		&a.Email,
		&role,
		&a.Balance,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, notFoundOrInternal(err, "failed to find account by email")
	}
	a.Role = Role(role)
	return &a, nil
}

func (r *PostgresRepository) FindCredentialsByEmail(ctx context.Context, email string) (*Credentials, error) {
	query := `
		SELECT id, name, email, password_hash, role, balance, created_at, updated_at
		FROM accounts
		WHERE email = $1
	`

	var c Credentials
	var role string
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.PasswordHash,
		&role,
		&c.Balance,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, notFoundOrInternal(err, "failed to find account credentials")
	}
	c.Role = Role(role)
	return &c, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Account, error) {
	query := `SELECT ` + publicColumns + ` FROM accounts WHERE id = $1`

	var a Account
	var role string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID,
		&a.Name,
		&a.Email,
		&role,
		&a.Balance,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, notFoundOrInternal(err, "failed to get account")
	}
	a.Role = Role(role)
	return &a, nil
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func notFoundOrInternal(err error, message string) error {
	if stderrors.Is(err, sql.ErrNoRows) {
		return ErrAccountNotFound
	}
	// A malformed UUID cannot match any row
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) && pqErr.Code == invalidTextRepresent {
		return ErrAccountNotFound
	}
	return errors.WrapInternal(message, err)
}
