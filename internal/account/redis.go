package account

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"accounts-server/internal/shared/clock"
	"accounts-server/internal/shared/errors"
)

const redisKeyPrefix = "accounts"

func accountKey(id string) string {
	return fmt.Sprintf("%s:account:%s", redisKeyPrefix, id)
}

func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", redisKeyPrefix, email)
}

type redisRecord struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Role         Role      `json:"role"`
	Balance      Balance   `json:"balance"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (rec *redisRecord) credentials() *Credentials {
	return &Credentials{
		Account: Account{
			ID:        rec.ID,
			Name:      rec.Name,
			Email:     rec.Email,
			Role:      rec.Role,
			Balance:   rec.Balance,
			CreatedAt: rec.CreatedAt,
			UpdatedAt: rec.UpdatedAt,
		},
		PasswordHash: rec.PasswordHash,
	}
}

// RedisRepository keeps each account as a JSON value and claims emails through SETNX on an
// index key, which is what makes the email unique.
type RedisRepository struct {
	client redis.UniversalClient
	clock  clock.Clock
}

var _ Store = (*RedisRepository)(nil)

func NewRedisRepository(client redis.UniversalClient, clk clock.Clock) *RedisRepository {
	if clk == nil {
		clk = clock.New()
	}
	return &RedisRepository{client: client, clock: clk}
}

func (r *RedisRepository) Create(ctx context.Context, creds *Credentials) (*Account, error) {
	if err := CheckInvariants(creds); err != nil {
		return nil, err
	}

	logger := slog.With(
		"component", "account_repository",
		"operation", "create",
		"backend", "redis",
		"email", creds.Email,
	)

	now := r.clock.Now().UTC()
	rec := redisRecord{
		ID:           uuid.NewString(),
		Name:         creds.Name,
		Email:        creds.Email,
		PasswordHash: creds.PasswordHash,
		Role:         creds.Role,
		Balance:      creds.Balance,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	claimed, err := r.client.SetNX(ctx, emailIndexKey(rec.Email), rec.ID, 0).Result()
	if err != nil {
		return nil, errors.WrapInternal("failed to reserve account email", err)
	}
	if !claimed {
		logger.Info("Account email already registered")
		return nil, ErrEmailTaken
	}

	data, err := json.Marshal(rec)
	if err != nil {
		r.releaseEmail(ctx, rec.Email, logger)
		return nil, errors.WrapInternal("failed to encode account", err)
	}

	if err := r.client.Set(ctx, accountKey(rec.ID), data, 0).Err(); err != nil {
		r.releaseEmail(ctx, rec.Email, logger)
		return nil, errors.WrapInternal("failed to store account", err)
	}

	logger.Info("Account created", "account_id", rec.ID, "role", rec.Role)
	return rec.credentials().Public(), nil
}

func (r *RedisRepository) releaseEmail(ctx context.Context, email string, logger *slog.Logger) {
	if err := r.client.Del(ctx, emailIndexKey(email)).Err(); err != nil {
		logger.Error("Failed to release email index after write failure", "error", err)
	}
}

func (r *RedisRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	creds, err := r.FindCredentialsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return creds.Public(), nil
}

func (r *RedisRepository) FindCredentialsByEmail(ctx context.Context, email string) (*Credentials, error) {
	id, err := r.client.Get(ctx, emailIndexKey(email)).Result()
	if err != nil {
		if stderrors.Is(err, redis.Nil) {
			return nil, ErrAccountNotFound
		}
		return nil, errors.WrapInternal("failed to look up account email", err)
	}
	return r.load(ctx, id)
}

func (r *RedisRepository) GetByID(ctx context.Context, id string) (*Account, error) {
	creds, err := r.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return creds.Public(), nil
}

func (r *RedisRepository) load(ctx context.Context, id string) (*Credentials, error) {
	data, err := r.client.Get(ctx, accountKey(id)).Bytes()
	if err != nil {
		if stderrors.Is(err, redis.Nil) {
			return nil, ErrAccountNotFound
		}
		return nil, errors.WrapInternal("failed to load account", err)
	}

	var rec redisRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.WrapInternal("failed to decode account", err)
	}
	return rec.credentials(), nil
}

func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
