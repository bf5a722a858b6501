package account

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"accounts-server/internal/shared/clock"
)

// MemoryRepository is an in-process Store for development and tests.
type MemoryRepository struct {
	mu         sync.RWMutex
	accounts   map[string]*Credentials
	emailIndex map[string]string
	clock      clock.Clock
}

var _ Store = (*MemoryRepository)(nil)

func NewMemoryRepository(clk clock.Clock) *MemoryRepository {
	if clk == nil {
		clk = clock.New()
	}
	return &MemoryRepository{
		accounts:   make(map[string]*Credentials),
		emailIndex: make(map[string]string),
		clock:      clk,
	}
}

func (r *MemoryRepository) Create(ctx context.Context, creds *Credentials) (*Account, error) {
	if err := CheckInvariants(creds); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.emailIndex[creds.Email]; exists {
		return nil, ErrEmailTaken
	}

	now := r.clock.Now().UTC()
	stored := *creds
	stored.ID = uuid.NewString()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.accounts[stored.ID] = &stored
	r.emailIndex[stored.Email] = stored.ID

	return stored.Public(), nil
}

func (r *MemoryRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	creds, err := r.FindCredentialsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return creds.Public(), nil
}

func (r *MemoryRepository) FindCredentialsByEmail(ctx context.Context, email string) (*Credentials, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.emailIndex[email]
	if !ok {
		return nil, ErrAccountNotFound
	}
	creds := *r.accounts[id]
	return &creds, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	creds, ok := r.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return creds.Public(), nil
}

func (r *MemoryRepository) Ping(ctx context.Context) error {
	return nil
}
