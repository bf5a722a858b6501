package account

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreContract exercises the behavior every Store backend must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("create assigns id and timestamps", func(t *testing.T) {
		store := newStore(t)
		creds := validCredentials(t)

		created, err := store.Create(ctx, creds)
		require.NoError(t, err)

		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "ada@example.com", created.Email)
		assert.Equal(t, RolePlayer, created.Role)
		assert.False(t, created.CreatedAt.IsZero())
		assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		store := newStore(t)
		_, err := store.Create(ctx, validCredentials(t))
		require.NoError(t, err)

		dup := validCredentials(t)
		dup.Name = "Someone Else"
		_, err = store.Create(ctx, dup)
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("invariants are checked on write", func(t *testing.T) {
		store := newStore(t)
		creds := validCredentials(t)
		creds.PasswordHash = "plaintext"

		_, err := store.Create(ctx, creds)
		assert.Error(t, err)

		_, err = store.FindByEmail(ctx, creds.Email)
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("credentials lookup includes hash", func(t *testing.T) {
		store := newStore(t)
		creds := validCredentials(t)
		_, err := store.Create(ctx, creds)
		require.NoError(t, err)

		found, err := store.FindCredentialsByEmail(ctx, "ada@example.com")
		require.NoError(t, err)
		assert.Equal(t, creds.PasswordHash, found.PasswordHash)
	})

	t.Run("public lookup never exposes hash", func(t *testing.T) {
		store := newStore(t)
		created, err := store.Create(ctx, validCredentials(t))
		require.NoError(t, err)

		found, err := store.FindByEmail(ctx, "ada@example.com")
		require.NoError(t, err)
		data, err := json.Marshal(found)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "$2a$")

		byID, err := store.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, byID.ID)
	})

	t.Run("balance keeps its scale", func(t *testing.T) {
		store := newStore(t)
		creds := validCredentials(t)
		creds.Balance, _ = ParseBalance("12.50")
		_, err := store.Create(ctx, creds)
		require.NoError(t, err)

		found, err := store.FindCredentialsByEmail(ctx, "ada@example.com")
		require.NoError(t, err)
		assert.Equal(t, "12.50", found.Balance.String())
	})

	t.Run("unknown email and id are not found", func(t *testing.T) {
		store := newStore(t)

		_, err := store.FindCredentialsByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, ErrAccountNotFound)

		_, err = store.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("concurrent creates with one email admit exactly one", func(t *testing.T) {
		store := newStore(t)
		hash := validCredentials(t).PasswordHash

		var wg sync.WaitGroup
		var mu sync.Mutex
		successes := 0
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := store.Create(ctx, &Credentials{
					Account:      Account{Name: "Racer", Email: "race@example.com", Role: RolePlayer},
					PasswordHash: hash,
				})
				if err == nil {
					mu.Lock()
					successes++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, successes)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, newStore(t).Ping(ctx))
	})
}

var contractTime = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
