package account

import "context"

// Store is the account persistence boundary. Implementations enforce CheckInvariants and
// email uniqueness on Create, so lookups may assume zero or one match per email.
type Store interface {
	// Create assigns ID and timestamps and persists the record.
	Create(ctx context.Context, creds *Credentials) (*Account, error)
	// FindByEmail returns the public projection, without the password hash.
	FindByEmail(ctx context.Context, email string) (*Account, error)
	// FindCredentialsByEmail returns the elevated projection including the password hash.
	FindCredentialsByEmail(ctx context.Context, email string) (*Credentials, error)
	GetByID(ctx context.Context, id string) (*Account, error)
	Ping(ctx context.Context) error
}
