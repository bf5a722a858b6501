package auth

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"accounts-server/internal/shared/errors"
)

const (
	DefaultCost = bcrypt.DefaultCost
	MinCost     = 10

	// MaxPasswordBytes is the longest input bcrypt reads; later bytes are ignored
	MaxPasswordBytes = 72
)

// Hasher hashes and verifies passwords with bcrypt.
type Hasher struct {
	cost      int
	dummyHash []byte
}

// NewHasher returns a Hasher using the given bcrypt cost. Zero selects DefaultCost.
func NewHasher(cost int) (*Hasher, error) {
	if cost == 0 {
		cost = DefaultCost
	}
	if cost < MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost must be between %d and %d, got %d", MinCost, bcrypt.MaxCost, cost)
	}

	// Never matches a real password; used only to spend the same time on unknown emails
	dummy, err := bcrypt.GenerateFromPassword([]byte(rand.Text()), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}

	return &Hasher{cost: cost, dummyHash: dummy}, nil
}

// Hash returns a salted bcrypt hash of plaintext.
func (h *Hasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", errors.WrapInternal("failed to hash password", fmt.Errorf("%w: %v", ErrHashing, err))
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hash. A malformed hash or a plaintext longer
// than MaxPasswordBytes is a mismatch.
func (h *Hasher) Verify(plaintext, hash string) bool {
	if len(plaintext) > MaxPasswordBytes {
		h.VerifyDummy(plaintext[:MaxPasswordBytes])
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// VerifyDummy runs a comparison that always fails.
func (h *Hasher) VerifyDummy(plaintext string) {
	if len(plaintext) > MaxPasswordBytes {
		plaintext = plaintext[:MaxPasswordBytes]
	}
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(plaintext))
}

// Cost returns the work factor embedded in hash.
func (h *Hasher) Cost(hash string) (int, error) {
	return bcrypt.Cost([]byte(hash))
}
