package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"accounts-server/internal/account"
	"accounts-server/internal/shared/clock"
	"accounts-server/internal/shared/config"
	"accounts-server/internal/shared/errors"
)

// TokenIssuer signs HS256 session tokens.
type TokenIssuer struct {
	secret []byte
	clock  clock.Clock
}

func NewTokenIssuer(secret string, clk clock.Clock) *TokenIssuer {
	if clk == nil {
		clk = clock.New()
	}
	return &TokenIssuer{secret: []byte(secret), clock: clk}
}

// Ready reports whether a signing secret is configured.
func (i *TokenIssuer) Ready() error {
	if len(i.secret) == 0 {
		return ErrMissingSigningSecret
	}
	return nil
}

// Issue signs a token for the account that expires ttl after now.
func (i *TokenIssuer) Issue(accountID string, role account.Role, ttl time.Duration) (string, error) {
	if err := i.Ready(); err != nil {
		return "", err
	}
	if ttl <= 0 {
		ttl = config.DefaultTokenTTL
	}

	now := i.clock.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", errors.WrapInternal("failed to sign token", err)
	}
	return signed, nil
}
