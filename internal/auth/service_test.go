package auth

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"accounts-server/internal/account"
	"accounts-server/internal/shared/clock"
	"accounts-server/internal/shared/errors"
)

type spyStore struct {
	accounts map[string]*account.Credentials
	err      error
	calls    int
}

func (s *spyStore) FindCredentialsByEmail(ctx context.Context, email string) (*account.Credentials, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	creds, ok := s.accounts[email]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	return creds, nil
}

// fakeVerifier treats "hash:<password>" as the hash of <password>.
type fakeVerifier struct {
	verifyCalls int
	dummyCalls  int
}

func (v *fakeVerifier) Verify(plaintext, hash string) bool {
	v.verifyCalls++
	return hash == "hash:"+plaintext
}

func (v *fakeVerifier) VerifyDummy(plaintext string) {
	v.dummyCalls++
}

type LoginSuite struct {
	suite.Suite
	store    *spyStore
	verifier *fakeVerifier
	clock    *clock.MockClock
	service  *Service
}

func TestLoginSuite(t *testing.T) {
	suite.Run(t, new(LoginSuite))
}

func (s *LoginSuite) SetupTest() {
	balance, err := account.ParseBalance("12.50")
	s.Require().NoError(err)

	s.store = &spyStore{accounts: map[string]*account.Credentials{
		"user@example.com": {
			Account: account.Account{
				ID:      "acct-42",
				Name:    "Test User",
				Email:   "user@example.com",
				Role:    account.RolePlayer,
				Balance: balance,
			},
			PasswordHash: "hash:secret1",
		},
	}}
	s.verifier = &fakeVerifier{}
	s.clock = clock.NewMock(issuedAt)
	s.service = s.newService(testSecret)
}

func (s *LoginSuite) newService(secret string) *Service {
	issuer := NewTokenIssuer(secret, s.clock)
	return NewService(s.store, s.verifier, issuer, Config{TokenTTL: time.Hour}, nil)
}

func (s *LoginSuite) TestSuccess() {
	result, err := s.service.Login(context.Background(), "user@example.com", "secret1")
	s.Require().NoError(err)

	s.Equal(account.RolePlayer, result.Role)
	s.Equal(AccountView{
		ID:      "acct-42",
		Name:    "Test User",
		Email:   "user@example.com",
		Role:    account.RolePlayer,
		Balance: s.store.accounts["user@example.com"].Balance,
	}, result.User)
	s.Equal("12.50", result.User.Balance.String())

	claims := parseClaims(s.T(), result.Token, testSecret, issuedAt)
	s.Equal("acct-42", claims.Subject)
	s.Equal(account.RolePlayer, claims.Role)
	s.True(claims.IssuedAt.Time.Equal(issuedAt))
	s.True(claims.ExpiresAt.Time.Equal(issuedAt.Add(time.Hour)))
}

func (s *LoginSuite) TestEmailIsNormalized() {
	result, err := s.service.Login(context.Background(), "  USER@Example.COM ", "secret1")
	s.Require().NoError(err)
	s.Equal("acct-42", result.User.ID)
}

func (s *LoginSuite) TestMissingSecretSkipsStore() {
	svc := s.newService("")

	_, err := svc.Login(context.Background(), "user@example.com", "secret1")
	s.ErrorIs(err, ErrMissingSigningSecret)
	s.Equal(errors.ErrorTypeConfiguration, errors.GetType(err))
	s.Zero(s.store.calls)
	s.Zero(s.verifier.verifyCalls)
}

func (s *LoginSuite) TestMissingCredentialsSkipStore() {
	cases := []struct{ email, password string }{
		{"", "secret1"},
		{"user@example.com", ""},
		{"   ", "secret1"},
		{"", ""},
	}
	for _, c := range cases {
		_, err := s.service.Login(context.Background(), c.email, c.password)
		s.ErrorIs(err, ErrCredentialsRequired, fmt.Sprintf("%q/%q", c.email, c.password))
	}
	s.Zero(s.store.calls)
}

func (s *LoginSuite) TestUnknownEmailAndWrongPasswordAreIndistinguishable() {
	_, unknownErr := s.service.Login(context.Background(), "nobody@example.com", "secret1")
	_, wrongErr := s.service.Login(context.Background(), "user@example.com", "wrong")

	s.ErrorIs(unknownErr, ErrInvalidCredentials)
	s.ErrorIs(wrongErr, ErrInvalidCredentials)
	s.Equal(unknownErr.Error(), wrongErr.Error())
	s.Equal(errors.ClientMessage(unknownErr), errors.ClientMessage(wrongErr))

	s.Equal(1, s.verifier.dummyCalls, "unknown email still pays for a hash comparison")
	s.Equal(1, s.verifier.verifyCalls)
}

func (s *LoginSuite) TestStoreFailureIsInternal() {
	s.store.err = fmt.Errorf("dial tcp 10.0.0.5:5432: connection refused")

	_, err := s.service.Login(context.Background(), "user@example.com", "secret1")
	s.Require().Error(err)
	s.Equal(errors.ErrorTypeInternal, errors.GetType(err))
	s.Equal(errors.InternalMessage, errors.ClientMessage(err))
	s.NotErrorIs(err, ErrInvalidCredentials)
}

func (s *LoginSuite) TestAdminRoleIsEmbedded() {
	s.store.accounts["admin@example.com"] = &account.Credentials{
		Account:      account.Account{ID: "acct-1", Name: "Admin", Email: "admin@example.com", Role: account.RoleAdmin},
		PasswordHash: "hash:rootpw",
	}

	result, err := s.service.Login(context.Background(), "admin@example.com", "rootpw")
	s.Require().NoError(err)
	s.Equal(account.RoleAdmin, result.Role)

	claims := parseClaims(s.T(), result.Token, testSecret, issuedAt)
	s.Equal(account.RoleAdmin, claims.Role)
}

func TestLoginWithRealHasherAndStore(t *testing.T) {
	ctx := context.Background()
	hasher, err := NewHasher(MinCost)
	require.NoError(t, err)

	store := account.NewMemoryRepository(clock.NewMock(issuedAt))
	accounts := account.NewService(store, hasher, nil)
	created, err := accounts.CreateAccount(ctx, account.NewAccount{
		Name:     "Real User",
		Email:    "real@example.com",
		Password: "hunter22",
		Balance:  "100.00",
	})
	require.NoError(t, err)

	svc := NewService(store, hasher, NewTokenIssuer(testSecret, clock.NewMock(issuedAt)), Config{TokenTTL: 24 * time.Hour}, nil)

	result, err := svc.Login(ctx, "Real@Example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, created.ID, result.User.ID)
	assert.Equal(t, "100.00", result.User.Balance.String())

	_, err = svc.Login(ctx, "real@example.com", "hunter23")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsPasswordExtendedPastBcryptLimit(t *testing.T) {
	ctx := context.Background()
	hasher, err := NewHasher(MinCost)
	require.NoError(t, err)

	store := account.NewMemoryRepository(clock.NewMock(issuedAt))
	password := strings.Repeat("a", MaxPasswordBytes)
	_, err = account.NewService(store, hasher, nil).CreateAccount(ctx, account.NewAccount{
		Name:     "Long Password",
		Email:    "long@example.com",
		Password: password,
	})
	require.NoError(t, err)

	svc := NewService(store, hasher, NewTokenIssuer(testSecret, clock.NewMock(issuedAt)), Config{TokenTTL: time.Hour}, nil)

	_, err = svc.Login(ctx, "long@example.com", password)
	require.NoError(t, err)

	result, err := svc.Login(ctx, "long@example.com", password+"WRONG-SUFFIX")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, result)
}
