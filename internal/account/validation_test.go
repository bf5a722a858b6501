package account

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func validCredentials(t *testing.T) *Credentials {
	return &Credentials{
		Account: Account{
			Name:  "Ada Lovelace",
			Email: "ada@example.com",
			Role:  RolePlayer,
		},
		PasswordHash: testHash(t, "analytical"),
	}
}

func TestCheckInvariantsAcceptsValidRecord(t *testing.T) {
	assert.NoError(t, CheckInvariants(validCredentials(t)))
}

func TestCheckInvariantsRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Credentials)
	}{
		{"uppercase email", func(c *Credentials) { c.Email = "Ada@Example.com" }},
		{"padded email", func(c *Credentials) { c.Email = " ada@example.com" }},
		{"email without domain dot", func(c *Credentials) { c.Email = "ada@example" }},
		{"empty name", func(c *Credentials) { c.Name = "" }},
		{"untrimmed name", func(c *Credentials) { c.Name = "Ada " }},
		{"long name", func(c *Credentials) { c.Name = strings.Repeat("a", 101) }},
		{"unknown role", func(c *Credentials) { c.Role = "Moderator" }},
		{"plaintext password", func(c *Credentials) { c.PasswordHash = "analytical" }},
		{"missing password", func(c *Credentials) { c.PasswordHash = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCredentials(t)
			tt.mutate(c)
			assert.Error(t, CheckInvariants(c))
		})
	}
}

func TestCheckInvariantsNameCountsCharacters(t *testing.T) {
	c := validCredentials(t)
	c.Name = strings.Repeat("é", 100)
	assert.NoError(t, CheckInvariants(c))
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("")
	require.NoError(t, err)
	assert.Equal(t, RolePlayer, r)

	r, err = ParseRole("admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)

	r, err = ParseRole("Player")
	require.NoError(t, err)
	assert.Equal(t, RolePlayer, r)

	_, err = ParseRole("root")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "user@example.com", NormalizeEmail("  USER@Example.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
}
