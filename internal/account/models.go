package account

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin  Role = "Admin"
	RolePlayer Role = "Player"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RolePlayer
}

// ParseRole maps user input onto the closed role set. Empty input is Player.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return RolePlayer, nil
	case "player":
		return RolePlayer, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return "", ErrInvalidRole
	}
}

// Account is the public projection of a stored account. It never carries the password hash.
type Account struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Balance   Balance   `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Credentials is the elevated projection used only by the login path.
type Credentials struct {
	Account
	PasswordHash string `json:"-"`
}

// Public drops the password hash.
func (c *Credentials) Public() *Account {
	a := c.Account
	return &a
}

// NewAccount is the input for creating an account. Password is plaintext and is hashed
// before it reaches a Store.
type NewAccount struct {
	Name     string `validate:"required,max=100"`
	Email    string `validate:"required,max=320,email_shape"`
	Password string `validate:"required,min=6"`
	Role     Role   `validate:"required,account_role"`
	Balance  string
}

// NormalizeEmail returns the lookup key for an email: trimmed and lowercased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
