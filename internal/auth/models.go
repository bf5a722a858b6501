package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"accounts-server/internal/account"
)

// Claims is the payload of a session token. Subject holds the account ID.
type Claims struct {
	Role account.Role `json:"role"`
	jwt.RegisteredClaims
}

// AccountView is the account summary returned with a successful login.
type AccountView struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Role    account.Role    `json:"role"`
	Balance account.Balance `json:"balance"`
}

type LoginResult struct {
	Token string       `json:"token"`
	Role  account.Role `json:"role"`
	User  AccountView  `json:"user"`
}

func newAccountView(a *account.Account) AccountView {
	return AccountView{
		ID:      a.ID,
		Name:    a.Name,
		Email:   a.Email,
		Role:    a.Role,
		Balance: a.Balance,
	}
}
