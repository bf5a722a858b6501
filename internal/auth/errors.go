package auth

import (
	stderrors "errors"

	"accounts-server/internal/shared/errors"
)

var (
	ErrMissingSigningSecret = errors.Configuration("Server configuration error")
	ErrCredentialsRequired  = errors.Validation("Email and password are required")
	// ErrInvalidCredentials is returned for both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.Unauthorized("Invalid credentials")

	ErrHashing = stderrors.New("password hashing failed")
)
