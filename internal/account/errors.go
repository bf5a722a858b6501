package account

import "accounts-server/internal/shared/errors"

var (
	ErrAccountNotFound = errors.NotFound("account not found")
	ErrEmailTaken      = errors.Conflict("email already registered")
	ErrInvalidRole     = errors.Validation("role must be Admin or Player")
	ErrInvalidBalance  = errors.Validation("balance must be an exact decimal number")
	ErrPasswordTooLong = errors.Validation("password must be at most 72 bytes")
)
