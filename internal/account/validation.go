package account

import (
	stderrors "errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"accounts-server/internal/shared/errors"
)

const (
	maxNameLength    = 100
	maxPasswordBytes = 72

	// MinPasswordLength mirrors the min tag on NewAccount.Password
	MinPasswordLength = 6
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("email_shape", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("account_role", func(fl validator.FieldLevel) bool {
		return Role(fl.Field().String()).IsValid()
	})
	return v
}

// validationError turns validator output into a client-safe validation error.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errors.WrapValidation("invalid account", err)
	}

	fe := fieldErrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return errors.WrapValidation(fmt.Sprintf("%s is required", field), err)
	case "max":
		return errors.WrapValidation(fmt.Sprintf("%s must be at most %s characters", field, fe.Param()), err)
	case "min":
		return errors.WrapValidation(fmt.Sprintf("%s must be at least %s characters", field, fe.Param()), err)
	case "email_shape":
		return errors.WrapValidation("Please provide a valid email", err)
	case "account_role":
		return ErrInvalidRole
	default:
		return errors.WrapValidation(fmt.Sprintf("%s is invalid", field), err)
	}
}

// CheckInvariants is run by every Store before a write. It holds regardless of how the
// record was built: normalized unique-key email, bounded name, closed role set, and a
// password field that contains a bcrypt hash rather than plaintext.
func CheckInvariants(c *Credentials) error {
	if c == nil {
		return errors.Validation("invalid account: missing record")
	}
	if c.Email == "" || c.Email != NormalizeEmail(c.Email) || !emailPattern.MatchString(c.Email) {
		return errors.Validationf("invalid account: email %q is not normalized", c.Email)
	}
	name := strings.TrimSpace(c.Name)
	if name == "" || name != c.Name || utf8.RuneCountInString(name) > maxNameLength {
		return errors.Validation("invalid account: name must be trimmed and 1-100 characters")
	}
	if !c.Role.IsValid() {
		return ErrInvalidRole
	}
	if _, err := bcrypt.Cost([]byte(c.PasswordHash)); err != nil {
		return errors.WrapValidation("invalid account: password is not hashed", err)
	}
	return nil
}
