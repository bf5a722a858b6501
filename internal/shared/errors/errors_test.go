package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetType(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"validation", Validation("bad"), ErrorTypeValidation},
		{"unauthorized", Unauthorized("no"), ErrorTypeUnauthorized},
		{"configuration", Configuration("missing"), ErrorTypeConfiguration},
		{"wrapped app error", fmt.Errorf("outer: %w", Conflict("dup")), ErrorTypeConflict},
		{"plain error", stderrors.New("boom"), ErrorTypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetType(tt.err))
		})
	}
}

func TestClientMessageHidesInternalDetails(t *testing.T) {
	err := WrapInternal("failed to query accounts", stderrors.New("dial tcp 10.0.0.1:5432: refused"))

	assert.Equal(t, InternalMessage, ClientMessage(err))
	assert.Equal(t, InternalMessage, ClientMessage(stderrors.New("raw")))
	assert.Contains(t, err.Error(), "refused")
}

func TestClientMessageKeepsSafeMessages(t *testing.T) {
	assert.Equal(t, "Invalid credentials", ClientMessage(Unauthorized("Invalid credentials")))
	assert.Equal(t, "bad input", ClientMessage(WrapValidation("bad input", stderrors.New("detail"))))
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := stderrors.New("cause")
	err := WrapInternal("wrapped", cause)

	assert.ErrorIs(t, err, cause)
}
