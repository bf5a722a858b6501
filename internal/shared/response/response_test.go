package response

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accounts-server/internal/shared/errors"
)

func TestErrorStatusAndBody(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"configuration", errors.Configuration("Server configuration error"), http.StatusInternalServerError, "Server configuration error"},
		{"validation", errors.Validation("Email and password are required"), http.StatusBadRequest, "Email and password are required"},
		{"unauthorized", errors.Unauthorized("Invalid credentials"), http.StatusUnauthorized, "Invalid credentials"},
		{"conflict", errors.Conflict("email already registered"), http.StatusConflict, "email already registered"},
		{"internal hides detail", errors.WrapInternal("query failed", stderrors.New("connection reset")), http.StatusInternalServerError, errors.InternalMessage},
		{"unclassified", stderrors.New("boom"), http.StatusInternalServerError, errors.InternalMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
			rec := httptest.NewRecorder()

			Error(rec, req, nil, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMessage, body.Message)
			assert.Equal(t, tt.wantStatus, body.Code)
		})
	}
}

func TestSuccessWritesJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	Success(rec, http.StatusOK, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestStatusCodeUnknownType(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusCode("teapot"))
}
