package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"accounts-server/internal/auth"
	"accounts-server/internal/shared/cookies"
	"accounts-server/internal/shared/errors"
	"accounts-server/internal/shared/response"
)

const maxLoginBodyBytes = 64 << 10

type Authenticator interface {
	Login(ctx context.Context, email, password string) (*auth.LoginResult, error)
}

type LoginHandler struct {
	service Authenticator
	cookie  *cookies.AuthCookie
}

func NewLoginHandler(service Authenticator, cookie *cookies.AuthCookie) *LoginHandler {
	return &LoginHandler{
		service: service,
		cookie:  cookie,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "login", "remote_addr", r.RemoteAddr)

	r.Body = http.MaxBytesReader(w, r.Body, maxLoginBodyBytes)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("Invalid request body", err))
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	h.cookie.Set(w, result.Token)
	response.Success(w, http.StatusOK, result)
}
