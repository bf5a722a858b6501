package handlers

import (
	"log/slog"
	"net/http"

	"accounts-server/internal/shared/cookies"
	"accounts-server/internal/shared/response"
)

type LogoutHandler struct {
	cookie *cookies.AuthCookie
}

func NewLogoutHandler(cookie *cookies.AuthCookie) *LogoutHandler {
	return &LogoutHandler{cookie: cookie}
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "logout", "remote_addr", r.RemoteAddr)
	logger.Debug("Logout requested")

	h.cookie.Clear(w)
	response.Success(w, http.StatusOK, map[string]string{"message": "Logged out"})

	logger.Info("Account logged out")
}
