package server

import (
	"log/slog"
	"net/http"

	authHandlers "accounts-server/internal/auth/handlers"
	serverHandlers "accounts-server/internal/server/handlers"
	"accounts-server/internal/shared/cookies"
)

type Routes struct {
	authService authHandlers.Authenticator
	store       serverHandlers.Pinger
	cookie      *cookies.AuthCookie
}

func NewRoutes(authService authHandlers.Authenticator, store serverHandlers.Pinger, cookie *cookies.AuthCookie) *Routes {
	return &Routes{
		authService: authService,
		store:       store,
		cookie:      cookie,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := slog.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	healthHandler := serverHandlers.NewHealthHandler(r.store)
	loginHandler := authHandlers.NewLoginHandler(r.authService, r.cookie)
	logoutHandler := authHandlers.NewLogoutHandler(r.cookie)

	mux.Handle("GET /api/server/health", healthHandler)
	mux.Handle("POST /api/auth/login", loginHandler)
	mux.Handle("POST /auth/logout", logoutHandler)

	logger.Info("Routes configured successfully",
		"public_endpoints", []string{"/api/server/health"},
		"auth_endpoints", []string{"/api/auth/login", "/auth/logout"},
	)

	return mux
}
