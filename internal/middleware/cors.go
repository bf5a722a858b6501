package middleware

import (
	"log/slog"
	"net/http"

	"github.com/rs/cors"

	"accounts-server/internal/shared/config"
)

// CORS admits credentialed browser requests from the configured frontend origin only.
func CORS(cfg config.FrontendConfig) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins:   []string{cfg.URL},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		Debug:            cfg.CORSDebug,
	}

	slog.Info("CORS configured",
		"component", "cors",
		"allowed_origins", opts.AllowedOrigins,
		"allowed_methods", opts.AllowedMethods,
		"debug_mode", opts.Debug,
	)

	return cors.New(opts).Handler
}
