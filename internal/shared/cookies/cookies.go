package cookies

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"accounts-server/internal/shared/config"
)

const AuthCookieName = "auth_token"

// Settings controls the attributes of the auth cookie.
type Settings struct {
	Secure      bool
	SameSite    string
	FrontendURL string
	MaxAge      time.Duration
}

func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		Secure:      cfg.Auth.CookieSecure,
		SameSite:    cfg.Auth.CookieSameSite,
		FrontendURL: cfg.Frontend.URL,
		MaxAge:      cfg.Auth.TokenTTL,
	}
}

// AuthCookie writes and clears the HttpOnly session cookie.
type AuthCookie struct {
	template http.Cookie
	maxAge   int
}

func NewAuthCookie(settings Settings) *AuthCookie {
	return &AuthCookie{
		template: http.Cookie{
			Name:     AuthCookieName,
			Path:     "/",
			Domain:   cookieDomain(settings.FrontendURL),
			HttpOnly: true,
			Secure:   settings.Secure,
			SameSite: parseSameSite(settings.SameSite),
		},
		maxAge: int(settings.MaxAge / time.Second),
	}
}

func (c *AuthCookie) Set(w http.ResponseWriter, token string) {
	cookie := c.template
	cookie.Value = token
	cookie.MaxAge = c.maxAge
	http.SetCookie(w, &cookie)
}

func (c *AuthCookie) Clear(w http.ResponseWriter) {
	cookie := c.template
	cookie.MaxAge = -1
	http.SetCookie(w, &cookie)
}

// cookieDomain scopes the cookie to the frontend host. Local hosts get a host-only cookie.
func cookieDomain(frontendURL string) string {
	parsed, err := url.Parse(frontendURL)
	if err != nil {
		return ""
	}
	switch host := parsed.Hostname(); host {
	case "", "localhost", "127.0.0.1", "::1":
		return ""
	default:
		return host
	}
}

func parseSameSite(mode string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
