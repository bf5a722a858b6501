package config

import (
	stderrors "errors"
	"fmt"
	"math"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreBackendPostgres = "postgres"
	StoreBackendRedis    = "redis"
	StoreBackendMemory   = "memory"

	// DefaultTokenTTL matches the "1d" default of JWT_EXPIRE
	DefaultTokenTTL = 24 * time.Hour

	minBcryptCost        = 10
	maxBcryptCost        = 31
	recommendedSecretLen = 32

	maxTokenTTLDays = int64(math.MaxInt64 / int64(24*time.Hour))
)

type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Frontend FrontendConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Port         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type StoreConfig struct {
	Backend string
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// MigrationsPath overrides the bundled schema scripts when set
	MigrationsPath string
}

type RedisConfig struct {
	URL      string
	Host     string
	Port     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret      string
	TokenTTL       time.Duration
	BcryptCost     int
	CookieSecure   bool
	CookieSameSite string
}

type FrontendConfig struct {
	URL       string
	CORSDebug bool
}

type LoggingConfig struct {
	Level      string
	Format     string
	JSONFormat bool
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

var GlobalConfig *Config

// Init loads .env (when present) and the process environment into GlobalConfig.
func Init() error {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}

	config, err := Load()
	if err != nil {
		return err
	}

	GlobalConfig = config
	return nil
}

// Load reads and validates configuration from the environment without touching GlobalConfig.
func Load() (*Config, error) {
	env := &envReader{}
	environment := env.str("ENVIRONMENT", "development")
	logFormat := env.str("LOG_FORMAT", "text")

	config := &Config{
		Server: ServerConfig{
			Port:         env.str("SERVER_PORT", "8080"),
			Environment:  environment,
			ReadTimeout:  env.seconds("SERVER_READ_TIMEOUT_SECONDS", 15),
			WriteTimeout: env.seconds("SERVER_WRITE_TIMEOUT_SECONDS", 15),
			IdleTimeout:  env.seconds("SERVER_IDLE_TIMEOUT_SECONDS", 60),
		},
		Store: StoreConfig{
			Backend: strings.ToLower(env.str("STORE_BACKEND", StoreBackendPostgres)),
		},
		Database: DatabaseConfig{
			Host:            env.str("DB_HOST", "localhost"),
			Port:            env.str("DB_PORT", "5432"),
			User:            env.str("DB_USER", "postgres"),
			Password:        env.str("DB_PASSWORD", "postgres"),
			Name:            env.str("DB_NAME", "accounts"),
			SSLMode:         env.str("DB_SSLMODE", "disable"),
			MaxOpenConns:    env.integer("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    env.integer("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: time.Duration(env.integer("DB_CONN_MAX_LIFETIME_MINUTES", 5)) * time.Minute,
			MigrationsPath:  env.str("DB_MIGRATIONS_PATH", ""),
		},
		Redis: RedisConfig{
			URL:      env.str("REDIS_URL", ""),
			Host:     env.str("REDIS_HOST", "localhost"),
			Port:     env.str("REDIS_PORT", "6379"),
			Password: env.str("REDIS_PASSWORD", ""),
			DB:       env.integer("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			JWTSecret:      env.str("JWT_SECRET", ""),
			TokenTTL:       env.tokenTTL("JWT_EXPIRE"),
			BcryptCost:     env.integer("BCRYPT_COST", minBcryptCost),
			CookieSecure:   environment == "production",
			CookieSameSite: env.str("COOKIE_SAME_SITE", "lax"),
		},
		Frontend: FrontendConfig{
			URL:       env.str("FRONTEND_URL", "http://localhost:3000"),
			CORSDebug: env.flag("CORS_DEBUG"),
		},
		Logging: LoggingConfig{
			Level:      env.str("LOG_LEVEL", "debug"),
			Format:     logFormat,
			JSONFormat: environment == "production" || logFormat == "json",
		},
	}

	if err := stderrors.Join(env.errs...); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// ParseTokenTTL accepts Go durations ("90m", "12h") and whole days ("1d", "7d").
func ParseTokenTTL(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultTokenTTL, nil
	}

	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := parseInt(days)
		if err != nil || n <= 0 || int64(n) > maxTokenTTLDays {
			return 0, fmt.Errorf("JWT_EXPIRE %q is not a valid number of days", value)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}

	ttl, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("JWT_EXPIRE %q is not a valid duration: %w", value, err)
	}
	if ttl <= 0 {
		return 0, fmt.Errorf("JWT_EXPIRE must be positive")
	}
	return ttl, nil
}

func (c *Config) validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Auth.BcryptCost < minBcryptCost || c.Auth.BcryptCost > maxBcryptCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", minBcryptCost, maxBcryptCost)
	}

	switch c.Store.Backend {
	case StoreBackendPostgres:
		if c.Database.Host == "" || c.Database.Name == "" {
			return fmt.Errorf("DB_HOST and DB_NAME are required for the postgres store")
		}
	case StoreBackendRedis, StoreBackendMemory:
	default:
		return fmt.Errorf("STORE_BACKEND %q is not supported", c.Store.Backend)
	}

	return nil
}

// Warnings reports settings that do not stop startup but make login fail or weaken it.
// A missing JWT_SECRET is checked again on every login.
func (c *Config) Warnings() []string {
	var warnings []string
	switch {
	case c.Auth.JWTSecret == "":
		warnings = append(warnings, "JWT_SECRET is not set, every login will fail with a configuration error")
	case len(c.Auth.JWTSecret) < recommendedSecretLen:
		warnings = append(warnings, fmt.Sprintf("JWT_SECRET is shorter than %d characters", recommendedSecretLen))
	}
	if c.IsProduction() && c.Store.Backend == StoreBackendMemory {
		warnings = append(warnings, "STORE_BACKEND=memory loses every account on restart")
	}
	return warnings
}

// DSN renders the settings as a postgres:// URL with every part escaped.
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}
