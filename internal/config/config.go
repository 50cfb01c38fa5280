package config

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// EnvDevelopment is the only environment allowed to run without a session secret.
	EnvDevelopment = "development"
	// EnvProduction enables secure cookies by default.
	EnvProduction = "production"

	// MinSecretLength is the minimum accepted session secret size in bytes.
	MinSecretLength = 32
)

var (
	ErrMissingSecret   = errors.New("SESSION_SECRET is required outside development")
	ErrDefaultSecret   = errors.New("SESSION_SECRET uses a well-known default value")
	ErrWeakSecret      = fmt.Errorf("SESSION_SECRET must be at least %d bytes", MinSecretLength)
	ErrMissingDatabase = errors.New("POSTGRES_DSN is required")
)

// knownDefaultSecrets are placeholder values that must never sign production tokens.
var knownDefaultSecrets = []string{
	"fallback-secret-key-for-development",
	"dev-secret",
	"secret",
	"changeme",
}

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	AI       AIConfig

	// Warnings collects non-fatal configuration problems for the caller to log.
	Warnings []string
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level       string
	Format      string
	Service     string
	Development bool
}

// AuthConfig defines session and credential parameters.
type AuthConfig struct {
	SessionSecret       string
	SecretEphemeral     bool
	SessionTTLHours     int
	CookieName          string
	CookieSecure        bool
	RefetchUser         bool
	BcryptCost          int
	LoginMaxAttempts    int
	LoginLockoutMinutes int
}

// AIConfig points at the external text-generation service used for risk assessments.
type AIConfig struct {
	Endpoint       string
	APIKey         string
	Model          string
	TimeoutSeconds int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	env := strings.ToLower(getEnv("APP_ENV", EnvDevelopment))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "audit-tracker"),
			Env:                   env,
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            getEnv("POSTGRES_DSN", os.Getenv("POSTGRES_URL")),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Format:      getEnv("LOG_FORMAT", "json"),
			Service:     getEnv("APP_NAME", "audit-tracker"),
			Development: env == EnvDevelopment,
		},
		Auth: AuthConfig{
			SessionSecret:       os.Getenv("SESSION_SECRET"),
			SessionTTLHours:     getEnvAsInt("AUTH_SESSION_TTL_HOURS", 24),
			CookieName:          getEnv("AUTH_COOKIE_NAME", "session"),
			CookieSecure:        getEnvAsBool("AUTH_COOKIE_SECURE", env == EnvProduction),
			RefetchUser:         getEnvAsBool("AUTH_SESSION_REFETCH_USER", false),
			BcryptCost:          getEnvAsInt("AUTH_BCRYPT_COST", 10),
			LoginMaxAttempts:    getEnvAsInt("AUTH_LOGIN_MAX_ATTEMPTS", 5),
			LoginLockoutMinutes: getEnvAsInt("AUTH_LOGIN_LOCKOUT_MINUTES", 15),
		},
		AI: AIConfig{
			Endpoint:       os.Getenv("AI_ENDPOINT"),
			APIKey:         os.Getenv("AI_API_KEY"),
			Model:          getEnv("AI_MODEL", "gemini-2.0-flash"),
			TimeoutSeconds: getEnvAsInt("AI_TIMEOUT_SECONDS", 60),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate enforces startup invariants. Secret problems are fatal outside
// development; in development they are downgraded to Warnings.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Postgres.DSN) == "" {
		return ErrMissingDatabase
	}
	if c.Auth.SessionTTLHours <= 0 {
		return fmt.Errorf("invalid AUTH_SESSION_TTL_HOURS: %d", c.Auth.SessionTTLHours)
	}
	if strings.TrimSpace(c.Auth.CookieName) == "" {
		return errors.New("AUTH_COOKIE_NAME must not be empty")
	}
	return c.validateSecret()
}

func (c *Config) validateSecret() error {
	dev := c.App.IsDevelopment()
	secret := c.Auth.SessionSecret

	if secret == "" {
		if !dev {
			return ErrMissingSecret
		}
		generated, err := randomSecret()
		if err != nil {
			return fmt.Errorf("generate development secret: %w", err)
		}
		c.Auth.SessionSecret = generated
		c.Auth.SecretEphemeral = true
		c.Warnings = append(c.Warnings, "SESSION_SECRET not set; using an ephemeral secret, sessions end on restart")
		return nil
	}

	for _, known := range knownDefaultSecrets {
		if secret == known {
			if !dev {
				return ErrDefaultSecret
			}
			c.Warnings = append(c.Warnings, ErrDefaultSecret.Error())
			break
		}
	}
	if len(secret) < MinSecretLength {
		if !dev {
			return ErrWeakSecret
		}
		c.Warnings = append(c.Warnings, ErrWeakSecret.Error())
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// IsDevelopment reports whether the process runs in the development environment.
func (a AppConfig) IsDevelopment() bool {
	return a.Env == EnvDevelopment
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// SessionTTL returns the lifetime of an issued session token.
func (a AuthConfig) SessionTTL() time.Duration {
	return time.Duration(a.SessionTTLHours) * time.Hour
}

// LoginLockout returns how long an email stays locked after too many failures.
func (a AuthConfig) LoginLockout() time.Duration {
	return time.Duration(a.LoginLockoutMinutes) * time.Minute
}

// Timeout returns the per-call deadline for the AI service.
func (a AIConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

func randomSecret() (string, error) {
	buf := make([]byte, MinSecretLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
