package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is constructed once at startup and passed by reference to the
// components that need it; nothing else reads the environment.
type Config struct {
	DatabaseURL string

	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	BcryptCost         int

	ServerHost   string
	ServerPort   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	Environment  string

	RedisURL               string
	RateLimitEnabled       bool
	RateLimitAttempts      int
	RateLimitWindow        time.Duration
	RateLimitBlockDuration time.Duration

	CORSAllowedOrigins []string

	LogLevel  string
	LogFormat string
}

var (
	ErrMissingDatabaseURL   = errors.New("DATABASE_URL is required")
	ErrMissingAccessSecret  = errors.New("ACCESS_TOKEN_SECRET is required")
	ErrMissingRefreshSecret = errors.New("REFRESH_TOKEN_SECRET is required")
)

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		AccessTokenSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
		AccessTokenTTL:     getEnvOrDefaultDuration("ACCESS_TOKEN_TTL", 5*time.Minute),
		RefreshTokenTTL:    getEnvOrDefaultDuration("REFRESH_TOKEN_TTL", 24*time.Hour),
		BcryptCost:         getEnvOrDefaultInt("BCRYPT_WORK_FACTOR", 10),

		ServerHost:   getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
		ServerPort:   getEnvOrDefault("SERVER_PORT", "3001"),
		ReadTimeout:  getEnvOrDefaultDuration("SERVER_READ_TIMEOUT", 30*time.Second),
		WriteTimeout: getEnvOrDefaultDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:  getEnvOrDefaultDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		Environment:  getEnvOrDefault("ENV", "development"),

		RedisURL:               getEnvOrDefault("REDIS_URL", "redis://localhost:6379/0"),
		RateLimitEnabled:       getEnvOrDefaultBool("RATE_LIMIT_ENABLED", false),
		RateLimitAttempts:      getEnvOrDefaultInt("RATE_LIMIT_ATTEMPTS", 5),
		RateLimitWindow:        getEnvOrDefaultDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		RateLimitBlockDuration: getEnvOrDefaultDuration("RATE_LIMIT_BLOCK_DURATION", 30*time.Minute),

		CORSAllowedOrigins: parseOrigins(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),
	}

	// Speed up bcrypt during tests; the algorithm safety is not under test.
	if cfg.IsTest() && os.Getenv("BCRYPT_WORK_FACTOR") == "" {
		cfg.BcryptCost = 4
	}

	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}
	if cfg.AccessTokenSecret == "" {
		return nil, ErrMissingAccessSecret
	}
	if cfg.RefreshTokenSecret == "" {
		return nil, ErrMissingRefreshSecret
	}

	return cfg, nil
}

func (c *Config) IsTest() bool {
	return c.Environment == "test"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) ListenAddr() string {
	return c.ServerHost + ":" + c.ServerPort
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

func getEnvOrDefaultBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

// getEnvOrDefaultDuration accepts plain seconds or a Go duration string.
func getEnvOrDefaultDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if n, err := strconv.Atoi(value); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

func parseOrigins(value string) []string {
	parts := strings.Split(value, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
