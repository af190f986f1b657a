package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App         AppConfig
	OpenLibrary OpenLibraryConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	HTTP        HTTPConfig
}

type AppConfig struct {
	Environment string // development, production
	LogLevel    string
}

type OpenLibraryConfig struct {
	BaseURL    string
	UserAgent  string
	Subject    string
	Limit      int
	RPS        int
	MaxRetries int
	Timeout    time.Duration
}

// DatabaseConfig is optional; an empty DSN disables the fetch-run log.
type DatabaseConfig struct {
	DSN     string
	Timeout time.Duration
}

// RedisConfig is optional; an empty Addr disables the subject cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type HTTPConfig struct {
	Addr           string
	RateLimitRPS   float64
	RateLimitBurst int
	AllowedOrigins []string
	EnableHSTS     bool
}

// LoadEnvFiles reads .env and .env.local without overriding variables that are
// already set.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load builds the configuration from the environment.
func Load() Config {
	return Config{
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		OpenLibrary: OpenLibraryConfig{
			BaseURL:    getEnv("OPENLIBRARY_BASE_URL", "https://openlibrary.org"),
			UserAgent:  getEnv("OPENLIBRARY_USER_AGENT", "booklist/1.0"),
			Subject:    getEnv("OPENLIBRARY_SUBJECT", "science_fiction"),
			Limit:      getEnvInt("OPENLIBRARY_LIMIT", 100),
			RPS:        getEnvInt("OPENLIBRARY_RPS", 1),
			MaxRetries: getEnvInt("OPENLIBRARY_MAX_RETRIES", 0),
			Timeout:    getEnvDuration("OPENLIBRARY_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			DSN:     getEnv("DB_DSN", ""),
			Timeout: getEnvDuration("DB_TIMEOUT", 2*time.Second),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      getEnvDuration("REDIS_TTL", time.Hour),
		},
		HTTP: HTTPConfig{
			Addr:           getEnv("APP_ADDR", ":8080"),
			RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 10),
			RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 20),
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),
			EnableHSTS:     getEnv("ENABLE_HSTS", "") == "true",
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return f
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// RedactDSN hides the credentials of a database URL for logging.
func RedactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
