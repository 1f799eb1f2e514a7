package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/kapu/kokkai-giin-go/internal/constants"
)

type Config struct {
	Scraper  ScraperConfig
	Storage  StorageConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Kokkai   KokkaiConfig
	Server   ServerConfig
	Logging  LoggingConfig
}

type ScraperConfig struct {
	UserAgent       string
	AcceptLanguage  string
	ProfileDelay    time.Duration
	RequestTimeout  time.Duration // 0 keeps the HTTP client default
	ShugiinListURLs []string
	SangiinListURLs []string
}

type StorageConfig struct {
	DataDir string
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type KokkaiConfig struct {
	BaseURL  string
	CacheTTL time.Duration
}

type ServerConfig struct {
	Addr           string
	AllowedOrigins []string // empty allows localhost origins only
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Scraper: ScraperConfig{
			UserAgent:       getEnv("SCRAPER_USER_AGENT", constants.ScraperConfig.UserAgent),
			AcceptLanguage:  getEnv("SCRAPER_ACCEPT_LANGUAGE", constants.ScraperConfig.AcceptLanguage),
			ProfileDelay:    time.Duration(getEnvInt("SCRAPER_PROFILE_DELAY_MS", int(constants.ScraperConfig.ProfileDelay/time.Millisecond))) * time.Millisecond,
			RequestTimeout:  time.Duration(getEnvInt("SCRAPER_REQUEST_TIMEOUT_SECONDS", 0)) * time.Second,
			ShugiinListURLs: getEnvList("SHUGIIN_LIST_URLS", constants.ShugiinListURLs),
			SangiinListURLs: getEnvList("SANGIIN_LIST_URLS", constants.SangiinListURLs),
		},
		Storage: StorageConfig{
			DataDir: getEnv("DATA_DIR", constants.DataFiles.Dir),
		},
		Postgres: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "giin"),
			Password: getEnv("POSTGRES_PASSWORD", "giin"),
			Database: getEnv("POSTGRES_DB", "giin"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kokkai: KokkaiConfig{
			BaseURL:  getEnv("KOKKAI_API_BASE_URL", constants.KokkaiAPI.BaseURL),
			CacheTTL: time.Duration(getEnvInt("KOKKAI_CACHE_TTL_SECONDS", int(constants.KokkaiAPI.CacheTTL/time.Second))) * time.Second,
		},
		Server: ServerConfig{
			Addr:           getEnv("SERVER_ADDR", ":8000"),
			AllowedOrigins: parseCommaSeparated(os.Getenv("CORS_ALLOWED_ORIGINS")),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks what every command needs. Postgres and Redis settings are
// checked when a command connects.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Storage.DataDir) == "" {
		return fmt.Errorf("DATA_DIR is required")
	}
	if len(c.Scraper.ShugiinListURLs) == 0 {
		return fmt.Errorf("SHUGIIN_LIST_URLS must contain at least one URL")
	}
	if len(c.Scraper.SangiinListURLs) == 0 {
		return fmt.Errorf("SANGIIN_LIST_URLS must contain at least one URL")
	}
	if c.Scraper.ProfileDelay < 0 {
		return fmt.Errorf("SCRAPER_PROFILE_DELAY_MS must not be negative")
	}
	if c.Scraper.RequestTimeout < 0 {
		return fmt.Errorf("SCRAPER_REQUEST_TIMEOUT_SECONDS must not be negative")
	}
	if c.Kokkai.BaseURL == "" {
		return fmt.Errorf("KOKKAI_API_BASE_URL is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	if parsed := parseCommaSeparated(os.Getenv(key)); len(parsed) > 0 {
		return parsed
	}
	return append([]string(nil), defaultValue...)
}

func parseCommaSeparated(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
