package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

type Config struct {
	AppURL          string
	DatabaseDSN     string
	JWTSecret       string
	TokenTTLHours   int
	DefaultPageSize int
	MaxPageSize     int
	CatalogCacheTTL int // seconds
	Debug           bool
}

func Load() Config {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8008")

	cfg := Config{
		AppURL:          fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:     getEnv("DATABASE_DSN", "task-manager.db"),
		JWTSecret:       getEnv("JWT_SECRET", "development-insecure-secret-change-me"),
		TokenTTLHours:   getEnvAsInt("TOKEN_TTL_HOURS", 24),
		DefaultPageSize: getEnvAsInt("DEFAULT_PAGE_SIZE", 10),
		MaxPageSize:     getEnvAsInt("MAX_PAGE_SIZE", 100),
		CatalogCacheTTL: getEnvAsInt("CATALOG_CACHE_TTL_SECONDS", 60),
		Debug:           getEnv("DEBUG", "") != "",
	}

	validate(cfg)
	return cfg
}

func validate(cfg Config) {
	if cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN must not be empty")
	}
	if cfg.TokenTTLHours <= 0 {
		log.Fatal("TOKEN_TTL_HOURS must be greater than 0")
	}
	if cfg.DefaultPageSize <= 0 {
		log.Fatal("DEFAULT_PAGE_SIZE must be greater than 0")
	}
	if cfg.MaxPageSize < cfg.DefaultPageSize {
		log.Fatal("MAX_PAGE_SIZE must be at least DEFAULT_PAGE_SIZE")
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid integer value for %s", key)
		}
		return i
	}
	return defaultVal
}
