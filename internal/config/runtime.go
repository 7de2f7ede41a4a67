package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

const (
	defaultJWTAccessTTL = "24h"
	defaultJWTSecret    = "change-me-jwt-secret"
	defaultDatabaseDSN  = "gumeo.db"
	defaultOpenAIBase   = "https://api.openai.com/v1"
	defaultOpenAIModel  = "gpt-4o-mini"
	defaultListenAddr   = ":8080"
)

// RuntimeConfig carries everything the API process reads from the
// environment at startup.
type RuntimeConfig struct {
	AppEnv        string
	ListenAddr    string
	DatabaseDSN   string
	JWTSecret     string
	JWTAccessTTL  time.Duration
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	InternalToken string
}

func LoadRuntimeConfig() (*RuntimeConfig, error) {
	cfg := &RuntimeConfig{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.ListenAddr = envOrDefault("LISTEN_ADDR", defaultListenAddr)

	cfg.DatabaseDSN = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if cfg.DatabaseDSN == "" {
		if cfg.IsProd() {
			return nil, fmt.Errorf("DATABASE_URL is required in %s", cfg.AppEnv)
		}
		log.Printf("config DATABASE_URL empty, falling back to %s", defaultDatabaseDSN)
		cfg.DatabaseDSN = defaultDatabaseDSN
	}

	cfg.JWTSecret = envOrDefault("JWT_SECRET", defaultJWTSecret)
	if cfg.IsProd() && cfg.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set in %s", cfg.AppEnv)
	}

	ttl, err := time.ParseDuration(envOrDefault("JWT_ACCESS_TTL", defaultJWTAccessTTL))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TTL: %w", err)
	}
	cfg.JWTAccessTTL = ttl

	// Absence of the key is tolerated here: the assistant endpoint
	// fails closed per request instead of blocking startup.
	cfg.OpenAIAPIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	cfg.OpenAIBaseURL = strings.TrimRight(envOrDefault("OPENAI_BASE_URL", defaultOpenAIBase), "/")
	cfg.OpenAIModel = envOrDefault("OPENAI_MODEL", defaultOpenAIModel)

	cfg.InternalToken = strings.TrimSpace(os.Getenv("GUMEO_INTERNAL_TOKEN"))

	return cfg, nil
}

func (c *RuntimeConfig) IsProd() bool {
	return c.AppEnv == "prod" || c.AppEnv == "production"
}

func envOrDefault(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}
