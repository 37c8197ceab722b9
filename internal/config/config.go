package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	StoreDriverSQLite = "sqlite"
	StoreDriverRedis  = "redis"
	StoreDriverMemory = "memory"

	ProviderGemini = "gemini"
	ProviderGroq   = "groq"
)

// Config holds the configuration for the application.
type Config struct {
	Port         int
	DatabasePath string
	StoreDriver  string
	RedisAddress string

	LLMProvider  string
	GeminiAPIKey string
	GeminiModel  string
	GroqAPIKey   string

	CORSOrigins  []string
	ProfileID    string
	HeightInches float64

	LogLevel  string
	LogFormat string
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	port := 8080
	if raw := os.Getenv("PORT"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 1 || p > 65535 {
			return nil, fmt.Errorf("PORT must be a number between 1 and 65535")
		}
		port = p
	}

	storeDriver := getEnv("STORE_DRIVER", StoreDriverSQLite)
	redisAddress := os.Getenv("REDIS_ADDRESS")
	switch storeDriver {
	case StoreDriverSQLite, StoreDriverMemory:
	case StoreDriverRedis:
		if redisAddress == "" {
			return nil, fmt.Errorf("REDIS_ADDRESS environment variable not set")
		}
	default:
		return nil, fmt.Errorf("STORE_DRIVER must be one of sqlite, redis, memory")
	}

	// Keys are optional: an unconfigured provider fails per request, not at startup.
	provider := getEnv("LLM_PROVIDER", ProviderGemini)
	if provider != ProviderGemini && provider != ProviderGroq {
		return nil, fmt.Errorf("LLM_PROVIDER must be one of gemini, groq")
	}

	height := 75.0
	if raw := os.Getenv("HEIGHT_INCHES"); raw != "" {
		h, err := strconv.ParseFloat(raw, 64)
		if err != nil || h <= 0 {
			return nil, fmt.Errorf("HEIGHT_INCHES must be a positive number")
		}
		height = h
	}

	var origins []string
	for _, o := range strings.Split(getEnv("CORS_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return &Config{
		Port:         port,
		DatabasePath: getEnv("DATABASE_PATH", "data/beast.db"),
		StoreDriver:  storeDriver,
		RedisAddress: redisAddress,
		LLMProvider:  provider,
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-pro"),
		GroqAPIKey:   os.Getenv("GROQ_API_KEY"),
		CORSOrigins:  origins,
		ProfileID:    getEnv("PROFILE_ID", "default"),
		HeightInches: height,
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
	}, nil
}

// LLMConfigured reports whether the selected provider has an API key.
func (c *Config) LLMConfigured() bool {
	if c.LLMProvider == ProviderGroq {
		return c.GroqAPIKey != ""
	}
	return c.GeminiAPIKey != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
