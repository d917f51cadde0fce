// Package config loads runtime configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the runtime configuration surface. Credentials for the managed
// services are ambient: the index and gateway endpoints are assumed to be
// pre-authorized, and SDK providers read their own API keys.
type Config struct {
	IndexEndpoint   string
	IndexID         string
	GatewayEndpoint string

	Provider    string
	Model       string
	MaxTokens   int
	Temperature float64
	PageSize    int

	Timeout time.Duration
	Port    string

	OpenAIAPIKey string
	GeminiAPIKey string
}

// Load reads configuration from the environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		IndexEndpoint:   getEnv("INDEX_ENDPOINT", "http://localhost:8200"),
		IndexID:         getEnv("INDEX_ID", ""),
		GatewayEndpoint: getEnv("MODEL_GATEWAY_ENDPOINT", "http://localhost:8400"),

		Provider:    getEnv("PROVIDER", "titan"),
		Model:       getEnv("MODEL", ""),
		MaxTokens:   getEnvInt("MAX_TOKENS", 512),
		Temperature: getEnvFloat("TEMPERATURE", 0.7),
		PageSize:    getEnvInt("PAGE_SIZE", 5),

		Timeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 30)) * time.Second,
		Port:    getEnv("PORT", "8080"),

		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
	}
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
