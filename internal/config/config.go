// File: internal/config/config.go
package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      string
	DatabasePath    string
	AnthropicAPIKey string
	Environment     string
}

// Load reads configuration from environment variables or .env file.
// The Anthropic credential is the one hard requirement: without it the
// process exits before any network attempt is made.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		DatabasePath:    getEnv("DATABASE_PATH", "conversations.db"),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		Environment:     env,
	}

	if cfg.AnthropicAPIKey == "" {
		log.Fatalf("Missing required environment variable: ANTHROPIC_API_KEY")
	}

	return cfg
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
