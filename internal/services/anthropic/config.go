// File: internal/services/anthropic/config.go
package anthropic

import "time"

const (
	DefaultEndpoint   = "https://api.anthropic.com/v1/messages"
	DefaultModel      = "claude-3-5-sonnet-20240620"
	DefaultAPIVersion = "2023-06-01"
)

type Config struct {
	// API Configuration
	APIKey     string
	Endpoint   string
	Model      string
	APIVersion string

	// Retry Configuration
	MaxAttempts int
	RetryDelay  time.Duration

	// Network Configuration
	Timeout time.Duration
}

// Validate checks the configuration. A missing credential is a fatal
// configuration error and must be caught at construction, before any
// network attempt.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return NewConfigError("ANTHROPIC_API_KEY is required")
	}
	if c.Endpoint == "" {
		return NewConfigError("endpoint is required")
	}
	if c.Model == "" {
		return NewConfigError("model is required")
	}
	if c.MaxAttempts < 1 {
		return NewConfigError("max attempts must be at least 1")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		Endpoint:    DefaultEndpoint,
		Model:       DefaultModel,
		APIVersion:  DefaultAPIVersion,
		MaxAttempts: 5,
		RetryDelay:  1 * time.Second,
		Timeout:     60 * time.Second,
	}
}
