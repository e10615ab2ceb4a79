// File: internal/services/anthropic/client.go
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/skynavi/travel-assistant/internal/domain"
)

// Client speaks the Anthropic Messages wire format and retries transient
// failures with exponential backoff.
type Client struct {
	config *Config
	client *http.Client
	retry  *RetryService
	logger Logger
}

// Logger defines the logging interface used by this package.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// NewClient validates the configuration and builds the client. A missing
// credential surfaces here, before any request is made.
func NewClient(config *Config, logger Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		retry:  NewRetryService(config, logger),
		logger: logger,
	}, nil
}

type messageRequest struct {
	Model       string               `json:"model"`
	MaxTokens   int                  `json:"max_tokens"`
	Messages    []domain.ChatMessage `json:"messages"`
	Temperature float64              `json:"temperature"`
	System      string               `json:"system,omitempty"`
}

type messageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// Complete sends the conversation and returns the generated text. Network
// and non-2xx failures are retried up to MaxAttempts with doubling delays;
// the final failure is propagated to the caller.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	var text string
	err := c.retry.WithBackoff(ctx, func(ctx context.Context) error {
		var attemptErr error
		text, attemptErr = c.send(ctx, req)
		return attemptErr
	})
	return text, err
}

func (c *Client) send(ctx context.Context, req CompletionRequest) (string, error) {
	body, err := json.Marshal(messageRequest{
		Model:       c.config.Model,
		MaxTokens:   req.MaxTokens,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		System:      req.System,
	})
	if err != nil {
		return "", NewNetworkError("invalid payload", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewBuffer(body))
	if err != nil {
		return "", NewNetworkError("failed to create request", err)
	}

	httpReq.Header.Set("x-api-key", c.config.APIKey)
	httpReq.Header.Set("anthropic-version", c.config.APIVersion)
	httpReq.Header.Set("content-type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", NewNetworkError("request failed", err)
	}
	defer resp.Body.Close()

	return c.handleResponse(resp)
}

func (c *Client) handleResponse(resp *http.Response) (string, error) {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		responseBody, _ := io.ReadAll(resp.Body)
		if resp.StatusCode == http.StatusTooManyRequests {
			return "", &APIError{
				Type:    ErrTypeRateLimit,
				Code:    resp.StatusCode,
				Message: "rate limit exceeded",
			}
		}
		return "", NewProviderError(resp.StatusCode, string(responseBody))
	}

	var parsed messageResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", NewNetworkError("failed to decode response", err)
	}
	if len(parsed.Content) == 0 {
		return "", NewProviderError(resp.StatusCode, "empty completion response")
	}

	return parsed.Content[0].Text, nil
}
