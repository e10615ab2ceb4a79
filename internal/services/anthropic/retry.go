// File: internal/services/anthropic/retry.go
package anthropic

import (
	"context"
	"errors"
	"time"
)

// RetryService retries transient API failures with exponential backoff.
// The sleep function is injectable so tests can observe the schedule.
type RetryService struct {
	config *Config
	logger Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

func NewRetryService(config *Config, logger Logger) *RetryService {
	return &RetryService{
		config: config,
		logger: logger,
		sleep:  sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// WithBackoff runs fn up to MaxAttempts times. Delays start at RetryDelay
// and double between attempts; no delay follows the final attempt. Errors
// marked non-retryable (configuration) stop immediately. The last error
// is propagated once attempts are exhausted.
func (r *RetryService) WithBackoff(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error
	delay := r.config.RetryDelay

	for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			if attempt > 1 {
				r.logger.Info("request succeeded after retry", "attempts", attempt)
			}
			return nil
		}

		lastErr = err

		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.Retryable() {
			return err
		}

		if attempt < r.config.MaxAttempts {
			r.logger.Warn("request failed, retrying",
				"attempt", attempt, "max_attempts", r.config.MaxAttempts, "delay", delay, "error", err)
			if sleepErr := r.sleep(ctx, delay); sleepErr != nil {
				return sleepErr
			}
			delay *= 2
		}
	}

	r.logger.Error("request failed after all attempts", "attempts", r.config.MaxAttempts, "error", lastErr)
	return lastErr
}
