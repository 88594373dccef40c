package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go"
	"google.golang.org/genai"
)

// Backoff is the delay before retry n (0-based). Tests shorten it.
var Backoff = func(n int) time.Duration {
	return time.Duration(1<<n) * time.Second
}

// ChatWithRetry calls Chat up to attempts times, sleeping Backoff between
// retryable failures.
func ChatWithRetry(ctx context.Context, c Client, req Request, result any, attempts int) (*Response, error) {
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		resp, err := c.Chat(ctx, req, result)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !IsRetryable(ctx, err) {
			return nil, err
		}
		if attempt == attempts-1 {
			break
		}
		slog.WarnContext(ctx, "llm chat retry",
			"schema", req.SchemaName,
			"attempt", attempt+1,
			"error", err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(Backoff(attempt)):
		}
	}
	return nil, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

func IsRetryable(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		slog.DebugContext(ctx, "llm error not retryable: context cancelled or deadline exceeded")
		return false
	}

	status := 0
	var openaiErr *openai.Error
	var anthropicErr *anthropic.Error
	var geminiErr genai.APIError
	switch {
	case errors.As(err, &openaiErr):
		status = openaiErr.StatusCode
	case errors.As(err, &anthropicErr):
		status = anthropicErr.StatusCode
	case errors.As(err, &geminiErr):
		status = geminiErr.Code
	}

	switch {
	case status == 0:
		// Network errors (no API response) are generally retryable
		slog.WarnContext(ctx, "llm network error, will retry", "error", err)
		return true
	case status == 429:
		slog.WarnContext(ctx, "llm rate limited, will retry", "status_code", status)
		return true
	case status >= 500:
		slog.WarnContext(ctx, "llm server error, will retry", "status_code", status)
		return true
	default:
		slog.ErrorContext(ctx, "llm client error, not retryable", "status_code", status)
		return false
	}
}
