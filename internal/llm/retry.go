package llm

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"automation-coach/internal/shared/telemetry"
)

// RetryBaseDelay is the wait before the single retry of a transient failure.
var RetryBaseDelay = 300 * time.Millisecond

type retryingClient struct {
	base      Client
	taskID    string
	requestID string
}

// WithRetry wraps base so a transient failure is retried once.
func WithRetry(base Client, taskID, requestID string) Client {
	if base == nil {
		return nil
	}
	return retryingClient{base: base, taskID: taskID, requestID: requestID}
}

func (r retryingClient) Name() string { return r.base.Name() }

func (r retryingClient) Complete(ctx context.Context, prompt string) (string, error) {
	out, err := r.base.Complete(ctx, prompt)
	if err == nil || !ShouldRetry(err) {
		return out, err
	}

	telemetry.Warn("llm.retry", map[string]any{
		"attempt":    1,
		"engine":     r.base.Name(),
		"task_id":    r.taskID,
		"request_id": r.requestID,
		"error":      sanitizeError(err),
	})
	select {
	case <-time.After(RetryBaseDelay):
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return r.base.Complete(ctx, prompt)
}

// ShouldRetry reports whether err looks like a transient provider failure.
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "http status 5") || strings.Contains(msg, "http status 429") || strings.Contains(msg, "server_error") {
		return true
	}
	if strings.Contains(msg, "timeout") && (strings.Contains(msg, "openai") || strings.Contains(msg, "gemini") || strings.Contains(msg, "client.timeout")) {
		return true
	}
	for _, marker := range []string{"connection reset", "connection refused", "connection closed", "broken pipe", "tls handshake timeout", "eof"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

func sanitizeError(err error) string {
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	if len(msg) > 300 {
		msg = msg[:300]
	}
	return msg
}
