package llm

import (
	"context"
	"errors"
	"time"

	llmclient "blueprintforge/internal/llmClient"
)

// Retry retries GeneratePlan up to maxAttempts with exponential backoff
// starting at baseDelay. Permanent errors are not retried, and a canceled
// context stops immediately.
func Retry(maxAttempts int, baseDelay time.Duration) Middleware {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if baseDelay <= 0 {
		baseDelay = 300 * time.Millisecond
	}
	return func(next llmclient.PlanClient) llmclient.PlanClient {
		return &retrying{next: next, max: maxAttempts, base: baseDelay}
	}
}

type retrying struct {
	next llmclient.PlanClient
	max  int
	base time.Duration
}

func (r *retrying) Name() string { return r.next.Name() }
func (r *retrying) Close() error { return r.next.Close() }

func (r *retrying) GeneratePlan(ctx context.Context, userPrompt string) (llmclient.PlanResult, error) {
	var lastRes llmclient.PlanResult
	var lastErr error
	for i := 0; i < r.max; i++ {
		res, err := r.next.GeneratePlan(ctx, userPrompt)
		if err == nil {
			return res, nil
		}
		var pErr *llmclient.PermanentError
		if errors.As(err, &pErr) {
			return res, err
		}
		lastRes, lastErr = res, err
		select {
		case <-ctx.Done():
			return lastRes, ctx.Err()
		default:
		}
		time.Sleep(r.base * time.Duration(1<<i))
	}
	return lastRes, lastErr
}
