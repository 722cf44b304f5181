package llm

import (
	"context"
	"log"
	"time"

	llmclient "blueprintforge/internal/llmClient"
)

// WithLogging logs request size, duration and errors. Provide a custom
// logger or nil to use log.Default().
func WithLogging(logger *log.Logger) Middleware {
	if logger == nil {
		logger = log.Default()
	}
	return func(next llmclient.PlanClient) llmclient.PlanClient {
		return &logging{next: next, log: logger}
	}
}

type logging struct {
	next llmclient.PlanClient
	log  *log.Logger
}

func (l *logging) Name() string { return l.next.Name() }
func (l *logging) Close() error { return l.next.Close() }

func (l *logging) GeneratePlan(ctx context.Context, userPrompt string) (llmclient.PlanResult, error) {
	l.log.Printf("plan request (%s): %d bytes", l.next.Name(), len(userPrompt))
	start := time.Now()
	res, err := l.next.GeneratePlan(ctx, userPrompt)
	if err != nil {
		l.log.Printf("plan error (%s) after %s: %v", l.next.Name(), time.Since(start).Round(time.Millisecond), err)
		return res, err
	}
	l.log.Printf("plan response (%s) after %s: %d bytes extracted", l.next.Name(), time.Since(start).Round(time.Millisecond), len(res.JSONText))
	return res, nil
}
