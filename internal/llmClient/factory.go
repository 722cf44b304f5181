package llmclient

import (
	"context"
	"fmt"
	"strings"
)

// Options selects and configures a concrete backend.
type Options struct {
	Provider string // "openai" (default) or "gemini"
	Endpoint string // OpenAI-compatible chat completions URL
	Model    string
	APIKey   string
}

// New builds the plan client for the configured provider.
func New(ctx context.Context, opts Options) (PlanClient, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Provider)) {
	case "", "openai":
		return NewOpenAIClient(opts.Endpoint, opts.Model, opts.APIKey), nil
	case "gemini":
		return NewGeminiClient(ctx, opts.APIKey, opts.Model)
	default:
		return nil, fmt.Errorf("unknown provider %q", opts.Provider)
	}
}
