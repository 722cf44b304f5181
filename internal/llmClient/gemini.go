package llmclient

import (
	"context"

	genai "google.golang.org/genai"

	"blueprintforge/internal/plan"
)

// GeminiClient is a thin wrapper around the official genai client. It asks
// for application/json output and still runs the reply through the same
// extraction path as the HTTP client, since models occasionally wrap the
// object in prose anyway.
type GeminiClient struct {
	cli   *genai.Client
	model string
}

// NewGeminiClient creates a Gemini-backed plan client.
// NOTE: apiKey may be empty; the genai client also reads GEMINI_API_KEY from
// the environment. The parameter keeps the factory signature uniform.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	cfg := &genai.ClientConfig{Backend: genai.BackendGeminiAPI}
	if apiKey != "" {
		cfg.APIKey = apiKey
	}
	cli, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &GeminiClient{cli: cli, model: model}, nil
}

func (g *GeminiClient) Name() string { return "Gemini:" + g.model }
func (g *GeminiClient) Close() error { return nil }

func (g *GeminiClient) GeneratePlan(ctx context.Context, userPrompt string) (PlanResult, error) {
	full := plan.SystemPrompt + "\n\n[USER REQUEST]\n" + userPrompt

	temp := float32(0.2)
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: full}}}},
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			Temperature:      &temp,
		},
	)
	if err != nil {
		return PlanResult{}, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return PlanResult{}, ErrNoJSONObject
	}
	return ExtractPlan(resp.Candidates[0].Content.Parts[0].Text)
}
