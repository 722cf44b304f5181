package llmclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"blueprintforge/internal/plan"
	"blueprintforge/internal/util/jsonutil"
)

// Fixed per request; a plan generation is all-or-nothing, no streaming.
const requestTimeout = 120 * time.Second

// OpenAIClient calls an OpenAI-compatible chat completions endpoint
// (api.openai.com, Ollama, LM Studio, OpenRouter, ...) and extracts the plan
// JSON from the reply. The response body is tolerated in three shapes, tried
// in order: the choices envelope, a bare {"content": "..."} object, or the
// plan JSON as the whole body.
type OpenAIClient struct {
	http     *http.Client
	endpoint string
	model    string
	apiKey   string
}

// NewOpenAIClient creates a client. The endpoint is validated at request
// time so that a late-configured endpoint still works.
func NewOpenAIClient(endpoint, model, apiKey string) *OpenAIClient {
	return &OpenAIClient{
		http:     &http.Client{Timeout: requestTimeout},
		endpoint: endpoint,
		model:    model,
		apiKey:   apiKey,
	}
}

func (c *OpenAIClient) Name() string { return "OpenAI:" + c.model }
func (c *OpenAIClient) Close() error { return nil }

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse covers both the OpenAI envelope and the bare-content shape
// some local servers return.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Content string `json:"content"`
}

// GeneratePlan sends the schema contract plus the user prompt at a low
// temperature and returns the extracted plan JSON.
func (c *OpenAIClient) GeneratePlan(ctx context.Context, userPrompt string) (PlanResult, error) {
	url := strings.TrimSpace(c.endpoint)
	if url == "" {
		return PlanResult{}, ErrNoEndpoint
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: plan.SystemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return PlanResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return PlanResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if key := strings.TrimSpace(c.apiKey); key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return PlanResult{}, fmt.Errorf("%w: %v", ErrNoResponse, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return PlanResult{}, fmt.Errorf("%w: %v", ErrNoResponse, err)
	}
	rawText := string(raw)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{Code: resp.StatusCode, Body: truncate(rawText, 1200)}
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return PlanResult{RawText: rawText}, NewPermanentError(statusErr)
		}
		return PlanResult{RawText: rawText}, statusErr
	}

	return ExtractPlan(rawText)
}

// ExtractPlan normalizes a 2xx response body into a PlanResult: pick the
// content candidate, extract the first JSON object, and verify it parses.
func ExtractPlan(rawText string) (PlanResult, error) {
	candidate := contentCandidate(rawText)

	jsonText := jsonutil.ExtractFirstObject(candidate)
	if jsonText == "" {
		return PlanResult{RawText: rawText}, ErrNoJSONObject
	}
	if !jsonutil.IsObject(jsonText) {
		return PlanResult{RawText: rawText}, NewPermanentError(
			fmt.Errorf("extracted JSON was invalid, first 800 chars: %s", truncate(jsonText, 800)))
	}
	return PlanResult{JSONText: jsonText, RawText: rawText}, nil
}

func contentCandidate(rawText string) string {
	var out chatResponse
	if err := json.Unmarshal([]byte(rawText), &out); err == nil {
		if len(out.Choices) > 0 && out.Choices[0].Message.Content != "" {
			return out.Choices[0].Message.Content
		}
		if out.Content != "" {
			return out.Content
		}
	}
	// Some servers return the plan JSON directly as the whole body.
	return rawText
}
