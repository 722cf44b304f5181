// Package service ties the plan client and the graph builder into the one
// operation the outside world calls: prompt in, status plus created
// identifiers out.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"blueprintforge/internal/forge"
	llmclient "blueprintforge/internal/llmClient"
)

// ErrEmptyPrompt is returned before any network call when the prompt is
// blank.
var ErrEmptyPrompt = errors.New("prompt is empty")

// Outcome is what the caller sees. Status is always populated with a
// human-readable line, on failure as well as success.
type Outcome struct {
	Status  string
	Created []string
	Assets  []forge.AssetOutcome
	// RawResponse keeps the model's unmodified reply for diagnostics.
	RawResponse string
}

// Forge runs the full prompt-to-assets round trip. The mutex serializes
// builder invocations: host object-graph mutation is single-writer, while
// the LLM call deliberately runs outside the lock so a slow request never
// blocks another caller's build.
type Forge struct {
	client llmclient.PlanClient
	gen    *forge.Generator

	buildMu sync.Mutex
}

func New(client llmclient.PlanClient, gen *forge.Generator) *Forge {
	return &Forge{client: client, gen: gen}
}

// Generate asks the model for a plan and materializes it. Errors are also
// reflected in Outcome.Status, so callers that only surface a string can
// ignore the error value.
func (f *Forge) Generate(ctx context.Context, prompt string) (Outcome, error) {
	if strings.TrimSpace(prompt) == "" {
		return Outcome{Status: "Nothing to do: " + ErrEmptyPrompt.Error()}, ErrEmptyPrompt
	}

	planRes, err := f.client.GeneratePlan(ctx, prompt)
	if err != nil {
		return Outcome{
			Status:      "AI request failed: " + err.Error(),
			RawResponse: planRes.RawText,
		}, err
	}

	// A caller that went away while the request was in flight: drop the
	// result instead of mutating the host on its behalf.
	if err := ctx.Err(); err != nil {
		return Outcome{Status: "Canceled: " + err.Error(), RawResponse: planRes.RawText}, err
	}

	f.buildMu.Lock()
	res, err := f.gen.Generate(planRes.JSONText)
	f.buildMu.Unlock()
	if err != nil {
		return Outcome{
			Status:      "Generation failed: " + err.Error(),
			Assets:      res.Assets,
			RawResponse: planRes.RawText,
		}, err
	}

	return Outcome{
		Status:      fmt.Sprintf("Created %d asset(s): %s", len(res.Created), strings.Join(res.Created, ", ")),
		Created:     res.Created,
		Assets:      res.Assets,
		RawResponse: planRes.RawText,
	}, nil
}

// GenerateFromPlan skips the model and builds directly from plan JSON text.
// Used by the CLI's offline mode and by callers that already hold a plan.
func (f *Forge) GenerateFromPlan(planText string) (Outcome, error) {
	f.buildMu.Lock()
	res, err := f.gen.Generate(planText)
	f.buildMu.Unlock()
	if err != nil {
		return Outcome{Status: "Generation failed: " + err.Error(), Assets: res.Assets}, err
	}
	return Outcome{
		Status:  fmt.Sprintf("Created %d asset(s): %s", len(res.Created), strings.Join(res.Created, ", ")),
		Created: res.Created,
		Assets:  res.Assets,
	}, nil
}
