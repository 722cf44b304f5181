package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"blueprintforge/internal/forge"
	"blueprintforge/internal/forge/hostmem"
	llmclient "blueprintforge/internal/llmClient"
)

type fakeClient struct {
	res   llmclient.PlanResult
	err   error
	calls int
}

func (f *fakeClient) Name() string { return "fake" }
func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) GeneratePlan(ctx context.Context, userPrompt string) (llmclient.PlanResult, error) {
	f.calls++
	return f.res, f.err
}

func newForge(client llmclient.PlanClient) *Forge {
	gen := forge.NewGenerator(hostmem.New(), forge.Options{AllowShapeFallback: true})
	return New(client, gen)
}

func TestGenerate_EmptyPrompt(t *testing.T) {
	client := &fakeClient{}
	f := newForge(client)

	out, err := f.Generate(context.Background(), "   ")
	if !errors.Is(err, ErrEmptyPrompt) {
		t.Fatalf("got %v, want ErrEmptyPrompt", err)
	}
	if client.calls != 0 {
		t.Fatal("no network call should happen for a blank prompt")
	}
	if !strings.HasPrefix(out.Status, "Nothing to do") {
		t.Fatalf("status = %q", out.Status)
	}
}

func TestGenerate_Success(t *testing.T) {
	client := &fakeClient{res: llmclient.PlanResult{
		JSONText: `{"assets":[{"type":"BlueprintActor","name":"BP_Tree"}]}`,
		RawText:  "model said things",
	}}
	f := newForge(client)

	out, err := f.Generate(context.Background(), "a tree")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != "Created 1 asset(s): /Game/AIForge/BP_Tree" {
		t.Fatalf("status = %q", out.Status)
	}
	if len(out.Created) != 1 || out.Created[0] != "/Game/AIForge/BP_Tree" {
		t.Fatalf("created = %v", out.Created)
	}
	if out.RawResponse != "model said things" {
		t.Fatalf("raw response not carried: %q", out.RawResponse)
	}
}

func TestGenerate_ClientError(t *testing.T) {
	clientErr := errors.New("HTTP 500. Response: overloaded")
	client := &fakeClient{
		res: llmclient.PlanResult{RawText: "overloaded"},
		err: clientErr,
	}
	f := newForge(client)

	out, err := f.Generate(context.Background(), "a tree")
	if !errors.Is(err, clientErr) {
		t.Fatalf("got %v", err)
	}
	if !strings.HasPrefix(out.Status, "AI request failed: ") {
		t.Fatalf("status = %q", out.Status)
	}
	if out.RawResponse != "overloaded" {
		t.Fatalf("raw response not carried on failure: %q", out.RawResponse)
	}
}

func TestGenerate_BuildFailureKeepsOutcomes(t *testing.T) {
	client := &fakeClient{res: llmclient.PlanResult{
		JSONText: `{"assets":[{"type":"Material","name":"M_Skip"}]}`,
	}}
	f := newForge(client)

	out, err := f.Generate(context.Background(), "a material")
	if !errors.Is(err, forge.ErrNoAssetsCreated) {
		t.Fatalf("got %v", err)
	}
	if !strings.HasPrefix(out.Status, "Generation failed: ") {
		t.Fatalf("status = %q", out.Status)
	}
	if len(out.Assets) != 1 || !out.Assets[0].Skipped {
		t.Fatalf("per-asset outcomes missing: %+v", out.Assets)
	}
}

func TestGenerate_CanceledCallerDoesNotBuild(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &cancelingClient{cancel: cancel}

	gen := forge.NewGenerator(hostmem.New(), forge.Options{})
	f := New(client, gen)

	out, err := f.Generate(ctx, "a tree")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
	if !strings.HasPrefix(out.Status, "Canceled: ") {
		t.Fatalf("status = %q", out.Status)
	}
	if len(out.Created) != 0 {
		t.Fatal("a canceled caller must not mutate the host")
	}
}

// cancelingClient cancels the caller's context while the request is in
// flight, then returns a valid plan.
type cancelingClient struct {
	cancel context.CancelFunc
}

func (c *cancelingClient) Name() string { return "canceling" }
func (c *cancelingClient) Close() error { return nil }

func (c *cancelingClient) GeneratePlan(ctx context.Context, userPrompt string) (llmclient.PlanResult, error) {
	c.cancel()
	return llmclient.PlanResult{JSONText: `{"assets":[{"type":"BlueprintActor","name":"BP_Late"}]}`}, nil
}

func TestGenerateFromPlan(t *testing.T) {
	f := newForge(nil)

	out, err := f.GenerateFromPlan(`{"assets":[{"type":"BlueprintActor","name":"BP_A"}]}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Created) != 1 {
		t.Fatalf("created = %v", out.Created)
	}

	if _, err := f.GenerateFromPlan("not json"); err == nil {
		t.Fatal("expected a decode error")
	}
}
