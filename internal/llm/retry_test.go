package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	llmclient "blueprintforge/internal/llmClient"
)

type scriptedClient struct {
	calls   int
	errs    []error
	result  llmclient.PlanResult
	lastCtx context.Context
}

func (s *scriptedClient) Name() string { return "scripted" }
func (s *scriptedClient) Close() error { return nil }

func (s *scriptedClient) GeneratePlan(ctx context.Context, userPrompt string) (llmclient.PlanResult, error) {
	s.lastCtx = ctx
	s.calls++
	if s.calls <= len(s.errs) {
		return llmclient.PlanResult{}, s.errs[s.calls-1]
	}
	return s.result, nil
}

func TestRetry_SucceedsAfterTransientFailures(t *testing.T) {
	inner := &scriptedClient{
		errs:   []error{errors.New("boom"), errors.New("boom again")},
		result: llmclient.PlanResult{JSONText: `{"assets":[]}`},
	}
	client := Wrap(inner, Retry(3, time.Millisecond))

	res, err := client.GeneratePlan(context.Background(), "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 3 {
		t.Fatalf("calls = %d, want 3", inner.calls)
	}
	if res.JSONText != `{"assets":[]}` {
		t.Fatalf("result = %+v", res)
	}
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	last := errors.New("still down")
	inner := &scriptedClient{errs: []error{errors.New("down"), last}}
	client := Wrap(inner, Retry(2, time.Millisecond))

	_, err := client.GeneratePlan(context.Background(), "x")
	if !errors.Is(err, last) {
		t.Fatalf("got %v, want the last attempt's error", err)
	}
	if inner.calls != 2 {
		t.Fatalf("calls = %d, want 2", inner.calls)
	}
}

func TestRetry_PermanentErrorStopsImmediately(t *testing.T) {
	inner := &scriptedClient{
		errs: []error{llmclient.NewPermanentError(errors.New("bad request"))},
	}
	client := Wrap(inner, Retry(5, time.Millisecond))

	_, err := client.GeneratePlan(context.Background(), "x")
	var pErr *llmclient.PermanentError
	if !errors.As(err, &pErr) {
		t.Fatalf("got %v, want PermanentError", err)
	}
	if inner.calls != 1 {
		t.Fatalf("calls = %d, want 1", inner.calls)
	}
}

func TestRetry_CanceledContextStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inner := &scriptedClient{errs: []error{errors.New("down"), errors.New("down")}}
	client := Wrap(inner, Retry(3, time.Millisecond))

	_, err := client.GeneratePlan(ctx, "x")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
	if inner.calls != 1 {
		t.Fatalf("calls = %d, want 1", inner.calls)
	}
}

func TestWrap_OrderIsRightToLeft(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next llmclient.PlanClient) llmclient.PlanClient {
			return &tagged{next: next, name: name, order: &order}
		}
	}

	inner := &scriptedClient{result: llmclient.PlanResult{JSONText: "{}"}}
	client := Wrap(inner, tag("outer"), tag("inner"))
	if _, err := client.GeneratePlan(context.Background(), "x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Fatalf("order = %v", order)
	}
}

type tagged struct {
	next  llmclient.PlanClient
	name  string
	order *[]string
}

func (t *tagged) Name() string { return t.next.Name() }
func (t *tagged) Close() error { return t.next.Close() }

func (t *tagged) GeneratePlan(ctx context.Context, userPrompt string) (llmclient.PlanResult, error) {
	*t.order = append(*t.order, t.name)
	return t.next.GeneratePlan(ctx, userPrompt)
}
