package llm

import (
	llmclient "blueprintforge/internal/llmClient"
)

// Middleware decorates a PlanClient to inject cross-cutting concerns
// (logging, retries, etc.).
type Middleware func(llmclient.PlanClient) llmclient.PlanClient

// Wrap applies middlewares in left-to-right order.
// Example: Wrap(inner, A, B) => A(B(inner))
func Wrap(inner llmclient.PlanClient, mws ...Middleware) llmclient.PlanClient {
	out := inner
	for i := len(mws) - 1; i >= 0; i-- {
		out = mws[i](out)
	}
	return out
}
