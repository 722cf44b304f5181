package llmclient

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNoEndpoint means the endpoint URL was empty; no network call is
	// attempted.
	ErrNoEndpoint = errors.New("endpoint URL is empty")
	// ErrNoResponse covers transport failures where no HTTP response
	// arrived at all.
	ErrNoResponse = errors.New("request failed (no response): check the endpoint URL and that the model server is running")
	// ErrNoJSONObject means the reply contained no balanced JSON object.
	ErrNoJSONObject = errors.New("response did not contain a JSON object: ensure the endpoint returns JSON-only content")
)

// PlanResult is a successful plan request. JSONText is the first balanced
// JSON object extracted from the reply; it has been checked to parse as an
// object but is not yet schema-validated. RawText keeps the unmodified
// response body for diagnostics.
type PlanResult struct {
	JSONText string
	RawText  string
}

// PlanClient requests a generation plan from a model endpoint. A client is a
// thin wrapper around one API; cross-cutting concerns (logging, retries) are
// layered on via llm.Middleware.
type PlanClient interface {
	Name() string
	GeneratePlan(ctx context.Context, userPrompt string) (PlanResult, error)
	Close() error
}

// StatusError is a non-2xx HTTP reply. Body holds a truncated excerpt.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d. Response: %s", e.Code, e.Body)
}

// PermanentError indicates an error that will not resolve with retries.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

func NewPermanentError(err error) error {
	return &PermanentError{Err: err}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
