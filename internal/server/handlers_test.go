package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blueprintforge/internal/forge"
	"blueprintforge/internal/forge/hostmem"
	llmclient "blueprintforge/internal/llmClient"
	"blueprintforge/internal/service"
)

type stubClient struct {
	res   llmclient.PlanResult
	err   error
	calls int
}

func (s *stubClient) Name() string { return "stub" }
func (s *stubClient) Close() error { return nil }

func (s *stubClient) GeneratePlan(ctx context.Context, userPrompt string) (llmclient.PlanResult, error) {
	s.calls++
	return s.res, s.err
}

type stubDocs struct {
	ids  []string
	docs map[string][]byte
}

func (s *stubDocs) AssetIDs() []string { return s.ids }

func (s *stubDocs) AssetDoc(id string) ([]byte, error) {
	raw, ok := s.docs[id]
	if !ok {
		return nil, errors.New("unknown asset " + id)
	}
	return raw, nil
}

func newTestHandler(client llmclient.PlanClient, docs DocStore) http.Handler {
	gen := forge.NewGenerator(hostmem.New(), forge.Options{AllowShapeFallback: true})
	return NewHandler(service.New(client, gen), docs)
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) generateResponse {
	t.Helper()
	var out generateResponse
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("response does not parse: %v", err)
	}
	return out
}

func TestHealthz(t *testing.T) {
	h := newTestHandler(&stubClient{}, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestGenerate_PromptRoundTrip(t *testing.T) {
	client := &stubClient{res: llmclient.PlanResult{
		JSONText: `{"assets":[{"type":"BlueprintActor","name":"BP_Tree"}]}`,
	}}
	h := newTestHandler(client, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/generate",
		strings.NewReader(`{"prompt":"a tree"}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	out := decodeResponse(t, rec)
	if !out.OK {
		t.Fatalf("ok = false: %+v", out)
	}
	if len(out.Created) != 1 || out.Created[0] != "/Game/AIForge/BP_Tree" {
		t.Fatalf("created = %v", out.Created)
	}
	if client.calls != 1 {
		t.Fatalf("client calls = %d", client.calls)
	}
}

func TestGenerate_PlanBypassesModel(t *testing.T) {
	client := &stubClient{err: errors.New("should not be called")}
	h := newTestHandler(client, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/generate",
		strings.NewReader(`{"plan":{"assets":[{"type":"BlueprintActor","name":"BP_Direct"}]}}`)))

	out := decodeResponse(t, rec)
	if !out.OK {
		t.Fatalf("ok = false: %+v", out)
	}
	if client.calls != 0 {
		t.Fatal("plan bypass must not call the model")
	}
	if len(out.Created) != 1 || out.Created[0] != "/Game/AIForge/BP_Direct" {
		t.Fatalf("created = %v", out.Created)
	}
}

// A processed request whose plan yields nothing is still HTTP 200; the
// failure rides in the body.
func TestGenerate_ProcessingFailureStays200(t *testing.T) {
	client := &stubClient{res: llmclient.PlanResult{
		JSONText: `{"assets":[{"type":"Material","name":"M_X"}]}`,
	}}
	h := newTestHandler(client, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/generate",
		strings.NewReader(`{"prompt":"a material"}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	out := decodeResponse(t, rec)
	if out.OK || out.Error == "" {
		t.Fatalf("expected a carried error: %+v", out)
	}
	if len(out.Assets) != 1 || !out.Assets[0].Skipped {
		t.Fatalf("assets = %+v", out.Assets)
	}
}

func TestGenerate_BadRequests(t *testing.T) {
	h := newTestHandler(&stubClient{}, nil)

	cases := []struct {
		name   string
		method string
		body   string
		want   int
	}{
		{"wrong method", http.MethodGet, "", http.StatusMethodNotAllowed},
		{"invalid json", http.MethodPost, "{", http.StatusBadRequest},
		{"neither prompt nor plan", http.MethodPost, `{}`, http.StatusBadRequest},
		{"blank prompt", http.MethodPost, `{"prompt":"  "}`, http.StatusBadRequest},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(c.method, "/v1/generate", strings.NewReader(c.body)))
			if rec.Code != c.want {
				t.Fatalf("status = %d, want %d", rec.Code, c.want)
			}
		})
	}
}

func TestAssets_List(t *testing.T) {
	docs := &stubDocs{
		ids:  []string{"/Game/AIForge/BP_A", "/Game/AIForge/BP_B"},
		docs: map[string][]byte{"/Game/AIForge/BP_A": []byte(`{"identifier":"/Game/AIForge/BP_A"}`)},
	}
	h := newTestHandler(&stubClient{}, docs)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/assets", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out struct {
		Assets []string `json:"assets"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out.Assets) != 2 {
		t.Fatalf("assets = %v", out.Assets)
	}
}

func TestAssets_ByID(t *testing.T) {
	docs := &stubDocs{
		docs: map[string][]byte{"/Game/AIForge/BP_A": []byte(`{"identifier":"/Game/AIForge/BP_A"}`)},
	}
	h := newTestHandler(&stubClient{}, docs)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/assets?id=/Game/AIForge/BP_A", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Body.String(); got != `{"identifier":"/Game/AIForge/BP_A"}` {
		t.Fatalf("body = %q", got)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/assets?id=/Game/Missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d for unknown id", rec.Code)
	}
}

func TestAssets_NoStoreConfigured(t *testing.T) {
	h := newTestHandler(&stubClient{}, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/assets", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}
