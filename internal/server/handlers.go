package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"blueprintforge/internal/forge"
	"blueprintforge/internal/service"
)

// DocStore exposes persisted asset documents for reads. hostfs.Host
// implements it; a nil store disables the asset endpoints.
type DocStore interface {
	AssetIDs() []string
	AssetDoc(id string) ([]byte, error)
}

type generateRequest struct {
	Prompt string `json:"prompt"`
	// Plan bypasses the model when provided: the body is built directly.
	Plan json.RawMessage `json:"plan,omitempty"`
}

type generateResponse struct {
	OK      bool                 `json:"ok"`
	Status  string               `json:"status"`
	Created []string             `json:"created,omitempty"`
	Assets  []forge.AssetOutcome `json:"assets,omitempty"`
	Error   string               `json:"error,omitempty"`
}

// NewHandler builds the HTTP surface: POST /v1/generate, GET /v1/assets,
// GET /v1/assets/{id} and GET /healthz.
func NewHandler(svc *service.Forge, docs DocStore) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	mux.HandleFunc("/v1/generate", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var in generateRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid json body", http.StatusBadRequest)
			return
		}

		var out service.Outcome
		var err error
		switch {
		case len(in.Plan) > 0:
			out, err = svc.GenerateFromPlan(string(in.Plan))
		case strings.TrimSpace(in.Prompt) != "":
			out, err = svc.Generate(r.Context(), in.Prompt)
		default:
			http.Error(w, "prompt or plan is required", http.StatusBadRequest)
			return
		}

		resp := generateResponse{
			OK:      err == nil,
			Status:  out.Status,
			Created: out.Created,
			Assets:  out.Assets,
		}
		if err != nil {
			resp.Error = err.Error()
		}
		// Failures are result values, not transport errors (the plan was
		// still processed), so the reply stays 200 unless the request
		// itself was bad.
		writeJSON(w, http.StatusOK, resp)
	})

	mux.HandleFunc("/v1/assets", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if docs == nil {
			http.Error(w, "asset store not configured", http.StatusNotFound)
			return
		}
		if id := strings.TrimSpace(r.URL.Query().Get("id")); id != "" {
			raw, err := docs.AssetDoc(id)
			if err != nil {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(raw)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"assets": docs.AssetIDs()})
	})

	return mux
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
