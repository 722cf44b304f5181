package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full configuration surface. Everything comes from the
// environment (a .env file is honored); command binaries may override
// individual fields from flags.
type Config struct {
	// Provider selects the plan client backend: "openai" or "gemini".
	Provider string
	// EndpointURL is the OpenAI-compatible chat completions URL.
	EndpointURL string
	Model       string
	APIKey      string

	// DefaultFolder receives assets without a usable folder.
	DefaultFolder string
	// AllowShapeFallback substitutes an engine basic shape when a static
	// mesh reference is empty or unresolvable.
	AllowShapeFallback bool

	// MaxAttempts > 1 enables the retry middleware around the client.
	MaxAttempts    int
	RetryBaseDelay time.Duration

	// OutDir is where the disk host persists generated assets.
	OutDir string
	Port   string
}

func Load(getenv func(string) string) *Config {
	_ = godotenv.Load()
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	return &Config{
		Provider:           firstNonEmpty(getenv("FORGE_PROVIDER"), "openai"),
		EndpointURL:        firstNonEmpty(getenv("FORGE_ENDPOINT_URL"), "https://api.openai.com/v1/chat/completions"),
		Model:              firstNonEmpty(getenv("FORGE_MODEL"), "gpt-4o-mini"),
		APIKey:             strings.TrimSpace(getenv("FORGE_API_KEY")),
		DefaultFolder:      firstNonEmpty(getenv("FORGE_DEFAULT_FOLDER"), "/Game/AIForge"),
		AllowShapeFallback: boolOr(getenv("FORGE_ALLOW_SHAPE_FALLBACK"), true),
		MaxAttempts:        intOr(getenv("FORGE_MAX_ATTEMPTS"), 1),
		RetryBaseDelay:     durationOr(getenv("FORGE_RETRY_BASE_DELAY"), time.Second),
		OutDir:             firstNonEmpty(getenv("FORGE_OUT_DIR"), "out"),
		Port:               normalizePort(firstNonEmpty(getenv("PORT"), ":8080")),
	}
}

func normalizePort(p string) string {
	if strings.HasPrefix(p, ":") {
		return p
	}
	return ":" + p
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func boolOr(raw string, def bool) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

func intOr(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return def
	}
	return v
}

func durationOr(raw string, def time.Duration) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
