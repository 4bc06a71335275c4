package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fernwald/rtcgate/internal/api/middleware"
	"github.com/fernwald/rtcgate/internal/audit"
	"github.com/fernwald/rtcgate/internal/core"
)

const userEndpoint = "/auth/v1/user"

// GoTrueConfig configures the remote GoTrue (Supabase auth) verifier.
type GoTrueConfig struct {
	// URL is the project base URL, e.g. https://xyz.supabase.co.
	URL string `mapstructure:"url"`

	// APIKey is the public (anon) API key sent alongside the user token.
	APIKey string `mapstructure:"api_key"`

	// Timeout bounds the verification round-trip. Defaults to 10s.
	// A timeout is treated as a failed verification (fail closed).
	Timeout time.Duration `mapstructure:"timeout"`
}

// GoTrueVerifier checks a session token by asking the auth server who it
// belongs to. Any failure to complete the check, including network errors
// and timeouts, is reported as a verification failure; the distinction is
// logged but not surfaced to callers.
type GoTrueVerifier struct {
	name       string
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewGoTrueVerifier(name string, cfg GoTrueConfig) (*GoTrueVerifier, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("gotrue verifier '%s' missing 'url'", name)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gotrue verifier '%s' missing 'api_key'", name)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GoTrueVerifier{
		name:    name,
		baseURL: strings.TrimSuffix(cfg.URL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func (g *GoTrueVerifier) Name() string {
	return g.name
}

func (g *GoTrueVerifier) Verify(ctx context.Context, token string) (*core.Principal, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", g.baseURL+userEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", g.apiKey)

	// inject audit user-agent
	req.Header.Set("User-Agent", audit.CreateUserAgent(middleware.CorrelationCtx(ctx)))

	resp, err := g.httpClient.Do(req)
	if err != nil {
		// Unreachable auth server and invalid token produce the same
		// caller-visible outcome; only the log tells them apart.
		log.Ctx(ctx).Warn().Err(err).Msg("auth server unreachable")
		return nil, fmt.Errorf("verification check did not complete")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth server rejected token (status %d)", resp.StatusCode)
	}

	var user struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decoding user response: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("auth server returned no user id")
	}

	return &core.Principal{
		ID:       user.ID,
		Verifier: g.name,
		Attributes: map[string]any{
			"email": user.Email,
			"role":  user.Role,
		},
	}, nil
}
