package identity

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/fernwald/rtcgate/internal/core"
)

// OIDCConfig configures verification against a standard OIDC provider.
type OIDCConfig struct {
	IssuerURL string `mapstructure:"issuer_url"`
	ClientID  string `mapstructure:"client_id"`
}

type OIDCVerifier struct {
	name     string
	provider *oidc.Provider
	verifier *oidc.IDTokenVerifier
}

func NewOIDCVerifier(ctx context.Context, name string, cfg OIDCConfig) (*OIDCVerifier, error) {
	if cfg.IssuerURL == "" {
		return nil, fmt.Errorf("oidc verifier '%s' missing 'issuer_url'", name)
	}
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("oidc verifier '%s' missing 'client_id'", name)
	}

	provider, err := oidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("creating oidc provider for verifier '%s': %w", name, err)
	}

	verifier := provider.Verifier(&oidc.Config{
		ClientID: cfg.ClientID,
	})

	return &OIDCVerifier{
		name:     name,
		provider: provider,
		verifier: verifier,
	}, nil
}

func (o *OIDCVerifier) Name() string {
	return o.name
}

func (o *OIDCVerifier) Verify(ctx context.Context, token string) (*core.Principal, error) {
	idToken, err := o.verifier.Verify(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("oidc verification failed: %w", err)
	}

	var claims map[string]any
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("extracting oidc claims: %w", err)
	}

	id := ""
	if sub, ok := claims["sub"]; ok {
		subStr, ok := sub.(string)
		if !ok {
			return nil, fmt.Errorf("invalid 'sub' claim type")
		}
		id = subStr
	}

	return &core.Principal{
		ID:         id,
		Verifier:   o.name,
		Attributes: claims,
	}, nil
}
