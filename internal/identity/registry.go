package identity

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/fernwald/rtcgate/internal/config"
	"github.com/fernwald/rtcgate/internal/core"
)

// Build constructs the verifier named in the configuration.
func Build(ctx context.Context, cfg config.IdentityConfig) (core.Verifier, error) {
	switch cfg.Type {
	case "gotrue":
		var c GoTrueConfig
		if err := decode(cfg.Config, &c); err != nil {
			return nil, fmt.Errorf("decoding gotrue verifier config: %w", err)
		}
		return NewGoTrueVerifier(cfg.Name, c)
	case "jwt":
		var c JWTConfig
		if err := decode(cfg.Config, &c); err != nil {
			return nil, fmt.Errorf("decoding jwt verifier config: %w", err)
		}
		return NewJWTVerifier(cfg.Name, c)
	case "oidc":
		var c OIDCConfig
		if err := decode(cfg.Config, &c); err != nil {
			return nil, fmt.Errorf("decoding oidc verifier config: %w", err)
		}
		return NewOIDCVerifier(ctx, cfg.Name, c)
	case "static":
		var c StaticConfig
		if err := decode(cfg.Config, &c); err != nil {
			return nil, fmt.Errorf("decoding static verifier config: %w", err)
		}
		return NewStaticVerifier(cfg.Name, c), nil
	default:
		return nil, fmt.Errorf("unknown verifier type %q", cfg.Type)
	}
}

func decode(src map[string]any, dst any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
		Result:     dst,
	})
	if err != nil {
		return err
	}
	return dec.Decode(src)
}
