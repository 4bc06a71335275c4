package identity

import (
	"context"
	"fmt"

	"github.com/fernwald/rtcgate/internal/core"
)

// StaticConfig maps fixed tokens to principal attributes. Intended for
// local development and tests only.
type StaticConfig struct {
	TokenMap map[string]map[string]any `mapstructure:"token_map"`
}

type StaticVerifier struct {
	name     string
	tokenMap map[string]map[string]any
}

func NewStaticVerifier(name string, cfg StaticConfig) *StaticVerifier {
	// a nil map always fails verification
	return &StaticVerifier{
		name:     name,
		tokenMap: cfg.TokenMap,
	}
}

func (s *StaticVerifier) Name() string {
	return s.name
}

func (s *StaticVerifier) Verify(_ context.Context, token string) (*core.Principal, error) {
	attrs, ok := s.tokenMap[token]
	if !ok {
		return nil, fmt.Errorf("unknown token")
	}

	id := "static-user"
	if sub, ok := attrs["sub"].(string); ok && sub != "" {
		id = sub
	}

	return &core.Principal{
		ID:         id,
		Verifier:   s.name,
		Attributes: attrs,
	}, nil
}
