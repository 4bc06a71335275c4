package identity

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fernwald/rtcgate/internal/core"
)

// JWTConfig configures the offline HS256 verifier. It validates session
// tokens locally against the project's shared JWT secret instead of
// calling the auth server, trading one network round-trip per request
// for not noticing server-side session revocation.
type JWTConfig struct {
	// Secret is the shared HMAC signing secret of the auth project.
	Secret string `mapstructure:"secret"`

	// Audience, when set, must match the token's aud claim.
	Audience string `mapstructure:"audience"`
}

type JWTVerifier struct {
	name     string
	secret   []byte
	audience string
}

func NewJWTVerifier(name string, cfg JWTConfig) (*JWTVerifier, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt verifier '%s' missing 'secret'", name)
	}
	return &JWTVerifier{
		name:     name,
		secret:   []byte(cfg.Secret),
		audience: cfg.Audience,
	}, nil
}

func (j *JWTVerifier) Name() string {
	return j.name
}

func (j *JWTVerifier) Verify(_ context.Context, token string) (*core.Principal, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		jwt.WithExpirationRequired(),
	}
	if j.audience != "" {
		opts = append(opts, jwt.WithAudience(j.audience))
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Method.Alg())
		}
		return j.secret, nil
	}, opts...)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("jwt verification failed: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("token missing 'sub' claim")
	}

	return &core.Principal{
		ID:         sub,
		Verifier:   j.name,
		Attributes: map[string]any(claims),
	}, nil
}
