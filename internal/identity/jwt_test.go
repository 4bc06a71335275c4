package identity

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signHS256(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return token
}

func TestJWTVerifier_Verify(t *testing.T) {
	v, err := NewJWTVerifier("jwt", JWTConfig{Secret: "project-secret"})
	if err != nil {
		t.Fatalf("NewJWTVerifier() error = %v", err)
	}

	tests := []struct {
		name    string
		token   string
		wantErr bool
		wantSub string
	}{
		{
			name: "Valid",
			token: signHS256(t, "project-secret", jwt.MapClaims{
				"sub":  "user-123",
				"role": "authenticated",
				"exp":  time.Now().Add(time.Hour).Unix(),
			}),
			wantSub: "user-123",
		},
		{
			name: "Wrong Secret",
			token: signHS256(t, "other-secret", jwt.MapClaims{
				"sub": "user-123",
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
			wantErr: true,
		},
		{
			name: "Expired",
			token: signHS256(t, "project-secret", jwt.MapClaims{
				"sub": "user-123",
				"exp": time.Now().Add(-time.Minute).Unix(),
			}),
			wantErr: true,
		},
		{
			name: "No Expiry",
			token: signHS256(t, "project-secret", jwt.MapClaims{
				"sub": "user-123",
			}),
			wantErr: true,
		},
		{
			name: "Missing Sub",
			token: signHS256(t, "project-secret", jwt.MapClaims{
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
			wantErr: true,
		},
		{
			name:    "Garbage",
			token:   "not.a.jwt",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal, err := v.Verify(context.Background(), tt.token)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Verify() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && principal.ID != tt.wantSub {
				t.Errorf("principal.ID = %q, want %q", principal.ID, tt.wantSub)
			}
		})
	}
}

func TestJWTVerifier_Audience(t *testing.T) {
	v, err := NewJWTVerifier("jwt", JWTConfig{Secret: "project-secret", Audience: "authenticated"})
	if err != nil {
		t.Fatalf("NewJWTVerifier() error = %v", err)
	}

	good := signHS256(t, "project-secret", jwt.MapClaims{
		"sub": "user-123",
		"aud": "authenticated",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	if _, err := v.Verify(context.Background(), good); err != nil {
		t.Errorf("Verify() error = %v for matching audience", err)
	}

	bad := signHS256(t, "project-secret", jwt.MapClaims{
		"sub": "user-123",
		"aud": "something-else",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	if _, err := v.Verify(context.Background(), bad); err == nil {
		t.Errorf("Verify() expected error for wrong audience")
	}
}
