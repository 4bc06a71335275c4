package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newAuthServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != userEndpoint {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("apikey"); got != "anon-key" {
			t.Errorf("apikey header = %q, want anon-key", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer session-token" {
			t.Errorf("Authorization header = %q", got)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGoTrueVerifier_Verify(t *testing.T) {
	srv := newAuthServer(t, http.StatusOK,
		`{"id":"user-123","email":"a@example.com","role":"authenticated"}`)

	v, err := NewGoTrueVerifier("gotrue", GoTrueConfig{
		URL:    srv.URL,
		APIKey: "anon-key",
	})
	if err != nil {
		t.Fatalf("NewGoTrueVerifier() error = %v", err)
	}

	principal, err := v.Verify(context.Background(), "session-token")
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if principal.ID != "user-123" {
		t.Errorf("principal.ID = %q", principal.ID)
	}
	if role, _ := principal.Attributes["role"].(string); role != "authenticated" {
		t.Errorf("principal role attribute = %v", principal.Attributes["role"])
	}
}

func TestGoTrueVerifier_Verify_Rejected(t *testing.T) {
	srv := newAuthServer(t, http.StatusUnauthorized, `{"msg":"invalid token"}`)

	v, err := NewGoTrueVerifier("gotrue", GoTrueConfig{URL: srv.URL, APIKey: "anon-key"})
	if err != nil {
		t.Fatalf("NewGoTrueVerifier() error = %v", err)
	}

	if _, err := v.Verify(context.Background(), "session-token"); err == nil {
		t.Errorf("Verify() expected error for rejected token")
	}
}

func TestGoTrueVerifier_Verify_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	v, err := NewGoTrueVerifier("gotrue", GoTrueConfig{
		URL:     srv.URL,
		APIKey:  "anon-key",
		Timeout: time.Second,
	})
	if err != nil {
		t.Fatalf("NewGoTrueVerifier() error = %v", err)
	}

	if _, err := v.Verify(context.Background(), "session-token"); err == nil {
		t.Errorf("Verify() expected error for unreachable auth server")
	}
}

func TestGoTrueVerifier_Verify_NoUserID(t *testing.T) {
	srv := newAuthServer(t, http.StatusOK, `{}`)

	v, err := NewGoTrueVerifier("gotrue", GoTrueConfig{URL: srv.URL, APIKey: "anon-key"})
	if err != nil {
		t.Fatalf("NewGoTrueVerifier() error = %v", err)
	}

	if _, err := v.Verify(context.Background(), "session-token"); err == nil {
		t.Errorf("Verify() expected error for empty user payload")
	}
}

func TestNewGoTrueVerifier_RequiresConfig(t *testing.T) {
	if _, err := NewGoTrueVerifier("gotrue", GoTrueConfig{APIKey: "k"}); err == nil {
		t.Errorf("expected error for missing url")
	}
	if _, err := NewGoTrueVerifier("gotrue", GoTrueConfig{URL: "https://x"}); err == nil {
		t.Errorf("expected error for missing api_key")
	}
}
