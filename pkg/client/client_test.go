package client

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fernwald/rtcgate/internal/api"
	"github.com/fernwald/rtcgate/internal/audit"
	"github.com/fernwald/rtcgate/internal/core"
	"github.com/fernwald/rtcgate/internal/service"
)

type mapVerifier map[string]*core.Principal

func (mapVerifier) Name() string { return "test" }

func (m mapVerifier) Verify(_ context.Context, token string) (*core.Principal, error) {
	if p, ok := m[token]; ok {
		return p, nil
	}
	return nil, errors.New("unknown token")
}

type stubSigner struct{}

func (stubSigner) AppID() string { return "demo-app-id" }

func (stubSigner) Sign(core.ChannelRequest, time.Time) (string, error) {
	return "stub-token", nil
}

func newIssuerServer(t *testing.T) *httptest.Server {
	t.Helper()
	verifier := mapVerifier{
		"session-token": {ID: "user-1", Attributes: map[string]any{"role": "authenticated"}},
	}
	svc := service.NewCredentialService(verifier, stubSigner{}, nil, audit.NewNoopAuditor(), time.Hour)
	srv := api.NewServer(verifier, svc, audit.NewNoopAuditor(), []string{"https://chat.example.com"})
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func TestClient_IssueCredential(t *testing.T) {
	ts := newIssuerServer(t)
	cli := New(ts.URL, WithAuthToken("session-token"))

	cred, correlation, err := cli.IssueCredential(context.Background(), "room-42", IssueOptions{})
	if err != nil {
		t.Fatalf("IssueCredential() error = %v", err)
	}
	if cred.Token != "stub-token" || cred.AppID != "demo-app-id" {
		t.Errorf("credential = %+v", cred)
	}
	if correlation == "" {
		t.Error("missing correlation id")
	}
}

func TestClient_IssueCredential_InvalidSession(t *testing.T) {
	ts := newIssuerServer(t)
	cli := New(ts.URL, WithAuthToken("wrong-token"))

	_, _, err := cli.IssueCredential(context.Background(), "room-42", IssueOptions{})
	if !errors.Is(err, ErrInvalidSession) {
		t.Errorf("error = %v, want ErrInvalidSession", err)
	}
}

func TestClient_Info(t *testing.T) {
	ts := newIssuerServer(t)
	cli := New(ts.URL)

	info, _, err := cli.Info(context.Background())
	if err != nil {
		t.Fatalf("Info() error = %v", err)
	}
	if info.Service != "rtcgate" {
		t.Errorf("info = %+v", info)
	}
}
