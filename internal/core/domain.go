package core

import (
	"fmt"
	"strings"
	"time"
)

// Role determines whether a channel participant may send media or only
// receive it.
type Role string

const (
	RolePublisher  Role = "publisher"
	RoleSubscriber Role = "subscriber"
)

// ParseRole maps the wire representation to a Role. An empty string
// defaults to publisher, matching the join flow of the web client.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(RolePublisher):
		return RolePublisher, nil
	case string(RoleSubscriber):
		return RoleSubscriber, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Principal represents the authenticated identity of the caller.
// It is produced by a Verifier after checking an upstream session token.
type Principal struct {
	// ID is the unique subject identifier (e.g., the sub claim).
	ID string `json:"id"`
	// Verifier is the name of the verifier that authenticated this principal.
	Verifier string `json:"verifier"`
	// Attributes are the claims known about the principal.
	Attributes map[string]any `json:"attributes,omitempty"`
}

// Credential is the result of a successful issue operation: a signed,
// time-boxed token for joining one channel with one identity and role.
type Credential struct {
	// Token is the signed artifact handed to the media SDK.
	Token string `json:"token"`

	// AppID is the public application identifier the client joins with.
	// It is not a secret and may be echoed to any authenticated caller.
	AppID string `json:"appId"`

	// ExpireAt is the unix timestamp (seconds) after which the token
	// is no longer accepted by the media provider.
	ExpireAt int64 `json:"expireAt"`
}

// ChannelRequest holds the validated parameters of one issue request.
type ChannelRequest struct {
	// Channel is the trimmed, non-empty channel name.
	Channel string

	// UID is the numeric identity to join with. Zero means the media
	// provider assigns one dynamically.
	UID uint32

	// Role the caller wants to join with.
	Role Role
}

// AuditEntry records one issuance attempt, granted or not.
type AuditEntry struct {
	// ID is the unique request ID (X-Correlation-ID).
	ID string `json:"id"`

	// Time is the timestamp of the event.
	Time time.Time `json:"time"`

	// Action describing what happened (e.g. "credential.issue").
	Action string `json:"action"`

	// Principal identifies who made the request, if authentication got
	// that far.
	Principal *Principal `json:"principal,omitempty"`

	// Request details.
	Channel string `json:"channel,omitempty"`
	UID     uint32 `json:"uid,omitempty"`
	Role    Role   `json:"role,omitempty"`

	// TokenFingerprint is a SHA-256 digest of the issued token.
	// The token value itself is never stored.
	TokenFingerprint string `json:"token_fingerprint,omitempty"`

	ExpireAt int64 `json:"expire_at,omitempty"`

	Granted bool   `json:"granted"`
	Error   string `json:"error,omitempty"`
}
