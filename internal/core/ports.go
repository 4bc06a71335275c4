package core

import (
	"context"
	"time"
)

// Verifier is responsible for checking upstream session tokens.
// Implementations: GoTrue (remote), JWT (offline), OIDC, Static.
type Verifier interface {
	// Name returns the identifier of this verifier (as used in config).
	Name() string

	// Verify takes a raw bearer token, validates it, and returns a Principal.
	Verify(ctx context.Context, token string) (*Principal, error)
}

// Signer builds the signed channel credential. Implementations hold the
// application identifier and certificate; signing is pure computation and
// performs no I/O.
type Signer interface {
	// AppID returns the public application identifier tokens are bound to.
	AppID() string

	// Sign builds a token for the given channel, uid and role that the
	// media provider accepts until expireAt.
	Sign(req ChannelRequest, expireAt time.Time) (string, error)
}

// Auditor records issuance attempts.
type Auditor interface {
	Log(entry AuditEntry) error
	GetRecent(limit int) ([]AuditEntry, error)
	Find(filter func(entry AuditEntry) bool, limit int) ([]AuditEntry, error)
	Close() error
}
