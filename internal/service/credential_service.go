package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fernwald/rtcgate/internal/audit"
	"github.com/fernwald/rtcgate/internal/core"
	"github.com/fernwald/rtcgate/internal/policy"
)

// Caller-visible error messages. Internal causes are logged, never echoed.
var (
	ErrInvalidToken = errors.New("Invalid or expired token")
	ErrBadChannel   = errors.New("Missing or invalid channelName")
	ErrBadUID       = errors.New("Missing or invalid uid")
	ErrBadRole      = errors.New("Missing or invalid role")
	ErrDenied       = errors.New("Access denied")
	ErrConfig       = errors.New("Server configuration error")
	ErrInternal     = errors.New("Internal server error")
)

// CredentialService gates access to realtime media channels: it verifies
// the caller's session token upstream, applies the optional channel
// rules, and signs a time-boxed channel credential. It holds no state
// between requests.
type CredentialService struct {
	verifier core.Verifier
	signer   core.Signer
	engine   *policy.Engine
	auditor  core.Auditor
	ttl      time.Duration

	// now is swapped out in tests.
	now func() time.Time
}

// NewCredentialService wires the service. A nil signer means the app
// credentials are not configured; requests then fail with a
// configuration error instead of the server refusing to start.
func NewCredentialService(
	verifier core.Verifier,
	signer core.Signer,
	engine *policy.Engine,
	auditor core.Auditor,
	ttl time.Duration,
) *CredentialService {
	if engine == nil {
		engine = policy.New(nil)
	}
	if auditor == nil {
		auditor = audit.NewNoopAuditor()
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CredentialService{
		verifier: verifier,
		signer:   signer,
		engine:   engine,
		auditor:  auditor,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Issue authenticates the bearer token, validates the request and returns
// a signed channel credential. Errors carry the HTTP status and a
// caller-safe message via HTTPError.
func (s *CredentialService) Issue(ctx context.Context, bearer string, req IssueRequest) (*core.Credential, error) {
	logger := log.Ctx(ctx)
	reqID, _ := ctx.Value("correlation_id").(string)

	auditEntry := core.AuditEntry{
		ID:     reqID,
		Time:   s.now(),
		Action: "credential.issue",
	}
	defer func() {
		if err := s.auditor.Log(auditEntry); err != nil {
			logger.Error().Err(err).Msg("failed to write audit log entry")
		}
	}()

	// authentication first: an invalid session must not learn anything
	// about the request's validity
	principal, err := s.verifier.Verify(ctx, bearer)
	if err != nil {
		logger.Warn().Err(err).Str("verifier", s.verifier.Name()).Msg("upstream token verification failed")
		auditEntry.Error = "verification failed"
		return nil, httpError(http.StatusUnauthorized, ErrInvalidToken)
	}
	auditEntry.Principal = principal

	logger.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("sub", principal.ID)
	})

	chReq, err := s.validate(req)
	if err != nil {
		logger.Warn().Err(err).Msg("invalid credential request")
		auditEntry.Error = err.Error()
		return nil, httpError(http.StatusBadRequest, err)
	}
	auditEntry.Channel = chReq.Channel
	auditEntry.UID = chReq.UID
	auditEntry.Role = chReq.Role

	rule, err := s.engine.Evaluate(principal, chReq)
	if err != nil {
		if errors.Is(err, policy.ErrNoRuleMatch) {
			logger.Warn().Str("channel", chReq.Channel).Msg("channel policy denied")
			auditEntry.Error = "policy denied"
			return nil, httpError(http.StatusForbidden, ErrDenied)
		}
		logger.Error().Err(err).Msg("policy engine error")
		auditEntry.Error = "policy engine error"
		return nil, httpError(http.StatusInternalServerError, ErrInternal)
	}
	if rule != nil {
		logger.Debug().Str("rule", rule.Name).Msg("channel rule matched")
	}

	// missing app credentials are a deployment defect, reported per
	// request so operators notice without the clients learning details
	if s.signer == nil {
		logger.Error().Msg("app credentials not configured, cannot sign")
		auditEntry.Error = "missing app credentials"
		return nil, httpError(http.StatusInternalServerError, ErrConfig)
	}

	expireAt := s.now().Add(s.ttl)
	token, err := s.signer.Sign(chReq, expireAt)
	if err != nil {
		logger.Error().Err(err).Str("channel", chReq.Channel).Msg("signing failed")
		auditEntry.Error = "signing failed"
		return nil, httpError(http.StatusInternalServerError, ErrInternal)
	}

	auditEntry.Granted = true
	auditEntry.TokenFingerprint = audit.Fingerprint(token)
	auditEntry.ExpireAt = expireAt.Unix()

	logger.Info().
		Str("channel", chReq.Channel).
		Uint32("uid", chReq.UID).
		Str("role", string(chReq.Role)).
		Msg("credential issued")

	return &core.Credential{
		Token:    token,
		AppID:    s.signer.AppID(),
		ExpireAt: expireAt.Unix(),
	}, nil
}

func (s *CredentialService) validate(req IssueRequest) (core.ChannelRequest, error) {
	channel := strings.TrimSpace(req.ChannelName)
	if channel == "" {
		return core.ChannelRequest{}, ErrBadChannel
	}

	var uid int64
	if req.UID != nil {
		uid = *req.UID
	}
	if uid < 0 || uid > math.MaxUint32 {
		return core.ChannelRequest{}, fmt.Errorf("%w: must be in [0, 2^32)", ErrBadUID)
	}

	role, err := core.ParseRole(req.Role)
	if err != nil {
		return core.ChannelRequest{}, ErrBadRole
	}

	return core.ChannelRequest{
		Channel: channel,
		UID:     uint32(uid),
		Role:    role,
	}, nil
}
