package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/fernwald/rtcgate/internal/api/presenter"
	"github.com/fernwald/rtcgate/internal/buildinfo"
	"github.com/fernwald/rtcgate/internal/core"
	"github.com/fernwald/rtcgate/internal/service"
)

// handleHealth responds with a simple OK status to indicate the server is healthy.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleAbout responds with service information including version and commit hash.
func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	presenter.JSON(w, r, buildinfo.GetBuildInfo(), http.StatusOK)
}

// IssuePayload is the wire shape of a credential request.
type IssuePayload struct {
	// ChannelName of the media channel to join.
	ChannelName string `json:"channelName"`

	// UID is the numeric identity to join with. Omitted or 0 lets the
	// media provider assign one.
	UID *int64 `json:"uid,omitempty"`

	// Role is "publisher" (default) or "subscriber".
	Role string `json:"role,omitempty"`
}

func DecodePayload(r *http.Request, dest any, allowEmpty bool) error {
	switch ct, _, _ := strings.Cut(r.Header.Get("Content-Type"), ";"); strings.TrimSpace(ct) {
	case "application/json", "":
		// strict encoding for JSON
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(dest); err != nil {
			if !errors.Is(err, io.EOF) || !allowEmpty {
				return err
			}
		}
		// ensure there's no extra data
		if dec.More() {
			return errors.New("extra data in request body")
		}
		return nil
	default:
		return errors.New("unsupported content type")
	}
}

// handleIssue processes credential requests. Check order matters for the
// browser contract: method, then session, then request validity.
func (s *Server) handleIssue(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if r.Method != http.MethodPost {
		presenter.Error(w, r, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// the bearer token must be present before anything else is looked at
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		logger.Warn().Msg("missing or malformed Authorization header")
		presenter.Error(w, r, "Missing or invalid Authorization header", http.StatusUnauthorized)
		return
	}
	bearer := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if bearer == "" {
		logger.Warn().Msg("empty bearer token")
		presenter.Error(w, r, "Missing or invalid Authorization header", http.StatusUnauthorized)
		return
	}

	var payload IssuePayload
	if err := DecodePayload(r, &payload, false); err != nil {
		logger.Warn().Err(err).Msg("failed to decode credential request payload")
		presenter.Error(w, r, "Invalid request payload", http.StatusBadRequest)
		return
	}

	cred, err := s.credentialService.Issue(r.Context(), bearer, service.IssueRequest{
		ChannelName: payload.ChannelName,
		UID:         payload.UID,
		Role:        payload.Role,
	})
	if err != nil {
		presenter.Err(w, r, err)
		return
	}

	presenter.JSON(w, r, cred, http.StatusOK)
}

// handleAdminAudit processes requests to retrieve audit log entries.
func (s *Server) handleAdminAudit(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := r.URL.Query()
	limit := 50
	if limitStr := q.Get("limit"); limitStr != "" {
		v, err := strconv.Atoi(limitStr)
		if err != nil || v <= 0 {
			logger.Warn().Str("limit", limitStr).Msg("invalid limit parameter")
			presenter.Error(w, r, "Invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = v
	}

	filterChannel := q.Get("channel")
	filterPrincipalID := q.Get("principal_id")

	var entries []core.AuditEntry
	var err error

	if filterChannel != "" || filterPrincipalID != "" {
		entries, err = s.auditor.Find(func(entry core.AuditEntry) bool {
			if filterChannel != "" && entry.Channel != filterChannel {
				return false
			}
			if filterPrincipalID != "" && (entry.Principal == nil || entry.Principal.ID != filterPrincipalID) {
				return false
			}
			return true
		}, limit)
	} else {
		entries, err = s.auditor.GetRecent(limit)
	}

	if err != nil {
		logger.Error().Err(err).Msg("failed to retrieve audit logs")
		presenter.Error(w, r, "Failed to retrieve audit logs", http.StatusInternalServerError)
		return
	}

	presenter.JSON(w, r, entries, http.StatusOK)
}
