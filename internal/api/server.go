package api

import (
	"net/http"

	"github.com/fernwald/rtcgate/internal/api/middleware"
	"github.com/fernwald/rtcgate/internal/audit"
	"github.com/fernwald/rtcgate/internal/core"
	"github.com/fernwald/rtcgate/internal/service"
)

type Server struct {
	verifier          core.Verifier
	auditor           core.Auditor
	credentialService *service.CredentialService
	allowedOrigins    []string
}

func NewServer(
	verifier core.Verifier,
	credentialService *service.CredentialService,
	auditor core.Auditor,
	allowedOrigins []string,
) *Server {
	if auditor == nil {
		auditor = audit.NewNoopAuditor()
	}

	return &Server{
		verifier:          verifier,
		auditor:           auditor,
		credentialService: credentialService,
		allowedOrigins:    allowedOrigins,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	// public routes
	mux.HandleFunc("GET "+HealthCheckRoute, s.handleHealth)
	mux.HandleFunc("GET "+AboutRoute, s.handleAbout)

	// credential issuer route; methods are checked in the handler so the
	// browser contract (JSON 405, CORS headers on every response) holds
	mux.HandleFunc(IssueCredentialRoute, s.handleIssue)

	// admin routes
	adminMux := http.NewServeMux()
	adminMux.HandleFunc("GET "+ListAuditsRoute, s.handleAdminAudit)
	mux.Handle(AuditParent, middleware.AdminAuth(s.verifier)(adminMux))

	return middleware.RecoverMiddleware(
		middleware.CorrelationIDMiddleware(
			middleware.CORS(s.allowedOrigins)(
				middleware.LoggingMiddleware(
					mux))))
}
