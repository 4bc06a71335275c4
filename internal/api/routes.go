package api

const (
	HealthCheckRoute = "/healthz"
	AboutRoute       = "/v1/about"

	IssueCredentialRoute = "/v1/credential/issue"

	AuditParent     = "/v1/audit/"
	ListAuditsRoute = AuditParent + "entries"
)
