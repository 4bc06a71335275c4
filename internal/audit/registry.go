package audit

import (
	"fmt"

	"github.com/fernwald/rtcgate/internal/config"
	"github.com/fernwald/rtcgate/internal/core"
)

// Build constructs the auditor named in the configuration. Auditing
// disabled yields a noop auditor.
func Build(cfg config.AuditConfig) (core.Auditor, error) {
	if !cfg.Enabled {
		return NewNoopAuditor(), nil
	}
	switch cfg.Type {
	case "", "memory":
		return NewInMemoryAuditor(), nil
	case "file":
		if cfg.Path == "" {
			return nil, fmt.Errorf("file auditor requires 'path'")
		}
		return NewFileAuditor(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown auditor type %q", cfg.Type)
	}
}
