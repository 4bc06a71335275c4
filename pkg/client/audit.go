package client

import (
	"context"

	"github.com/fernwald/rtcgate/internal/api"
	"github.com/fernwald/rtcgate/internal/core"
)

// ListAudits retrieves the latest audit entries from the server, limited to the specified number.
// The client's auth token must carry the service role.
func (c *Client) ListAudits(ctx context.Context, limit uint) ([]core.AuditEntry, error) {
	var resp []core.AuditEntry
	_, err := c.get(ctx, c.url().
		setPath(api.ListAuditsRoute).
		addQueryParam("limit", limit).
		build(), &resp)
	return resp, err
}
