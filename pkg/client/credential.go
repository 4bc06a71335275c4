package client

import (
	"context"

	"github.com/fernwald/rtcgate/internal/api"
	"github.com/fernwald/rtcgate/internal/core"
)

// IssueOptions contains optional parameters for requesting a credential.
type IssueOptions struct {
	// UID is the numeric identity to join with. Nil lets the media
	// provider assign one.
	UID *int64

	// Role is "publisher" (default) or "subscriber".
	Role string
}

// IssueCredential requests a channel credential using the client's
// session token for authorization.
func (c *Client) IssueCredential(
	ctx context.Context,
	channelName string,
	opts IssueOptions,
) (*core.Credential, string, error) {
	payload := api.IssuePayload{
		ChannelName: channelName,
		UID:         opts.UID,
		Role:        opts.Role,
	}

	var cred core.Credential
	correlation, err := c.post(ctx, c.url().
		setPath(api.IssueCredentialRoute).
		build(), payload, &cred)
	if err != nil {
		return nil, correlation, err
	}
	return &cred, correlation, nil
}
