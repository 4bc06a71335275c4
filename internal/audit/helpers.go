package audit

import (
	"fmt"

	"github.com/fernwald/rtcgate/internal/buildinfo"
)

// CreateUserAgent builds the User-Agent sent with outbound verification
// calls, so upstream access logs can be correlated with ours.
func CreateUserAgent(correlationID string) string {
	return fmt.Sprintf("rtcgate/%s (correlation_id=%s)", buildinfo.Version, correlationID)
}
