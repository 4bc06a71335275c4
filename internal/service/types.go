package service

// IssueRequest carries the raw, not-yet-validated parameters of one
// credential request as decoded from the wire.
type IssueRequest struct {
	// ChannelName is the channel to join. Required, trimmed before use.
	ChannelName string

	// UID is the numeric identity to join with. Nil means 0, which lets
	// the media provider assign one dynamically.
	UID *int64

	// Role is "publisher", "subscriber" or empty (defaults to publisher).
	Role string
}
