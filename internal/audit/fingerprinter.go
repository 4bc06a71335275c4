package audit

import (
	"crypto/sha256"
	"encoding/base64"
)

// Fingerprint returns a stable digest of a token value for the audit
// trail. The token itself is never stored or logged.
func Fingerprint(token string) string {
	hash := sha256.Sum256([]byte(token))
	return base64.StdEncoding.EncodeToString(hash[:])
}
