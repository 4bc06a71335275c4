package middleware

import (
	"net/http"
	"strings"

	"github.com/fernwald/rtcgate/internal/api/presenter"
	"github.com/fernwald/rtcgate/internal/core"
)

const adminRole = "service_role"

// AdminAuth gates the audit endpoints: the bearer must verify with the
// configured identity verifier and carry the service role claim. Regular
// chat users authenticate fine but are not admins.
func AdminAuth(verifier core.Verifier) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				presenter.Error(w, r, "Missing or invalid Authorization header", http.StatusUnauthorized)
				return
			}

			principal, err := verifier.Verify(r.Context(), strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				presenter.Error(w, r, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			role, _ := principal.Attributes["role"].(string)
			if role != adminRole {
				presenter.Error(w, r, "Insufficient privileges", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
