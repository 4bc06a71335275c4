package middleware

import "net/http"

// CORS stamps every response with the cross-origin headers the browser
// client needs and short-circuits preflight requests. The Allow-Origin
// value is the request's Origin when it is on the allow-list, otherwise
// the first configured origin; a wildcard is never emitted, so pages on
// unknown origins cannot use the issuer even though the browser would
// permit it.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowOrigin(r.Header.Get("Origin"), allowedOrigins))
			w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func allowOrigin(origin string, allowed []string) string {
	if len(allowed) == 0 {
		return ""
	}
	for _, o := range allowed {
		if o == origin {
			return origin
		}
	}
	return allowed[0]
}
