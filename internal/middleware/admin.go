package middleware

import (
	"crypto/subtle"
	"net/http"
)

// adminHeader carries the shared admin secret. This gate is a deterrent for
// a small trusted office group, not a security boundary: anyone who has the
// string is "the admin".
const adminHeader = "X-Admin-Secret"

// AdminAuth guards the registry-editing endpoints with a shared secret.
// The comparison is constant-time so the gate at least doesn't leak the
// secret byte-by-byte.
func AdminAuth(secret string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(adminHeader)

			if provided == "" {
				http.Error(w, "Unauthorized: admin secret required", http.StatusUnauthorized)
				return
			}

			if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
				http.Error(w, "Forbidden: invalid admin secret", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
