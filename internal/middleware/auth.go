package middleware

import (
	"crypto/subtle"
	"net/http"
)

// APIKey returns middleware that requires the X-API-Key header to match
// key. An empty key disables the check, which is the development default.
func APIKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key != "" {
				provided := r.Header.Get("X-API-Key")
				if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusUnauthorized)
					_, _ = w.Write([]byte(`{"error": "invalid api key"}`))
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
