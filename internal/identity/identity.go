// Package identity validates counterparty-facing identifiers. Session ids
// arrive from untrusted messaging platforms, so they are constrained
// before they become cache keys or log fields.
package identity

import (
	"net"
	"net/http"
	"regexp"
)

// MaxSessionIDLength caps session ids so hostile platforms cannot grow
// cache keys without bound.
const MaxSessionIDLength = 128

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,128}$`)

// ValidSessionID reports whether id is a well-formed session identifier.
func ValidSessionID(id string) bool {
	return sessionIDPattern.MatchString(id)
}

// IPFromRequest returns a normalized remote IP for request tracing.
func IPFromRequest(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
