package requestutil

import (
	"net"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// HeaderRequestID carries the request id in both directions.
const HeaderRequestID = "X-Request-ID"

const (
	headerForwardedFor = "X-Forwarded-For"
	headerRealIP       = "X-Real-IP"
)

// Caller-supplied ids are echoed into logs and envelopes, so only short token-like values are
// accepted.
var requestIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// SanitizeRequestID keeps a well-formed incoming id and replaces anything else with a fresh one.
func SanitizeRequestID(incoming string) string {
	if id := strings.TrimSpace(incoming); requestIDPattern.MatchString(id) {
		return id
	}
	return NewRequestID()
}

// NewRequestID generates a random UUID request ID.
func NewRequestID() string {
	return uuid.NewString()
}

// ClientIP reports the originating address: the first X-Forwarded-For hop, then X-Real-IP,
// then the connection's host without its port.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if forwarded := r.Header.Get(headerForwardedFor); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get(headerRealIP)); realIP != "" {
		return realIP
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
