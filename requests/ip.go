package requests

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// ClientIP names the caller for throttling and access logs. The first
// parseable X-Forwarded-For entry wins, then X-Real-IP, then the peer
// address. IPv4-mapped IPv6 addresses and zones are normalized away so one
// client always maps to one throttle bucket.
func ClientIP(r *http.Request) string {
	for entry := range strings.SplitSeq(r.Header.Get("X-Forwarded-For"), ",") {
		if ip, ok := parseIP(entry); ok {
			return ip
		}
	}
	if ip, ok := parseIP(r.Header.Get("X-Real-IP")); ok {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if ip, ok := parseIP(host); ok {
		return ip
	}
	return host
}

func parseIP(s string) (string, bool) {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return "", false
	}
	return addr.Unmap().WithZone("").String(), true
}
