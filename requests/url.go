package requests

import (
	"net/http"
	"strings"
)

// BaseURL is scheme://host as the client addressed us, honoring the first
// X-Forwarded-Proto and X-Forwarded-Host values set by a reverse proxy
func BaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	} else if proto := strings.ToLower(firstValue(r.Header.Get("X-Forwarded-Proto"))); proto == "http" || proto == "https" {
		scheme = proto
	}
	host := firstValue(r.Header.Get("X-Forwarded-Host"))
	if host == "" {
		host = r.Host
	}
	return scheme + "://" + host
}

// FullURL is BaseURL plus the request URI
func FullURL(r *http.Request) string {
	return BaseURL(r) + r.URL.RequestURI()
}

func firstValue(h string) string {
	v, _, _ := strings.Cut(h, ",")
	return strings.TrimSpace(v)
}
