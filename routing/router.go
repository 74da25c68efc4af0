package routing

import (
	"fmt"
	"net/http"
	"strings"
)

// Router registers patterns in the net/http 1.22 syntax, "[METHOD ]path".
// Groups and the base router share it so groups can nest.
type Router interface {
	http.Handler
	Handle(pattern string, handler http.Handler, handlerWrappers ...HandlerWrapper)
	HandleFunc(pattern string, handleFunc func(http.ResponseWriter, *http.Request), handlerWrappers ...HandlerWrapper)
	Group(prefix string, batch func(*RouteGroup), handlerWrappers ...HandlerWrapper) *RouteGroup
	// Routes lists the registered patterns in registration order
	Routes() []string
}

// wrap nests handler so that wrappers[0] runs first
func wrap(handler http.Handler, wrappers ...[]HandlerWrapper) http.Handler {
	for i := len(wrappers) - 1; i >= 0; i-- {
		for j := len(wrappers[i]) - 1; j >= 0; j-- {
			handler = wrappers[i][j].Wrap(handler)
		}
	}
	return handler
}

// splitPattern separates the optional method from the path
func splitPattern(pattern string) (method string, path string) {
	if m, p, ok := strings.Cut(pattern, " "); ok {
		return m, strings.TrimLeft(p, " ")
	}
	return "", pattern
}

// joinPattern prefixes the path of sub, keeping its method in front
func joinPattern(prefix string, sub string) (string, error) {
	method, path := splitPattern(sub)
	full := prefix + path
	switch {
	case method != "" && method != strings.ToUpper(method):
		return "", fmt.Errorf("routing: method %q must be upper case in %q", method, sub)
	case strings.Contains(full, "//"):
		return "", fmt.Errorf("routing: empty segment in %q", full)
	case !strings.HasPrefix(full, "/"):
		return "", fmt.Errorf("routing: %q is not rooted", full)
	}
	if method == "" {
		return full, nil
	}
	return method + " " + full, nil
}
