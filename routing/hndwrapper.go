package routing

import "net/http"

// HandlerWrapper has Wrap method which acts as a middleware by wrapping an http.Handler
// prepending and appending some additional logic wrapping the handler's ServeHTTP(w,r)
// and then returns a new http.Handler which can wrap another or can be wrapped by another
type HandlerWrapper interface {
	Wrap(http.Handler) http.Handler
}

// HandlerWrapperFunc adapts a plain middleware func to HandlerWrapper
type HandlerWrapperFunc func(http.Handler) http.Handler

func (f HandlerWrapperFunc) Wrap(inner http.Handler) http.Handler {
	return f(inner)
}
