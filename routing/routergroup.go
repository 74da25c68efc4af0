package routing

import (
	"net/http"
	"slices"
)

// RouteGroup registers routes under a shared path prefix and wrapper chain.
// Group wrappers run before the route's own, outermost first.
type RouteGroup struct {
	Router          // [Embedded Interface]
	Prefix          string
	HandlerWrappers []HandlerWrapper // Group Handler Wrappers
}

// Ensure RouteGroup implements Router
var _ Router = (*RouteGroup)(nil)

// Handle registers "[METHOD ]<Prefix><subpath>". A pattern the group cannot
// build panics, the same as http.ServeMux does for a malformed one.
func (g *RouteGroup) Handle(subpattern string, handler http.Handler, handlerWrappers ...HandlerWrapper) {
	full, err := joinPattern(g.Prefix, subpattern)
	if err != nil {
		panic(err)
	}
	g.Router.Handle(full, wrap(handler, g.HandlerWrappers, handlerWrappers))
}

func (g *RouteGroup) HandleFunc(subpattern string, handleFunc func(http.ResponseWriter, *http.Request), handlerWrappers ...HandlerWrapper) {
	g.Handle(subpattern, http.HandlerFunc(handleFunc), handlerWrappers...)
}

// Group makes a subgroup whose prefix and wrappers extend this group's
//
//	router.Group("/v1/", func(v1 *RouteGroup) {
//	  v1.HandleFunc("GET templates", h.Templates)               // GET /v1/templates
//	  v1.Group("invoices/", func(inv *RouteGroup) {
//	    inv.HandleFunc("GET {number}/records", h.Records)       // GET /v1/invoices/{number}/records
//	  })
//	}, authWrapper)
func (g *RouteGroup) Group(subPrefix string, batch func(*RouteGroup), handlerWrappers ...HandlerWrapper) *RouteGroup {
	subg := &RouteGroup{
		Router:          g.Router,
		Prefix:          g.Prefix + subPrefix,
		HandlerWrappers: append(slices.Clip(g.HandlerWrappers), handlerWrappers...),
	}
	batch(subg)
	return subg
}
