package layout

import (
	"slices"
	"sync"

	"github.com/zeptools/gw-invoice/invoice"
)

// Registry maps templates to styles. Lookup never fails: unknown keys get the fallback
type Registry struct {
	mu       sync.RWMutex
	styles   map[invoice.Template]*Style
	fallback invoice.Template
}

// Default holds the five built-in styles with Modern as the fallback
var Default = NewRegistry(invoice.DefaultTemplate, Modern, Corporate, Creative, Classic, Startup)

// NewRegistry stores styles under their own Template.
// fallback must be one of them
func NewRegistry(fallback invoice.Template, styles ...*Style) *Registry {
	r := &Registry{styles: make(map[invoice.Template]*Style, len(styles)), fallback: fallback}
	for _, s := range styles {
		r.styles[s.Template] = s
	}
	if _, ok := r.styles[fallback]; !ok {
		panic("layout: fallback template " + string(fallback) + " is not registered")
	}
	return r
}

func (r *Registry) Store(s *Style) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.styles[s.Template] = s
}

func (r *Registry) Get(key invoice.Template) (*Style, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.styles[key]
	return s, ok
}

// Remove deletes a style. The fallback cannot be removed
func (r *Registry) Remove(key invoice.Template) {
	if key == r.fallback {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.styles, key)
}

func (r *Registry) Lookup(key invoice.Template) *Style {
	if s, ok := r.Get(key); ok {
		return s
	}
	s, _ := r.Get(r.fallback)
	return s
}

// Templates lists the registered keys in sorted order
func (r *Registry) Templates() []invoice.Template {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]invoice.Template, 0, len(r.styles))
	for k := range r.styles {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// StyleFor returns the built-in style for tpl, Modern when tpl is unknown
func StyleFor(tpl invoice.Template) *Style {
	return Default.Lookup(tpl)
}
