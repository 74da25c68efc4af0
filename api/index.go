package api

import (
	"bytes"
	"embed"
	"log"
	"net/http"

	"github.com/zeptools/gw-invoice/invoice"
	"github.com/zeptools/gw-invoice/requests"
	"github.com/zeptools/gw-invoice/tpl"
)

//go:embed pages
var pagesFS embed.FS

var pages = func() *tpl.HTMLTemplateStore {
	s := tpl.NewHTMLTemplateStore()
	if err := s.LoadBaseTemplates(pagesFS, "pages"); err != nil {
		panic(err)
	}
	return s
}()

const exampleRequest = `{
  "template": "modern",
  "invoiceNumber": "INV-001",
  "company": {"name": "Acme Studio", "email": "billing@acme.test"},
  "client": {"name": "Globex"},
  "items": [{"description": "Design", "quantity": 2, "unitPrice": 150}],
  "taxRate": 10
}`

type indexPage struct {
	AppName   string
	BaseURL   string
	Routes    []string
	Templates []invoice.Template
	Default   invoice.Template
	Example   string
}

// Index is the landing page listing the routes and templates
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	var routes []string
	if h.Routes != nil {
		routes = h.Routes()
	}
	var buf bytes.Buffer
	err := pages.Execute(&buf, "index", indexPage{
		AppName:   h.AppName,
		BaseURL:   requests.BaseURL(r),
		Routes:    routes,
		Templates: h.Svc.Composer.Registry().Templates(),
		Default:   invoice.DefaultTemplate,
		Example:   exampleRequest,
	})
	if err != nil {
		log.Printf("[ERROR][API] index page: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
