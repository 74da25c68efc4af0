package api

import (
	"log"
	"net/http"

	"github.com/zeptools/gw-invoice/invoice"
	"github.com/zeptools/gw-invoice/requests"
	"github.com/zeptools/gw-invoice/responses"
	"github.com/zeptools/gw-invoice/routing"
	"github.com/zeptools/gw-invoice/throttle"
)

// RouterOpts - optional pieces wrapped around the /v1/ group
type RouterOpts struct {
	Verifier     routing.TokenVerifier          // nil = no auth
	Throttle     *throttle.BucketStore[string] // nil = no throttling
	ThrottleID   string
	QuietHTTP    bool
	MaxBodyBytes int64
	AppName      string // landing page title
}

type Handlers struct {
	Svc          *Service
	MaxBodyBytes int64
	AppName      string
	Routes       func() []string // listed on the landing page
}

// NewRouter mounts every route of the service
func NewRouter(svc *Service, opts RouterOpts) http.Handler {
	h := &Handlers{Svc: svc, MaxBodyBytes: opts.MaxBodyBytes, AppName: opts.AppName}
	if h.AppName == "" {
		h.AppName = "gw-invoice"
	}
	router := routing.NewBaseRouter()
	h.Routes = router.Routes

	wrappers := []routing.HandlerWrapper{routing.Recover, routing.LogWrapper{Quiet: opts.QuietHTTP}}
	router.HandleFunc("GET /healthz", h.Health, wrappers...)
	router.HandleFunc("GET /{$}", h.Index, wrappers...)

	if opts.Verifier != nil {
		wrappers = append(wrappers, routing.AuthWrapper{Verifier: opts.Verifier})
	}
	if opts.Throttle != nil {
		wrappers = append(wrappers, routing.ThrottleWrapper{Store: opts.Throttle, GroupID: opts.ThrottleID})
	}
	router.Group("/v1/", func(v1 *routing.RouteGroup) {
		v1.HandleFunc("GET templates", h.Templates)
		v1.HandleFunc("POST invoices", h.Create)
		v1.HandleFunc("POST invoices/summary", h.Summary)
		v1.HandleFunc("GET invoices/{number}/records", h.Records)
	}, wrappers...)
	return router
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	responses.EncodeWriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) decode(w http.ResponseWriter, r *http.Request) (*invoice.Request, bool) {
	req := &invoice.Request{}
	if err := requests.DecodeJSON(w, r, req, h.MaxBodyBytes); err != nil {
		responses.WriteErrorJSON(w, http.StatusBadRequest, responses.CodeBadRequest, err.Error())
		return nil, false
	}
	return req, true
}

// Create renders the request and answers with the document
func (h *Handlers) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	res, err := h.Svc.Render(r.Context(), req)
	if err != nil {
		log.Printf("[ERROR][API] render failed: %v", err)
		status := http.StatusInternalServerError
		if r.Context().Err() != nil {
			status = http.StatusServiceUnavailable
		}
		responses.WriteErrorJSON(w, status, responses.CodeRenderFailed, "render failed")
		return
	}
	totals := res.Invoice.Totals()
	extra := http.Header{}
	extra.Set("X-Invoice-Total", invoice.FormatFixed2(totals.Total))
	extra.Set("X-Invoice-Template", string(res.Invoice.Template.Resolve()))
	if res.Cached {
		extra.Set("X-Invoice-Cache", "hit")
	} else {
		extra.Set("X-Invoice-Cache", "miss")
	}
	if res.Record != nil {
		extra.Set("X-Invoice-Record", res.Record.ID)
	}
	responses.WritePDFBytesWithFilename(w, res.Invoice.Filename(), res.PDF, extra)
}

// Summary answers with the receipt figures without rendering
func (h *Handlers) Summary(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	inv := h.Svc.Build(req)
	responses.EncodeWriteJSON(w, http.StatusOK, invoice.NewSummary(&inv))
}

type templatesPayload struct {
	Templates []invoice.Template `json:"templates"`
	Default   invoice.Template   `json:"default"`
}

func (h *Handlers) Templates(w http.ResponseWriter, r *http.Request) {
	responses.EncodeWriteJSON(w, http.StatusOK, templatesPayload{
		Templates: h.Svc.Composer.Registry().Templates(),
		Default:   invoice.DefaultTemplate,
	})
}

func (h *Handlers) Records(w http.ResponseWriter, r *http.Request) {
	if h.Svc.Ledger == nil {
		responses.WriteErrorJSON(w, http.StatusServiceUnavailable, responses.CodeArchiveUnavailable, "archive not configured")
		return
	}
	records, err := h.Svc.Ledger.ByNumber(r.Context(), r.PathValue("number"))
	if err != nil {
		log.Printf("[ERROR][API] %v", err)
		responses.WriteErrorJSON(w, http.StatusInternalServerError, responses.CodeArchiveUnavailable, "archive query failed")
		return
	}
	if records == nil {
		responses.EncodeWriteJSON(w, http.StatusOK, []any{})
		return
	}
	responses.EncodeWriteJSON(w, http.StatusOK, records)
}
