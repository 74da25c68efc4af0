package api

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/zeptools/gw-invoice/archive"
	"github.com/zeptools/gw-invoice/cache"
	"github.com/zeptools/gw-invoice/composer"
	"github.com/zeptools/gw-invoice/db/kvdb/impls/memory"
	"github.com/zeptools/gw-invoice/db/sqldb"
	"github.com/zeptools/gw-invoice/invoice"
	"github.com/zeptools/gw-invoice/layout"
	"github.com/zeptools/gw-invoice/pdfs"
	"github.com/zeptools/gw-invoice/pdfs/impls/recorder"
	"github.com/zeptools/gw-invoice/schedjobs"
	"github.com/zeptools/gw-invoice/sec"
	"github.com/zeptools/gw-invoice/storages"
	"github.com/zeptools/gw-invoice/storages/impls/local"
)

const scenario = `{
	"invoiceNumber": "INV-001",
	"company": {"name": "Acme Studio"},
	"client": {"name": "Globex"},
	"items": [
		{"description": "Design", "quantity": 2, "unitPrice": 150},
		{"description": "Hosting", "quantity": 1, "unitPrice": 50}
	],
	"taxRate": 10
}`

var fixedNow = time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)

func newService(t *testing.T) *Service {
	t.Helper()
	return &Service{
		Composer: &composer.Composer{
			NewWriter: func(size pdfs.PaperSize, _ *invoice.Invoice, _ time.Time) pdfs.Writer {
				return recorder.New(size, recorder.Monospace(0.5))
			},
			Styles: layout.Default,
			Now:    func() time.Time { return fixedNow },
			Quiet:  true,
		},
		Now: func() time.Time { return fixedNow },
	}
}

func do(t *testing.T, h http.Handler, method, path, body string, hdr ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreate(t *testing.T) {
	svc := newService(t)
	c, err := cache.New(memory.NewClient(nil), cache.Conf{})
	if err != nil {
		t.Fatal(err)
	}
	svc.Cache = c
	h := NewRouter(svc, RouterOpts{QuietHTTP: true})

	rec := do(t, h, "POST", "/v1/invoices", scenario)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	hdr := rec.Header()
	if hdr.Get("Content-Type") != "application/pdf" {
		t.Errorf("type %s", hdr.Get("Content-Type"))
	}
	if hdr.Get("Content-Disposition") != `inline; filename="invoice_INV-001.pdf"` {
		t.Errorf("disposition %s", hdr.Get("Content-Disposition"))
	}
	if hdr.Get("X-Invoice-Total") != "385.00" || hdr.Get("X-Invoice-Template") != "modern" {
		t.Errorf("total %s template %s", hdr.Get("X-Invoice-Total"), hdr.Get("X-Invoice-Template"))
	}
	if hdr.Get("X-Invoice-Cache") != "miss" {
		t.Errorf("first render cache %s", hdr.Get("X-Invoice-Cache"))
	}
	if !strings.Contains(rec.Body.String(), "$385.00") {
		t.Error("total missing from the document")
	}
	first := rec.Body.Bytes()

	rec = do(t, h, "POST", "/v1/invoices", scenario)
	if rec.Header().Get("X-Invoice-Cache") != "hit" {
		t.Errorf("second render cache %s", rec.Header().Get("X-Invoice-Cache"))
	}
	if !bytes.Equal(first, rec.Body.Bytes()) {
		t.Error("cached document differs")
	}
}

func TestCreate_BadJSON(t *testing.T) {
	h := NewRouter(newService(t), RouterOpts{QuietHTTP: true})
	for _, body := range []string{"", "{", `{"items": "nope"}`} {
		rec := do(t, h, "POST", "/v1/invoices", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%q: status %d", body, rec.Code)
		}
	}
}

func TestCreate_StorageCopy(t *testing.T) {
	dir := t.TempDir()
	svc := newService(t)
	store, err := local.NewStore(&storages.Conf{Type: "local", Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	svc.Storage = store
	h := NewRouter(svc, RouterOpts{QuietHTTP: true})
	if rec := do(t, h, "POST", "/v1/invoices", scenario); rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if _, err := os.Stat(filepath.Join(dir, "invoice_INV-001.pdf")); err != nil {
		t.Error(err)
	}
}

func TestSummary(t *testing.T) {
	h := NewRouter(newService(t), RouterOpts{QuietHTTP: true})
	rec := do(t, h, "POST", "/v1/invoices/summary", scenario)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var s invoice.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
		t.Fatal(err)
	}
	want := invoice.Summary{
		InvoiceNumber: "INV-001",
		InvoiceDate:   "2026-01-15",
		DueDate:       "2026-02-14",
		Template:      invoice.TemplateModern,
		Currency:      "$",
		ItemCount:     2,
		Subtotal:      "350.00",
		Tax:           "35.00",
		Total:         "385.00",
	}
	if s != want {
		t.Errorf("summary = %+v", s)
	}

	rec = do(t, h, "POST", "/v1/invoices/summary", `{"invoiceNumber":"X"}`)
	_ = json.Unmarshal(rec.Body.Bytes(), &s)
	if s.ItemCount != 1 || s.Subtotal != "100.00" {
		t.Errorf("placeholder summary = %+v", s)
	}
}

func TestTemplates(t *testing.T) {
	h := NewRouter(newService(t), RouterOpts{QuietHTTP: true})
	rec := do(t, h, "GET", "/v1/templates", "")
	var p templatesPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatal(err)
	}
	got := make([]string, len(p.Templates))
	for i, tpl := range p.Templates {
		got[i] = string(tpl)
	}
	if strings.Join(got, ",") != "classic,corporate,creative,modern,startup" || p.Default != invoice.TemplateModern {
		t.Errorf("payload = %+v", p)
	}
}

type emptyDB struct {
	conf sqldb.Conf
}

type noRows struct{}

func (noRows) Next() bool { return false }
func (noRows) Scan(...any) error { return nil }
func (noRows) Close() error { return nil }
func (noRows) Err() error { return nil }

func (d *emptyDB) Init() error { return nil }
func (d *emptyDB) Open(context.Context) error { return nil }
func (d *emptyDB) Close() error { return nil }
func (d *emptyDB) Conf() *sqldb.Conf { return &d.conf }
func (d *emptyDB) DSN() string { return "" }
func (d *emptyDB) Ping(context.Context) error { return nil }
func (d *emptyDB) BeginTx(context.Context) (sqldb.Tx, error) { return nil, nil }
func (d *emptyDB) Exec(context.Context, string, ...any) (sqldb.Result, error) {
	return nil, nil
}
func (d *emptyDB) QueryRows(context.Context, string, ...any) (sqldb.Rows, error) {
	return noRows{}, nil
}
func (d *emptyDB) QueryRow(context.Context, string, ...any) sqldb.Row { return noRows{} }

func TestRecords(t *testing.T) {
	svc := newService(t)
	h := NewRouter(svc, RouterOpts{QuietHTTP: true})
	if rec := do(t, h, "GET", "/v1/invoices/INV-1/records", ""); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("without ledger: %d", rec.Code)
	}

	ledger, err := archive.NewLedger(&emptyDB{conf: sqldb.Conf{Type: "pgsql"}})
	if err != nil {
		t.Fatal(err)
	}
	svc.Ledger = ledger
	rec := do(t, h, "GET", "/v1/invoices/INV-1/records", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("records: %d %s", rec.Code, rec.Body.String())
	}
}

func TestAuth(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	v := sec.NewVerifierWithKeys(nil, &key.PublicKey, "", "", 0)
	h := NewRouter(newService(t), RouterOpts{Verifier: v, QuietHTTP: true})

	if rec := do(t, h, "GET", "/healthz", ""); rec.Code != http.StatusOK {
		t.Errorf("healthz %d", rec.Code)
	}
	if rec := do(t, h, "GET", "/v1/templates", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("no token %d", rec.Code)
	}
	token, _ := sec.SignRS256("", "ops", "", time.Minute, key, "")
	if rec := do(t, h, "GET", "/v1/templates", "", "Authorization", "Bearer "+token); rec.Code != http.StatusOK {
		t.Errorf("with token %d", rec.Code)
	}
}

func TestAdminCommands(t *testing.T) {
	svc := newService(t)
	c, _ := cache.New(memory.NewClient(nil), cache.Conf{})
	svc.Cache = c
	locks := &sync.Map{}
	cmds := AdminCommands(svc, locks)
	if _, ok := cmds["records"]; ok {
		t.Error("records command without a ledger")
	}
	ctx := context.Background()

	var out bytes.Buffer
	if err := cmds["templates"].Fn(ctx, nil, &out); err != nil || !strings.HasPrefix(out.String(), "classic\n") {
		t.Errorf("templates: %q %v", out.String(), err)
	}

	out.Reset()
	if !cmds["totals"].RawArgs {
		t.Error("totals must receive the JSON unsplit")
	}
	totals := `{"invoiceNumber":"INV  7   B", "items":[{"quantity":2,"unitPrice":5}], "taxRate":10}`
	if err := cmds["totals"].Fn(ctx, []string{totals}, &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), `"total": "11.00"`) {
		t.Errorf("totals: %s", out.String())
	}
	if !strings.Contains(out.String(), `"invoiceNumber": "INV  7   B"`) {
		t.Errorf("totals collapsed spaces inside a JSON string: %s", out.String())
	}

	if _, err := svc.Render(ctx, &invoice.Request{Invoice: invoice.Invoice{Number: "INV-5"}}); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := cmds["cache-recent"].Fn(ctx, []string{"5"}, &out); err != nil || !strings.Contains(out.String(), "INV-5") {
		t.Errorf("recent: %q %v", out.String(), err)
	}

	locks.Store("cache-purge", struct{}{})
	if err := cmds["cache-purge"].Fn(ctx, nil, &out); err != ErrBusy {
		t.Errorf("purge while locked: %v", err)
	}
	locks.Delete("cache-purge")
	out.Reset()
	if err := cmds["cache-purge"].Fn(ctx, nil, &out); err != nil || out.String() != "purged 3 keys\n" {
		t.Errorf("purge: %q %v", out.String(), err)
	}
}

func TestJobs(t *testing.T) {
	svc := newService(t)
	if _, err := ArchivePruneJob(svc, schedjobs.Schedule{}, 0); err == nil {
		t.Error("prune job without a ledger")
	}
	if _, err := CachePurgeJob(svc, schedjobs.Schedule{}, &sync.Map{}); err == nil {
		t.Error("purge job without a cache")
	}

	c, _ := cache.New(memory.NewClient(nil), cache.Conf{})
	svc.Cache = c
	if _, err := svc.Render(context.Background(), &invoice.Request{Invoice: invoice.Invoice{Number: "INV-9"}}); err != nil {
		t.Fatal(err)
	}
	job, err := CachePurgeJob(svc, schedjobs.Schedule{Hours: []int{4}}, &sync.Map{})
	if err != nil {
		t.Fatal(err)
	}
	if !job.Matches(time.Date(2026, 1, 1, 4, 0, 0, 0, time.UTC)) {
		t.Error("schedule not applied")
	}
	if err := job.Task(context.Background()); err != nil {
		t.Fatal(err)
	}
	if recent, _ := c.Recent(context.Background(), 10); len(recent) != 0 {
		t.Errorf("cache not purged: %v", recent)
	}
}

func TestIndex(t *testing.T) {
	h := NewRouter(newService(t), RouterOpts{QuietHTTP: true, AppName: "billing"})
	rec := do(t, h, "GET", "/", "")
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("status %d type %s", rec.Code, rec.Header().Get("Content-Type"))
	}
	body := rec.Body.String()
	for _, want := range []string{
		"<title>billing</title>", `<li class="default">modern</li>`, "<li>startup</li>", "&#34;invoiceNumber&#34;",
		"<code>POST /v1/invoices</code>", "<code>GET /v1/invoices/{number}/records</code>", "http://example.com/v1/invoices",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page misses %s", want)
		}
	}
	if rec := do(t, h, "GET", "/nope", ""); rec.Code != http.StatusNotFound {
		t.Errorf("unknown path %d", rec.Code)
	}
}

func TestCreate_StorageCopyRejectsPathNumbers(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "copies")
	svc := newService(t)
	store, err := local.NewStore(&storages.Conf{Type: "local", Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	svc.Storage = store
	h := NewRouter(svc, RouterOpts{QuietHTTP: true})
	rec := do(t, h, "POST", "/v1/invoices", `{"invoiceNumber":"/../../escaped"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if _, err := os.Stat(filepath.Join(root, "escaped.pdf")); !os.IsNotExist(err) {
		t.Error("document written outside the storage dir")
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Errorf("unexpected copies: %v", entries)
	}
}
