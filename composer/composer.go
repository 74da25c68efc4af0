package composer

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/zeptools/gw-invoice/invoice"
	"github.com/zeptools/gw-invoice/layout"
	"github.com/zeptools/gw-invoice/pdfs"
	"github.com/zeptools/gw-invoice/pdfs/impls/fpdf"
)

const Producer = "gw-invoice"

// WriterFactory opens a fresh single-use writer for one render
type WriterFactory func(size pdfs.PaperSize, inv *invoice.Invoice, now time.Time) pdfs.Writer

// FPDFWriters is the production factory
func FPDFWriters(size pdfs.PaperSize, inv *invoice.Invoice, now time.Time) pdfs.Writer {
	return fpdf.New(size, fpdf.Options{
		Title:     "Invoice " + inv.Number,
		Author:    inv.Company.Name,
		Producer:  Producer,
		CreatedAt: now,
		Compress:  true,
	})
}

// Composer turns invoices into document bytes. It holds no per-render state
// and is safe for concurrent use.
type Composer struct {
	NewWriter WriterFactory
	Styles    *layout.Registry
	Now       func() time.Time
	Quiet     bool // no log line per render
}

func New() *Composer {
	return &Composer{
		NewWriter: FPDFWriters,
		Styles:    layout.Default,
		Now:       time.Now,
	}
}

var std = New()

// Generate renders inv with the default composer
func Generate(inv *invoice.Invoice) ([]byte, error) {
	return std.Generate(context.Background(), inv)
}

// Generate renders inv into a complete document. Only writer failures are
// returned. ctx is checked before rendering; a render in progress runs to the end.
func (c *Composer) Generate(ctx context.Context, inv *invoice.Invoice) ([]byte, error) {
	w, style, err := c.render(ctx, inv)
	if err != nil {
		return nil, err
	}
	b, err := w.ProduceBytes()
	if err != nil {
		return nil, fmt.Errorf("composer: produce %s: %w", style.Template, err)
	}
	c.logf("[INFO][Composer] rendered %q template=%s bytes=%d", inv.Number, style.Template, len(b))
	return b, nil
}

// GenerateTo streams the document into dst
func (c *Composer) GenerateTo(ctx context.Context, inv *invoice.Invoice, dst io.Writer) (int64, error) {
	w, style, err := c.render(ctx, inv)
	if err != nil {
		return 0, err
	}
	n, err := w.WriteTo(dst)
	if err != nil {
		return n, fmt.Errorf("composer: write %s: %w", style.Template, err)
	}
	c.logf("[INFO][Composer] streamed %q template=%s bytes=%d", inv.Number, style.Template, n)
	return n, nil
}

func (c *Composer) render(ctx context.Context, inv *invoice.Invoice) (pdfs.Writer, *layout.Style, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	style := c.Registry().Lookup(inv.Template)
	if !inv.Template.Known() {
		c.logf("[WARN][Composer] unknown template %q, using %s", inv.Template, style.Template)
	}

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	newWriter := c.NewWriter
	if newWriter == nil {
		newWriter = FPDFWriters
	}
	page := style.Page
	if page.Width == 0 {
		page = pdfs.A4Size
	}
	w := newWriter(page, inv, now())
	if err := style.Render(w, inv); err != nil {
		c.logf("[ERROR][Composer] render %q: %v", inv.Number, err)
		return nil, nil, fmt.Errorf("composer: %w", err)
	}
	return w, style, nil
}

// Registry is Styles, or layout.Default when unset
func (c *Composer) Registry() *layout.Registry {
	if c.Styles == nil {
		return layout.Default
	}
	return c.Styles
}

func (c *Composer) logf(format string, args ...any) {
	if !c.Quiet {
		log.Printf(format, args...)
	}
}
