package fpdf

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/zeptools/gw-invoice/pdfs"
	"github.com/zeptools/gw-invoice/rw"

	lowimpl "github.com/go-pdf/fpdf"
)

// Options for a new Writer
type Options struct {
	Title     string
	Author    string
	Producer  string
	CreatedAt time.Time // document dates. zero = time.Now()
	Compress  bool
}

// Writer implements pdfs.Writer on top of go-pdf/fpdf using the 14 core fonts.
// Text is translated to cp1252, the encoding of the core fonts.
type Writer struct {
	size      pdfs.PaperSize
	internal  *lowimpl.Fpdf
	translate func(string) string
	hasPage   bool
	out       []byte // set once the document is produced
}

// Ensure fpdf.Writer implements pdfs.Writer interface
var _ pdfs.Writer = (*Writer)(nil)

func New(size pdfs.PaperSize, opts Options) *Writer {
	internal := lowimpl.NewCustom(&lowimpl.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           lowimpl.SizeType{Wd: size.Width, Ht: size.Height},
	})
	internal.SetAutoPageBreak(false, 0)
	internal.SetMargins(0, 0, 0)
	internal.SetCompression(opts.Compress)
	internal.SetCatalogSort(true)
	createdAt := opts.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	internal.SetCreationDate(createdAt)
	internal.SetModificationDate(createdAt)
	if opts.Title != "" {
		internal.SetTitle(opts.Title, true)
	}
	if opts.Author != "" {
		internal.SetAuthor(opts.Author, true)
	}
	if opts.Producer != "" {
		internal.SetProducer(opts.Producer, true)
	}
	return &Writer{
		size:      size,
		internal:  internal,
		translate: internal.UnicodeTranslatorFromDescriptor(""), // "" = cp1252
	}
}

func (w *Writer) PaperSize() pdfs.PaperSize {
	return w.size
}

func (w *Writer) AddPage(size pdfs.PaperSize) {
	w.size = size
	w.internal.AddPageFormat("P", lowimpl.SizeType{Wd: size.Width, Ht: size.Height})
	w.hasPage = true
}

func (w *Writer) EmbedFont(family pdfs.FontFamily, style pdfs.FontStyle) (pdfs.Font, error) {
	switch family {
	case pdfs.Helvetica, pdfs.Times, pdfs.Courier:
	default:
		return nil, fmt.Errorf("%w: %s", pdfs.ErrUnknownFont, family)
	}
	switch style {
	case pdfs.Regular, pdfs.Bold, pdfs.Italic, pdfs.BoldItalic:
	default:
		return nil, fmt.Errorf("%w: %s style %q", pdfs.ErrUnknownFont, family, style)
	}
	// core fonts need no file; selecting once registers the font resource
	w.internal.SetFont(string(family), string(style), 10)
	if err := w.internal.Error(); err != nil {
		return nil, err
	}
	return &Font{owner: w, family: family, style: style}, nil
}

// flipY converts a bottom-left origin y to fpdf's top-left origin
func (w *Writer) flipY(y float64) float64 {
	return w.size.Height - y
}

func (w *Writer) useFont(f pdfs.Font, size float64) bool {
	font, ok := f.(*Font)
	if !ok || font.owner != w {
		w.internal.SetError(pdfs.ErrForeignFont)
		return false
	}
	w.internal.SetFont(string(font.family), string(font.style), size)
	return true
}

func (w *Writer) Text(text string, x float64, y float64, opts pdfs.TextOpts) {
	if !w.ready() {
		return
	}
	if !w.useFont(opts.Font, opts.Size) {
		return
	}
	w.internal.SetTextColor(opts.Color.Bytes())
	w.internal.Text(x, w.flipY(y), w.translate(text))
}

func (w *Writer) Line(x1 float64, y1 float64, x2 float64, y2 float64, opts pdfs.LineOpts) {
	if !w.ready() {
		return
	}
	w.internal.SetLineWidth(opts.Thickness)
	w.internal.SetDrawColor(opts.Color.Bytes())
	w.internal.Line(x1, w.flipY(y1), x2, w.flipY(y2))
}

func (w *Writer) Rect(x float64, y float64, width float64, height float64, opts pdfs.RectOpts) {
	if !w.ready() {
		return
	}
	style := ""
	if opts.Fill != nil {
		w.internal.SetFillColor(opts.Fill.Bytes())
		style += "F"
	}
	if opts.Border != nil {
		w.internal.SetDrawColor(opts.Border.Bytes())
		w.internal.SetLineWidth(opts.BorderWidth)
		style += "D"
	}
	if style == "" {
		return
	}
	// fpdf anchors rectangles at their top-left corner
	w.internal.Rect(x, w.flipY(y+height), width, height, style)
}

// ready reports whether drawing is possible, recording ErrNoPage otherwise
func (w *Writer) ready() bool {
	if w.out != nil {
		w.internal.SetError(pdfs.ErrWriterClosed)
		return false
	}
	if !w.hasPage {
		w.internal.SetError(pdfs.ErrNoPage)
		return false
	}
	return w.internal.Ok()
}

// ProduceBytes closes the document on the first call. Later calls return the same bytes
func (w *Writer) ProduceBytes() ([]byte, error) {
	if w.out != nil {
		return bytes.Clone(w.out), nil
	}
	if !w.hasPage {
		return nil, pdfs.ErrNoPage
	}
	var buf bytes.Buffer
	if err := w.internal.Output(&buf); err != nil {
		return nil, fmt.Errorf("fpdf output: %w", err)
	}
	w.out = buf.Bytes()
	return bytes.Clone(w.out), nil
}

func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	b, err := w.ProduceBytes()
	if err != nil {
		return 0, err
	}
	cw := rw.NewCountWriter(dst)
	_, err = cw.Write(b)
	return cw.BytesWritten(), err
}

// Font - core font handle bound to its Writer
type Font struct {
	owner  *Writer
	family pdfs.FontFamily
	style  pdfs.FontStyle
}

var _ pdfs.Font = (*Font)(nil)

func (f *Font) Family() pdfs.FontFamily { return f.family }
func (f *Font) Style() pdfs.FontStyle   { return f.style }

// MeasureTextWidth returns the advance width in pt using the core font metrics
func (f *Font) MeasureTextWidth(text string, size float64) float64 {
	internal := f.owner.internal
	internal.SetFont(string(f.family), string(f.style), size)
	return internal.GetStringWidth(f.owner.translate(text))
}
