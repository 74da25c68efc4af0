package layout

import (
	"github.com/zeptools/gw-invoice/colors"
	"github.com/zeptools/gw-invoice/pdfs"
)

// Decoration is page furniture drawn before any text
type Decoration interface {
	Kind() string
	draw(p *pass)
}

var (
	_ Decoration = AccentBar{}
	_ Decoration = GradientBand{}
	_ Decoration = Frame{}
	_ Decoration = Sidebar{}
)

// AccentBar is a full-width band flush with the top edge
type AccentBar struct {
	Height float64
	Ink    Ink
}

func (AccentBar) Kind() string { return "accent-bar" }

func (d AccentBar) draw(p *pass) {
	p.w.Rect(0, p.page.Height-d.Height, p.page.Width, d.Height, pdfs.RectOpts{Fill: p.palette.paint(d.Ink)})
}

// GradientBand stacks Strips full-width strips upward from Top (measured
// from the top edge), strip i colored From + (To-From)*i/Strips
type GradientBand struct {
	Top         float64
	Strips      int
	StripHeight float64
	From        Ink
	To          Ink
}

func (GradientBand) Kind() string { return "gradient-band" }

func (d GradientBand) draw(p *pass) {
	from := p.palette.resolve(d.From)
	to := p.palette.resolve(d.To)
	base := p.page.Height - d.Top
	for i := range d.Strips {
		c := colors.Lerp(from, to, float64(i)/float64(d.Strips))
		p.w.Rect(0, base+float64(i)*d.StripHeight, p.page.Width, d.StripHeight, pdfs.RectOpts{Fill: &c})
	}
}

// Frame is an unfilled border Inset from every page edge
type Frame struct {
	Inset float64
	Ink   Ink
	Width float64
}

func (Frame) Kind() string { return "frame" }

func (d Frame) draw(p *pass) {
	p.w.Rect(d.Inset, d.Inset, p.page.Width-2*d.Inset, p.page.Height-2*d.Inset, pdfs.RectOpts{
		Border:      p.palette.paint(d.Ink),
		BorderWidth: d.Width,
	})
}

// Sidebar is a full-height panel on the left edge
type Sidebar struct {
	Width float64
	Ink   Ink
}

func (Sidebar) Kind() string { return "sidebar" }

func (d Sidebar) draw(p *pass) {
	p.w.Rect(0, 0, d.Width, p.page.Height, pdfs.RectOpts{Fill: p.palette.paint(d.Ink)})
}
