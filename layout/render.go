// Package layout draws an invoice onto a single pdfs.Writer page.
//
// Every template is one Style value run by the same engine: page decorations
// first, then the header, client, table, totals and footer zones in that
// order. Zones are short programs of ops over a vertical cursor.
package layout

import (
	"fmt"

	"github.com/zeptools/gw-invoice/invoice"
	"github.com/zeptools/gw-invoice/pdfs"
)

// FontSet names the family a style draws with. Regular and bold are always
// embedded, italic only when Italic is set.
type FontSet struct {
	Family pdfs.FontFamily
	Italic bool
}

// Style is the complete description of one template
type Style struct {
	Template    invoice.Template
	Page        pdfs.PaperSize
	Fonts       FontSet
	Decorations []Decoration

	Header []Op
	Client []Op
	Table  Table
	Totals []Op // continues from the cursor the table leaves
	Footer []Op
}

// Render draws inv with the style registered for its template,
// Modern when the template is unknown or empty
func Render(w pdfs.Writer, inv *invoice.Invoice) error {
	return Default.Lookup(inv.Template).Render(w, inv)
}

// Render adds one page to w and draws inv on it.
// The writer is left open; the caller produces the bytes.
func (s *Style) Render(w pdfs.Writer, inv *invoice.Invoice) error {
	page := s.Page
	if page.Width == 0 {
		page = pdfs.A4Size
	}
	w.AddPage(page)

	fonts, err := embedFonts(w, s.Fonts)
	if err != nil {
		return fmt.Errorf("layout: %s: %w", s.Template, err)
	}

	p := &pass{
		w:       w,
		page:    page,
		fonts:   fonts,
		palette: NewPalette(inv.PrimaryColor, inv.SecondaryColor),
		view:    View{Invoice: inv, Totals: inv.Totals()},
		y:       page.Height,
	}
	for _, d := range s.Decorations {
		d.draw(p)
	}
	p.run(s.Header)
	p.run(s.Client)
	s.Table.draw(p)
	p.run(s.Totals)
	p.run(s.Footer)
	return nil
}

type fontSlot struct {
	role  FontRole
	style pdfs.FontStyle
}

func embedFonts(w pdfs.Writer, set FontSet) (map[FontRole]pdfs.Font, error) {
	slots := []fontSlot{{RegularFont, pdfs.Regular}, {BoldFont, pdfs.Bold}}
	if set.Italic {
		slots = append(slots, fontSlot{ItalicFont, pdfs.Italic})
	}
	fonts := make(map[FontRole]pdfs.Font, len(slots))
	for _, s := range slots {
		f, err := w.EmbedFont(set.Family, s.style)
		if err != nil {
			return nil, err
		}
		fonts[s.role] = f
	}
	return fonts, nil
}

// pass is the state of one Render call
type pass struct {
	w       pdfs.Writer
	page    pdfs.PaperSize
	fonts   map[FontRole]pdfs.Font
	palette Palette
	view    View
	y       float64 // zone cursor
}

func (p *pass) run(ops []Op) {
	for _, op := range ops {
		op.apply(p)
	}
}

func (p *pass) eval(c Content) string {
	if c == nil {
		return ""
	}
	return c(p.view)
}

// font falls back to regular for roles the style did not embed
func (p *pass) font(role FontRole) pdfs.Font {
	if f, ok := p.fonts[role]; ok {
		return f
	}
	return p.fonts[RegularFont]
}
