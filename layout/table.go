package layout

import (
	"github.com/zeptools/gw-invoice/invoice"
	"github.com/zeptools/gw-invoice/pdfs"
)

// Column places one of the four item columns:
// description, quantity, unit price, line amount
type Column struct {
	Label  string
	LabelX Pos
	X      Pos
}

// ItemFrame borders the whole table. Its height depends on the item count:
// Base + PerRow*n, with the top edge TopPad above the header baseline.
type ItemFrame struct {
	X           Pos
	W           Pos
	TopPad      float64
	Base        float64
	PerRow      float64
	Ink         Ink
	BorderWidth float64
}

// Table lays out the line items. Rows go down from the header in item order.
// Nothing paginates: rows past the bottom margin are clipped by the page.
type Table struct {
	Top   Y
	Frame *ItemFrame

	// Head runs before the labels are drawn, Below runs after them and
	// must leave the cursor on the first row baseline
	Head  []Op
	Below []Op

	Columns    [4]Column
	LabelFont  FontRole
	LabelSize  float64
	LabelInk   Ink
	DescCap    int // runes kept from each description
	RowSize    float64
	AmountFont FontRole
	RowStep    float64

	Zebra     Op // drawn behind every even row (0, 2, 4...)
	Separator Op // drawn after the cursor steps past a row
}

func (t *Table) draw(p *pass) {
	items := p.view.Invoice.Items
	p.y = t.Top.resolve(p)

	if f := t.Frame; f != nil {
		h := f.Base + f.PerRow*float64(len(items))
		p.w.Rect(f.X.resolve(p.page.Width), p.y+f.TopPad-h, f.W.resolve(p.page.Width), h, pdfs.RectOpts{
			Border:      p.palette.paint(f.Ink),
			BorderWidth: f.BorderWidth,
		})
	}

	p.run(t.Head)
	for _, col := range t.Columns {
		Text{X: col.LabelX, Value: Literal(col.Label), Font: t.LabelFont, Size: t.LabelSize, Ink: t.LabelInk}.apply(p)
	}
	p.run(t.Below)

	currency := p.view.Invoice.Currency
	for i, item := range items {
		if t.Zebra != nil && i%2 == 0 {
			t.Zebra.apply(p)
		}
		cells := [4]string{
			invoice.Truncate(item.Description, t.DescCap),
			invoice.FormatNumber(item.Quantity),
			invoice.FormatAmount(currency, item.UnitPrice),
			invoice.FormatAmount(currency, item.Amount()),
		}
		for c, col := range t.Columns {
			font := RegularFont
			if c == 3 {
				font = t.AmountFont
			}
			Text{X: col.X, Value: Literal(cells[c]), Font: font, Size: t.RowSize}.apply(p)
		}
		p.y -= t.RowStep
		if t.Separator != nil {
			t.Separator.apply(p)
		}
	}
}
