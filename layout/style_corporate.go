package layout

import (
	"github.com/zeptools/gw-invoice/invoice"
	"github.com/zeptools/gw-invoice/pdfs"
)

// Corporate: gray header panel, boxed invoice id, zebra rows, serif type
var Corporate = &Style{
	Template: invoice.TemplateCorporate,
	Page:     pdfs.A4Size,
	Fonts:    FontSet{Family: pdfs.Times},
	Decorations: []Decoration{
		AccentBar{Height: 120, Ink: Gray(0.95)},
	},

	Header: []Op{
		Text{X: Pt(50), Y: Top(50), Value: Upper(CompanyName), Font: BoldFont, Size: 22, Ink: Primary},
		MoveTo{Y: Top(75)},
		Lines{X: Pt(50), Value: CompanyAddress, Size: 9, Step: 12},
		Text{X: Pt(50), Value: Format("%s | %s", CompanyEmail, CompanyPhone), Size: 9},

		Rect{X: Inset(200), Y: Top(110), W: Pt(150), H: Pt(80), Border: Primary, BorderWidth: 2},
		Text{X: Inset(175), Y: Top(55), Value: Literal("INVOICE"), Font: BoldFont, Size: 16, Ink: Primary},
		Text{X: Inset(175), Y: Top(75), Value: Prefixed("#", InvoiceNumber), Size: 12},
		Text{X: Inset(175), Y: Top(92), Value: Prefixed("Date: ", InvoiceDate), Size: 9},
		Text{X: Inset(175), Y: Top(105), Value: Prefixed("Due: ", DueDate), Size: 9},
	},

	Client: []Op{
		MoveTo{Y: Top(170)},
		Text{X: Pt(50), Value: Literal("Bill To:"), Font: BoldFont, Size: 11},
		Move(-18),
		Text{X: Pt(50), Value: ClientName, Font: BoldFont, Size: 11},
		Move(-15),
		Lines{X: Pt(50), Value: ClientAddress, Size: 10, Step: 13},
		Text{X: Pt(50), Value: ClientEmail, Size: 10},
	},

	Table: Table{
		Top: Top(300),
		Head: []Op{
			Rect{X: Pt(50), Y: Cur(-5), W: Inset(100), H: Pt(22), Fill: Primary},
		},
		Columns: [4]Column{
			{Label: "Description", LabelX: Pt(60), X: Pt(60)},
			{Label: "Qty", LabelX: Pt(320), X: Pt(330)},
			{Label: "Rate", LabelX: Pt(380), X: Pt(380)},
			{Label: "Amount", LabelX: Pt(470), X: Pt(470)},
		},
		LabelFont: BoldFont,
		LabelSize: 10,
		LabelInk:  White,
		Below:     []Op{Move(-30)},
		DescCap:   35,
		RowSize:   10,
		RowStep:   25,
		Zebra:     Rect{X: Pt(50), Y: Cur(-5), W: Inset(100), H: Pt(22), Fill: Gray(0.97)},
	},

	Totals: []Op{
		Line{X1: Pt(350), X2: Inset(50), Y: Cur(10), Thickness: 1},
		Line{X1: Pt(350), X2: Inset(50), Y: Cur(7), Thickness: 1},
		Move(-15),
		Text{X: Pt(380), Value: Literal("Subtotal:"), Size: 10},
		Text{X: Pt(470), Value: SubtotalAmount, Size: 10},
		Move(-18),
		Text{X: Pt(380), Value: Format("Tax (%s%%):", TaxRate), Size: 10},
		Text{X: Pt(470), Value: TaxAmount, Size: 10},
		Move(-20),
		Line{X1: Pt(370), X2: Inset(50), Y: Cur(8), Thickness: 1},
		Text{X: Pt(380), Y: Cur(-5), Value: Literal("TOTAL DUE:"), Font: BoldFont, Size: 12},
		Text{X: Pt(470), Y: Cur(-5), Value: TotalAmount, Font: BoldFont, Size: 12},
	},

	Footer: []Op{
		When{If: Has(Notes), Then: []Op{
			Text{X: Pt(50), Y: Bottom(140), Value: Literal("Notes"), Font: BoldFont, Size: 10},
			Flow{X: Pt(50), Y: Bottom(126), Value: Notes, Size: 9, MaxWidth: 220},
		}},
		When{If: Has(PaymentInstructions), Then: []Op{
			Text{X: Pt(300), Y: Bottom(140), Value: Literal("Payment Information"), Font: BoldFont, Size: 10},
			Flow{X: Pt(300), Y: Bottom(126), Value: PaymentInstructions, Size: 9, MaxWidth: 240},
		}},
		When{If: Has(Terms), Then: []Op{
			Line{X1: Pt(50), X2: Inset(50), Y: Bottom(55), Thickness: 0.5, Ink: Gray(0.8)},
			Text{X: Pt(50), Y: Bottom(40), Value: Prefixed("Terms: ", Capped(Terms, 90)), Size: 8, Ink: Gray(0.5)},
		}},
	},
}
