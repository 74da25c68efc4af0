package layout

import (
	"github.com/zeptools/gw-invoice/invoice"
	"github.com/zeptools/gw-invoice/pdfs"
)

// Startup: dark sidebar carrying the sender and payment details,
// content column starting at x=200
var Startup = &Style{
	Template: invoice.TemplateStartup,
	Page:     pdfs.A4Size,
	Fonts:    FontSet{Family: pdfs.Helvetica},
	Decorations: []Decoration{
		Sidebar{Width: 180, Ink: RGB(0.12, 0.12, 0.15)},
	},

	Header: []Op{
		// sidebar
		Text{X: Pt(20), Y: Top(50), Value: CompanyName, Font: BoldFont, Size: 18, Ink: White},
		MoveTo{Y: Top(80)},
		Lines{X: Pt(20), Value: CompanyAddress, Size: 8, Ink: Gray(0.6), Step: 12},
		Text{X: Pt(20), Value: CompanyEmail, Size: 8, Ink: Gray(0.6)},
		Move(-12),
		Text{X: Pt(20), Value: CompanyPhone, Size: 8, Ink: Gray(0.6)},
		Move(-25),
		Rect{X: Pt(20), W: Pt(140), H: Pt(3), Fill: Primary},
		When{If: Has(PaymentInstructions), Then: []Op{
			Move(-30),
			Text{X: Pt(20), Value: Literal("PAYMENT"), Font: BoldFont, Size: 9, Ink: Primary},
			Move(-16),
			Flow{X: Pt(20), Value: PaymentInstructions, Size: 8, Ink: Gray(0.7), MaxWidth: 140, LineHeight: 11.0 / 8},
		}},

		// content column
		Text{X: Pt(200), Y: Top(50), Value: Literal("INVOICE"), Font: BoldFont, Size: 32, Ink: Gray(0.15)},
		Text{X: Pt(200), Y: Top(90), Value: Prefixed("#", InvoiceNumber), Font: BoldFont, Size: 14, Ink: Primary},
		Text{X: Inset(150), Y: Top(90), Value: Prefixed("Issued: ", InvoiceDate), Size: 10},
		Text{X: Inset(150), Y: Top(106), Value: Prefixed("Due: ", DueDate), Size: 10, Ink: RGB(0.8, 0.2, 0.2)},
	},

	Client: []Op{
		MoveTo{Y: Top(150)},
		Rect{X: Pt(200), Y: Cur(-70), W: Inset(250), H: Pt(80), Fill: Gray(0.97)},
		Text{X: Pt(215), Value: Literal("BILL TO"), Font: BoldFont, Size: 9, Ink: Gray(0.5)},
		Move(-18),
		Text{X: Pt(215), Value: ClientName, Font: BoldFont, Size: 13},
		Move(-16),
		Lines{X: Pt(215), Value: ClientAddress, Size: 10, Ink: Gray(0.4), Step: 13},
		Text{X: Pt(215), Value: ClientEmail, Size: 10, Ink: Gray(0.4)},
	},

	Table: Table{
		Top: Top(280),
		Columns: [4]Column{
			{Label: "SERVICE", LabelX: Pt(200), X: Pt(200)},
			{Label: "QTY", LabelX: Pt(380), X: Pt(390)},
			{Label: "RATE", LabelX: Pt(430), X: Pt(430)},
			{Label: "TOTAL", LabelX: Pt(500), X: Pt(500)},
		},
		LabelFont: BoldFont,
		LabelSize: 9,
		LabelInk:  Gray(0.5),
		Below: []Op{
			Move(-10),
			Line{X1: Pt(200), X2: Inset(50), Thickness: 2, Ink: Primary},
			Move(-25),
		},
		DescCap:    25,
		RowSize:    11,
		AmountFont: BoldFont,
		RowStep:    28,
		Separator:  Line{X1: Pt(200), X2: Inset(50), Y: Cur(12), Thickness: 0.5, Ink: Gray(0.9)},
	},

	Totals: []Op{
		Move(-15),
		Text{X: Pt(420), Value: Literal("Subtotal"), Size: 10, Ink: Gray(0.5)},
		Text{X: Pt(500), Value: SubtotalAmount, Size: 10},
		Move(-18),
		Text{X: Pt(420), Value: Format("Tax %s%%", TaxRate), Size: 10, Ink: Gray(0.5)},
		Text{X: Pt(500), Value: TaxAmount, Size: 10},
		Move(-30),
		Rect{X: Pt(400), Y: Cur(-10), W: Pt(145), H: Pt(40), Fill: Primary},
		Text{X: Pt(415), Y: Cur(5), Value: Literal("TOTAL"), Font: BoldFont, Size: 10, Ink: White},
		Text{X: Pt(480), Y: Cur(5), Value: TotalAmount, Font: BoldFont, Size: 16, Ink: White},
	},

	Footer: []Op{
		When{If: Has(Notes), Then: []Op{
			Text{X: Pt(200), Y: Bottom(120), Value: Literal("NOTES"), Font: BoldFont, Size: 9, Ink: Gray(0.5)},
			Flow{X: Pt(200), Y: Bottom(106), Value: Notes, Size: 9, MaxWidth: 340},
		}},
		When{If: Has(Terms), Then: []Op{
			Text{X: Pt(20), Y: Bottom(40), Value: Capped(Terms, 60), Size: 7, Ink: Gray(0.4)},
		}},
	},
}
