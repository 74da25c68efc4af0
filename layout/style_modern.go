package layout

import (
	"github.com/zeptools/gw-invoice/invoice"
	"github.com/zeptools/gw-invoice/pdfs"
)

// Modern: primary accent bar, two-column header, banded table head
var Modern = &Style{
	Template: invoice.TemplateModern,
	Page:     pdfs.A4Size,
	Fonts:    FontSet{Family: pdfs.Helvetica},
	Decorations: []Decoration{
		AccentBar{Height: 8, Ink: Primary},
	},

	Header: []Op{
		Text{X: Pt(50), Y: Top(60), Value: CompanyName, Font: BoldFont, Size: 24, Ink: Gray(0.1)},
		Text{X: Inset(150), Y: Top(60), Value: Literal("INVOICE"), Font: BoldFont, Size: 24, Ink: Primary},

		MoveTo{Y: Top(90)},
		Lines{X: Pt(50), Value: CompanyAddress, Size: 10, Ink: Gray(0.4), Step: 14},
		Text{X: Pt(50), Value: CompanyEmail, Size: 10, Ink: Gray(0.4)},
		Move(-14),
		Text{X: Pt(50), Value: CompanyPhone, Size: 10, Ink: Gray(0.4)},

		MoveTo{Y: Top(90)},
		Text{X: Inset(200), Value: Prefixed("Invoice #: ", InvoiceNumber), Size: 10},
		Move(-14),
		Text{X: Inset(200), Value: Prefixed("Date: ", InvoiceDate), Size: 10},
		Move(-14),
		Text{X: Inset(200), Value: Prefixed("Due: ", DueDate), Size: 10},
	},

	Client: []Op{
		MoveTo{Y: Top(200)},
		Text{X: Pt(50), Value: Literal("BILL TO"), Font: BoldFont, Size: 10, Ink: Primary},
		Move(-18),
		Text{X: Pt(50), Value: ClientName, Font: BoldFont, Size: 12},
		Move(-16),
		Lines{X: Pt(50), Value: ClientAddress, Size: 10, Ink: Gray(0.4), Step: 14},
		Text{X: Pt(50), Value: ClientEmail, Size: 10, Ink: Gray(0.4)},
	},

	Table: Table{
		Top: Top(320),
		Head: []Op{
			Rect{X: Pt(50), Y: Cur(-5), W: Inset(100), H: Pt(25), Fill: Secondary},
		},
		Columns: [4]Column{
			{Label: "Description", LabelX: Pt(60), X: Pt(60)},
			{Label: "Qty", LabelX: Pt(320), X: Pt(320)},
			{Label: "Price", LabelX: Pt(380), X: Pt(380)},
			{Label: "Total", LabelX: Pt(480), X: Pt(480)},
		},
		LabelFont: BoldFont,
		LabelSize: 10,
		Below:     []Op{Move(-35)},
		DescCap:   40,
		RowSize:   10,
		RowStep:   25,
		Separator: Line{X1: Pt(50), X2: Inset(50), Y: Cur(10), Thickness: 0.5, Ink: Gray(0.9)},
	},

	Totals: []Op{
		Move(-20),
		Text{X: Pt(380), Value: Literal("Subtotal:"), Size: 10},
		Text{X: Pt(480), Value: SubtotalAmount, Size: 10},
		Move(-18),
		Text{X: Pt(380), Value: Format("Tax (%s%%):", TaxRate), Size: 10},
		Text{X: Pt(480), Value: TaxAmount, Size: 10},
		Move(-22),
		Rect{X: Pt(370), Y: Cur(-5), W: Pt(175), H: Pt(25), Fill: Primary},
		Text{X: Pt(380), Value: Literal("TOTAL:"), Font: BoldFont, Size: 12, Ink: White},
		Text{X: Pt(480), Value: TotalAmount, Font: BoldFont, Size: 12, Ink: White},
	},

	Footer: []Op{
		When{If: Has(Notes), Then: []Op{
			Text{X: Pt(50), Y: Bottom(120), Value: Literal("Notes:"), Font: BoldFont, Size: 9},
			Flow{X: Pt(50), Y: Bottom(106), Value: Notes, Size: 9, MaxWidth: 250},
		}},
		When{If: Has(PaymentInstructions), Then: []Op{
			Text{X: Pt(320), Y: Bottom(120), Value: Literal("Payment Instructions:"), Font: BoldFont, Size: 9},
			Flow{X: Pt(320), Y: Bottom(106), Value: PaymentInstructions, Size: 9, MaxWidth: 220},
		}},
		When{If: Has(Terms), Then: []Op{
			Text{X: Pt(50), Y: Bottom(40), Value: Capped(Terms, 100), Size: 8, Ink: Gray(0.5)},
		}},
	},
}
