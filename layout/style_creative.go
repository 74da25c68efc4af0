package layout

import (
	"github.com/zeptools/gw-invoice/invoice"
	"github.com/zeptools/gw-invoice/pdfs"
)

// Creative: primary-to-secondary gradient header, accent strip beside the client
var Creative = &Style{
	Template: invoice.TemplateCreative,
	Page:     pdfs.A4Size,
	Fonts:    FontSet{Family: pdfs.Helvetica},
	Decorations: []Decoration{
		GradientBand{Top: 160, Strips: 20, StripHeight: 8, From: Primary, To: Secondary},
	},

	Header: []Op{
		Text{X: Pt(50), Y: Top(60), Value: Upper(CompanyName), Font: BoldFont, Size: 28, Ink: White},
		Text{X: Inset(150), Y: Top(55), Value: Literal("INVOICE"), Font: BoldFont, Size: 20, Ink: White},
		Text{X: Inset(150), Y: Top(78), Value: Prefixed("#", InvoiceNumber), Size: 14, Ink: White},

		MoveTo{Y: Top(185)},
		Text{X: Pt(50), Value: Joined(CompanyAddress, " • "), Size: 9, Ink: Gray(0.4)},
		Move(-14),
		Text{X: Pt(50), Value: Format("%s • %s", CompanyEmail, CompanyPhone), Size: 9, Ink: Gray(0.4)},

		Text{X: Inset(150), Y: Top(185), Value: Prefixed("Date: ", InvoiceDate), Size: 10},
		Text{X: Inset(150), Y: Top(199), Value: Prefixed("Due: ", DueDate), Size: 10},
	},

	Client: []Op{
		MoveTo{Y: Top(250)},
		Rect{X: Pt(50), Y: Cur(-60), W: Pt(5), H: Pt(70), Fill: Primary},
		Text{X: Pt(65), Value: Literal("BILLED TO"), Font: BoldFont, Size: 10, Ink: Primary},
		Move(-18),
		Text{X: Pt(65), Value: ClientName, Font: BoldFont, Size: 14},
		Move(-18),
		Lines{X: Pt(65), Value: ClientAddress, Size: 10, Ink: Gray(0.4), Step: 14},
		Text{X: Pt(65), Value: ClientEmail, Size: 10, Ink: Gray(0.4)},
	},

	Table: Table{
		Top: Top(380),
		Columns: [4]Column{
			{Label: "ITEM", LabelX: Pt(50), X: Pt(50)},
			{Label: "QTY", LabelX: Pt(300), X: Pt(310)},
			{Label: "RATE", LabelX: Pt(370), X: Pt(370)},
			{Label: "AMOUNT", LabelX: Pt(470), X: Pt(470)},
		},
		LabelFont: BoldFont,
		LabelSize: 9,
		LabelInk:  Gray(0.5),
		Below: []Op{
			Move(-8),
			Line{X1: Pt(50), X2: Inset(50), Thickness: 2, Ink: Primary},
			Move(-25),
		},
		DescCap:    35,
		RowSize:    11,
		AmountFont: BoldFont,
		RowStep:    30,
		Separator:  Line{X1: Pt(50), X2: Inset(50), Y: Cur(12), Thickness: 0.5, Ink: Gray(0.9)},
	},

	Totals: []Op{
		Move(-20),
		Text{X: Pt(370), Value: Literal("Subtotal"), Size: 10},
		Text{X: Pt(470), Value: SubtotalAmount, Size: 10},
		Move(-18),
		Text{X: Pt(370), Value: Format("Tax (%s%%)", TaxRate), Size: 10},
		Text{X: Pt(470), Value: TaxAmount, Size: 10},
		Move(-25),
		Rect{X: Pt(360), Y: Cur(-10), W: Pt(185), H: Pt(35), Fill: Primary},
		Text{X: Pt(375), Value: Literal("TOTAL"), Font: BoldFont, Size: 14, Ink: White},
		Text{X: Pt(460), Value: TotalAmount, Font: BoldFont, Size: 14, Ink: White},
	},

	Footer: []Op{
		When{If: AnyOf(Has(Notes), Has(PaymentInstructions)), Then: []Op{
			Line{X1: Pt(50), X2: Inset(50), Y: Bottom(140), Thickness: 1, Ink: Gray(0.9)},
		}},
		When{If: Has(Notes), Then: []Op{
			Text{X: Pt(50), Y: Bottom(120), Value: Literal("NOTES"), Font: BoldFont, Size: 9, Ink: Primary},
			Flow{X: Pt(50), Y: Bottom(106), Value: Notes, Size: 9, MaxWidth: 220},
		}},
		When{If: Has(PaymentInstructions), Then: []Op{
			Text{X: Pt(300), Y: Bottom(120), Value: Literal("PAYMENT"), Font: BoldFont, Size: 9, Ink: Primary},
			Flow{X: Pt(300), Y: Bottom(106), Value: PaymentInstructions, Size: 9, MaxWidth: 240},
		}},
		When{If: Has(Terms), Then: []Op{
			Text{X: Pt(50), Y: Bottom(35), Value: Capped(Terms, 100), Size: 8, Ink: Gray(0.6)},
		}},
	},
}
