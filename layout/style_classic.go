package layout

import (
	"github.com/zeptools/gw-invoice/invoice"
	"github.com/zeptools/gw-invoice/pdfs"
)

// Classic: double page border, centered letterhead, framed table
var Classic = &Style{
	Template: invoice.TemplateClassic,
	Page:     pdfs.A4Size,
	Fonts:    FontSet{Family: pdfs.Times, Italic: true},
	Decorations: []Decoration{
		Frame{Inset: 30, Ink: Gray(0.7), Width: 1},
		Frame{Inset: 35, Ink: Gray(0.85), Width: 0.5},
	},

	Header: []Op{
		Text{Align: AlignCenter, Y: Top(80), Value: CompanyName, Font: BoldFont, Size: 26, Ink: Primary},
		Line{X1: Mid(-80), X2: Mid(80), Y: Top(95), Thickness: 1, Ink: Primary},

		MoveTo{Y: Top(115)},
		Text{Align: AlignCenter, Value: Joined(CompanyAddress, ", "), Size: 10, Ink: Gray(0.4)},
		Move(-14),
		Text{Align: AlignCenter, Value: Format("%s | %s", CompanyEmail, CompanyPhone), Size: 10, Ink: Gray(0.4)},

		MoveTo{Y: Top(170)},
		Text{Align: AlignCenter, Value: Literal("I N V O I C E"), Font: BoldFont, Size: 18},
		Move(-35),
		Text{X: Pt(60), Value: Prefixed("Invoice Number: ", InvoiceNumber), Size: 10},
		Text{X: Inset(200), Value: Prefixed("Invoice Date: ", InvoiceDate), Size: 10},
		Move(-16),
		Text{X: Inset(200), Value: Prefixed("Due Date: ", DueDate), Size: 10},
	},

	Client: []Op{
		MoveTo{Y: Top(260)},
		Text{X: Pt(60), Value: Literal("Bill To:"), Font: ItalicFont, Size: 11},
		Move(-18),
		Text{X: Pt(60), Value: ClientName, Font: BoldFont, Size: 12},
		Move(-16),
		Lines{X: Pt(60), Value: ClientAddress, Size: 10, Step: 14},
		Text{X: Pt(60), Value: ClientEmail, Size: 10},
	},

	Table: Table{
		Top: Top(380),
		Frame: &ItemFrame{
			X: Pt(55), W: Inset(110),
			TopPad: 15, Base: 110, PerRow: 28,
			Ink: Gray(0.7), BorderWidth: 0.5,
		},
		Head: []Op{
			Line{X1: Pt(55), X2: Inset(55), Y: Cur(-8), Thickness: 1, Ink: Gray(0.5)},
		},
		Columns: [4]Column{
			{Label: "Description", LabelX: Pt(65), X: Pt(65)},
			{Label: "Quantity", LabelX: Pt(300), X: Pt(315)},
			{Label: "Price", LabelX: Pt(380), X: Pt(380)},
			{Label: "Amount", LabelX: Pt(470), X: Pt(470)},
		},
		LabelFont: BoldFont,
		LabelSize: 10,
		Below:     []Op{Move(-28)},
		DescCap:   35,
		RowSize:   10,
		RowStep:   28,
	},

	Totals: []Op{
		Line{X1: Pt(350), X2: Inset(55), Y: Cur(15), Thickness: 0.5, Ink: Gray(0.7)},
		Text{X: Pt(380), Value: Literal("Subtotal:"), Size: 10},
		Text{X: Pt(470), Value: SubtotalAmount, Size: 10},
		Move(-18),
		Text{X: Pt(380), Value: Format("Tax (%s%%):", TaxRate), Size: 10},
		Text{X: Pt(470), Value: TaxAmount, Size: 10},
		Move(-22),
		Line{X1: Pt(370), X2: Inset(55), Y: Cur(10), Thickness: 1},
		Text{X: Pt(380), Y: Cur(-5), Value: Literal("Total Due:"), Font: BoldFont, Size: 12},
		Text{X: Pt(465), Y: Cur(-5), Value: TotalAmount, Font: BoldFont, Size: 12},
	},

	Footer: []Op{
		When{If: Has(Notes), Then: []Op{
			Text{X: Pt(60), Y: Bottom(150), Value: Literal("Notes:"), Font: ItalicFont, Size: 10},
			Flow{X: Pt(60), Y: Bottom(136), Value: Notes, Size: 9, MaxWidth: 220},
		}},
		When{If: Has(PaymentInstructions), Then: []Op{
			Text{X: Pt(300), Y: Bottom(150), Value: Literal("Payment Instructions:"), Font: ItalicFont, Size: 10},
			Flow{X: Pt(300), Y: Bottom(136), Value: PaymentInstructions, Size: 9, MaxWidth: 230},
		}},
		When{If: Has(Terms), Then: []Op{
			Text{X: Pt(60), Y: Bottom(55), Value: Capped(Terms, 90), Font: ItalicFont, Size: 8, Ink: Gray(0.5)},
		}},
		Text{Align: AlignCenter, Y: Bottom(40), Value: Literal("Thank you for your business"), Font: ItalicFont, Size: 10, Ink: Primary},
	},
}
