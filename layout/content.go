package layout

import (
	"fmt"
	"strings"

	"github.com/zeptools/gw-invoice/invoice"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// View is what zone content reads from: the invoice and its computed totals
type View struct {
	Invoice *invoice.Invoice
	Totals  invoice.Totals
}

// Content produces the text of an element
type Content func(v View) string

// Predicate gates optional sections
type Predicate func(v View) bool

func Literal(s string) Content {
	return func(View) string { return s }
}

var (
	CompanyName         Content = func(v View) string { return v.Invoice.Company.Name }
	CompanyAddress      Content = func(v View) string { return v.Invoice.Company.Address }
	CompanyEmail        Content = func(v View) string { return v.Invoice.Company.Email }
	CompanyPhone        Content = func(v View) string { return v.Invoice.Company.Phone }
	ClientName          Content = func(v View) string { return v.Invoice.Client.Name }
	ClientAddress       Content = func(v View) string { return v.Invoice.Client.Address }
	ClientEmail         Content = func(v View) string { return v.Invoice.Client.Email }
	InvoiceNumber       Content = func(v View) string { return v.Invoice.Number }
	InvoiceDate         Content = func(v View) string { return v.Invoice.Date }
	DueDate             Content = func(v View) string { return v.Invoice.DueDate }
	Notes               Content = func(v View) string { return v.Invoice.Notes }
	Terms               Content = func(v View) string { return v.Invoice.Terms }
	PaymentInstructions Content = func(v View) string { return v.Invoice.PaymentInstructions }

	TaxRate        Content = func(v View) string { return invoice.FormatNumber(v.Invoice.TaxRate) }
	SubtotalAmount Content = func(v View) string { return invoice.FormatAmount(v.Invoice.Currency, v.Totals.Subtotal) }
	TaxAmount      Content = func(v View) string { return invoice.FormatAmount(v.Invoice.Currency, v.Totals.Tax) }
	TotalAmount    Content = func(v View) string { return invoice.FormatAmount(v.Invoice.Currency, v.Totals.Total) }
)

// Format is fmt.Sprintf over contents. Use %s verbs only
func Format(format string, args ...Content) Content {
	return func(v View) string {
		vals := make([]any, len(args))
		for i, a := range args {
			vals[i] = a(v)
		}
		return fmt.Sprintf(format, vals...)
	}
}

func Prefixed(prefix string, c Content) Content {
	return func(v View) string { return prefix + c(v) }
}

// Upper upper-cases with Unicode rules (ß -> SS)
func Upper(c Content) Content {
	return func(v View) string {
		// a Caser keeps state, so one per call
		return cases.Upper(language.Und).String(c(v))
	}
}

// Capped hard-cuts to n runes
func Capped(c Content, n int) Content {
	return func(v View) string { return invoice.Truncate(c(v), n) }
}

// Joined replaces line breaks with sep
func Joined(c Content, sep string) Content {
	return func(v View) string { return strings.ReplaceAll(c(v), "\n", sep) }
}

func Has(c Content) Predicate {
	return func(v View) bool { return c(v) != "" }
}

func AnyOf(preds ...Predicate) Predicate {
	return func(v View) bool {
		for _, p := range preds {
			if p(v) {
				return true
			}
		}
		return false
	}
}
