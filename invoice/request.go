package invoice

import "time"

const DateLayout = "2006-01-02"

// PlaceholderItem is supplied when a request carries no line items
var PlaceholderItem = LineItem{Description: "Service/Product", Quantity: 1, UnitPrice: 100}

// Request is the loosely filled input collected from API or CLI callers.
// Terms is a pointer so that an explicit "" can suppress the default terms line.
type Request struct {
	Invoice
	Terms *string `json:"terms,omitempty"` // shadows Invoice.Terms
}

// Defaults for fields a Request leaves empty
type Defaults struct {
	Template       Template `json:"default_template"`
	PrimaryColor   string   `json:"primary_color"`
	SecondaryColor string   `json:"secondary_color"`
	Currency       string   `json:"currency"`
	Terms          string   `json:"terms"`
	DueInDays      int      `json:"due_in_days"`
}

var StandardDefaults = Defaults{
	Template:       DefaultTemplate,
	PrimaryColor:   "#2563eb",
	SecondaryColor: "#f1f5f9",
	Currency:       "$",
	Terms:          "Payment is due within 30 days.",
	DueInDays:      30,
}

// merged fills zero fields of d from StandardDefaults
func (d Defaults) merged() Defaults {
	s := StandardDefaults
	if d.Template != "" {
		s.Template = d.Template
	}
	if d.PrimaryColor != "" {
		s.PrimaryColor = d.PrimaryColor
	}
	if d.SecondaryColor != "" {
		s.SecondaryColor = d.SecondaryColor
	}
	if d.Currency != "" {
		s.Currency = d.Currency
	}
	if d.Terms != "" {
		s.Terms = d.Terms
	}
	if d.DueInDays > 0 {
		s.DueInDays = d.DueInDays
	}
	return s
}

// Build returns a render-ready Invoice. The request is not modified.
//   - empty template/colors/currency/dates take the defaults
//   - item description "" -> "Item", quantity 0 -> 1
//   - no items -> PlaceholderItem
//
// Unknown template identifiers are kept as-is; resolution happens at render time.
func (r *Request) Build(d Defaults, now time.Time) Invoice {
	d = d.merged()
	inv := r.Invoice
	if inv.Template == "" {
		inv.Template = d.Template
	}
	if inv.PrimaryColor == "" {
		inv.PrimaryColor = d.PrimaryColor
	}
	if inv.SecondaryColor == "" {
		inv.SecondaryColor = d.SecondaryColor
	}
	if inv.Currency == "" {
		inv.Currency = d.Currency
	}
	if inv.Date == "" {
		inv.Date = now.Format(DateLayout)
	}
	if inv.DueDate == "" {
		inv.DueDate = now.AddDate(0, 0, d.DueInDays).Format(DateLayout)
	}
	if r.Terms == nil {
		inv.Terms = d.Terms
	} else {
		inv.Terms = *r.Terms
	}
	inv.Items = normalizeItems(r.Items)
	return inv
}

func normalizeItems(items []LineItem) []LineItem {
	if len(items) == 0 {
		return []LineItem{PlaceholderItem}
	}
	out := make([]LineItem, len(items))
	for i, item := range items {
		if item.Description == "" {
			item.Description = "Item"
		}
		if item.Quantity == 0 {
			item.Quantity = 1
		}
		out[i] = item
	}
	return out
}

// Summary is the receipt returned next to a rendered invoice.
// Amounts are two-decimal strings from the same Totals the page shows.
type Summary struct {
	InvoiceNumber string   `json:"invoiceNumber"`
	InvoiceDate   string   `json:"invoiceDate"`
	DueDate       string   `json:"dueDate"`
	Template      Template `json:"template"`
	Currency      string   `json:"currency"`
	ItemCount     int      `json:"itemCount"`
	Subtotal      string   `json:"subtotal"`
	Tax           string   `json:"tax"`
	Total         string   `json:"total"`
}

func NewSummary(inv *Invoice) Summary {
	t := inv.Totals()
	return Summary{
		InvoiceNumber: inv.Number,
		InvoiceDate:   inv.Date,
		DueDate:       inv.DueDate,
		Template:      inv.Template.Resolve(),
		Currency:      inv.Currency,
		ItemCount:     len(inv.Items),
		Subtotal:      FormatFixed2(t.Subtotal),
		Tax:           FormatFixed2(t.Tax),
		Total:         FormatFixed2(t.Total),
	}
}
