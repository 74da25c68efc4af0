package invoice

// Template - closed set of visual compositions
type Template string

const (
	TemplateModern    Template = "modern"
	TemplateCorporate Template = "corporate"
	TemplateCreative  Template = "creative"
	TemplateClassic   Template = "classic"
	TemplateStartup   Template = "startup"

	DefaultTemplate = TemplateModern
)

// Templates in display order
var Templates = []Template{
	TemplateModern,
	TemplateCorporate,
	TemplateCreative,
	TemplateClassic,
	TemplateStartup,
}

// Known reports whether t is one of the five templates
func (t Template) Known() bool {
	for _, k := range Templates {
		if t == k {
			return true
		}
	}
	return false
}

// Resolve maps unknown or empty identifiers to DefaultTemplate
func (t Template) Resolve() Template {
	if t.Known() {
		return t
	}
	return DefaultTemplate
}

// LineItem - one billable row
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// Amount = Quantity * UnitPrice
func (i LineItem) Amount() float64 {
	return i.Quantity * i.UnitPrice
}

type Company struct {
	Name    string `json:"name"`
	Address string `json:"address"` // "\n" separated lines
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

type Client struct {
	Name    string `json:"name"`
	Address string `json:"address"` // "\n" separated lines
	Email   string `json:"email"`
}

// Invoice is read-only input for one render pass.
// Dates and Currency are display strings, never parsed.
type Invoice struct {
	Template            Template   `json:"template"`
	Company             Company    `json:"company"`
	Client              Client     `json:"client"`
	Number              string     `json:"invoiceNumber"`
	Date                string     `json:"invoiceDate"`
	DueDate             string     `json:"dueDate"`
	Currency            string     `json:"currency"`
	Items               []LineItem `json:"items"`
	TaxRate             float64    `json:"taxRate"` // percent, 10 = 10%
	PrimaryColor        string     `json:"primaryColor"`
	SecondaryColor      string     `json:"secondaryColor"`
	Notes               string     `json:"notes,omitempty"`
	Terms               string     `json:"terms,omitempty"`
	PaymentInstructions string     `json:"paymentInstructions,omitempty"`
}

// Totals computes the figures from Items and TaxRate
func (inv *Invoice) Totals() Totals {
	return ComputeTotals(inv.Items, inv.TaxRate)
}

// Filename for the rendered attachment
func (inv *Invoice) Filename() string {
	return "invoice_" + inv.Number + ".pdf"
}
