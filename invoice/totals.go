package invoice

// Totals - derived figures, full precision. Rounding is left to FormatAmount
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// ComputeTotals is the only place totals are derived.
// Signs are not validated: negative quantities, prices or rates flow through.
func ComputeTotals(items []LineItem, taxRatePercent float64) Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Amount()
	}
	tax := subtotal * taxRatePercent / 100
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}
