package response

// CartLine is one line of the upstream cart. Key identifies the line
// itself; it differs from VariantID when line-item properties exist.
type CartLine struct {
	Key          string `json:"key"`
	VariantID    string `json:"variant_id"`
	Quantity     int64  `json:"quantity"`
	UnitPrice    int64  `json:"unit_price"`
	LineTotal    int64  `json:"line_total"`
	ProductTitle string `json:"product_title"`
	VariantTitle string `json:"variant_title"`
	Image        string `json:"image,omitempty"`
}

// CartSnapshot is the authoritative, point-in-time view of the upstream
// cart. It is always replaced wholesale from a server response, never
// merged field by field.
type CartSnapshot struct {
	Lines             []CartLine `json:"lines"`
	ItemCount         int64      `json:"item_count"`
	Subtotal          int64      `json:"subtotal"`
	CurrencyCode      string     `json:"currency_code"`
	FormattedSubtotal string     `json:"formatted_subtotal"`
}
