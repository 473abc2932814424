package request

type AddLine struct {
	VariantID  string            `validate:"required"       json:"variant_id"`
	Quantity   int64             `validate:"required,gte=1" json:"quantity"`
	Properties map[string]string `json:"properties,omitempty"`
}

// ChangeQuantity carries the new quantity for a line. Zero means
// remove; negative values are rejected before any upstream call.
type ChangeQuantity struct {
	Quantity int64 `validate:"gte=0" json:"quantity"`
}

type BulkUpdate struct {
	Updates map[string]int64 `validate:"required,min=1" json:"updates"`
}
