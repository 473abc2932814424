package request

type ResolveVariant struct {
	Options  []string `validate:"required,min=1,dive,required" json:"options"`
	Quantity int64    `validate:"omitempty,gte=1"              json:"quantity"`
}
