package response

import (
	"time"

	"github.com/google/uuid"
)

type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// Variant is one purchasable option combination of a product. Price and
// CompareAtPrice are minor currency units (cents), never floats.
type Variant struct {
	ID             uuid.UUID `json:"id"`
	OptionValues   []string  `json:"option_values"`
	Price          int64     `json:"price"`
	CompareAtPrice *int64    `json:"compare_at_price,omitempty"`
	Available      bool      `json:"available"`
	Image          *Image    `json:"image,omitempty"`
}

type Product struct {
	ID          uuid.UUID `json:"id"`
	Handle      string    `json:"handle"`
	Title       string    `json:"title"`
	OptionNames []string  `json:"option_names"`
	Variants    []Variant `json:"variants"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type PriceDisplay struct {
	UnitPrice           int64  `json:"unit_price"`
	TotalPrice          int64  `json:"total_price"`
	HasDiscount         bool   `json:"has_discount"`
	Savings             int64  `json:"savings"`
	FormattedUnitPrice  string `json:"formatted_unit_price"`
	FormattedTotalPrice string `json:"formatted_total_price"`
}

type ResolvedVariant struct {
	Variant Variant      `json:"variant"`
	Price   PriceDisplay `json:"price"`
}
