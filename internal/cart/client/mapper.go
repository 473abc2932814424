package client

import (
	"fmt"

	"github.com/calyptra/storefront/cart/pkg/response"
	inErrors "github.com/calyptra/storefront/internal/common/errors"
	"github.com/calyptra/storefront/internal/common/money"
)

type cartPayload struct {
	Items      []linePayload `json:"items"`
	ItemCount  int64         `json:"item_count"`
	TotalPrice int64         `json:"total_price"`
	Currency   string        `json:"currency"`
}

type linePayload struct {
	Key          string `json:"key"`
	VariantID    string `json:"variant_id"`
	Quantity     int64  `json:"quantity"`
	Price        int64  `json:"price"`
	LinePrice    int64  `json:"line_price"`
	ProductTitle string `json:"product_title"`
	VariantTitle string `json:"variant_title"`
	Image        string `json:"image"`
}

type errorPayload struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	Description string `json:"description"`
}

// Snapshot validates the upstream payload and converts it to a
// CartSnapshot. Malformed payloads are rejected at the boundary rather
// than propagated into displayed state.
func (p cartPayload) Snapshot() (response.CartSnapshot, error) {
	var quantitySum int64
	lines := make([]response.CartLine, 0, len(p.Items))
	for _, item := range p.Items {
		if item.Key == "" || item.VariantID == "" {
			return response.CartSnapshot{}, fmt.Errorf(
				"line is missing key or variant id with error=%w",
				inErrors.ErrMalformedCart,
			)
		}
		if item.Quantity < 0 {
			return response.CartSnapshot{}, fmt.Errorf(
				"lineKey=%s has negative quantity=%d with error=%w",
				item.Key,
				item.Quantity,
				inErrors.ErrMalformedCart,
			)
		}
		quantitySum += item.Quantity
		lines = append(lines, response.CartLine{
			Key:          item.Key,
			VariantID:    item.VariantID,
			Quantity:     item.Quantity,
			UnitPrice:    item.Price,
			LineTotal:    item.LinePrice,
			ProductTitle: item.ProductTitle,
			VariantTitle: item.VariantTitle,
			Image:        item.Image,
		})
	}
	if p.ItemCount != quantitySum {
		return response.CartSnapshot{}, fmt.Errorf(
			"item_count=%d does not match quantity sum=%d with error=%w",
			p.ItemCount,
			quantitySum,
			inErrors.ErrMalformedCart,
		)
	}
	return response.CartSnapshot{
		Lines:             lines,
		ItemCount:         p.ItemCount,
		Subtotal:          p.TotalPrice,
		CurrencyCode:      p.Currency,
		FormattedSubtotal: money.Format(p.TotalPrice),
	}, nil
}
