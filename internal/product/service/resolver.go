package service

import (
	"strings"

	inErrors "github.com/calyptra/storefront/internal/common/errors"
	"github.com/calyptra/storefront/internal/common/money"
	"github.com/calyptra/storefront/product/pkg/response"
)

// Resolve maps a selection of option values to the single matching
// variant. The comparison is order-sensitive per option axis,
// case-insensitive and whitespace-trimmed. A selection with fewer
// entries than the product's option axes never matches. When the
// catalog violates the unique-option-tuples invariant the first match
// in catalog order wins; the tie is not silently repaired.
func Resolve(
	variants []response.Variant,
	optionNames []string,
	selection []string,
) (response.Variant, error) {
	if len(selection) < len(optionNames) {
		return response.Variant{}, inErrors.ErrVariantNotFound
	}
	for _, variant := range variants {
		if matchesSelection(variant.OptionValues, selection) {
			return variant, nil
		}
	}
	return response.Variant{}, inErrors.ErrVariantNotFound
}

func matchesSelection(optionValues []string, selection []string) bool {
	if len(optionValues) != len(selection) {
		return false
	}
	for i, value := range optionValues {
		if !strings.EqualFold(strings.TrimSpace(value), strings.TrimSpace(selection[i])) {
			return false
		}
	}
	return true
}

// DerivePriceDisplay computes the display values for a variant at a
// given quantity. Quantities below 1 are clamped to 1; the product
// selector never sends zero, unlike the cart where zero means removal.
func DerivePriceDisplay(variant response.Variant, quantity int64) response.PriceDisplay {
	if quantity < 1 {
		quantity = 1
	}

	display := response.PriceDisplay{
		UnitPrice:  variant.Price,
		TotalPrice: variant.Price * quantity,
	}
	if variant.CompareAtPrice != nil && *variant.CompareAtPrice > variant.Price {
		display.HasDiscount = true
		display.Savings = *variant.CompareAtPrice - variant.Price
	}
	display.FormattedUnitPrice = money.Format(display.UnitPrice)
	display.FormattedTotalPrice = money.Format(display.TotalPrice)
	return display
}
