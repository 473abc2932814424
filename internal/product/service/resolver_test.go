package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	inErrors "github.com/calyptra/storefront/internal/common/errors"
	"github.com/calyptra/storefront/product/pkg/response"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func shirtVariants() []response.Variant {
	return []response.Variant{
		{
			ID:           uuid.MustParse("3e8eff43-19ae-4468-bb4c-9f0ca10c4042"),
			OptionValues: []string{"S", "Red"},
			Price:        1000,
			Available:    true,
		},
		{
			ID:             uuid.MustParse("7d0f80b6-27c8-4d33-8b2f-45b843b80273"),
			OptionValues:   []string{"M", "Red"},
			Price:          1000,
			CompareAtPrice: int64Ptr(1500),
			Available:      true,
		},
		{
			ID:           uuid.MustParse("a2f1b9d4-5f15-4c66-9b93-0092a61e11de"),
			OptionValues: []string{"M", "Blue"},
			Price:        1200,
			Available:    false,
		},
	}
}

func TestResolve(t *testing.T) {
	optionNames := []string{"Size", "Color"}
	tests := []struct {
		name       string
		selection  []string
		expectedId string
		expectedEr error
	}{
		{
			name:       "given exact selection should return matching variant",
			selection:  []string{"S", "Red"},
			expectedId: "3e8eff43-19ae-4468-bb4c-9f0ca10c4042",
		},
		{
			name:       "given mixed case selection should return matching variant",
			selection:  []string{"m", "RED"},
			expectedId: "7d0f80b6-27c8-4d33-8b2f-45b843b80273",
		},
		{
			name:       "given padded selection should return matching variant",
			selection:  []string{" M ", "Blue "},
			expectedId: "a2f1b9d4-5f15-4c66-9b93-0092a61e11de",
		},
		{
			name:       "given swapped axis order should not match",
			selection:  []string{"Red", "S"},
			expectedEr: inErrors.ErrVariantNotFound,
		},
		{
			name:       "given selection shorter than option axes should not match",
			selection:  []string{"M"},
			expectedEr: inErrors.ErrVariantNotFound,
		},
		{
			name:       "given unknown values should not match",
			selection:  []string{"XL", "Green"},
			expectedEr: inErrors.ErrVariantNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			variant, err := Resolve(shirtVariants(), optionNames, tt.selection)
			if tt.expectedEr != nil {
				assert.ErrorIs(t, err, tt.expectedEr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedId, variant.ID.String())
		})
	}
}

func TestResolveDuplicateTuplesFirstMatchWins(t *testing.T) {
	variants := []response.Variant{
		{
			ID:           uuid.MustParse("11111111-1111-4111-8111-111111111111"),
			OptionValues: []string{"One Size"},
			Price:        500,
		},
		{
			ID:           uuid.MustParse("22222222-2222-4222-8222-222222222222"),
			OptionValues: []string{"One Size"},
			Price:        900,
		},
	}

	variant, err := Resolve(variants, []string{"Size"}, []string{"One Size"})

	assert.NoError(t, err)
	assert.Equal(t, "11111111-1111-4111-8111-111111111111", variant.ID.String())
}

func TestDerivePriceDisplay(t *testing.T) {
	discounted := shirtVariants()[1]
	plain := shirtVariants()[0]
	tests := []struct {
		name     string
		variant  response.Variant
		quantity int64
		expected response.PriceDisplay
	}{
		{
			name:     "given discounted variant and quantity should total and report savings",
			variant:  discounted,
			quantity: 3,
			expected: response.PriceDisplay{
				UnitPrice:           1000,
				TotalPrice:          3000,
				HasDiscount:         true,
				Savings:             500,
				FormattedUnitPrice:  "10.00",
				FormattedTotalPrice: "30.00",
			},
		},
		{
			name:     "given zero quantity should clamp to one",
			variant:  plain,
			quantity: 0,
			expected: response.PriceDisplay{
				UnitPrice:           1000,
				TotalPrice:          1000,
				FormattedUnitPrice:  "10.00",
				FormattedTotalPrice: "10.00",
			},
		},
		{
			name:     "given compare at price equal to price should not report discount",
			variant:  response.Variant{Price: 1500, CompareAtPrice: int64Ptr(1500)},
			quantity: 1,
			expected: response.PriceDisplay{
				UnitPrice:           1500,
				TotalPrice:          1500,
				FormattedUnitPrice:  "15.00",
				FormattedTotalPrice: "15.00",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DerivePriceDisplay(tt.variant, tt.quantity))
		})
	}
}
