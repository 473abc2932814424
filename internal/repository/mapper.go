package repository

import (
	productResponse "github.com/calyptra/storefront/product/pkg/response"
)

func (v Variant) Response() productResponse.Variant {
	variant := productResponse.Variant{
		ID:           v.ID,
		OptionValues: v.OptionValues,
		Price:        v.PriceCents,
		Available:    v.Available,
	}
	if v.CompareAtCents.Valid {
		compareAt := v.CompareAtCents.Int64
		variant.CompareAtPrice = &compareAt
	}
	if v.ImageURL.Valid {
		variant.Image = &productResponse.Image{
			URL: v.ImageURL.String,
			Alt: v.ImageAlt.String,
		}
	}
	return variant
}

func (p Product) Response(variants []Variant) productResponse.Product {
	vs := make([]productResponse.Variant, 0, len(variants))
	for _, v := range variants {
		vs = append(vs, v.Response())
	}
	return productResponse.Product{
		ID:          p.ID,
		Handle:      p.Handle,
		Title:       p.Title,
		OptionNames: p.OptionNames,
		Variants:    vs,
		CreatedAt:   p.CreatedAt.Time,
		UpdatedAt:   p.UpdatedAt.Time,
	}
}
