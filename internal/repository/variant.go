package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Variant struct {
	ID             uuid.UUID
	ProductID      uuid.UUID
	Position       int32
	OptionValues   []string
	PriceCents     int64
	CompareAtCents pgtype.Int8
	Available      bool
	ImageURL       pgtype.Text
	ImageAlt       pgtype.Text
}

const findVariantsByProductId = `
SELECT id, product_id, position, option_values, price_cents, compare_at_cents, available, image_url, image_alt
FROM variants
WHERE product_id = $1
ORDER BY position
`

func (q *Queries) FindVariantsByProductId(
	c context.Context,
	productID uuid.UUID,
) ([]Variant, error) {
	rows, err := q.db.Query(c, findVariantsByProductId, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	variants := []Variant{}
	for rows.Next() {
		var v Variant
		err := rows.Scan(
			&v.ID,
			&v.ProductID,
			&v.Position,
			&v.OptionValues,
			&v.PriceCents,
			&v.CompareAtCents,
			&v.Available,
			&v.ImageURL,
			&v.ImageAlt,
		)
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}

const upsertVariant = `
INSERT INTO variants (id, product_id, position, option_values, price_cents, compare_at_cents, available, image_url, image_alt)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (id) DO UPDATE
SET position = EXCLUDED.position,
    option_values = EXCLUDED.option_values,
    price_cents = EXCLUDED.price_cents,
    compare_at_cents = EXCLUDED.compare_at_cents,
    available = EXCLUDED.available,
    image_url = EXCLUDED.image_url,
    image_alt = EXCLUDED.image_alt
`

type UpsertVariantParams struct {
	ID             uuid.UUID
	ProductID      uuid.UUID
	Position       int32
	OptionValues   []string
	PriceCents     int64
	CompareAtCents pgtype.Int8
	Available      bool
	ImageURL       pgtype.Text
	ImageAlt       pgtype.Text
}

func (q *Queries) UpsertVariant(c context.Context, arg UpsertVariantParams) error {
	_, err := q.db.Exec(c, upsertVariant,
		arg.ID,
		arg.ProductID,
		arg.Position,
		arg.OptionValues,
		arg.PriceCents,
		arg.CompareAtCents,
		arg.Available,
		arg.ImageURL,
		arg.ImageAlt,
	)
	return err
}
