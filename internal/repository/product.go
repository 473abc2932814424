package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Product struct {
	ID          uuid.UUID
	Handle      string
	Title       string
	OptionNames []string
	CreatedAt   pgtype.Timestamptz
	UpdatedAt   pgtype.Timestamptz
}

const findProductById = `
SELECT id, handle, title, option_names, created_at, updated_at
FROM products
WHERE id = $1
`

func (q *Queries) FindProductById(c context.Context, id uuid.UUID) (Product, error) {
	row := q.db.QueryRow(c, findProductById, id)
	var p Product
	err := row.Scan(
		&p.ID,
		&p.Handle,
		&p.Title,
		&p.OptionNames,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

const findProductByHandle = `
SELECT id, handle, title, option_names, created_at, updated_at
FROM products
WHERE handle = $1
`

func (q *Queries) FindProductByHandle(c context.Context, handle string) (Product, error) {
	row := q.db.QueryRow(c, findProductByHandle, handle)
	var p Product
	err := row.Scan(
		&p.ID,
		&p.Handle,
		&p.Title,
		&p.OptionNames,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

const upsertProduct = `
INSERT INTO products (id, handle, title, option_names)
VALUES ($1, $2, $3, $4)
ON CONFLICT (handle) DO UPDATE
SET title = EXCLUDED.title, option_names = EXCLUDED.option_names, updated_at = now()
RETURNING id, handle, title, option_names, created_at, updated_at
`

type UpsertProductParams struct {
	ID          uuid.UUID
	Handle      string
	Title       string
	OptionNames []string
}

func (q *Queries) UpsertProduct(c context.Context, arg UpsertProductParams) (Product, error) {
	row := q.db.QueryRow(c, upsertProduct, arg.ID, arg.Handle, arg.Title, arg.OptionNames)
	var p Product
	err := row.Scan(
		&p.ID,
		&p.Handle,
		&p.Title,
		&p.OptionNames,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}
