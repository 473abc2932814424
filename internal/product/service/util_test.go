package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	testRedis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/calyptra/storefront/internal/repository"
)

func setup(
	t *testing.T,
	c context.Context,
) (*repository.Queries, ProductService, func()) {
	pgContainer, err := postgres.Run(
		c,
		"postgres:16.6-alpine3.21",
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.WithDatabase("postgres"),
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			filepath.Join("..", "..", "..", "migrations", "20250812093011_create_table_products.up.sql"),
			filepath.Join("..", "..", "..", "migrations", "20250812093544_create_table_variants.up.sql"),
		),
	)
	if err != nil {
		t.Fatalf("failed running postgres container with error: %s", err)
	}

	pgConnStr, err := pgContainer.ConnectionString(c)
	if err != nil {
		t.Fatalf("failed getting postgres connection string with error: %s", err)
	}

	pool, err := pgxpool.New(c, pgConnStr)
	if err != nil {
		t.Fatalf("failed creating postgres pool with error: %s", err)
	}
	if err = pool.Ping(c); err != nil {
		t.Fatalf("failed ping postgres pool with error: %s", err)
	}

	redisContainer, err := testRedis.Run(c, "redis:7.4.2-alpine3.21")
	if err != nil {
		t.Fatalf("failed running redis container with error: %s", err)
	}

	redisConnStr, err := redisContainer.ConnectionString(c)
	if err != nil {
		t.Fatalf("failed getting redis connection string with error: %s", err)
	}

	redisOpt, err := redis.ParseURL(redisConnStr)
	if err != nil {
		t.Fatalf("failed parsing redis connection string with error: %s", err)
	}

	redisClient := redis.NewClient(redisOpt)
	if err = redisClient.Ping(c).Err(); err != nil {
		t.Fatalf("failed ping redis client with error: %s", err)
	}

	queries := repository.New(pool)
	teardown := func() {
		redisClient.Close()
		pool.Close()
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
		if err := testcontainers.TerminateContainer(redisContainer); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}
	return queries, NewProductService(pool, queries, redisClient), teardown
}

func seedShirt(t *testing.T, c context.Context, queries *repository.Queries) repository.Product {
	product, err := queries.UpsertProduct(c, repository.UpsertProductParams{
		ID:          uuid.New(),
		Handle:      "alpine-trail-shirt",
		Title:       "Alpine Trail Shirt",
		OptionNames: []string{"Size", "Color"},
	})
	if err != nil {
		t.Fatalf("failed seeding product with error: %s", err)
	}

	variants := []repository.UpsertVariantParams{
		{
			ID:           uuid.New(),
			ProductID:    product.ID,
			Position:     0,
			OptionValues: []string{"S", "Red"},
			PriceCents:   1000,
			Available:    true,
		},
		{
			ID:             uuid.New(),
			ProductID:      product.ID,
			Position:       1,
			OptionValues:   []string{"M", "Red"},
			PriceCents:     1000,
			CompareAtCents: pgtype.Int8{Int64: 1500, Valid: true},
			Available:      true,
			ImageURL:       pgtype.Text{String: "https://cdn.example.com/alpine-m-red.jpg", Valid: true},
			ImageAlt:       pgtype.Text{String: "Alpine Trail Shirt, medium, red", Valid: true},
		},
	}
	for _, variant := range variants {
		if err := queries.UpsertVariant(c, variant); err != nil {
			t.Fatalf("failed seeding variant with error: %s", err)
		}
	}
	return product
}
