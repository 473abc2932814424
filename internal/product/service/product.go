package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	inErrors "github.com/calyptra/storefront/internal/common/errors"
	"github.com/calyptra/storefront/internal/log"
	inOtel "github.com/calyptra/storefront/internal/otel"
	"github.com/calyptra/storefront/internal/repository"
	"github.com/calyptra/storefront/internal/product/cache"
	"github.com/calyptra/storefront/internal/product/otel"
	"github.com/calyptra/storefront/product/pkg/response"
)

type ProductService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	cache   *redis.Client
}

func NewProductService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
) ProductService {
	return ProductService{pool: pool, queries: queries, cache: cache}
}

func (svc ProductService) FindProductById(
	c context.Context,
	productID uuid.UUID,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProductById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProductById").
		Str(log.KeyProductID, productID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product in cache").Logger()
	logger.Trace().Msg("finding product in cache")
	cacheKey := cache.KeyProducts + productID.String()
	cached, err := svc.cache.Get(c, cacheKey).Result()
	if err == nil {
		product := response.Product{}
		if err := json.Unmarshal([]byte(cached), &product); err == nil {
			span.AddEvent("found product in cache")
			logger.Trace().Msg("found product in cache")
			return product, nil
		}
	}
	span.AddEvent("product is not in cache")
	logger.Trace().Msg("product is not in cache")

	logger = logger.With().Str(log.KeyProcess, "finding product in database").Logger()
	logger.Trace().Msg("finding product in database")
	productDb, err := svc.queries.FindProductById(c, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("productId=%s with error=%w", productID.String(), inErrors.ErrProductNotFound)
			inOtel.RecordError(err, span)
			logger.Info().Err(err).Msg(err.Error())
			return response.Product{}, err
		}
		err = fmt.Errorf("failed finding product with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Trace().Msg("found product in database")

	logger = logger.With().Str(log.KeyProcess, "finding variants in database").Logger()
	logger.Trace().Msg("finding variants in database")
	variantsDb, err := svc.queries.FindVariantsByProductId(c, productID)
	if err != nil {
		err = fmt.Errorf("failed finding variants with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Trace().Msgf("found %d variants in database", len(variantsDb))

	product := productDb.Response(variantsDb)

	logger = logger.With().Str(log.KeyProcess, "caching product").Logger()
	logger.Trace().Msg("caching product")
	encoded, err := json.Marshal(product)
	if err == nil {
		if err := svc.cache.Set(c, cacheKey, encoded, 5*time.Minute).Err(); err != nil {
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg("failed caching product")
		}
	}
	logger.Trace().Msg("cached product")

	return product, nil
}

// ResolveSelection resolves a selection against the product's variants
// and derives the price display for the requested quantity.
func (svc ProductService) ResolveSelection(
	c context.Context,
	productID uuid.UUID,
	selection []string,
	quantity int64,
) (response.ResolvedVariant, error) {
	c, span := otel.Tracer.Start(c, "ProductService ResolveSelection")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService ResolveSelection").
		Str(log.KeyProductID, productID.String()).
		Strs(log.KeySelection, selection).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	logger.Trace().Msg("finding product")
	c = logger.WithContext(c)
	product, err := svc.FindProductById(c, productID)
	if err != nil {
		err = fmt.Errorf("failed finding productId=%s with error=%w", productID.String(), err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.ResolvedVariant{}, err
	}
	logger.Trace().Msg("found product")

	logger = logger.With().Str(log.KeyProcess, "resolving variant").Logger()
	logger.Trace().Msg("resolving variant")
	variant, err := Resolve(product.Variants, product.OptionNames, selection)
	if err != nil {
		err = fmt.Errorf(
			"failed resolving selection for productId=%s with error=%w",
			productID.String(),
			err,
		)
		inOtel.RecordError(err, span)
		logger.Info().Err(err).Msg(err.Error())
		return response.ResolvedVariant{}, err
	}
	logger = logger.With().Str(log.KeyVariantID, variant.ID.String()).Logger()
	logger.Info().Msgf("resolved variantId=%s", variant.ID.String())

	return response.ResolvedVariant{
		Variant: variant,
		Price:   DerivePriceDisplay(variant, quantity),
	}, nil
}
