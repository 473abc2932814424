package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/calyptra/storefront/internal/log"
	"github.com/calyptra/storefront/internal/repository"
)

// catalogProduct is the JSON shape the storefront theme embeds in the
// page; the seeder accepts the same file so one catalog export serves
// both.
type catalogProduct struct {
	ID       string           `json:"id"`
	Handle   string           `json:"handle"`
	Title    string           `json:"title"`
	Options  []string         `json:"options"`
	Variants []catalogVariant `json:"variants"`
}

type catalogVariant struct {
	ID             string   `json:"id"`
	Options        []string `json:"options"`
	Price          int64    `json:"price"`
	CompareAtPrice *int64   `json:"compare_at_price"`
	Available      bool     `json:"available"`
	Image          *struct {
		URL string `json:"url"`
		Alt string `json:"alt"`
	} `json:"image"`
}

func Run(c context.Context, pool *pgxpool.Pool, path string) error {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "seed Run").
		Str("path", path).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "reading catalog file").Logger()
	logger.Info().Msg("reading catalog file")
	raw, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("failed reading catalog file with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("read catalog file")

	logger = logger.With().Str(log.KeyProcess, "decoding catalog file").Logger()
	logger.Info().Msg("decoding catalog file")
	products := []catalogProduct{}
	if err := json.Unmarshal(raw, &products); err != nil {
		err = fmt.Errorf("failed decoding catalog file with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msgf("decoded %d products", len(products))

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	logger.Info().Msg("initializing transaction")
	tx, err := pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	defer func() {
		err := tx.Rollback(c)
		if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Error().Err(err).Msg("failed rolling back transaction")
		}
	}()
	logger.Info().Msg("initialized transaction")

	queries := repository.New(tx)
	for _, p := range products {
		lg := logger.With().Str("handle", p.Handle).Logger()

		productId, err := parseOrNewId(p.ID)
		if err != nil {
			err = fmt.Errorf("failed parsing product id=%s with error=%w", p.ID, err)
			lg.Error().Err(err).Msg(err.Error())
			return err
		}

		lg.Info().Msg("upserting product")
		product, err := queries.UpsertProduct(c, repository.UpsertProductParams{
			ID:          productId,
			Handle:      p.Handle,
			Title:       p.Title,
			OptionNames: p.Options,
		})
		if err != nil {
			err = fmt.Errorf("failed upserting product handle=%s with error=%w", p.Handle, err)
			lg.Error().Err(err).Msg(err.Error())
			return err
		}
		lg.Info().Msg("upserted product")

		for i, v := range p.Variants {
			variantId, err := parseOrNewId(v.ID)
			if err != nil {
				err = fmt.Errorf("failed parsing variant id=%s with error=%w", v.ID, err)
				lg.Error().Err(err).Msg(err.Error())
				return err
			}

			arg := repository.UpsertVariantParams{
				ID:           variantId,
				ProductID:    product.ID,
				Position:     int32(i),
				OptionValues: v.Options,
				PriceCents:   v.Price,
				Available:    v.Available,
			}
			if v.CompareAtPrice != nil {
				arg.CompareAtCents = pgtype.Int8{Int64: *v.CompareAtPrice, Valid: true}
			}
			if v.Image != nil {
				arg.ImageURL = pgtype.Text{String: v.Image.URL, Valid: true}
				arg.ImageAlt = pgtype.Text{String: v.Image.Alt, Valid: true}
			}
			if err := queries.UpsertVariant(c, arg); err != nil {
				err = fmt.Errorf(
					"failed upserting variant for handle=%s with error=%w",
					p.Handle,
					err,
				)
				lg.Error().Err(err).Msg(err.Error())
				return err
			}
		}
		lg.Info().Msgf("upserted %d variants", len(p.Variants))
	}

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	logger.Info().Msg("committing transaction")
	if err := tx.Commit(c); err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("committed transaction")

	return nil
}

func parseOrNewId(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.New(), nil
	}
	return uuid.Parse(raw)
}
