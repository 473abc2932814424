package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/calyptra/storefront/internal/common/constants"
	"github.com/calyptra/storefront/internal/config"
	"github.com/calyptra/storefront/internal/infra"
	"github.com/calyptra/storefront/internal/log"
	"github.com/calyptra/storefront/internal/seed"
)

func runCatalogSeeder(c context.Context, args []string) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, constants.AppCatalogSeeder).
		Str(log.KeyTag, "main runCatalogSeeder").
		Logger()

	path := constants.DefaultCatalogPath
	if len(args) > 0 {
		path = args[0]
	}

	logger = logger.With().Str(log.KeyProcess, "init config").Logger()
	logger.Info().Msg("initializing config")
	c = logger.WithContext(c)
	cfg := config.InitConfig(c, constants.AppMainStorefront)
	logger.Info().Msg("initialized config")

	logger = logger.With().Str(log.KeyProcess, "initializing database").Logger()
	logger.Info().Msg("initializing database")
	c = logger.WithContext(c)
	db := infra.NewDatabaseClient(c, cfg.Database)
	defer db.Close()
	logger.Info().Msg("initialized database")

	logger = logger.With().Str(log.KeyProcess, "seeding catalog").Logger()
	logger.Info().Msg("seeding catalog")
	c = logger.WithContext(c)
	if err := seed.Run(c, db, path); err != nil {
		err = fmt.Errorf("failed seeding catalog with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("seeded catalog")
}
