package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/calyptra/storefront/internal/common/constants"
	"github.com/calyptra/storefront/internal/log"
)

func Start() {
	logger := log.Get(constants.LogFilePath, os.Getenv("STOREFRONT_ENV")).
		With().
		Str(log.KeyAppName, constants.AppMainStorefront).
		Str(log.KeyTag, "main Start").
		Logger()

	logger.Info().Msg("adding listener for SIGINT and SIGTERM")
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	c = logger.WithContext(c)

	rootCmd := &cobra.Command{}
	commands := []*cobra.Command{
		{
			Use:   "storefront",
			Short: "Run storefront service",
			Run: func(cmd *cobra.Command, args []string) {
				runStorefrontService(cmd.Context())
			},
		},
		{
			Use:   "seed",
			Short: "Load a catalog file into the product database",
			Run: func(cmd *cobra.Command, args []string) {
				runCatalogSeeder(cmd.Context(), args)
			},
		},
	}
	rootCmd.AddCommand(commands...)
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}
