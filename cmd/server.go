package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pricelens/api"
)

var serverCMD = &cobra.Command{
	Use:   "server",
	Short: "Start the API server",
	Long:  `Start the HTTP API server exposing the analytics as JSON and the charts as PNG.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger := setup()
		defer logger.Sync()

		r := api.SetupRoutes(cfg, logger)

		logger.Info("starting server", zap.String("addr", cfg.ListenAddr))
		if err := r.Run(cfg.ListenAddr); err != nil {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	},
}
