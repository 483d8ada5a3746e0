package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pricelens/config"
	"pricelens/database"
)

var configPath string

var rootCMD = &cobra.Command{
	Use:   "pricelens",
	Short: "Daily price ingestion and analytics tool",
	Long: `A CLI application for ingesting daily OHLCV price history into
Postgres and deriving analytics from it: monthly returns, realized-price
decomposition, calendar heatmaps and a seasonal forecast. Charts are
written as PNG files or served over a REST API.`,
}

func Execute() {
	err := rootCMD.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCMD.PersistentFlags().StringVar(&configPath, "config", "", "path to yaml config file")
	rootCMD.AddCommand(loadCMD, reportCMD, forecastCMD, serverCMD)
}

// setup builds the pieces every subcommand needs: logger, config and a
// connected database.
func setup() (config.Config, *zap.Logger) {
	logger, _ := zap.NewProduction()

	cfg, err := config.Get(configPath)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}
	if err := database.InitDB(cfg.Database, logger); err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	return cfg, logger
}
