package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pricelens/analytics"
	"pricelens/charts"
	"pricelens/database"
	"pricelens/forecast"
)

var forecastHorizon int

var forecastCMD = &cobra.Command{
	Use:   "forecast",
	Short: "Fit the seasonal model and render the forecast chart",
	Long: `Fit the seasonal forecasting model on the configured asset's close
prices (excluding configured event windows), predict the requested
horizon and write forecast.png with the confidence band.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger := setup()
		defer logger.Sync()

		horizon := forecastHorizon
		if horizon == 0 {
			horizon = cfg.ForecastHorizon
		}

		prices, err := database.QueryAsset(context.Background(), cfg.AssetID)
		if err != nil {
			logger.Fatal("failed to query prices", zap.Error(err))
		}
		rows, err := analytics.Load(prices, []int{cfg.AssetID}, cfg.StartDate)
		if err != nil {
			logger.Fatal("failed to build dataset", zap.Error(err))
		}

		events := make([]forecast.Event, 0, len(cfg.Events))
		for _, e := range cfg.Events {
			events = append(events, forecast.Event{Name: e.Name, Date: e.Date, WindowDays: e.WindowDays})
		}

		history, points, err := forecast.Run(context.Background(), forecast.NewSeasonal(),
			rows, cfg.AssetID, horizon, events)
		if err != nil {
			logger.Fatal("failed to forecast", zap.Error(err))
		}

		img, err := charts.ForecastChart(history, points, cfg.AssetLabel)
		if err != nil {
			logger.Fatal("failed to render forecast chart", zap.Error(err))
		}
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			logger.Fatal("failed to create output directory", zap.Error(err))
		}
		path := filepath.Join(cfg.OutputDir, "forecast.png")
		if err := os.WriteFile(path, img, 0o644); err != nil {
			logger.Fatal("failed to write forecast chart", zap.Error(err))
		}

		last := points[len(points)-1]
		fmt.Printf("Forecast for %s: %d days, final estimate %.2f (%.2f .. %.2f)\n",
			cfg.AssetLabel, horizon, last.Value, last.Lower, last.Upper)
		fmt.Printf("Chart written to %s\n", path)
	},
}

func init() {
	forecastCMD.Flags().IntVar(&forecastHorizon, "horizon", 0, "days to predict past the last observation (defaults to config)")
}
