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
)

var reportCMD = &cobra.Command{
	Use:   "report",
	Short: "Render the analytics charts as PNG files",
	Long: `Load the configured asset's history, run the monthly-return and
realized-price analytics and write the resulting charts (realized price
cumulative/short/long, monthly average bars, return heatmap) into the
output directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger := setup()
		defer logger.Sync()

		prices, err := database.QueryAsset(context.Background(), cfg.AssetID)
		if err != nil {
			logger.Fatal("failed to query prices", zap.Error(err))
		}
		rows, err := analytics.Load(prices, []int{cfg.AssetID}, cfg.StartDate)
		if err != nil {
			logger.Fatal("failed to build dataset", zap.Error(err))
		}

		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			logger.Fatal("failed to create output directory", zap.Error(err))
		}

		points, err := analytics.RealizedPrices(rows, cfg.ShortWindow)
		if err != nil {
			logger.Fatal("failed to compute realized prices", zap.Error(err))
		}
		returns := analytics.MonthlyReturns(rows, cfg.AssetID)
		averages := analytics.MonthlyAverages(returns)

		outputs := []struct {
			name   string
			render func() ([]byte, error)
		}{
			{"realized_price.png", func() ([]byte, error) {
				return charts.RealizedPriceChart(points, cfg.AssetLabel, charts.LegCumulative)
			}},
			{"short_realized_price.png", func() ([]byte, error) {
				return charts.RealizedPriceChart(points, cfg.AssetLabel, charts.LegShort)
			}},
			{"long_realized_price.png", func() ([]byte, error) {
				return charts.RealizedPriceChart(points, cfg.AssetLabel, charts.LegLong)
			}},
			{"monthly_average.png", func() ([]byte, error) {
				return charts.MonthlyAverageBar(averages, cfg.AssetLabel)
			}},
			{"monthly_heatmap.png", func() ([]byte, error) {
				return charts.MonthlyReturnHeatmap(returns, cfg.AssetLabel)
			}},
		}

		for _, out := range outputs {
			img, err := out.render()
			if err != nil {
				logger.Fatal("failed to render chart", zap.String("chart", out.name), zap.Error(err))
			}
			path := filepath.Join(cfg.OutputDir, out.name)
			if err := os.WriteFile(path, img, 0o644); err != nil {
				logger.Fatal("failed to write chart", zap.String("path", path), zap.Error(err))
			}
			logger.Info("wrote chart", zap.String("path", path))
		}

		fmt.Printf("Wrote %d charts to %s\n", len(outputs), cfg.OutputDir)
	},
}
