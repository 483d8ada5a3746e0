package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pricelens/ingest"
)

var loadAssetID int

var loadCMD = &cobra.Command{
	Use:   "load [csv-file]",
	Short: "Load an OHLCV CSV file into the price store",
	Long: `Parse a daily OHLCV CSV file (header columns date/index, open, high,
low, close, volume, matched case-insensitively), attach the asset id and
replace that asset's stored history.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger := setup()
		defer logger.Sync()

		assetID := loadAssetID
		if assetID == 0 {
			assetID = cfg.AssetID
		}

		processor := ingest.NewProcessor(logger)
		rows, err := processor.LoadFile(context.Background(), args[0], assetID)
		if err != nil {
			logger.Fatal("failed to load file", zap.Error(err))
		}

		fmt.Printf("Loaded %d rows for asset %d\n", rows, assetID)
	},
}

func init() {
	loadCMD.Flags().IntVar(&loadAssetID, "asset-id", 0, "asset id to attach (defaults to config)")
}
