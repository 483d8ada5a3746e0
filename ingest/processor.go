package ingest

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"pricelens/database"
	"pricelens/models"
)

type Processor struct {
	logger *zap.Logger
}

func NewProcessor(logger *zap.Logger) *Processor {
	return &Processor{logger: logger}
}

// LoadFile parses one OHLCV CSV file, attaches the asset id and replaces
// that asset's history in the store. Returns the number of rows loaded.
func (p *Processor) LoadFile(ctx context.Context, path string, assetID int) (int, error) {
	start := time.Now()

	candles, skipped, err := ReadCSV(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if skipped > 0 {
		p.logger.Warn("skipped malformed rows",
			zap.String("file", path), zap.Int("skipped", skipped))
	}

	prices := make([]models.Price, 0, len(candles))
	now := time.Now()
	for _, c := range candles {
		prices = append(prices, models.Price{
			Date:      c.Date,
			AssetID:   assetID,
			Open:      c.Open,
			High:      c.High,
			Low:       c.Low,
			Close:     c.Close,
			Volume:    c.Volume,
			CreatedAt: now,
		})
	}

	if err := database.ReplaceAll(ctx, assetID, prices); err != nil {
		return 0, fmt.Errorf("failed to store %s: %w", path, err)
	}

	p.logger.Info("loaded price history",
		zap.String("file", path),
		zap.Int("asset_id", assetID),
		zap.Int("rows", len(prices)),
		zap.Duration("took", time.Since(start)))

	return len(prices), nil
}
