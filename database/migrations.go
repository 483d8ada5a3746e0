package database

import (
	"fmt"

	"gorm.io/gorm"
)

// OptimizeIndexes creates the indexes the analytics queries rely on
func OptimizeIndexes(db *gorm.DB) error {
	// Composite index: asset first, then date ascending, matching the
	// per-asset chronological scans done by the loader.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_prices_asset_date_optimized
		ON prices (asset_id, date)
	`).Error; err != nil {
		return fmt.Errorf("failed to create prices index: %w", err)
	}

	// Partial index for volume-weighted queries.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_prices_asset_volume
		ON prices (asset_id, volume DESC)
		WHERE volume > 0
	`).Error; err != nil {
		return fmt.Errorf("failed to create prices volume index: %w", err)
	}

	return nil
}
