package models

import (
	"time"
)

// Price represents one daily OHLCV row for an asset
type Price struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Date      time.Time `gorm:"index:idx_asset_date;uniqueIndex:uidx_asset_date" json:"date"`
	AssetID   int       `gorm:"index:idx_asset_date;uniqueIndex:uidx_asset_date" json:"asset_id"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName keeps the table name the original loader scripts created.
func (Price) TableName() string {
	return "prices"
}
