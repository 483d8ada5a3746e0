package models

import (
	"testing"
	"time"
)

func TestPriceModel(t *testing.T) {
	price := Price{
		Date:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		AssetID: 1,
		Open:    42100.0,
		High:    43250.5,
		Low:     41800.0,
		Close:   42980.25,
		Volume:  18234567.0,
	}

	if price.AssetID != 1 {
		t.Errorf("Expected asset id 1, got %d", price.AssetID)
	}

	if price.Close != 42980.25 {
		t.Errorf("Expected close 42980.25, got %f", price.Close)
	}

	if price.TableName() != "prices" {
		t.Errorf("Expected table name prices, got %s", price.TableName())
	}
}
