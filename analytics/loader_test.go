package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricelens/models"
)

func price(assetID int, date string, close float64) models.Price {
	d, _ := time.Parse("2006-01-02", date)
	return models.Price{
		Date:    d,
		AssetID: assetID,
		Open:    close,
		High:    close,
		Low:     close,
		Close:   close,
		Volume:  1,
	}
}

func TestLoadSortsAndDerivesCalendarFields(t *testing.T) {
	prices := []models.Price{
		price(2, "2020-03-01", 30),
		price(1, "2020-02-15", 20),
		price(1, "2020-01-10", 10),
	}

	rows, err := Load(prices, nil, time.Time{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// sorted by asset then date
	assert.Equal(t, 1, rows[0].AssetID)
	assert.Equal(t, "2020-01", rows[0].YearMonth)
	assert.Equal(t, 1, rows[1].AssetID)
	assert.Equal(t, 2, rows[2].AssetID)

	assert.Equal(t, 2020, rows[0].Year)
	assert.Equal(t, time.January, rows[0].Month)
}

func TestLoadStartDateCutoffInclusive(t *testing.T) {
	prices := []models.Price{
		price(1, "2014-12-31", 10),
		price(1, "2015-01-01", 20),
		price(1, "2015-01-02", 30),
	}
	start, _ := time.Parse("2006-01-02", "2015-01-01")

	rows, err := Load(prices, nil, start)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 20.0, rows[0].Close)
}

func TestLoadAssetFilter(t *testing.T) {
	prices := []models.Price{
		price(1, "2020-01-01", 10),
		price(2, "2020-01-01", 20),
	}

	rows, err := Load(prices, []int{2}, time.Time{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].AssetID)
}

func TestLoadDropsIncompleteRows(t *testing.T) {
	bad := price(1, "2020-01-02", 10)
	bad.Volume = math.NaN()
	missingDate := models.Price{AssetID: 1, Close: 10, Volume: 1}

	prices := []models.Price{price(1, "2020-01-01", 10), bad, missingDate}

	rows, err := Load(prices, nil, time.Time{})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestLoadNoQualifyingRows(t *testing.T) {
	prices := []models.Price{price(1, "2014-01-01", 10)}
	start, _ := time.Parse("2006-01-02", "2015-01-01")

	_, err := Load(prices, nil, start)
	require.ErrorIs(t, err, ErrNoData)

	_, err = Load(nil, nil, time.Time{})
	require.ErrorIs(t, err, ErrNoData)
}

func TestFilterAsset(t *testing.T) {
	rows := []Row{
		{AssetID: 1, Close: 10},
		{AssetID: 2, Close: 20},
		{AssetID: 1, Close: 30},
	}

	got := FilterAsset(rows, 1)
	require.Len(t, got, 2)
	assert.Equal(t, 10.0, got[0].Close)
	assert.Equal(t, 30.0, got[1].Close)
}
