package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowOn(assetID int, year int, month time.Month, day int, close float64) Row {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Row{
		Date:      d,
		AssetID:   assetID,
		Close:     close,
		Volume:    1,
		Year:      year,
		Month:     month,
		YearMonth: d.Format("2006-01"),
	}
}

func TestMonthlyReturns(t *testing.T) {
	rows := []Row{
		rowOn(1, 2023, time.January, 2, 100),
		rowOn(1, 2023, time.January, 15, 90),
		rowOn(1, 2023, time.January, 31, 110),
		rowOn(1, 2023, time.February, 1, 110),
		rowOn(1, 2023, time.February, 28, 99),
	}

	returns := MonthlyReturns(rows, 1)
	require.Len(t, returns, 2)

	jan := returns[0]
	assert.Equal(t, 2023, jan.Year)
	assert.Equal(t, time.January, jan.Month)
	assert.Equal(t, 100.0, jan.FirstClose)
	assert.Equal(t, 110.0, jan.LastClose)
	assert.InDelta(t, 0.10, jan.Return, 1e-9)

	feb := returns[1]
	assert.InDelta(t, -0.10, feb.Return, 1e-9)
}

func TestMonthlyReturnsSingleRowMonth(t *testing.T) {
	rows := []Row{rowOn(1, 2023, time.March, 15, 250)}

	returns := MonthlyReturns(rows, 1)
	require.Len(t, returns, 1)
	assert.Zero(t, returns[0].Return)
}

func TestMonthlyReturnsZeroFirstClose(t *testing.T) {
	rows := []Row{
		rowOn(1, 2023, time.April, 1, 0),
		rowOn(1, 2023, time.April, 30, 50),
	}

	returns := MonthlyReturns(rows, 1)
	require.Len(t, returns, 1)
	// undefined, surfaced as NaN rather than raised or zeroed
	assert.True(t, math.IsNaN(returns[0].Return))
}

func TestMonthlyReturnsIgnoresOtherAssets(t *testing.T) {
	rows := []Row{
		rowOn(1, 2023, time.January, 2, 100),
		rowOn(2, 2023, time.January, 2, 500),
		rowOn(1, 2023, time.January, 31, 120),
	}

	returns := MonthlyReturns(rows, 1)
	require.Len(t, returns, 1)
	assert.InDelta(t, 0.20, returns[0].Return, 1e-9)
}

func TestMonthlyAverages(t *testing.T) {
	returns := []MonthlyReturn{
		{AssetID: 1, Year: 2021, Month: time.January, Return: 0.10},
		{AssetID: 1, Year: 2022, Month: time.January, Return: 0.30},
		{AssetID: 1, Year: 2021, Month: time.February, Return: -0.05},
	}

	averages := MonthlyAverages(returns)
	require.Len(t, averages, 2)

	assert.Equal(t, time.January, averages[0].Month)
	assert.InDelta(t, 0.20, averages[0].AvgReturn, 1e-9)
	assert.Equal(t, time.February, averages[1].Month)
	assert.InDelta(t, -0.05, averages[1].AvgReturn, 1e-9)
}

func TestMonthlyAveragesSkipsNaNObservations(t *testing.T) {
	returns := []MonthlyReturn{
		{AssetID: 1, Year: 2021, Month: time.May, Return: math.NaN()},
		{AssetID: 1, Year: 2022, Month: time.May, Return: 0.40},
		{AssetID: 1, Year: 2021, Month: time.June, Return: math.NaN()},
	}

	averages := MonthlyAverages(returns)
	require.Len(t, averages, 2)

	assert.InDelta(t, 0.40, averages[0].AvgReturn, 1e-9)
	// an all-NaN month stays undefined instead of disappearing
	assert.True(t, math.IsNaN(averages[1].AvgReturn))
}

func TestMonthlyAveragesIdempotent(t *testing.T) {
	returns := []MonthlyReturn{
		{AssetID: 1, Year: 2021, Month: time.January, Return: 0.10},
		{AssetID: 1, Year: 2022, Month: time.January, Return: 0.30},
		{AssetID: 2, Year: 2021, Month: time.March, Return: 0.07},
	}

	first := MonthlyAverages(returns)
	second := MonthlyAverages(returns)
	assert.Equal(t, first, second)
}

func TestReturnMatrix(t *testing.T) {
	returns := []MonthlyReturn{
		{AssetID: 1, Year: 2022, Month: time.December, Return: 0.12},
		{AssetID: 1, Year: 2021, Month: time.January, Return: -0.03},
	}

	years, cells := ReturnMatrix(returns)
	require.Equal(t, []int{2021, 2022}, years)

	assert.InDelta(t, -0.03, cells[2021][0], 1e-9)
	assert.InDelta(t, 0.12, cells[2022][11], 1e-9)
	assert.True(t, math.IsNaN(cells[2021][5]))
}
