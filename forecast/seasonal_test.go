package forecast

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricelens/analytics"
)

func linearSeries(start time.Time, days int, base, slope float64) []Observation {
	obs := make([]Observation, 0, days)
	for i := 0; i < days; i++ {
		obs = append(obs, Observation{
			Date:  start.AddDate(0, 0, i),
			Value: base + slope*float64(i),
		})
	}
	return obs
}

func TestSeasonalRecoversLinearTrend(t *testing.T) {
	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	obs := linearSeries(start, 400, 1000, 2.5)

	m := NewSeasonal()
	require.NoError(t, m.Fit(context.Background(), obs, nil))

	points, err := m.Predict(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, points, 10)

	// a pure linear series extrapolates linearly with a tight band
	for i, p := range points {
		want := 1000 + 2.5*float64(400+i)
		assert.InDelta(t, want, p.Value, 1.0, "horizon %d", i+1)
		assert.LessOrEqual(t, p.Lower, p.Value)
		assert.GreaterOrEqual(t, p.Upper, p.Value)
	}
}

func TestSeasonalHorizonDates(t *testing.T) {
	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	obs := linearSeries(start, 100, 50, 1)

	m := NewSeasonal()
	require.NoError(t, m.Fit(context.Background(), obs, nil))

	points, err := m.Predict(context.Background(), 3)
	require.NoError(t, err)

	last := obs[len(obs)-1].Date
	assert.Equal(t, last.AddDate(0, 0, 1), points[0].Date)
	assert.Equal(t, last.AddDate(0, 0, 3), points[2].Date)
}

func TestSeasonalEventWindowExclusion(t *testing.T) {
	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	obs := linearSeries(start, 200, 100, 1)

	// corrupt a stretch of days, then exclude it via an event window
	spikeDay := 100
	for i := spikeDay - 10; i <= spikeDay+10; i++ {
		obs[i].Value = 1e6
	}
	event := Event{
		Name:       "halving",
		Date:       start.AddDate(0, 0, spikeDay),
		WindowDays: 10,
	}

	clean := NewSeasonal()
	require.NoError(t, clean.Fit(context.Background(), linearSeries(start, 200, 100, 1), nil))
	masked := NewSeasonal()
	require.NoError(t, masked.Fit(context.Background(), obs, []Event{event}))
	polluted := NewSeasonal()
	require.NoError(t, polluted.Fit(context.Background(), obs, nil))

	cp, err := clean.Predict(context.Background(), 1)
	require.NoError(t, err)
	mp, err := masked.Predict(context.Background(), 1)
	require.NoError(t, err)
	pp, err := polluted.Predict(context.Background(), 1)
	require.NoError(t, err)

	// masking the event must bring the forecast far closer to the clean fit
	maskedErr := math.Abs(mp[0].Value - cp[0].Value)
	pollutedErr := math.Abs(pp[0].Value - cp[0].Value)
	assert.Less(t, maskedErr, pollutedErr)
}

func TestSeasonalTooFewObservations(t *testing.T) {
	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	obs := linearSeries(start, 10, 100, 1)

	m := NewSeasonal()
	err := m.Fit(context.Background(), obs, nil)
	assert.Error(t, err)
}

func TestSeasonalPredictBeforeFit(t *testing.T) {
	m := NewSeasonal()
	_, err := m.Predict(context.Background(), 10)
	assert.Error(t, err)
}

func TestEventCovers(t *testing.T) {
	e := Event{
		Name:       "halving",
		Date:       time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC),
		WindowDays: 60,
	}

	assert.True(t, e.Covers(time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC)))
	assert.True(t, e.Covers(time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)))
	assert.True(t, e.Covers(time.Date(2024, 6, 19, 0, 0, 0, 0, time.UTC)))
	assert.False(t, e.Covers(time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)))
	assert.False(t, e.Covers(time.Date(2024, 2, 19, 0, 0, 0, 0, time.UTC)))
}

func TestRunWrapsModelFailure(t *testing.T) {
	rows := []analytics.Row{
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), AssetID: 1, Close: 100},
	}

	// a single observation cannot fit the default model
	_, _, err := Run(context.Background(), NewSeasonal(), rows, 1, 365, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrModelFit))
}

func TestRunNoRowsForAsset(t *testing.T) {
	rows := []analytics.Row{
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), AssetID: 2, Close: 100},
	}

	_, _, err := Run(context.Background(), NewSeasonal(), rows, 1, 365, nil)
	require.ErrorIs(t, err, analytics.ErrNoData)
}

func TestSeries(t *testing.T) {
	rows := []analytics.Row{
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), AssetID: 1, Close: 100},
		{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), AssetID: 2, Close: 1},
		{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), AssetID: 1, Close: 110},
	}

	obs := Series(rows, 1)
	require.Len(t, obs, 2)
	assert.Equal(t, 100.0, obs[0].Value)
	assert.Equal(t, 110.0, obs[1].Value)
}
