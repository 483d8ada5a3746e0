package analytics

import (
	"fmt"
	"math"
	"time"
)

// RealizedPoint extends one price row with the volume-weighted average
// price over three windows: the full history so far (cumulative), a
// trailing window of fixed length (short) and everything before that
// window (long). Undefined values are NaN, never zero: a zero-volume
// denominator or a not-yet-filled window must not fault the computation
// of neighbouring rows.
type RealizedPoint struct {
	Date  time.Time
	Close float64

	CumVolume     float64
	CumValue      float64
	RealizedPrice float64

	ShortVolume        float64
	ShortValue         float64
	ShortRealizedPrice float64

	LongVolume        float64
	LongValue         float64
	LongRealizedPrice float64
}

func ratio(num, den float64) float64 {
	if den == 0 || math.IsNaN(den) {
		return math.NaN()
	}
	return num / den
}

// RealizedPrices computes the realized-price series for one asset's rows,
// which must be strictly date-ascending (Load produces that order; mixed
// assets or unsorted input are rejected rather than silently mis-summed).
// The trailing window is maintained as a fixed-size ring buffer, keeping
// the whole pass linear in the number of rows.
//
// Long values are obtained by subtracting the short sums from the
// cumulative sums, so long + short equals the cumulative totals exactly.
func RealizedPrices(rows []Row, window int) ([]RealizedPoint, error) {
	if window < 1 {
		return nil, fmt.Errorf("window must be positive, got %d", window)
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].AssetID != rows[0].AssetID {
			return nil, fmt.Errorf("rows span multiple assets: %d and %d", rows[0].AssetID, rows[i].AssetID)
		}
		if !rows[i-1].Date.Before(rows[i].Date) {
			return nil, fmt.Errorf("rows not strictly date-ascending at index %d", i)
		}
	}

	type contribution struct {
		volume float64
		value  float64
	}
	ring := make([]contribution, window)

	var cumVolume, cumValue float64
	var shortVolume, shortValue float64

	points := make([]RealizedPoint, 0, len(rows))
	for i, r := range rows {
		value := r.Close * r.Volume

		cumVolume += r.Volume
		cumValue += value

		if i >= window {
			evicted := ring[i%window]
			shortVolume -= evicted.volume
			shortValue -= evicted.value
		}
		shortVolume += r.Volume
		shortValue += value
		ring[i%window] = contribution{volume: r.Volume, value: value}

		p := RealizedPoint{
			Date:          r.Date,
			Close:         r.Close,
			CumVolume:     cumVolume,
			CumValue:      cumValue,
			RealizedPrice: ratio(cumValue, cumVolume),
		}

		if i >= window-1 {
			p.ShortVolume = shortVolume
			p.ShortValue = shortValue
			p.ShortRealizedPrice = ratio(shortValue, shortVolume)
			p.LongVolume = cumVolume - shortVolume
			p.LongValue = cumValue - shortValue
			p.LongRealizedPrice = ratio(p.LongValue, p.LongVolume)
		} else {
			p.ShortVolume = math.NaN()
			p.ShortValue = math.NaN()
			p.ShortRealizedPrice = math.NaN()
			p.LongVolume = math.NaN()
			p.LongValue = math.NaN()
			p.LongRealizedPrice = math.NaN()
		}

		points = append(points, p)
	}

	return points, nil
}
