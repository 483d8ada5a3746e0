// Package analytics derives monthly-return and realized-price series from
// the stored daily price rows. All functions are pure: they take an
// immutable snapshot and return a freshly computed structure, so rerunning
// any of them on the same input yields identical output.
package analytics

import (
	"errors"
	"math"
	"sort"
	"time"

	"pricelens/models"
)

// ErrNoData reports that the requested assets and date range matched no rows.
var ErrNoData = errors.New("no price rows for requested assets and range")

// Row is a stored price with calendar fields attached by Load.
type Row struct {
	Date      time.Time
	AssetID   int
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	Year      int
	Month     time.Month
	YearMonth string
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Load builds the working dataset: it drops rows with missing or
// non-finite fields, keeps rows with date >= start, attaches calendar
// fields and sorts by (asset, date). The sort is what lets the grouped
// first/last aggregation and the realized-price engine rely on date order.
// An empty assetIDs filter keeps every asset.
func Load(prices []models.Price, assetIDs []int, start time.Time) ([]Row, error) {
	wanted := make(map[int]bool, len(assetIDs))
	for _, id := range assetIDs {
		wanted[id] = true
	}

	rows := make([]Row, 0, len(prices))
	for _, p := range prices {
		if len(wanted) > 0 && !wanted[p.AssetID] {
			continue
		}
		if p.Date.IsZero() || p.Date.Before(start) {
			continue
		}
		if !finite(p.Open, p.High, p.Low, p.Close, p.Volume) {
			continue
		}
		rows = append(rows, Row{
			Date:      p.Date,
			AssetID:   p.AssetID,
			Open:      p.Open,
			High:      p.High,
			Low:       p.Low,
			Close:     p.Close,
			Volume:    p.Volume,
			Year:      p.Date.Year(),
			Month:     p.Date.Month(),
			YearMonth: p.Date.Format("2006-01"),
		})
	}

	if len(rows) == 0 {
		return nil, ErrNoData
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].AssetID != rows[j].AssetID {
			return rows[i].AssetID < rows[j].AssetID
		}
		return rows[i].Date.Before(rows[j].Date)
	})

	return rows, nil
}

// FilterAsset returns the subset of rows belonging to one asset,
// preserving order.
func FilterAsset(rows []Row, assetID int) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r.AssetID == assetID {
			out = append(out, r)
		}
	}
	return out
}
