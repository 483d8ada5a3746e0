package analytics

import (
	"math"
	"sort"
	"time"
)

// MonthlyReturn is the percent change between the first and last close
// observed inside one calendar month. Return is NaN when the first close
// is zero; consumers must treat NaN as an undefined metric, not as zero.
type MonthlyReturn struct {
	AssetID    int
	Year       int
	Month      time.Month
	FirstClose float64
	LastClose  float64
	Return     float64
}

// MonthlyAverage is the mean of one calendar month's returns across years.
type MonthlyAverage struct {
	AssetID   int
	Month     time.Month
	AvgReturn float64
}

// MonthlyReturns groups one asset's rows by year-month and computes the
// return between the chronologically first and last close of each group.
// Rows must already be date-sorted per asset (Load guarantees this); a
// month with a single row yields a return of exactly 0.
func MonthlyReturns(rows []Row, assetID int) []MonthlyReturn {
	type bucket struct {
		year  int
		month time.Month
		first float64
		last  float64
	}

	var order []string
	buckets := make(map[string]*bucket)
	for _, r := range FilterAsset(rows, assetID) {
		b, ok := buckets[r.YearMonth]
		if !ok {
			b = &bucket{year: r.Year, month: r.Month, first: r.Close}
			buckets[r.YearMonth] = b
			order = append(order, r.YearMonth)
		}
		b.last = r.Close
	}

	sort.Strings(order)

	returns := make([]MonthlyReturn, 0, len(order))
	for _, ym := range order {
		b := buckets[ym]
		ret := ratio(b.last-b.first, b.first)
		returns = append(returns, MonthlyReturn{
			AssetID:    assetID,
			Year:       b.year,
			Month:      b.month,
			FirstClose: b.first,
			LastClose:  b.last,
			Return:     ret,
		})
	}
	return returns
}

// MonthlyAverages averages monthly returns per calendar month across
// years. NaN observations are excluded from the mean; a month whose
// observations are all NaN stays NaN.
func MonthlyAverages(returns []MonthlyReturn) []MonthlyAverage {
	type acc struct {
		sum float64
		n   int
	}

	accs := make(map[int]map[time.Month]*acc)
	for _, r := range returns {
		byMonth, ok := accs[r.AssetID]
		if !ok {
			byMonth = make(map[time.Month]*acc)
			accs[r.AssetID] = byMonth
		}
		a, ok := byMonth[r.Month]
		if !ok {
			a = &acc{}
			byMonth[r.Month] = a
		}
		// NaN observations stay out of the mean, but the bucket itself
		// is kept so an all-NaN month still appears in the output.
		if !math.IsNaN(r.Return) {
			a.sum += r.Return
			a.n++
		}
	}

	var assetIDs []int
	for id := range accs {
		assetIDs = append(assetIDs, id)
	}
	sort.Ints(assetIDs)

	var averages []MonthlyAverage
	for _, id := range assetIDs {
		for m := time.January; m <= time.December; m++ {
			a, ok := accs[id][m]
			if !ok {
				continue
			}
			avg := math.NaN()
			if a.n > 0 {
				avg = a.sum / float64(a.n)
			}
			averages = append(averages, MonthlyAverage{AssetID: id, Month: m, AvgReturn: avg})
		}
	}
	return averages
}

// ReturnMatrix pivots one asset's monthly returns into a year-by-month
// grid for the heatmap. Cells without an observation are NaN.
func ReturnMatrix(returns []MonthlyReturn) (years []int, cells map[int][12]float64) {
	cells = make(map[int][12]float64)
	for _, r := range returns {
		row, ok := cells[r.Year]
		if !ok {
			for i := range row {
				row[i] = math.NaN()
			}
			years = append(years, r.Year)
		}
		row[int(r.Month)-1] = r.Return
		cells[r.Year] = row
	}
	sort.Ints(years)
	return years, cells
}
