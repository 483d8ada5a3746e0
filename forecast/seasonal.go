package forecast

import (
	"context"
	"fmt"
	"math"
	"time"
)

const (
	minObservations = 60
	yearDays        = 366
	smoothRadius    = 5
	zScore95        = 1.96
)

// Seasonal is the default forecaster: a least-squares linear trend plus
// day-of-week and day-of-year components estimated from detrended
// residuals, with a 95% band from the residual standard deviation.
// Observations covered by an event window are excluded from fitting.
// Deterministic: the same input always produces the same forecast.
type Seasonal struct {
	intercept float64
	slope     float64
	weekly    [7]float64
	yearly    [yearDays]float64
	sigma     float64

	origin   time.Time
	lastDate time.Time
	fitted   bool
}

func NewSeasonal() *Seasonal {
	return &Seasonal{}
}

func dayIndex(origin, date time.Time) float64 {
	return date.Sub(origin).Hours() / 24
}

func (s *Seasonal) Fit(_ context.Context, obs []Observation, events []Event) error {
	kept := make([]Observation, 0, len(obs))
	for _, o := range obs {
		anomalous := false
		for _, e := range events {
			if e.Covers(o.Date) {
				anomalous = true
				break
			}
		}
		if !anomalous && !math.IsNaN(o.Value) {
			kept = append(kept, o)
		}
	}
	if len(kept) < minObservations {
		return fmt.Errorf("need at least %d usable observations, got %d", minObservations, len(kept))
	}

	s.origin = kept[0].Date
	s.lastDate = obs[len(obs)-1].Date

	// least-squares trend over day offsets
	var sumX, sumY, sumXX, sumXY float64
	for _, o := range kept {
		x := dayIndex(s.origin, o.Date)
		sumX += x
		sumY += o.Value
		sumXX += x * x
		sumXY += x * o.Value
	}
	n := float64(len(kept))
	det := n*sumXX - sumX*sumX
	if det == 0 {
		return fmt.Errorf("degenerate time axis, all observations on one day")
	}
	s.slope = (n*sumXY - sumX*sumY) / det
	s.intercept = (sumY - s.slope*sumX) / n

	residuals := make([]float64, len(kept))
	for i, o := range kept {
		residuals[i] = o.Value - (s.intercept + s.slope*dayIndex(s.origin, o.Date))
	}

	// weekly component: mean residual per weekday
	var weeklySum [7]float64
	var weeklyN [7]int
	for i, o := range kept {
		wd := int(o.Date.Weekday())
		weeklySum[wd] += residuals[i]
		weeklyN[wd]++
	}
	for wd := range s.weekly {
		if weeklyN[wd] > 0 {
			s.weekly[wd] = weeklySum[wd] / float64(weeklyN[wd])
		}
	}

	// yearly component: mean of the weekly-adjusted residual per day of
	// year, smoothed circularly to cover sparse days
	var yearlySum [yearDays]float64
	var yearlyN [yearDays]int
	for i, o := range kept {
		r := residuals[i] - s.weekly[int(o.Date.Weekday())]
		yd := o.Date.YearDay() - 1
		yearlySum[yd] += r
		yearlyN[yd]++
	}
	var raw [yearDays]float64
	for yd := range raw {
		if yearlyN[yd] > 0 {
			raw[yd] = yearlySum[yd] / float64(yearlyN[yd])
		}
	}
	for yd := range s.yearly {
		var sum float64
		var cnt int
		for k := -smoothRadius; k <= smoothRadius; k++ {
			j := ((yd+k)%yearDays + yearDays) % yearDays
			if yearlyN[j] > 0 {
				sum += raw[j]
				cnt++
			}
		}
		if cnt > 0 {
			s.yearly[yd] = sum / float64(cnt)
		}
	}

	// residual spread after both seasonal components
	var sq float64
	for i, o := range kept {
		r := residuals[i] - s.weekly[int(o.Date.Weekday())] - s.yearly[o.Date.YearDay()-1]
		sq += r * r
	}
	s.sigma = math.Sqrt(sq / (n - 1))

	s.fitted = true
	return nil
}

func (s *Seasonal) Predict(_ context.Context, horizon int) ([]Point, error) {
	if !s.fitted {
		return nil, fmt.Errorf("model not fitted")
	}
	if horizon < 1 {
		return nil, fmt.Errorf("horizon must be positive, got %d", horizon)
	}

	band := zScore95 * s.sigma
	points := make([]Point, 0, horizon)
	for h := 1; h <= horizon; h++ {
		date := s.lastDate.AddDate(0, 0, h)
		value := s.intercept + s.slope*dayIndex(s.origin, date) +
			s.weekly[int(date.Weekday())] + s.yearly[date.YearDay()-1]
		points = append(points, Point{
			Date:  date,
			Value: value,
			Lower: value - band,
			Upper: value + band,
		})
	}
	return points, nil
}
