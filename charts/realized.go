package charts

import (
	"fmt"
	"time"

	"pricelens/analytics"
)

// Leg selects which realized-price decomposition a chart shows.
type Leg int

const (
	LegCumulative Leg = iota
	LegShort
	LegLong
)

func (l Leg) String() string {
	switch l {
	case LegShort:
		return "Short-Realized price"
	case LegLong:
		return "Long-Realized price"
	default:
		return "Realized price"
	}
}

// ParseLeg maps a query/flag value to a Leg.
func ParseLeg(s string) (Leg, error) {
	switch s {
	case "", "cumulative", "total":
		return LegCumulative, nil
	case "short":
		return LegShort, nil
	case "long":
		return LegLong, nil
	default:
		return LegCumulative, fmt.Errorf("unknown realized-price leg %q", s)
	}
}

// RealizedPriceChart plots the chosen realized-price leg against the
// close price. Rows where the leg is undefined show as gaps.
func RealizedPriceChart(points []analytics.RealizedPoint, label string, leg Leg) ([]byte, error) {
	dates := make([]time.Time, len(points))
	closes := make([]float64, len(points))
	realized := make([]float64, len(points))
	for i, p := range points {
		dates[i] = p.Date
		closes[i] = p.Close
		switch leg {
		case LegShort:
			realized[i] = p.ShortRealizedPrice
		case LegLong:
			realized[i] = p.LongRealizedPrice
		default:
			realized[i] = p.RealizedPrice
		}
	}

	title := fmt.Sprintf("%s vs Close price for %s", leg, label)
	names := []string{leg.String(), "Close price"}
	values := [][]float64{nullable(realized), nullable(closes)}
	return renderLines(title, dateLabels(dates), names, values)
}
