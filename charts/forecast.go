package charts

import (
	"fmt"
	"time"

	"github.com/vicanso/go-charts/v2"

	"pricelens/forecast"
)

// ForecastChart overlays the observed close series with the predicted
// values and their confidence bounds on a shared date axis.
func ForecastChart(history []forecast.Observation, points []forecast.Point, label string) ([]byte, error) {
	if len(history) == 0 || len(points) == 0 {
		return nil, fmt.Errorf("nothing to render for %s", label)
	}

	total := len(history) + len(points)
	dates := make([]time.Time, 0, total)
	actual := make([]float64, 0, total)
	predicted := make([]float64, 0, total)
	lower := make([]float64, 0, total)
	upper := make([]float64, 0, total)

	null := charts.GetNullValue()
	for _, o := range history {
		dates = append(dates, o.Date)
		actual = append(actual, o.Value)
		predicted = append(predicted, null)
		lower = append(lower, null)
		upper = append(upper, null)
	}
	for _, p := range points {
		dates = append(dates, p.Date)
		actual = append(actual, null)
		predicted = append(predicted, p.Value)
		lower = append(lower, p.Lower)
		upper = append(upper, p.Upper)
	}

	title := fmt.Sprintf("Price forecast for %s", label)
	names := []string{"Real data", "Forecast", "Lower bound", "Upper bound"}
	values := [][]float64{nullable(actual), predicted, lower, upper}
	return renderLines(title, dateLabels(dates), names, values)
}
