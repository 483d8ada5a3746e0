// Package charts renders the analytics outputs as PNG images. It only
// owns the data contract (labels in, series in, image bytes out); all
// drawing is delegated to go-charts.
package charts

import (
	"math"
	"time"

	"github.com/vicanso/go-charts/v2"
)

const (
	chartWidth  = 1200
	chartHeight = 600
)

// nullable maps NaN sentinel values to the chart null value so undefined
// points render as gaps instead of being dropped or zeroed.
func nullable(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			out[i] = charts.GetNullValue()
		} else {
			out[i] = v
		}
	}
	return out
}

func dateLabels(dates []time.Time) []string {
	labels := make([]string, len(dates))
	for i, d := range dates {
		labels[i] = d.Format("02-01-2006")
	}
	return labels
}

func renderLines(title string, xLabels []string, names []string, values [][]float64) ([]byte, error) {
	seriesList := charts.NewSeriesListDataFromValues(values, charts.ChartTypeLine)
	for i := range seriesList {
		seriesList[i].Name = names[i]
	}

	painter, err := charts.Render(charts.ChartOption{SeriesList: seriesList},
		charts.TitleTextOptionFunc(title),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        xLabels,
			BoundaryGap: charts.FalseFlag(),
			SplitNumber: 10,
		}),
		charts.LegendOptionFunc(charts.LegendOption{Data: names}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(chartWidth),
		charts.HeightOptionFunc(chartHeight),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}
