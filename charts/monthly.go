package charts

import (
	"fmt"
	"math"
	"time"

	"github.com/vicanso/go-charts/v2"

	"pricelens/analytics"
)

// MonthlyAverageBar renders the average monthly return per calendar month
// as a bar chart, split into a gain series and a loss series so the sign
// is visible in the legend. A return of exactly 0 counts as a gain.
// Bar series do not support the null sentinel, so absent or undefined
// months and the opposite-sign slot render as zero-height bars.
func MonthlyAverageBar(averages []analytics.MonthlyAverage, label string) ([]byte, error) {
	gains := make([]float64, 12)
	losses := make([]float64, 12)
	for _, a := range averages {
		i := int(a.Month) - 1
		switch {
		case math.IsNaN(a.AvgReturn):
			// undefined months stay empty
		case a.AvgReturn >= 0:
			gains[i] = a.AvgReturn
		default:
			losses[i] = a.AvgReturn
		}
	}

	months := make([]string, 12)
	for m := time.January; m <= time.December; m++ {
		months[int(m)-1] = m.String()[:3]
	}

	names := []string{"Gain", "Loss"}
	seriesList := charts.NewSeriesListDataFromValues([][]float64{gains, losses}, charts.ChartTypeBar)
	for i := range seriesList {
		seriesList[i].Name = names[i]
	}

	painter, err := charts.Render(charts.ChartOption{SeriesList: seriesList},
		charts.TitleTextOptionFunc(fmt.Sprintf("Average monthly return: %s", label)),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: months}),
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
