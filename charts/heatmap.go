package charts

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/vicanso/go-charts/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"pricelens/analytics"
)

var (
	heatmapGreen = drawing.Color{R: 106, G: 168, B: 79, A: 255}
	heatmapRed   = drawing.Color{R: 204, G: 65, B: 37, A: 255}
)

// signColor picks the binary heatmap color: the non-negative side of the
// boundary is green, so a return of exactly 0 renders green.
func signColor(v float64) drawing.Color {
	if v < 0 {
		return heatmapRed
	}
	return heatmapGreen
}

// heatmapCellStyle colors a table cell from the underlying return value,
// not from its rendered text: tiny magnitudes print as "0.00%" either
// way, but the sign encoding must follow the value. Header, year-label
// and empty cells get no fill.
func heatmapCellStyle(years []int, cells map[int][12]float64, row, column int) *charts.Style {
	if row < 1 || row > len(years) || column < 1 || column > 12 {
		return nil
	}
	v := cells[years[row-1]][column-1]
	if math.IsNaN(v) {
		return nil
	}
	return &charts.Style{FillColor: signColor(v)}
}

// MonthlyReturnHeatmap renders one asset's monthly returns as a
// year-by-month grid. The color only encodes the sign: green for
// non-negative (0 included), red for negative. Cell text carries the
// magnitude.
func MonthlyReturnHeatmap(returns []analytics.MonthlyReturn, label string) ([]byte, error) {
	years, cells := analytics.ReturnMatrix(returns)
	if len(years) == 0 {
		return nil, fmt.Errorf("no monthly returns to render for %s", label)
	}

	header := make([]string, 13)
	header[0] = label
	for m := time.January; m <= time.December; m++ {
		header[int(m)] = m.String()[:3]
	}

	data := make([][]string, 0, len(years))
	for _, year := range years {
		row := make([]string, 13)
		row[0] = strconv.Itoa(year)
		for i, v := range cells[year] {
			if math.IsNaN(v) {
				row[i+1] = ""
			} else {
				row[i+1] = fmt.Sprintf("%.2f%%", v*100)
			}
		}
		data = append(data, row)
	}

	painter, err := charts.TableOptionRender(charts.TableChartOption{
		Header: header,
		Data:   data,
		Width:  chartWidth,
		CellStyle: func(tc charts.TableCell) *charts.Style {
			return heatmapCellStyle(years, cells, tc.Row, tc.Column)
		},
	})
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}
