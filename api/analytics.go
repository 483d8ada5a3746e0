package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pricelens/analytics"
	"pricelens/charts"
	"pricelens/forecast"
)

type priceResponse struct {
	Date    string  `json:"date"`
	AssetID int     `json:"asset_id"`
	Open    float64 `json:"open"`
	High    float64 `json:"high"`
	Low     float64 `json:"low"`
	Close   float64 `json:"close"`
	Volume  float64 `json:"volume"`
}

type monthlyReturnResponse struct {
	AssetID    int      `json:"asset_id"`
	Year       int      `json:"year"`
	Month      int      `json:"month"`
	FirstClose float64  `json:"first_close"`
	LastClose  float64  `json:"last_close"`
	Return     *float64 `json:"monthly_return"`
}

type monthlyAverageResponse struct {
	AssetID   int      `json:"asset_id"`
	Month     int      `json:"month"`
	AvgReturn *float64 `json:"avg_return"`
}

type realizedPointResponse struct {
	Date               string   `json:"date"`
	Close              float64  `json:"close"`
	CumVolume          float64  `json:"cum_volume"`
	CumValue           float64  `json:"cum_value"`
	RealizedPrice      *float64 `json:"realized_price"`
	ShortVolume        *float64 `json:"short_volume"`
	ShortValue         *float64 `json:"short_value"`
	ShortRealizedPrice *float64 `json:"short_realized_price"`
	LongVolume         *float64 `json:"long_volume"`
	LongValue          *float64 `json:"long_value"`
	LongRealizedPrice  *float64 `json:"long_realized_price"`
}

type forecastPointResponse struct {
	Date  string  `json:"date"`
	Value float64 `json:"predicted_value"`
	Lower float64 `json:"lower_bound"`
	Upper float64 `json:"upper_bound"`
}

const dateLayout = "2006-01-02"

func (h *Handler) GetPrices(c *gin.Context) {
	params, start, ok := h.resolve(c)
	if !ok {
		return
	}
	rows, ok := h.loadRows(c, params.AssetID, start)
	if !ok {
		return
	}

	out := make([]priceResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, priceResponse{
			Date:    r.Date.Format(dateLayout),
			AssetID: r.AssetID,
			Open:    r.Open,
			High:    r.High,
			Low:     r.Low,
			Close:   r.Close,
			Volume:  r.Volume,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetMonthlyReturns(c *gin.Context) {
	params, start, ok := h.resolve(c)
	if !ok {
		return
	}
	rows, ok := h.loadRows(c, params.AssetID, start)
	if !ok {
		return
	}

	returns := analytics.MonthlyReturns(rows, params.AssetID)
	out := make([]monthlyReturnResponse, 0, len(returns))
	for _, r := range returns {
		out = append(out, monthlyReturnResponse{
			AssetID:    r.AssetID,
			Year:       r.Year,
			Month:      int(r.Month),
			FirstClose: r.FirstClose,
			LastClose:  r.LastClose,
			Return:     fptr(r.Return),
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetMonthlyAverages(c *gin.Context) {
	params, start, ok := h.resolve(c)
	if !ok {
		return
	}
	rows, ok := h.loadRows(c, params.AssetID, start)
	if !ok {
		return
	}

	averages := analytics.MonthlyAverages(analytics.MonthlyReturns(rows, params.AssetID))
	out := make([]monthlyAverageResponse, 0, len(averages))
	for _, a := range averages {
		out = append(out, monthlyAverageResponse{
			AssetID:   a.AssetID,
			Month:     int(a.Month),
			AvgReturn: fptr(a.AvgReturn),
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetRealizedPrices(c *gin.Context) {
	params, start, ok := h.resolve(c)
	if !ok {
		return
	}
	rows, ok := h.loadRows(c, params.AssetID, start)
	if !ok {
		return
	}

	points, err := analytics.RealizedPrices(rows, params.Window)
	if err != nil {
		h.fail(c, err)
		return
	}

	out := make([]realizedPointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, realizedPointResponse{
			Date:               p.Date.Format(dateLayout),
			Close:              p.Close,
			CumVolume:          p.CumVolume,
			CumValue:           p.CumValue,
			RealizedPrice:      fptr(p.RealizedPrice),
			ShortVolume:        fptr(p.ShortVolume),
			ShortValue:         fptr(p.ShortValue),
			ShortRealizedPrice: fptr(p.ShortRealizedPrice),
			LongVolume:         fptr(p.LongVolume),
			LongValue:          fptr(p.LongValue),
			LongRealizedPrice:  fptr(p.LongRealizedPrice),
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetForecast(c *gin.Context) {
	params, start, ok := h.resolve(c)
	if !ok {
		return
	}
	rows, ok := h.loadRows(c, params.AssetID, start)
	if !ok {
		return
	}

	_, points, err := forecast.Run(c.Request.Context(), forecast.NewSeasonal(),
		rows, params.AssetID, params.Horizon, h.events())
	if err != nil {
		h.fail(c, err)
		return
	}

	out := make([]forecastPointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, forecastPointResponse{
			Date:  p.Date.Format(dateLayout),
			Value: p.Value,
			Lower: p.Lower,
			Upper: p.Upper,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) events() []forecast.Event {
	events := make([]forecast.Event, 0, len(h.cfg.Events))
	for _, e := range h.cfg.Events {
		events = append(events, forecast.Event{
			Name:       e.Name,
			Date:       e.Date,
			WindowDays: e.WindowDays,
		})
	}
	return events
}

func (h *Handler) GetRealizedChart(c *gin.Context) {
	params, start, ok := h.resolve(c)
	if !ok {
		return
	}
	leg, err := charts.ParseLeg(params.Leg)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rows, ok := h.loadRows(c, params.AssetID, start)
	if !ok {
		return
	}

	points, err := analytics.RealizedPrices(rows, params.Window)
	if err != nil {
		h.fail(c, err)
		return
	}
	img, err := charts.RealizedPriceChart(points, h.label(params.AssetID), leg)
	h.servePNG(c, img, err)
}

func (h *Handler) GetMonthlyBarChart(c *gin.Context) {
	params, start, ok := h.resolve(c)
	if !ok {
		return
	}
	rows, ok := h.loadRows(c, params.AssetID, start)
	if !ok {
		return
	}

	averages := analytics.MonthlyAverages(analytics.MonthlyReturns(rows, params.AssetID))
	img, err := charts.MonthlyAverageBar(averages, h.label(params.AssetID))
	h.servePNG(c, img, err)
}

func (h *Handler) GetHeatmapChart(c *gin.Context) {
	params, start, ok := h.resolve(c)
	if !ok {
		return
	}
	rows, ok := h.loadRows(c, params.AssetID, start)
	if !ok {
		return
	}

	returns := analytics.MonthlyReturns(rows, params.AssetID)
	img, err := charts.MonthlyReturnHeatmap(returns, h.label(params.AssetID))
	h.servePNG(c, img, err)
}

func (h *Handler) GetForecastChart(c *gin.Context) {
	params, start, ok := h.resolve(c)
	if !ok {
		return
	}
	rows, ok := h.loadRows(c, params.AssetID, start)
	if !ok {
		return
	}

	history, points, err := forecast.Run(c.Request.Context(), forecast.NewSeasonal(),
		rows, params.AssetID, params.Horizon, h.events())
	if err != nil {
		h.fail(c, err)
		return
	}
	img, err := charts.ForecastChart(history, points, h.label(params.AssetID))
	h.servePNG(c, img, err)
}

func (h *Handler) label(assetID int) string {
	if assetID == h.cfg.AssetID {
		return h.cfg.AssetLabel
	}
	return "asset " + strconv.Itoa(assetID)
}
