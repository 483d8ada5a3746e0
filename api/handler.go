package api

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pricelens/analytics"
	"pricelens/config"
	"pricelens/database"
	"pricelens/forecast"
)

type Handler struct {
	cfg    config.Config
	logger *zap.Logger
}

type QueryParams struct {
	AssetID   int    `form:"asset_id"`
	StartDate string `form:"start"`
	Window    int    `form:"window"`
	Horizon   int    `form:"horizon"`
	Leg       string `form:"leg"`
}

// resolve fills defaults from config and parses the start date.
func (h *Handler) resolve(c *gin.Context) (QueryParams, time.Time, bool) {
	var params QueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return params, time.Time{}, false
	}
	if params.AssetID == 0 {
		params.AssetID = h.cfg.AssetID
	}
	if params.Window == 0 {
		params.Window = h.cfg.ShortWindow
	}
	if params.Horizon == 0 {
		params.Horizon = h.cfg.ForecastHorizon
	}
	if params.Window < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "window must be positive"})
		return params, time.Time{}, false
	}
	if params.Horizon < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "horizon must be positive"})
		return params, time.Time{}, false
	}

	start := h.cfg.StartDate
	if params.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", params.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
			return params, time.Time{}, false
		}
		start = parsed
	}
	return params, start, true
}

func (h *Handler) loadRows(c *gin.Context, assetID int, start time.Time) ([]analytics.Row, bool) {
	prices, err := database.QueryAsset(c.Request.Context(), assetID)
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	rows, err := analytics.Load(prices, []int{assetID}, start)
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return rows, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, analytics.ErrNoData):
		status = http.StatusNotFound
	case errors.Is(err, forecast.ErrModelFit):
		status = http.StatusBadGateway
	}
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func (h *Handler) servePNG(c *gin.Context, img []byte, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", img)
}

// fptr converts the NaN sentinel to a JSON null.
func fptr(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func SetupRoutes(cfg config.Config, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	h := &Handler{cfg: cfg, logger: logger}

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/api/prices", h.GetPrices)
	r.GET("/api/returns/monthly", h.GetMonthlyReturns)
	r.GET("/api/returns/average", h.GetMonthlyAverages)
	r.GET("/api/realized", h.GetRealizedPrices)
	r.GET("/api/forecast", h.GetForecast)

	r.GET("/charts/realized.png", h.GetRealizedChart)
	r.GET("/charts/monthly.png", h.GetMonthlyBarChart)
	r.GET("/charts/heatmap.png", h.GetHeatmapChart)
	r.GET("/charts/forecast.png", h.GetForecastChart)

	return r
}
