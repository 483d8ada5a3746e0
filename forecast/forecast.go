// Package forecast shapes a close-price series into the contract of a
// seasonal forecasting model and reshapes the model output for charting.
// The model itself is a collaborator behind the Model interface; Seasonal
// is the bundled default.
package forecast

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pricelens/analytics"
)

// ErrModelFit reports that the underlying model could not be fitted.
var ErrModelFit = errors.New("forecast model failed to fit")

// Observation is one (date, value) input pair.
type Observation struct {
	Date  time.Time
	Value float64
}

// Event marks a named one-off calendar date whose surrounding days
// (symmetric window) are treated as anomalous and excluded from fitting.
type Event struct {
	Name       string
	Date       time.Time
	WindowDays int
}

// Covers reports whether the date falls inside the event's window.
func (e Event) Covers(date time.Time) bool {
	from := e.Date.AddDate(0, 0, -e.WindowDays)
	to := e.Date.AddDate(0, 0, e.WindowDays)
	return !date.Before(from) && !date.After(to)
}

// Point is one predicted value with its confidence interval.
type Point struct {
	Date  time.Time
	Value float64
	Lower float64
	Upper float64
}

// Model is the external forecaster: fit on observations, then predict a
// horizon of daily points past the last observed date. Both calls block;
// callers wanting timeouts wrap the context.
type Model interface {
	Fit(ctx context.Context, obs []Observation, events []Event) error
	Predict(ctx context.Context, horizon int) ([]Point, error)
}

// Series extracts the (date, close) pairs for one asset from loaded rows.
func Series(rows []analytics.Row, assetID int) []Observation {
	asset := analytics.FilterAsset(rows, assetID)
	obs := make([]Observation, 0, len(asset))
	for _, r := range asset {
		obs = append(obs, Observation{Date: r.Date, Value: r.Close})
	}
	return obs
}

// Run fits the model on one asset's close series and predicts the given
// horizon. It returns the history alongside the predicted band so the
// chart can overlay both.
func Run(ctx context.Context, m Model, rows []analytics.Row, assetID, horizon int, events []Event) ([]Observation, []Point, error) {
	obs := Series(rows, assetID)
	if len(obs) == 0 {
		return nil, nil, analytics.ErrNoData
	}

	if err := m.Fit(ctx, obs, events); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrModelFit, err)
	}
	points, err := m.Predict(ctx, horizon)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrModelFit, err)
	}
	return obs, points, nil
}
