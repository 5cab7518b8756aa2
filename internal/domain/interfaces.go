package domain

import (
	"context"
	"image/draw"
)

// QuoteSource returns the price history of the tracked coin for a period.
type QuoteSource interface {
	PriceHistory(ctx context.Context, period Period) ([]PricePoint, error)
}

// Surface is the 2D drawing target a chart is bound to. The host view owns it;
// charts only borrow its drawing context.
type Surface interface {
	ID() string
	Context2D() (draw.Image, error)
	ReleaseContext()
}

// Chart is a live chart instance bound to a surface.
type Chart interface {
	ID() string
	Destroy()
	TooltipAt(x int) (Tooltip, bool)
}

// ChartFactory builds chart instances on a surface.
type ChartFactory interface {
	NewChart(surface Surface, cfg ChartConfig) (Chart, error)
}

// Tooltip is the index-mode hover readout for one data point.
type Tooltip struct {
	Index int     `json:"index"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Text  string  `json:"text"`
}
