package domain

import (
	"fmt"
	"image/color"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type ChartType string

const ChartTypeLine ChartType = "line"

type ScaleType string

const (
	ScaleCategory ScaleType = "category"
	ScaleLinear   ScaleType = "linear"
)

type InteractionMode string

const (
	InteractionIndex   InteractionMode = "index"
	InteractionNearest InteractionMode = "nearest"
)

// DatasetOptions describes the single plotted series.
type DatasetOptions struct {
	Label            string
	Data             []float64
	BorderColor      color.NRGBA
	BackgroundColor  color.NRGBA
	BorderWidth      float64
	Fill             bool
	Tension          float64
	PointRadius      float64
	PointHoverRadius float64
}

type InteractionOptions struct {
	Mode      InteractionMode
	Intersect bool
}

type LegendOptions struct {
	Display bool
}

type TooltipOptions struct {
	Enabled         bool
	BackgroundColor color.NRGBA
	TitleColor      color.NRGBA
	BodyColor       color.NRGBA
}

type GridOptions struct {
	Display bool
	Color   color.NRGBA
}

// AxisOptions configures one axis. TickFormat is only used by value axes.
type AxisOptions struct {
	Type        ScaleType
	Labels      []string
	BeginAtZero bool
	Grid        GridOptions
	TickColor   color.NRGBA
	TickFormat  func(float64) string
}

type ScaleOptions struct {
	X AxisOptions
	Y AxisOptions
}

// ChartConfig is everything a ChartFactory needs to draw a chart.
type ChartConfig struct {
	Type        ChartType
	Background  color.NRGBA
	Dataset     DatasetOptions
	Interaction InteractionOptions
	Legend      LegendOptions
	Tooltip     TooltipOptions
	Scales      ScaleOptions
}

// NewLineChartConfig returns the price-trend chart used by the trade view.
func NewLineChartConfig(ds Dataset) ChartConfig {
	grid := GridOptions{Display: true, Color: color.NRGBA{R: 255, G: 255, B: 255, A: 26}}
	ticks := color.NRGBA{R: 255, G: 255, B: 255, A: 179}

	return ChartConfig{
		Type:       ChartTypeLine,
		Background: color.NRGBA{R: 25, G: 25, B: 25, A: 255},
		Dataset: DatasetOptions{
			Label:            "BTC/USD",
			Data:             ds.Prices,
			BorderColor:      color.NRGBA{R: 0, G: 150, B: 255, A: 255},
			BackgroundColor:  color.NRGBA{R: 0, G: 150, B: 255, A: 26},
			BorderWidth:      3,
			Fill:             true,
			Tension:          0,
			PointRadius:      0,
			PointHoverRadius: 6,
		},
		Interaction: InteractionOptions{Mode: InteractionIndex, Intersect: false},
		Legend:      LegendOptions{Display: false},
		Tooltip: TooltipOptions{
			Enabled:         true,
			BackgroundColor: color.NRGBA{A: 179},
			TitleColor:      color.NRGBA{R: 255, G: 255, B: 255, A: 255},
			BodyColor:       color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		},
		Scales: ScaleOptions{
			X: AxisOptions{Type: ScaleCategory, Labels: ds.Labels, Grid: grid, TickColor: ticks},
			Y: AxisOptions{Type: ScaleLinear, Grid: grid, TickColor: ticks, TickFormat: FormatTick},
		},
	}
}

// Validate checks the config before any drawing context is acquired.
func (c ChartConfig) Validate() error {
	if c.Type != ChartTypeLine {
		return fmt.Errorf("%w: unsupported chart type %q", ErrInvalidChartConfig, c.Type)
	}
	if c.Scales.X.Type != ScaleCategory {
		return fmt.Errorf("%w: x axis must be %q, got %q", ErrInvalidChartConfig, ScaleCategory, c.Scales.X.Type)
	}
	if c.Scales.Y.Type != ScaleLinear {
		return fmt.Errorf("%w: y axis must be %q, got %q", ErrInvalidChartConfig, ScaleLinear, c.Scales.Y.Type)
	}
	if len(c.Dataset.Data) == 0 {
		return fmt.Errorf("%w: dataset %q has no points", ErrInvalidChartConfig, c.Dataset.Label)
	}
	if len(c.Scales.X.Labels) != len(c.Dataset.Data) {
		return fmt.Errorf("%w: %d labels for %d points", ErrInvalidChartConfig, len(c.Scales.X.Labels), len(c.Dataset.Data))
	}
	switch c.Interaction.Mode {
	case InteractionIndex, InteractionNearest:
	default:
		return fmt.Errorf("%w: unknown interaction mode %q", ErrInvalidChartConfig, c.Interaction.Mode)
	}
	if c.Dataset.BorderWidth < 0 {
		return fmt.Errorf("%w: negative border width", ErrInvalidChartConfig)
	}
	return nil
}

var thousand = decimal.NewFromInt(1000)

// FormatTick renders a value-axis tick: "$86k" from 1000 upwards, "$950" below.
func FormatTick(v float64) string {
	d := decimal.NewFromFloat(v)
	if d.GreaterThanOrEqual(thousand) {
		return "$" + d.Div(thousand).Round(0).String() + "k"
	}
	return "$" + d.String()
}

var tooltipPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatTooltip renders a price with en-US grouping and no fraction digits.
func FormatTooltip(v float64) string {
	return tooltipPrinter.Sprintf("$%d", decimal.NewFromFloat(v).Round(0).IntPart())
}
