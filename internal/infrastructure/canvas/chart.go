package canvas

import (
	"fmt"
	"image"
	"image/draw"
	"math"
	"sync"

	"github.com/google/uuid"
	"github.com/vitos/coin_wallet/internal/domain"
)

const (
	marginTop    = 12
	marginRight  = 12
	marginBottom = 22
	marginLeft   = 8
	yTickCount   = 5
	labelGap     = 6
)

// Renderer draws line charts onto raster surfaces.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// NewChart validates cfg, acquires the surface's drawing context and draws.
func (r *Renderer) NewChart(surface domain.Surface, cfg domain.ChartConfig) (domain.Chart, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dst, err := surface.Context2D()
	if err != nil {
		return nil, fmt.Errorf("acquire drawing context: %w", err)
	}

	c := &LineChart{
		id:      uuid.NewString(),
		surface: surface,
		cfg:     cfg,
		dst:     dst,
	}
	c.layout()
	c.draw()
	return c, nil
}

// LineChart is a drawn chart bound to one surface until Destroy.
type LineChart struct {
	mu        sync.Mutex
	id        string
	surface   domain.Surface
	cfg       domain.ChartConfig
	dst       draw.Image
	destroyed bool

	plot       image.Rectangle
	minY, maxY float64
	xs         []float64
}

func (c *LineChart) ID() string {
	return c.id
}

// Destroy releases the drawing context. Later calls do nothing.
func (c *LineChart) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.dst = nil
	c.surface.ReleaseContext()
}

func (c *LineChart) Destroyed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.destroyed
}

// TooltipAt returns the point whose index is nearest to pixel column x.
// The y position is irrelevant (index mode, no intersection required).
func (c *LineChart) TooltipAt(x int) (domain.Tooltip, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.destroyed || !c.cfg.Tooltip.Enabled || len(c.xs) == 0 {
		return domain.Tooltip{}, false
	}
	if x < c.plot.Min.X-marginLeft || x >= c.plot.Max.X+marginRight {
		return domain.Tooltip{}, false
	}

	best := 0
	bestDist := math.Inf(1)
	for i, px := range c.xs {
		if d := math.Abs(px - float64(x)); d < bestDist {
			best, bestDist = i, d
		}
	}
	v := c.cfg.Dataset.Data[best]
	return domain.Tooltip{
		Index: best,
		Label: c.cfg.Scales.X.Labels[best],
		Value: v,
		Text:  domain.FormatTooltip(v),
	}, true
}

func (c *LineChart) layout() {
	data := c.cfg.Dataset.Data
	minY, maxY := data[0], data[0]
	for _, v := range data {
		minY = math.Min(minY, v)
		maxY = math.Max(maxY, v)
	}
	if c.cfg.Scales.Y.BeginAtZero && minY > 0 {
		minY = 0
	}
	if minY == maxY {
		minY--
		maxY++
	} else {
		pad := (maxY - minY) * 0.05
		maxY += pad
		if !(c.cfg.Scales.Y.BeginAtZero && minY == 0) {
			minY -= pad
		}
	}
	c.minY, c.maxY = minY, maxY

	widest := 0
	for _, v := range c.yTicks() {
		widest = max(widest, textWidth(c.tickLabel(v)))
	}

	b := c.dst.Bounds()
	c.plot = image.Rect(
		b.Min.X+marginLeft+widest+labelGap,
		b.Min.Y+marginTop,
		b.Max.X-marginRight,
		b.Max.Y-marginBottom,
	)
	if c.plot.Dx() < 1 || c.plot.Dy() < 1 {
		c.plot = b
	}

	c.xs = make([]float64, len(data))
	for i := range data {
		c.xs[i] = c.xAt(i)
	}
}

func (c *LineChart) xAt(i int) float64 {
	n := len(c.cfg.Dataset.Data)
	if n == 1 {
		return float64(c.plot.Min.X) + float64(c.plot.Dx())/2
	}
	return float64(c.plot.Min.X) + float64(i)*float64(c.plot.Dx()-1)/float64(n-1)
}

func (c *LineChart) yAt(v float64) float64 {
	frac := (v - c.minY) / (c.maxY - c.minY)
	return float64(c.plot.Max.Y-1) - frac*float64(c.plot.Dy()-1)
}

func (c *LineChart) yTicks() []float64 {
	ticks := make([]float64, yTickCount)
	step := (c.maxY - c.minY) / float64(yTickCount-1)
	for i := range ticks {
		ticks[i] = c.minY + float64(i)*step
	}
	return ticks
}

func (c *LineChart) tickLabel(v float64) string {
	if f := c.cfg.Scales.Y.TickFormat; f != nil {
		return f(v)
	}
	return domain.FormatTick(v)
}

func (c *LineChart) draw() {
	cfg := c.cfg
	draw.Draw(c.dst, c.dst.Bounds(), image.NewUniform(cfg.Background), image.Point{}, draw.Src)

	c.drawGrid()

	pts := make([]point, len(cfg.Dataset.Data))
	for i, v := range cfg.Dataset.Data {
		pts[i] = point{c.xs[i], c.yAt(v)}
	}

	if cfg.Dataset.Fill && len(pts) > 1 {
		base := float64(c.plot.Max.Y - 1)
		area := append([]point{{pts[0].X, base}}, pts...)
		area = append(area, point{pts[len(pts)-1].X, base})
		fillPolygon(c.dst, area, cfg.Dataset.BackgroundColor)
	}

	if len(pts) == 1 {
		fillCircle(c.dst, pts[0], math.Max(cfg.Dataset.BorderWidth, 3), cfg.Dataset.BorderColor)
	} else {
		strokePolyline(c.dst, pts, cfg.Dataset.BorderWidth, cfg.Dataset.BorderColor)
	}

	if cfg.Dataset.PointRadius > 0 {
		for _, p := range pts {
			fillCircle(c.dst, p, cfg.Dataset.PointRadius, cfg.Dataset.BorderColor)
		}
	}

	c.drawTicks()
}

func (c *LineChart) drawGrid() {
	x, y := c.cfg.Scales.X, c.cfg.Scales.Y
	if y.Grid.Display {
		for _, v := range c.yTicks() {
			hLine(c.dst, c.plot.Min.X, c.plot.Max.X, int(math.Round(c.yAt(v))), y.Grid.Color)
		}
	}
	if x.Grid.Display {
		for _, px := range c.xs {
			vLine(c.dst, int(math.Round(px)), c.plot.Min.Y, c.plot.Max.Y, x.Grid.Color)
		}
	}
}

func (c *LineChart) drawTicks() {
	ascent := labelFace.Metrics().Ascent.Ceil()

	for _, v := range c.yTicks() {
		s := c.tickLabel(v)
		x := c.plot.Min.X - labelGap - textWidth(s)
		y := int(math.Round(c.yAt(v))) + ascent/2
		drawText(c.dst, s, x, y, c.cfg.Scales.Y.TickColor)
	}

	labels := c.cfg.Scales.X.Labels
	widest := 0
	for _, l := range labels {
		widest = max(widest, textWidth(l))
	}
	stride := 1
	if widest > 0 && len(labels) > 1 {
		slot := float64(c.plot.Dx()) / float64(len(labels)-1)
		stride = int(math.Ceil(float64(widest+labelGap) / math.Max(slot, 1)))
		stride = max(stride, 1)
	}
	y := c.plot.Max.Y + ascent + 4
	for i := 0; i < len(labels); i += stride {
		x := int(math.Round(c.xs[i])) - textWidth(labels[i])/2
		drawText(c.dst, labels[i], x, y, c.cfg.Scales.X.TickColor)
	}
}

var _ domain.ChartFactory = (*Renderer)(nil)
var _ domain.Chart = (*LineChart)(nil)
var _ domain.Surface = (*Canvas)(nil)

