package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

type point struct {
	X, Y float64
}

func fillRect(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Over)
}

func hLine(dst draw.Image, x0, x1, y int, c color.Color) {
	fillRect(dst, image.Rect(x0, y, x1, y+1), c)
}

func vLine(dst draw.Image, x, y0, y1 int, c color.Color) {
	fillRect(dst, image.Rect(x, y0, x+1, y1), c)
}

// fillPolygon rasterises a closed polygon with anti-aliasing.
func fillPolygon(dst draw.Image, pts []point, c color.Color) {
	if len(pts) < 3 {
		return
	}
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	z.MoveTo(float32(pts[0].X-float64(b.Min.X)), float32(pts[0].Y-float64(b.Min.Y)))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X-float64(b.Min.X)), float32(p.Y-float64(b.Min.Y)))
	}
	z.ClosePath()
	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}

// strokePolyline draws each segment as a quad of the given width.
func strokePolyline(dst draw.Image, pts []point, width float64, c color.Color) {
	if width <= 0 {
		return
	}
	half := width / 2
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		dx, dy := b.X-a.X, b.Y-a.Y
		length := math.Hypot(dx, dy)
		if length == 0 {
			continue
		}
		nx, ny := -dy/length*half, dx/length*half
		fillPolygon(dst, []point{
			{a.X + nx, a.Y + ny},
			{b.X + nx, b.Y + ny},
			{b.X - nx, b.Y - ny},
			{a.X - nx, a.Y - ny},
		}, c)
	}
	// Round joins keep thick lines closed at the vertices.
	if width > 2 && len(pts) > 2 {
		for _, p := range pts[1 : len(pts)-1] {
			fillCircle(dst, p, half, c)
		}
	}
}

func fillCircle(dst draw.Image, center point, radius float64, c color.Color) {
	if radius <= 0 {
		return
	}
	const segments = 16
	pts := make([]point, segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / segments
		pts[i] = point{center.X + radius*math.Cos(a), center.Y + radius*math.Sin(a)}
	}
	fillPolygon(dst, pts, c)
}

var labelFace font.Face = basicfont.Face7x13

func textWidth(s string) int {
	return font.MeasureString(labelFace, s).Ceil()
}

// drawText draws s with its baseline at (x, y).
func drawText(dst draw.Image, s string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: labelFace,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
