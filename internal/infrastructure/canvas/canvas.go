package canvas

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"sync"

	"github.com/google/uuid"
)

var ErrEmptyCanvas = errors.New("canvas has no drawable area")

// Canvas is an in-memory raster drawing surface. It tracks how many drawing
// contexts are currently handed out so leaks are observable.
type Canvas struct {
	mu       sync.Mutex
	id       string
	img      *image.RGBA
	contexts int
}

func New(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Canvas{
		id:  uuid.NewString(),
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

func (c *Canvas) ID() string {
	return c.id
}

func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Bounds()
}

// Context2D hands out the pixel buffer. Every call must be paired with
// ReleaseContext.
func (c *Canvas) Context2D() (draw.Image, error) {
	if c.img.Bounds().Empty() {
		return nil, fmt.Errorf("canvas %s: %w", c.id, ErrEmptyCanvas)
	}
	c.mu.Lock()
	c.contexts++
	c.mu.Unlock()
	return c.img, nil
}

func (c *Canvas) ReleaseContext() {
	c.mu.Lock()
	if c.contexts > 0 {
		c.contexts--
	}
	c.mu.Unlock()
}

// ActiveContexts is the number of contexts not yet released.
func (c *Canvas) ActiveContexts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.contexts
}

func (c *Canvas) WritePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}

func (c *Canvas) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.WritePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
