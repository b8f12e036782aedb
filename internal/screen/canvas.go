package screen

import (
	"image"
	"image/color"

	"tinygo.org/x/drivers"

	"github.com/five82/dontpanic/internal/bitmap"
)

// Watch display dimensions.
const (
	Width  = 144
	Height = 168
)

// Size is the watch display size.
var Size = image.Pt(Width, Height)

// Canvas adapts a framebuffer to the drivers.Displayer interface so
// display-driver code such as tinyfont can draw into it.
type Canvas struct {
	fb      *bitmap.Bitmap
	flushes int
}

var _ drivers.Displayer = (*Canvas)(nil)

// NewCanvas wraps fb.
func NewCanvas(fb *bitmap.Bitmap) *Canvas {
	return &Canvas{fb: fb}
}

// Bitmap returns the underlying framebuffer.
func (c *Canvas) Bitmap() *bitmap.Bitmap { return c.fb }

// Size implements drivers.Displayer.
func (c *Canvas) Size() (x, y int16) {
	s := c.fb.Size()
	return int16(s.X), int16(s.Y)
}

// SetPixel implements drivers.Displayer. Pixels are quantized to 8-bit color;
// writes outside the framebuffer are ignored.
func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	c.fb.SetColor8(int(x), int(y), bitmap.Color8FromRGBA(col.R, col.G, col.B, col.A))
}

// Display implements drivers.Displayer. The framebuffer is read directly by
// the renderer, so this only counts completed frames.
func (c *Canvas) Display() error {
	c.flushes++
	return nil
}

// Flushes returns how many times Display has been called.
func (c *Canvas) Flushes() int { return c.flushes }

// clipped drops pixels outside r.
type clipped struct {
	drivers.Displayer
	r image.Rectangle
}

func (c clipped) SetPixel(x, y int16, col color.RGBA) {
	if !image.Pt(int(x), int(y)).In(c.r) {
		return
	}
	c.Displayer.SetPixel(x, y, col)
}
