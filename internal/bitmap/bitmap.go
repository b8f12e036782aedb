// Package bitmap implements the watch's 8-bit framebuffer format. Each pixel
// is one byte laid out as 2 bits each of alpha, red, green and blue.
package bitmap

import (
	"image"
	"image/color"
)

// Color8 is a packed ARGB2222 color.
type Color8 uint8

// Named colors used by the watchface.
const (
	Clear  Color8 = 0x00
	Black  Color8 = 0xC0
	White  Color8 = 0xFF
	Blue   Color8 = 0xC3
	Yellow Color8 = 0xFC
	Red    Color8 = 0xF0
	Green  Color8 = 0xCC
)

// Color8FromRGBA packs 8-bit channels into a Color8.
func Color8FromRGBA(r, g, b, a uint8) Color8 {
	return Color8(a>>6<<6 | r>>6<<4 | g>>6<<2 | b>>6)
}

// A, R, G, B return the 2-bit channel values.
func (c Color8) A() uint8 { return uint8(c>>6) & 3 }
func (c Color8) R() uint8 { return uint8(c>>4) & 3 }
func (c Color8) G() uint8 { return uint8(c>>2) & 3 }
func (c Color8) B() uint8 { return uint8(c) & 3 }

// RGBA8 expands the color to non-premultiplied 8-bit channels.
func (c Color8) RGBA8() color.RGBA {
	return color.RGBA{R: c.R() * 85, G: c.G() * 85, B: c.B() * 85, A: c.A() * 85}
}

// RGBA implements color.Color with alpha-premultiplied channels.
func (c Color8) RGBA() (r, g, b, a uint32) {
	return color.NRGBA(c.RGBA8()).RGBA()
}

// Model converts arbitrary colors to Color8.
var Model = color.ModelFunc(toColor8)

func toColor8(c color.Color) color.Color {
	if c8, ok := c.(Color8); ok {
		return c8
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A < 0x40 {
		return Clear
	}
	return Color8FromRGBA(n.R, n.G, n.B, n.A)
}

// Format identifies the pixel layout of a Bitmap.
type Format int

// Format8Bit is the only layout the watchface uses.
const Format8Bit Format = iota

// Bitmap is an owned pixel buffer in Format8Bit.
type Bitmap struct {
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
}

// NewBlank allocates a transparent bitmap of the given size.
func NewBlank(size image.Point) *Bitmap {
	if size.X < 0 {
		size.X = 0
	}
	if size.Y < 0 {
		size.Y = 0
	}
	return &Bitmap{
		Pix:    make([]uint8, size.X*size.Y),
		Stride: size.X,
		Rect:   image.Rectangle{Max: size},
	}
}

// Format reports the pixel layout.
func (b *Bitmap) Format() Format { return Format8Bit }

// Size returns the bitmap dimensions.
func (b *Bitmap) Size() image.Point { return b.Rect.Size() }

// ColorModel implements image.Image.
func (b *Bitmap) ColorModel() color.Model { return Model }

// Bounds implements image.Image.
func (b *Bitmap) Bounds() image.Rectangle { return b.Rect }

// At implements image.Image.
func (b *Bitmap) At(x, y int) color.Color { return b.Color8At(x, y) }

// Set implements draw.Image.
func (b *Bitmap) Set(x, y int, c color.Color) {
	b.SetColor8(x, y, toColor8(c).(Color8))
}

// Color8At returns the packed pixel at (x, y), or Clear outside the bounds.
func (b *Bitmap) Color8At(x, y int) Color8 {
	if !(image.Point{X: x, Y: y}.In(b.Rect)) {
		return Clear
	}
	return Color8(b.Pix[b.offset(x, y)])
}

// SetColor8 writes a packed pixel; writes outside the bounds are ignored.
func (b *Bitmap) SetColor8(x, y int, c Color8) {
	if !(image.Point{X: x, Y: y}.In(b.Rect)) {
		return
	}
	b.Pix[b.offset(x, y)] = uint8(c)
}

// Fill paints every pixel with c.
func (b *Bitmap) Fill(c Color8) {
	for i := range b.Pix {
		b.Pix[i] = uint8(c)
	}
}

// FillRect paints the part of r inside the bitmap with c.
func (b *Bitmap) FillRect(r image.Rectangle, c Color8) {
	r = r.Intersect(b.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			b.Pix[b.offset(x, y)] = uint8(c)
		}
	}
}

func (b *Bitmap) offset(x, y int) int {
	return (y-b.Rect.Min.Y)*b.Stride + (x - b.Rect.Min.X)
}

// CompositeSet draws src onto dst with its top-left corner at origin,
// blending by source alpha. Fully transparent source pixels leave dst
// untouched.
func CompositeSet(dst, src *Bitmap, origin image.Point) {
	if dst == nil || src == nil {
		return
	}
	sr := src.Rect
	for y := sr.Min.Y; y < sr.Max.Y; y++ {
		for x := sr.Min.X; x < sr.Max.X; x++ {
			s := src.Color8At(x, y)
			a := s.A()
			if a == 0 {
				continue
			}
			dx, dy := origin.X+x-sr.Min.X, origin.Y+y-sr.Min.Y
			if a == 3 {
				dst.SetColor8(dx, dy, s)
				continue
			}
			dst.SetColor8(dx, dy, blend(dst.Color8At(dx, dy), s))
		}
	}
}

func blend(under, over Color8) Color8 {
	a := uint16(over.A())
	mix := func(u, o uint8) uint8 {
		return uint8((uint16(o)*a + uint16(u)*(3-a) + 1) / 3)
	}
	return Color8(3<<6 |
		mix(under.R(), over.R())<<4 |
		mix(under.G(), over.G())<<2 |
		mix(under.B(), over.B()))
}
