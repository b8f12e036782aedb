package screen

import (
	"image"
	"image/color"
	"strings"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freesans"

	"github.com/five82/dontpanic/internal/bitmap"
	"github.com/five82/dontpanic/internal/textbuf"
)

// Font pairs a tinyfont face with the distance from the top of a text frame
// to the baseline.
type Font struct {
	Name   string
	Face   *tinyfont.Font
	Ascent int16
}

// Available fonts.
var (
	FontBold  = Font{Name: "bold", Face: &freesans.Bold9pt7b, Ascent: 13}
	FontSmall = Font{Name: "small", Face: &tinyfont.TomThumb, Ascent: 6}
)

// FontByName returns the named font, defaulting to FontBold.
func FontByName(name string) Font {
	if strings.EqualFold(strings.TrimSpace(name), FontSmall.Name) {
		return FontSmall
	}
	return FontBold
}

// Layer is anything the window draws, back to front.
type Layer interface {
	Draw(c *Canvas)
}

// Align is the horizontal alignment of a text layer.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TextLayer draws the current contents of a text buffer inside Frame. The
// buffer is read at draw time, so writes to it show on the next render.
type TextLayer struct {
	Frame  image.Rectangle
	Color  bitmap.Color8
	Align  Align
	Font   Font
	Source *textbuf.Buffer
	Hidden bool
}

// NewTextLayer returns a left-aligned black layer over src.
func NewTextLayer(frame image.Rectangle, src *textbuf.Buffer) *TextLayer {
	return &TextLayer{Frame: frame, Color: bitmap.Black, Font: FontBold, Source: src}
}

// Text returns the text the layer draws.
func (l *TextLayer) Text() string {
	return Printable(l.Source.String())
}

// Draw implements Layer. Text wider than the frame is left-aligned and
// clipped at the frame edge.
func (l *TextLayer) Draw(c *Canvas) {
	text := l.Text()
	if l.Hidden || text == "" || l.Font.Face == nil {
		return
	}
	_, w := tinyfont.LineWidth(l.Font.Face, text)
	width := int16(w)
	frameW := int16(l.Frame.Dx())

	x := int16(l.Frame.Min.X)
	if width <= frameW {
		switch l.Align {
		case AlignCenter:
			x += (frameW - width) / 2
		case AlignRight:
			x += frameW - width
		}
	}
	y := int16(l.Frame.Min.Y) + l.Font.Ascent
	tinyfont.WriteLine(clipped{Displayer: c, r: l.Frame}, l.Font.Face, x, y, text, rgba(l.Color))
}

// Printable maps text onto the 7-bit glyph set the fonts carry. The degree
// sign becomes 'o'; other runes outside printable ASCII become '?'.
func Printable(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '°':
			return 'o'
		case r < 0x20 || r > 0x7E:
			return '?'
		}
		return r
	}, s)
}

func rgba(c bitmap.Color8) color.RGBA {
	return c.RGBA8()
}

// BitmapLayer composites a bitmap centred in its frame. Transparent pixels
// let the window background through.
type BitmapLayer struct {
	Frame  image.Rectangle
	Bitmap *bitmap.Bitmap
	Hidden bool
}

// NewBitmapLayer returns an empty layer covering frame.
func NewBitmapLayer(frame image.Rectangle) *BitmapLayer {
	return &BitmapLayer{Frame: frame}
}

// SetBitmap replaces the displayed bitmap; nil shows nothing.
func (l *BitmapLayer) SetBitmap(b *bitmap.Bitmap) {
	l.Bitmap = b
}

// Draw implements Layer.
func (l *BitmapLayer) Draw(c *Canvas) {
	if l.Hidden || l.Bitmap == nil {
		return
	}
	origin := l.Frame.Min.Add(l.Frame.Size().Sub(l.Bitmap.Size()).Div(2))
	bitmap.CompositeSet(c.Bitmap(), l.Bitmap, origin)
}

// Window owns the framebuffer and its layers.
type Window struct {
	Background bitmap.Color8

	canvas *Canvas
	layers []Layer
	dirty  bool
}

// NewWindow returns a window of the given size filled with bg.
func NewWindow(size image.Point, bg bitmap.Color8) *Window {
	return &Window{
		Background: bg,
		canvas:     NewCanvas(bitmap.NewBlank(size)),
		dirty:      true,
	}
}

// Bounds returns the window's rectangle.
func (w *Window) Bounds() image.Rectangle {
	return w.canvas.Bitmap().Bounds()
}

// Add appends l above the existing layers.
func (w *Window) Add(l Layer) {
	w.layers = append(w.layers, l)
	w.dirty = true
}

// Clear removes every layer.
func (w *Window) Clear() {
	w.layers = nil
	w.dirty = true
}

// Layers returns the layer count.
func (w *Window) Layers() int {
	return len(w.layers)
}

// MarkDirty schedules a redraw on the next Render.
func (w *Window) MarkDirty() { w.dirty = true }

// Dirty reports whether a redraw is pending.
func (w *Window) Dirty() bool { return w.dirty }

// Render redraws the framebuffer if anything changed and returns it.
func (w *Window) Render() *bitmap.Bitmap {
	if w.dirty {
		fb := w.canvas.Bitmap()
		fb.Fill(w.Background)
		for _, l := range w.layers {
			l.Draw(w.canvas)
		}
		_ = w.canvas.Display()
		w.dirty = false
	}
	return w.canvas.Bitmap()
}

// Frames returns how many redraws have completed.
func (w *Window) Frames() int {
	return w.canvas.Flushes()
}
