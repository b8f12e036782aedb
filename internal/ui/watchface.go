package ui

import (
	"image"

	"github.com/five82/dontpanic/internal/animation"
	"github.com/five82/dontpanic/internal/bitmap"
	"github.com/five82/dontpanic/internal/clock"
	"github.com/five82/dontpanic/internal/resource"
	"github.com/five82/dontpanic/internal/screen"
	"github.com/five82/dontpanic/internal/textbuf"
	"github.com/five82/dontpanic/internal/weather"
)

// Text layer placement on the 144x168 display.
const (
	textWidth  = 100
	textHeight = 100

	timeY    = 19
	weatherY = 39
	weekdayY = 59
	dateY    = 79
)

// greeting fills the weather line until the first report arrives.
const greeting = "DONT PANIC"

// watchface is the single window: the animation under four text layers.
type watchface struct {
	window *screen.Window
	image  *screen.BitmapLayer

	timeText    *screen.TextLayer
	weatherText *screen.TextLayer
	weekdayText *screen.TextLayer
	dateText    *screen.TextLayer
}

func newWatchface() *watchface {
	w := screen.NewWindow(screen.Size, bitmap.Blue)
	return &watchface{
		window: w,
		image:  screen.NewBitmapLayer(w.Bounds()),
	}
}

func textLayer(y int, src *textbuf.Buffer, font screen.Font) *screen.TextLayer {
	l := screen.NewTextLayer(image.Rect(0, y, textWidth, y+textHeight), src)
	l.Color = bitmap.Yellow
	l.Align = screen.AlignRight
	l.Font = font
	return l
}

// load builds the layer stack over the given buffers and starts the
// animation. A missing or undecodable resource leaves the text layers
// running and is returned for logging.
func (f *watchface) load(display *clock.Display, report *weather.Report, font screen.Font,
	driver *animation.Driver, registry *resource.Registry) error {
	f.unload(driver)

	f.timeText = textLayer(timeY, display.Time, font)
	f.weatherText = textLayer(weatherY, report.Line, font)
	f.weekdayText = textLayer(weekdayY, display.Weekday, font)
	f.dateText = textLayer(dateY, display.Date, font)
	report.Line.Set(greeting)

	f.window.Add(f.image)
	f.window.Add(f.timeText)
	f.window.Add(f.weatherText)
	f.window.Add(f.weekdayText)
	f.window.Add(f.dateText)

	rc, err := registry.Open(resource.Output)
	if err != nil {
		return err
	}
	return driver.LoadGIF(rc)
}

// unload stops the animation and removes every layer. It is safe on a
// window that never loaded.
func (f *watchface) unload(driver *animation.Driver) {
	driver.Unload()
	f.image.SetBitmap(nil)
	f.window.Clear()
	f.timeText, f.weatherText, f.weekdayText, f.dateText = nil, nil, nil, nil
}

// showFrame points the image layer at the driver's frame buffer.
func (f *watchface) showFrame(b *bitmap.Bitmap) {
	f.image.SetBitmap(b)
	f.window.MarkDirty()
}
