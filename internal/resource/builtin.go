package resource

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"math"
	"sync"
)

// Built-in animation geometry, in screen pixels.
const (
	ScreenWidth  = 144
	ScreenHeight = 168

	builtinFrames = 24
	builtinDelay  = 8 // hundredths of a second

	planetX, planetY, planetR = 72, 132, 22
	orbitRX, orbitRY, moonR   = 52, 14, 5
)

// Palette entries are exact in the watch's 2-bit-per-channel format.
const (
	idxClear = iota
	idxOcean
	idxLand
	idxIce
	idxMoon
	idxMoonShade
	idxStar
)

var builtinPalette = color.Palette{
	idxClear:     color.RGBA{},
	idxOcean:     color.RGBA{R: 0x00, G: 0x55, B: 0xAA, A: 0xFF},
	idxLand:      color.RGBA{R: 0x55, G: 0xAA, B: 0x55, A: 0xFF},
	idxIce:       color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	idxMoon:      color.RGBA{R: 0xAA, G: 0xAA, B: 0xAA, A: 0xFF},
	idxMoonShade: color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xFF},
	idxStar:      color.RGBA{R: 0xFF, G: 0xFF, B: 0xAA, A: 0xFF},
}

var stars = []image.Point{
	{118, 14}, {131, 31}, {109, 48}, {137, 63}, {121, 79}, {134, 96}, {112, 104},
}

var (
	builtinOnce sync.Once
	builtinData []byte
	builtinErr  error
)

// BuiltinAnimation returns the GIF served for Output when no file overrides
// it: a turning planet with an orbiting moon and twinkling stars on a
// transparent background, looping forever.
func BuiltinAnimation() ([]byte, error) {
	builtinOnce.Do(func() {
		builtinData, builtinErr = encodeBuiltin()
	})
	return builtinData, builtinErr
}

func encodeBuiltin() ([]byte, error) {
	g := &gif.GIF{
		Config: image.Config{
			Width:      ScreenWidth,
			Height:     ScreenHeight,
			ColorModel: builtinPalette,
		},
		LoopCount: 0,
	}
	for i := 0; i < builtinFrames; i++ {
		g.Image = append(g.Image, drawFrame(float64(i)/builtinFrames))
		g.Delay = append(g.Delay, builtinDelay)
		g.Disposal = append(g.Disposal, gif.DisposalNone)
	}
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawFrame renders the scene at phase p in [0, 1).
func drawFrame(p float64) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, ScreenWidth, ScreenHeight), builtinPalette)

	for i, s := range stars {
		if (i+int(p*builtinFrames)/3)%3 != 0 {
			img.SetColorIndex(s.X, s.Y, idxStar)
		}
	}

	angle := 2 * math.Pi * p
	mx := planetX + int(math.Round(orbitRX*math.Cos(angle)))
	my := planetY + int(math.Round(orbitRY*math.Sin(angle)))
	behind := math.Sin(angle) < 0

	if behind {
		drawMoon(img, mx, my)
	}
	drawPlanet(img, angle)
	if !behind {
		drawMoon(img, mx, my)
	}
	return img
}

func drawPlanet(img *image.Paletted, spin float64) {
	for y := -planetR; y <= planetR; y++ {
		for x := -planetR; x <= planetR; x++ {
			nx, ny := float64(x)/planetR, float64(y)/planetR
			d := nx*nx + ny*ny
			if d > 1 {
				continue
			}
			lat := math.Asin(ny)
			lon := math.Atan2(nx, math.Sqrt(1-d)) + spin

			idx := uint8(idxOcean)
			switch {
			case math.Abs(lat) > 1.2:
				idx = idxIce
			case math.Sin(3*lon)*math.Cos(lat)+0.5*math.Sin(2*lat+lon) > 0.35:
				idx = idxLand
			}
			img.SetColorIndex(planetX+x, planetY+y, idx)
		}
	}
}

func drawMoon(img *image.Paletted, cx, cy int) {
	for y := -moonR; y <= moonR; y++ {
		for x := -moonR; x <= moonR; x++ {
			if x*x+y*y > moonR*moonR {
				continue
			}
			idx := uint8(idxMoon)
			if x+y > moonR/2 {
				idx = idxMoonShade
			}
			img.SetColorIndex(cx+x, cy+y, idx)
		}
	}
}
