package animation

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"io"
	"time"

	"github.com/five82/dontpanic/internal/bitmap"
)

// Sequence is a stateful cursor producing successive frames of one animated
// image. Loop and repeat metadata are handled inside the sequence.
type Sequence interface {
	// Size reports the frame dimensions.
	Size() image.Point
	// NextFrame renders the next frame into dst and returns the delay before
	// the following frame. ok is false when no frame was produced.
	NextFrame(dst *bitmap.Bitmap) (delay time.Duration, ok bool)
	// Close releases the sequence.
	Close() error
}

// Delay applied to frames that declare no delay of their own.
const zeroDelayFloor = 100 * time.Millisecond

// ErrNoFrames is returned for an animated image without frames.
var ErrNoFrames = errors.New("animation has no frames")

// GIFSequence decodes an animated GIF, compositing each frame onto a
// persistent canvas according to the frame's disposal method.
type GIFSequence struct {
	g      *gif.GIF
	size   image.Point
	canvas *image.NRGBA
	saved  *image.NRGBA

	next   int // index of the frame NextFrame renders
	plays  int // completed passes through all frames
	closed bool
}

// OpenGIF decodes every frame of an animated GIF read from r.
func OpenGIF(r io.Reader) (*GIFSequence, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, fmt.Errorf("decode gif: %w", err)
	}
	if len(g.Image) == 0 {
		return nil, ErrNoFrames
	}
	size := image.Pt(g.Config.Width, g.Config.Height)
	if size.X == 0 || size.Y == 0 {
		size = g.Image[0].Bounds().Max
	}
	return &GIFSequence{
		g:      g,
		size:   size,
		canvas: image.NewNRGBA(image.Rectangle{Max: size}),
	}, nil
}

// Size implements Sequence.
func (s *GIFSequence) Size() image.Point {
	return s.size
}

// Frames returns the number of frames in one pass.
func (s *GIFSequence) Frames() int {
	return len(s.g.Image)
}

// LoopCount returns the GIF loop count: 0 loops forever, -1 plays once and
// n plays n+1 times.
func (s *GIFSequence) LoopCount() int {
	return s.g.LoopCount
}

// NextFrame implements Sequence.
func (s *GIFSequence) NextFrame(dst *bitmap.Bitmap) (time.Duration, bool) {
	if s.closed || dst == nil {
		return 0, false
	}
	if s.next == len(s.g.Image) {
		if !s.rewind() {
			return 0, false
		}
	}

	i := s.next
	if i > 0 {
		s.dispose(i - 1)
	}
	frame := s.g.Image[i]
	if s.disposal(i) == gif.DisposalPrevious {
		s.saved = cloneNRGBA(s.canvas)
	}
	draw.Draw(s.canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
	draw.Draw(dst, dst.Bounds(), s.canvas, image.Point{}, draw.Src)
	s.next++

	return s.delay(i), true
}

// rewind starts another pass if the loop count allows it.
func (s *GIFSequence) rewind() bool {
	s.plays++
	switch lc := s.g.LoopCount; {
	case lc == 0:
	case lc < 0:
		return false
	case s.plays > lc:
		return false
	}
	s.next = 0
	s.saved = nil
	clearNRGBA(s.canvas, s.canvas.Bounds())
	return true
}

func (s *GIFSequence) dispose(i int) {
	bounds := s.g.Image[i].Bounds()
	switch s.disposal(i) {
	case gif.DisposalBackground:
		clearNRGBA(s.canvas, bounds)
	case gif.DisposalPrevious:
		if s.saved != nil {
			draw.Draw(s.canvas, bounds, s.saved, bounds.Min, draw.Src)
		}
	}
}

func (s *GIFSequence) disposal(i int) byte {
	if i < len(s.g.Disposal) {
		return s.g.Disposal[i]
	}
	return gif.DisposalNone
}

func (s *GIFSequence) delay(i int) time.Duration {
	if i < len(s.g.Delay) && s.g.Delay[i] > 0 {
		return time.Duration(s.g.Delay[i]) * 10 * time.Millisecond
	}
	return zeroDelayFloor
}

// Close implements Sequence.
func (s *GIFSequence) Close() error {
	s.closed = true
	s.canvas, s.saved = nil, nil
	return nil
}

func clearNRGBA(img *image.NRGBA, r image.Rectangle) {
	draw.Draw(img, r, image.Transparent, image.Point{}, draw.Src)
}

func cloneNRGBA(img *image.NRGBA) *image.NRGBA {
	out := image.NewNRGBA(img.Bounds())
	copy(out.Pix, img.Pix)
	return out
}
