package animation

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"testing"
	"time"

	"github.com/five82/dontpanic/internal/bitmap"
)

var testPalette = color.Palette{
	color.RGBA{},
	color.RGBA{R: 0xFF, A: 0xFF},
	color.RGBA{B: 0xFF, A: 0xFF},
}

func solidFrame(r image.Rectangle, idx uint8) *image.Paletted {
	img := image.NewPaletted(r, testPalette)
	for i := range img.Pix {
		img.Pix[i] = idx
	}
	return img
}

func encodeGIF(t *testing.T, g *gif.GIF) []byte {
	t.Helper()
	g.Config = image.Config{Width: 4, Height: 4, ColorModel: testPalette}
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		t.Fatalf("EncodeAll: %v", err)
	}
	return buf.Bytes()
}

func openTestGIF(t *testing.T, g *gif.GIF) *GIFSequence {
	t.Helper()
	seq, err := OpenGIF(bytes.NewReader(encodeGIF(t, g)))
	if err != nil {
		t.Fatalf("OpenGIF: %v", err)
	}
	return seq
}

func twoFrames(loop int, disposal byte) *gif.GIF {
	return &gif.GIF{
		Image: []*image.Paletted{
			solidFrame(image.Rect(0, 0, 2, 2), 1),
			solidFrame(image.Rect(3, 3, 4, 4), 2),
		},
		Delay:     []int{0, 5},
		Disposal:  []byte{disposal, gif.DisposalNone},
		LoopCount: loop,
	}
}

func countFrames(seq Sequence, limit int) int {
	dst := bitmap.NewBlank(seq.Size())
	n := 0
	for n < limit {
		if _, ok := seq.NextFrame(dst); !ok {
			break
		}
		n++
	}
	return n
}

func TestOpenGIF_RejectsGarbage(t *testing.T) {
	if _, err := OpenGIF(bytes.NewReader([]byte("not a gif"))); err == nil {
		t.Fatalf("OpenGIF(garbage) succeeded")
	}
}

func TestGIFSequence_Delays(t *testing.T) {
	seq := openTestGIF(t, twoFrames(0, gif.DisposalNone))
	if got := seq.Size(); got != image.Pt(4, 4) {
		t.Fatalf("Size = %v, want 4x4", got)
	}
	dst := bitmap.NewBlank(seq.Size())

	want := []time.Duration{100 * time.Millisecond, 50 * time.Millisecond}
	for i, w := range want {
		d, ok := seq.NextFrame(dst)
		if !ok {
			t.Fatalf("frame %d: ok = false", i)
		}
		if d != w {
			t.Fatalf("frame %d delay = %v, want %v", i, d, w)
		}
	}
}

func TestGIFSequence_LoopCount(t *testing.T) {
	tests := []struct {
		name string
		loop int
		want int
	}{
		{name: "play once", loop: -1, want: 2},
		{name: "one repeat", loop: 1, want: 4},
		{name: "two repeats", loop: 2, want: 6},
		{name: "forever", loop: 0, want: 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := openTestGIF(t, twoFrames(tt.loop, gif.DisposalNone))
			if got := countFrames(seq, 50); got != tt.want {
				t.Fatalf("frames = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGIFSequence_Disposal(t *testing.T) {
	tests := []struct {
		name     string
		disposal byte
		want     bitmap.Color8
	}{
		{name: "none keeps pixels", disposal: gif.DisposalNone, want: bitmap.Red},
		{name: "background clears", disposal: gif.DisposalBackground, want: bitmap.Clear},
		{name: "previous restores", disposal: gif.DisposalPrevious, want: bitmap.Clear},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := openTestGIF(t, twoFrames(0, tt.disposal))
			dst := bitmap.NewBlank(seq.Size())

			seq.NextFrame(dst)
			if got := dst.Color8At(0, 0); got != bitmap.Red {
				t.Fatalf("frame 0 pixel = %#x, want red", got)
			}
			seq.NextFrame(dst)
			if got := dst.Color8At(0, 0); got != tt.want {
				t.Fatalf("frame 1 pixel = %#x, want %#x", got, tt.want)
			}
			if got := dst.Color8At(3, 3); got != bitmap.Blue {
				t.Fatalf("frame 1 corner = %#x, want blue", got)
			}
		})
	}
}

func TestGIFSequence_RewindClearsCanvas(t *testing.T) {
	seq := openTestGIF(t, twoFrames(0, gif.DisposalNone))
	dst := bitmap.NewBlank(seq.Size())
	seq.NextFrame(dst)
	seq.NextFrame(dst)
	seq.NextFrame(dst)
	if got := dst.Color8At(3, 3); got != bitmap.Clear {
		t.Fatalf("corner after rewind = %#x, want clear", got)
	}
}

func TestGIFSequence_ClosedProducesNothing(t *testing.T) {
	seq := openTestGIF(t, twoFrames(0, gif.DisposalNone))
	if err := seq.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, ok := seq.NextFrame(bitmap.NewBlank(seq.Size())); ok {
		t.Fatalf("NextFrame after Close produced a frame")
	}
}
