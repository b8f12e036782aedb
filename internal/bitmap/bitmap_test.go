package bitmap

import (
	"image"
	"image/color"
	"testing"
)

func TestColor8_NamedColorsRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		c    Color8
		want color.RGBA
	}{
		{"blue", Blue, color.RGBA{B: 255, A: 255}},
		{"yellow", Yellow, color.RGBA{R: 255, G: 255, A: 255}},
		{"clear", Clear, color.RGBA{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.c.RGBA8(); got != tc.want {
				t.Fatalf("RGBA8 = %#v, want %#v", got, tc.want)
			}
			back := Model.Convert(tc.c)
			if back != tc.c {
				t.Fatalf("Model.Convert = %v, want %v", back, tc.c)
			}
		})
	}
}

func TestModel_QuantizesAndDropsTransparent(t *testing.T) {
	if got := Model.Convert(color.NRGBA{R: 255, A: 255}); got != Red {
		t.Fatalf("Convert(red) = %#x, want %#x", got, Red)
	}
	if got := Model.Convert(color.NRGBA{R: 255, G: 255, B: 255, A: 10}); got != Clear {
		t.Fatalf("Convert(nearly transparent) = %#x, want Clear", got)
	}
}

func TestBitmap_SetAndBounds(t *testing.T) {
	b := NewBlank(image.Pt(4, 3))
	if b.Size() != image.Pt(4, 3) || len(b.Pix) != 12 {
		t.Fatalf("Size = %v len(Pix) = %d, want 4x3 and 12", b.Size(), len(b.Pix))
	}
	b.Set(1, 2, color.RGBA{G: 255, A: 255})
	if got := b.Color8At(1, 2); got != Green {
		t.Fatalf("Color8At = %#x, want %#x", got, Green)
	}
	b.SetColor8(10, 10, White) // ignored
	if got := b.Color8At(10, 10); got != Clear {
		t.Fatalf("Color8At outside = %#x, want Clear", got)
	}
	b.FillRect(image.Rect(-5, -5, 2, 1), Blue)
	if b.Color8At(0, 0) != Blue || b.Color8At(1, 0) != Blue || b.Color8At(2, 0) != Clear {
		t.Fatalf("FillRect painted wrong pixels: %v", b.Pix)
	}
}

func TestCompositeSet_SkipsTransparent(t *testing.T) {
	dst := NewBlank(image.Pt(3, 1))
	dst.Fill(Blue)
	src := NewBlank(image.Pt(2, 1))
	src.SetColor8(1, 0, Yellow)

	CompositeSet(dst, src, image.Pt(1, 0))

	want := []Color8{Blue, Blue, Yellow}
	for x, w := range want {
		if got := dst.Color8At(x, 0); got != w {
			t.Fatalf("pixel %d = %#x, want %#x", x, got, w)
		}
	}
}

func TestCompositeSet_NilIsNoop(t *testing.T) {
	CompositeSet(nil, NewBlank(image.Pt(1, 1)), image.Point{})
	CompositeSet(NewBlank(image.Pt(1, 1)), nil, image.Point{})
}
