package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/dontpanic/internal/bitmap"
)

const halfBlock = "▀"

// Terminal renders a framebuffer as terminal cells. Each cell shows two
// vertically stacked pixels: the upper half block takes the top pixel as
// foreground and the bottom pixel as background.
type Terminal struct {
	styles map[[2]bitmap.Color8]lipgloss.Style
}

// NewTerminal returns a renderer with an empty style cache.
func NewTerminal() *Terminal {
	return &Terminal{styles: make(map[[2]bitmap.Color8]lipgloss.Style)}
}

// FitScale returns the smallest downscale factor at which a framebuffer of
// the given pixel size fits into cols x rows cells. It never returns less
// than 1.
func FitScale(width, height, cols, rows int) int {
	scale := 1
	for scale < 16 {
		w := (width + scale - 1) / scale
		h := (height + 2*scale - 1) / (2 * scale)
		if w <= cols && h <= rows {
			break
		}
		scale++
	}
	return scale
}

// Cells returns the cell dimensions Render produces at scale.
func Cells(width, height, scale int) (cols, rows int) {
	if scale < 1 {
		scale = 1
	}
	return (width + scale - 1) / scale, (height + 2*scale - 1) / (2 * scale)
}

// Render draws fb sampling every scale-th pixel.
func (t *Terminal) Render(fb *bitmap.Bitmap, scale int) string {
	if fb == nil {
		return ""
	}
	if scale < 1 {
		scale = 1
	}
	size := fb.Size()

	var b strings.Builder
	var run strings.Builder
	for y := 0; y < size.Y; y += 2 * scale {
		if y > 0 {
			b.WriteByte('\n')
		}
		var current [2]bitmap.Color8
		n := 0
		for x := 0; x < size.X; x += scale {
			pair := [2]bitmap.Color8{fb.Color8At(x, y), fb.Color8At(x, y+scale)}
			if n > 0 && pair != current {
				b.WriteString(t.style(current).Render(run.String()))
				run.Reset()
				n = 0
			}
			current = pair
			run.WriteString(halfBlock)
			n++
		}
		if n > 0 {
			b.WriteString(t.style(current).Render(run.String()))
			run.Reset()
		}
	}
	return b.String()
}

func (t *Terminal) style(pair [2]bitmap.Color8) lipgloss.Style {
	if s, ok := t.styles[pair]; ok {
		return s
	}
	s := lipgloss.NewStyle()
	if pair[0].A() != 0 {
		s = s.Foreground(lipgloss.Color(Hex(pair[0])))
	}
	if pair[1].A() != 0 {
		s = s.Background(lipgloss.Color(Hex(pair[1])))
	}
	t.styles[pair] = s
	return s
}

// Hex formats c as #RRGGBB, ignoring alpha.
func Hex(c bitmap.Color8) string {
	rgb := c.RGBA8()
	return fmt.Sprintf("#%02X%02X%02X", rgb.R, rgb.G, rgb.B)
}
