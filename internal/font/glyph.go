// Package font holds the badge's bitmap glyph table and the prerendered
// video frames. Everything here is immutable after package init.
package font

import (
	"fmt"

	"github.com/coreman2200/dotbadge/internal/model"
)

const (
	// MaxWidth is the widest glyph the width field can describe.
	MaxWidth = 7

	widthShift = 5
	// Heart is the code point of the extra heart glyph.
	Heart byte = 0x7f
	// Fallback is drawn for bytes with no glyph.
	Fallback byte = '?'
)

// Glyph is a column bitmap: one byte per slice along the scroll axis with the
// five pixel bits in the low bits. The top three bits of the first byte hold
// the display width.
type Glyph [MaxWidth]byte

// Width returns the number of slices the glyph occupies.
func (g Glyph) Width() int {
	return int(g[0] >> widthShift)
}

// Slice returns the pixel bits of slice i, or 0 past the glyph's width.
func (g Glyph) Slice(i int) byte {
	if i < 0 || i >= g.Width() {
		return 0
	}
	return g[i] & model.PixelMask
}

// Slices returns the pixel bits of every slice.
func (g Glyph) Slices() []byte {
	out := make([]byte, g.Width())
	for i := range out {
		out[i] = g.Slice(i)
	}
	return out
}

var table [128]Glyph

func init() {
	for c, art := range glyphArt {
		g, err := compileGlyph(art)
		if err != nil {
			panic(fmt.Sprintf("font: glyph %q: %v", c, err))
		}
		table[c] = g
	}
	for c := 0x20; c <= int(Heart); c++ {
		if table[c].Width() == 0 {
			panic(fmt.Sprintf("font: missing glyph %q", rune(c)))
		}
	}
	frames = make([]model.Frame, len(frameArt))
	for i, art := range frameArt {
		f, err := compileFrame(art)
		if err != nil {
			panic(fmt.Sprintf("font: frame %d: %v", i, err))
		}
		frames[i] = f
	}
}

// Lookup returns the glyph for c. Bytes without a glyph map to Fallback.
func Lookup(c byte) Glyph {
	if c < ' ' || c > Heart {
		return table[Fallback]
	}
	return table[c]
}

// Render lays text out as a continuous run of slices with spacing blank
// slices after every glyph.
func Render(text string, spacing int) []byte {
	var out []byte
	for i := 0; i < len(text); i++ {
		out = append(out, Lookup(text[i]).Slices()...)
		for j := 0; j < spacing; j++ {
			out = append(out, 0)
		}
	}
	return out
}

// compileGlyph turns Cols rows of '#'/'.' art into a Glyph.
func compileGlyph(art [model.Cols]string) (Glyph, error) {
	var g Glyph
	w := len(art[0])
	if w < 1 || w > MaxWidth {
		return g, fmt.Errorf("width %d out of range", w)
	}
	for row, line := range art {
		if len(line) != w {
			return g, fmt.Errorf("row %d is %d wide, want %d", row, len(line), w)
		}
		for x := 0; x < w; x++ {
			switch line[x] {
			case '#':
				g[x] |= 1 << uint(row)
			case '.':
			default:
				return g, fmt.Errorf("row %d: unexpected %q", row, line[x])
			}
		}
	}
	g[0] |= byte(w) << widthShift
	return g, nil
}
