package model

import (
	"image"
	"image/color"
	"strings"
)

const (
	// Rows is the number of row slots along the scroll axis.
	Rows = 15
	// Cols is the number of column lines driven per row.
	Cols = 5
	// PixelMask selects the lit/unlit bits of a row slot.
	PixelMask byte = 1<<Cols - 1
)

// Frame is one full picture of the matrix: a byte per row slot, bit n set
// when column line n is lit. Bit 0 is the top LED.
type Frame [Rows]byte

// Lit reports whether the LED at row slot r, column line c is on.
func (f Frame) Lit(r, c int) bool {
	if r < 0 || r >= Rows || c < 0 || c >= Cols {
		return false
	}
	return f[r]&(1<<uint(c)) != 0
}

// Set switches a single LED.
func (f *Frame) Set(r, c int, on bool) {
	if r < 0 || r >= Rows || c < 0 || c >= Cols {
		return
	}
	if on {
		f[r] |= 1 << uint(c)
	} else {
		f[r] &^= 1 << uint(c)
	}
}

// Count returns the number of lit LEDs.
func (f Frame) Count() int {
	n := 0
	for r := range f {
		for c := 0; c < Cols; c++ {
			if f.Lit(r, c) {
				n++
			}
		}
	}
	return n
}

// Sketch renders the frame in ASCII the way it looks on the badge: the
// scroll axis runs left to right, one line per column line. '@' is lit.
func (f Frame) Sketch() []string {
	lines := make([]string, Cols)
	for c := 0; c < Cols; c++ {
		var b strings.Builder
		for r := 0; r < Rows; r++ {
			if f.Lit(r, c) {
				b.WriteByte('@')
			} else {
				b.WriteByte('.')
			}
		}
		lines[c] = b.String()
	}
	return lines
}

// Image returns the frame as a Rows x Cols grayscale image with lit pixels
// scaled by level (0..1).
func (f Frame) Image(level float64) *image.Gray {
	im := image.NewGray(image.Rect(0, 0, Rows, Cols))
	v := Intensity(level)
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if f.Lit(r, c) {
				im.SetGray(r, c, color.Gray{Y: v})
			}
		}
	}
	return im
}

// Intensity maps a 0..1 level to an 8 bit channel value.
func Intensity(level float64) uint8 {
	if level <= 0 {
		return 0
	}
	if level >= 1 {
		return 255
	}
	return uint8(level*255 + 0.5)
}
