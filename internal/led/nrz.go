package led

import (
	"fmt"

	"github.com/coreman2200/dotbadge/internal/model"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/nrzled"
)

// RGB is the strip color of a lit LED at full brightness.
type RGB struct {
	R, G, B uint8
}

// White lights every channel.
var White = RGB{0xFF, 0xFF, 0xFF}

// DefaultNRZFreq suits WS2812 class strips.
const DefaultNRZFreq = 2500 * physic.KiloHertz

// NRZ shows the matrix on an addressable strip clocked over SPI.
type NRZ struct {
	dev    *nrzled.Dev
	layout Layout
	color  RGB
	buf    []byte
}

// NewNRZ opens an nrzled strip on p with one pixel per matrix LED.
func NewNRZ(p spi.Port, layout Layout, color RGB, freq physic.Frequency) (*NRZ, error) {
	if freq == 0 {
		freq = DefaultNRZFreq
	}
	o := nrzled.Opts{
		NumPixels: layout.Count(),
		Channels:  3,
		Freq:      freq,
	}
	d, err := nrzled.NewSPI(p, &o)
	if err != nil {
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	return &NRZ{
		dev:    d,
		layout: layout,
		color:  color,
		buf:    make([]byte, o.NumPixels*o.Channels),
	}, nil
}

func (n *NRZ) String() string { return n.dev.String() }

// Pixels returns the channel bytes of the last drawn frame.
func (n *NRZ) Pixels() []byte { return n.buf }

func (n *NRZ) Draw(f model.Frame, level float64) error {
	i := model.Intensity(level)
	lit := [3]byte{scale(n.color.R, i), scale(n.color.G, i), scale(n.color.B, i)}
	for k := range n.buf {
		n.buf[k] = 0
	}
	for r := 0; r < model.Rows; r++ {
		for c := 0; c < model.Cols; c++ {
			if !f.Lit(r, c) {
				continue
			}
			off := n.layout.Index(r, c) * 3
			copy(n.buf[off:off+3], lit[:])
		}
	}
	if _, err := n.dev.Write(n.buf); err != nil {
		return fmt.Errorf("nrzled write: %w", err)
	}
	return nil
}

func (n *NRZ) Close() error {
	return n.dev.Halt()
}

func scale(v, i uint8) uint8 {
	return uint8((uint16(v)*uint16(i) + 127) / 255)
}
