package led

import (
	"image"
	"image/color"
	"sync"
	"time"

	"github.com/coreman2200/dotbadge/internal/model"
	"periph.io/x/conn/v3/display"
	"periph.io/x/extra/devices/screen"
)

// Console prints the matrix as a single line of colored cells on the
// terminal, in strip order. Draws closer together than every are dropped.
type Console struct {
	mu     sync.Mutex
	d      display.Drawer
	layout Layout
	every  time.Duration
	last   time.Time
	img    *image.NRGBA
}

// NewConsole prints through periph's ANSI screen device.
func NewConsole(layout Layout, every time.Duration) *Console {
	return NewDrawer(screen.New(layout.Count()), layout, every)
}

// NewDrawer renders through any display.Drawer at least layout.Count()
// pixels wide.
func NewDrawer(d display.Drawer, layout Layout, every time.Duration) *Console {
	return &Console{
		d:      d,
		layout: layout,
		every:  every,
		img:    image.NewNRGBA(image.Rect(0, 0, layout.Count(), 1)),
	}
}

func (c *Console) Draw(f model.Frame, level float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	if c.every > 0 && !c.last.IsZero() && now.Sub(c.last) < c.every {
		return nil
	}
	c.last = now

	v := model.Intensity(level)
	for r := 0; r < model.Rows; r++ {
		for col := 0; col < model.Cols; col++ {
			px := color.NRGBA{A: 0xFF}
			if f.Lit(r, col) {
				px.R, px.G, px.B = v, v, v
			}
			c.img.SetNRGBA(c.layout.Index(r, col), 0, px)
		}
	}
	return c.d.Draw(c.d.Bounds(), c.img, image.Point{})
}

func (c *Console) Close() error {
	return c.d.Halt()
}
