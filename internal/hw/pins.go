// Package hw opens the badge's physical lines and sensors.
package hw

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/warthog618/go-gpiocdev"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

// Backend selects how GPIO lines are reached.
type Backend string

const (
	// Periph uses periph.io's registry; host.Init must have run.
	Periph Backend = "periph"
	// Cdev uses the Linux GPIO character device.
	Cdev Backend = "cdev"
	// Sim hands out in-memory pins.
	Sim Backend = "sim"
)

// Line is one digital line, readable and writable.
type Line interface {
	Out(l gpio.Level) error
	Read() gpio.Level
}

// Bank opens lines on one backend and releases them together.
type Bank struct {
	backend Backend
	chip    string
	log     zerolog.Logger
	lines   []*cdevLine
}

// NewBank returns a bank for backend. chip names the character device
// (e.g. "gpiochip0") and is used by Cdev only.
func NewBank(backend Backend, chip string, log zerolog.Logger) (*Bank, error) {
	switch backend {
	case Periph, Cdev, Sim:
	default:
		return nil, fmt.Errorf("unknown gpio backend %q", backend)
	}
	if chip == "" {
		chip = "gpiochip0"
	}
	return &Bank{backend: backend, chip: chip, log: log}, nil
}

func (b *Bank) Backend() Backend { return b.backend }

// Output opens line n as an output driven to initial.
func (b *Bank) Output(n int, initial gpio.Level) (Line, error) {
	switch b.backend {
	case Periph:
		p := gpioreg.ByName(strconv.Itoa(n))
		if p == nil {
			return nil, fmt.Errorf("gpio %d: not found", n)
		}
		if err := p.Out(initial); err != nil {
			return nil, fmt.Errorf("gpio %d: out: %w", n, err)
		}
		return p, nil
	case Cdev:
		v := 0
		if initial {
			v = 1
		}
		l, err := gpiocdev.RequestLine(b.chip, n, gpiocdev.AsOutput(v), gpiocdev.WithConsumer("dotbadge"))
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", b.chip, n, err)
		}
		cl := &cdevLine{l: l, n: n, log: b.log}
		b.lines = append(b.lines, cl)
		return cl, nil
	}
	return &gpiotest.Pin{N: "GPIO" + strconv.Itoa(n), Num: n, L: initial}, nil
}

// Input opens line n as a pulled-up input.
func (b *Bank) Input(n int) (Line, error) {
	switch b.backend {
	case Periph:
		p := gpioreg.ByName(strconv.Itoa(n))
		if p == nil {
			return nil, fmt.Errorf("gpio %d: not found", n)
		}
		if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return nil, fmt.Errorf("gpio %d: in: %w", n, err)
		}
		return p, nil
	case Cdev:
		l, err := gpiocdev.RequestLine(b.chip, n, gpiocdev.AsInput, gpiocdev.WithPullUp, gpiocdev.WithConsumer("dotbadge"))
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", b.chip, n, err)
		}
		cl := &cdevLine{l: l, n: n, log: b.log}
		b.lines = append(b.lines, cl)
		return cl, nil
	}
	return &gpiotest.Pin{N: "GPIO" + strconv.Itoa(n), Num: n, L: gpio.High}, nil
}

// Outputs opens each of nums as an output at initial.
func (b *Bank) Outputs(nums []int, initial gpio.Level) ([]Line, error) {
	out := make([]Line, 0, len(nums))
	for _, n := range nums {
		l, err := b.Output(n, initial)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// Close releases character device lines. periph and sim lines need no
// release.
func (b *Bank) Close() error {
	var errs []error
	for _, l := range b.lines {
		errs = append(errs, l.l.Close())
	}
	b.lines = nil
	return errors.Join(errs...)
}

type cdevLine struct {
	l   *gpiocdev.Line
	n   int
	log zerolog.Logger
}

func (c *cdevLine) Out(l gpio.Level) error {
	v := 0
	if l {
		v = 1
	}
	return c.l.SetValue(v)
}

// Read reports High when the line cannot be read, the released state of a
// pulled-up input.
func (c *cdevLine) Read() gpio.Level {
	v, err := c.l.Value()
	if err != nil {
		c.log.Debug().Err(err).Int("line", c.n).Msg("gpio read failed")
		return gpio.High
	}
	return gpio.Level(v != 0)
}
