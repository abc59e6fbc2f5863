// Package led pushes model frames to the badge's LED array or to a stand-in.
package led

import (
	"errors"

	"github.com/coreman2200/dotbadge/internal/model"
	"periph.io/x/conn/v3/gpio"
)

// Driver abstracts an LED output sink.
type Driver interface {
	// Draw shows f at the given brightness level in [0, 1].
	Draw(f model.Frame, level float64) error
	// Close blanks the output and releases resources.
	Close() error
}

// Pin is a digital output line. periph's gpio.PinOut satisfies it.
type Pin interface {
	Out(l gpio.Level) error
}

// Fanout draws every frame to each driver in order.
type Fanout []Driver

func (f Fanout) Draw(fr model.Frame, level float64) error {
	var errs []error
	for _, d := range f {
		if err := d.Draw(fr, level); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f Fanout) Close() error {
	var errs []error
	for _, d := range f {
		if err := d.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
