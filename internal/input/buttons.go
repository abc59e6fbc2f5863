// Package input collects the badge's two push buttons and its serial text
// line into polled, non-blocking sources.
package input

import (
	"github.com/coreman2200/dotbadge/internal/model"
	"periph.io/x/conn/v3/gpio"
)

// Level is the read side of a GPIO input. periph's gpio.PinIn satisfies it.
type Level interface {
	Read() gpio.Level
}

// Combo is the combined pressed state of both buttons.
type Combo uint8

const (
	None Combo = iota
	A
	B
	Both
)

func (c Combo) String() string {
	switch c {
	case None:
		return "none"
	case A:
		return "a"
	case B:
		return "b"
	case Both:
		return "both"
	}
	return "unknown"
}

// Mode maps a pressed combination to the display mode it selects. None
// selects nothing.
func (c Combo) Mode() (model.Mode, bool) {
	switch c {
	case Both:
		return model.Easter, true
	case A:
		return model.Preset, true
	case B:
		return model.User, true
	case None:
	}
	return 0, false
}

// Buttons reads two active-low buttons and reports changes of the combined
// state.
type Buttons struct {
	a, b Level
	last Combo
}

// NewButtons wraps the two inputs. Both start released.
func NewButtons(a, b Level) *Buttons {
	return &Buttons{a: a, b: b}
}

// Poll samples both inputs and returns the current combination and whether
// it differs from the previous poll.
func (bt *Buttons) Poll() (Combo, bool) {
	var c Combo
	if bt.a.Read() == gpio.Low {
		c |= A
	}
	if bt.b.Read() == gpio.Low {
		c |= B
	}
	changed := c != bt.last
	bt.last = c
	return c, changed
}
