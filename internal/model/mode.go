package model

import "fmt"

// Mode selects which text source drives the scroller.
type Mode uint8

const (
	User Mode = iota
	Preset
	Easter
)

// Modes lists every display mode in order.
var Modes = [...]Mode{User, Preset, Easter}

func (m Mode) String() string {
	switch m {
	case User:
		return "user"
	case Preset:
		return "preset"
	case Easter:
		return "easter"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if m.String() == s {
			return m, nil
		}
	}
	return User, fmt.Errorf("unknown display mode %q", s)
}
