// Package brightness turns analog sensor readings into a display level.
//
// Two strategies exist behind the same Controller interface: Thermal follows
// drift of a temperature proxy away from a learned baseline, Gesture steps
// the level when a finger swipes across four touch channels.
package brightness

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/analog"
)

// Controller owns the current display level.
type Controller interface {
	// Update samples the sensors if the controller's period has elapsed
	// since the last sample.
	Update(now time.Time) error
	// Level is always within the controller's bounds.
	Level() float64
}

// Sampler is a single analog channel. periph's analog.PinADC satisfies it.
type Sampler interface {
	Read() (analog.Sample, error)
}

// Bounds is the allowed level range.
type Bounds struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Clamp limits v to the bounds.
func (b Bounds) Clamp(v float64) float64 {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// Validate rejects inverted or out of range bounds.
func (b Bounds) Validate() error {
	if b.Min < 0 || b.Max > 1 || b.Min > b.Max {
		return fmt.Errorf("brightness bounds [%v, %v] must satisfy 0 <= min <= max <= 1", b.Min, b.Max)
	}
	return nil
}

// Fixed is a Controller that never changes.
type Fixed float64

func (f Fixed) Update(time.Time) error { return nil }
func (f Fixed) Level() float64         { return float64(f) }

// gate reports whether period has elapsed since *last and, if so, moves
// *last to now.
func gate(last *time.Time, now time.Time, period time.Duration) bool {
	if !last.IsZero() && now.Sub(*last) < period {
		return false
	}
	*last = now
	return true
}
