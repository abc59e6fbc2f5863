package sequence

import "github.com/coreman2200/dotbadge/internal/model"

// Program is a fixed-rate run of prerendered frames.
type Program struct {
	Name   string        `json:"name"`
	FPS    float64       `json:"fps"`
	Loop   bool          `json:"loop,omitempty"`
	Frames []model.Frame `json:"-"`
}

// Duration of one pass in seconds.
func (p Program) Duration() float64 {
	if p.FPS <= 0 {
		return 0
	}
	return float64(len(p.Frames)) / p.FPS
}

// PlayerState enumerates player states.
type PlayerState string

const (
	Idle    PlayerState = "idle"
	Running PlayerState = "running"
)

// Hooks are callbacks into the owner of the display.
type Hooks struct {
	// Frame fires whenever the visible frame index changes.
	Frame func(idx int)
	// Done fires once when a non-looping program reaches its end.
	Done func()
}

// Player owns the current Program timeline.
type Player struct {
	State PlayerState

	prog Program
	nowS float64 // position within program
	idx  int     // current frame index

	hooks Hooks
}
