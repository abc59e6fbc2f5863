package sequence

import (
	"errors"
	"fmt"
	"math"

	"github.com/coreman2200/dotbadge/internal/model"
)

// NewPlayer constructs a Player with provided hooks.
func NewPlayer(h Hooks) *Player {
	return &Player{
		State: Idle,
		hooks: h,
	}
}

// Load replaces the current program. Resets time and state to Idle.
func (p *Player) Load(prog Program) error {
	if len(prog.Frames) == 0 {
		return errors.New("program has no frames")
	}
	if prog.FPS <= 0 || math.IsInf(prog.FPS, 0) || math.IsNaN(prog.FPS) {
		return fmt.Errorf("program %q: fps must be positive, got %v", prog.Name, prog.FPS)
	}
	p.prog = prog
	p.nowS = 0
	p.idx = 0
	p.State = Idle
	return nil
}

// Program returns the loaded program.
func (p *Player) Program() Program { return p.prog }

// Start rewinds and moves to Running.
func (p *Player) Start() {
	if len(p.prog.Frames) == 0 {
		return
	}
	p.nowS = 0
	p.idx = 0
	p.State = Running
	if p.hooks.Frame != nil {
		p.hooks.Frame(0)
	}
}

// Stop halts playback without firing Done.
func (p *Player) Stop() {
	p.State = Idle
	p.nowS = 0
	p.idx = 0
}

// Index returns the current frame index.
func (p *Player) Index() int { return p.idx }

// Frame returns the current frame; blank when nothing is loaded.
func (p *Player) Frame() model.Frame {
	if len(p.prog.Frames) == 0 {
		return model.Frame{}
	}
	return p.prog.Frames[p.idx]
}

// Tick advances playback by dt seconds. A non-looping program holds its last
// frame, goes Idle and fires Done.
func (p *Player) Tick(dt float64) {
	if p.State != Running || dt <= 0 {
		return
	}
	p.nowS += dt

	n := len(p.prog.Frames)
	idx := int(math.Floor(p.nowS * p.prog.FPS))
	done := false
	if idx >= n {
		if p.prog.Loop {
			p.nowS = math.Mod(p.nowS, p.prog.Duration())
			idx = int(math.Floor(p.nowS*p.prog.FPS)) % n
		} else {
			idx = n - 1
			done = true
		}
	}
	if idx != p.idx {
		p.idx = idx
		if p.hooks.Frame != nil {
			p.hooks.Frame(idx)
		}
	}
	if done {
		p.State = Idle
		if p.hooks.Done != nil {
			p.hooks.Done()
		}
	}
}
