package brightness

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// GestureConfig tunes the touch swipe controller. Threshold is in raw ADC
// counts below the baseline.
type GestureConfig struct {
	Bounds    `yaml:",inline"`
	Initial   float64       `yaml:"initial"`
	Step      float64       `yaml:"step"`
	Threshold float64       `yaml:"threshold"`
	Decay     float64       `yaml:"decay"` // baseline weight of each untouched reading
	Timeout   time.Duration `yaml:"timeout"`
	Period    time.Duration `yaml:"period"`
}

func DefaultGestureConfig() GestureConfig {
	return GestureConfig{
		Bounds:    Bounds{Min: 0.05, Max: 1.0},
		Initial:   0.5,
		Step:      0.1,
		Threshold: 400,
		Decay:     0.01,
		Timeout:   time.Second,
		Period:    20 * time.Millisecond,
	}
}

func (c GestureConfig) Validate() error {
	if err := c.Bounds.Validate(); err != nil {
		return err
	}
	if c.Step <= 0 {
		return fmt.Errorf("gesture step must be positive, got %v", c.Step)
	}
	if c.Threshold <= 0 {
		return fmt.Errorf("gesture threshold must be positive, got %v", c.Threshold)
	}
	if c.Decay < 0 || c.Decay > 1 {
		return fmt.Errorf("gesture decay must be within [0, 1], got %v", c.Decay)
	}
	return nil
}

// Gesture steps brightness down on a forward swipe and up on a reverse one.
type Gesture struct {
	cfg   GestureConfig
	pads  [Channels]Sampler
	swipe *Swipe
	log   zerolog.Logger

	baseline [Channels]float64
	primed   bool
	level    float64
	last     time.Time
}

// NewGesture returns a controller reading one sampler per pad, ordered from
// pad 0 to pad 3.
func NewGesture(cfg GestureConfig, pads [Channels]Sampler, log zerolog.Logger) (*Gesture, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for i, p := range pads {
		if p == nil {
			return nil, fmt.Errorf("gesture: pad %d has no sampler", i)
		}
	}
	return &Gesture{
		cfg:   cfg,
		pads:  pads,
		swipe: NewSwipe(cfg.Timeout),
		log:   log,
		level: cfg.Clamp(cfg.Initial),
	}, nil
}

func (g *Gesture) Level() float64 { return g.level }

// Stage exposes the swipe progress.
func (g *Gesture) Stage() Stage { return g.swipe.Stage() }

func (g *Gesture) Update(now time.Time) error {
	if !gate(&g.last, now, g.cfg.Period) {
		return nil
	}
	var raw [Channels]float64
	for i, p := range g.pads {
		s, err := p.Read()
		if err != nil {
			return fmt.Errorf("gesture: read pad %d: %w", i, err)
		}
		raw[i] = float64(s.Raw)
	}
	if !g.primed {
		g.baseline = raw
		g.primed = true
		return nil
	}

	var touched [Channels]bool
	held := false
	for i := range raw {
		touched[i] = g.baseline[i]-raw[i] > g.cfg.Threshold
		held = held || touched[i]
	}
	if !held {
		for i := range raw {
			g.baseline[i] += (raw[i] - g.baseline[i]) * g.cfg.Decay
		}
	}

	switch g.swipe.Step(touched, now) {
	case Forward:
		g.level = g.cfg.Clamp(g.level - g.cfg.Step)
		g.log.Debug().Float64("level", g.level).Msg("swipe forward")
	case Reverse:
		g.level = g.cfg.Clamp(g.level + g.cfg.Step)
		g.log.Debug().Float64("level", g.level).Msg("swipe reverse")
	case None:
	}
	return nil
}
