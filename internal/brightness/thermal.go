package brightness

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
)

// ThermalConfig tunes the drift-following controller. Readings are raw ADC
// counts.
type ThermalConfig struct {
	Bounds          `yaml:",inline"`
	Initial         float64       `yaml:"initial"`
	Base            float64       `yaml:"base"`             // fraction of Max used as resting level
	Gain            float64       `yaml:"gain"`             // level per count of deviation
	Window          int           `yaml:"window"`           // moving average length
	BaselineSamples int           `yaml:"baseline_samples"` // averages used to learn the baseline
	DimBlend        float64       `yaml:"dim_blend"`        // weight of the target when dimming
	BrightBlend     float64       `yaml:"bright_blend"`     // weight of the target when brightening
	Period          time.Duration `yaml:"period"`
	DebugEvery      time.Duration `yaml:"debug_every"`
}

// DefaultThermalConfig dims fast and brightens slowly so the display
// does not visibly flicker.
func DefaultThermalConfig() ThermalConfig {
	return ThermalConfig{
		Bounds:          Bounds{Min: 0.15, Max: 1.0},
		Initial:         0.05,
		Base:            0.15,
		Gain:            0.25,
		Window:          10,
		BaselineSamples: 200,
		DimBlend:        0.4,
		BrightBlend:     0.02,
		Period:          50 * time.Millisecond,
		DebugEvery:      time.Second,
	}
}

// Validate checks the configuration.
func (c ThermalConfig) Validate() error {
	if err := c.Bounds.Validate(); err != nil {
		return err
	}
	if c.Window < 1 {
		return fmt.Errorf("thermal window must be at least 1, got %d", c.Window)
	}
	if c.BaselineSamples < 1 {
		return fmt.Errorf("thermal baseline_samples must be at least 1, got %d", c.BaselineSamples)
	}
	if c.DimBlend < 0 || c.DimBlend > 1 || c.BrightBlend < 0 || c.BrightBlend > 1 {
		return fmt.Errorf("thermal blends must be within [0, 1]")
	}
	return nil
}

// Thermal raises brightness as a temperature proxy drifts away from the
// baseline learned at power-up, in either direction.
type Thermal struct {
	cfg ThermalConfig
	src Sampler
	log zerolog.Logger

	history []float64
	next    int
	filled  bool

	baseSum  float64
	baseN    int
	baseline float64

	level     float64
	last      time.Time
	lastDebug time.Time
}

// NewThermal returns a controller reading src.
func NewThermal(cfg ThermalConfig, src Sampler, log zerolog.Logger) (*Thermal, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Thermal{
		cfg:     cfg,
		src:     src,
		log:     log,
		history: make([]float64, cfg.Window),
		level:   cfg.Clamp(cfg.Initial),
	}, nil
}

func (t *Thermal) Level() float64 { return t.level }

// Baseline returns the learned baseline and whether learning has finished.
func (t *Thermal) Baseline() (float64, bool) {
	return t.baseline, t.baseN >= t.cfg.BaselineSamples
}

func (t *Thermal) Update(now time.Time) error {
	if !gate(&t.last, now, t.cfg.Period) {
		return nil
	}
	s, err := t.src.Read()
	if err != nil {
		return fmt.Errorf("thermal: read sensor: %w", err)
	}

	avg := t.push(float64(s.Raw))
	if t.baseN < t.cfg.BaselineSamples {
		t.baseSum += avg
		t.baseN++
		t.baseline = t.baseSum / float64(t.baseN)
		if t.baseN == t.cfg.BaselineSamples {
			t.log.Info().Float64("baseline", t.baseline).Msg("thermal baseline learned")
		}
	}

	diff := math.Abs(avg - t.baseline)
	target := t.cfg.Clamp(t.cfg.Max*t.cfg.Base + diff*t.cfg.Gain)
	if target < t.level {
		t.level = t.level*(1-t.cfg.DimBlend) + target*t.cfg.DimBlend
	} else {
		t.level = t.level*(1-t.cfg.BrightBlend) + target*t.cfg.BrightBlend
	}
	t.level = t.cfg.Clamp(t.level)

	if t.cfg.DebugEvery > 0 && gate(&t.lastDebug, now, t.cfg.DebugEvery) {
		t.log.Debug().
			Float64("adc", avg).
			Float64("baseline", t.baseline).
			Float64("diff", diff).
			Float64("level", t.level).
			Msg("thermal")
	}
	return nil
}

// push adds a sample to the moving window and returns the current mean.
func (t *Thermal) push(v float64) float64 {
	t.history[t.next] = v
	t.next = (t.next + 1) % len(t.history)
	if t.next == 0 {
		t.filled = true
	}
	n := t.next
	if t.filled {
		n = len(t.history)
	}
	sum := 0.0
	for _, h := range t.history[:n] {
		sum += h
	}
	return sum / float64(n)
}
