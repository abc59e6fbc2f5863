package brightness

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/analog"
)

type fakeSampler struct {
	raw int32
	seq []int32
	err error
	n   int
}

func (f *fakeSampler) Read() (analog.Sample, error) {
	if f.err != nil {
		return analog.Sample{}, f.err
	}
	v := f.raw
	if len(f.seq) > 0 {
		v = f.seq[f.n%len(f.seq)]
	}
	f.n++
	return analog.Sample{Raw: v}, nil
}

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestBoundsClamp(t *testing.T) {
	b := Bounds{Min: 0.15, Max: 0.8}
	assert.Equal(t, 0.15, b.Clamp(-3))
	assert.Equal(t, 0.8, b.Clamp(7))
	assert.Equal(t, 0.5, b.Clamp(0.5))
	assert.NoError(t, b.Validate())
	assert.Error(t, Bounds{Min: 0.9, Max: 0.1}.Validate())
	assert.Error(t, Bounds{Min: 0, Max: 1.5}.Validate())
}

func TestThermalInitialClamped(t *testing.T) {
	th, err := NewThermal(DefaultThermalConfig(), &fakeSampler{raw: 1000}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 0.15, th.Level())
}

func TestThermalGate(t *testing.T) {
	src := &fakeSampler{raw: 1000}
	th, err := NewThermal(DefaultThermalConfig(), src, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, th.Update(epoch))
	require.NoError(t, th.Update(epoch.Add(10*time.Millisecond)))
	require.NoError(t, th.Update(epoch.Add(49*time.Millisecond)))
	assert.Equal(t, 1, src.n)
	require.NoError(t, th.Update(epoch.Add(50*time.Millisecond)))
	assert.Equal(t, 2, src.n)
}

func TestThermalBaselineLearned(t *testing.T) {
	cfg := DefaultThermalConfig()
	th, err := NewThermal(cfg, &fakeSampler{raw: 2000}, zerolog.Nop())
	require.NoError(t, err)

	now := epoch
	for i := 0; i < cfg.BaselineSamples; i++ {
		require.NoError(t, th.Update(now))
		now = now.Add(cfg.Period)
	}
	b, done := th.Baseline()
	assert.True(t, done)
	assert.InDelta(t, 2000, b, 1e-9)
	// no drift: rests at the base level
	assert.InDelta(t, cfg.Max*cfg.Base, th.Level(), 1e-9)
}

func TestThermalBrightensSlowlyAndDimsFast(t *testing.T) {
	cfg := DefaultThermalConfig()
	src := &fakeSampler{raw: 2000}
	th, err := NewThermal(cfg, src, zerolog.Nop())
	require.NoError(t, err)

	now := epoch
	step := func() {
		require.NoError(t, th.Update(now))
		now = now.Add(cfg.Period)
	}
	for i := 0; i < cfg.BaselineSamples; i++ {
		step()
	}
	rest := th.Level()

	src.raw = 2004
	for i := 0; i < cfg.Window; i++ {
		step()
	}
	risen := th.Level()
	assert.Greater(t, risen, rest)
	// target is base + 1.0, so the slow blend should still be far from it
	assert.Less(t, risen, cfg.Max)

	src.raw = 2000
	for i := 0; i < 2*cfg.Window; i++ {
		step()
	}
	assert.Less(t, th.Level(), risen)
	assert.InDelta(t, rest, th.Level(), 0.01)
}

func TestThermalStaysInBounds(t *testing.T) {
	cfg := DefaultThermalConfig()
	cfg.Bounds = Bounds{Min: 0.2, Max: 0.7}
	src := &fakeSampler{seq: []int32{0, 65535, -32768, 32767, 5, 60000}}
	th, err := NewThermal(cfg, src, zerolog.Nop())
	require.NoError(t, err)

	now := epoch
	for i := 0; i < 2000; i++ {
		require.NoError(t, th.Update(now))
		l := th.Level()
		require.GreaterOrEqual(t, l, cfg.Min)
		require.LessOrEqual(t, l, cfg.Max)
		now = now.Add(cfg.Period)
	}
}

func TestThermalReadError(t *testing.T) {
	boom := errors.New("boom")
	th, err := NewThermal(DefaultThermalConfig(), &fakeSampler{err: boom}, zerolog.Nop())
	require.NoError(t, err)
	before := th.Level()
	err = th.Update(epoch)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, before, th.Level())
}

func TestThermalRejectsBadConfig(t *testing.T) {
	cfg := DefaultThermalConfig()
	cfg.Window = 0
	_, err := NewThermal(cfg, &fakeSampler{}, zerolog.Nop())
	assert.Error(t, err)
}

func pads(pp ...bool) [Channels]bool {
	var out [Channels]bool
	copy(out[:], pp)
	return out
}

func TestSwipeForward(t *testing.T) {
	s := NewSwipe(time.Second)
	now := epoch
	var got []Direction
	for _, p := range [][Channels]bool{
		pads(true), pads(false, true), pads(false, false, true), pads(false, false, false, true),
	} {
		got = append(got, s.Step(p, now))
		now = now.Add(50 * time.Millisecond)
	}
	assert.Equal(t, []Direction{None, None, None, Forward}, got)
	assert.Equal(t, Idle, s.Stage())

	// holding the last pad must not fire again
	assert.Equal(t, None, s.Step(pads(false, false, false, true), now))
}

func TestSwipeReverse(t *testing.T) {
	s := NewSwipe(time.Second)
	now := epoch
	var last Direction
	for _, p := range [][Channels]bool{
		pads(false, false, false, true), pads(false, false, true), pads(false, true), pads(true),
	} {
		last = s.Step(p, now)
		now = now.Add(50 * time.Millisecond)
	}
	assert.Equal(t, Reverse, last)
}

func TestSwipeOneStagePerSample(t *testing.T) {
	s := NewSwipe(time.Second)
	assert.Equal(t, None, s.Step(pads(true), epoch))
	// all pads at once only advances one stage
	assert.Equal(t, None, s.Step(pads(true, true, true, true), epoch))
	assert.Equal(t, Stage1, s.Stage())
}

func TestSwipeTimeout(t *testing.T) {
	s := NewSwipe(100 * time.Millisecond)
	now := epoch
	assert.Equal(t, None, s.Step(pads(true), now))
	assert.Equal(t, None, s.Step(pads(false, true), now.Add(50*time.Millisecond)))
	assert.Equal(t, None, s.Step(pads(false, false, true), now.Add(150*time.Millisecond)))
	assert.Equal(t, Idle, s.Stage())
	assert.Equal(t, None, s.Step(pads(false, false, false, true), now.Add(160*time.Millisecond)))
}

func TestSwipeReleaseResets(t *testing.T) {
	s := NewSwipe(time.Second)
	assert.Equal(t, None, s.Step(pads(true), epoch))
	assert.Equal(t, None, s.Step(pads(false, true), epoch))
	assert.Equal(t, None, s.Step(pads(), epoch))
	assert.Equal(t, Idle, s.Stage())
}

type padBank [Channels]*fakeSampler

func newPadBank(raw int32) padBank {
	var b padBank
	for i := range b {
		b[i] = &fakeSampler{raw: raw}
	}
	return b
}

func (b padBank) samplers() [Channels]Sampler {
	var out [Channels]Sampler
	for i, p := range b {
		out[i] = p
	}
	return out
}

func (b padBank) touch(pp ...bool) {
	for i, p := range b {
		p.raw = 1000
		if i < len(pp) && pp[i] {
			p.raw = 200
		}
	}
}

func TestGestureSwipes(t *testing.T) {
	cfg := DefaultGestureConfig()
	bank := newPadBank(1000)
	g, err := NewGesture(cfg, bank.samplers(), zerolog.Nop())
	require.NoError(t, err)

	now := epoch
	step := func(pp ...bool) {
		bank.touch(pp...)
		require.NoError(t, g.Update(now))
		now = now.Add(cfg.Period)
	}
	step() // primes baselines
	start := g.Level()

	step(true)
	step(false, true)
	step(false, false, true)
	step(false, false, false, true)
	step()
	assert.InDelta(t, start-cfg.Step, g.Level(), 1e-9)

	step(false, false, false, true)
	step(false, false, true)
	step(false, true)
	step(true)
	step()
	assert.InDelta(t, start, g.Level(), 1e-9)
}

func TestGestureIncompleteSwipeNoChange(t *testing.T) {
	cfg := DefaultGestureConfig()
	bank := newPadBank(1000)
	g, err := NewGesture(cfg, bank.samplers(), zerolog.Nop())
	require.NoError(t, err)

	now := epoch
	step := func(pp ...bool) {
		bank.touch(pp...)
		require.NoError(t, g.Update(now))
		now = now.Add(cfg.Period)
	}
	step()
	start := g.Level()
	step(true)
	step(false, true)
	step(false, false, true)
	step()
	assert.Equal(t, start, g.Level())
}

func TestGestureClampsAtBounds(t *testing.T) {
	cfg := DefaultGestureConfig()
	cfg.Bounds = Bounds{Min: 0.3, Max: 0.6}
	cfg.Step = 0.25
	bank := newPadBank(1000)
	g, err := NewGesture(cfg, bank.samplers(), zerolog.Nop())
	require.NoError(t, err)

	now := epoch
	step := func(pp ...bool) {
		bank.touch(pp...)
		require.NoError(t, g.Update(now))
		now = now.Add(cfg.Period)
		require.GreaterOrEqual(t, g.Level(), cfg.Min)
		require.LessOrEqual(t, g.Level(), cfg.Max)
	}
	step()
	for i := 0; i < 5; i++ {
		step(true)
		step(false, true)
		step(false, false, true)
		step(false, false, false, true)
		step()
	}
	assert.Equal(t, cfg.Min, g.Level())
	for i := 0; i < 5; i++ {
		step(false, false, false, true)
		step(false, false, true)
		step(false, true)
		step(true)
		step()
	}
	assert.Equal(t, cfg.Max, g.Level())
}

func TestGestureBaselineFrozenWhileTouched(t *testing.T) {
	cfg := DefaultGestureConfig()
	cfg.Decay = 0.5
	bank := newPadBank(1000)
	g, err := NewGesture(cfg, bank.samplers(), zerolog.Nop())
	require.NoError(t, err)

	now := epoch
	bank.touch()
	require.NoError(t, g.Update(now))
	for i := 0; i < 20; i++ {
		now = now.Add(cfg.Period)
		bank.touch(true)
		require.NoError(t, g.Update(now))
	}
	assert.Equal(t, float64(1000), g.baseline[0])
}

func TestGestureNeedsAllPads(t *testing.T) {
	var pp [Channels]Sampler
	_, err := NewGesture(DefaultGestureConfig(), pp, zerolog.Nop())
	assert.Error(t, err)
}

var _ Controller = (*Thermal)(nil)
var _ Controller = (*Gesture)(nil)
var _ Controller = Fixed(0.5)
