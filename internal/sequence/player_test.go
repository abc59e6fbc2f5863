package sequence

import (
	"testing"

	"github.com/coreman2200/dotbadge/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frames(n int) []model.Frame {
	out := make([]model.Frame, n)
	for i := range out {
		out[i][0] = byte(i)
	}
	return out
}

func TestPlayerRunsToEnd(t *testing.T) {
	var seen []int
	done := 0
	p := NewPlayer(Hooks{
		Frame: func(i int) { seen = append(seen, i) },
		Done:  func() { done++ },
	})
	require.NoError(t, p.Load(Program{Name: "intro", FPS: 4, Frames: frames(3)}))
	assert.Equal(t, Idle, p.State)

	p.Start()
	assert.Equal(t, Running, p.State)
	p.Tick(0.1) // t=0.1 -> 0
	assert.Equal(t, 0, p.Index())
	p.Tick(0.2) // t=0.3 -> 1
	assert.Equal(t, 1, p.Index())
	assert.Equal(t, byte(1), p.Frame()[0])
	p.Tick(0.25) // t=0.55 -> 2
	assert.Equal(t, 2, p.Index())
	assert.Equal(t, 0, done)

	p.Tick(0.25) // t=0.8 -> past end
	assert.Equal(t, Idle, p.State)
	assert.Equal(t, 2, p.Index(), "holds last frame")
	assert.Equal(t, 1, done)
	assert.Equal(t, []int{0, 1, 2}, seen)

	p.Tick(1)
	assert.Equal(t, 1, done, "idle player ignores ticks")
}

func TestPlayerSkipsFramesOnLargeTick(t *testing.T) {
	var seen []int
	p := NewPlayer(Hooks{Frame: func(i int) { seen = append(seen, i) }})
	require.NoError(t, p.Load(Program{FPS: 10, Frames: frames(10)}))
	p.Start()
	p.Tick(0.55)
	assert.Equal(t, 5, p.Index())
	assert.Equal(t, []int{0, 5}, seen)
}

func TestPlayerLoop(t *testing.T) {
	done := false
	p := NewPlayer(Hooks{Done: func() { done = true }})
	require.NoError(t, p.Load(Program{FPS: 2, Loop: true, Frames: frames(2)}))
	p.Start()
	p.Tick(1.25) // wraps to t=0.25
	assert.Equal(t, Running, p.State)
	assert.Equal(t, 0, p.Index())
	p.Tick(0.5)
	assert.Equal(t, 1, p.Index())
	assert.False(t, done)
}

func TestPlayerStop(t *testing.T) {
	done := false
	p := NewPlayer(Hooks{Done: func() { done = true }})
	require.NoError(t, p.Load(Program{FPS: 2, Frames: frames(4)}))
	p.Start()
	p.Tick(1)
	p.Stop()
	assert.Equal(t, Idle, p.State)
	assert.Equal(t, 0, p.Index())
	assert.False(t, done)
}

func TestPlayerLoadRejects(t *testing.T) {
	p := NewPlayer(Hooks{})
	assert.Error(t, p.Load(Program{FPS: 5}))
	assert.Error(t, p.Load(Program{FPS: 0, Frames: frames(1)}))
	assert.Equal(t, model.Frame{}, p.Frame())
	p.Start()
	assert.Equal(t, Idle, p.State)
}
