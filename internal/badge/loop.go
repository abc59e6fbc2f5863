package badge

import (
	"context"
	"sync"
	"time"

	"github.com/coreman2200/dotbadge/internal/diagnostics"
	"github.com/coreman2200/dotbadge/internal/input"
)

// Step runs one pass of the loop: input poll, refresh cycles, serial drain.
func (a *App) Step(now time.Time) {
	a.drainCommands()

	if a.deps.Buttons != nil {
		if combo, changed := a.deps.Buttons.Poll(); changed {
			if m, ok := combo.Mode(); ok {
				a.Enter(m)
			}
		}
	}

	for i := 0; i < a.opts.CyclesPerPoll; i++ {
		t := now
		if i > 0 {
			t = a.deps.Now()
		}
		a.refresh(t)
	}

	if a.deps.Serial != nil {
		for {
			c := a.deps.Serial.Poll()
			if c == input.NoInput {
				break
			}
			if line, ok := a.lines.Feed(c); ok {
				a.accept(line, a.lines.Dropped())
			}
		}
	}
}

func (a *App) refresh(now time.Time) {
	if err := a.deps.Brightness.Update(now); err != nil && now.Sub(a.lastSensLog) >= time.Second {
		a.lastSensLog = now
		a.log.Debug().Err(err).Msg("brightness update skipped")
		a.deps.Diag.Push(diagnostics.Diagnostic{
			Severity: diagnostics.Warn, Code: diagnostics.SensorFailed, Summary: "Sensor read failed", Detail: err.Error(),
		})
	}

	if a.playing {
		a.player.Tick(now.Sub(a.lastTick).Seconds())
		a.lastTick = now
	}
	if a.test != nil && !now.Before(a.testNext) {
		if a.test.Step(&a.testFrm) {
			a.testNext = now.Add(a.opts.TestPeriod)
		} else {
			a.log.Info().Str("test", string(a.test.Kind())).Msg("self-test done")
			a.deps.Diag.Push(diagnostics.Diagnostic{
				Severity: diagnostics.Info, Code: diagnostics.TestDone, Summary: "Test complete", Detail: string(a.test.Kind()),
			})
			a.test = nil
		}
	}

	if err := a.deps.Driver.Draw(a.Frame(), a.deps.Brightness.Level()); err != nil {
		a.drawErrs++
		if now.Sub(a.lastDrawLog) >= time.Second {
			a.log.Warn().Err(err).Int("failures", a.drawErrs).Msg("draw failed")
			a.deps.Diag.Push(diagnostics.Diagnostic{
				Severity: diagnostics.Err, Code: diagnostics.DrawFailed, Summary: "Driver rejected a frame", Detail: err.Error(),
			})
			a.lastDrawLog = now
			a.drawErrs = 0
		}
	}
}

func (a *App) drainCommands() {
	for {
		select {
		case f := <-a.cmds:
			f()
		default:
			return
		}
	}
}

// ScrollTick is the periodic scroll callback. It may run on any goroutine.
func (a *App) ScrollTick() {
	a.scroller.Advance()
}

// Run starts the scroll callback and steps until ctx is done, then blanks
// the display.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	wg := &sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.scrollLoop(ctx)
	}()
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return a.deps.Driver.Close()
		default:
		}
		a.Step(a.deps.Now())
		if a.opts.StepPause > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(a.opts.StepPause):
			}
		}
	}
}

func (a *App) scrollLoop(ctx context.Context) {
	ticker := time.NewTicker(a.opts.ScrollPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			a.ScrollTick()
		case <-ctx.Done():
			return
		}
	}
}
