// Package badge owns the display state and runs the polling loop.
package badge

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/coreman2200/dotbadge/internal/brightness"
	"github.com/coreman2200/dotbadge/internal/diagnostics"
	"github.com/coreman2200/dotbadge/internal/input"
	"github.com/coreman2200/dotbadge/internal/led"
	"github.com/coreman2200/dotbadge/internal/model"
	"github.com/coreman2200/dotbadge/internal/scroll"
	"github.com/coreman2200/dotbadge/internal/selftest"
	"github.com/coreman2200/dotbadge/internal/sequence"
	"github.com/coreman2200/dotbadge/internal/store"
)

// Sources are the three strings the badge can show.
type Sources struct {
	User   string
	Preset string
	Easter string
}

// For returns the source shown in mode m.
func (s Sources) For(m model.Mode) string {
	switch m {
	case model.User:
		return s.User
	case model.Preset:
		return s.Preset
	case model.Easter:
		return s.Easter
	}
	return s.User
}

// Options tune the loop. Zero values other than Spacing take defaults.
type Options struct {
	Sources       Sources
	Initial       model.Mode
	Capacity      int           // longest user line, lead-in included
	Spacing       int           // blank slices between glyphs
	ScrollPeriod  time.Duration // scroll callback period
	CyclesPerPoll int           // refreshes between input polls
	TestPeriod    time.Duration // time each self-test frame is shown
	StepPause     time.Duration // sleep between steps for drivers that do not pace themselves
	Video         *sequence.Program
	Banner        string
}

const (
	DefaultCapacity      = 127
	DefaultScrollPeriod  = 100 * time.Millisecond
	DefaultCyclesPerPoll = 100
	DefaultTestPeriod    = 250 * time.Millisecond
)

func (o *Options) defaults() {
	if o.Capacity <= 0 {
		o.Capacity = DefaultCapacity
	}
	if o.ScrollPeriod <= 0 {
		o.ScrollPeriod = DefaultScrollPeriod
	}
	if o.CyclesPerPoll <= 0 {
		o.CyclesPerPoll = DefaultCyclesPerPoll
	}
	if o.TestPeriod <= 0 {
		o.TestPeriod = DefaultTestPeriod
	}
}

// Buttons reports changes of the pressed combination.
type Buttons interface {
	Poll() (input.Combo, bool)
}

// Bytes yields pending input bytes, input.NoInput when there are none.
type Bytes interface {
	Poll() byte
}

// Store persists the user string.
type Store interface {
	ReadString(capacity int) (string, error)
	WriteString(s string) error
}

// Deps are the collaborators of an App. Only Driver is required.
type Deps struct {
	Driver     led.Driver
	Brightness brightness.Controller
	Buttons    Buttons
	Serial     Bytes
	Store      Store
	Diag       diagnostics.Sink
	Console    io.Writer
	Log        zerolog.Logger
	Now        func() time.Time
	// OnMode is told about every mode change.
	OnMode func(m model.Mode)
}

// App is the badge. Step and the methods it calls run on the loop
// goroutine; only the scroller is shared with the scroll callback.
type App struct {
	opts Options
	deps Deps
	log  zerolog.Logger

	mode     model.Mode
	sources  Sources
	scroller *scroll.Scroller
	player   *sequence.Player
	playing  bool
	lastTick time.Time
	lines    *input.LineReader

	test     *selftest.Runner
	testFrm  model.Frame
	testNext time.Time

	cmds chan func()

	drawErrs    int
	lastDrawLog time.Time
	lastSensLog time.Time
}

// New builds an App, restores the stored user string and enters the
// initial mode.
func New(opts Options, deps Deps) (*App, error) {
	if deps.Driver == nil {
		return nil, errors.New("badge: no driver")
	}
	opts.defaults()
	if deps.Brightness == nil {
		deps.Brightness = brightness.Fixed(1)
	}
	if deps.Diag == nil {
		deps.Diag = diagnostics.Discard{}
	}
	if deps.Console == nil {
		deps.Console = io.Discard
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	a := &App{
		opts:     opts,
		deps:     deps,
		log:      deps.Log,
		sources:  opts.Sources,
		scroller: scroll.NewScroller(opts.Sources.For(opts.Initial), opts.Spacing),
		lines:    input.NewLineReader(opts.Capacity),
		cmds:     make(chan func(), 16),
	}
	if opts.Video != nil {
		a.player = sequence.NewPlayer(sequence.Hooks{Done: a.videoDone})
		if err := a.player.Load(*opts.Video); err != nil {
			return nil, fmt.Errorf("badge: video: %w", err)
		}
	}
	a.restore()
	a.Enter(opts.Initial)
	return a, nil
}

func (a *App) restore() {
	if a.deps.Store == nil {
		return
	}
	s, err := a.deps.Store.ReadString(a.opts.Capacity)
	switch {
	case errors.Is(err, store.ErrBlank):
		a.log.Info().Msg("no stored text; using default")
	case err != nil:
		a.log.Warn().Err(err).Msg("stored text unreadable; using default")
	default:
		a.sources.User = s
		a.log.Info().Str("text", s).Msg("restored stored text")
	}
}

func (a *App) Mode() model.Mode           { return a.mode }
func (a *App) Sources() Sources           { return a.sources }
func (a *App) Scroller() *scroll.Scroller { return a.scroller }
func (a *App) Playing() bool              { return a.playing }

// Enter switches to mode m. The new source always starts from its first
// character.
func (a *App) Enter(m model.Mode) {
	a.mode = m
	if a.playing {
		a.player.Stop()
		a.playing = false
	}
	a.scroller.Seed(a.sources.For(m))

	switch m {
	case model.Preset:
		fmt.Fprintln(a.deps.Console, a.opts.Banner)
	case model.Easter:
		if a.player != nil {
			a.player.Start()
			a.playing = true
			a.lastTick = a.deps.Now()
		}
	case model.User:
	}

	a.log.Info().Str("mode", m.String()).Bool("video", a.playing).Msg("mode")
	a.deps.Diag.Push(diagnostics.Diagnostic{
		Severity: diagnostics.Info, Code: diagnostics.ModeChanged,
		Summary:  "Mode changed", Detail: m.String(),
	})
	if a.deps.OnMode != nil {
		a.deps.OnMode(m)
	}
}

func (a *App) videoDone() {
	a.playing = false
	a.scroller.Seed(a.sources.For(a.mode))
	a.log.Debug().Msg("video finished")
}

// SetUser makes s the user string, exactly as a line received over serial.
func (a *App) SetUser(s string) {
	lr := input.NewLineReader(a.opts.Capacity)
	for i := 0; i < len(s); i++ {
		lr.Feed(s[i])
	}
	line, _ := lr.Feed('\n')
	a.accept(line, lr.Dropped())
}

func (a *App) accept(line string, dropped bool) {
	a.sources.User = line
	fmt.Fprintf(a.deps.Console, "Displaying %q\n", line)
	if dropped {
		a.log.Warn().Int("capacity", a.opts.Capacity).Msg("line truncated")
		a.deps.Diag.Push(diagnostics.Diagnostic{
			Severity: diagnostics.Warn, Code: diagnostics.TextTruncated,
			Summary:  "Line longer than the text buffer was cut",
			Evidence: map[string]any{"capacity": a.opts.Capacity},
		})
	}

	if a.deps.Store != nil {
		if err := a.deps.Store.WriteString(line); err != nil {
			a.log.Error().Err(err).Msg("persisting text failed")
			a.deps.Diag.Push(diagnostics.Diagnostic{
				Severity: diagnostics.Err, Code: diagnostics.StoreWriteFailed,
				Summary:  "Text shown but not saved", Detail: err.Error(),
			})
		} else {
			a.log.Info().Int("bytes", len(line)+1).Msg("text saved")
		}
	}

	if a.mode == model.User {
		a.scroller.Replace(line)
	}
	a.deps.Diag.Push(diagnostics.Diagnostic{
		Severity: diagnostics.Info, Code: diagnostics.TextUpdated, Summary: "User text updated", Detail: line,
	})
}

// RunTest shows a self-test pattern until it completes.
func (a *App) RunTest(kind selftest.Kind) {
	a.test = selftest.NewRunner(selftest.Plan{Kind: kind})
	a.testNext = time.Time{}
	a.log.Info().Str("test", string(kind)).Msg("self-test")
	a.deps.Diag.Push(diagnostics.Diagnostic{
		Severity: diagnostics.Info, Code: diagnostics.TestRunning, Summary: "Running test", Detail: string(kind),
	})
}

// Testing reports whether a self-test is in progress.
func (a *App) Testing() bool { return a.test != nil }

// Do queues f to run on the loop goroutine. It is safe to call from any
// goroutine and drops f when the queue is full.
func (a *App) Do(f func()) bool {
	select {
	case a.cmds <- f:
		return true
	default:
		return false
	}
}

// Frame returns what the display should show now.
func (a *App) Frame() model.Frame {
	switch {
	case a.test != nil:
		return a.testFrm
	case a.playing:
		return a.player.Frame()
	}
	return a.scroller.Window()
}
