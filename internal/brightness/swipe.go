package brightness

import "time"

// Channels is the number of touch pads in a swipe strip.
const Channels = 4

// Stage is the progress of a swipe across the pads.
type Stage int8

const (
	Idle Stage = iota - 1
	Stage0
	Stage1
	Stage2
	Stage3
)

func (s Stage) String() string {
	switch s {
	case Idle:
		return "idle"
	case Stage0:
		return "stage0"
	case Stage1:
		return "stage1"
	case Stage2:
		return "stage2"
	case Stage3:
		return "stage3"
	}
	return "unknown"
}

// Direction of a completed swipe.
type Direction int8

const (
	None Direction = iota
	// Forward runs from pad 0 to pad 3.
	Forward
	// Reverse runs from pad 3 to pad 0.
	Reverse
)

// Swipe recognises a finger moving pad by pad across the strip. It advances
// at most one stage per sample, measures the timeout from the first pad and
// reports a completed swipe exactly once; after completion or a timeout it
// waits for every pad to be released before arming again.
type Swipe struct {
	Timeout time.Duration

	stage   Stage
	dir     Direction
	start   time.Time
	latched bool
}

// NewSwipe returns an idle recogniser.
func NewSwipe(timeout time.Duration) *Swipe {
	return &Swipe{Timeout: timeout, stage: Idle}
}

// Stage returns the current progress.
func (s *Swipe) Stage() Stage { return s.stage }

// pad maps a stage to the pad expected at that stage for the current
// direction.
func (s *Swipe) pad(st Stage) int {
	if s.dir == Reverse {
		return Channels - 1 - int(st)
	}
	return int(st)
}

// Step feeds one sample of pad states and returns the direction of a swipe
// completed by this sample, or None.
func (s *Swipe) Step(touched [Channels]bool, now time.Time) Direction {
	held := false
	for _, t := range touched {
		held = held || t
	}
	if !held {
		s.reset()
		s.latched = false
		return None
	}
	if s.latched {
		return None
	}

	if s.stage == Idle {
		switch {
		case touched[0] && !touched[Channels-1]:
			s.dir = Forward
		case touched[Channels-1] && !touched[0]:
			s.dir = Reverse
		default:
			return None
		}
		s.stage = Stage0
		s.start = now
		return None
	}

	if s.Timeout > 0 && now.Sub(s.start) > s.Timeout {
		s.reset()
		s.latched = true
		return None
	}

	next := s.stage + 1
	if !touched[s.pad(next)] {
		return None
	}
	s.stage = next
	if s.stage < Stage3 {
		return None
	}
	dir := s.dir
	s.reset()
	s.latched = true
	return dir
}

func (s *Swipe) reset() {
	s.stage = Idle
	s.dir = None
	s.start = time.Time{}
}
