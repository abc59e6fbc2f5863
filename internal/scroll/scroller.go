package scroll

import (
	"sync"

	"github.com/coreman2200/dotbadge/internal/font"
	"github.com/coreman2200/dotbadge/internal/model"
)

// DefaultSpacing is the number of blank slices between characters.
const DefaultSpacing = 2

// Scroller feeds a Buffer from a text source. Advance is called from the
// scroll timer while the render loop reads Window; both go through mu.
type Scroller struct {
	mu      sync.Mutex
	buf     Buffer
	text    string
	idx     int
	count   int
	width   int
	spacing int
}

// NewScroller returns a scroller seeded with text.
func NewScroller(text string, spacing int) *Scroller {
	if spacing < 0 {
		spacing = 0
	}
	s := &Scroller{spacing: spacing}
	s.Seed(text)
	return s
}

// Seed switches to text, restarting at its first character with the
// scroll counter at zero.
func (s *Scroller) Seed(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.text = orBlank(text)
	s.idx = 0
	s.count = 0
	g := font.Lookup(s.text[0])
	s.width = g.Width()
	s.buf.Seed(g)
}

// Replace swaps the text source in place. Whatever is on screen keeps
// scrolling and the next character fetched is the first of text.
func (s *Scroller) Replace(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.text = orBlank(text)
	s.idx = -1
}

// Advance moves the window one slice and fetches the next character once
// the current one and its spacing have been shifted in.
func (s *Scroller) Advance() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf.Advance()
	s.count++
	if s.count < s.width+s.spacing {
		return
	}
	s.idx = (s.idx + 1) % len(s.text)
	g := font.Lookup(s.text[s.idx])
	s.buf.Append(g)
	s.width = g.Width()
	s.count = 0
}

// Window returns the visible slices.
func (s *Scroller) Window() model.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Window()
}

// Position returns the index of the last fetched character and the number
// of ticks since it was fetched.
func (s *Scroller) Position() (idx, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.idx, s.count
}

// Text returns the current source.
func (s *Scroller) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// Len reports the window length.
func (s *Scroller) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Len()
}

func orBlank(text string) string {
	if text == "" {
		return " "
	}
	return text
}
