// Package scroll implements the sliding window of slices shown on the badge
// and the scroller that feeds it characters from a text source.
package scroll

import (
	"github.com/coreman2200/dotbadge/internal/font"
	"github.com/coreman2200/dotbadge/internal/model"
)

const (
	// Capacity is the number of visible slices.
	Capacity = model.Rows
	// pendingCap bounds the queue of slices waiting to scroll in.
	pendingCap = 2 * font.MaxWidth
)

// Buffer is a fixed window of slices plus a small queue of slices that
// have been appended but not yet scrolled into view. The zero value is an
// empty, blank buffer.
type Buffer struct {
	window  model.Frame
	pending [pendingCap]byte
	head    int
	n       int
}

// Len is always Capacity.
func (b *Buffer) Len() int { return len(b.window) }

// Pending returns how many slices are queued behind the window.
func (b *Buffer) Pending() int { return b.n }

// Window returns a copy of the visible slices, head first.
func (b *Buffer) Window() model.Frame { return b.window }

// Advance shifts the window one slice toward the head. The tail takes the
// next pending slice, or a blank one when the queue is empty.
func (b *Buffer) Advance() {
	copy(b.window[:], b.window[1:])
	var next byte
	if b.n > 0 {
		next = b.pending[b.head]
		b.head = (b.head + 1) % pendingCap
		b.n--
	}
	b.window[Capacity-1] = next
}

// Append queues the slices of g. Slices that do not fit are dropped.
func (b *Buffer) Append(g font.Glyph) {
	for i := 0; i < g.Width(); i++ {
		if b.n == pendingCap {
			return
		}
		b.pending[(b.head+b.n)%pendingCap] = g.Slice(i)
		b.n++
	}
}

// Seed clears the window and queue and loads g as the only character.
func (b *Buffer) Seed(g font.Glyph) {
	*b = Buffer{}
	b.Append(g)
}
