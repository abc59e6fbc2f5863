package input

import (
	"errors"
	"io"
	"sync"

	"github.com/rs/zerolog"
)

// Poller drains a blocking reader in the background so the main loop can
// poll it one byte at a time.
type Poller struct {
	ch   chan byte
	done chan struct{}
	once sync.Once

	mu  sync.Mutex
	err error
}

// NewPoller starts reading r. Up to backlog bytes are buffered; when the
// loop falls behind the reader blocks.
func NewPoller(r io.Reader, backlog int, log zerolog.Logger) *Poller {
	if backlog < 1 {
		backlog = 1
	}
	p := &Poller{ch: make(chan byte, backlog), done: make(chan struct{})}
	go p.run(r, log)
	return p
}

func (p *Poller) run(r io.Reader, log zerolog.Logger) {
	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		for _, c := range buf[:n] {
			select {
			case p.ch <- c:
			case <-p.done:
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Warn().Err(err).Msg("input reader stopped")
			}
			p.mu.Lock()
			p.err = err
			p.mu.Unlock()
			return
		}
	}
}

// Poll returns the next pending byte or NoInput.
func (p *Poller) Poll() byte {
	select {
	case c := <-p.ch:
		return c
	default:
		return NoInput
	}
}

// Err returns the error that ended the reader, if any.
func (p *Poller) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Close stops delivering bytes. The underlying reader is not closed.
func (p *Poller) Close() {
	p.once.Do(func() { close(p.done) })
}
