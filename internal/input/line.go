package input

// NoInput is the sentinel a poll returns when no byte is pending.
const NoInput byte = 0xFE

// LeadIn is prepended to every captured line so the text scrolls in after a
// blank column.
const LeadIn = ' '

// LineReader assembles bytes into newline-terminated lines of bounded size.
type LineReader struct {
	buf       []byte
	capacity  int
	truncated bool
	dropped   bool
}

// NewLineReader returns a reader producing lines of at most capacity bytes,
// lead-in included.
func NewLineReader(capacity int) *LineReader {
	if capacity < 1 {
		capacity = 1
	}
	lr := &LineReader{capacity: capacity, buf: make([]byte, 0, capacity)}
	lr.reset()
	return lr
}

func (lr *LineReader) reset() {
	lr.buf = append(lr.buf[:0], LeadIn)
	lr.truncated = false
}

// Feed consumes one byte. It returns the finished line and true when c ends
// a line. Bytes past the capacity are dropped.
func (lr *LineReader) Feed(c byte) (string, bool) {
	switch c {
	case NoInput, '\r':
		return "", false
	case '\n':
		line := string(lr.buf)
		lr.dropped = lr.truncated
		lr.reset()
		return line, true
	}
	if len(lr.buf) >= lr.capacity {
		lr.truncated = true
		return "", false
	}
	lr.buf = append(lr.buf, c)
	return "", false
}

// Truncated reports whether the line in progress has dropped bytes.
func (lr *LineReader) Truncated() bool { return lr.truncated }

// Dropped reports whether the last completed line was cut to capacity.
func (lr *LineReader) Dropped() bool { return lr.dropped }

// Pending returns the bytes captured so far, lead-in included.
func (lr *LineReader) Pending() int { return len(lr.buf) }
