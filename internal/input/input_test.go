package input

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/coreman2200/dotbadge/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

func TestButtonsEdges(t *testing.T) {
	pa := &gpiotest.Pin{N: "PB1", L: gpio.High}
	pb := &gpiotest.Pin{N: "PB2", L: gpio.High}
	bt := NewButtons(pa, pb)

	steps := []struct {
		a, b    gpio.Level
		combo   Combo
		changed bool
	}{
		{gpio.High, gpio.High, None, false},
		{gpio.Low, gpio.High, A, true},
		{gpio.Low, gpio.High, A, false},
		{gpio.Low, gpio.Low, Both, true},
		{gpio.High, gpio.Low, B, true},
		{gpio.High, gpio.Low, B, false},
		{gpio.High, gpio.High, None, true},
		{gpio.High, gpio.Low, B, true},
	}
	for i, s := range steps {
		pa.L, pb.L = s.a, s.b
		c, changed := bt.Poll()
		assert.Equal(t, s.combo, c, "step %d", i)
		assert.Equal(t, s.changed, changed, "step %d", i)
	}
}

func TestComboMode(t *testing.T) {
	cases := map[Combo]model.Mode{Both: model.Easter, A: model.Preset, B: model.User}
	for c, want := range cases {
		m, ok := c.Mode()
		assert.True(t, ok, c.String())
		assert.Equal(t, want, m, c.String())
	}
	_, ok := None.Mode()
	assert.False(t, ok)
}

func feed(lr *LineReader, s string) []string {
	var out []string
	for i := 0; i < len(s); i++ {
		if line, ok := lr.Feed(s[i]); ok {
			out = append(out, line)
		}
	}
	return out
}

func TestLineReader(t *testing.T) {
	lr := NewLineReader(32)
	assert.Equal(t, []string{" hello", " world"}, feed(lr, "hello\r\nwor\xfeld\n"))
	assert.Equal(t, []string{" "}, feed(lr, "\n"))
	assert.Equal(t, 1, lr.Pending())
}

func TestLineReaderTruncates(t *testing.T) {
	lr := NewLineReader(8)
	long := strings.Repeat("x", 200)
	lines := feed(lr, long)
	assert.Empty(t, lines)
	assert.True(t, lr.Truncated())
	assert.Equal(t, 8, lr.Pending())

	lines = feed(lr, "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, " xxxxxxx", lines[0])
	assert.False(t, lr.Truncated())
	assert.True(t, lr.Dropped())

	feed(lr, "ok\n")
	assert.False(t, lr.Dropped())
}

type chunkReader struct {
	chunks []string
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if len(c.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, c.chunks[0])
	c.chunks = c.chunks[1:]
	return n, nil
}

func TestPollerDrains(t *testing.T) {
	p := NewPoller(&chunkReader{chunks: []string{"ab", "c\n"}}, 16, zerolog.Nop())
	defer p.Close()

	var got []byte
	deadline := time.Now().Add(2 * time.Second)
	for len(got) < 4 && time.Now().Before(deadline) {
		if c := p.Poll(); c != NoInput {
			got = append(got, c)
		} else {
			time.Sleep(time.Millisecond)
		}
	}
	assert.Equal(t, "abc\n", string(got))
	assert.Eventually(t, func() bool { return p.Err() == io.EOF }, time.Second, time.Millisecond)
	assert.Equal(t, NoInput, p.Poll())
}

func TestPollerEmpty(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	p := NewPoller(r, 4, zerolog.Nop())
	defer p.Close()
	assert.Equal(t, NoInput, p.Poll())
}
