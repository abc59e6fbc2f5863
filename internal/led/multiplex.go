package led

import (
	"errors"
	"fmt"
	"time"

	"github.com/coreman2200/dotbadge/internal/model"
	"periph.io/x/conn/v3/gpio"
)

// Hold blocks for d. The default spins on the monotonic clock since the
// slots are far shorter than the scheduler's sleep granularity.
type Hold func(d time.Duration)

// BusyWait spins until d has elapsed.
func BusyWait(d time.Duration) {
	if d <= 0 {
		return
	}
	start := time.Now()
	for time.Since(start) < d {
	}
}

// DefaultSlot is the time budget of one row slot.
const DefaultSlot = 100 * time.Microsecond

// Multiplex scans a row-multiplexed matrix directly from GPIO. Row lines are
// active low and sink the five column lines, which are active high.
type Multiplex struct {
	rows [model.Rows]Pin
	cols [model.Cols]Pin
	slot time.Duration
	hold Hold
}

// NewMultiplex drives the matrix through the given lines. A nil hold uses
// BusyWait.
func NewMultiplex(rows []Pin, cols []Pin, slot time.Duration, hold Hold) (*Multiplex, error) {
	if len(rows) != model.Rows {
		return nil, fmt.Errorf("multiplex: need %d row pins, got %d", model.Rows, len(rows))
	}
	if len(cols) != model.Cols {
		return nil, fmt.Errorf("multiplex: need %d column pins, got %d", model.Cols, len(cols))
	}
	if slot <= 0 {
		slot = DefaultSlot
	}
	if hold == nil {
		hold = BusyWait
	}
	m := &Multiplex{slot: slot, hold: hold}
	copy(m.rows[:], rows)
	copy(m.cols[:], cols)
	for i, p := range m.rows {
		if p == nil {
			return nil, fmt.Errorf("multiplex: row %d has no pin", i)
		}
	}
	for i, p := range m.cols {
		if p == nil {
			return nil, fmt.Errorf("multiplex: column %d has no pin", i)
		}
	}
	return m, m.blank()
}

// Draw performs one full refresh: every row slot is lit for slot*level and
// dark for the remainder.
func (m *Multiplex) Draw(f model.Frame, level float64) error {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	on := time.Duration(float64(m.slot) * level)
	off := m.slot - on

	for r, row := range m.rows {
		for c, col := range m.cols {
			if err := col.Out(gpio.Level(f.Lit(r, c))); err != nil {
				return fmt.Errorf("multiplex: column %d: %w", c, err)
			}
		}
		if on > 0 {
			if err := row.Out(gpio.Low); err != nil {
				return fmt.Errorf("multiplex: row %d: %w", r, err)
			}
			m.hold(on)
			if err := row.Out(gpio.High); err != nil {
				return fmt.Errorf("multiplex: row %d: %w", r, err)
			}
		}
		m.hold(off)
	}
	return nil
}

// Close releases every row and drops every column.
func (m *Multiplex) Close() error {
	return m.blank()
}

func (m *Multiplex) blank() error {
	var errs []error
	for _, p := range m.rows {
		errs = append(errs, p.Out(gpio.High))
	}
	for _, p := range m.cols {
		errs = append(errs, p.Out(gpio.Low))
	}
	return errors.Join(errs...)
}
