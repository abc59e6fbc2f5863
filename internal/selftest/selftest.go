// Package selftest walks simple patterns across the matrix so every line
// can be checked by eye.
package selftest

import (
	"fmt"

	"github.com/coreman2200/dotbadge/internal/model"
)

type Kind string

const (
	None        Kind = ""
	RowSweep    Kind = "row_sweep"
	ColumnSweep Kind = "column_sweep"
	PixelSweep  Kind = "pixel_sweep"
	AllOn       Kind = "all_on"
)

// Kinds lists the runnable patterns in the order "all" plays them.
var Kinds = []Kind{AllOn, RowSweep, ColumnSweep, PixelSweep}

// ParseKind accepts a pattern name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return None, fmt.Errorf("unknown self-test %q", s)
}

type Plan struct{ Kind Kind }

type Runner struct {
	plan Plan
	step int
}

func NewRunner(plan Plan) *Runner { return &Runner{plan: plan} }
func (r *Runner) Kind() Kind      { return r.plan.Kind }

// Steps returns the number of frames the pattern produces.
func (r *Runner) Steps() int {
	switch r.plan.Kind {
	case RowSweep:
		return model.Rows
	case ColumnSweep:
		return model.Cols
	case PixelSweep:
		return model.Rows * model.Cols
	case AllOn:
		return 1
	}
	return 0
}

// Step fills f; returns false when complete.
func (r *Runner) Step(f *model.Frame) bool {
	*f = model.Frame{}
	if r.step >= r.Steps() {
		return false
	}

	switch r.plan.Kind {
	case RowSweep:
		f[r.step] = model.PixelMask
	case ColumnSweep:
		for row := range f {
			f[row] = 1 << r.step
		}
	case PixelSweep:
		f.Set(r.step/model.Cols, r.step%model.Cols, true)
	case AllOn:
		for row := range f {
			f[row] = model.PixelMask
		}
	}
	r.step++
	return true
}
