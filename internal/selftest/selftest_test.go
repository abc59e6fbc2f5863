package selftest

import (
	"testing"

	"github.com/coreman2200/dotbadge/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(k Kind) []model.Frame {
	r := NewRunner(Plan{Kind: k})
	var out []model.Frame
	var f model.Frame
	for r.Step(&f) {
		out = append(out, f)
	}
	return out
}

func TestPixelSweepLightsEachOnce(t *testing.T) {
	frames := run(PixelSweep)
	require.Len(t, frames, model.Rows*model.Cols)
	var seen model.Frame
	for _, f := range frames {
		assert.Equal(t, 1, f.Count())
		for i := range f {
			assert.Zero(t, seen[i]&f[i], "pixel lit twice")
			seen[i] |= f[i]
		}
	}
	assert.Equal(t, model.Rows*model.Cols, seen.Count())
}

func TestRowAndColumnSweep(t *testing.T) {
	rows := run(RowSweep)
	require.Len(t, rows, model.Rows)
	for i, f := range rows {
		assert.Equal(t, model.PixelMask, f[i])
		assert.Equal(t, model.Cols, f.Count())
	}

	cols := run(ColumnSweep)
	require.Len(t, cols, model.Cols)
	for c, f := range cols {
		assert.Equal(t, model.Rows, f.Count())
		assert.True(t, f.Lit(0, c))
	}
}

func TestAllOnAndUnknown(t *testing.T) {
	all := run(AllOn)
	require.Len(t, all, 1)
	assert.Equal(t, model.Rows*model.Cols, all[0].Count())
	assert.Empty(t, run(None))
}

func TestStepClearsFrameWhenDone(t *testing.T) {
	r := NewRunner(Plan{Kind: AllOn})
	var f model.Frame
	assert.True(t, r.Step(&f))
	assert.False(t, r.Step(&f))
	assert.Equal(t, model.Frame{}, f)
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseKind("plane_z")
	assert.Error(t, err)
}
