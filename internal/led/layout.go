package led

import "github.com/coreman2200/dotbadge/internal/model"

// Layout maps matrix coordinates onto a linear strip. Row slots are laid
// end to end, Cols pixels each.
type Layout struct {
	// Serpentine reverses column order on every odd row, for strips that
	// snake back and forth.
	Serpentine bool `yaml:"serpentine"`
}

// Index maps r,c -> linear LED index (0..Count-1)
func (l Layout) Index(r, c int) int {
	cc := c
	if l.Serpentine && r%2 == 1 {
		cc = model.Cols - 1 - c
	}
	return r*model.Cols + cc
}

func (l Layout) Count() int {
	return model.Rows * model.Cols
}
