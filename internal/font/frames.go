package font

import (
	"fmt"

	"github.com/coreman2200/dotbadge/internal/model"
)

var frames []model.Frame

// Frames returns a copy of the prerendered video sequence.
func Frames() []model.Frame {
	out := make([]model.Frame, len(frames))
	copy(out, frames)
	return out
}

// frameArt is drawn as the badge shows it: Rows wide, Cols tall.
var frameArt = [][model.Cols]string{
	{
		"...............",
		"...............",
		".......#.......",
		"...............",
		"...............",
	},
	{
		"...............",
		"......#.#......",
		"......###......",
		".......#.......",
		"...............",
	},
	{
		".....##.##.....",
		".....#####.....",
		".....#####.....",
		"......###......",
		".......#.......",
	},
	{
		"....###.###....",
		"....#######....",
		".....#####.....",
		"......###......",
		".......#.......",
	},
	{
		".....##.##.....",
		".....#####.....",
		".....#####.....",
		"......###......",
		".......#.......",
	},
	{
		"....###.###....",
		"....#######....",
		".....#####.....",
		"......###......",
		".......#.......",
	},
	{
		"..#....#....#..",
		"#....#...#....#",
		"...#.......#...",
		"#....#...#....#",
		"..#....#....#..",
	},
	{
		"#.....#.#.....#",
		"..#.........#..",
		"......#.#......",
		"..#.........#..",
		"#.....#.#.....#",
	},
	{
		"#..............",
		"#..............",
		"#..............",
		"#..............",
		"#..............",
	},
	{
		"#####..........",
		"#####..........",
		"#####..........",
		"#####..........",
		"#####..........",
	},
	{
		"##########.....",
		"##########.....",
		"##########.....",
		"##########.....",
		"##########.....",
	},
	{
		"###############",
		"###############",
		"###############",
		"###############",
		"###############",
	},
	{
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
	},
}

func compileFrame(art [model.Cols]string) (model.Frame, error) {
	var f model.Frame
	for c, line := range art {
		if len(line) != model.Rows {
			return f, fmt.Errorf("line %d is %d wide, want %d", c, len(line), model.Rows)
		}
		for r := 0; r < model.Rows; r++ {
			switch line[r] {
			case '#':
				f.Set(r, c, true)
			case '.':
			default:
				return f, fmt.Errorf("line %d: unexpected %q", c, line[r])
			}
		}
	}
	return f, nil
}
