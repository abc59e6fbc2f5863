package font

import "github.com/coreman2200/dotbadge/internal/model"

// glyphArt is the font, top row first. Widths vary per glyph.
var glyphArt = map[byte][model.Cols]string{
	' ':  {"..", "..", "..", "..", ".."},
	'!':  {"#", "#", "#", ".", "#"},
	'"':  {"#.#", "#.#", "...", "...", "..."},
	'#':  {".#.#.", "#####", ".#.#.", "#####", ".#.#."},
	'$':  {".##", "##.", ".#.", ".##", "##."},
	'%':  {"#.#", "..#", ".#.", "#..", "#.#"},
	'&':  {".#..", "#.#.", ".#..", "#.#.", ".#.#"},
	'\'': {"#", "#", ".", ".", "."},
	'(':  {".#", "#.", "#.", "#.", ".#"},
	')':  {"#.", ".#", ".#", ".#", "#."},
	'*':  {"#.#", ".#.", "#.#", "...", "..."},
	'+':  {"...", ".#.", "###", ".#.", "..."},
	',':  {"..", "..", "..", ".#", "#."},
	'-':  {"...", "...", "###", "...", "..."},
	'.':  {".", ".", ".", ".", "#"},
	'/':  {"..#", "..#", ".#.", "#..", "#.."},
	'0':  {"###", "#.#", "#.#", "#.#", "###"},
	'1':  {".#.", "##.", ".#.", ".#.", "###"},
	'2':  {"###", "..#", "###", "#..", "###"},
	'3':  {"###", "..#", ".##", "..#", "###"},
	'4':  {"#.#", "#.#", "###", "..#", "..#"},
	'5':  {"###", "#..", "###", "..#", "###"},
	'6':  {"###", "#..", "###", "#.#", "###"},
	'7':  {"###", "..#", ".#.", ".#.", ".#."},
	'8':  {"###", "#.#", "###", "#.#", "###"},
	'9':  {"###", "#.#", "###", "..#", "###"},
	':':  {".", "#", ".", "#", "."},
	';':  {"..", ".#", "..", ".#", "#."},
	'<':  {"..#", ".#.", "#..", ".#.", "..#"},
	'=':  {"...", "###", "...", "###", "..."},
	'>':  {"#..", ".#.", "..#", ".#.", "#.."},
	'?':  {"###", "..#", ".##", "...", ".#."},
	'@':  {"####", "#..#", "#.##", "#...", ".###"},
	'A':  {".#.", "#.#", "###", "#.#", "#.#"},
	'B':  {"##.", "#.#", "##.", "#.#", "##."},
	'C':  {".##", "#..", "#..", "#..", ".##"},
	'D':  {"##.", "#.#", "#.#", "#.#", "##."},
	'E':  {"###", "#..", "##.", "#..", "###"},
	'F':  {"###", "#..", "##.", "#..", "#.."},
	'G':  {".###", "#...", "#.##", "#..#", ".###"},
	'H':  {"#.#", "#.#", "###", "#.#", "#.#"},
	'I':  {"###", ".#.", ".#.", ".#.", "###"},
	'J':  {"..#", "..#", "..#", "#.#", ".#."},
	'K':  {"#.#", "#.#", "##.", "#.#", "#.#"},
	'L':  {"#..", "#..", "#..", "#..", "###"},
	'M':  {"#...#", "##.##", "#.#.#", "#...#", "#...#"},
	'N':  {"#..#", "##.#", "#.##", "#..#", "#..#"},
	'O':  {".#.", "#.#", "#.#", "#.#", ".#."},
	'P':  {"##.", "#.#", "##.", "#..", "#.."},
	'Q':  {".#.", "#.#", "#.#", "##.", ".##"},
	'R':  {"##.", "#.#", "##.", "#.#", "#.#"},
	'S':  {".##", "#..", ".#.", "..#", "##."},
	'T':  {"###", ".#.", ".#.", ".#.", ".#."},
	'U':  {"#.#", "#.#", "#.#", "#.#", "###"},
	'V':  {"#.#", "#.#", "#.#", "#.#", ".#."},
	'W':  {"#...#", "#...#", "#.#.#", "##.##", "#...#"},
	'X':  {"#.#", "#.#", ".#.", "#.#", "#.#"},
	'Y':  {"#.#", "#.#", ".#.", ".#.", ".#."},
	'Z':  {"###", "..#", ".#.", "#..", "###"},
	'[':  {"##", "#.", "#.", "#.", "##"},
	'\\': {"#..", "#..", ".#.", "..#", "..#"},
	']':  {"##", ".#", ".#", ".#", "##"},
	'^':  {".#.", "#.#", "...", "...", "..."},
	'_':  {"...", "...", "...", "...", "###"},
	'`':  {"#.", ".#", "..", "..", ".."},
	'a':  {"...", ".##", "#.#", "#.#", ".##"},
	'b':  {"#..", "##.", "#.#", "#.#", "##."},
	'c':  {"...", ".##", "#..", "#..", ".##"},
	'd':  {"..#", ".##", "#.#", "#.#", ".##"},
	'e':  {"...", ".#.", "###", "#..", ".##"},
	'f':  {".##", "#..", "##.", "#..", "#.."},
	'g':  {".##", "#.#", ".##", "..#", "##."},
	'h':  {"#..", "##.", "#.#", "#.#", "#.#"},
	'i':  {"#", ".", "#", "#", "#"},
	'j':  {".#", "..", ".#", ".#", "#."},
	'k':  {"#..", "#.#", "##.", "#.#", "#.#"},
	'l':  {"#.", "#.", "#.", "#.", ".#"},
	'm':  {".....", "##.#.", "#.#.#", "#.#.#", "#.#.#"},
	'n':  {"...", "##.", "#.#", "#.#", "#.#"},
	'o':  {"...", ".#.", "#.#", "#.#", ".#."},
	'p':  {"...", "##.", "#.#", "##.", "#.."},
	'q':  {"...", ".##", "#.#", ".##", "..#"},
	'r':  {"...", "#.#", "##.", "#..", "#.."},
	's':  {"...", ".##", ".#.", "..#", "##."},
	't':  {".#.", "###", ".#.", ".#.", "..#"},
	'u':  {"...", "#.#", "#.#", "#.#", ".##"},
	'v':  {"...", "#.#", "#.#", "#.#", ".#."},
	'w':  {".....", "#...#", "#.#.#", "#.#.#", ".#.#."},
	'x':  {"...", "#.#", ".#.", ".#.", "#.#"},
	'y':  {"...", "#.#", ".##", "..#", "##."},
	'z':  {"...", "###", ".##", "#..", "###"},
	'{':  {".##", ".#.", "##.", ".#.", ".##"},
	'|':  {"#", "#", "#", "#", "#"},
	'}':  {"##.", ".#.", ".##", ".#.", "##."},
	'~':  {"....", ".#.#", "#.#.", "....", "...."},
	0x7f: {".#.#.", "#####", "#####", ".###.", "..#.."}, // heart
}
