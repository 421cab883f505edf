package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type CellState int8

const (
	Todo             CellState = -10
	Unknown          CellState = -2
	Flagged          CellState = -1
	CorrectlyFlagged CellState = 64
	ExplodedMine     CellState = 65
	FalselyFlagged   CellState = 66
	UnflaggedMine    CellState = 67
	/*
	 * Each item in the player grid is one of the following values:
	 *
	 * 	- 0 to 8 mean the square is open and has a surrounding mine
	 * 	  count.
	 *
	 *  - -1 means the square is flagged as a mine.
	 *
	 *  - -2 means the square is covered and unmarked.
	 *
	 * 	- -10 is used internally while a flood fill is in flight: the
	 * 	  square is queued to be opened.
	 *
	 * 	- 64 to 67 appear only after the game ends and describe how the
	 * 	  square should be shown post-mortem (a correct flag, the mine
	 * 	  that went off, a crossed-out wrong flag, an unflagged mine).
	 */
)

// Open reports whether the square has been opened by the player.
func (s CellState) Open() bool {
	return 0 <= s && s <= 8
}

func (s CellState) String() string {
	switch {
	case s == Unknown:
		return " "
	case s == Flagged:
		return "*"
	case s == ExplodedMine:
		return "X"
	case s == CorrectlyFlagged || s == UnflaggedMine:
		return "o"
	case s == FalselyFlagged:
		return "x"
	case s.Open():
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

type Grid []CellState

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			i := y*width + x
			if i >= len(g) {
				break
			}
			fmt.Fprint(&b, g[i].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
