package mines

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

type GameState struct {
	GameParams
	Dead, Won  bool
	Mines      []bool /* real mine points, empty until the first open */
	PlayerGrid Grid   /* player knowledge */
	rnd        *rand.Rand
	placed     bool
	opened     int
}

// NewGame creates a board with no mines placed yet. Mines appear on the
// first OpenCell call so that the first click can never lose.
func NewGame(params GameParams, r *rand.Rand) (*GameState, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &GameState{
		GameParams: params,
		PlayerGrid: repeat(Unknown, params.Width*params.Height),
		rnd:        r,
	}, nil
}

// NewGameFromLayout creates a board with a known mine layout already in
// place. The first-click guarantee does not apply to such boards.
func NewGameFromLayout(params GameParams, layout []bool) (*GameState, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(layout) != params.Width*params.Height {
		return nil, fmt.Errorf(
			"layout of %d cells does not fit a %s board", len(layout), params,
		)
	}
	count := 0
	for _, mine := range layout {
		if mine {
			count++
		}
	}
	if count != params.MineCount {
		return nil, fmt.Errorf(
			"layout holds %d mines, params want %d", count, params.MineCount,
		)
	}
	return &GameState{
		GameParams: params,
		Mines:      layout,
		PlayerGrid: repeat(Unknown, params.Width*params.Height),
		placed:     true,
	}, nil
}

func (s *GameState) Status() GameStatus {
	switch {
	case s.Dead:
		return Lost
	case s.Won:
		return Won
	case !s.placed:
		return Uninitialized
	default:
		return Playing
	}
}

func (s *GameState) CellAt(x, y int) CellState {
	return s.PlayerGrid[y*s.Width+x]
}

// MinesLeft is the count shown on the HUD: mines minus flags. It may go
// negative when the player overflags.
func (s *GameState) MinesLeft() int {
	if s.Won {
		return 0
	}
	flags := 0
	for _, c := range s.PlayerGrid {
		if c == Flagged || c == CorrectlyFlagged || c == FalselyFlagged {
			flags++
		}
	}
	return s.MineCount - flags
}

// placeMines fills the mine grid, keeping the 3x3 neighborhood of the
// first click clear. With too many mines for that, only the clicked
// square is kept clear.
func (s *GameState) placeMines(x, y int) {
	var (
		total   = s.Width * s.Height
		click   = y*s.Width + x
		allowed = make([]int, 0, total)
	)
	for i := range total {
		ix, iy := i%s.Width, i/s.Width
		nearClick := ix >= x-1 && ix <= x+1 && iy >= y-1 && iy <= y+1
		if !nearClick || (s.MineCount > total-9 && i != click) {
			allowed = append(allowed, i)
		}
	}

	s.Mines = repeat(false, total)
	for _, j := range s.rnd.Perm(len(allowed))[:s.MineCount] {
		s.Mines[allowed[j]] = true
	}

	Log.WithFields(logrus.Fields{
		"width":  s.Width,
		"height": s.Height,
		"mines":  s.MineCount,
		"click":  []int{x, y},
	}).Debug("mines placed")
}

func (s *GameState) mineCountAt(i int) (count int) {
	x, y := i%s.Width, i/s.Width
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			xx, yy := x+dx, y+dy
			if (dx != 0 || dy != 0) && s.ValidatePosition(xx, yy) &&
				s.Mines[yy*s.Width+xx] {
				count++
			}
		}
	}
	return
}

// OpenCell opens a square. Out-of-bounds coordinates, flagged or already
// open squares and finished games are silently ignored. Opening a mine
// loses the game and exposes the rest of the mines; opening a square with
// no neighboring mines floods outward over the 8-connected zero region and
// its numbered border. Each square enters the flood queue at most once.
func (s *GameState) OpenCell(x, y int) {
	if s.Status().Terminal() || !s.ValidatePosition(x, y) {
		return
	}
	i := y*s.Width + x
	if s.PlayerGrid[i] != Unknown {
		return
	}

	if !s.placed {
		s.placeMines(x, y)
		s.placed = true
	}

	if s.Mines[i] {
		s.Dead = true
		s.PlayerGrid[i] = ExplodedMine
		s.revealMines()
		return
	}

	queue := []int{i}
	s.PlayerGrid[i] = Todo
	for len(queue) > 0 {
		j := queue[0]
		queue = queue[1:]

		n := s.mineCountAt(j)
		s.PlayerGrid[j] = CellState(n)
		s.opened++
		if n != 0 {
			continue
		}

		jx, jy := j%s.Width, j/s.Width
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				xx, yy := jx+dx, jy+dy
				if !s.ValidatePosition(xx, yy) {
					continue
				}
				k := yy*s.Width + xx
				if s.PlayerGrid[k] == Unknown {
					s.PlayerGrid[k] = Todo
					queue = append(queue, k)
				}
			}
		}
	}

	if s.opened == s.Width*s.Height-s.MineCount {
		s.Won = true
		/* every still-covered square is a mine now */
		for j, c := range s.PlayerGrid {
			if c == Flagged {
				s.PlayerGrid[j] = CorrectlyFlagged
			} else if c == Unknown {
				s.PlayerGrid[j] = UnflaggedMine
			}
		}
	}
}

// FlagCell toggles the flag on a covered square.
func (s *GameState) FlagCell(x, y int) {
	if s.Status().Terminal() || !s.ValidatePosition(x, y) {
		return
	}
	i := y*s.Width + x
	if s.PlayerGrid[i] == Unknown {
		s.PlayerGrid[i] = Flagged
	} else if s.PlayerGrid[i] == Flagged {
		s.PlayerGrid[i] = Unknown
	}
}

// ChordCell opens every unflagged neighbor of an open numbered square,
// provided exactly that many neighbors are flagged. Misplaced flags make
// this lose, as in any classic minesweeper.
func (s *GameState) ChordCell(x, y int) {
	if s.Status().Terminal() || !s.ValidatePosition(x, y) {
		return
	}
	c := s.PlayerGrid[y*s.Width+x]
	if !c.Open() || c == 0 {
		return
	}

	var (
		flags     int
		unflagged [][2]int
	)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			xx, yy := x+dx, y+dy
			if (dx == 0 && dy == 0) || !s.ValidatePosition(xx, yy) {
				continue
			}
			switch s.PlayerGrid[yy*s.Width+xx] {
			case Flagged:
				flags++
			case Unknown:
				unflagged = append(unflagged, [2]int{xx, yy})
			}
		}
	}
	if flags != int(c) {
		return
	}
	for _, p := range unflagged {
		s.OpenCell(p[0], p[1])
		if s.Status().Terminal() {
			return
		}
	}
}

// revealMines exposes the real layout after a loss. Covered non-mine
// squares stay covered; the player only learns where the mines were and
// which flags were wrong.
func (s *GameState) revealMines() {
	for i, c := range s.PlayerGrid {
		switch {
		case c == Flagged && s.Mines[i]:
			s.PlayerGrid[i] = CorrectlyFlagged
		case c == Flagged:
			s.PlayerGrid[i] = FalselyFlagged
		case c == Unknown && s.Mines[i]:
			s.PlayerGrid[i] = UnflaggedMine
		}
	}
}
