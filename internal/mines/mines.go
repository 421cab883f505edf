package mines

import "fmt"

const (
	// MaxDimension bounds board width and height. Anything larger does not
	// fit a reasonable terminal anyway.
	MaxDimension = 50
)

type GameParams struct {
	Width, Height, MineCount int
}

type InvalidParamsError struct {
	GameParams
}

func (e InvalidParamsError) Error() string {
	switch {
	case e.Width < 1 || e.Width > MaxDimension:
		return fmt.Sprintf("board width must be 1..%d, got %d", MaxDimension, e.Width)
	case e.Height < 1 || e.Height > MaxDimension:
		return fmt.Sprintf("board height must be 1..%d, got %d", MaxDimension, e.Height)
	case e.MineCount < 1:
		return fmt.Sprintf("mine count must be positive, got %d", e.MineCount)
	default:
		return fmt.Sprintf(
			"%d mines do not leave a safe cell on a %dx%d board",
			e.MineCount, e.Width, e.Height,
		)
	}
}

func (p GameParams) String() string {
	return fmt.Sprintf("%dx%d(%d)", p.Width, p.Height, p.MineCount)
}

func (p GameParams) Validate() error {
	if p.Width < 1 || p.Width > MaxDimension ||
		p.Height < 1 || p.Height > MaxDimension ||
		p.MineCount < 1 || p.MineCount > p.Width*p.Height-1 {
		return InvalidParamsError{p}
	}
	return nil
}

func (p GameParams) ValidatePosition(x, y int) bool {
	return 0 <= x && x < p.Width && 0 <= y && y < p.Height
}

type GameStatus int

const (
	Uninitialized GameStatus = iota
	Playing
	Won
	Lost
)

func (s GameStatus) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the board no longer accepts mutating operations.
func (s GameStatus) Terminal() bool {
	return s == Won || s == Lost
}
