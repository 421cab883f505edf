package game

// CommandType enumerates the board operations a widget may request.
// Widgets never touch the board directly; they emit commands and the
// coordinator applies them.
type CommandType int

const (
	Reveal CommandType = iota
	Flag
	Chord
)

type Command struct {
	Type CommandType
	X, Y int
}
