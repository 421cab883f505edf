package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"minesweeper/internal/game"
	"minesweeper/internal/mines"
)

// cellWidth is how many terminal columns one board square takes. Two
// columns per square keeps the squares roughly square on screen.
const cellWidth = 2

// classic digit colors, 1 through 8
var digitColors = []tcell.Color{
	tcell.ColorBlue,
	tcell.ColorDarkGreen,
	tcell.ColorRed,
	tcell.ColorNavy,
	tcell.ColorBrown,
	tcell.ColorLightSeaGreen,
	tcell.ColorBlack,
	tcell.ColorDimGray,
}

// BoardView renders the player grid and translates pointer clicks into
// board commands. It never mutates the board itself.
type BoardView struct {
	*tview.Box
	state     func() *mines.GameState
	onCommand func(game.Command)
}

func NewBoardView(
	state func() *mines.GameState, onCommand func(game.Command),
) *BoardView {
	return &BoardView{
		Box:       tview.NewBox(),
		state:     state,
		onCommand: onCommand,
	}
}

// origin returns the screen position of the board's top-left square,
// centering the grid inside the inner rect.
func (v *BoardView) origin() (int, int) {
	ix, iy, iw, ih := v.GetInnerRect()
	s := v.state()
	ox := ix + max(0, (iw-s.Width*cellWidth)/2)
	oy := iy + max(0, (ih-s.Height)/2)
	return ox, oy
}

func (v *BoardView) Draw(screen tcell.Screen) {
	v.Box.DrawForSubclass(screen, v)

	s := v.state()
	ox, oy := v.origin()
	for y := range s.Height {
		for x := range s.Width {
			ch, style := cellGlyph(s.CellAt(x, y))
			screen.SetContent(ox+x*cellWidth, oy+y, ch, nil, style)
			screen.SetContent(ox+x*cellWidth+1, oy+y, ' ', nil, style)
		}
	}
}

func cellGlyph(c mines.CellState) (rune, tcell.Style) {
	base := tcell.StyleDefault.Background(tcell.ColorSilver)
	switch {
	case c == mines.Unknown:
		return '.', base.Foreground(tcell.ColorGray)
	case c == mines.Flagged:
		return 'F', base.Foreground(tcell.ColorRed)
	case c == mines.CorrectlyFlagged:
		return 'F', base.Foreground(tcell.ColorDarkGreen)
	case c == mines.ExplodedMine:
		return '*', tcell.StyleDefault.
			Background(tcell.ColorRed).Foreground(tcell.ColorWhite)
	case c == mines.UnflaggedMine:
		return '*', base.Foreground(tcell.ColorBlack)
	case c == mines.FalselyFlagged:
		return 'X', base.Foreground(tcell.ColorRed)
	case c == 0:
		return ' ', tcell.StyleDefault.Background(tcell.ColorLightGray)
	case c.Open():
		return rune('0' + c), tcell.StyleDefault.
			Background(tcell.ColorLightGray).
			Foreground(digitColors[c-1])
	default:
		return '?', base
	}
}

// cellAt maps screen coordinates to board coordinates.
func (v *BoardView) cellAt(x, y int) (int, int, bool) {
	s := v.state()
	ox, oy := v.origin()
	cx, cy := (x-ox)/cellWidth, y-oy
	if x < ox || y < oy || !s.ValidatePosition(cx, cy) {
		return 0, 0, false
	}
	return cx, cy, true
}

func (v *BoardView) MouseHandler() func(
	action tview.MouseAction,
	event *tcell.EventMouse,
	setFocus func(p tview.Primitive),
) (bool, tview.Primitive) {
	return v.WrapMouseHandler(func(
		action tview.MouseAction,
		event *tcell.EventMouse,
		setFocus func(p tview.Primitive),
	) (bool, tview.Primitive) {
		x, y := event.Position()
		if !v.InRect(x, y) {
			return false, nil
		}

		switch action {
		case tview.MouseLeftClick:
			setFocus(v)
			if cx, cy, ok := v.cellAt(x, y); ok {
				// a click on an open number chords, anywhere else reveals
				cmd := game.Command{Type: game.Reveal, X: cx, Y: cy}
				if v.state().CellAt(cx, cy).Open() {
					cmd.Type = game.Chord
				}
				v.onCommand(cmd)
			}
			return true, nil

		case tview.MouseRightClick:
			if cx, cy, ok := v.cellAt(x, y); ok {
				v.onCommand(game.Command{Type: game.Flag, X: cx, Y: cy})
			}
			return true, nil
		}
		return false, nil
	})
}
