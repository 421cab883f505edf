package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"minesweeper/internal/config"
	"minesweeper/internal/game"
	"minesweeper/internal/mines"
)

var Log = logrus.New()

const (
	pageGame   = "game"
	pageScores = "scores"
	pageName   = "name"

	maxNameLength = 8

	// short pause between the win and the name prompt, so the player sees
	// the revealed board first
	nameInputDelay = time.Second
)

// App assembles the widgets and owns the tview event loop. All board
// mutation happens on that loop via game commands.
type App struct {
	app  *tview.Application
	game *game.Game

	pages       *tview.Pages
	board       *BoardView
	hud         *tview.TextView
	form        *tview.Form
	widthIn     *tview.InputField
	heightIn    *tview.InputField
	minesIn     *tview.InputField
	scoresTable *tview.Table
	nameIn      *tview.InputField
	victory     *tview.TextView

	status string
}

func New(g *game.Game) *App {
	a := &App{
		app:    tview.NewApplication(),
		game:   g,
		status: "READY TO GO!",
	}

	a.board = NewBoardView(g.State, a.applyCommand)
	a.hud = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	a.buildForm()
	a.buildScoresPage()
	a.buildNamePage()

	gamePage := tview.NewFlex().
		AddItem(a.form, 24, 0, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(a.hud, 2, 0, false).
			AddItem(a.board, 0, 1, true), 0, 1, true)

	a.pages = tview.NewPages().
		AddPage(pageGame, gamePage, true, true).
		AddPage(pageScores, center(a.scoresTable, 64, 12), true, false).
		AddPage(pageName, a.namePage(), true, false)

	g.OnStatusChange = a.onStatusChange

	a.app.SetRoot(a.pages, true).
		EnableMouse(true).
		SetMouseCapture(a.mouseCapture).
		SetInputCapture(a.inputCapture)

	a.refreshHUD()
	return a
}

// Run drives the UI until the context is canceled or the player quits.
// A once-a-second tick refreshes the clock on the HUD.
func (a *App) Run(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)

	done := make(chan struct{})
	eg.Go(func() error {
		defer close(done)
		return a.app.Run()
	})
	eg.Go(func() error {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				a.app.QueueUpdateDraw(a.refreshHUD)
			case <-ctx.Done():
				a.app.Stop()
				return nil
			case <-done:
				return nil
			}
		}
	})

	return eg.Wait()
}

func (a *App) applyCommand(cmd game.Command) {
	a.game.Apply(cmd)
	a.refreshHUD()
}

func (a *App) onStatusChange(status mines.GameStatus) {
	switch status {
	case mines.Uninitialized:
		a.status = "READY TO GO!"
	case mines.Playing:
		a.status = "GOOD LUCK!"
	case mines.Won:
		a.status = "VICTORY!"
		if a.game.QualifiesForLeaderboard() {
			time.AfterFunc(nameInputDelay, func() {
				a.app.QueueUpdateDraw(a.showNamePage)
			})
		}
	case mines.Lost:
		a.status = "GAME OVER!"
	}
	a.refreshHUD()
}

func (a *App) refreshHUD() {
	s := a.game.State()
	a.hud.SetText(fmt.Sprintf(
		"TIME %3d    MINES %3d    [yellow]%s[-]",
		a.game.Elapsed(), s.MinesLeft(), a.status,
	))
}

func (a *App) restart() {
	if err := a.game.Restart(); err != nil {
		Log.WithError(err).Error("unable to restart")
	}
	a.refreshHUD()
}

func (a *App) buildForm() {
	intField := func(label string) *tview.InputField {
		return tview.NewInputField().
			SetLabel(label).
			SetFieldWidth(4).
			SetAcceptanceFunc(tview.InputFieldInteger)
	}
	a.widthIn = intField("WIDTH")
	a.heightIn = intField("HEIGHT")
	a.minesIn = intField("MINES")
	for _, in := range []*tview.InputField{a.widthIn, a.heightIn, a.minesIn} {
		in.SetDoneFunc(func(key tcell.Key) {
			if key == tcell.KeyEnter {
				a.applyCustomBoard()
			}
		})
	}

	difficulties := []string{
		string(config.Easy), string(config.Normal),
		string(config.Hard), string(config.Custom),
	}
	initial := 0
	for i, d := range difficulties {
		if d == string(a.game.Settings().Difficulty) {
			initial = i
		}
	}

	a.form = tview.NewForm().
		AddDropDown("DIFFICULTY", difficulties, initial, a.onDifficulty).
		AddFormItem(a.widthIn).
		AddFormItem(a.heightIn).
		AddFormItem(a.minesIn).
		AddButton("RESTART", a.restart).
		AddButton("LEADER BOARD", a.showScoresPage).
		AddButton("QUIT", a.app.Stop)
	a.form.SetBorder(true)

	a.syncBoardInputs()
}

func (a *App) onDifficulty(option string, _ int) {
	d := config.Difficulty(option)
	if err := a.game.SetDifficulty(d); err != nil {
		Log.WithError(err).Error("unable to switch difficulty")
	}
	a.syncBoardInputs()
	a.refreshHUD()
}

// syncBoardInputs mirrors the current board into the form; the size
// fields only accept input for custom games.
func (a *App) syncBoardInputs() {
	params := a.game.Settings().Params()
	custom := a.game.Settings().Difficulty == config.Custom
	a.widthIn.SetText(fmt.Sprint(params.Width)).SetDisabled(!custom)
	a.heightIn.SetText(fmt.Sprint(params.Height)).SetDisabled(!custom)
	a.minesIn.SetText(fmt.Sprint(params.MineCount)).SetDisabled(!custom)
}

func (a *App) applyCustomBoard() {
	params := clampParams(
		atoiOr(a.widthIn.GetText(), 1),
		atoiOr(a.heightIn.GetText(), 1),
		atoiOr(a.minesIn.GetText(), 1),
	)
	if err := a.game.SetCustomBoard(params); err != nil {
		Log.WithError(err).Warn("rejected custom board")
		return
	}
	a.syncBoardInputs()
	a.refreshHUD()
}

func (a *App) buildScoresPage() {
	a.scoresTable = tview.NewTable()
	a.scoresTable.
		SetBorder(true).
		SetTitle(" LEADER BOARD ")
}

// refreshScores rebuilds the leaderboard table, one difficulty per column
// pair, best times on top.
func (a *App) refreshScores() {
	t := a.scoresTable
	t.Clear()
	for col, d := range []config.Difficulty{
		config.Easy, config.Normal, config.Hard,
	} {
		t.SetCell(0, col*2, tview.NewTableCell(string(d)).
			SetAttributes(tcell.AttrBold).
			SetExpansion(1).
			SetAlign(tview.AlignCenter))

		entries, err := a.game.Top(d)
		if err != nil {
			Log.WithError(err).Error("unable to load leaderboard")
			continue
		}
		for row, e := range entries {
			t.SetCell(row+1, col*2, tview.NewTableCell(e.Name))
			t.SetCell(row+1, col*2+1, tview.NewTableCell(
				fmt.Sprintf("%d", e.Seconds)).
				SetAlign(tview.AlignRight))
		}
	}
}

func (a *App) showScoresPage() {
	a.refreshScores()
	a.pages.SwitchToPage(pageScores)
}

func (a *App) buildNamePage() {
	a.victory = tview.NewTextView().SetTextAlign(tview.AlignCenter)
	a.nameIn = tview.NewInputField().
		SetLabel("ENTER YOUR NAME ").
		SetFieldWidth(maxNameLength + 1).
		SetAcceptanceFunc(func(text string, _ rune) bool {
			if len(text) > maxNameLength {
				return false
			}
			for _, c := range text {
				if !isNameRune(c) {
					return false
				}
			}
			return true
		})
	a.nameIn.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		name := a.nameIn.GetText()
		if name == "" {
			return
		}
		if err := a.game.RecordResult(name); err != nil {
			Log.WithError(err).Error("unable to record result")
		}
		a.showScoresPage()
	})
}

func (a *App) namePage() tview.Primitive {
	box := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.victory, 2, 0, false).
		AddItem(a.nameIn, 1, 0, true)
	return center(box, 40, 5)
}

func (a *App) showNamePage() {
	result := a.game.Result()
	if result == nil {
		return
	}
	a.victory.SetText(fmt.Sprintf(
		"YOUR TIME IS %d SECONDS!", result.Seconds,
	))
	a.nameIn.SetText("")
	a.pages.SwitchToPage(pageName)
	a.app.SetFocus(a.nameIn)
}

// mouseCapture dismisses the leaderboard page on any click, dropping the
// player back into the game.
func (a *App) mouseCapture(
	event *tcell.EventMouse, action tview.MouseAction,
) (*tcell.EventMouse, tview.MouseAction) {
	name, _ := a.pages.GetFrontPage()
	if name == pageScores && action == tview.MouseLeftClick {
		a.pages.SwitchToPage(pageGame)
		return nil, action
	}
	return event, action
}

func (a *App) inputCapture(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyEscape {
		if name, _ := a.pages.GetFrontPage(); name != pageGame {
			a.pages.SwitchToPage(pageGame)
			return nil
		}
	}
	return event
}

// center wraps a primitive in the usual flex sandwich.
func center(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 0, true).
			AddItem(nil, 0, 1, false), width, 0, true).
		AddItem(nil, 0, 1, false)
}
