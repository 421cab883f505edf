package game

import (
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"

	"minesweeper/internal/config"
	"minesweeper/internal/mines"
	"minesweeper/internal/scores"
)

var Log = logrus.New()

type Outcome int

const (
	WonGame Outcome = iota
	LostGame
)

func (o Outcome) String() string {
	if o == WonGame {
		return "won"
	}
	return "lost"
}

// Result is computed once, when a session reaches a terminal state.
type Result struct {
	Outcome Outcome
	Seconds int
}

// Game owns one board at a time plus the leaderboard and the current
// settings. It consumes commands produced by the UI widgets and is the
// only place that mutates the board.
type Game struct {
	settings config.Settings
	store    *scores.Store
	rnd      *rand.Rand

	state     *mines.GameState
	startedAt time.Time
	endedAt   time.Time
	result    *Result

	// OnStatusChange, when set, is called after a command moves the board
	// to a new status.
	OnStatusChange func(mines.GameStatus)
}

func New(settings config.Settings, store *scores.Store, rnd *rand.Rand) (*Game, error) {
	g := &Game{
		settings: settings,
		store:    store,
		rnd:      rnd,
	}
	if err := g.Restart(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) State() *mines.GameState { return g.state }

func (g *Game) Settings() config.Settings { return g.settings }

// Result is nil while the current board is still playable.
func (g *Game) Result() *Result { return g.result }

// Restart discards the current board and deals a fresh one from the
// current settings.
func (g *Game) Restart() error {
	state, err := mines.NewGame(g.settings.Params(), g.rnd)
	if err != nil {
		return err
	}
	g.state = state
	g.startedAt = time.Time{}
	g.endedAt = time.Time{}
	g.result = nil

	Log.WithFields(logrus.Fields{
		"difficulty": g.settings.Difficulty,
		"board":      g.settings.Params().String(),
	}).Info("new game")

	if g.OnStatusChange != nil {
		g.OnStatusChange(mines.Uninitialized)
	}
	return nil
}

// SetDifficulty switches the preset and restarts. Switching to Custom
// keeps the stored custom board.
func (g *Game) SetDifficulty(d config.Difficulty) error {
	if !d.Valid() || d == g.settings.Difficulty {
		return nil
	}
	g.settings.Difficulty = d
	return g.Restart()
}

// SetCustomBoard stores new custom board parameters and restarts. Invalid
// parameters leave the game untouched.
func (g *Game) SetCustomBoard(params mines.GameParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	g.settings.Difficulty = config.Custom
	g.settings.Board = params
	return g.Restart()
}

// Apply routes a board command and tracks the session clock and terminal
// transitions.
func (g *Game) Apply(cmd Command) {
	prev := g.state.Status()

	switch cmd.Type {
	case Reveal:
		g.state.OpenCell(cmd.X, cmd.Y)
	case Flag:
		g.state.FlagCell(cmd.X, cmd.Y)
	case Chord:
		g.state.ChordCell(cmd.X, cmd.Y)
	default:
		return
	}

	status := g.state.Status()
	if prev == mines.Uninitialized && status != mines.Uninitialized {
		g.startedAt = time.Now()
	}
	if !prev.Terminal() && status.Terminal() {
		g.endedAt = time.Now()
		outcome := WonGame
		if status == mines.Lost {
			outcome = LostGame
		}
		g.result = &Result{Outcome: outcome, Seconds: g.Elapsed()}
		Log.WithFields(logrus.Fields{
			"outcome": outcome.String(),
			"seconds": g.result.Seconds,
		}).Info("game over")
	}
	if status != prev && g.OnStatusChange != nil {
		g.OnStatusChange(status)
	}
}

// Elapsed returns whole seconds since the first reveal, frozen once the
// game ends.
func (g *Game) Elapsed() int {
	switch {
	case g.startedAt.IsZero():
		return 0
	case !g.endedAt.IsZero():
		return int(g.endedAt.Sub(g.startedAt) / time.Second)
	default:
		return int(time.Since(g.startedAt) / time.Second)
	}
}

// QualifiesForLeaderboard reports whether the finished game earns a
// leaderboard spot. Only ranked difficulties are kept; custom boards are
// not comparable.
func (g *Game) QualifiesForLeaderboard() bool {
	if g.result == nil || g.result.Outcome != WonGame ||
		!g.settings.Difficulty.Ranked() {
		return false
	}
	ok, err := g.store.Qualifies(string(g.settings.Difficulty), g.result.Seconds)
	if err != nil {
		Log.WithError(err).Error("unable to check leaderboard")
		return false
	}
	return ok
}

// RecordResult writes the finished game onto the leaderboard under the
// given name.
func (g *Game) RecordResult(name string) error {
	if g.result == nil || g.result.Outcome != WonGame {
		return nil
	}
	return g.store.Record(scores.Entry{
		Name:       name,
		Difficulty: string(g.settings.Difficulty),
		Seconds:    g.result.Seconds,
	})
}

// Top returns the leaderboard for a ranked difficulty.
func (g *Game) Top(d config.Difficulty) ([]scores.Entry, error) {
	return g.store.Top(string(d))
}
