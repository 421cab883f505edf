package game

import (
	"math/rand/v2"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minesweeper/internal/config"
	"minesweeper/internal/mines"
	"minesweeper/internal/scores"
)

func TestMain(m *testing.M) {
	Log.SetLevel(logrus.PanicLevel)
	scores.Log.SetLevel(logrus.PanicLevel)
	mines.Log.SetLevel(logrus.PanicLevel)
	m.Run()
}

func testGame(t *testing.T, settings config.Settings) *Game {
	t.Helper()
	store, err := scores.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	g, err := New(settings, store, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	return g
}

// installLayout swaps the current board for one with known mines.
func installLayout(t *testing.T, g *Game, mineAt ...[2]int) {
	t.Helper()
	params := g.Settings().Params()
	layout := make([]bool, params.Width*params.Height)
	for _, p := range mineAt {
		layout[p[1]*params.Width+p[0]] = true
	}
	require.Equal(t, params.MineCount, len(mineAt))
	state, err := mines.NewGameFromLayout(params, layout)
	require.NoError(t, err)
	g.state = state
}

func easyTopRowMines(t *testing.T, g *Game) {
	t.Helper()
	var mineAt [][2]int
	for x := range 10 {
		mineAt = append(mineAt, [2]int{x, 0})
	}
	installLayout(t, g, mineAt...)
}

func TestWinFlow(t *testing.T) {
	g := testGame(t, config.Defaults())
	easyTopRowMines(t, g)

	var statuses []mines.GameStatus
	g.OnStatusChange = func(s mines.GameStatus) {
		statuses = append(statuses, s)
	}

	// revealing below the mine row floods the whole safe area
	g.Apply(Command{Type: Reveal, X: 0, Y: 2})

	require.Equal(t, mines.Won, g.State().Status())
	require.NotNil(t, g.Result())
	assert.Equal(t, WonGame, g.Result().Outcome)
	assert.GreaterOrEqual(t, g.Result().Seconds, 0)
	assert.Equal(t, []mines.GameStatus{mines.Won}, statuses)
	assert.Equal(t, g.Result().Seconds, g.Elapsed())

	assert.True(t, g.QualifiesForLeaderboard())
	require.NoError(t, g.RecordResult("ada"))

	top, err := g.Top(config.Easy)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "ada", top[0].Name)
}

func TestLossFlow(t *testing.T) {
	g := testGame(t, config.Defaults())
	easyTopRowMines(t, g)

	g.Apply(Command{Type: Reveal, X: 5, Y: 0})

	require.Equal(t, mines.Lost, g.State().Status())
	require.NotNil(t, g.Result())
	assert.Equal(t, LostGame, g.Result().Outcome)
	assert.False(t, g.QualifiesForLeaderboard())

	// terminal boards ignore further commands
	g.Apply(Command{Type: Reveal, X: 0, Y: 5})
	assert.Equal(t, mines.Lost, g.State().Status())
}

func TestCustomGamesAreNotRanked(t *testing.T) {
	settings := config.Settings{
		Version:    config.SettingsVersion,
		Difficulty: config.Custom,
		Board:      mines.GameParams{Width: 5, Height: 5, MineCount: 1},
	}
	g := testGame(t, settings)
	installLayout(t, g, [2]int{4, 4})

	g.Apply(Command{Type: Reveal, X: 0, Y: 0})

	require.Equal(t, mines.Won, g.State().Status())
	assert.False(t, g.QualifiesForLeaderboard())
}

func TestFlagDoesNotStartTheClock(t *testing.T) {
	g := testGame(t, config.Defaults())

	g.Apply(Command{Type: Flag, X: 0, Y: 0})

	assert.Equal(t, mines.Uninitialized, g.State().Status())
	assert.Equal(t, 0, g.Elapsed())
}

func TestRestartDiscardsResult(t *testing.T) {
	g := testGame(t, config.Defaults())
	easyTopRowMines(t, g)
	g.Apply(Command{Type: Reveal, X: 5, Y: 0})
	require.NotNil(t, g.Result())

	require.NoError(t, g.Restart())

	assert.Nil(t, g.Result())
	assert.Equal(t, mines.Uninitialized, g.State().Status())
	assert.Equal(t, 0, g.Elapsed())
}

func TestSetDifficultyDealsMatchingBoard(t *testing.T) {
	g := testGame(t, config.Defaults())

	require.NoError(t, g.SetDifficulty(config.Hard))

	want, _ := config.Hard.Preset()
	assert.Equal(t, want, g.State().GameParams)
}

func TestSetCustomBoardValidates(t *testing.T) {
	g := testGame(t, config.Defaults())

	err := g.SetCustomBoard(mines.GameParams{Width: 0, Height: 5, MineCount: 1})
	assert.Error(t, err)
	// the running game is untouched
	assert.Equal(t, config.Easy, g.Settings().Difficulty)

	require.NoError(t, g.SetCustomBoard(
		mines.GameParams{Width: 12, Height: 7, MineCount: 11},
	))
	assert.Equal(t, config.Custom, g.Settings().Difficulty)
	assert.Equal(t, 12, g.State().Width)
}
