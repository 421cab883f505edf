package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"minesweeper/internal/mines"
)

var Log = logrus.New()

// SettingsVersion tags the persisted settings format. Files with another
// version are ignored and replaced with defaults on the next save.
const SettingsVersion = 1

const settingsFile = "settings.json"

type Difficulty string

const (
	Easy   Difficulty = "EASY"
	Normal Difficulty = "NORMAL"
	Hard   Difficulty = "HARD"
	Custom Difficulty = "CUSTOM"
)

// Ranked reports whether results at this difficulty go on the leaderboard.
// Custom boards are not comparable to each other, so they are not kept.
func (d Difficulty) Ranked() bool {
	return d == Easy || d == Normal || d == Hard
}

func (d Difficulty) Valid() bool {
	return d.Ranked() || d == Custom
}

// Preset returns the canonical board for a difficulty. Custom has no
// preset and returns false.
func (d Difficulty) Preset() (mines.GameParams, bool) {
	switch d {
	case Easy:
		return mines.GameParams{Width: 10, Height: 10, MineCount: 10}, true
	case Normal:
		return mines.GameParams{Width: 16, Height: 16, MineCount: 40}, true
	case Hard:
		return mines.GameParams{Width: 30, Height: 16, MineCount: 99}, true
	default:
		return mines.GameParams{}, false
	}
}

type Settings struct {
	Version    int              `json:"version"`
	Difficulty Difficulty       `json:"difficulty"`
	Board      mines.GameParams `json:"board"`
}

func Defaults() Settings {
	board, _ := Easy.Preset()
	return Settings{
		Version:    SettingsVersion,
		Difficulty: Easy,
		Board:      board,
	}
}

// Params resolves the board to play: the preset for ranked difficulties,
// the stored custom board otherwise.
func (s Settings) Params() mines.GameParams {
	if preset, ok := s.Difficulty.Preset(); ok {
		return preset
	}
	return s.Board
}

// Load reads settings from dataDir. A missing, malformed, out-of-version
// or otherwise unusable file yields defaults; the game must start anyway.
func Load(dataDir string) Settings {
	path := filepath.Join(dataDir, settingsFile)

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			Log.WithError(err).Warn("unable to read settings, using defaults")
		}
		return Defaults()
	}

	var s Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		Log.WithError(err).Warn("malformed settings file, using defaults")
		return Defaults()
	}
	if s.Version != SettingsVersion {
		Log.WithFields(logrus.Fields{
			"have": s.Version,
			"want": SettingsVersion,
		}).Warn("settings version mismatch, using defaults")
		return Defaults()
	}
	if !s.Difficulty.Valid() || s.Params().Validate() != nil {
		Log.Warn("settings describe an unplayable board, using defaults")
		return Defaults()
	}
	return s
}

// Save writes settings to dataDir.
func (s Settings) Save(dataDir string) error {
	s.Version = SettingsVersion

	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("unable to encode settings: %w", err)
	}

	path := filepath.Join(dataDir, settingsFile)
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("unable to write settings: %w", err)
	}
	return nil
}
