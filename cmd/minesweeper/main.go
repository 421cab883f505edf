package main

import (
	"context"
	"flag"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"minesweeper/internal/config"
	"minesweeper/internal/game"
	"minesweeper/internal/mines"
	"minesweeper/internal/scores"
	"minesweeper/internal/ui"
)

var (
	log = logrus.New()

	dataDir string
	debug   bool
)

func init() {
	const (
		defaultDataDir = "."
		usage          = "directory for settings, scores and logs"
	)
	flag.StringVar(&dataDir, "data-dir", defaultDataDir, usage)
	flag.StringVar(&dataDir, "d", defaultDataDir, usage+" (shorthand)")
	flag.BoolVar(&debug, "debug", false, "verbose logging")
}

// setupLogging points every package logger at a rotating log file. The
// terminal itself belongs to the UI, so nothing may write to stdout.
func setupLogging() {
	logLevel := logrus.InfoLevel
	if debug || os.Getenv("MINESWEEPER_DEBUG") != "" {
		logLevel = logrus.DebugLevel
	}

	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   filepath.Join(dataDir, "minesweeper.log"),
		MaxSize:    5, // MB
		MaxBackups: 2,
		MaxAge:     28, // days
		Level:      logLevel,
		Formatter:  &logrus.TextFormatter{DisableColors: true},
	})
	if err != nil {
		log.Fatal("unable to set up log file: ", err)
	}

	for _, l := range []*logrus.Logger{
		log, mines.Log, config.Log, scores.Log, game.Log, ui.Log,
	} {
		l.SetLevel(logLevel)
		l.SetOutput(io.Discard)
		l.AddHook(hook)
	}
}

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	flag.Parse()

	if err := godotenv.Load(); err == nil {
		log.Debug("loaded .env")
	}
	if dataDir == "." {
		if dir := os.Getenv("MINESWEEPER_DATA_DIR"); dir != "" {
			dataDir = dir
		}
	}

	setupLogging()
	log.Info("starting up, data dir = ", dataDir)

	store, err := scores.Open(filepath.Join(dataDir, "scores.db"))
	if err != nil {
		log.Fatal("unable to open leaderboard: ", err)
	}
	defer store.Close()

	settings := config.Load(dataDir)
	rnd := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))

	g, err := game.New(settings, store, rnd)
	if err != nil {
		log.Fatal("unable to deal the first board: ", err)
	}

	if err := ui.New(g).Run(mainCtx); err != nil {
		log.Fatal("unable to run ui: ", err)
	}

	if err := g.Settings().Save(dataDir); err != nil {
		log.Error("unable to save settings: ", err)
	}
	log.Info("bye")
}
