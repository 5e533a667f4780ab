package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/Garsondee/Gorillas-3D/internal/audio"
	"github.com/Garsondee/Gorillas-3D/internal/config"
	"github.com/Garsondee/Gorillas-3D/internal/game"
	"github.com/Garsondee/Gorillas-3D/internal/logging"
	"github.com/Garsondee/Gorillas-3D/internal/store"
	"github.com/Garsondee/Gorillas-3D/internal/term"
	"github.com/Garsondee/Gorillas-3D/internal/view"
)

const (
	windowWidth  = 1280
	windowHeight = 720
)

func main() {
	var (
		configDir  string
		dumpConfig bool
		termMode   bool
		dbPath     string
	)
	flag.StringVar(&configDir, "config", ".", "directory holding gorillas.yaml")
	flag.BoolVar(&dumpConfig, "dump-config", false, "print the effective config as YAML and exit")
	flag.BoolVar(&termMode, "term", false, "play in the terminal instead of a window")
	flag.StringVar(&dbPath, "db", "", "sqlite file to record finished matches in")
	flag.Parse()

	cfg, err := config.Load(configDir)
	if err != nil {
		log.Fatal(err)
	}
	if dumpConfig {
		if err := config.Write(os.Stdout, cfg); err != nil {
			log.Fatal(err)
		}
		return
	}

	logger, closeLog, err := setupLogging(cfg, termMode)
	if err != nil {
		log.Fatal(err)
	}
	defer closeLog()

	sound := setupAudio(cfg, logger)
	defer sound.Cleanup()

	seed := time.Now().UnixNano()
	hud := game.NewHUDState()
	g := game.New(
		game.WithTuning(cfg.Game),
		game.WithSeed(seed),
		game.WithLogger(logger),
		game.WithSound(sound),
		game.WithHUD(hud),
	)
	if err := g.Load(); err != nil {
		log.Fatal(err)
	}

	source := "window"
	if termMode {
		source = "term"
		err = runTerm(g, hud, seed, logger)
	} else {
		ebiten.SetWindowTitle("Gorillas 3D")
		ebiten.SetWindowSize(windowWidth, windowHeight)
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
		err = ebiten.RunGame(view.New(g, hud, windowWidth, windowHeight, logger))
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("front end stopped")
	}

	if dbPath != "" {
		if err := record(dbPath, seed, source, g, logger); err != nil {
			logger.Error().Err(err).Str("db", dbPath).Msg("match not recorded")
		}
	}
}

// setupLogging builds the logger. The terminal front end owns stdout, so
// console logging is dropped there.
func setupLogging(cfg config.Config, termMode bool) (zerolog.Logger, func(), error) {
	opts := logging.Options{Level: cfg.LogLevel}
	if cfg.LogConsole && !termMode {
		opts.Console = os.Stdout
	}
	closeLog := func() {}
	if cfg.LogFile != "" {
		f, err := logging.OpenFile(cfg.LogFile)
		if err != nil {
			return zerolog.Nop(), closeLog, err
		}
		opts.File = f
		closeLog = func() { _ = f.Close() }
	}
	return logging.New(opts), closeLog, nil
}

type soundPort interface {
	game.SoundPlayer
	Cleanup()
}

type silent struct{ game.NopSound }

func (silent) Cleanup() {}

func setupAudio(cfg config.Config, logger zerolog.Logger) soundPort {
	if !cfg.Audio {
		return silent{}
	}
	sm := audio.NewSoundManager(cfg.Volume, logger)
	if err := sm.Initialize(); err != nil {
		logger.Warn().Err(err).Msg("audio unavailable, continuing without sound")
		return silent{}
	}
	return sm
}

func runTerm(g *game.Game, hud *game.HUDState, seed int64, logger zerolog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	bot := game.NewBot(rand.New(rand.NewSource(seed))) // #nosec G404 -- game AI, not security
	return term.New(screen, g, hud, bot, logger).Run(ctx)
}

func record(path string, seed int64, source string, g *game.Game, logger zerolog.Logger) error {
	if g.MatchLog().CountCategory(game.CatAim, "launch") == 0 {
		return nil
	}
	db, err := store.Open(path, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	m, err := store.FromLog(seed, source, g.MatchLog(), g.Players())
	if err != nil {
		return err
	}
	if err := db.Save(&m); err != nil {
		return err
	}
	logger.Info().Uint("match", m.ID).Int("throws", len(m.Throws)).Msg("match recorded")
	return nil
}
