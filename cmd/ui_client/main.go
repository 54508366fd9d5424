package main

import (
	"context"
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/GridSkirmish/internal/app"
	"github.com/mitchelldurbincs/GridSkirmish/internal/config"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game"
	"github.com/mitchelldurbincs/GridSkirmish/internal/ui"
	"github.com/mitchelldurbincs/GridSkirmish/internal/ui/renderer"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	env := flag.String("env", "", "Environment overlay (config.<env>.yaml)")
	seed := flag.Int64("seed", 0, "Map seed (0 to use config, or random when unset)")
	logEvents := flag.Bool("log-events", false, "Log every game event at debug level")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if *env != "" {
		if err := config.LoadEnvironmentConfig(*env); err != nil {
			log.Fatal().Err(err).Str("env", *env).Msg("Failed to load environment config")
		}
	}
	if *seed != 0 {
		if err := config.Set("sim.seed", *seed); err != nil {
			log.Fatal().Err(err).Msg("Invalid seed")
		}
	}
	cfg := config.Get()

	logger := app.SetupLogging(cfg.Logging, os.Stderr)
	log.Logger = logger

	obs, err := app.Attach(cfg, nil, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to attach observers")
	}
	defer func() {
		obs.Report(context.Background())
		if err := obs.Close(context.Background()); err != nil {
			logger.Error().Err(err).Msg("Failed to close observers")
		}
	}()

	gc := game.ConfigFromSettings(cfg, logger)
	gc.EventBus = obs.Bus
	gc.LogEvents = *logEvents

	engine, err := game.NewEngine(context.Background(), gc)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create engine")
	}
	logger.Info().Str("game_id", engine.GameID()).Msg("Game created")

	uiGame := ui.NewUIGame(engine, renderer.PaletteFromConfig(cfg.Colors), logger)

	if config.ConfigFilePath() != "" {
		config.WatchConfig(func(c *config.Config) {
			log.Logger = app.SetupLogging(c.Logging, os.Stderr)
			uiGame.SetPalette(renderer.PaletteFromConfig(c.Colors))
			log.Info().Str("file", config.ConfigFilePath()).Msg("Config reloaded")
		}, func(err error) {
			log.Warn().Err(err).Msg("Ignoring config change")
		})
	}

	ebiten.SetWindowSize(int(engine.Grid().WidthPx()), int(engine.Grid().HeightPx()))
	ebiten.SetWindowTitle(cfg.UI.Title)
	ebiten.SetTPS(cfg.UI.TPS)

	if err := ebiten.RunGame(uiGame); err != nil {
		logger.Error().Err(err).Msg("Game loop exited with error")
	}
}
