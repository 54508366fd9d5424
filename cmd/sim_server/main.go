package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/mitchelldurbincs/GridSkirmish/internal/app"
	"github.com/mitchelldurbincs/GridSkirmish/internal/config"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/entity"
	"github.com/mitchelldurbincs/GridSkirmish/internal/monitoring"
	"github.com/mitchelldurbincs/GridSkirmish/internal/sim"
)

const serviceName = "gridskirmish.Simulation"

func main() {
	configPath := flag.String("config", "", "Path to config file")
	port := flag.Int("port", -1, "Health server port (-1 to use config default)")
	host := flag.String("host", "", "Health server host (empty to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	maxSteps := flag.Int("max-steps", -1, "Steps to run, 0 for unlimited (-1 to use config default)")
	realtime := flag.Bool("realtime", false, "Pace steps against the wall clock")
	record := flag.String("record", "", "Write an after-action database to this path")
	seed := flag.Int64("seed", 0, "Seed for map and commands (0 to use config default)")
	factions := flag.String("factions", "player,computer", "Comma separated factions the driver plays")
	unit := flag.String("unit", "tank", "Unit type the driver buys")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if *logLevel != "" {
		if err := config.Set("logging.level", *logLevel); err != nil {
			log.Fatal().Err(err).Msg("Invalid log level")
		}
	}
	if *record != "" {
		if err := config.Set("recorder.enabled", true); err != nil {
			log.Fatal().Err(err).Msg("Failed to enable recorder")
		}
		if err := config.Set("recorder.path", *record); err != nil {
			log.Fatal().Err(err).Msg("Failed to set recorder path")
		}
	}
	if *seed != 0 {
		if err := config.Set("sim.seed", *seed); err != nil {
			log.Fatal().Err(err).Msg("Invalid seed")
		}
	}

	driven, err := sim.ParseFactions(*factions)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid factions")
	}
	unitType, err := entity.ParseUnitType(*unit)
	if err != nil {
		log.Fatal().Err(err).Str("unit", *unit).Msg("Invalid unit type")
	}

	cfg := config.Get()
	if *port == -1 {
		*port = cfg.Server.Port
	}
	if *host == "" {
		*host = cfg.Server.Host
	}
	if *maxSteps == -1 {
		*maxSteps = cfg.Server.MaxSteps
	}
	if !*realtime {
		*realtime = cfg.Server.Realtime
	}

	logger := app.SetupLogging(cfg.Logging, os.Stdout)
	log.Logger = logger

	stepDur := time.Duration(cfg.Server.StepMs) * time.Millisecond
	monitor := monitoring.NewRuntimeMonitor(logger, 30*time.Second, stepDur)

	obs, err := app.Attach(cfg, monitor, logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to attach observers")
	}

	gc := game.ConfigFromSettings(cfg, logger)
	gc.EventBus = obs.Bus
	gc.LogEvents = zerologDebug(cfg.Logging.Level)
	engine, err := game.NewEngine(context.Background(), gc)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create engine")
	}

	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", *host, *port))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to listen")
	}

	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(serviceName, grpc_health_v1.HealthCheckResponse_SERVING)
	if cfg.Server.EnableReflection {
		reflection.Register(grpcServer)
		log.Info().Msg("gRPC reflection enabled")
	}

	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			log.Error().Err(err).Msg("Health server stopped")
		}
	}()
	log.Info().
		Str("address", lis.Addr().String()).
		Str("game_id", engine.GameID()).
		Int("max_steps", *maxSteps).
		Bool("realtime", *realtime).
		Str("factions", *factions).
		Msg("Simulation server started")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()
	go monitor.Run(ctx)

	opts := sim.DefaultOptions()
	opts.Step = stepDur
	opts.MaxSteps = *maxSteps
	opts.Realtime = *realtime
	opts.Factions = driven
	opts.UnitType = unitType

	rngSeed := cfg.Sim.Seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	driver := sim.NewDriver(engine, rand.New(rand.NewSource(rngSeed)), opts, monitor, logger)
	res, runErr := driver.Run(ctx)
	if runErr != nil {
		log.Error().Err(runErr).Msg("Simulation failed")
	}

	log.Info().
		Int("steps", res.Steps).
		Dur("sim_time", res.SimTime).
		Int("commands", res.Commands).
		Int("accepted", res.Accepted).
		Bool("ended", res.Ended).
		Str("winner", res.Winner.String()).
		Msg("Simulation finished")
	fmt.Print(engine.Board(false))

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	healthServer.SetServingStatus(serviceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	if ctx.Err() != nil {
		time.Sleep(time.Duration(cfg.Server.GracefulShutdownDelay) * time.Second)
	}
	grpcServer.GracefulStop()
	cancel()

	obs.Report(context.Background())
	if err := obs.Close(context.Background()); err != nil {
		log.Error().Err(err).Msg("Failed to close observers")
	}
	log.Info().Msg("Server shutdown complete")
	if runErr != nil {
		os.Exit(1)
	}
}

func zerologDebug(level string) bool { return level == "debug" }
