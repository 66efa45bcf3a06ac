// Package main is the entry point for glyphquest.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/glyphquest/internal/config"
	"github.com/samdwyer/glyphquest/internal/game"
	"github.com/samdwyer/glyphquest/internal/logging"
	"github.com/samdwyer/glyphquest/internal/telemetry"
	"github.com/samdwyer/glyphquest/internal/ui"
	"github.com/samdwyer/glyphquest/internal/world"
)

const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:])
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "glyphquest: %v\n", err)
		os.Exit(1)
	}
}

// run starts the game and returns once it quits. Every deferred cleanup runs
// before the error reaches main.
func run(ctx context.Context, args []string) (err error) {
	flags := flag.NewFlagSet("glyphquest", flag.ContinueOnError)
	configPath := flags.String("config", "", "path to a glyphquest.yaml config file")
	generateMap := flags.String("generate-map", "", "write a generated overworld map to this path and exit")
	if err := flags.Parse(args); err != nil {
		return err
	}

	// Local overrides such as GLYPHQUEST_TELEMETRY_API_KEY
	if err := config.LoadDotEnv(".env"); err != nil {
		logrus.Warnf("Note: .env file not loaded: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if *generateMap != "" {
		return writeGeneratedMap(ctx, cfg, *generateMap)
	}

	logger, logFile := logging.New(cfg.Log)
	defer logFile.Close()

	sessionID := uuid.NewString()
	log := logger.WithFields(logrus.Fields{"component": "main", "session": sessionID})
	defer func() {
		if err != nil {
			log.WithError(err).Error("glyphquest exited with an error")
		}
	}()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Setup(ctx, telemetry.Options{
			Endpoint:  cfg.Telemetry.Endpoint,
			Headers:   cfg.Telemetry.Headers(),
			SessionID: sessionID,
			Version:   version,
		})
		if err != nil {
			// Continue without telemetry - game still works
			log.Warnf("Telemetry setup failed, running without observability: %v", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					log.Errorf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	grid, err := world.LoadMapFile(cfg.Map.Path)
	if err != nil {
		return fmt.Errorf("failed to load map: %w", err)
	}

	g, err := game.New(ctx, game.Options{Config: cfg, Grid: grid, Logger: logger, SessionID: sessionID})
	if err != nil {
		return fmt.Errorf("failed to initialize game: %w", err)
	}
	defer g.Close()

	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	defer screen.Close()

	if err := g.Run(ctx, screen); err != nil && ctx.Err() == nil {
		return fmt.Errorf("game error: %w", err)
	}
	return nil
}

// writeGeneratedMap writes a BSP-generated overworld to path.
func writeGeneratedMap(ctx context.Context, cfg *config.Config, path string) error {
	seed := cfg.Map.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gen := world.NewGenerator(world.DefaultWidth, world.DefaultHeight, seed)
	grid := gen.Generate(ctx)

	if err := os.WriteFile(path, []byte(grid.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Printf("Wrote %dx%d map with %d rooms to %s (seed %d)\n", grid.Width, grid.Height, gen.RoomCount(), path, seed)
	return nil
}
