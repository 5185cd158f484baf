// Package main is the entry point for Rogue1980.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/samdwyer/rogue1980/internal/game"
	"github.com/samdwyer/rogue1980/internal/gamedata"
	"github.com/samdwyer/rogue1980/internal/scoreboard"
	"github.com/samdwyer/rogue1980/internal/telemetry"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := game.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Flags override the environment
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "dungeon seed (0 picks one)")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "map width")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "map height")
	flag.Parse()

	if err := run(context.Background(), cfg); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
}

// run plays one game.
func run(ctx context.Context, cfg game.Config) error {
	// Initialize telemetry
	shutdown, err := telemetry.Setup(ctx, cfg.TelemetryConfig())
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Game will run without observability")
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	tables, err := gamedata.LoadTables()
	if err != nil {
		return fmt.Errorf("load game data: %w", err)
	}

	var scores *scoreboard.Store
	if cfg.ScoreboardPath != "" {
		scores, err = scoreboard.Open(cfg.ScoreboardPath)
		if err != nil {
			log.Printf("Warning: scoreboard unavailable: %v", err)
		} else {
			defer scores.Close()
		}
	}

	// Create and run game
	g, err := game.New(ctx, cfg, tables, scores)
	if err != nil {
		return fmt.Errorf("initialize game: %w", err)
	}
	defer g.Close()

	if err := g.Run(ctx); err != nil {
		return fmt.Errorf("game error: %w", err)
	}
	return nil
}
