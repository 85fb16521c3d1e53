// cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/powerplayhq/powerplay/internal/api"
	"github.com/powerplayhq/powerplay/internal/config"
	"github.com/powerplayhq/powerplay/internal/db"
	"github.com/powerplayhq/powerplay/internal/games"
	"github.com/powerplayhq/powerplay/internal/scheduler"
	"github.com/powerplayhq/powerplay/internal/stats"
	syncpkg "github.com/powerplayhq/powerplay/internal/sync"
	"github.com/powerplayhq/powerplay/internal/teams"
)

const shutdownTimeout = 30 * time.Second

func setupLogger(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	setupLogger(cfg.App.Environment)

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close()

	var redisClient *redis.Client
	if cfg.Cache.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		defer redisClient.Close()
	}
	cache := stats.NewTotalsCache(redisClient)

	engine, err := stats.NewEngine(database, cache)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create stats engine")
	}
	totals, err := stats.NewTotalsService(database, cache)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create totals service")
	}
	gameService, err := games.NewService(database, engine)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create game service")
	}
	roster, err := teams.NewRosterService(database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create roster service")
	}
	primary, err := teams.NewPrimaryResolver(database, cfg.PrimaryTeam)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create primary team resolver")
	}

	if err := scheduler.Init(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize scheduler")
	}
	if cfg.Sync.APIBase != "" {
		importer, err := syncpkg.NewImporter(database, syncpkg.NewClient(cfg.Sync.APIBase, nil), engine)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create results importer")
		}
		if err := scheduler.RegisterSyncJob(importer, cfg.Sync); err != nil {
			log.Fatal().Err(err).Msg("Failed to register results sync job")
		}
	}
	if err := scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start scheduler")
	}

	server := newServer(cfg, &api.Handlers{
		DB:      database,
		Games:   gameService,
		Roster:  roster,
		Totals:  totals,
		Primary: primary,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", server.Addr).Msg("Starting server")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := scheduler.Stop(); err != nil {
			log.Error().Err(err).Msg("Scheduler shutdown failed")
		}
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}
