package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"

	"github.com/powerplayhq/powerplay/internal/config"
	syncpkg "github.com/powerplayhq/powerplay/internal/sync"
)

const syncJobTimeout = 5 * time.Minute

// RegisterSyncJob schedules the periodic results import. An empty cron
// expression disables it.
func RegisterSyncJob(importer *syncpkg.Importer, cfg config.SyncConfig) error {
	if cfg.Cron == "" {
		log.Info().Msg("Results sync job disabled: no cron configured")
		return nil
	}
	if importer == nil {
		return fmt.Errorf("sync job requires an importer")
	}

	jobName := "results_sync"
	jobLogger := log.With().
		Str("component", "results_sync_job").
		Str("job_name", jobName).
		Str("cron", cfg.Cron).
		Logger()

	opts := syncpkg.Options{
		LeagueID:          cfg.LeagueID,
		LeagueName:        cfg.LeagueName,
		LeagueSeason:      cfg.LeagueSeason,
		ExpandLeagueDates: cfg.ExpandLeagueDates,
	}

	_, err := AddJob(jobName, cfg.Cron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), syncJobTimeout)
		defer cancel()
		ctx = jobLogger.WithContext(ctx)

		summary, err := importer.Run(ctx, opts)
		if err != nil {
			jobLogger.Error().Err(err).Msg("Results sync failed")
			return
		}
		jobLogger.Info().Str("summary", summary.String()).Msg("Results sync completed")
	}, gocron.WithSingletonMode(gocron.LimitModeWait))
	if err != nil {
		return fmt.Errorf("add results sync job: %w", err)
	}
	return nil
}
