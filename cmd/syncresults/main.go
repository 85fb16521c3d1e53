// cmd/syncresults/main.go
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/powerplayhq/powerplay/internal/config"
	"github.com/powerplayhq/powerplay/internal/db"
	"github.com/powerplayhq/powerplay/internal/stats"
	syncpkg "github.com/powerplayhq/powerplay/internal/sync"
)

func main() {
	var (
		configPath        string
		apiBase           string
		leagueID          int64
		leagueName        string
		leagueSeason      string
		dryRun            bool
		expandLeagueDates bool
	)

	cmd := &cobra.Command{
		Use:   "syncresults",
		Short: "Import league results from the external results API",
		RunE: func(cmd *cobra.Command, args []string) error {
			zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if apiBase == "" {
				apiBase = cfg.Sync.APIBase
			}
			if apiBase == "" {
				return fmt.Errorf("no results API configured; set sync.api_base or pass --api-base")
			}
			if leagueID == 0 {
				leagueID = cfg.Sync.LeagueID
			}
			if leagueName == "" {
				leagueName = cfg.Sync.LeagueName
			}
			if leagueSeason == "" {
				leagueSeason = cfg.Sync.LeagueSeason
			}
			if !cmd.Flags().Changed("expand-league-dates") {
				expandLeagueDates = cfg.Sync.ExpandLeagueDates
			}

			database, err := db.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer database.Close()

			engine, err := stats.NewEngine(database, stats.NewTotalsCache(nil))
			if err != nil {
				return err
			}
			importer, err := syncpkg.NewImporter(database, syncpkg.NewClient(apiBase, nil), engine)
			if err != nil {
				return err
			}

			ctx := log.Logger.WithContext(cmd.Context())
			summary, err := importer.Run(ctx, syncpkg.Options{
				LeagueID:          leagueID,
				LeagueName:        leagueName,
				LeagueSeason:      leagueSeason,
				DryRun:            dryRun,
				ExpandLeagueDates: expandLeagueDates,
			})
			if err != nil {
				return err
			}

			fmt.Println(summary.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "config/config.yaml", "path to configuration file")
	cmd.Flags().StringVar(&apiBase, "api-base", "", "base URL of the results API (overrides config)")
	cmd.Flags().Int64Var(&leagueID, "league-id", 0, "ID ligy, do které se zápasy importují")
	cmd.Flags().StringVar(&leagueName, "league-name", "", "název ligy (vytvoří se, pokud neexistuje)")
	cmd.Flags().StringVar(&leagueSeason, "league-season", "", "sezóna ligy, např. 2025/2026")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "pouze vypsat změny, nic nezapisovat")
	cmd.Flags().BoolVar(&expandLeagueDates, "expand-league-dates", false, "rozšířit datum ligy podle importovaných zápasů")

	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Results import failed")
		os.Exit(1)
	}
}
