// Package teams holds club-side services: the primary-team resolver
// and roster management.
package teams

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/powerplayhq/powerplay/internal/config"
	"github.com/powerplayhq/powerplay/internal/db"
	"github.com/powerplayhq/powerplay/internal/db/store"
)

// PrimaryResolver resolves the club team that scopes the public pages.
// It is constructed once at startup from configuration and injected
// where needed; there is no process-lifetime cache to invalidate.
type PrimaryResolver struct {
	db  *db.DB
	cfg config.PrimaryTeamConfig
}

func NewPrimaryResolver(database *db.DB, cfg config.PrimaryTeamConfig) (*PrimaryResolver, error) {
	if database == nil {
		return nil, errors.New("primary team resolver requires a database")
	}
	return &PrimaryResolver{db: database, cfg: cfg}, nil
}

// Resolve picks the primary team: configured ID first, then
// case-insensitive configured name, then the first team by id. Returns
// nil when no team exists at all.
func (r *PrimaryResolver) Resolve(ctx context.Context) (*store.Team, error) {
	q := r.db.Queries

	if r.cfg.ID != 0 {
		team, err := q.GetTeam(ctx, r.cfg.ID)
		if err == nil {
			return &team, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("load primary team %d: %w", r.cfg.ID, err)
		}
	}

	if r.cfg.Name != "" {
		team, err := q.GetTeamByNameFold(ctx, r.cfg.Name)
		if err == nil {
			return &team, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("load primary team %q: %w", r.cfg.Name, err)
		}
	}

	team, err := q.FirstTeam(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load fallback primary team: %w", err)
	}
	return &team, nil
}
