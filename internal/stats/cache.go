// internal/stats/cache.go
package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const totalsCacheTTL = 5 * time.Second

var allFilters = []CompetitionFilter{FilterLeague, FilterTournament, FilterFriendly, FilterAll}

// TotalsCache is a short-TTL Redis cache for season totals. Misses and
// Redis failures both fall through to a fresh computation; invalidation
// after a recompute is best effort.
type TotalsCache struct {
	client *redis.Client
}

func NewTotalsCache(client *redis.Client) *TotalsCache {
	if client == nil {
		return nil
	}
	return &TotalsCache{client: client}
}

// Key layout: playerstats:totals:v1:<player>:<league|none>:<filter>.
// League id 0 stands for "no league context".
func totalsKey(playerID, leagueID int64, filter CompetitionFilter) string {
	league := "none"
	if leagueID != 0 {
		league = fmt.Sprintf("%d", leagueID)
	}
	return fmt.Sprintf("playerstats:totals:v1:%d:%s:%s", playerID, league, filter)
}

func (c *TotalsCache) Get(ctx context.Context, playerID, leagueID int64, filter CompetitionFilter) (Totals, bool) {
	if c == nil {
		return Totals{}, false
	}
	data, err := c.client.Get(ctx, totalsKey(playerID, leagueID, filter)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Ctx(ctx).Warn().Err(err).Msg("Totals cache read failed")
		}
		return Totals{}, false
	}
	var totals Totals
	if err := json.Unmarshal(data, &totals); err != nil {
		return Totals{}, false
	}
	return totals, true
}

func (c *TotalsCache) Set(ctx context.Context, playerID, leagueID int64, filter CompetitionFilter, totals Totals) {
	if c == nil {
		return
	}
	data, err := json.Marshal(totals)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, totalsKey(playerID, leagueID, filter), data, totalsCacheTTL).Err(); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("Totals cache write failed")
	}
}

// Invalidate deletes every filter variant for the given players and
// league contexts. Include league id 0 for the "no league" variant.
func (c *TotalsCache) Invalidate(ctx context.Context, playerIDs, leagueIDs []int64) error {
	if c == nil || len(playerIDs) == 0 {
		return nil
	}
	if len(leagueIDs) == 0 {
		leagueIDs = []int64{0}
	}

	keys := make([]string, 0, len(playerIDs)*len(leagueIDs)*len(allFilters))
	for _, playerID := range playerIDs {
		for _, leagueID := range leagueIDs {
			for _, filter := range allFilters {
				keys = append(keys, totalsKey(playerID, leagueID, filter))
			}
		}
	}
	return c.client.Del(ctx, keys...).Err()
}
