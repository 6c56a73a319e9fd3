package cache

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/riskibarqy/nhl-fa-projections/internal/domain/player"
	"github.com/riskibarqy/nhl-fa-projections/internal/domain/playerstats"
	basecache "github.com/riskibarqy/nhl-fa-projections/internal/platform/cache"
)

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context, filter player.ListFilter) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, playerListKey(filter), func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (player.Player, bool, error) {
	key := "player:id:" + strconv.FormatInt(id, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return cachedPlayerByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}

	cached, _ := v.(cachedPlayerByID)
	return cached.value, cached.exists, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, ids []int64) ([]player.Player, error) {
	if len(ids) == 0 {
		return []player.Player{}, nil
	}

	v, err := r.cache.GetOrLoad(ctx, "player:ids:"+idsKey(ids), func(ctx context.Context) (any, error) {
		items, err := r.next.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

type cachedPlayerByID struct {
	value  player.Player
	exists bool
}

type PlayerStatsRepository struct {
	next  playerstats.Repository
	cache *basecache.Store
}

func NewPlayerStatsRepository(next playerstats.Repository, cache *basecache.Store) *PlayerStatsRepository {
	return &PlayerStatsRepository{next: next, cache: cache}
}

func (r *PlayerStatsRepository) HasPlayer(ctx context.Context, playerID int64) (bool, error) {
	key := "stats:exists:" + strconv.FormatInt(playerID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return r.next.HasPlayer(ctx, playerID)
	})
	if err != nil {
		return false, err
	}

	exists, _ := v.(bool)
	return exists, nil
}

func (r *PlayerStatsRepository) GetWideRow(ctx context.Context, playerID int64) (playerstats.WideRow, bool, error) {
	key := "stats:wide:" + strconv.FormatInt(playerID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		row, exists, err := r.next.GetWideRow(ctx, playerID)
		if err != nil {
			return nil, err
		}
		return cachedWideRow{value: cloneWideRow(row), exists: exists}, nil
	})
	if err != nil {
		return playerstats.WideRow{}, false, err
	}

	cached, _ := v.(cachedWideRow)
	return cloneWideRow(cached.value), cached.exists, nil
}

func (r *PlayerStatsRepository) ListWideRows(ctx context.Context, playerIDs []int64) ([]playerstats.WideRow, error) {
	if len(playerIDs) == 0 {
		return []playerstats.WideRow{}, nil
	}

	v, err := r.cache.GetOrLoad(ctx, "stats:wide:ids:"+idsKey(playerIDs), func(ctx context.Context) (any, error) {
		return r.next.ListWideRows(ctx, playerIDs)
	})
	if err != nil {
		return nil, err
	}

	rows, _ := v.([]playerstats.WideRow)
	out := make([]playerstats.WideRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, cloneWideRow(row))
	}
	return out, nil
}

type cachedWideRow struct {
	value  playerstats.WideRow
	exists bool
}

func cloneWideRow(row playerstats.WideRow) playerstats.WideRow {
	row.Seasons = append([]playerstats.SeasonRow(nil), row.Seasons...)
	return row
}

func playerListKey(filter player.ListFilter) string {
	var b strings.Builder
	b.WriteString("player:list:")
	b.WriteString(strings.ToLower(strings.TrimSpace(filter.Search)))
	b.WriteByte('|')
	b.WriteString(string(filter.Position))
	b.WriteByte('|')
	b.WriteString(string(filter.ValueTier))
	b.WriteByte('|')
	b.WriteString(string(filter.ScoreBand))
	return b.String()
}

// idsKey is order-insensitive so "1,2" and "2,1" share an entry.
func idsKey(ids []int64) string {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	parts := make([]string, 0, len(sorted))
	for _, id := range sorted {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}
