package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/nhl-fa-projections/internal/domain/playerstats"
)

type PlayerStatsRepository struct {
	mu   sync.RWMutex
	rows map[int64]playerstats.WideRow
}

func NewPlayerStatsRepository(rows []playerstats.WideRow) *PlayerStatsRepository {
	index := make(map[int64]playerstats.WideRow, len(rows))
	for _, row := range rows {
		index[row.PlayerID] = row
	}
	return &PlayerStatsRepository{rows: index}
}

func (r *PlayerStatsRepository) HasPlayer(_ context.Context, playerID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.rows[playerID]
	return ok, nil
}

func (r *PlayerStatsRepository) GetWideRow(_ context.Context, playerID int64) (playerstats.WideRow, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[playerID]
	return row, ok, nil
}

func (r *PlayerStatsRepository) ListWideRows(_ context.Context, playerIDs []int64) ([]playerstats.WideRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]playerstats.WideRow, 0, len(playerIDs))
	for _, id := range playerIDs {
		row, ok := r.rows[id]
		if !ok {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}
