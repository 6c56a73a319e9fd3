package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/riskibarqy/nhl-fa-projections/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players []player.Player
	index   map[int64]player.Player
}

// NewPlayerRepository keeps players ordered by projected AAV, highest first,
// matching the store ordering.
func NewPlayerRepository(players []player.Player) *PlayerRepository {
	ordered := make([]player.Player, 0, len(players))
	index := make(map[int64]player.Player, len(players))
	for _, p := range players {
		p = player.Normalize(p)
		ordered = append(ordered, p)
		index[p.ID] = p
	}
	slices.SortStableFunc(ordered, func(a, b player.Player) int {
		return cmp.Compare(b.ProjectedAAV, a.ProjectedAAV)
	})

	return &PlayerRepository{
		players: ordered,
		index:   index,
	}
}

func (r *PlayerRepository) List(_ context.Context, filter player.ListFilter) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.players))
	for _, p := range r.players {
		if filter.Matches(p) {
			out = append(out, p)
		}
	}

	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, id int64) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.index[id]
	return p, ok, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, ids []int64) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(ids))
	for _, id := range ids {
		p, ok := r.index[id]
		if !ok {
			continue
		}
		out = append(out, p)
	}

	return out, nil
}
