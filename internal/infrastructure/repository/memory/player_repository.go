package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fantasy-statline/internal/domain/player"
	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
)

type PlayerRepository struct {
	mu    sync.RWMutex
	items map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	items := make(map[string]player.Player, len(players))
	for _, p := range players {
		items[p.ID] = p
	}
	return &PlayerRepository{items: items}
}

func (r *PlayerRepository) KnownIDs(_ context.Context, s sport.Sport, ids []string) (map[string]struct{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if p, ok := r.items[id]; ok && p.Sport == s {
			out[id] = struct{}{}
		}
	}
	return out, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, ids []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.items[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PlayerRepository) UpsertMany(_ context.Context, players []player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range players {
		r.items[p.ID] = p
	}
	return nil
}
