package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-statline/internal/domain/league"
	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
)

type LeagueRepository struct {
	mu    sync.RWMutex
	items map[int64]league.League
}

func NewLeagueRepository(leagues []league.League) *LeagueRepository {
	items := make(map[int64]league.League, len(leagues))
	for _, l := range leagues {
		items[l.ID] = l
	}
	return &LeagueRepository{items: items}
}

func (r *LeagueRepository) ListActiveBySport(_ context.Context, s sport.Sport) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0)
	for _, l := range r.items {
		if l.Sport == s && l.Active() {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *LeagueRepository) GetByID(_ context.Context, id int64) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.items[id]
	return l, ok, nil
}

// Put inserts or replaces a league; league management owns this in production.
func (r *LeagueRepository) Put(l league.League) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[l.ID] = l
}
