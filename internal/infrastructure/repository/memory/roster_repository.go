package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fantasy-statline/internal/domain/roster"
)

type RosterRepository struct {
	mu       sync.RWMutex
	byLeague map[int64][]roster.Assignment
}

func NewRosterRepository(assignments []roster.Assignment) *RosterRepository {
	byLeague := make(map[int64][]roster.Assignment)
	for _, a := range assignments {
		byLeague[a.LeagueID] = append(byLeague[a.LeagueID], a)
	}
	return &RosterRepository{byLeague: byLeague}
}

func (r *RosterRepository) ListByLeague(_ context.Context, leagueID int64) ([]roster.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.byLeague[leagueID]
	out := make([]roster.Assignment, 0, len(items))
	out = append(out, items...)
	return out, nil
}

// Set replaces the position of a player, as a lineup change would.
func (r *RosterRepository) Set(a roster.Assignment) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.byLeague[a.LeagueID]
	for i := range items {
		if items[i].PlayerID == a.PlayerID {
			items[i] = a
			return
		}
	}
	r.byLeague[a.LeagueID] = append(items, a)
}
