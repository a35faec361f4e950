package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-statline/internal/domain/matchup"
)

type MatchupRepository struct {
	mu    sync.RWMutex
	items map[int64]matchup.Matchup
}

func NewMatchupRepository(matchups []matchup.Matchup) *MatchupRepository {
	items := make(map[int64]matchup.Matchup, len(matchups))
	for _, m := range matchups {
		items[m.ID] = m
	}
	return &MatchupRepository{items: items}
}

func (r *MatchupRepository) ListByLeagueWeek(_ context.Context, leagueID int64, week int) ([]matchup.Matchup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchup.Matchup, 0)
	for _, m := range r.items {
		if m.LeagueID == leagueID && m.Week == week {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpdateScores only touches matchups that already exist.
func (r *MatchupRepository) UpdateScores(_ context.Context, matchups []matchup.Matchup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range matchups {
		existing, ok := r.items[m.ID]
		if !ok {
			continue
		}
		existing.HomeScore = m.HomeScore
		existing.AwayScore = m.AwayScore
		r.items[m.ID] = existing
	}
	return nil
}
