package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-statline/internal/domain/performance"
)

type PerformanceRepository struct {
	mu    sync.RWMutex
	items map[performance.Key]performance.Record
}

func NewPerformanceRepository() *PerformanceRepository {
	return &PerformanceRepository{items: make(map[performance.Key]performance.Record)}
}

func (r *PerformanceRepository) ListByLeagueWeek(_ context.Context, leagueID int64, week int) ([]performance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]performance.Record, 0)
	for key, record := range r.items {
		if key.LeagueID == leagueID && key.Week == week {
			out = append(out, record)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}

func (r *PerformanceRepository) Upsert(_ context.Context, records []performance.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, incoming := range records {
		key := incoming.Key()
		existing, ok := r.items[key]
		if !ok {
			r.items[key] = incoming
			continue
		}
		r.items[key] = performance.Apply(existing, incoming)
	}
	return nil
}
