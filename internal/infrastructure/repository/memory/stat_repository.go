package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
	"github.com/riskibarqy/fantasy-statline/internal/domain/statline"
)

type dailyKey struct {
	sport    sport.Sport
	playerID string
	date     time.Time
}

type weeklyKey struct {
	sport    sport.Sport
	playerID string
	season   int
	week     int
}

// StatRepository stores raw stat lines with the same overwrite-by-presence
// semantics as the SQL upsert.
type StatRepository struct {
	mu     sync.RWMutex
	daily  map[dailyKey]statline.Line
	weekly map[weeklyKey]statline.Line
}

func NewStatRepository() *StatRepository {
	return &StatRepository{
		daily:  make(map[dailyKey]statline.Line),
		weekly: make(map[weeklyKey]statline.Line),
	}
}

func (r *StatRepository) UpsertDaily(_ context.Context, s sport.Sport, date time.Time, stats statline.GameStats) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	day := statline.TruncateDay(date)
	for playerID, line := range stats {
		key := dailyKey{sport: s, playerID: playerID, date: day}
		r.daily[key] = overwrite(r.daily[key], line)
	}
	return len(stats), nil
}

func (r *StatRepository) UpsertWeekly(_ context.Context, s sport.Sport, season, week int, stats statline.GameStats) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for playerID, line := range stats {
		key := weeklyKey{sport: s, playerID: playerID, season: season, week: week}
		r.weekly[key] = overwrite(r.weekly[key], line)
	}
	return len(stats), nil
}

func (r *StatRepository) ListDaily(_ context.Context, s sport.Sport, from, to time.Time, playerIDs []string) ([]statline.DailyRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := toSet(playerIDs)
	out := make([]statline.DailyRecord, 0)
	for key, line := range r.daily {
		if key.sport != s || key.date.Before(from) || !key.date.Before(to) {
			continue
		}
		if _, ok := wanted[key.playerID]; !ok && wanted != nil {
			continue
		}
		out = append(out, statline.DailyRecord{Sport: s, PlayerID: key.playerID, Date: key.date, Stats: line.Clone()})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out, nil
}

func (r *StatRepository) ListWeekly(_ context.Context, s sport.Sport, season, week int, playerIDs []string) ([]statline.WeeklyRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := toSet(playerIDs)
	out := make([]statline.WeeklyRecord, 0)
	for key, line := range r.weekly {
		if key.sport != s || key.season != season || key.week != week {
			continue
		}
		if _, ok := wanted[key.playerID]; !ok && wanted != nil {
			continue
		}
		out = append(out, statline.WeeklyRecord{Sport: s, PlayerID: key.playerID, Season: season, Week: week, Stats: line.Clone()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}

func (r *StatRepository) DeleteDailyBefore(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for key := range r.daily {
		if key.date.Before(cutoff) {
			delete(r.daily, key)
			deleted++
		}
	}
	return deleted, nil
}

func overwrite(existing, incoming statline.Line) statline.Line {
	out := existing.Clone()
	for name, value := range incoming {
		out[name] = value
	}
	return out
}

// toSet returns nil for an empty filter, meaning every player.
func toSet(ids []string) map[string]struct{} {
	if len(ids) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}
