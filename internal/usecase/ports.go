package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/fantasy-statline/internal/domain/player"
	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
	"github.com/riskibarqy/fantasy-statline/internal/domain/statline"
)

type GameState string

const (
	GameStateScheduled  GameState = "scheduled"
	GameStateInProgress GameState = "in_progress"
	GameStateFinal      GameState = "final"
)

// ScheduledGame is one entry of the upstream schedule for a day.
type ScheduledGame struct {
	ID     string
	Sport  sport.Sport
	State  GameState
	Season int
	Week   int
}

// Started reports whether the game has box-score data worth fetching.
func (g ScheduledGame) Started() bool {
	return g.State == GameStateInProgress || g.State == GameStateFinal
}

// GameProvider is the schedule lookup plus game detail fetch.
type GameProvider interface {
	ListGames(ctx context.Context, s sport.Sport, date time.Time) ([]ScheduledGame, error)
	FetchGameStats(ctx context.Context, s sport.Sport, gameID string) (statline.GameStats, error)
}

// RosterProvider lists every active player for a sport.
type RosterProvider interface {
	FetchActiveRoster(ctx context.Context, s sport.Sport) ([]player.Player, error)
}

// CycleLock guards a sport against overlapping ingest cycles across processes.
type CycleLock interface {
	TryAcquire(ctx context.Context, key string) (release func(), ok bool, err error)
}

// Metrics receives pipeline counters. Nil-safe implementations are expected.
type Metrics interface {
	ObserveCycle(s sport.Sport, outcome string, duration time.Duration)
	AddGamesSkipped(s sport.Sport, n int)
	AddPlayersDropped(s sport.Sport, n int)
	AddRecordsWritten(s sport.Sport, n int)
	AddRetentionDeleted(n int64)
}

type nopMetrics struct{}

func (nopMetrics) ObserveCycle(sport.Sport, string, time.Duration) {}
func (nopMetrics) AddGamesSkipped(sport.Sport, int)                {}
func (nopMetrics) AddPlayersDropped(sport.Sport, int)              {}
func (nopMetrics) AddRecordsWritten(sport.Sport, int)              {}
func (nopMetrics) AddRetentionDeleted(int64)                       {}
