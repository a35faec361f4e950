package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/riskibarqy/fantasy-statline/internal/domain/league"
	"github.com/riskibarqy/fantasy-statline/internal/domain/matchup"
	"github.com/riskibarqy/fantasy-statline/internal/domain/player"
	"github.com/riskibarqy/fantasy-statline/internal/domain/roster"
	"github.com/riskibarqy/fantasy-statline/internal/domain/ruleset"
	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
	"github.com/riskibarqy/fantasy-statline/internal/domain/statline"
	"github.com/riskibarqy/fantasy-statline/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-statline/internal/platform/id"
	"github.com/riskibarqy/fantasy-statline/internal/platform/logging"
)

type pipelineFixture struct {
	games    *fakeGames
	stats    *memory.StatRepository
	matchups *memory.MatchupRepository
	svc      *PipelineService
}

type denyLock struct{}

func (denyLock) TryAcquire(context.Context, string) (func(), bool, error) {
	return nil, false, nil
}

func newPipelineFixture(t *testing.T, lock CycleLock) pipelineFixture {
	t.Helper()

	day := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	games := newFakeGames()
	games.addGame(sport.NBA, finalGame("nba-1"), statline.GameStats{
		"nba:1": {statline.Points: 20, statline.Rebounds: 10},
		"nba:2": {statline.Points: 12},
	})
	games.addGame(sport.NBA, ScheduledGame{ID: "nba-2", State: GameStateInProgress}, statline.GameStats{
		"nba:3": {statline.Points: 7},
	})

	players := memory.NewPlayerRepository([]player.Player{
		knownPlayer(sport.NBA, 1), knownPlayer(sport.NBA, 2), knownPlayer(sport.NBA, 3),
	})
	stats := memory.NewStatRepository()
	rulesets := memory.NewRulesetRepository(memory.SeedRulesets(day))
	leagues := memory.NewLeagueRepository([]league.League{{
		ID:          1,
		Sport:       sport.NBA,
		RulesetID:   nbaRulesetID(t),
		Season:      2026,
		CurrentWeek: 1,
		SeasonStart: day,
	}})
	rosterRepo := memory.NewRosterRepository([]roster.Assignment{
		{PlayerID: "nba:1", LeagueID: 1, TeamID: teamID(10), StartingPosition: "PF"},
		{PlayerID: "nba:2", LeagueID: 1, TeamID: teamID(20), StartingPosition: "PG"},
		{PlayerID: "nba:3", LeagueID: 1, TeamID: teamID(20), StartingPosition: sport.BenchPosition},
	})
	matchups := memory.NewMatchupRepository([]matchup.Matchup{
		{ID: 1, LeagueID: 1, Week: 1, HomeTeamID: 10, AwayTeamID: 20},
	})

	logger := logging.NewNop()
	directory := NewDirectoryService(players, &fakeRoster{}, logger, nil)
	aggregator := NewAggregatorService(games, logger, WithDirectory(directory))
	writer := NewStatWriterService(stats, logger, nil)
	rollup := NewRollupService(rulesets, rosterRepo, stats, memory.NewPerformanceRepository(), matchups, logger)

	svc := NewPipelineService(aggregator, writer, rollup, leagues, logger, PipelineConfig{
		IDs:  id.Static("cycle-1"),
		Lock: lock,
	})
	svc.now = func() time.Time { return day.Add(21 * time.Hour) }

	return pipelineFixture{games: games, stats: stats, matchups: matchups, svc: svc}
}

func nbaRulesetID(t *testing.T) int64 {
	t.Helper()
	for _, rs := range memory.SeedRulesets(time.Now()) {
		if rs.Sport == sport.NBA {
			return rs.ID
		}
	}
	t.Fatalf("no seeded nba ruleset")
	return 0
}

func TestPipelineService_IngestAndScore_IsIdempotent(t *testing.T) {
	t.Parallel()

	f := newPipelineFixture(t, nil)
	ctx := context.Background()
	day := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

	first, err := f.svc.IngestAndScore(ctx, sport.NBA)
	if err != nil {
		t.Fatalf("first cycle: %v", err)
	}
	rowsAfterFirst, _ := f.stats.ListDaily(ctx, sport.NBA, day, day.AddDate(0, 0, 1), nil)
	scoresAfterFirst, _ := f.matchups.ListByLeagueWeek(ctx, 1, 1)

	if _, err := f.svc.IngestAndScore(ctx, sport.NBA); err != nil {
		t.Fatalf("second cycle: %v", err)
	}
	rowsAfterSecond, _ := f.stats.ListDaily(ctx, sport.NBA, day, day.AddDate(0, 0, 1), nil)
	scoresAfterSecond, _ := f.matchups.ListByLeagueWeek(ctx, 1, 1)

	if diff := cmp.Diff(rowsAfterFirst, rowsAfterSecond); diff != "" {
		t.Fatalf("raw stats changed on rerun (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(scoresAfterFirst, scoresAfterSecond); diff != "" {
		t.Fatalf("matchup scores changed on rerun (-first +second):\n%s", diff)
	}

	if first.CycleID != "cycle-1" || first.Games != 2 || first.RecordsWritten != 3 || first.Leagues != 1 {
		t.Fatalf("unexpected cycle result: %+v", first)
	}
	if scoresAfterFirst[0].HomeScore <= 0 || scoresAfterFirst[0].AwayScore <= 0 {
		t.Fatalf("expected both sides scored, got %+v", scoresAfterFirst[0])
	}
}

func TestPipelineService_IngestAndScore_NoGames(t *testing.T) {
	t.Parallel()

	f := newPipelineFixture(t, nil)
	result, err := f.svc.IngestAndScore(context.Background(), sport.NHL)
	if err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if !result.NoGames || result.RecordsWritten != 0 {
		t.Fatalf("expected no-games result, got %+v", result)
	}
}

func TestPipelineService_IngestAndScore_RejectsOverlap(t *testing.T) {
	t.Parallel()

	f := newPipelineFixture(t, nil)
	release, ok := f.svc.guard.TryLock(string(sport.NBA))
	if !ok {
		t.Fatalf("expected to take the guard")
	}
	defer release()

	_, err := f.svc.IngestAndScore(context.Background(), sport.NBA)
	if !errors.Is(err, ErrCycleInProgress) {
		t.Fatalf("expected ErrCycleInProgress, got %v", err)
	}
	if len(f.games.fetched) != 0 {
		t.Fatalf("expected no upstream calls while locked, got=%v", f.games.fetched)
	}
}

func TestPipelineService_IngestAndScore_RespectsDistributedLock(t *testing.T) {
	t.Parallel()

	f := newPipelineFixture(t, denyLock{})
	_, err := f.svc.IngestAndScore(context.Background(), sport.NBA)
	if !errors.Is(err, ErrCycleInProgress) {
		t.Fatalf("expected ErrCycleInProgress, got %v", err)
	}
	if f.svc.guard.Held(string(sport.NBA)) {
		t.Fatalf("expected local guard released after lock denial")
	}
}

func TestPipelineService_RunCycle_ToleratesSportFailures(t *testing.T) {
	t.Parallel()

	f := newPipelineFixture(t, nil)
	f.games.scheduleErr[sport.NHL] = ErrDependencyUnavailable
	f.games.panicOn = sport.MLB

	results, err := f.svc.RunCycle(context.Background(), []sport.Sport{sport.NHL, sport.MLB, sport.NBA})
	if err == nil {
		t.Fatalf("expected combined error")
	}
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected combined error to keep the nhl cause, got %v", err)
	}
	if !strings.Contains(err.Error(), "panicked") {
		t.Fatalf("expected combined error to report the mlb panic, got %v", err)
	}
	if len(results) != 1 || results[0].Sport != sport.NBA {
		t.Fatalf("expected nba to complete after earlier failures, got %+v", results)
	}
	if f.svc.guard.Held(string(sport.MLB)) {
		t.Fatalf("expected guard released after panic")
	}
}

func TestPipelineService_RulesetSeedCoversSports(t *testing.T) {
	t.Parallel()

	seeded := memory.SeedRulesets(time.Now())
	if len(seeded) != len(sport.All()) {
		t.Fatalf("expected one ruleset per sport, got=%d", len(seeded))
	}
	for _, rs := range seeded {
		if rs.SchemaVersion != ruleset.SchemaVersionFor(rs.Sport) {
			t.Fatalf("expected current schema version, got=%d", rs.SchemaVersion)
		}
	}
}

func TestPipelineService_IngestAndScore_RevisitsPreviousDayAfterMidnight(t *testing.T) {
	t.Parallel()

	newYork, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	tests := []struct {
		name  string
		now   time.Time
		grace time.Duration
		want  []string
	}{
		{
			name: "inside window",
			now:  time.Date(2026, 10, 21, 0, 20, 0, 0, newYork),
			want: []string{"2026-10-20", "2026-10-21"},
		},
		{
			name: "after window",
			now:  time.Date(2026, 10, 21, 4, 0, 0, 0, newYork),
			want: []string{"2026-10-21"},
		},
		{
			name:  "disabled",
			now:   time.Date(2026, 10, 21, 0, 20, 0, 0, newYork),
			grace: -1,
			want:  []string{"2026-10-21"},
		},
		{
			name: "utc clock is converted before the window check",
			now:  time.Date(2026, 10, 21, 5, 0, 0, 0, time.UTC),
			want: []string{"2026-10-20", "2026-10-21"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPipelineFixture(t, nil)
			f.svc.location = newYork
			if tt.grace != 0 {
				f.svc.lateGrace = tt.grace
			}
			f.svc.now = func() time.Time { return tt.now }

			if _, err := f.svc.IngestAndScore(context.Background(), sport.NBA); err != nil {
				t.Fatalf("cycle: %v", err)
			}
			if diff := cmp.Diff(tt.want, f.games.asked); diff != "" {
				t.Fatalf("dates asked mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPipelineService_IngestAndScore_PreviousDayFailureStillRunsToday(t *testing.T) {
	t.Parallel()

	f := newPipelineFixture(t, nil)
	f.svc.now = func() time.Time { return time.Date(2026, 10, 21, 1, 0, 0, 0, time.UTC) }
	f.games.dateErr["2026-10-20"] = ErrDependencyUnavailable

	result, err := f.svc.IngestAndScore(context.Background(), sport.NBA)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected previous-day failure reported, got %v", err)
	}
	if !strings.Contains(err.Error(), "2026-10-20") {
		t.Fatalf("expected error to name the previous day, got %v", err)
	}
	if got := result.Date.Format(time.DateOnly); got != "2026-10-21" {
		t.Fatalf("expected today's result, got date %s", got)
	}
	if result.Games != 2 {
		t.Fatalf("expected today's games ingested, got %+v", result)
	}
}
