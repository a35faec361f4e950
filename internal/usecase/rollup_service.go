package usecase

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/fantasy-statline/internal/domain/league"
	"github.com/riskibarqy/fantasy-statline/internal/domain/matchup"
	"github.com/riskibarqy/fantasy-statline/internal/domain/performance"
	"github.com/riskibarqy/fantasy-statline/internal/domain/roster"
	"github.com/riskibarqy/fantasy-statline/internal/domain/ruleset"
	"github.com/riskibarqy/fantasy-statline/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
	"github.com/riskibarqy/fantasy-statline/internal/domain/statline"
	"github.com/riskibarqy/fantasy-statline/internal/platform/logging"
)

// RollupService scores a league's roster for its current week and writes team
// totals onto the week's matchups.
type RollupService struct {
	rulesets    ruleset.Repository
	roster      roster.Repository
	stats       statline.Repository
	performance performance.Repository
	matchups    matchup.Repository
	validator   *validator.Validate
	logger      *logging.Logger
}

type RollupResult struct {
	LeagueID int64
	Week     int
	Players  int
	Teams    int
	Matchups int
	Stale    bool
	Skipped  bool
}

func NewRollupService(
	rulesets ruleset.Repository,
	rosterRepo roster.Repository,
	stats statline.Repository,
	performanceRepo performance.Repository,
	matchups matchup.Repository,
	logger *logging.Logger,
) *RollupService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RollupService{
		rulesets:    rulesets,
		roster:      rosterRepo,
		stats:       stats,
		performance: performanceRepo,
		matchups:    matchups,
		validator:   validator.New(),
		logger:      logger,
	}
}

func (s *RollupService) RollupLeague(ctx context.Context, lg league.League) (RollupResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RollupService.RollupLeague")
	defer span.End()

	result := RollupResult{LeagueID: lg.ID, Week: lg.CurrentWeek}
	if !lg.Active() {
		result.Skipped = true
		return result, nil
	}

	rs, found, err := s.rulesets.GetByID(ctx, lg.RulesetID)
	if err != nil {
		return result, fmt.Errorf("get ruleset: %w", err)
	}
	if !found {
		return result, fmt.Errorf("%w: ruleset id=%d for league id=%d", ErrNotFound, lg.RulesetID, lg.ID)
	}
	if rs.Sport != lg.Sport {
		return result, fmt.Errorf("%w: ruleset id=%d is %s, league id=%d is %s", ErrInvalidInput, rs.ID, rs.Sport, lg.ID, lg.Sport)
	}
	result.Stale = rs.Stale()
	if result.Stale {
		s.logger.WarnContext(ctx, "league scored with stale ruleset",
			"league_id", lg.ID,
			"ruleset_id", rs.ID,
			"schema_version", rs.SchemaVersion,
		)
	}

	assignments, err := s.roster.ListByLeague(ctx, lg.ID)
	if err != nil {
		return result, fmt.Errorf("list roster: %w", err)
	}

	rostered := make([]roster.Assignment, 0, len(assignments))
	playerIDs := make([]string, 0, len(assignments))
	for _, a := range assignments {
		if a.TeamID == nil {
			continue
		}
		rostered = append(rostered, a)
		playerIDs = append(playerIDs, a.PlayerID)
	}

	points, err := s.weekPoints(ctx, lg, rs, playerIDs)
	if err != nil {
		return result, err
	}

	records := make([]performance.Record, 0, len(rostered))
	for _, a := range rostered {
		record := performance.Record{
			Week:             lg.CurrentWeek,
			PlayerID:         a.PlayerID,
			LeagueID:         lg.ID,
			StartingPosition: a.StartingPosition,
			FantasyPoints:    points[a.PlayerID],
		}
		if err := s.validator.StructCtx(ctx, record); err != nil {
			s.logger.WarnContext(ctx, "skip invalid performance record",
				"league_id", lg.ID,
				"player_id", a.PlayerID,
				"error", err,
			)
			continue
		}
		records = append(records, record)
	}
	if len(records) > 0 {
		if err := s.performance.Upsert(ctx, records); err != nil {
			return result, fmt.Errorf("upsert performance: %w", err)
		}
	}
	result.Players = len(records)

	stored, err := s.performance.ListByLeagueWeek(ctx, lg.ID, lg.CurrentWeek)
	if err != nil {
		return result, fmt.Errorf("list performance: %w", err)
	}
	totals := TeamTotals(rostered, stored)
	result.Teams = len(totals)

	scheduled, err := s.matchups.ListByLeagueWeek(ctx, lg.ID, lg.CurrentWeek)
	if err != nil {
		return result, fmt.Errorf("list matchups: %w", err)
	}
	if len(scheduled) == 0 {
		return result, nil
	}

	updated := make([]matchup.Matchup, 0, len(scheduled))
	for _, m := range scheduled {
		updated = append(updated, m.ApplyTotals(totals))
	}
	if err := s.matchups.UpdateScores(ctx, updated); err != nil {
		return result, fmt.Errorf("update matchup scores: %w", err)
	}
	result.Matchups = len(updated)

	return result, nil
}

// TeamTotals sums stored points of each team's starters. Benched entries and
// unassigned players never contribute.
func TeamTotals(assignments []roster.Assignment, records []performance.Record) map[int64]float64 {
	points := make(map[string]float64, len(records))
	for _, r := range records {
		points[r.PlayerID] = r.FantasyPoints
	}

	totals := make(map[int64]float64)
	for _, a := range assignments {
		if a.TeamID == nil {
			continue
		}
		if _, ok := totals[*a.TeamID]; !ok {
			totals[*a.TeamID] = 0
		}
		if !a.Starter() {
			continue
		}
		totals[*a.TeamID] += points[a.PlayerID]
	}
	return totals
}

// weekPoints scores the league's current week per player. Daily sports sum the
// per-day scores across the league week.
func (s *RollupService) weekPoints(ctx context.Context, lg league.League, rs ruleset.Ruleset, playerIDs []string) (map[string]float64, error) {
	out := make(map[string]float64, len(playerIDs))
	if len(playerIDs) == 0 {
		return out, nil
	}

	if lg.Sport.Granularity() == sport.GranularityWeek {
		rows, err := s.stats.ListWeekly(ctx, lg.Sport, lg.Season, lg.CurrentWeek, playerIDs)
		if err != nil {
			return nil, fmt.Errorf("list weekly stats: %w", err)
		}
		for _, row := range rows {
			pts, err := scoring.ComputePoints(lg.Sport, row.Stats, rs.Weights)
			if err != nil {
				return nil, err
			}
			out[row.PlayerID] += pts
		}
		return out, nil
	}

	from, to, err := lg.WeekRange(lg.CurrentWeek)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	rows, err := s.stats.ListDaily(ctx, lg.Sport, from, to, playerIDs)
	if err != nil {
		return nil, fmt.Errorf("list daily stats: %w", err)
	}
	for _, row := range rows {
		pts, err := scoring.ComputePoints(lg.Sport, row.Stats, rs.Weights)
		if err != nil {
			return nil, err
		}
		out[row.PlayerID] += pts
	}
	return out, nil
}
