package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-statline/internal/domain/matchup"
	qb "github.com/riskibarqy/fantasy-statline/internal/platform/querybuilder"
)

type MatchupRepository struct {
	db *sqlx.DB
}

func NewMatchupRepository(db *sqlx.DB) *MatchupRepository {
	return &MatchupRepository{db: db}
}

func (r *MatchupRepository) ListByLeagueWeek(ctx context.Context, leagueID int64, week int) ([]matchup.Matchup, error) {
	query, args, err := qb.Select("id", "league_id", "week", "home_team_id", "away_team_id", "home_score", "away_score").
		From("matchups").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("week", week),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matchups query: %w", err)
	}

	var rows []matchupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matchups league=%d week=%d: %w", leagueID, week, err)
	}

	out := make([]matchup.Matchup, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchup.Matchup{
			ID:         row.ID,
			LeagueID:   row.LeagueID,
			Week:       row.Week,
			HomeTeamID: row.HomeTeamID,
			AwayTeamID: row.AwayTeamID,
			HomeScore:  row.HomeScore,
			AwayScore:  row.AwayScore,
		})
	}
	return out, nil
}

func (r *MatchupRepository) UpdateScores(ctx context.Context, matchups []matchup.Matchup) error {
	if len(matchups) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx update matchup scores: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, m := range matchups {
		query, args, err := qb.Update("matchups").
			Set("home_score", m.HomeScore).
			Set("away_score", m.AwayScore).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("id", m.ID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update matchup scores query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("update matchup scores id=%d: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update matchup scores tx: %w", err)
	}
	return nil
}
