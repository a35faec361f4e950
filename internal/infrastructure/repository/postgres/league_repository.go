package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-statline/internal/domain/league"
	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
	qb "github.com/riskibarqy/fantasy-statline/internal/platform/querybuilder"
)

var leagueColumns = []string{"id", "name", "sport", "ruleset_id", "season", "current_week", "season_start"}

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) ListActiveBySport(ctx context.Context, s sport.Sport) ([]league.League, error) {
	query, args, err := qb.Select(leagueColumns...).From("leagues").
		Where(
			qb.Eq("sport", string(s)),
			qb.Expr("current_week > ?", 0),
			qb.Expr("ruleset_id IS NOT NULL"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list active leagues query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list active leagues sport=%s: %w", s, err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, leagueFromRow(row))
	}
	return out, nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, id int64) (league.League, bool, error) {
	query, args, err := qb.Select(leagueColumns...).From("leagues").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league by id query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league by id: %w", err)
	}
	return leagueFromRow(row), true, nil
}

func leagueFromRow(row leagueTableModel) league.League {
	return league.League{
		ID:          row.ID,
		Name:        row.Name,
		Sport:       sport.Sport(row.Sport),
		RulesetID:   row.RulesetID.Int64,
		Season:      row.Season,
		CurrentWeek: row.CurrentWeek,
		SeasonStart: nullTimeToTime(row.SeasonStart),
	}
}
