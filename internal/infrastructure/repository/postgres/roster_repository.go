package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-statline/internal/domain/roster"
	qb "github.com/riskibarqy/fantasy-statline/internal/platform/querybuilder"
)

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) ListByLeague(ctx context.Context, leagueID int64) ([]roster.Assignment, error) {
	query, args, err := qb.Select("league_id", "player_id", "team_id", "starting_position").
		From("team_players").
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list roster query: %w", err)
	}

	var rows []assignmentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list roster league=%d: %w", leagueID, err)
	}

	out := make([]roster.Assignment, 0, len(rows))
	for _, row := range rows {
		out = append(out, roster.Assignment{
			PlayerID:         row.PlayerID,
			LeagueID:         row.LeagueID,
			TeamID:           nullInt64ToPtr(row.TeamID),
			StartingPosition: row.StartingPosition,
		})
	}
	return out, nil
}
