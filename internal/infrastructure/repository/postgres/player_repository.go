package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/fantasy-statline/internal/domain/player"
	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
	qb "github.com/riskibarqy/fantasy-statline/internal/platform/querybuilder"
)

var playerColumns = []string{
	"id", "sport", "upstream_id", "first_name", "last_name",
	"display_name", "position", "team_name", "updated_at",
}

const playerUpsertSuffix = `ON CONFLICT (id) DO UPDATE SET
    first_name = EXCLUDED.first_name,
    last_name = EXCLUDED.last_name,
    display_name = EXCLUDED.display_name,
    position = EXCLUDED.position,
    team_name = EXCLUDED.team_name,
    updated_at = NOW()`

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) KnownIDs(ctx context.Context, s sport.Sport, ids []string) (map[string]struct{}, error) {
	out := make(map[string]struct{}, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	query, args, err := qb.Select("id").From("players").
		Where(
			qb.Eq("sport", string(s)),
			qb.Any("id", pq.Array(ids)),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build known player ids query: %w", err)
	}

	var known []string
	if err := r.db.SelectContext(ctx, &known, query, args...); err != nil {
		return nil, fmt.Errorf("select known player ids: %w", err)
	}
	for _, id := range known {
		out[id] = struct{}{}
	}
	return out, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, ids []string) ([]player.Player, error) {
	if len(ids) == 0 {
		return []player.Player{}, nil
	}

	query, args, err := qb.Select(playerColumns...).From("players").
		Where(qb.Any("id", pq.Array(ids))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by ids query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by ids: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.Player{
			ID:          row.ID,
			Sport:       sport.Sport(row.Sport),
			UpstreamID:  row.UpstreamID,
			FirstName:   row.FirstName,
			LastName:    row.LastName,
			DisplayName: row.DisplayName,
			Position:    row.Position,
			TeamName:    row.TeamName,
			UpdatedAt:   row.UpdatedAt,
		})
	}
	return out, nil
}

// UpsertMany writes the roster in batches inside one transaction. Duplicate
// ids keep the last entry.
func (r *PlayerRepository) UpsertMany(ctx context.Context, players []player.Player) error {
	if len(players) == 0 {
		return nil
	}

	index := make(map[string]int, len(players))
	models := make([]any, 0, len(players))
	for _, p := range players {
		model := playerInsertModel{
			ID:          p.ID,
			Sport:       string(p.Sport),
			UpstreamID:  p.UpstreamID,
			FirstName:   p.FirstName,
			LastName:    p.LastName,
			DisplayName: p.DisplayName,
			Position:    p.Position,
			TeamName:    p.TeamName,
		}
		if i, ok := index[p.ID]; ok {
			models[i] = model
			continue
		}
		index[p.ID] = len(models)
		models = append(models, model)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert players: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, batch := range batches(models, upsertBatchSize) {
		query, args, err := qb.InsertModels("players", batch, playerUpsertSuffix)
		if err != nil {
			return fmt.Errorf("build upsert players query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert players batch size=%d: %w", len(batch), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert players tx: %w", err)
	}
	return nil
}
