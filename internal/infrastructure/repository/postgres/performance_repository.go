package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-statline/internal/domain/performance"
	qb "github.com/riskibarqy/fantasy-statline/internal/platform/querybuilder"
)

// The position snapshot is refreshed only while the stored row has no points.
const performanceUpsertSuffix = `ON CONFLICT (week, player_id, league_id) DO UPDATE SET
    starting_position = CASE
        WHEN performances.fantasy_points = 0 THEN EXCLUDED.starting_position
        ELSE performances.starting_position
    END,
    fantasy_points = EXCLUDED.fantasy_points,
    updated_at = NOW()`

type PerformanceRepository struct {
	db *sqlx.DB
}

func NewPerformanceRepository(db *sqlx.DB) *PerformanceRepository {
	return &PerformanceRepository{db: db}
}

func (r *PerformanceRepository) ListByLeagueWeek(ctx context.Context, leagueID int64, week int) ([]performance.Record, error) {
	query, args, err := qb.Select("week", "player_id", "league_id", "starting_position", "fantasy_points").
		From("performances").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("week", week),
		).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list performances query: %w", err)
	}

	var rows []performanceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list performances league=%d week=%d: %w", leagueID, week, err)
	}

	out := make([]performance.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, performance.Record{
			Week:             row.Week,
			PlayerID:         row.PlayerID,
			LeagueID:         row.LeagueID,
			StartingPosition: row.StartingPosition,
			FantasyPoints:    row.FantasyPoints,
		})
	}
	return out, nil
}

// Upsert folds duplicate keys with performance.Apply first; one statement may
// not touch the same row twice.
func (r *PerformanceRepository) Upsert(ctx context.Context, records []performance.Record) error {
	if len(records) == 0 {
		return nil
	}

	index := make(map[performance.Key]int, len(records))
	folded := make([]performance.Record, 0, len(records))
	for _, record := range records {
		if i, ok := index[record.Key()]; ok {
			folded[i] = performance.Apply(folded[i], record)
			continue
		}
		index[record.Key()] = len(folded)
		folded = append(folded, record)
	}

	models := make([]any, 0, len(folded))
	for _, record := range folded {
		models = append(models, performanceTableModel{
			Week:             record.Week,
			PlayerID:         record.PlayerID,
			LeagueID:         record.LeagueID,
			StartingPosition: record.StartingPosition,
			FantasyPoints:    record.FantasyPoints,
		})
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert performances: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, batch := range batches(models, upsertBatchSize) {
		query, args, err := qb.InsertModels("performances", batch, performanceUpsertSuffix)
		if err != nil {
			return fmt.Errorf("build upsert performances query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert performances batch size=%d: %w", len(batch), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert performances tx: %w", err)
	}
	return nil
}
