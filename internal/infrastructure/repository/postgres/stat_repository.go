package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
	"github.com/riskibarqy/fantasy-statline/internal/domain/statline"
	qb "github.com/riskibarqy/fantasy-statline/internal/platform/querybuilder"
)

// The jsonb concatenation replaces fields present in the incoming line and
// keeps the rest, so a partial re-ingest never zeroes a stat it did not carry.
const (
	dailyUpsertSuffix = `ON CONFLICT (sport, player_id, stat_date) DO UPDATE SET
    stats = daily_stats.stats || EXCLUDED.stats,
    updated_at = NOW()`
	weeklyUpsertSuffix = `ON CONFLICT (sport, player_id, season, week) DO UPDATE SET
    stats = weekly_stats.stats || EXCLUDED.stats,
    updated_at = NOW()`
)

type StatRepository struct {
	db *sqlx.DB
}

func NewStatRepository(db *sqlx.DB) *StatRepository {
	return &StatRepository{db: db}
}

func (r *StatRepository) UpsertDaily(ctx context.Context, s sport.Sport, date time.Time, stats statline.GameStats) (int, error) {
	day := dateParam(date)
	models := make([]any, 0, len(stats))
	for _, playerID := range stats.PlayerIDs() {
		encoded, err := encodeJSON(stats[playerID])
		if err != nil {
			return 0, fmt.Errorf("encode daily stats player=%s: %w", playerID, err)
		}
		models = append(models, dailyStatInsertModel{
			Sport:    string(s),
			PlayerID: playerID,
			StatDate: day,
			Stats:    encoded,
		})
	}
	return r.upsert(ctx, "daily_stats", models, dailyUpsertSuffix)
}

func (r *StatRepository) UpsertWeekly(ctx context.Context, s sport.Sport, season, week int, stats statline.GameStats) (int, error) {
	models := make([]any, 0, len(stats))
	for _, playerID := range stats.PlayerIDs() {
		encoded, err := encodeJSON(stats[playerID])
		if err != nil {
			return 0, fmt.Errorf("encode weekly stats player=%s: %w", playerID, err)
		}
		models = append(models, weeklyStatInsertModel{
			Sport:    string(s),
			PlayerID: playerID,
			Season:   season,
			Week:     week,
			Stats:    encoded,
		})
	}
	return r.upsert(ctx, "weekly_stats", models, weeklyUpsertSuffix)
}

func (r *StatRepository) upsert(ctx context.Context, table string, models []any, suffix string) (int, error) {
	if len(models) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx upsert %s: %w", table, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, batch := range batches(models, upsertBatchSize) {
		query, args, err := qb.InsertModels(table, batch, suffix)
		if err != nil {
			return 0, fmt.Errorf("build upsert %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("upsert %s batch size=%d: %w", table, len(batch), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit upsert %s tx: %w", table, err)
	}
	return len(models), nil
}

func (r *StatRepository) ListDaily(ctx context.Context, s sport.Sport, from, to time.Time, playerIDs []string) ([]statline.DailyRecord, error) {
	conditions := []qb.Condition{
		qb.Eq("sport", string(s)),
		qb.Gte("stat_date", dateParam(from)),
		qb.Lt("stat_date", dateParam(to)),
	}
	if len(playerIDs) > 0 {
		conditions = append(conditions, qb.Any("player_id", pq.Array(playerIDs)))
	}

	query, args, err := qb.Select("player_id", "stat_date", "stats").From("daily_stats").
		Where(conditions...).
		OrderBy("stat_date", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list daily stats query: %w", err)
	}

	var rows []dailyStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list daily stats: %w", err)
	}

	out := make([]statline.DailyRecord, 0, len(rows))
	for _, row := range rows {
		line, err := decodeLine(row.Stats)
		if err != nil {
			return nil, fmt.Errorf("daily stats player=%s: %w", row.PlayerID, err)
		}
		out = append(out, statline.DailyRecord{
			Sport:    s,
			PlayerID: row.PlayerID,
			Date:     statline.TruncateDay(row.StatDate),
			Stats:    line,
		})
	}
	return out, nil
}

func (r *StatRepository) ListWeekly(ctx context.Context, s sport.Sport, season, week int, playerIDs []string) ([]statline.WeeklyRecord, error) {
	conditions := []qb.Condition{
		qb.Eq("sport", string(s)),
		qb.Eq("season", season),
		qb.Eq("week", week),
	}
	if len(playerIDs) > 0 {
		conditions = append(conditions, qb.Any("player_id", pq.Array(playerIDs)))
	}

	query, args, err := qb.Select("player_id", "season", "week", "stats").From("weekly_stats").
		Where(conditions...).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list weekly stats query: %w", err)
	}

	var rows []weeklyStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list weekly stats: %w", err)
	}

	out := make([]statline.WeeklyRecord, 0, len(rows))
	for _, row := range rows {
		line, err := decodeLine(row.Stats)
		if err != nil {
			return nil, fmt.Errorf("weekly stats player=%s: %w", row.PlayerID, err)
		}
		out = append(out, statline.WeeklyRecord{
			Sport:    s,
			PlayerID: row.PlayerID,
			Season:   row.Season,
			Week:     row.Week,
			Stats:    line,
		})
	}
	return out, nil
}

// DeleteDailyBefore only touches daily_stats; weekly football rows are kept.
func (r *StatRepository) DeleteDailyBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := qb.DeleteFrom("daily_stats").
		Where(qb.Lt("stat_date", dateParam(cutoff))).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete daily stats query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete daily stats before %s: %w", dateParam(cutoff), err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected delete daily stats: %w", err)
	}
	return deleted, nil
}
