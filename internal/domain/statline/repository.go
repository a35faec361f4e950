package statline

import (
	"context"
	"time"

	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
)

type Repository interface {
	UpsertDaily(ctx context.Context, s sport.Sport, date time.Time, stats GameStats) (int, error)
	UpsertWeekly(ctx context.Context, s sport.Sport, season, week int, stats GameStats) (int, error)
	ListDaily(ctx context.Context, s sport.Sport, from, to time.Time, playerIDs []string) ([]DailyRecord, error)
	ListWeekly(ctx context.Context, s sport.Sport, season, week int, playerIDs []string) ([]WeeklyRecord, error)
	DeleteDailyBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
