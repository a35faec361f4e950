package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
	"github.com/riskibarqy/fantasy-statline/internal/domain/statline"
	"github.com/riskibarqy/fantasy-statline/internal/platform/logging"
)

// StatWriterService persists a merged stat map under its period key. Each call
// is one batch: the repository commits every row of the sport together.
type StatWriterService struct {
	stats   statline.Repository
	logger  *logging.Logger
	metrics Metrics
}

func NewStatWriterService(stats statline.Repository, logger *logging.Logger, metrics Metrics) *StatWriterService {
	if logger == nil {
		logger = logging.Default()
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &StatWriterService{stats: stats, logger: logger, metrics: metrics}
}

func (s *StatWriterService) Write(ctx context.Context, sp sport.Sport, period statline.Period, stats statline.GameStats) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatWriterService.Write", sportAttrs(sp)...)
	defer span.End()

	if !sp.Valid() {
		return 0, fmt.Errorf("%w: %w", ErrInvalidInput, sport.ErrInvalidSport)
	}
	if len(stats) == 0 {
		return 0, nil
	}

	var (
		written int
		err     error
	)
	switch sp.Granularity() {
	case sport.GranularityWeek:
		if period.Season <= 0 || period.Week <= 0 {
			return 0, fmt.Errorf("%w: %s stats need a season and week", ErrInvalidInput, sp)
		}
		written, err = s.stats.UpsertWeekly(ctx, sp, period.Season, period.Week, stats)
	default:
		if period.Date.IsZero() {
			return 0, fmt.Errorf("%w: %s stats need a date", ErrInvalidInput, sp)
		}
		written, err = s.stats.UpsertDaily(ctx, sp, statline.TruncateDay(period.Date), stats)
	}
	if err != nil {
		return 0, fmt.Errorf("upsert %s stats: %w", sp, err)
	}

	s.metrics.AddRecordsWritten(sp, written)
	s.logger.DebugContext(ctx, "stats written", "sport", sp, "records", written)
	return written, nil
}
