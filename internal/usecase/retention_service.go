package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-statline/internal/domain/statline"
	"github.com/riskibarqy/fantasy-statline/internal/platform/logging"
)

const DefaultRetentionDays = 7

// RetentionService deletes day-granularity stat rows. Weekly football rows live
// in their own table and are never touched here.
type RetentionService struct {
	stats   statline.Repository
	logger  *logging.Logger
	metrics Metrics
	now     func() time.Time
}

func NewRetentionService(stats statline.Repository, logger *logging.Logger, metrics Metrics) *RetentionService {
	if logger == nil {
		logger = logging.Default()
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &RetentionService{stats: stats, logger: logger, metrics: metrics, now: time.Now}
}

// SweepStaleDailyData removes rows dated strictly before today minus retentionDays.
func (s *RetentionService) SweepStaleDailyData(ctx context.Context, retentionDays int) (int64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RetentionService.SweepStaleDailyData")
	defer span.End()

	if retentionDays < 1 {
		return 0, fmt.Errorf("%w: retention days must be >= 1, got %d", ErrInvalidInput, retentionDays)
	}

	cutoff := statline.TruncateDay(s.now().UTC()).AddDate(0, 0, -retentionDays)
	deleted, err := s.stats.DeleteDailyBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete daily stats before %s: %w", cutoff.Format(time.DateOnly), err)
	}

	s.metrics.AddRetentionDeleted(deleted)
	s.logger.InfoContext(ctx, "retention sweep finished",
		"cutoff", cutoff.Format(time.DateOnly),
		"deleted", deleted,
	)
	return deleted, nil
}
