package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
	"github.com/riskibarqy/fantasy-statline/internal/domain/statline"
	"github.com/riskibarqy/fantasy-statline/internal/platform/logging"
)

const defaultFetchConcurrency = 8

// AggregatorService collects every started game of a sport on one day and
// merges the per-game stat maps additively.
type AggregatorService struct {
	games       GameProvider
	directory   *DirectoryService
	concurrency int
	logger      *logging.Logger
	metrics     Metrics
}

type AggregatorOption func(*AggregatorService)

func WithFetchConcurrency(n int) AggregatorOption {
	return func(s *AggregatorService) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithDirectory makes CollectDay attribute merged stats to known players.
func WithDirectory(directory *DirectoryService) AggregatorOption {
	return func(s *AggregatorService) {
		s.directory = directory
	}
}

func WithAggregatorMetrics(m Metrics) AggregatorOption {
	return func(s *AggregatorService) {
		if m != nil {
			s.metrics = m
		}
	}
}

func NewAggregatorService(games GameProvider, logger *logging.Logger, opts ...AggregatorOption) *AggregatorService {
	if logger == nil {
		logger = logging.Default()
	}
	s := &AggregatorService{
		games:       games,
		concurrency: defaultFetchConcurrency,
		logger:      logger,
		metrics:     nopMetrics{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type gameOutcome struct {
	stats statline.GameStats
	err   error
}

// CollectDay returns NoGames=true, not an error, when nothing has started on date.
// A failed schedule lookup fails the call; a failed game is skipped and counted.
func (s *AggregatorService) CollectDay(ctx context.Context, sp sport.Sport, date time.Time) (statline.DayResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AggregatorService.CollectDay", sportDayAttrs(sp, date)...)
	defer span.End()

	if !sp.Valid() {
		return statline.DayResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, sport.ErrInvalidSport)
	}

	day := statline.TruncateDay(date)
	result := statline.DayResult{
		Sport:  sp,
		Date:   day,
		Period: statline.DayPeriod(day),
		Stats:  statline.GameStats{},
	}

	scheduled, err := s.games.ListGames(ctx, sp, date)
	if err != nil {
		return statline.DayResult{}, fmt.Errorf("list %s games for %s: %w", sp, day.Format(time.DateOnly), err)
	}

	started := make([]ScheduledGame, 0, len(scheduled))
	for _, game := range scheduled {
		if game.Started() {
			started = append(started, game)
		}
	}
	if len(started) == 0 {
		result.NoGames = true
		return result, nil
	}

	if sp.Granularity() == sport.GranularityWeek {
		period, err := weekPeriodOf(started)
		if err != nil {
			return statline.DayResult{}, fmt.Errorf("resolve %s week: %w", sp, err)
		}
		result.Period = period
	}

	outcomes, err := s.fetchAll(ctx, sp, started)
	if err != nil {
		return statline.DayResult{}, err
	}

	for i, outcome := range outcomes {
		if outcome.err != nil {
			result.SkippedGames++
			s.logger.WarnContext(ctx, "skip game, upstream unavailable",
				"sport", sp,
				"game_id", started[i].ID,
				"error", outcome.err,
			)
			continue
		}
		result.Games++
		result.Stats.Merge(outcome.stats)
	}
	s.metrics.AddGamesSkipped(sp, result.SkippedGames)

	if s.directory != nil && len(result.Stats) > 0 {
		resolved, report, err := s.directory.Resolve(ctx, sp, result.Stats)
		if err != nil {
			return statline.DayResult{}, fmt.Errorf("resolve %s players: %w", sp, err)
		}
		result.Stats = resolved
		result.DroppedPlayers = len(report.Dropped)
	}

	return result, nil
}

func (s *AggregatorService) fetchAll(ctx context.Context, sp sport.Sport, games []ScheduledGame) ([]gameOutcome, error) {
	outcomes := make([]gameOutcome, len(games))

	pool, err := ants.NewPool(min(s.concurrency, len(games)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i, game := range games {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			stats, fetchErr := s.games.FetchGameStats(ctx, sp, game.ID)
			outcomes[i] = gameOutcome{stats: stats, err: fetchErr}
		}); err != nil {
			workers.Done()
			outcomes[i] = gameOutcome{err: fmt.Errorf("submit game fetch: %w", err)}
		}
	}
	workers.Wait()

	return outcomes, nil
}

// weekPeriodOf keys football stats on the upstream season and week of the day's games.
func weekPeriodOf(games []ScheduledGame) (statline.Period, error) {
	for _, game := range games {
		if game.Season > 0 && game.Week > 0 {
			return statline.WeekPeriod(game.Season, game.Week), nil
		}
	}
	return statline.Period{}, fmt.Errorf("no game carries a season and week")
}
