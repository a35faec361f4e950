package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/panics"

	"github.com/riskibarqy/fantasy-statline/internal/domain/league"
	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
	"github.com/riskibarqy/fantasy-statline/internal/domain/statline"
	"github.com/riskibarqy/fantasy-statline/internal/platform/id"
	"github.com/riskibarqy/fantasy-statline/internal/platform/logging"
	"github.com/riskibarqy/fantasy-statline/internal/platform/resilience"
)

const (
	cycleOutcomeSuccess = "success"
	cycleOutcomeNoGames = "no_games"
	cycleOutcomeFailed  = "failed"
	cycleOutcomeBusy    = "busy"

	defaultCycleTimeout  = 10 * time.Minute
	defaultLateGameGrace = 4 * time.Hour
)

// PipelineService runs ingest-and-score for one sport: collect the day,
// write raw stats, then roll up every active league of the sport.
type PipelineService struct {
	aggregator   *AggregatorService
	writer       *StatWriterService
	rollup       *RollupService
	leagues      league.Repository
	lock         CycleLock
	ids          id.Generator
	logger       *logging.Logger
	metrics      Metrics
	location     *time.Location
	cycleTimeout time.Duration
	lateGrace    time.Duration
	now          func() time.Time
	guard        resilience.KeyedGuard
}

type PipelineConfig struct {
	Location     *time.Location
	CycleTimeout time.Duration
	// LateGameGrace is how long after local midnight the previous day is
	// still ingested. Zero means the default; negative disables it.
	LateGameGrace time.Duration
	// Lock is optional; the in-process guard always applies.
	Lock    CycleLock
	IDs     id.Generator
	Metrics Metrics
}

type CycleResult struct {
	CycleID        string
	Sport          sport.Sport
	Date           time.Time
	Period         statline.Period
	NoGames        bool
	Games          int
	SkippedGames   int
	DroppedPlayers int
	RecordsWritten int
	Leagues        int
	LeagueFailures int
	Duration       time.Duration
}

func NewPipelineService(
	aggregator *AggregatorService,
	writer *StatWriterService,
	rollup *RollupService,
	leagues league.Repository,
	logger *logging.Logger,
	cfg PipelineConfig,
) *PipelineService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.CycleTimeout <= 0 {
		cfg.CycleTimeout = defaultCycleTimeout
	}
	if cfg.LateGameGrace == 0 {
		cfg.LateGameGrace = defaultLateGameGrace
	}
	if cfg.IDs == nil {
		cfg.IDs = id.NewUUIDGenerator()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = nopMetrics{}
	}
	return &PipelineService{
		aggregator:   aggregator,
		writer:       writer,
		rollup:       rollup,
		leagues:      leagues,
		lock:         cfg.Lock,
		ids:          cfg.IDs,
		logger:       logger,
		metrics:      cfg.Metrics,
		location:     cfg.Location,
		cycleTimeout: cfg.CycleTimeout,
		lateGrace:    cfg.LateGameGrace,
		now:          time.Now,
	}
}

// IngestAndScore processes today, in the configured time zone, for one sport.
// Inside the late-game window after local midnight the previous day is
// ingested first so games that ran past midnight get their final box score.
func (s *PipelineService) IngestAndScore(ctx context.Context, sp sport.Sport) (CycleResult, error) {
	today := s.now().In(s.location)

	var lateErr error
	if yesterday, ok := s.lateGameDay(today); ok {
		late, err := s.IngestDay(ctx, sp, yesterday)
		if errors.Is(err, ErrCycleInProgress) {
			return late, err
		}
		if err != nil {
			lateErr = fmt.Errorf("ingest %s: %w", yesterday.Format(time.DateOnly), err)
		}
	}

	result, err := s.IngestDay(ctx, sp, today)
	return result, errors.Join(lateErr, err)
}

// lateGameDay returns the previous calendar day while local is inside the
// late-game window.
func (s *PipelineService) lateGameDay(local time.Time) (time.Time, bool) {
	if s.lateGrace <= 0 {
		return time.Time{}, false
	}
	y, m, d := local.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, local.Location())
	if local.Sub(midnight) >= s.lateGrace {
		return time.Time{}, false
	}
	return midnight.AddDate(0, 0, -1), true
}

// IngestDay is IngestAndScore for an explicit calendar day. It is safe to
// repeat: every write overwrites.
func (s *PipelineService) IngestDay(ctx context.Context, sp sport.Sport, day time.Time) (CycleResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PipelineService.IngestDay", sportDayAttrs(sp, day)...)
	defer span.End()

	if !sp.Valid() {
		return CycleResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, sport.ErrInvalidSport)
	}

	cycleID, err := s.ids.NewID()
	if err != nil {
		return CycleResult{}, fmt.Errorf("generate cycle id: %w", err)
	}
	y, m, d := day.Date()
	result := CycleResult{
		CycleID: cycleID,
		Sport:   sp,
		Date:    time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
	}
	logger := s.logger.With("cycle_id", cycleID, "sport", sp)

	release, ok := s.guard.TryLock(string(sp))
	if !ok {
		s.metrics.ObserveCycle(sp, cycleOutcomeBusy, 0)
		return result, fmt.Errorf("%w: sport=%s", ErrCycleInProgress, sp)
	}
	defer release()

	if s.lock != nil {
		unlock, acquired, err := s.lock.TryAcquire(ctx, "statline:cycle:"+string(sp))
		if err != nil {
			return result, fmt.Errorf("acquire cycle lock: %w", err)
		}
		if !acquired {
			s.metrics.ObserveCycle(sp, cycleOutcomeBusy, 0)
			return result, fmt.Errorf("%w: sport=%s held by another worker", ErrCycleInProgress, sp)
		}
		defer unlock()
	}

	ctx, cancel := context.WithTimeout(ctx, s.cycleTimeout)
	defer cancel()

	started := s.now()
	logger.InfoContext(ctx, "ingest cycle started", "date", result.Date.Format(time.DateOnly))

	runErr := s.runCycle(ctx, logger, &result)
	result.Duration = s.now().Sub(started)

	outcome := cycleOutcomeSuccess
	switch {
	case runErr != nil:
		outcome = cycleOutcomeFailed
	case result.NoGames:
		outcome = cycleOutcomeNoGames
	}
	s.metrics.ObserveCycle(sp, outcome, result.Duration)

	if runErr != nil {
		logger.ErrorContext(ctx, "ingest cycle failed", "duration", result.Duration, "error", runErr)
		return result, runErr
	}
	logger.InfoContext(ctx, "ingest cycle finished",
		"duration", result.Duration,
		"no_games", result.NoGames,
		"games", result.Games,
		"skipped_games", result.SkippedGames,
		"dropped_players", result.DroppedPlayers,
		"records_written", result.RecordsWritten,
		"leagues", result.Leagues,
		"league_failures", result.LeagueFailures,
	)
	return result, nil
}

func (s *PipelineService) runCycle(ctx context.Context, logger *logging.Logger, result *CycleResult) error {
	day, err := s.aggregator.CollectDay(ctx, result.Sport, result.Date)
	if err != nil {
		return fmt.Errorf("collect day: %w", err)
	}
	result.Period = day.Period
	result.NoGames = day.NoGames
	result.Games = day.Games
	result.SkippedGames = day.SkippedGames
	result.DroppedPlayers = day.DroppedPlayers
	if day.NoGames {
		return nil
	}

	written, err := s.writer.Write(ctx, result.Sport, day.Period, day.Stats)
	if err != nil {
		return fmt.Errorf("write stats: %w", err)
	}
	result.RecordsWritten = written

	leagues, err := s.leagues.ListActiveBySport(ctx, result.Sport)
	if err != nil {
		return fmt.Errorf("list active leagues: %w", err)
	}
	for _, lg := range leagues {
		if _, err := s.rollup.RollupLeague(ctx, lg); err != nil {
			result.LeagueFailures++
			logger.WarnContext(ctx, "league rollup failed", "league_id", lg.ID, "error", err)
			continue
		}
		result.Leagues++
	}
	return nil
}

// RunCycle ingests each sport in order. One sport failing, or panicking, never
// stops the next; the combined error reports every failure.
func (s *PipelineService) RunCycle(ctx context.Context, sports []sport.Sport) ([]CycleResult, error) {
	results := make([]CycleResult, 0, len(sports))
	var combined error
	for _, sp := range sports {
		var (
			result CycleResult
			err    error
		)

		var catcher panics.Catcher
		catcher.Try(func() {
			result, err = s.IngestAndScore(ctx, sp)
		})
		if recovered := catcher.Recovered(); recovered != nil {
			err = fmt.Errorf("sport %s panicked: %w", sp, recovered.AsError())
			s.logger.ErrorContext(ctx, "ingest cycle panicked", "sport", sp, "panic", recovered.String())
		}

		if err != nil {
			combined = errors.Join(combined, fmt.Errorf("%s: %w", sp, err))
			continue
		}
		results = append(results, result)
	}
	return results, combined
}
