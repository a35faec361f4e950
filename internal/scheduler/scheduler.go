package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
	"github.com/riskibarqy/fantasy-statline/internal/platform/logging"
	"github.com/riskibarqy/fantasy-statline/internal/usecase"
)

const (
	DefaultIngestSpec    = "*/20 * * * *"
	DefaultRetentionSpec = "0 4 * * *"
)

type CycleRunner interface {
	RunCycle(ctx context.Context, sports []sport.Sport) ([]usecase.CycleResult, error)
}

type Sweeper interface {
	SweepStaleDailyData(ctx context.Context, retentionDays int) (int64, error)
}

type Config struct {
	IngestSpec    string
	RetentionSpec string
	Sports        []sport.Sport
	RetentionDays int
	Location      *time.Location
	// RunOnStart triggers one ingest cycle right after Start.
	RunOnStart bool
}

// Scheduler owns the periodic ingest and retention jobs. It is started once
// by the process and stopped on shutdown.
type Scheduler struct {
	cron    *cron.Cron
	runner  CycleRunner
	sweeper Sweeper
	cfg     Config
	logger  *logging.Logger

	ingestID cron.EntryID

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	started bool
}

func New(runner CycleRunner, sweeper Sweeper, cfg Config, logger *logging.Logger) (*Scheduler, error) {
	if runner == nil {
		return nil, fmt.Errorf("cycle runner is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.IngestSpec == "" {
		cfg.IngestSpec = DefaultIngestSpec
	}
	if cfg.RetentionSpec == "" {
		cfg.RetentionSpec = DefaultRetentionSpec
	}
	if cfg.RetentionDays <= 0 {
		cfg.RetentionDays = usecase.DefaultRetentionDays
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if len(cfg.Sports) == 0 {
		return nil, fmt.Errorf("at least one sport is required")
	}

	cronLogger := cronLogAdapter{logger: logger.With("component", "scheduler")}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(cfg.Location),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		runner:  runner,
		sweeper: sweeper,
		cfg:     cfg,
		logger:  logger,
		ctx:     context.Background(),
	}

	ingestID, err := s.cron.AddFunc(cfg.IngestSpec, s.runIngest)
	if err != nil {
		return nil, fmt.Errorf("parse ingest schedule %q: %w", cfg.IngestSpec, err)
	}
	s.ingestID = ingestID
	if sweeper != nil {
		if _, err := s.cron.AddFunc(cfg.RetentionSpec, s.runRetention); err != nil {
			return nil, fmt.Errorf("parse retention schedule %q: %w", cfg.RetentionSpec, err)
		}
	}
	return s, nil
}

// Start begins firing jobs. Jobs inherit ctx for cancellation; calling Start
// twice is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.started = true
	s.mu.Unlock()

	s.cron.Start()
	s.logger.Info("scheduler started",
		"ingest_schedule", s.cfg.IngestSpec,
		"retention_schedule", s.cfg.RetentionSpec,
		"sports", s.cfg.Sports,
		"next_ingest", s.NextIngest(),
	)

	if s.cfg.RunOnStart {
		go s.runIngest()
	}
}

// Stop prevents new runs and waits for in-flight jobs until ctx expires, at
// which point running jobs are cancelled.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = false
	cancel := s.cancel
	s.mu.Unlock()

	done := s.cron.Stop()
	select {
	case <-done.Done():
		cancel()
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		cancel()
		<-done.Done()
		return fmt.Errorf("scheduler stop: %w", ctx.Err())
	}
}

// NextIngest reports the next ingest fire time, zero before Start.
func (s *Scheduler) NextIngest() time.Time {
	return s.cron.Entry(s.ingestID).Next
}

func (s *Scheduler) jobContext() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}

func (s *Scheduler) runIngest() {
	ctx := s.jobContext()
	started := time.Now()
	results, err := s.runner.RunCycle(ctx, s.cfg.Sports)
	if err != nil {
		s.logger.ErrorContext(ctx, "scheduled ingest finished with failures",
			"succeeded", len(results),
			"sports", len(s.cfg.Sports),
			"duration", time.Since(started),
			"error", err,
		)
		return
	}
	s.logger.InfoContext(ctx, "scheduled ingest finished",
		"sports", len(results),
		"duration", time.Since(started),
	)
}

func (s *Scheduler) runRetention() {
	ctx := s.jobContext()
	if _, err := s.sweeper.SweepStaleDailyData(ctx, s.cfg.RetentionDays); err != nil {
		s.logger.ErrorContext(ctx, "scheduled retention sweep failed", "error", err)
	}
}

type cronLogAdapter struct {
	logger *logging.Logger
}

func (a cronLogAdapter) Info(msg string, keysAndValues ...any) {
	a.logger.Debug("cron: "+msg, keysAndValues...)
}

func (a cronLogAdapter) Error(err error, msg string, keysAndValues ...any) {
	a.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
