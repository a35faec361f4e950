package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/riskibarqy/fantasy-statline/external/espn"
	"github.com/riskibarqy/fantasy-statline/internal/config"
	"github.com/riskibarqy/fantasy-statline/internal/domain/league"
	"github.com/riskibarqy/fantasy-statline/internal/domain/matchup"
	"github.com/riskibarqy/fantasy-statline/internal/domain/performance"
	"github.com/riskibarqy/fantasy-statline/internal/domain/player"
	"github.com/riskibarqy/fantasy-statline/internal/domain/roster"
	"github.com/riskibarqy/fantasy-statline/internal/domain/ruleset"
	"github.com/riskibarqy/fantasy-statline/internal/domain/statline"
	cacherepo "github.com/riskibarqy/fantasy-statline/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fantasy-statline/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-statline/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fantasy-statline/internal/observability"
	basecache "github.com/riskibarqy/fantasy-statline/internal/platform/cache"
	"github.com/riskibarqy/fantasy-statline/internal/platform/id"
	"github.com/riskibarqy/fantasy-statline/internal/platform/lock"
	"github.com/riskibarqy/fantasy-statline/internal/platform/logging"
	"github.com/riskibarqy/fantasy-statline/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-statline/internal/scheduler"
	"github.com/riskibarqy/fantasy-statline/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

type Repositories struct {
	Players     player.Repository
	Stats       statline.Repository
	Rulesets    ruleset.Repository
	Leagues     league.Repository
	Roster      roster.Repository
	Performance performance.Repository
	Matchups    matchup.Repository
}

// Container holds the wired services of one worker process.
type Container struct {
	Config    config.Config
	Logger    *logging.Logger
	Metrics   *observability.PipelineMetrics
	Pipeline  *usecase.PipelineService
	Retention *usecase.RetentionService
	Rulesets  *usecase.RulesetService
	Scheduler *scheduler.Scheduler

	debugServer *http.Server
	closers     []func(context.Context) error
}

// New builds every dependency. Close must be called even when New fails
// half-way; it is nil-safe.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Container, error) {
	if logger == nil {
		logger = logging.Default()
	}
	c := &Container{Config: cfg, Logger: logger}

	telemetry, err := observability.StartTelemetry(cfg, logger)
	if err != nil {
		return c, fmt.Errorf("start telemetry: %w", err)
	}
	c.closers = append(c.closers, telemetry.Shutdown)

	if cfg.MetricsEnabled {
		c.Metrics = observability.NewPipelineMetrics()
	}

	repos, err := c.openRepositories(ctx)
	if err != nil {
		return c, err
	}

	var cycleLock usecase.CycleLock
	if cfg.RedisEnabled {
		cycleLock, err = c.openRedisLock(ctx)
		if err != nil {
			return c, err
		}
	}

	var metrics usecase.Metrics
	if c.Metrics != nil {
		metrics = c.Metrics
	}

	client := espn.NewClient(espn.ClientConfig{
		SiteBaseURL:   cfg.ESPNSiteBaseURL,
		CoreBaseURL:   cfg.ESPNCoreBaseURL,
		Timeout:       cfg.ESPNTimeout,
		MaxRetries:    cfg.ESPNMaxRetries,
		RatePerSecond: cfg.ESPNRatePerSecond,
		RateBurst:     cfg.ESPNRateBurst,
		Logger:        logger.With("component", "espn"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ESPNCircuitEnabled,
			FailureThreshold: cfg.ESPNCircuitFailureCount,
			OpenTimeout:      cfg.ESPNCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ESPNCircuitHalfOpenMaxReq,
			OnStateChange: func(from, to resilience.CircuitState) {
				logger.Warn("espn circuit state changed", "from", from, "to", to)
			},
		},
	})

	directory := usecase.NewDirectoryService(repos.Players, client, logger, metrics)
	aggregator := usecase.NewAggregatorService(client, logger,
		usecase.WithDirectory(directory),
		usecase.WithFetchConcurrency(cfg.FetchConcurrency),
		usecase.WithAggregatorMetrics(metrics),
	)
	writer := usecase.NewStatWriterService(repos.Stats, logger, metrics)
	rollup := usecase.NewRollupService(repos.Rulesets, repos.Roster, repos.Stats, repos.Performance, repos.Matchups, logger)

	c.Pipeline = usecase.NewPipelineService(aggregator, writer, rollup, repos.Leagues, logger, usecase.PipelineConfig{
		Location:      cfg.Location,
		CycleTimeout:  cfg.CycleTimeout,
		LateGameGrace: cfg.LateGameGrace,
		Lock:          cycleLock,
		IDs:           id.NewUUIDGenerator(),
		Metrics:       metrics,
	})
	c.Retention = usecase.NewRetentionService(repos.Stats, logger, metrics)
	c.Rulesets = usecase.NewRulesetService(repos.Rulesets, logger)

	c.Scheduler, err = scheduler.New(c.Pipeline, c.Retention, scheduler.Config{
		IngestSpec:    cfg.IngestCron,
		RetentionSpec: cfg.RetentionCron,
		Sports:        cfg.IngestSports,
		RetentionDays: cfg.RetentionDays,
		Location:      cfg.Location,
		RunOnStart:    true,
	}, logger)
	if err != nil {
		return c, fmt.Errorf("build scheduler: %w", err)
	}

	return c, nil
}

// StartDebugServer exposes /metrics and optionally pprof.
func (c *Container) StartDebugServer() {
	addr := c.Config.MetricsAddr
	if addr == "" && c.Config.PprofEnabled {
		addr = c.Config.PprofAddr
	}
	c.debugServer = observability.StartDebugServer(addr, c.Config.PprofEnabled, c.metricsGatherer(), c.Logger)
}

func (c *Container) metricsGatherer() prometheus.Gatherer {
	if c.Metrics == nil {
		return nil
	}
	return c.Metrics.Gatherer()
}

// Close releases resources in reverse order of acquisition.
func (c *Container) Close(ctx context.Context) error {
	if c == nil {
		return nil
	}

	var combined error
	if c.debugServer != nil {
		combined = errors.Join(combined, observability.StopDebugServer(c.debugServer, c.Logger, shutdownTimeout))
	}
	for i := len(c.closers) - 1; i >= 0; i-- {
		combined = errors.Join(combined, c.closers[i](ctx))
	}
	c.closers = nil
	return combined
}

func (c *Container) openRepositories(ctx context.Context) (Repositories, error) {
	var repos Repositories
	switch c.Config.Storage {
	case config.StorageMemory:
		repos = Repositories{
			Players:     memory.NewPlayerRepository(nil),
			Stats:       memory.NewStatRepository(),
			Rulesets:    memory.NewRulesetRepository(memory.SeedRulesets(time.Now())),
			Leagues:     memory.NewLeagueRepository(nil),
			Roster:      memory.NewRosterRepository(nil),
			Performance: memory.NewPerformanceRepository(),
			Matchups:    memory.NewMatchupRepository(nil),
		}
		c.Logger.Warn("using in-memory storage; data is lost on exit")
	default:
		db, err := openDB(ctx, c.Config)
		if err != nil {
			return Repositories{}, err
		}
		c.closers = append(c.closers, func(context.Context) error { return db.Close() })
		repos = Repositories{
			Players:     postgres.NewPlayerRepository(db),
			Stats:       postgres.NewStatRepository(db),
			Rulesets:    postgres.NewRulesetRepository(db),
			Leagues:     postgres.NewLeagueRepository(db),
			Roster:      postgres.NewRosterRepository(db),
			Performance: postgres.NewPerformanceRepository(db),
			Matchups:    postgres.NewMatchupRepository(db),
		}
	}

	if c.Config.CacheEnabled {
		store := basecache.NewStore(c.Config.CacheTTL)
		repos.Leagues = cacherepo.NewLeagueRepository(repos.Leagues, store)
		repos.Rulesets = cacherepo.NewRulesetRepository(repos.Rulesets, store)
	}
	return repos, nil
}

func (c *Container) openRedisLock(ctx context.Context) (usecase.CycleLock, error) {
	opts, err := redis.ParseURL(c.Config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	c.closers = append(c.closers, func(context.Context) error { return client.Close() })

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return lock.NewRedisLock(client, c.Config.LockTTL, c.Logger.With("component", "lock")), nil
}
