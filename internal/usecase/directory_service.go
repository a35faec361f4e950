package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/fantasy-statline/internal/domain/player"
	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
	"github.com/riskibarqy/fantasy-statline/internal/domain/statline"
	"github.com/riskibarqy/fantasy-statline/internal/platform/logging"
	"github.com/riskibarqy/fantasy-statline/internal/platform/resilience"
)

const (
	defaultRosterBatchSize = 500
	rosterUpsertWorkers    = 2
)

// DirectoryService attributes stat lines to known players, refreshing the
// roster from upstream at most once per call when ids are missing.
type DirectoryService struct {
	players   player.Repository
	roster    RosterProvider
	logger    *logging.Logger
	metrics   Metrics
	batchSize int
	now       func() time.Time
	refresh   resilience.Flight[int]
}

type ResolveReport struct {
	Known     int
	Refreshed bool
	Upserted  int
	Dropped   []string
}

func NewDirectoryService(players player.Repository, roster RosterProvider, logger *logging.Logger, metrics Metrics) *DirectoryService {
	if logger == nil {
		logger = logging.Default()
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &DirectoryService{
		players:   players,
		roster:    roster,
		logger:    logger,
		metrics:   metrics,
		batchSize: defaultRosterBatchSize,
		now:       time.Now,
	}
}

// Resolve returns stats restricted to known players. Team defense lines are
// registered on sight since no roster listing carries them.
func (s *DirectoryService) Resolve(ctx context.Context, sp sport.Sport, stats statline.GameStats) (statline.GameStats, ResolveReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DirectoryService.Resolve")
	defer span.End()

	var report ResolveReport
	if len(stats) == 0 {
		return statline.GameStats{}, report, nil
	}

	ids := stats.PlayerIDs()
	known, err := s.players.KnownIDs(ctx, sp, ids)
	if err != nil {
		return nil, report, fmt.Errorf("lookup known players: %w", err)
	}

	if err := s.registerTeamDefenses(ctx, sp, ids, known); err != nil {
		return nil, report, err
	}

	missing := unknownIDs(ids, known)
	if len(missing) > 0 {
		upserted, refreshErr := s.refreshRoster(ctx, sp)
		if refreshErr != nil {
			s.logger.WarnContext(ctx, "roster refresh failed",
				"sport", sp,
				"missing", len(missing),
				"error", refreshErr,
			)
		} else {
			report.Refreshed = true
			report.Upserted = upserted

			found, err := s.players.KnownIDs(ctx, sp, missing)
			if err != nil {
				return nil, report, fmt.Errorf("lookup refreshed players: %w", err)
			}
			for id := range found {
				known[id] = struct{}{}
			}
			missing = unknownIDs(missing, found)
		}
	}

	out := make(statline.GameStats, len(stats))
	for id, line := range stats {
		if _, ok := known[id]; ok {
			out[id] = line
		}
	}
	report.Known = len(out)
	report.Dropped = missing

	if len(missing) > 0 {
		s.metrics.AddPlayersDropped(sp, len(missing))
		s.logger.WarnContext(ctx, "dropped stats for unknown players",
			"sport", sp,
			"dropped", len(missing),
		)
	}
	return out, report, nil
}

// RefreshRoster upserts the full active roster of a sport and returns the row count.
func (s *DirectoryService) RefreshRoster(ctx context.Context, sp sport.Sport) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DirectoryService.RefreshRoster", sportAttrs(sp)...)
	defer span.End()

	return s.refreshRoster(ctx, sp)
}

func (s *DirectoryService) refreshRoster(ctx context.Context, sp sport.Sport) (int, error) {
	count, shared, err := s.refresh.Do("roster:"+string(sp), func() (int, error) {
		return s.refreshRosterOnce(ctx, sp)
	})
	if err != nil {
		return 0, err
	}
	if shared {
		s.logger.DebugContext(ctx, "joined in-flight roster refresh", "sport", sp)
	}
	return count, nil
}

func (s *DirectoryService) refreshRosterOnce(ctx context.Context, sp sport.Sport) (int, error) {
	listed, err := s.roster.FetchActiveRoster(ctx, sp)
	if err != nil {
		return 0, fmt.Errorf("fetch %s roster: %w", sp, err)
	}

	valid := make([]player.Player, 0, len(listed))
	for _, item := range listed {
		if err := item.Validate(); err != nil {
			s.logger.DebugContext(ctx, "skip invalid roster entry", "sport", sp, "player_id", item.ID, "error", err)
			continue
		}
		valid = append(valid, item)
	}
	if len(valid) == 0 {
		return 0, nil
	}

	if err := s.upsertBatches(ctx, valid); err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "roster refreshed", "sport", sp, "players", len(valid))
	return len(valid), nil
}

func (s *DirectoryService) upsertBatches(ctx context.Context, players []player.Player) error {
	batches := chunkPlayers(players, s.batchSize)

	pool, err := ants.NewPool(min(rosterUpsertWorkers, len(batches)))
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		workers  sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for _, batch := range batches {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			if upsertErr := s.players.UpsertMany(ctx, batch); upsertErr != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = upsertErr
				}
				mu.Unlock()
			}
		}); err != nil {
			workers.Done()
			return fmt.Errorf("submit roster batch: %w", err)
		}
	}
	workers.Wait()

	if firstErr != nil {
		return fmt.Errorf("upsert roster batch: %w", firstErr)
	}
	return nil
}

func (s *DirectoryService) registerTeamDefenses(ctx context.Context, sp sport.Sport, ids []string, known map[string]struct{}) error {
	var defenses []player.Player
	for _, id := range ids {
		if !sport.IsTeamDefense(id) {
			continue
		}
		if _, ok := known[id]; ok {
			continue
		}
		_, upstreamID, err := sport.SplitPlayerID(id)
		if err != nil {
			continue
		}
		defenses = append(defenses, player.Player{
			ID:          id,
			Sport:       sp,
			UpstreamID:  upstreamID,
			DisplayName: "Team Defense " + strconv.FormatInt(-upstreamID, 10),
			Position:    "DST",
			UpdatedAt:   s.now().UTC(),
		})
	}
	if len(defenses) == 0 {
		return nil
	}

	if err := s.players.UpsertMany(ctx, defenses); err != nil {
		return fmt.Errorf("register team defenses: %w", err)
	}
	for _, item := range defenses {
		known[item.ID] = struct{}{}
	}
	return nil
}

func unknownIDs(ids []string, known map[string]struct{}) []string {
	var out []string
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

func chunkPlayers(players []player.Player, size int) [][]player.Player {
	if size < 1 {
		size = len(players)
	}
	out := make([][]player.Player, 0, len(players)/size+1)
	for start := 0; start < len(players); start += size {
		end := min(start+size, len(players))
		out = append(out, players[start:end])
	}
	return out
}
