package usecase

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/fantasy-statline/internal/domain/ruleset"
	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
	"github.com/riskibarqy/fantasy-statline/internal/domain/statline"
	"github.com/riskibarqy/fantasy-statline/internal/infrastructure/repository/memory"
	rulesetmock "github.com/riskibarqy/fantasy-statline/internal/mocks/domain/ruleset"
	"github.com/riskibarqy/fantasy-statline/internal/platform/logging"
)

func footballInput(name string) CreateRulesetInput {
	return CreateRulesetInput{
		Sport: "nfl",
		Name:  name,
		Weights: map[string]float64{
			ruleset.PassTD:  4,
			ruleset.PassYd:  0.04,
			ruleset.Int:     -2,
			ruleset.Shutout: 10,
		},
	}
}

func TestRulesetService_CreateOrGet_DedupsIdenticalWeights(t *testing.T) {
	t.Parallel()

	repo := memory.NewRulesetRepository(nil)
	svc := NewRulesetService(repo, logging.NewNop())

	first, created, err := svc.CreateOrGet(context.Background(), footballInput("League A"))
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if !created {
		t.Fatalf("expected first call to create")
	}

	second, created, err := svc.CreateOrGet(context.Background(), footballInput("League B"))
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if created {
		t.Fatalf("expected second call to reuse the stored ruleset")
	}
	if first.ID != second.ID {
		t.Fatalf("expected same id, got %d and %d", first.ID, second.ID)
	}
	if repo.Count() != 1 {
		t.Fatalf("expected one stored row, got=%d", repo.Count())
	}
}

func TestRulesetService_CreateOrGet_ConcurrentCallersShareOneRow(t *testing.T) {
	t.Parallel()

	repo := memory.NewRulesetRepository(nil)
	svc := NewRulesetService(repo, logging.NewNop())

	const callers = 12
	ids := make([]int64, callers)
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			stored, _, err := svc.CreateOrGet(context.Background(), footballInput("race"))
			if err != nil {
				t.Errorf("create: %v", err)
				return
			}
			ids[i] = stored.ID
		}()
	}
	wg.Wait()

	if repo.Count() != 1 {
		t.Fatalf("expected one stored row, got=%d", repo.Count())
	}
	for _, id := range ids {
		if id != ids[0] {
			t.Fatalf("expected every caller to get id=%d, got=%d", ids[0], id)
		}
	}
}

func TestRulesetService_CreateOrGet_LostInsertRaceReturnsExisting(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := rulesetmock.NewRepository(t)
	svc := NewRulesetService(repo, logging.NewNop())
	input := footballInput("late")
	fingerprint := ruleset.Fingerprint(sport.NFL, input.Weights)
	winner := ruleset.Ruleset{ID: 77, Sport: sport.NFL, Fingerprint: fingerprint}

	repo.
		On("FindByFingerprint", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), sport.NFL, fingerprint).
		Return(ruleset.Ruleset{}, false, nil).
		Once()
	repo.
		On("Insert", mock.Anything, mock.MatchedBy(func(r ruleset.Ruleset) bool {
			return r.Fingerprint == fingerprint && r.SchemaVersion == ruleset.SchemaVersionFor(sport.NFL)
		})).
		Return(winner, false, nil).
		Once()

	got, created, err := svc.CreateOrGet(ctx, input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created || got.ID != 77 {
		t.Fatalf("expected existing ruleset id=77, got id=%d created=%v", got.ID, created)
	}
}

func TestRulesetService_CreateOrGet_RejectsBadInput(t *testing.T) {
	t.Parallel()

	svc := NewRulesetService(memory.NewRulesetRepository(nil), logging.NewNop())
	cases := []struct {
		name  string
		input CreateRulesetInput
		want  error
	}{
		{name: "missing name", input: CreateRulesetInput{Sport: "nba", Weights: map[string]float64{ruleset.Point: 1}}, want: ErrInvalidInput},
		{name: "empty weights", input: CreateRulesetInput{Sport: "nba", Name: "x", Weights: map[string]float64{}}, want: ErrInvalidInput},
		{name: "unknown sport", input: CreateRulesetInput{Sport: "cricket", Name: "x", Weights: map[string]float64{ruleset.Point: 1}}, want: ErrInvalidSport},
		{name: "foreign factor", input: CreateRulesetInput{Sport: "nba", Name: "x", Weights: map[string]float64{ruleset.PassTD: 4}}, want: ErrInvalidInput},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.CreateOrGet(context.Background(), tc.input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestRulesetService_Preview_ScoresStoredRuleset(t *testing.T) {
	t.Parallel()

	repo := memory.NewRulesetRepository(nil)
	svc := NewRulesetService(repo, logging.NewNop())
	stored, _, err := svc.CreateOrGet(context.Background(), footballInput("preview"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.Preview(context.Background(), PreviewInput{
		Sport:     "nfl",
		RulesetID: stored.ID,
		Stats: statline.Line{
			statline.PassingTDs:    2,
			statline.PassingYards:  300,
			statline.Interceptions: 1,
			statline.PointsAllowed: 0,
		},
	})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if math.Abs(got.Points-28.0) > 1e-9 {
		t.Fatalf("expected 28.0, got=%v", got.Points)
	}
	if got.Stale {
		t.Fatalf("expected fresh ruleset")
	}
}

func TestRulesetService_Preview_FlagsStaleRuleset(t *testing.T) {
	t.Parallel()

	repo := memory.NewRulesetRepository([]ruleset.Ruleset{{
		ID:            3,
		Sport:         sport.NBA,
		SchemaVersion: ruleset.SchemaVersionFor(sport.NBA) - 1,
		Weights:       map[string]float64{ruleset.Point: 1},
	}})
	svc := NewRulesetService(repo, logging.NewNop())

	got, err := svc.Preview(context.Background(), PreviewInput{
		Sport:     "nba",
		RulesetID: 3,
		Stats:     statline.Line{statline.Points: 17},
	})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !got.Stale || got.Points != 17 {
		t.Fatalf("expected stale preview with 17 points, got=%+v", got)
	}
}

func TestRulesetService_Preview_MissingRuleset(t *testing.T) {
	t.Parallel()

	svc := NewRulesetService(memory.NewRulesetRepository(nil), logging.NewNop())
	_, err := svc.Preview(context.Background(), PreviewInput{Sport: "mlb", RulesetID: 99})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
