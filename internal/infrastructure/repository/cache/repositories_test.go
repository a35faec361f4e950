package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-statline/internal/domain/league"
	"github.com/riskibarqy/fantasy-statline/internal/domain/ruleset"
	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
	leaguemock "github.com/riskibarqy/fantasy-statline/internal/mocks/domain/league"
	rulesetmock "github.com/riskibarqy/fantasy-statline/internal/mocks/domain/ruleset"
	basecache "github.com/riskibarqy/fantasy-statline/internal/platform/cache"
	"github.com/stretchr/testify/mock"
)

func TestLeagueRepository_ListActiveBySportLoadsOnce(t *testing.T) {
	next := leaguemock.NewRepository(t)
	next.On("ListActiveBySport", mock.Anything, sport.NBA).
		Return([]league.League{{ID: 1, Sport: sport.NBA, RulesetID: 3, CurrentWeek: 2}}, nil).
		Once()

	repo := NewLeagueRepository(next, basecache.NewStore(time.Minute))
	for i := 0; i < 3; i++ {
		got, err := repo.ListActiveBySport(context.Background(), sport.NBA)
		if err != nil {
			t.Fatalf("list active leagues: %v", err)
		}
		if len(got) != 1 || got[0].ID != 1 {
			t.Fatalf("unexpected leagues: %+v", got)
		}
		got[0].Name = "mutated"
	}

	again, _ := repo.ListActiveBySport(context.Background(), sport.NBA)
	if again[0].Name == "mutated" {
		t.Fatalf("cached slice leaked to caller")
	}
}

func TestLeagueRepository_GetByIDCachesMissingLeague(t *testing.T) {
	next := leaguemock.NewRepository(t)
	next.On("GetByID", mock.Anything, int64(9)).Return(league.League{}, false, nil).Once()

	repo := NewLeagueRepository(next, basecache.NewStore(time.Minute))
	for i := 0; i < 2; i++ {
		_, found, err := repo.GetByID(context.Background(), 9)
		if err != nil || found {
			t.Fatalf("expected cached miss, found=%t err=%v", found, err)
		}
	}
}

func TestLeagueRepository_ErrorsAreNotCached(t *testing.T) {
	next := leaguemock.NewRepository(t)
	next.On("ListActiveBySport", mock.Anything, sport.NHL).Return(nil, errors.New("db down")).Once()
	next.On("ListActiveBySport", mock.Anything, sport.NHL).Return([]league.League{}, nil).Once()

	repo := NewLeagueRepository(next, basecache.NewStore(time.Minute))
	if _, err := repo.ListActiveBySport(context.Background(), sport.NHL); err == nil {
		t.Fatalf("expected first call to fail")
	}
	if _, err := repo.ListActiveBySport(context.Background(), sport.NHL); err != nil {
		t.Fatalf("expected retry to reach the database: %v", err)
	}
}

func TestRulesetRepository_InsertPrimesLookups(t *testing.T) {
	weights := map[string]float64{ruleset.Goal: 3}
	stored := ruleset.Ruleset{
		ID:          11,
		Sport:       sport.NHL,
		Weights:     weights,
		Fingerprint: ruleset.Fingerprint(sport.NHL, weights),
	}

	next := rulesetmock.NewRepository(t)
	next.On("Insert", mock.Anything, mock.AnythingOfType("ruleset.Ruleset")).Return(stored, true, nil).Once()

	repo := NewRulesetRepository(next, basecache.NewStore(time.Minute))
	_, created, err := repo.Insert(context.Background(), stored)
	if err != nil || !created {
		t.Fatalf("insert: created=%t err=%v", created, err)
	}

	byID, found, err := repo.GetByID(context.Background(), 11)
	if err != nil || !found || byID.Weight(ruleset.Goal) != 3 {
		t.Fatalf("expected cached ruleset by id, got %+v found=%t err=%v", byID, found, err)
	}
	byID.Weights[ruleset.Goal] = 100

	byFP, found, err := repo.FindByFingerprint(context.Background(), sport.NHL, stored.Fingerprint)
	if err != nil || !found {
		t.Fatalf("expected cached ruleset by fingerprint, found=%t err=%v", found, err)
	}
	if byFP.Weight(ruleset.Goal) != 3 {
		t.Fatalf("cached weights were mutated through a returned copy")
	}
}

func TestRulesetRepository_FingerprintMissIsNotCached(t *testing.T) {
	next := rulesetmock.NewRepository(t)
	next.On("FindByFingerprint", mock.Anything, sport.NBA, "abc").Return(ruleset.Ruleset{}, false, nil).Twice()

	repo := NewRulesetRepository(next, basecache.NewStore(time.Minute))
	for i := 0; i < 2; i++ {
		if _, found, err := repo.FindByFingerprint(context.Background(), sport.NBA, "abc"); err != nil || found {
			t.Fatalf("expected miss, found=%t err=%v", found, err)
		}
	}
}
