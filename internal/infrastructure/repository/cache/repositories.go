package cache

import (
	"context"
	"maps"
	"strconv"

	"github.com/riskibarqy/fantasy-statline/internal/domain/league"
	"github.com/riskibarqy/fantasy-statline/internal/domain/ruleset"
	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
	basecache "github.com/riskibarqy/fantasy-statline/internal/platform/cache"
)

type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) ListActiveBySport(ctx context.Context, s sport.Sport) ([]league.League, error) {
	items, err := basecache.Load(ctx, r.cache, "league:active:"+string(s), func(ctx context.Context) ([]league.League, error) {
		items, err := r.next.ListActiveBySport(ctx, s)
		if err != nil {
			return nil, err
		}
		return append([]league.League(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]league.League(nil), items...), nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, id int64) (league.League, bool, error) {
	key := "league:id:" + strconv.FormatInt(id, 10)
	cached, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) (cachedLeague, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return cachedLeague{}, err
		}
		return cachedLeague{value: item, exists: exists}, nil
	})
	if err != nil {
		return league.League{}, false, err
	}
	return cached.value, cached.exists, nil
}

type cachedLeague struct {
	value  league.League
	exists bool
}

// RulesetRepository caches stored rulesets. Rows are immutable once written,
// so only misses need care: a negative fingerprint lookup is never cached.
type RulesetRepository struct {
	next  ruleset.Repository
	cache *basecache.Store
}

func NewRulesetRepository(next ruleset.Repository, cache *basecache.Store) *RulesetRepository {
	return &RulesetRepository{next: next, cache: cache}
}

func (r *RulesetRepository) GetByID(ctx context.Context, id int64) (ruleset.Ruleset, bool, error) {
	key := rulesetIDKey(id)
	if v, ok := r.cache.Get(ctx, key); ok {
		if rs, ok := v.(ruleset.Ruleset); ok {
			return copyRuleset(rs), true, nil
		}
	}

	rs, found, err := r.next.GetByID(ctx, id)
	if err != nil || !found {
		return rs, found, err
	}
	r.remember(ctx, rs)
	return copyRuleset(rs), true, nil
}

func (r *RulesetRepository) FindByFingerprint(ctx context.Context, s sport.Sport, fingerprint string) (ruleset.Ruleset, bool, error) {
	key := rulesetFingerprintKey(s, fingerprint)
	if v, ok := r.cache.Get(ctx, key); ok {
		if rs, ok := v.(ruleset.Ruleset); ok {
			return copyRuleset(rs), true, nil
		}
	}

	rs, found, err := r.next.FindByFingerprint(ctx, s, fingerprint)
	if err != nil || !found {
		return rs, found, err
	}
	r.remember(ctx, rs)
	return copyRuleset(rs), true, nil
}

func (r *RulesetRepository) Insert(ctx context.Context, rs ruleset.Ruleset) (ruleset.Ruleset, bool, error) {
	stored, created, err := r.next.Insert(ctx, rs)
	if err != nil {
		return ruleset.Ruleset{}, false, err
	}
	r.remember(ctx, stored)
	return copyRuleset(stored), created, nil
}

func (r *RulesetRepository) remember(ctx context.Context, rs ruleset.Ruleset) {
	stored := copyRuleset(rs)
	r.cache.Set(ctx, rulesetIDKey(rs.ID), stored)
	r.cache.Set(ctx, rulesetFingerprintKey(rs.Sport, rs.Fingerprint), stored)
}

func rulesetIDKey(id int64) string {
	return "ruleset:id:" + strconv.FormatInt(id, 10)
}

func rulesetFingerprintKey(s sport.Sport, fingerprint string) string {
	return "ruleset:fp:" + string(s) + ":" + fingerprint
}

func copyRuleset(rs ruleset.Ruleset) ruleset.Ruleset {
	rs.Weights = maps.Clone(rs.Weights)
	return rs
}
