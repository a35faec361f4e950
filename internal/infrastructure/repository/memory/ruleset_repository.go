package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/riskibarqy/fantasy-statline/internal/domain/ruleset"
	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
)

type fingerprintKey struct {
	sport       sport.Sport
	fingerprint string
}

type RulesetRepository struct {
	mu            sync.RWMutex
	nextID        int64
	items         map[int64]ruleset.Ruleset
	byFingerprint map[fingerprintKey]int64
}

func NewRulesetRepository(rulesets []ruleset.Ruleset) *RulesetRepository {
	r := &RulesetRepository{
		items:         make(map[int64]ruleset.Ruleset, len(rulesets)),
		byFingerprint: make(map[fingerprintKey]int64, len(rulesets)),
	}
	for _, rs := range rulesets {
		r.items[rs.ID] = rs
		r.byFingerprint[fingerprintKey{sport: rs.Sport, fingerprint: rs.Fingerprint}] = rs.ID
		r.nextID = max(r.nextID, rs.ID)
	}
	return r
}

func (r *RulesetRepository) GetByID(_ context.Context, id int64) (ruleset.Ruleset, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rs, ok := r.items[id]
	if !ok {
		return ruleset.Ruleset{}, false, nil
	}
	return copyRuleset(rs), true, nil
}

func (r *RulesetRepository) FindByFingerprint(_ context.Context, s sport.Sport, fingerprint string) (ruleset.Ruleset, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byFingerprint[fingerprintKey{sport: s, fingerprint: fingerprint}]
	if !ok {
		return ruleset.Ruleset{}, false, nil
	}
	return copyRuleset(r.items[id]), true, nil
}

// Insert checks and inserts under one lock, mirroring the unique constraint.
func (r *RulesetRepository) Insert(_ context.Context, rs ruleset.Ruleset) (ruleset.Ruleset, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := fingerprintKey{sport: rs.Sport, fingerprint: rs.Fingerprint}
	if id, ok := r.byFingerprint[key]; ok {
		return copyRuleset(r.items[id]), false, nil
	}

	r.nextID++
	rs.ID = r.nextID
	rs = copyRuleset(rs)
	r.items[rs.ID] = rs
	r.byFingerprint[key] = rs.ID
	return copyRuleset(rs), true, nil
}

func (r *RulesetRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

func copyRuleset(rs ruleset.Ruleset) ruleset.Ruleset {
	rs.Weights = maps.Clone(rs.Weights)
	return rs
}
