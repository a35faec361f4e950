package memory

import (
	"time"

	"github.com/riskibarqy/fantasy-statline/internal/domain/ruleset"
	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
)

// SeedRulesets returns the default ruleset of every sport, ids in sport.All order.
func SeedRulesets(now time.Time) []ruleset.Ruleset {
	out := make([]ruleset.Ruleset, 0, len(sport.All()))
	for i, s := range sport.All() {
		weights := ruleset.Defaults(s)
		out = append(out, ruleset.Ruleset{
			ID:            int64(i + 1),
			Sport:         s,
			Name:          "Default " + string(s),
			SchemaVersion: ruleset.SchemaVersionFor(s),
			Weights:       weights,
			Fingerprint:   ruleset.Fingerprint(s, weights),
			CreatedAt:     now.UTC(),
		})
	}
	return out
}
