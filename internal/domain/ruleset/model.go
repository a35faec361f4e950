package ruleset

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
)

// Ruleset is a named set of scoring-factor weights for one sport.
type Ruleset struct {
	ID            int64
	Sport         sport.Sport
	Name          string
	SchemaVersion int
	Weights       map[string]float64
	Fingerprint   string
	CreatedAt     time.Time
}

func (r Ruleset) Weight(factor string) float64 {
	return r.Weights[factor]
}

// Stale reports whether the ruleset was stored under an older factor set of
// its own sport.
func (r Ruleset) Stale() bool {
	return r.SchemaVersion < SchemaVersionFor(r.Sport)
}

// Fingerprint is the dedup key for a weight tuple. Zero weights are dropped
// because an absent factor already scores as zero.
func Fingerprint(s sport.Sport, weights map[string]float64) string {
	keys := make([]string, 0, len(weights))
	for key, value := range weights {
		if value == 0 {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(string(s))
	for _, key := range keys {
		b.WriteByte('|')
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(strconv.FormatFloat(weights[key], 'g', -1, 64))
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// UnknownFactors lists weight keys the sport does not score.
func UnknownFactors(s sport.Sport, weights map[string]float64) []string {
	known := make(map[string]struct{})
	for _, f := range Factors(s) {
		known[f] = struct{}{}
	}
	var out []string
	for key := range weights {
		if _, ok := known[key]; !ok {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}
