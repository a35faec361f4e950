package scoring

import (
	"math"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-statline/internal/domain/ruleset"
	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
	"github.com/riskibarqy/fantasy-statline/internal/domain/statline"
)

// ComputePoints prices one stat line with the given weights. Factors missing
// from weights count as zero. Football lines carrying points_allowed also
// receive exactly one points-allowed band weight. No rounding is applied.
func ComputePoints(s sport.Sport, line statline.Line, weights map[string]float64) (float64, error) {
	b, err := Explain(s, line, weights)
	if err != nil {
		return 0, err
	}
	return b.Total, nil
}

type TermPoints struct {
	Stat   string
	Factor string
	Value  float64
	Weight float64
	Points float64
}

type Breakdown struct {
	Sport sport.Sport
	Terms []TermPoints
	Total float64
}

// Explain is ComputePoints with the per-factor contributions kept.
func Explain(s sport.Sport, line statline.Line, weights map[string]float64) (Breakdown, error) {
	factors := ruleset.FactorSet(s)
	if factors == nil {
		return Breakdown{}, crerr.Wrapf(sport.ErrInvalidSport, "score sport %q", string(s))
	}

	out := Breakdown{Sport: s, Terms: make([]TermPoints, 0, len(factors))}
	for _, f := range factors {
		if f.Stat == "" {
			continue
		}
		value, ok := line[f.Stat]
		if !ok {
			continue
		}
		weight := weights[f.Key]
		points := value * weight
		out.Terms = append(out.Terms, TermPoints{Stat: f.Stat, Factor: f.Key, Value: value, Weight: weight, Points: points})
		out.Total += points
	}

	if s.IsFootball() {
		if pa, ok := line[statline.PointsAllowed]; ok {
			factor := PointsAllowedBand(int(math.Round(pa)))
			weight := weights[factor]
			out.Terms = append(out.Terms, TermPoints{Stat: statline.PointsAllowed, Factor: factor, Value: pa, Weight: weight, Points: weight})
			out.Total += weight
		}
	}

	return out, nil
}

// PointsAllowedBand maps points allowed to the factor key of its band.
// Negative inputs are treated as a shutout.
func PointsAllowedBand(pa int) string {
	switch {
	case pa <= 0:
		return ruleset.Shutout
	case pa <= 6:
		return ruleset.PA1to6
	case pa <= 13:
		return ruleset.PA7to13
	case pa <= 20:
		return ruleset.PA14to20
	case pa <= 27:
		return ruleset.PA21to27
	case pa <= 34:
		return ruleset.PA28to34
	default:
		return ruleset.PA35Plus
	}
}

// PointsAllowedBands lists the band factors from best to worst.
func PointsAllowedBands() []string {
	return []string{
		ruleset.Shutout, ruleset.PA1to6, ruleset.PA7to13, ruleset.PA14to20,
		ruleset.PA21to27, ruleset.PA28to34, ruleset.PA35Plus,
	}
}
