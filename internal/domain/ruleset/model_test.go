package ruleset

import (
	"testing"

	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
)

func TestFingerprint_IgnoresOrderAndZeroWeights(t *testing.T) {
	a := map[string]float64{PassTD: 4, PassYd: 0.04, Int: -2}
	b := map[string]float64{Int: -2, PassYd: 0.04, PassTD: 4, RushTD: 0}

	if Fingerprint(sport.NFL, a) != Fingerprint(sport.NFL, b) {
		t.Fatalf("expected identical fingerprints")
	}
}

func TestFingerprint_DiffersBySportAndValue(t *testing.T) {
	weights := map[string]float64{Assist: 2}

	if Fingerprint(sport.NBA, weights) == Fingerprint(sport.NHL, weights) {
		t.Fatalf("expected sport to change fingerprint")
	}
	if Fingerprint(sport.NHL, weights) == Fingerprint(sport.NHL, map[string]float64{Assist: 2.5}) {
		t.Fatalf("expected weight value to change fingerprint")
	}
}

func TestDefaults_OnlyUseKnownFactors(t *testing.T) {
	for _, s := range sport.All() {
		if unknown := UnknownFactors(s, Defaults(s)); len(unknown) > 0 {
			t.Fatalf("%s defaults carry unknown factors: %v", s, unknown)
		}
	}
}

func TestRuleset_StaleIsJudgedPerSport(t *testing.T) {
	mlb := SchemaVersionFor(sport.MLB)
	if mlb < 2 {
		t.Fatalf("expected mlb factor set to be versioned past quality starts, got %d", mlb)
	}
	if !(Ruleset{Sport: sport.MLB, SchemaVersion: mlb - 1}).Stale() {
		t.Fatalf("expected older mlb schema to be stale")
	}
	if (Ruleset{Sport: sport.MLB, SchemaVersion: mlb}).Stale() {
		t.Fatalf("expected current mlb schema to be fresh")
	}

	// A ruleset of another sport stored at its own current version stays fresh
	// whatever the baseball version is.
	nba := Ruleset{Sport: sport.NBA, SchemaVersion: SchemaVersionFor(sport.NBA)}
	if nba.SchemaVersion >= mlb {
		t.Fatalf("test needs sports on different versions, nba=%d mlb=%d", nba.SchemaVersion, mlb)
	}
	if nba.Stale() {
		t.Fatalf("expected nba ruleset fresh under its own factor set")
	}

	if SchemaVersionFor(sport.Sport("cricket")) != 0 {
		t.Fatalf("expected unknown sport version 0")
	}
}

func TestFactorSet_KeysAreUniquePerSport(t *testing.T) {
	for _, s := range sport.All() {
		seen := make(map[string]bool)
		for _, f := range FactorSet(s) {
			if seen[f.Key] {
				t.Fatalf("%s lists factor %s twice", s, f.Key)
			}
			seen[f.Key] = true
			if f.Stat == "" && !s.IsFootball() {
				t.Fatalf("%s factor %s has no stat field", s, f.Key)
			}
		}
		if len(seen) == 0 {
			t.Fatalf("%s has no factors", s)
		}
	}
	if FactorSet(sport.Sport("cricket")) != nil || Factors(sport.Sport("cricket")) != nil {
		t.Fatalf("expected no factors for an unknown sport")
	}
}
