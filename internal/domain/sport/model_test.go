package sport

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	got, err := Parse(" NHL ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != NHL {
		t.Fatalf("unexpected sport %q", got)
	}

	if _, err := Parse("curling"); !errors.Is(err, ErrInvalidSport) {
		t.Fatalf("expected ErrInvalidSport, got %v", err)
	}
}

func TestPlayerID_NamespacesUpstreamIDs(t *testing.T) {
	if PlayerID(NFL, 3139477) == PlayerID(NHL, 3139477) {
		t.Fatalf("expected ids from different sports to differ")
	}

	id := TeamDefenseID(NFL, 12)
	if id != "nfl:-12" {
		t.Fatalf("unexpected team defense id %q", id)
	}
	if !IsTeamDefense(id) {
		t.Fatalf("expected %q to be a team defense", id)
	}

	s, n, err := SplitPlayerID("mlb:33039")
	if err != nil || s != MLB || n != 33039 {
		t.Fatalf("unexpected split: %s %d %v", s, n, err)
	}
}

func TestGranularity(t *testing.T) {
	if NFL.Granularity() != GranularityWeek || NCAAF.Granularity() != GranularityWeek {
		t.Fatalf("football must key by week")
	}
	if NBA.Granularity() != GranularityDay {
		t.Fatalf("basketball must key by day")
	}
}

func TestValidPosition(t *testing.T) {
	if !NBA.ValidPosition(BenchPosition) {
		t.Fatalf("bench is valid for every sport")
	}
	if NBA.ValidPosition("QB") {
		t.Fatalf("QB is not a basketball slot")
	}
	if !NFL.ValidPosition("DST") {
		t.Fatalf("DST is a football slot")
	}
}
