package sport

import (
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

var (
	ErrInvalidSport      = crerr.New("invalid sport")
	ErrInvalidLeagueCode = crerr.New("invalid league code")
)

// Sport is the league code used across storage and upstream paths.
type Sport string

const (
	NFL   Sport = "nfl"
	NCAAF Sport = "ncaaf"
	NBA   Sport = "nba"
	MLB   Sport = "mlb"
	NHL   Sport = "nhl"
)

type Granularity string

const (
	GranularityDay  Granularity = "day"
	GranularityWeek Granularity = "week"
)

// BenchPosition marks a roster slot that never contributes to a team score.
const BenchPosition = "BEN"

var all = []Sport{NFL, NCAAF, NBA, MLB, NHL}

func All() []Sport {
	return append([]Sport(nil), all...)
}

func Parse(raw string) (Sport, error) {
	value := Sport(strings.ToLower(strings.TrimSpace(raw)))
	for _, s := range all {
		if s == value {
			return s, nil
		}
	}
	return "", crerr.Wrapf(ErrInvalidSport, "sport %q", raw)
}

func (s Sport) Valid() bool {
	_, err := Parse(string(s))
	return err == nil
}

func (s Sport) Granularity() Granularity {
	if s.IsFootball() {
		return GranularityWeek
	}
	return GranularityDay
}

func (s Sport) IsFootball() bool {
	return s == NFL || s == NCAAF
}

// UpstreamPath returns the {sport}/{league} path segment pair.
func (s Sport) UpstreamPath() (string, string, error) {
	switch s {
	case NFL:
		return "football", "nfl", nil
	case NCAAF:
		return "football", "college-football", nil
	case NBA:
		return "basketball", "nba", nil
	case MLB:
		return "baseball", "mlb", nil
	case NHL:
		return "hockey", "nhl", nil
	default:
		return "", "", crerr.Wrapf(ErrInvalidLeagueCode, "league code %q", string(s))
	}
}

// StartingPositions is the closed set of lineup slots, bench excluded.
func (s Sport) StartingPositions() []string {
	switch s {
	case NFL, NCAAF:
		return []string{"QB", "RB", "WR", "TE", "FLX", "DST", "K"}
	case NHL:
		return []string{"F", "C", "D", "G"}
	case NBA:
		return []string{"PG", "SG", "SF", "PF", "C"}
	case MLB:
		return []string{"IF", "OF", "P", "C"}
	default:
		return nil
	}
}

func (s Sport) ValidPosition(position string) bool {
	if position == BenchPosition {
		return true
	}
	for _, p := range s.StartingPositions() {
		if p == position {
			return true
		}
	}
	return false
}

// PlayerID builds a sport-namespaced identifier, e.g. "nhl:3041969".
// Negative upstream ids denote football team-defense pseudo-players.
func PlayerID(s Sport, upstreamID int64) string {
	return string(s) + ":" + strconv.FormatInt(upstreamID, 10)
}

// PlayerIDFromString accepts the upstream id as delivered in JSON payloads.
func PlayerIDFromString(s Sport, upstreamID string) (string, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(upstreamID), 10, 64)
	if err != nil || id == 0 {
		return "", false
	}
	return PlayerID(s, id), true
}

// TeamDefenseID returns the pseudo-player identifier for a football team defense.
func TeamDefenseID(s Sport, teamUpstreamID int64) string {
	if teamUpstreamID > 0 {
		teamUpstreamID = -teamUpstreamID
	}
	return PlayerID(s, teamUpstreamID)
}

func SplitPlayerID(id string) (Sport, int64, error) {
	prefix, raw, ok := strings.Cut(id, ":")
	if !ok {
		return "", 0, crerr.Newf("malformed player id %q", id)
	}
	s, err := Parse(prefix)
	if err != nil {
		return "", 0, err
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return "", 0, crerr.Wrapf(err, "malformed player id %q", id)
	}
	return s, n, nil
}

func IsTeamDefense(id string) bool {
	_, n, err := SplitPlayerID(id)
	return err == nil && n < 0
}
