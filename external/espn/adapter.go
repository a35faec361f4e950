package espn

import (
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
	"github.com/riskibarqy/fantasy-statline/internal/domain/statline"
)

// Parse normalizes one game into per-player stat lines. When plays is nil the
// summary's embedded plays are used. Malformed rows degrade to zero values;
// the only error is an unsupported sport.
func Parse(s sport.Sport, game GameSummary, plays []Play) (statline.GameStats, error) {
	if plays == nil {
		plays = game.Plays
	}

	switch s {
	case sport.MLB:
		return parseBaseball(game, plays), nil
	case sport.NHL:
		return parseHockey(game, plays), nil
	case sport.NBA:
		return parseBasketball(game), nil
	case sport.NFL:
		return parseFootball(s, game, plays), nil
	case sport.NCAAF:
		// College extraction is not implemented; an empty result is not an error.
		return statline.GameStats{}, nil
	default:
		return nil, crerr.Wrapf(sport.ErrInvalidSport, "parse game %s", game.Header.ID)
	}
}

// NeedsPlayByPlay reports whether derived stats for s come from the play feed.
func NeedsPlayByPlay(s sport.Sport) bool {
	return s == sport.MLB || s == sport.NHL || s == sport.NFL
}

type athleteVisitor func(id string, line AthleteLine)

// eachAthlete walks the rows of a block that resolve to a player id.
func eachAthlete(s sport.Sport, block StatBlock, visit athleteVisitor) {
	for _, row := range block.Athletes {
		if row.DidNotPlay || len(row.Stats) == 0 {
			continue
		}
		id, ok := sport.PlayerIDFromString(s, row.Athlete.ID)
		if !ok {
			continue
		}
		visit(id, row)
	}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
