package espn

import (
	"strings"

	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
	"github.com/riskibarqy/fantasy-statline/internal/domain/statline"
)

func parseHockey(game GameSummary, plays []Play) statline.GameStats {
	out := statline.GameStats{}

	for _, team := range game.Boxscore.Players {
		for _, block := range team.Statistics {
			table := newStatTable(block)
			if isGoalieBlock(block, table) {
				shutoutBy := shutoutGoalie(block, table)
				eachAthlete(sport.NHL, block, func(id string, row AthleteLine) {
					line := out.Line(id)
					line.Add(statline.Saves, table.value(row.Stats, "SV", "SAVES"))
					line.Add(statline.GoalsAgainst, table.value(row.Stats, "GA"))
					line.Add(statline.Shutouts, boolValue(id == shutoutBy))
				})
				continue
			}
			eachAthlete(sport.NHL, block, func(id string, row AthleteLine) {
				line := out.Line(id)
				line.Add(statline.Goals, table.value(row.Stats, "G"))
				line.Add(statline.Assists, table.value(row.Stats, "A"))
				line.Add(statline.PlusMinus, table.value(row.Stats, "+/-"))
				line.Add(statline.Shots, table.value(row.Stats, "S", "SOG"))
				line.Add(statline.HockeyHits, table.value(row.Stats, "HT", "HIT"))
				line.Add(statline.BlockedShots, table.value(row.Stats, "BS", "BLK"))
				line.Add(statline.PPPoints, 0)
				line.Add(statline.SHPoints, 0)
			})
		}
	}

	creditSpecialTeams(out, plays)
	return out
}

func isGoalieBlock(block StatBlock, table statTable) bool {
	if containsFold(block.Name, "goalie") || containsFold(block.Type, "goalie") {
		return true
	}
	return table.has("SV") && table.has("GA") && !table.has("G")
}

// shutoutGoalie returns the player id credited with a shutout for one team's
// goalie block, or "". The team must have allowed no goals and the block must
// carry a GA column. The starter gets the credit; without a starter marker only
// a lone goalie who played qualifies.
func shutoutGoalie(block StatBlock, table statTable) string {
	if !table.has("GA") {
		return ""
	}

	var played []string
	starter := ""
	disqualified := false
	eachAthlete(sport.NHL, block, func(id string, row AthleteLine) {
		cell, ok := table.raw(row.Stats, "GA")
		if !ok || parseNumber(cell) != 0 {
			disqualified = true
		}
		played = append(played, id)
		if row.Starter {
			starter = id
		}
	})

	switch {
	case disqualified:
		return ""
	case starter != "":
		return starter
	case len(played) == 1:
		return played[0]
	}
	return ""
}

// creditSpecialTeams gives every skater on a power-play or shorthanded goal one point.
func creditSpecialTeams(out statline.GameStats, plays []Play) {
	for _, play := range plays {
		if !play.ScoringPlay && !play.Type.Matches("goal") {
			continue
		}
		field := strengthField(play)
		if field == "" {
			continue
		}
		seen := make(map[string]struct{}, len(play.Participants))
		for _, p := range play.Participants {
			if strings.EqualFold(p.Type, "goalie") {
				continue
			}
			id, ok := sport.PlayerIDFromString(sport.NHL, p.Athlete.ID)
			if !ok {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out.Add(id, field, 1)
		}
	}
}

func strengthField(play Play) string {
	if play.Strength == nil {
		return ""
	}
	switch {
	case play.Strength.Matches("power play"), play.Strength.Matches("power-play"), strings.EqualFold(play.Strength.Abbreviation, "ppg"):
		return statline.PPPoints
	case play.Strength.Matches("short"), strings.EqualFold(play.Strength.Abbreviation, "shg"):
		return statline.SHPoints
	default:
		return ""
	}
}
