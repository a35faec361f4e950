package espn

import (
	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
	"github.com/riskibarqy/fantasy-statline/internal/domain/statline"
)

func parseBasketball(game GameSummary) statline.GameStats {
	out := statline.GameStats{}

	for _, team := range game.Boxscore.Players {
		for _, block := range team.Statistics {
			table := newStatTable(block)
			eachAthlete(sport.NBA, block, func(id string, row AthleteLine) {
				points := table.value(row.Stats, "PTS")
				rebounds := table.value(row.Stats, "REB")
				assists := table.value(row.Stats, "AST")
				threes, _ := table.made(row.Stats, "3PT", "3PM-A")

				line := out.Line(id)
				line.Add(statline.Points, points)
				line.Add(statline.Rebounds, rebounds)
				line.Add(statline.Assists, assists)
				line.Add(statline.Steals, table.value(row.Stats, "STL"))
				line.Add(statline.Blocks, table.value(row.Stats, "BLK"))
				line.Add(statline.Turnovers, table.value(row.Stats, "TO"))
				line.Add(statline.ThreePointers, threes)
				// Double-double only checks points and rebounds.
				line.Add(statline.DoubleDoubles, boolValue(points >= 10 && rebounds >= 10))
				line.Add(statline.TripleDoubles, boolValue(points >= 10 && rebounds >= 10 && assists >= 10))
			})
		}
	}

	return out
}
