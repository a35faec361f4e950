package espn

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
	"github.com/riskibarqy/fantasy-statline/internal/domain/statline"
)

var fieldGoalDistanceRegex = regexp.MustCompile(`(?i)(\d{1,2})\s*-?\s*(?:yd|yds|yard|yards)\b`)

// footballGame tracks the two sides so team plays can be credited to the defense.
type footballGame struct {
	sport   sport.Sport
	out     statline.GameStats
	teamIDs []string
	home    string
	away    string
}

func parseFootball(s sport.Sport, game GameSummary, plays []Play) statline.GameStats {
	g := &footballGame{sport: s, out: statline.GameStats{}}
	g.resolveSides(game)

	for _, team := range game.Boxscore.Players {
		for _, block := range team.Statistics {
			g.applyBlock(team.Team.ID, block)
		}
	}

	g.applyPlays(plays)
	g.applyPointsAllowed(game, plays)
	return g.out
}

func (g *footballGame) resolveSides(game GameSummary) {
	for _, comp := range game.Header.Competitions {
		for _, c := range comp.Competitors {
			id := firstNonEmpty(c.ID, c.Team.ID)
			switch strings.ToLower(c.HomeAway) {
			case "home":
				g.home = id
			case "away":
				g.away = id
			}
		}
	}
	for _, team := range game.Boxscore.Players {
		g.addTeam(team.Team.ID)
	}
	g.addTeam(g.home)
	g.addTeam(g.away)
}

func (g *footballGame) addTeam(id string) {
	if id == "" {
		return
	}
	for _, existing := range g.teamIDs {
		if existing == id {
			return
		}
	}
	g.teamIDs = append(g.teamIDs, id)
}

// opponent returns the other side of the game, or "" when teamID is not one
// of the two known sides.
func (g *footballGame) opponent(teamID string) string {
	if teamID == "" || len(g.teamIDs) != 2 {
		return ""
	}
	switch teamID {
	case g.teamIDs[0]:
		return g.teamIDs[1]
	case g.teamIDs[1]:
		return g.teamIDs[0]
	}
	return ""
}

func (g *footballGame) defenseID(teamID string) (string, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(teamID), 10, 64)
	if err != nil || n == 0 {
		return "", false
	}
	return sport.TeamDefenseID(g.sport, n), true
}

func (g *footballGame) creditDefense(teamID, field string, value float64) {
	if value == 0 {
		return
	}
	if id, ok := g.defenseID(teamID); ok {
		g.out.Add(id, field, value)
	}
}

func (g *footballGame) applyBlock(teamID string, block StatBlock) {
	table := newStatTable(block)
	kind := strings.ToLower(strings.TrimSpace(block.Name))

	switch kind {
	case "passing":
		eachAthlete(g.sport, block, func(id string, row AthleteLine) {
			line := g.out.Line(id)
			line.Add(statline.PassingTDs, table.value(row.Stats, "TD"))
			line.Add(statline.PassingYards, table.value(row.Stats, "YDS"))
			line.Add(statline.Interceptions, table.value(row.Stats, "INT"))
		})
	case "rushing":
		eachAthlete(g.sport, block, func(id string, row AthleteLine) {
			line := g.out.Line(id)
			line.Add(statline.RushingTDs, table.value(row.Stats, "TD"))
			line.Add(statline.RushingYards, table.value(row.Stats, "YDS"))
		})
	case "receiving":
		eachAthlete(g.sport, block, func(id string, row AthleteLine) {
			line := g.out.Line(id)
			line.Add(statline.Receptions, table.value(row.Stats, "REC"))
			line.Add(statline.ReceivingYards, table.value(row.Stats, "YDS"))
			line.Add(statline.ReceivingTDs, table.value(row.Stats, "TD"))
		})
	case "fumbles":
		lost := 0.0
		eachAthlete(g.sport, block, func(id string, row AthleteLine) {
			v := table.value(row.Stats, "LOST")
			lost += v
			g.out.Add(id, statline.FumblesLost, v)
		})
		g.creditDefense(g.opponent(teamID), statline.FumblesRecovered, lost)
	case "defensive":
		sacks, tds := 0.0, 0.0
		eachAthlete(g.sport, block, func(_ string, row AthleteLine) {
			sacks += table.value(row.Stats, "SACKS", "SCK")
			tds += table.value(row.Stats, "TD")
		})
		g.creditDefense(teamID, statline.Sacks, sacks)
		g.creditDefense(teamID, statline.DefTDs, tds)
	case "interceptions":
		ints, tds := 0.0, 0.0
		eachAthlete(g.sport, block, func(_ string, row AthleteLine) {
			ints += table.value(row.Stats, "INT")
			tds += table.value(row.Stats, "TD")
		})
		g.creditDefense(teamID, statline.DefInterceptions, ints)
		g.creditDefense(teamID, statline.DefTDs, tds)
	case "kickreturns":
		tds := 0.0
		eachAthlete(g.sport, block, func(_ string, row AthleteLine) {
			tds += table.value(row.Stats, "TD")
		})
		g.creditDefense(teamID, statline.KickReturnTDs, tds)
	case "puntreturns":
		tds := 0.0
		eachAthlete(g.sport, block, func(_ string, row AthleteLine) {
			tds += table.value(row.Stats, "TD")
		})
		g.creditDefense(teamID, statline.PuntReturnTDs, tds)
	case "kicking":
		eachAthlete(g.sport, block, func(id string, row AthleteLine) {
			line := g.out.Line(id)
			fgMade, fgAtt := table.made(row.Stats, "FG")
			xpMade, xpAtt := table.made(row.Stats, "XP")
			line.Add(statline.FGMissed, nonNegative(fgAtt-fgMade))
			line.Add(statline.XPMade, xpMade)
			line.Add(statline.XPMissed, nonNegative(xpAtt-xpMade))
		})
	}
}

func (g *footballGame) applyPlays(plays []Play) {
	for _, play := range plays {
		possession := ""
		if play.Team != nil {
			possession = play.Team.ID
		}

		switch {
		case play.Type.Matches("blocked"):
			g.creditDefense(g.opponent(possession), statline.BlockedKicks, 1)
		case play.Type.Matches("field goal good"):
			g.creditFieldGoal(play)
		}

		if play.Type.Matches("safety") {
			g.creditDefense(g.opponent(possession), statline.Safeties, 1)
		}

		g.creditTwoPoint(play)
	}
}

func (g *footballGame) creditFieldGoal(play Play) {
	kicker := ""
	for _, p := range play.Participants {
		id, ok := sport.PlayerIDFromString(g.sport, p.Athlete.ID)
		if !ok {
			continue
		}
		if kicker == "" || strings.EqualFold(p.Type, "kicker") {
			kicker = id
		}
		if strings.EqualFold(p.Type, "kicker") {
			break
		}
	}
	if kicker == "" {
		return
	}

	match := fieldGoalDistanceRegex.FindStringSubmatch(play.Text)
	if len(match) < 2 {
		return
	}
	distance, err := strconv.Atoi(match[1])
	if err != nil {
		return
	}
	g.out.Add(kicker, fieldGoalBucket(distance), 1)
}

func fieldGoalBucket(distance int) string {
	switch {
	case distance >= 50:
		return statline.FG50Plus
	case distance >= 40:
		return statline.FG40to49
	default:
		return statline.FG0to39
	}
}

// creditTwoPoint credits a converted two-point try to each participant by role.
func (g *footballGame) creditTwoPoint(play Play) {
	pat := play.PointAfterAttempt
	if pat == nil || pat.Value != 2 {
		return
	}
	if pat.Success != nil && !*pat.Success {
		return
	}
	if pat.Success == nil && (containsFold(play.Text, "fail") || containsFold(play.Text, "no good")) {
		return
	}

	for _, p := range play.Participants {
		id, ok := sport.PlayerIDFromString(g.sport, p.Athlete.ID)
		if !ok {
			continue
		}
		switch strings.ToLower(p.Type) {
		case "passer":
			g.out.Add(id, statline.Passing2PT, 1)
		case "rusher":
			g.out.Add(id, statline.Rushing2PT, 1)
		case "receiver":
			g.out.Add(id, statline.Receiving2PT, 1)
		}
	}
}

// applyPointsAllowed reads the final play's running score, falling back to the
// header scores when the play feed is empty.
func (g *footballGame) applyPointsAllowed(game GameSummary, plays []Play) {
	if g.home == "" || g.away == "" {
		return
	}

	homeScore, awayScore := 0, 0
	if len(plays) > 0 {
		last := plays[len(plays)-1]
		homeScore, awayScore = last.HomeScore, last.AwayScore
	} else {
		for _, comp := range game.Header.Competitions {
			for _, c := range comp.Competitors {
				score, _ := strconv.Atoi(strings.TrimSpace(c.Score))
				switch strings.ToLower(c.HomeAway) {
				case "home":
					homeScore = score
				case "away":
					awayScore = score
				}
			}
		}
	}

	if id, ok := g.defenseID(g.home); ok {
		g.out.Line(id)[statline.PointsAllowed] = float64(awayScore)
	}
	if id, ok := g.defenseID(g.away); ok {
		g.out.Line(id)[statline.PointsAllowed] = float64(homeScore)
	}
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
