package espn

import (
	"strings"

	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
	"github.com/riskibarqy/fantasy-statline/internal/domain/statline"
)

func parseBaseball(game GameSummary, plays []Play) statline.GameStats {
	out := statline.GameStats{}
	surnames := make(map[string]string)

	for _, team := range game.Boxscore.Players {
		for _, block := range team.Statistics {
			table := newStatTable(block)
			switch blockKind(block) {
			case "batting":
				eachAthlete(sport.MLB, block, func(id string, row AthleteLine) {
					line := out.Line(id)
					line.Add(statline.Hits, table.value(row.Stats, "H"))
					line.Add(statline.HomeRuns, table.value(row.Stats, "HR"))
					line.Add(statline.RBIs, table.value(row.Stats, "RBI"))
					line.Add(statline.Runs, table.value(row.Stats, "R"))
					line.Add(statline.Walks, table.value(row.Stats, "BB"))
					line.Add(statline.Strikeouts, table.value(row.Stats, "K", "SO"))
					line.Add(statline.StolenBases, 0)
					line.Add(statline.CaughtStealing, 0)
					if name := row.Athlete.Surname(); name != "" {
						surnames[id] = name
					}
				})
			case "pitching":
				eachAthlete(sport.MLB, block, func(id string, row AthleteLine) {
					line := out.Line(id)
					ip := 0.0
					if cell, ok := table.raw(row.Stats, "IP"); ok {
						ip = parseInnings(cell)
					}
					er := table.value(row.Stats, "ER")
					line.Add(statline.InningsPitched, ip)
					line.Add(statline.EarnedRuns, er)
					line.Add(statline.PitcherStrikeouts, table.value(row.Stats, "K", "SO"))

					win, save := pitchingDecision(row.Notes)
					line.Add(statline.Wins, boolValue(win))
					line.Add(statline.Saves, boolValue(save))
					line.Add(statline.QualityStarts, boolValue(ip >= 6 && er <= 3))
				})
			}
		}
	}

	creditBaserunning(out, plays, surnames)
	return out
}

// pitchingDecision reads the decision token of a pitcher's notes, e.g. "W, 12-4".
func pitchingDecision(notes []Note) (win bool, save bool) {
	for _, note := range notes {
		text := strings.TrimSpace(strings.Trim(strings.TrimSpace(note.Text), "()"))
		token, _, _ := strings.Cut(text, ",")
		token = strings.ToUpper(strings.TrimSpace(token))
		if fields := strings.Fields(token); len(fields) > 0 {
			token = fields[0]
		}
		switch token {
		case "W":
			win = true
		case "S", "SV":
			save = true
		}
	}
	return win, save
}

func creditBaserunning(out statline.GameStats, plays []Play, surnames map[string]string) {
	for _, play := range plays {
		switch {
		case play.Type.Matches("caught stealing") || play.Type.Matches("caught-stealing"):
			if id, ok := matchSurname(play.Text, surnames); ok {
				out.Add(id, statline.CaughtStealing, 1)
			}
		case play.Type.Matches("stolen base") || play.Type.Matches("stolen-base"):
			for _, id := range stealParticipants(play, surnames) {
				out.Add(id, statline.StolenBases, 1)
			}
		}
	}
}

// stealParticipants returns the baserunners credited with a stolen base. Plays
// without a runner role fall back to a surname match on the play text that
// ignores the fielders listed on the play. Unmatched or ambiguous names credit
// nobody.
func stealParticipants(play Play, surnames map[string]string) []string {
	var runners []string
	fielders := make(map[string]bool)
	for _, p := range play.Participants {
		id, ok := sport.PlayerIDFromString(sport.MLB, p.Athlete.ID)
		if !ok {
			continue
		}
		switch {
		case isBaserunnerRole(p.Type):
			runners = append(runners, id)
		case isFieldingRole(p.Type):
			fielders[id] = true
		}
	}
	if len(runners) > 0 {
		return runners
	}

	candidates := make(map[string]string, len(surnames))
	for id, name := range surnames {
		if !fielders[id] {
			candidates[id] = name
		}
	}
	if id, ok := matchSurname(play.Text, candidates); ok {
		return []string{id}
	}
	return nil
}

func isBaserunnerRole(role string) bool {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "runner", "onfirst", "onsecond", "onthird":
		return true
	}
	return false
}

func isFieldingRole(role string) bool {
	role = strings.ToLower(strings.TrimSpace(role))
	switch role {
	case "pitcher", "catcher", "shortstop":
		return true
	}
	return strings.Contains(role, "field") || strings.Contains(role, "baseman")
}

// matchSurname credits a baserunning event by surname substring. Ambiguous
// surnames within the game are not credited.
func matchSurname(text string, surnames map[string]string) (string, bool) {
	matched := ""
	for id, name := range surnames {
		if len(name) < 2 || !containsFold(text, name) {
			continue
		}
		if matched != "" && matched != id {
			return "", false
		}
		matched = id
	}
	return matched, matched != ""
}

func boolValue(v bool) float64 {
	if v {
		return 1
	}
	return 0
}
