package espn

import (
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
)

// GameSummary is the per-game summary document.
type GameSummary struct {
	Header   Header   `json:"header"`
	Boxscore Boxscore `json:"boxscore"`
	Plays    []Play   `json:"plays"`
}

type Header struct {
	ID           string        `json:"id"`
	Season       Season        `json:"season"`
	Week         int           `json:"week"`
	Competitions []Competition `json:"competitions"`
}

type Season struct {
	Year int `json:"year"`
	Type int `json:"type"`
}

type Competition struct {
	ID          string       `json:"id"`
	Date        string       `json:"date"`
	Status      Status       `json:"status"`
	Competitors []Competitor `json:"competitors"`
}

type Status struct {
	Type StatusType `json:"type"`
}

type StatusType struct {
	State     string `json:"state"`
	Completed bool   `json:"completed"`
}

type Competitor struct {
	ID       string `json:"id"`
	HomeAway string `json:"homeAway"`
	Score    string `json:"score"`
	Team     Team   `json:"team"`
}

type Team struct {
	ID           string `json:"id"`
	Abbreviation string `json:"abbreviation"`
	DisplayName  string `json:"displayName"`
}

type Boxscore struct {
	Players []TeamPlayers `json:"players"`
}

type TeamPlayers struct {
	Team       Team        `json:"team"`
	Statistics []StatBlock `json:"statistics"`
}

// StatBlock carries positional stat arrays whose meaning comes from Labels.
type StatBlock struct {
	Name     string        `json:"name"`
	Type     string        `json:"type"`
	Labels   []string      `json:"labels"`
	Keys     []string      `json:"keys"`
	Athletes []AthleteLine `json:"athletes"`
}

type AthleteLine struct {
	Athlete    Athlete  `json:"athlete"`
	Stats      []string `json:"stats"`
	Starter    bool     `json:"starter"`
	DidNotPlay bool     `json:"didNotPlay"`
	Notes      []Note   `json:"notes"`
}

type Athlete struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"displayName"`
	ShortName   string   `json:"shortName"`
	LastName    string   `json:"lastName"`
	Position    Position `json:"position"`
}

func (a Athlete) Surname() string {
	if name := strings.TrimSpace(a.LastName); name != "" {
		return name
	}
	parts := strings.Fields(a.DisplayName)
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

type Note struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Position is delivered either as an abbreviation string or as an object.
type Position struct {
	Abbreviation string `json:"abbreviation"`
	Name         string `json:"name"`
}

func (p *Position) UnmarshalJSON(raw []byte) error {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return nil
	}
	if strings.HasPrefix(text, "\"") {
		value, err := strconv.Unquote(text)
		if err != nil {
			return err
		}
		p.Abbreviation = value
		return nil
	}
	type alias Position
	var out alias
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return err
	}
	*p = Position(out)
	return nil
}

// Play is one play-by-play event.
type Play struct {
	ID                string             `json:"id"`
	Type              PlayType           `json:"type"`
	Text              string             `json:"text"`
	AwayScore         int                `json:"awayScore"`
	HomeScore         int                `json:"homeScore"`
	ScoringPlay       bool               `json:"scoringPlay"`
	ScoreValue        int                `json:"scoreValue"`
	Team              *TeamRef           `json:"team"`
	Strength          *PlayType          `json:"strength"`
	Participants      []Participant      `json:"participants"`
	PointAfterAttempt *PointAfterAttempt `json:"pointAfterAttempt"`
}

type PlayType struct {
	ID           string `json:"id"`
	Text         string `json:"text"`
	Abbreviation string `json:"abbreviation"`
	Type         string `json:"type"`
}

// Matches reports whether any of the type fields contains needle, case-insensitively.
func (t PlayType) Matches(needle string) bool {
	needle = strings.ToLower(needle)
	for _, v := range []string{t.Text, t.Type, t.Abbreviation} {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

type TeamRef struct {
	ID string `json:"id"`
}

type Participant struct {
	Athlete AthleteRef `json:"athlete"`
	Type    string     `json:"type"`
}

type AthleteRef struct {
	ID string `json:"id"`
}

type PointAfterAttempt struct {
	ID           int    `json:"id"`
	Text         string `json:"text"`
	Abbreviation string `json:"abbreviation"`
	Value        int    `json:"value"`
	Success      *bool  `json:"success"`
}

type playByPlayResponse struct {
	Plays []Play `json:"plays"`
}

type scoreboardResponse struct {
	Season Season            `json:"season"`
	Week   weekRef           `json:"week"`
	Events []scoreboardEvent `json:"events"`
}

type weekRef struct {
	Number int `json:"number"`
}

type scoreboardEvent struct {
	ID     string  `json:"id"`
	Date   string  `json:"date"`
	Status Status  `json:"status"`
	Season Season  `json:"season"`
	Week   weekRef `json:"week"`
}

type athletesResponse struct {
	Count     int           `json:"count"`
	PageIndex int           `json:"pageIndex"`
	PageCount int           `json:"pageCount"`
	Items     []athleteItem `json:"items"`
}

type athleteItem struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"displayName"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Position    Position `json:"position"`
	Team        Team     `json:"team"`
	Active      bool     `json:"active"`
}
