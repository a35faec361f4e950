package statline

import (
	"sort"
	"time"

	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
)

// Line maps a stat name to its value for one player over one period.
type Line map[string]float64

func (l Line) Add(name string, value float64) {
	l[name] += value
}

func (l Line) Get(name string) float64 {
	return l[name]
}

// Merge adds other into l field by field; keys only present in other are copied.
func (l Line) Merge(other Line) {
	for name, value := range other {
		l[name] += value
	}
}

func (l Line) Clone() Line {
	out := make(Line, len(l))
	for name, value := range l {
		out[name] = value
	}
	return out
}

func (l Line) Names() []string {
	out := make([]string, 0, len(l))
	for name := range l {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// GameStats maps a player identifier to the stats accrued in one or more games.
type GameStats map[string]Line

func (g GameStats) Line(playerID string) Line {
	line, ok := g[playerID]
	if !ok {
		line = make(Line)
		g[playerID] = line
	}
	return line
}

func (g GameStats) Add(playerID, name string, value float64) {
	g.Line(playerID).Add(name, value)
}

// Merge sums other into g so doubleheaders accumulate instead of overwrite.
func (g GameStats) Merge(other GameStats) {
	for playerID, line := range other {
		g.Line(playerID).Merge(line)
	}
}

func (g GameStats) PlayerIDs() []string {
	out := make([]string, 0, len(g))
	for id := range g {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Period is the storage key of a record: Date for daily sports, Season/Week for football.
type Period struct {
	Date   time.Time
	Season int
	Week   int
}

func DayPeriod(date time.Time) Period {
	return Period{Date: TruncateDay(date)}
}

func WeekPeriod(season, week int) Period {
	return Period{Season: season, Week: week}
}

func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type DailyRecord struct {
	Sport    sport.Sport
	PlayerID string
	Date     time.Time
	Stats    Line
}

type WeeklyRecord struct {
	Sport    sport.Sport
	PlayerID string
	Season   int
	Week     int
	Stats    Line
}

// DayResult is the merged output of every game a sport played on one day.
type DayResult struct {
	Sport        sport.Sport
	Date         time.Time
	Period       Period
	Stats        GameStats
	Games        int
	SkippedGames int
	// DroppedPlayers counts ids still unknown after the directory refresh.
	DroppedPlayers int
	NoGames        bool
}
