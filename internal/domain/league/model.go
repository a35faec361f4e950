package league

import (
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
)

// League is owned by the league management collaborator; the pipeline only reads it.
type League struct {
	ID          int64
	Name        string
	Sport       sport.Sport
	RulesetID   int64
	Season      int
	CurrentWeek int
	SeasonStart time.Time
}

// Active reports whether the league has a scoring period open.
func (l League) Active() bool {
	return l.CurrentWeek > 0 && l.RulesetID > 0
}

// WeekRange returns the [from, to) day range of a week for day-granularity sports.
func (l League) WeekRange(week int) (time.Time, time.Time, error) {
	if week < 1 {
		return time.Time{}, time.Time{}, fmt.Errorf("week must be >= 1, got %d", week)
	}
	if l.SeasonStart.IsZero() {
		return time.Time{}, time.Time{}, fmt.Errorf("league %d has no season start", l.ID)
	}
	y, m, d := l.SeasonStart.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 7*(week-1))
	return start, start.AddDate(0, 0, 7), nil
}

// WeekOf maps a calendar day to the league week containing it, 0 before the season.
func (l League) WeekOf(day time.Time) int {
	if l.SeasonStart.IsZero() {
		return 0
	}
	y, m, d := l.SeasonStart.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	y, m, d = day.Date()
	target := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if target.Before(start) {
		return 0
	}
	return int(target.Sub(start).Hours()/24)/7 + 1
}
