package matchup

import "context"

type Repository interface {
	ListByLeagueWeek(ctx context.Context, leagueID int64, week int) ([]Matchup, error)
	UpdateScores(ctx context.Context, matchups []Matchup) error
}
