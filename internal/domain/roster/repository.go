package roster

import "context"

type Repository interface {
	ListByLeague(ctx context.Context, leagueID int64) ([]Assignment, error)
}
