package performance

import "context"

type Repository interface {
	ListByLeagueWeek(ctx context.Context, leagueID int64, week int) ([]Record, error)
	// Upsert writes records in one transaction following Apply semantics.
	Upsert(ctx context.Context, records []Record) error
}
