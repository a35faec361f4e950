package player

import (
	"context"

	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
)

type Repository interface {
	// KnownIDs returns the subset of ids present in the directory.
	KnownIDs(ctx context.Context, s sport.Sport, ids []string) (map[string]struct{}, error)
	GetByIDs(ctx context.Context, ids []string) ([]Player, error)
	UpsertMany(ctx context.Context, players []Player) error
}
