package league

import (
	"context"

	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
)

type Repository interface {
	ListActiveBySport(ctx context.Context, s sport.Sport) ([]League, error)
	GetByID(ctx context.Context, id int64) (League, bool, error)
}
