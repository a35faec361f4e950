package ruleset

import (
	"context"

	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (Ruleset, bool, error)
	FindByFingerprint(ctx context.Context, s sport.Sport, fingerprint string) (Ruleset, bool, error)
	// Insert stores r unless a row with the same sport and fingerprint exists,
	// in which case the existing row is returned with created=false.
	Insert(ctx context.Context, r Ruleset) (stored Ruleset, created bool, err error)
}
