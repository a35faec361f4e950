package roster

import "github.com/riskibarqy/fantasy-statline/internal/domain/sport"

// Assignment places a player on a league team. TeamID is nil before the draft.
type Assignment struct {
	PlayerID         string `validate:"required"`
	LeagueID         int64  `validate:"required,gt=0"`
	TeamID           *int64
	StartingPosition string `validate:"required"`
}

func (a Assignment) Benched() bool {
	return a.StartingPosition == sport.BenchPosition
}

// Starter is true for an assigned player holding a scoring slot.
func (a Assignment) Starter() bool {
	return a.TeamID != nil && !a.Benched()
}
