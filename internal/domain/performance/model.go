package performance

// Record is the scored output for one player in one league and week.
type Record struct {
	Week             int    `validate:"gte=1"`
	PlayerID         string `validate:"required"`
	LeagueID         int64  `validate:"gt=0"`
	StartingPosition string `validate:"required"`
	FantasyPoints    float64
}

type Key struct {
	Week     int
	PlayerID string
	LeagueID int64
}

func (r Record) Key() Key {
	return Key{Week: r.Week, PlayerID: r.PlayerID, LeagueID: r.LeagueID}
}

// Apply merges incoming onto existing. The position snapshot only moves while
// the stored record has not accrued points yet.
func Apply(existing Record, incoming Record) Record {
	out := existing
	if existing.FantasyPoints == 0 {
		out.StartingPosition = incoming.StartingPosition
	}
	out.FantasyPoints = incoming.FantasyPoints
	return out
}
