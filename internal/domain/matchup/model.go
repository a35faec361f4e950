package matchup

type Matchup struct {
	ID         int64
	LeagueID   int64
	Week       int
	HomeTeamID int64
	AwayTeamID int64
	HomeScore  float64
	AwayScore  float64
}

// ApplyTotals sets each side from totals; a team without an entry scores 0.
func (m Matchup) ApplyTotals(totals map[int64]float64) Matchup {
	m.HomeScore = totals[m.HomeTeamID]
	m.AwayScore = totals[m.AwayTeamID]
	return m
}
