package statline

// Baseball.
const (
	Hits              = "hits"
	HomeRuns          = "home_runs"
	RBIs              = "rbis"
	Runs              = "runs"
	Walks             = "walks"
	Strikeouts        = "strikeouts"
	StolenBases       = "stolen_bases"
	CaughtStealing    = "caught_stealing"
	InningsPitched    = "innings_pitched"
	PitcherStrikeouts = "pitcher_strikeouts"
	EarnedRuns        = "earned_runs"
	Wins              = "wins"
	Saves             = "saves"
	QualityStarts     = "quality_starts"
)

// Hockey. Saves is shared with baseball.
const (
	Goals        = "goals"
	Assists      = "assists"
	PlusMinus    = "plus_minus"
	Shots        = "shots"
	HockeyHits   = "hits"
	BlockedShots = "blocked_shots"
	PPPoints     = "pp_points"
	SHPoints     = "sh_points"
	GoalsAgainst = "goals_against"
	Shutouts     = "shutouts"
)

// Basketball. Assists is shared with hockey.
const (
	Points        = "points"
	Rebounds      = "rebounds"
	Steals        = "steals"
	Blocks        = "blocks"
	Turnovers     = "turnovers"
	ThreePointers = "three_pointers_made"
	DoubleDoubles = "double_doubles"
	TripleDoubles = "triple_doubles"
)

// Football.
const (
	PassingTDs       = "passing_tds"
	PassingYards     = "passing_yds"
	Passing2PT       = "passing_2pt"
	Interceptions    = "interceptions"
	RushingTDs       = "rushing_tds"
	RushingYards     = "rushing_yds"
	Rushing2PT       = "rushing_2pt"
	ReceivingTDs     = "receiving_tds"
	ReceivingYards   = "receiving_yds"
	Receiving2PT     = "receiving_2pt"
	Receptions       = "receptions"
	FumblesLost      = "fumbles_lost"
	Sacks            = "sacks"
	DefInterceptions = "def_interceptions"
	FumblesRecovered = "fumbles_recovered"
	Safeties         = "safeties"
	DefTDs           = "def_tds"
	BlockedKicks     = "blocked_kicks"
	KickReturnTDs    = "kick_return_tds"
	PuntReturnTDs    = "punt_return_tds"
	FG0to39          = "fg_0_39"
	FG40to49         = "fg_40_49"
	FG50Plus         = "fg_50plus"
	FGMissed         = "fg_missed"
	XPMade           = "xp_made"
	XPMissed         = "xp_missed"
	PointsAllowed    = "points_allowed"
)
