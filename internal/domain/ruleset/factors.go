package ruleset

import (
	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
	"github.com/riskibarqy/fantasy-statline/internal/domain/statline"
)

// Football.
const (
	PassTD       = "points_passtd"
	PassYd       = "points_passyd"
	TwoPtPassTD  = "points_2pt_passtd"
	TwoPtRushTD  = "points_2pt_rushtd"
	TwoPtRecTD   = "points_2pt_rectd"
	Int          = "points_int"
	RushTD       = "points_rushtd"
	RushYd       = "points_rushyd"
	RecTD        = "points_rectd"
	RecYd        = "points_recyd"
	Reception    = "points_reception"
	Fumble       = "points_fumble"
	Sack         = "points_sack"
	IntDef       = "points_int_def"
	FumbleDef    = "points_fumble_def"
	Safety       = "points_safety"
	DefTD        = "points_def_td"
	BlockKick    = "points_block_kick"
	Shutout      = "points_shutout"
	PA1to6       = "points_1_6_pa"
	PA7to13      = "points_7_13_pa"
	PA14to20     = "points_14_20_pa"
	PA21to27     = "points_21_27_pa"
	PA28to34     = "points_28_34_pa"
	PA35Plus     = "points_35plus_pa"
	KickReturnTD = "points_kick_return_td"
	PuntReturnTD = "points_punt_return_td"
	FG0to39      = "points_fg_0_39"
	FG40to49     = "points_fg_40_49"
	FG50Plus     = "points_fg_50plus"
	FGMiss       = "points_fg_miss"
	XP           = "points_xp"
	XPMiss       = "points_xp_miss"
)

// Basketball.
const (
	Point        = "points_point"
	Rebound      = "points_rebound"
	Assist       = "points_assist"
	Steal        = "points_steal"
	Block        = "points_block"
	Turnover     = "points_turnover"
	ThreePointer = "points_three_pointer"
	DoubleDouble = "points_double_double"
	TripleDouble = "points_triple_double"
)

// Baseball.
const (
	Hit              = "points_hit"
	HomeRun          = "points_home_run"
	RBI              = "points_rbi"
	Run              = "points_run"
	Walk             = "points_walk"
	Strikeout        = "points_strikeout"
	StolenBase       = "points_sb"
	CaughtStealing   = "points_cs"
	InningPitched    = "points_ip"
	PitcherStrikeout = "points_pitcher_strikeout"
	Win              = "points_win"
	Save             = "points_save"
	EarnedRun        = "points_earned_run"
	QualityStart     = "points_quality_start"
)

// Hockey. Assist and Block are shared with basketball, Save and Hit with baseball.
const (
	Goal        = "points_goal"
	Shot        = "points_shot"
	PPPoint     = "points_pp_point"
	SHPoint     = "points_sh_point"
	GoalieSO    = "points_shutout"
	GoalAgainst = "points_goal_against"
)

// Factor is one weighted term of a sport's ruleset. Stat names the stat-line
// field the weight multiplies. Factors without a Stat are band factors picked
// from points_allowed by the scoring engine.
type Factor struct {
	Key  string
	Stat string
}

// factorSet is the scoring surface of a sport. version is bumped whenever
// factors changes, so stored rulesets of that sport only can be flagged stale.
type factorSet struct {
	version int
	factors []Factor
}

var footballSet = factorSet{
	version: 1,
	factors: []Factor{
		{PassTD, statline.PassingTDs},
		{PassYd, statline.PassingYards},
		{TwoPtPassTD, statline.Passing2PT},
		{TwoPtRushTD, statline.Rushing2PT},
		{TwoPtRecTD, statline.Receiving2PT},
		{Int, statline.Interceptions},
		{RushTD, statline.RushingTDs},
		{RushYd, statline.RushingYards},
		{RecTD, statline.ReceivingTDs},
		{RecYd, statline.ReceivingYards},
		{Reception, statline.Receptions},
		{Fumble, statline.FumblesLost},
		{Sack, statline.Sacks},
		{IntDef, statline.DefInterceptions},
		{FumbleDef, statline.FumblesRecovered},
		{Safety, statline.Safeties},
		{DefTD, statline.DefTDs},
		{BlockKick, statline.BlockedKicks},
		{Shutout, ""},
		{PA1to6, ""},
		{PA7to13, ""},
		{PA14to20, ""},
		{PA21to27, ""},
		{PA28to34, ""},
		{PA35Plus, ""},
		{KickReturnTD, statline.KickReturnTDs},
		{PuntReturnTD, statline.PuntReturnTDs},
		{FG0to39, statline.FG0to39},
		{FG40to49, statline.FG40to49},
		{FG50Plus, statline.FG50Plus},
		{FGMiss, statline.FGMissed},
		{XP, statline.XPMade},
		{XPMiss, statline.XPMissed},
	},
}

var factorSets = map[sport.Sport]factorSet{
	sport.NFL:   footballSet,
	sport.NCAAF: footballSet,
	sport.NBA: {
		version: 1,
		factors: []Factor{
			{Point, statline.Points},
			{Rebound, statline.Rebounds},
			{Assist, statline.Assists},
			{Steal, statline.Steals},
			{Block, statline.Blocks},
			{Turnover, statline.Turnovers},
			{ThreePointer, statline.ThreePointers},
			{DoubleDouble, statline.DoubleDoubles},
			{TripleDouble, statline.TripleDoubles},
		},
	},
	// 2: points_quality_start.
	sport.MLB: {
		version: 2,
		factors: []Factor{
			{Hit, statline.Hits},
			{HomeRun, statline.HomeRuns},
			{RBI, statline.RBIs},
			{Run, statline.Runs},
			{Walk, statline.Walks},
			{Strikeout, statline.Strikeouts},
			{StolenBase, statline.StolenBases},
			{CaughtStealing, statline.CaughtStealing},
			{InningPitched, statline.InningsPitched},
			{PitcherStrikeout, statline.PitcherStrikeouts},
			{Win, statline.Wins},
			{Save, statline.Saves},
			{EarnedRun, statline.EarnedRuns},
			{QualityStart, statline.QualityStarts},
		},
	},
	sport.NHL: {
		version: 1,
		factors: []Factor{
			{Goal, statline.Goals},
			{Assist, statline.Assists},
			{Shot, statline.Shots},
			{Hit, statline.HockeyHits},
			{Block, statline.BlockedShots},
			{PPPoint, statline.PPPoints},
			{SHPoint, statline.SHPoints},
			{GoalieSO, statline.Shutouts},
			{GoalAgainst, statline.GoalsAgainst},
			{Save, statline.Saves},
		},
	},
}

// FactorSet returns the sport's factors in display order, nil for an unknown sport.
func FactorSet(s sport.Sport) []Factor {
	set, ok := factorSets[s]
	if !ok {
		return nil
	}
	return append([]Factor(nil), set.factors...)
}

// Factors returns every scoring-factor key the sport's ruleset may define.
func Factors(s sport.Sport) []string {
	set := factorSets[s]
	out := make([]string, 0, len(set.factors))
	for _, f := range set.factors {
		out = append(out, f.Key)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SchemaVersionFor is the current factor-set version of a sport, 0 if unknown.
func SchemaVersionFor(s sport.Sport) int {
	return factorSets[s].version
}

// Defaults returns the weights a new league starts with.
func Defaults(s sport.Sport) map[string]float64 {
	switch s {
	case sport.NFL, sport.NCAAF:
		return map[string]float64{
			PassTD: 4, PassYd: 0.04, TwoPtPassTD: 2, TwoPtRushTD: 2, TwoPtRecTD: 2,
			Int: -2, RushTD: 6, RushYd: 0.1, RecTD: 6, RecYd: 0.1, Reception: 1,
			Fumble: -2, Sack: 1, IntDef: 2, FumbleDef: 2, Safety: 2, DefTD: 6,
			BlockKick: 2, Shutout: 10, PA1to6: 7, PA7to13: 4, PA14to20: 1,
			PA21to27: 0, PA28to34: -1, PA35Plus: -4, KickReturnTD: 6, PuntReturnTD: 6,
			FG0to39: 3, FG40to49: 4, FG50Plus: 5, FGMiss: -1, XP: 1, XPMiss: -1,
		}
	case sport.NBA:
		return map[string]float64{
			Point: 1, Rebound: 1.2, Assist: 1.5, Steal: 3, Block: 3, Turnover: -1,
			ThreePointer: 0.5, DoubleDouble: 1.5, TripleDouble: 3,
		}
	case sport.MLB:
		return map[string]float64{
			Hit: 1, HomeRun: 4, RBI: 1, Run: 1, Walk: 0.5, Strikeout: -0.5,
			StolenBase: 2, CaughtStealing: -1, InningPitched: 1, PitcherStrikeout: 1,
			Win: 5, Save: 5, EarnedRun: -2,
		}
	case sport.NHL:
		return map[string]float64{
			Goal: 3, Assist: 2, Shot: 0.5, Hit: 0.5, Block: 0.5, PPPoint: 0.5,
			SHPoint: 1, GoalieSO: 4, GoalAgainst: -1, Save: 0.2,
		}
	default:
		return nil
	}
}
