package espn

import (
	"os"
	"path/filepath"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
	"github.com/riskibarqy/fantasy-statline/internal/domain/statline"
)

func loadFixture(t *testing.T, name string, out any) {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	if err := sonic.Unmarshal(raw, out); err != nil {
		t.Fatalf("decode fixture %s: %v", name, err)
	}
}

func parseFixture(t *testing.T, s sport.Sport, summary, plays string) statline.GameStats {
	t.Helper()
	var game GameSummary
	loadFixture(t, summary, &game)

	var feed []Play
	if plays != "" {
		var pbp playByPlayResponse
		loadFixture(t, plays, &pbp)
		feed = pbp.Plays
	}

	got, err := Parse(s, game, feed)
	if err != nil {
		t.Fatalf("Parse(%s) error: %v", s, err)
	}
	return got
}

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestParse_Baseball(t *testing.T) {
	t.Parallel()

	got := parseFixture(t, sport.MLB, "mlb_summary.json", "mlb_plays.json")

	batter := func(h, hr, rbi, r, bb, k, sb, cs float64) statline.Line {
		return statline.Line{
			statline.Hits: h, statline.HomeRuns: hr, statline.RBIs: rbi, statline.Runs: r,
			statline.Walks: bb, statline.Strikeouts: k,
			statline.StolenBases: sb, statline.CaughtStealing: cs,
		}
	}
	pitcher := func(ip, er, k, w, sv, qs float64) statline.Line {
		return statline.Line{
			statline.InningsPitched: ip, statline.EarnedRuns: er, statline.PitcherStrikeouts: k,
			statline.Wins: w, statline.Saves: sv, statline.QualityStarts: qs,
		}
	}

	want := statline.GameStats{
		"mlb:33039":   batter(2, 1, 1, 1, 0, 1, 1, 0),
		"mlb:30193":   batter(1, 0, 0, 1, 1, 0, 1, 0),
		"mlb:41292":   batter(0, 0, 0, 0, 0, 0, 0, 0),
		"mlb:42426":   batter(3, 0, 0, 1, 0, 2, 0, 1),
		"mlb:4917694": pitcher(6+2.0/3, 2, 8, 1, 0, 1),
		"mlb:32081":   pitcher(1, 0, 2, 0, 1, 0),
		"mlb:32082":   pitcher(0, 0, 0, 0, 0, 0),
	}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Fatalf("baseball stats mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_BaseballDoesNotCreditAmbiguousSurname(t *testing.T) {
	t.Parallel()

	game := GameSummary{Boxscore: Boxscore{Players: []TeamPlayers{{
		Statistics: []StatBlock{{
			Type:   "batting",
			Labels: []string{"H"},
			Athletes: []AthleteLine{
				{Athlete: Athlete{ID: "1", DisplayName: "Will Smith"}, Stats: []string{"1"}},
				{Athlete: Athlete{ID: "2", DisplayName: "Dominic Smith"}, Stats: []string{"0"}},
			},
		}},
	}}}}
	plays := []Play{{Type: PlayType{Text: "Caught Stealing"}, Text: "Smith caught stealing second"}}

	got, err := Parse(sport.MLB, game, plays)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	for _, id := range []string{"mlb:1", "mlb:2"} {
		if cs := got[id].Get(statline.CaughtStealing); cs != 0 {
			t.Fatalf("%s caught_stealing = %v, want 0", id, cs)
		}
	}
}

func TestParse_Hockey(t *testing.T) {
	t.Parallel()

	got := parseFixture(t, sport.NHL, "nhl_summary.json", "nhl_plays.json")

	skater := func(g, a, pm, s, hit, bs, pp, sh float64) statline.Line {
		return statline.Line{
			statline.Goals: g, statline.Assists: a, statline.PlusMinus: pm, statline.Shots: s,
			statline.HockeyHits: hit, statline.BlockedShots: bs,
			statline.PPPoints: pp, statline.SHPoints: sh,
		}
	}
	goalie := func(sv, ga, so float64) statline.Line {
		return statline.Line{statline.Saves: sv, statline.GoalsAgainst: ga, statline.Shutouts: so}
	}

	want := statline.GameStats{
		"nhl:3042014": skater(1, 1, 2, 4, 3, 1, 1, 0),
		"nhl:3900169": skater(0, 2, -1, 2, 1, 0, 1, 1),
		"nhl:4233563": skater(0, 1, 0, 1, 2, 4, 1, 0),
		"nhl:3069285": goalie(31, 0, 1),
		"nhl:5000001": goalie(26, 3, 0),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("hockey stats mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_HockeyGoalieBlockDetectedByColumns(t *testing.T) {
	t.Parallel()

	game := GameSummary{Boxscore: Boxscore{Players: []TeamPlayers{{
		Statistics: []StatBlock{{
			Labels:   []string{"SA", "GA", "SV"},
			Athletes: []AthleteLine{{Athlete: Athlete{ID: "7"}, Stats: []string{"20", "2", "18"}}},
		}},
	}}}}

	got, err := Parse(sport.NHL, game, []Play{})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	want := statline.GameStats{"nhl:7": {statline.Saves: 18, statline.GoalsAgainst: 2, statline.Shutouts: 0}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("goalie stats mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Basketball(t *testing.T) {
	t.Parallel()

	got := parseFixture(t, sport.NBA, "nba_summary.json", "")

	line := func(pts, reb, ast, stl, blk, to, threes, dd, td float64) statline.Line {
		return statline.Line{
			statline.Points: pts, statline.Rebounds: reb, statline.Assists: ast,
			statline.Steals: stl, statline.Blocks: blk, statline.Turnovers: to,
			statline.ThreePointers: threes, statline.DoubleDoubles: dd, statline.TripleDoubles: td,
		}
	}

	want := statline.GameStats{
		"nba:1966": line(29, 11, 12, 2, 1, 4, 2, 1, 1),
		// Points and assists in double figures is not a double-double here.
		"nba:3975": line(22, 3, 10, 1, 0, 2, 4, 0, 0),
		"nba:4066": line(10, 14, 1, 0, 3, 1, 0, 1, 0),
		"nba:4067": line(0, 0, 0, 0, 0, 0, 0, 0, 0),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("basketball stats mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Football(t *testing.T) {
	t.Parallel()

	got := parseFixture(t, sport.NFL, "nfl_summary.json", "nfl_plays.json")

	want := statline.GameStats{
		"nfl:3139477": {
			statline.PassingTDs: 2, statline.PassingYards: 301, statline.Interceptions: 1,
			statline.RushingTDs: 0, statline.RushingYards: 12,
			statline.Passing2PT: 1,
		},
		"nfl:4242335": {
			statline.RushingTDs: 1, statline.RushingYards: 87, statline.FumblesLost: 1,
		},
		"nfl:15847": {
			statline.Receptions: 9, statline.ReceivingYards: 110, statline.ReceivingTDs: 1,
			statline.Receiving2PT: 1,
		},
		"nfl:4241478": {
			statline.Receptions: 6, statline.ReceivingYards: 0, statline.ReceivingTDs: 1,
		},
		"nfl:15683": {
			statline.FGMissed: 1, statline.XPMade: 2, statline.XPMissed: 1,
			statline.FG40to49: 1, statline.FG50Plus: 1,
		},
		"nfl:3916387": {
			statline.PassingTDs: 0, statline.PassingYards: 190, statline.Interceptions: 1,
			statline.FumblesLost: 2,
		},
		"nfl:15684": {
			statline.FGMissed: 0, statline.XPMade: 0, statline.XPMissed: 0,
			statline.FG0to39: 1,
		},
		"nfl:-12": {
			statline.FumblesRecovered: 2,
			statline.Sacks:            3.5,
			statline.DefTDs:           1,
			statline.DefInterceptions: 1,
			statline.KickReturnTDs:    1,
			statline.BlockedKicks:     1,
			statline.Safeties:         1,
			statline.PointsAllowed:    3,
		},
		"nfl:-33": {
			statline.FumblesRecovered: 1,
			statline.PointsAllowed:    27,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("football stats mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_FootballPointsAllowedFallsBackToHeader(t *testing.T) {
	t.Parallel()

	var game GameSummary
	loadFixture(t, "nfl_summary.json", &game)

	got, err := Parse(sport.NFL, game, []Play{})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if pa := got["nfl:-12"].Get(statline.PointsAllowed); pa != 3 {
		t.Fatalf("home points_allowed = %v, want 3", pa)
	}
	if pa := got["nfl:-33"].Get(statline.PointsAllowed); pa != 27 {
		t.Fatalf("away points_allowed = %v, want 27", pa)
	}
}

func TestParse_CollegeFootballIsEmpty(t *testing.T) {
	t.Parallel()

	var game GameSummary
	loadFixture(t, "nfl_summary.json", &game)

	got, err := Parse(sport.NCAAF, game, nil)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no stats for ncaaf, got %d players", len(got))
	}
}

func TestParse_UnknownSport(t *testing.T) {
	t.Parallel()

	if _, err := Parse(sport.Sport("cricket"), GameSummary{}, nil); err == nil {
		t.Fatalf("expected error for unsupported sport")
	}
}

func TestParseInnings(t *testing.T) {
	t.Parallel()

	cases := map[string]float64{
		"6.2": 6 + 2.0/3,
		"6.1": 6 + 1.0/3,
		"7":   7,
		"0.0": 0,
		"--":  0,
		"":    0,
		"5.7": 5,
	}
	for in, want := range cases {
		if diff := cmp.Diff(want, parseInnings(in), approx); diff != "" {
			t.Fatalf("parseInnings(%q) mismatch (-want +got):\n%s", in, diff)
		}
	}
}

func TestSplitMadeAttempted(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in        string
		made, att float64
	}{
		{in: "4-9", made: 4, att: 9},
		{in: "2/3", made: 2, att: 3},
		{in: "--", made: 0, att: 0},
		{in: "3", made: 3, att: 0},
	}
	for _, tc := range cases {
		made, att := splitMadeAttempted(tc.in)
		if made != tc.made || att != tc.att {
			t.Fatalf("splitMadeAttempted(%q) = %v,%v want %v,%v", tc.in, made, att, tc.made, tc.att)
		}
	}
}

func TestStatTable_FallsBackToKeys(t *testing.T) {
	t.Parallel()

	table := newStatTable(StatBlock{Keys: []string{"points", "rebounds"}})
	if v := table.value([]string{"12", "7"}, "REBOUNDS"); v != 7 {
		t.Fatalf("value = %v, want 7", v)
	}
	if v := table.value([]string{"12"}, "REBOUNDS"); v != 0 {
		t.Fatalf("short row value = %v, want 0", v)
	}
}

func TestPositionUnmarshal(t *testing.T) {
	t.Parallel()

	var asString, asObject Athlete
	if err := sonic.Unmarshal([]byte(`{"id":"1","position":"QB"}`), &asString); err != nil {
		t.Fatalf("decode string position: %v", err)
	}
	if err := sonic.Unmarshal([]byte(`{"id":"1","position":{"abbreviation":"C","name":"Center"}}`), &asObject); err != nil {
		t.Fatalf("decode object position: %v", err)
	}
	if asString.Position.Abbreviation != "QB" || asObject.Position.Abbreviation != "C" {
		t.Fatalf("unexpected positions: %+v %+v", asString.Position, asObject.Position)
	}
}

func TestParse_BaseballStealCreditsOnlyBaserunners(t *testing.T) {
	t.Parallel()

	batting := StatBlock{
		Type:   "batting",
		Labels: []string{"H"},
		Athletes: []AthleteLine{
			{Athlete: Athlete{ID: "10", DisplayName: "Trea Turner"}, Stats: []string{"1"}},
			{Athlete: Athlete{ID: "11", DisplayName: "Will Smith"}, Stats: []string{"0"}},
			{Athlete: Athlete{ID: "12", DisplayName: "Dominic Smith"}, Stats: []string{"0"}},
		},
	}
	game := GameSummary{Boxscore: Boxscore{Players: []TeamPlayers{{Statistics: []StatBlock{batting}}}}}

	tests := []struct {
		name string
		play Play
		want map[string]float64
	}{
		{
			name: "battery only",
			play: Play{
				Type: PlayType{Text: "Stolen Base"},
				Text: "Pitch 2 : Ball",
				Participants: []Participant{
					{Athlete: AthleteRef{ID: "41000"}, Type: "pitcher"},
					{Athlete: AthleteRef{ID: "11"}, Type: "catcher"},
				},
			},
			want: map[string]float64{},
		},
		{
			name: "base occupancy role",
			play: Play{
				Type: PlayType{Text: "Stolen Base"},
				Text: "Turner steals second",
				Participants: []Participant{
					{Athlete: AthleteRef{ID: "41000"}, Type: "pitcher"},
					{Athlete: AthleteRef{ID: "10"}, Type: "onFirst"},
				},
			},
			want: map[string]float64{"mlb:10": 1},
		},
		{
			name: "surname match skips the catcher",
			play: Play{
				Type: PlayType{Text: "Stolen Base"},
				Text: "Smith steals second",
				Participants: []Participant{
					{Athlete: AthleteRef{ID: "11"}, Type: "catcher"},
				},
			},
			want: map[string]float64{"mlb:12": 1},
		},
		{
			name: "ambiguous surname",
			play: Play{
				Type: PlayType{Text: "Stolen Base"},
				Text: "Smith steals second",
			},
			want: map[string]float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(sport.MLB, game, []Play{tt.play})
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			credited := map[string]float64{}
			for id, line := range got {
				if sb := line.Get(statline.StolenBases); sb != 0 {
					credited[id] = sb
				}
			}
			if diff := cmp.Diff(tt.want, credited); diff != "" {
				t.Fatalf("stolen base credit mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_HockeyShutoutNeedsWholeGame(t *testing.T) {
	t.Parallel()

	goalies := func(labels []string, rows ...AthleteLine) GameSummary {
		return GameSummary{Boxscore: Boxscore{Players: []TeamPlayers{{
			Statistics: []StatBlock{{Type: "goalies", Labels: labels, Athletes: rows}},
		}}}}
	}
	row := func(id string, starter bool, stats ...string) AthleteLine {
		return AthleteLine{Athlete: Athlete{ID: id}, Starter: starter, Stats: stats}
	}

	tests := []struct {
		name string
		game GameSummary
		want map[string]float64
	}{
		{
			name: "reliever after starter conceded",
			game: goalies([]string{"GA", "SV"}, row("1", true, "4", "20"), row("2", false, "0", "6")),
			want: map[string]float64{"nhl:1": 0, "nhl:2": 0},
		},
		{
			name: "starter credited when backup also played clean",
			game: goalies([]string{"GA", "SV"}, row("1", true, "0", "25"), row("2", false, "0", "3")),
			want: map[string]float64{"nhl:1": 1, "nhl:2": 0},
		},
		{
			name: "two clean goalies without starter marker",
			game: goalies([]string{"GA", "SV"}, row("1", false, "0", "25"), row("2", false, "0", "3")),
			want: map[string]float64{"nhl:1": 0, "nhl:2": 0},
		},
		{
			name: "missing GA column",
			game: goalies([]string{"SA", "SV"}, row("1", true, "30", "30")),
			want: map[string]float64{"nhl:1": 0},
		},
		{
			name: "lone goalie without marker",
			game: goalies([]string{"GA", "SV"}, row("1", false, "0", "30"), AthleteLine{Athlete: Athlete{ID: "2"}, DidNotPlay: true}),
			want: map[string]float64{"nhl:1": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(sport.NHL, tt.game, nil)
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			shutouts := map[string]float64{}
			for id, line := range got {
				shutouts[id] = line.Get(statline.Shutouts)
			}
			if diff := cmp.Diff(tt.want, shutouts); diff != "" {
				t.Fatalf("shutout credit mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_FootballTeamPlayWithoutPossessionIsNotCredited(t *testing.T) {
	t.Parallel()

	var game GameSummary
	loadFixture(t, "nfl_summary.json", &game)

	plays := []Play{
		{Type: PlayType{Text: "Blocked Punt"}, Text: "Punt is BLOCKED"},
		{Type: PlayType{Text: "Safety"}, Text: "tackled in end zone for a SAFETY"},
		{Type: PlayType{Text: "Blocked Field Goal"}, Text: "kick is BLOCKED", Team: &TeamRef{ID: "99"}},
	}
	got, err := Parse(sport.NFL, game, plays)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	baseline, err := Parse(sport.NFL, game, []Play{})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	for _, id := range []string{"nfl:-12", "nfl:-33"} {
		for _, field := range []string{statline.BlockedKicks, statline.Safeties} {
			if got[id].Get(field) != baseline[id].Get(field) {
				t.Fatalf("%s %s = %v, want %v", id, field, got[id].Get(field), baseline[id].Get(field))
			}
		}
	}
}
